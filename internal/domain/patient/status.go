package patient

// Status is a patient's position in the care flow. Transitions are
// restricted to the table below; anything else is rejected before any
// side effect runs.
type Status string

const (
	StatusPreHospital Status = "Pre-Hospital Triage"
	StatusAmbulance   Status = "In Ambulance"
	StatusTriage      Status = "In Triage"
	StatusQueued      Status = "Queued"
	StatusDiagnosis   Status = "Under Diagnosis"
	StatusAdmitted    Status = "Admitted"
	StatusSurgery     Status = "In Surgery"
	StatusDischarged  Status = "Discharged"
)

// transitions is the legal edge set of the patient state machine.
// Discharged -> Triage covers re-presentation, which starts a new queue
// episode with a fresh queue start time.
var transitions = map[Status][]Status{
	StatusPreHospital: {StatusAmbulance, StatusTriage},
	StatusAmbulance:   {StatusTriage},
	StatusTriage:      {StatusQueued, StatusAdmitted, StatusDischarged},
	StatusQueued:      {StatusDiagnosis, StatusAdmitted, StatusSurgery, StatusDischarged},
	StatusDiagnosis:   {StatusQueued, StatusAdmitted, StatusSurgery, StatusDischarged},
	StatusAdmitted:    {StatusSurgery, StatusDischarged},
	StatusSurgery:     {StatusAdmitted, StatusDischarged},
	StatusDischarged:  {StatusTriage},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// InQueue reports whether a patient in this status participates in the
// priority queue ranking.
func (s Status) InQueue() bool {
	return s == StatusQueued || s == StatusDiagnosis || s == StatusTriage
}
