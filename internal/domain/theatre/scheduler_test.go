package theatre

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
	"github.com/orchestra-health/orchestra/internal/domain/patient"
)

func candidate(name string, status patient.Status, priority hospital.SurgicalPriority, likelihood, det int) *patient.Patient {
	return &patient.Patient{
		ID:                uuid.New(),
		Name:              name,
		Status:            status,
		SurgicalPriority:  &priority,
		SurgeryLikelihood: &likelihood,
		DeteriorationProb: &det,
	}
}

func TestRankCandidates_PriorityClassBeatsLikelihood(t *testing.T) {
	a := candidate("A", patient.StatusQueued, hospital.Urgent, 60, 10)
	b := candidate("B", patient.StatusQueued, hospital.EmergencySurgery, 50, 90)
	c := candidate("C", patient.StatusQueued, hospital.Elective, 99, 99)

	ranked := RankCandidates([]*patient.Patient{a, b, c})
	if len(ranked) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(ranked))
	}
	want := []string{"B", "A", "C"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].Name, name)
		}
	}
}

func TestRankCandidates_LikelihoodThenDeterioration(t *testing.T) {
	highLik := candidate("high-likelihood", patient.StatusQueued, hospital.Urgent, 80, 10)
	lowLik := candidate("low-likelihood", patient.StatusQueued, hospital.Urgent, 60, 40)
	highDet := candidate("high-deterioration", patient.StatusQueued, hospital.Urgent, 60, 95)

	ranked := RankCandidates([]*patient.Patient{lowLik, highDet, highLik})
	want := []string{"high-likelihood", "high-deterioration", "low-likelihood"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].Name, name)
		}
	}
}

func TestRankCandidates_FiltersByLikelihoodThreshold(t *testing.T) {
	in := candidate("in", patient.StatusQueued, hospital.Urgent, 41, 0)
	boundary := candidate("boundary", patient.StatusQueued, hospital.EmergencySurgery, 40, 99)
	unset := &patient.Patient{ID: uuid.New(), Name: "unset", Status: patient.StatusQueued}

	ranked := RankCandidates([]*patient.Patient{in, boundary, unset})
	if len(ranked) != 1 || ranked[0].Name != "in" {
		t.Errorf("expected only the candidate above the threshold, got %d entries", len(ranked))
	}
}

func TestRankCandidates_ExcludesDischargedAndInSurgery(t *testing.T) {
	discharged := candidate("discharged", patient.StatusDischarged, hospital.EmergencySurgery, 99, 99)
	inSurgery := candidate("in-surgery", patient.StatusSurgery, hospital.EmergencySurgery, 99, 99)
	queued := candidate("queued", patient.StatusQueued, hospital.Elective, 50, 10)

	ranked := RankCandidates([]*patient.Patient{discharged, inSurgery, queued})
	if len(ranked) != 1 || ranked[0].Name != "queued" {
		t.Errorf("expected only the queued candidate, got %d entries", len(ranked))
	}
}

func TestRankCandidates_UnsetPriorityTreatedAsElective(t *testing.T) {
	elective := candidate("elective", patient.StatusQueued, hospital.Elective, 50, 10)
	noPriority := candidate("no-priority", patient.StatusQueued, hospital.Elective, 60, 10)
	noPriority.SurgicalPriority = nil
	urgent := candidate("urgent", patient.StatusQueued, hospital.Urgent, 45, 10)

	ranked := RankCandidates([]*patient.Patient{elective, noPriority, urgent})
	want := []string{"urgent", "no-priority", "elective"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].Name, name)
		}
	}
}

func TestPlanBatch_PairsInOrder(t *testing.T) {
	first := candidate("first", patient.StatusQueued, hospital.EmergencySurgery, 90, 50)
	second := candidate("second", patient.StatusQueued, hospital.Urgent, 80, 40)
	third := candidate("third", patient.StatusQueued, hospital.Elective, 70, 30)
	theatres := []*Theatre{
		{ID: uuid.New(), Name: "Main Theatre A", Status: StatusReady},
		{ID: uuid.New(), Name: "Main Theatre B", Status: StatusReady},
	}

	plan, err := PlanBatch([]*patient.Patient{first, second, third}, theatres)
	if err != nil {
		t.Fatalf("PlanBatch failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(plan))
	}
	if plan[0].PatientID != first.ID || plan[0].TheatreID != theatres[0].ID {
		t.Errorf("first assignment mismatched: %+v", plan[0])
	}
	if plan[1].PatientID != second.ID || plan[1].TheatreID != theatres[1].ID {
		t.Errorf("second assignment mismatched: %+v", plan[1])
	}
}

func TestPlanBatch_MoreTheatresThanCandidates(t *testing.T) {
	only := candidate("only", patient.StatusQueued, hospital.Urgent, 70, 20)
	theatres := []*Theatre{
		{ID: uuid.New(), Name: "A", Status: StatusReady},
		{ID: uuid.New(), Name: "B", Status: StatusReady},
		{ID: uuid.New(), Name: "C", Status: StatusReady},
	}

	plan, err := PlanBatch([]*patient.Patient{only}, theatres)
	if err != nil {
		t.Fatalf("PlanBatch failed: %v", err)
	}
	if len(plan) != 1 {
		t.Errorf("expected 1 assignment, got %d", len(plan))
	}
}

func TestPlanBatch_EmptySides(t *testing.T) {
	p := candidate("p", patient.StatusQueued, hospital.Urgent, 70, 20)
	th := &Theatre{ID: uuid.New(), Name: "A", Status: StatusReady}

	if _, err := PlanBatch([]*patient.Patient{p}, nil); !errors.Is(err, ErrNoReadyTheatres) {
		t.Errorf("expected ErrNoReadyTheatres, got %v", err)
	}
	if _, err := PlanBatch(nil, []*Theatre{th}); !errors.Is(err, ErrEmptySurgicalQueue) {
		t.Errorf("expected ErrEmptySurgicalQueue, got %v", err)
	}
}

func TestPlanBatch_ProcedureLabel(t *testing.T) {
	withSymptom := candidate("with", patient.StatusQueued, hospital.Urgent, 70, 20)
	withSymptom.Symptoms = []string{"Acute appendicitis", "Fever"}
	without := candidate("without", patient.StatusQueued, hospital.Elective, 60, 10)
	theatres := []*Theatre{
		{ID: uuid.New(), Name: "A", Status: StatusReady},
		{ID: uuid.New(), Name: "B", Status: StatusReady},
	}

	plan, err := PlanBatch([]*patient.Patient{withSymptom, without}, theatres)
	if err != nil {
		t.Fatalf("PlanBatch failed: %v", err)
	}
	if plan[0].Procedure != "Acute appendicitis" {
		t.Errorf("procedure = %q, want leading symptom", plan[0].Procedure)
	}
	if plan[1].Procedure != "Unspecified procedure" {
		t.Errorf("procedure = %q, want placeholder", plan[1].Procedure)
	}
}
