package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

// Vitals captures the point-in-time vital signs recorded at intake.
type Vitals struct {
	Temperature      float64 `db:"temperature" json:"temperature"`
	BloodPressureSys int     `db:"blood_pressure_sys" json:"blood_pressure_sys"`
	BloodPressureDia int     `db:"blood_pressure_dia" json:"blood_pressure_dia"`
	Pulse            int     `db:"pulse" json:"pulse"`
	SpO2             int     `db:"spo2" json:"spo2"`
	RespiratoryRate  int     `db:"respiratory_rate" json:"respiratory_rate"`
}

// Diagnosis is a single differential suggested by the clinical assessment.
type Diagnosis struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Rationale   string  `json:"rationale"`
}

// Assessment is the structured result produced by the external clinical
// assessment service. The core never computes these values itself; it only
// attaches them to a patient record once the external call completes.
type Assessment struct {
	RiskScore          int                        `json:"risk_score"`
	RiskLevel          hospital.RiskLevel         `json:"risk_level"`
	DeteriorationProb  int                        `json:"deterioration_prob"`
	ICULikelihood      int                        `json:"icu_likelihood"`
	SurgeryLikelihood  int                        `json:"surgery_likelihood"`
	SurgicalPriority   *hospital.SurgicalPriority `json:"surgical_priority,omitempty"`
	PrimaryDepartment  hospital.Department        `json:"primary_department"`
	EstLengthOfStay    *int                       `json:"est_length_of_stay,omitempty"`
	EstTreatmentCost   *int                       `json:"est_treatment_cost,omitempty"`
	FinancialRiskScore *int                       `json:"financial_risk_score,omitempty"`
	SuggestedDiagnoses []Diagnosis                `json:"suggested_diagnoses,omitempty"`
	RedFlags           []string                   `json:"red_flags,omitempty"`
}

// Patient maps to the patient table. Clinical fields are nil until the
// external assessment completes; ranking and allocation treat a missing
// assessment as lowest priority rather than an error.
type Patient struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Age      int       `db:"age" json:"age"`
	Gender   string    `db:"gender" json:"gender"`
	Contact  string    `db:"contact" json:"contact"`
	Symptoms []string  `db:"symptoms" json:"symptoms"`
	Severity int       `db:"severity" json:"severity"`
	Duration string    `db:"duration" json:"duration"`
	History  string    `db:"history" json:"history"`
	Vitals   Vitals    `db:"vitals" json:"vitals"`

	Status         Status     `db:"status" json:"status"`
	QueueStartTime *time.Time `db:"queue_start_time" json:"queue_start_time,omitempty"`
	AdmittedAt     *time.Time `db:"admitted_at" json:"admitted_at,omitempty"`

	RiskScore          *int                       `db:"risk_score" json:"risk_score,omitempty"`
	RiskLevel          *hospital.RiskLevel        `db:"risk_level" json:"risk_level,omitempty"`
	Department         *hospital.Department       `db:"department" json:"department,omitempty"`
	DeteriorationProb  *int                       `db:"deterioration_prob" json:"deterioration_prob,omitempty"`
	ICULikelihood      *int                       `db:"icu_likelihood" json:"icu_likelihood,omitempty"`
	SurgeryLikelihood  *int                       `db:"surgery_likelihood" json:"surgery_likelihood,omitempty"`
	SurgicalPriority   *hospital.SurgicalPriority `db:"surgical_priority" json:"surgical_priority,omitempty"`
	EstLengthOfStay    *int                       `db:"est_length_of_stay" json:"est_length_of_stay,omitempty"`
	EstTreatmentCost   *int                       `db:"est_treatment_cost" json:"est_treatment_cost,omitempty"`
	FinancialRiskScore *int                       `db:"financial_risk_score" json:"financial_risk_score,omitempty"`
	SuggestedDiagnoses []Diagnosis                `db:"suggested_diagnoses" json:"suggested_diagnoses,omitempty"`
	RedFlags           []string                   `db:"red_flags" json:"red_flags,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TargetWard is the ward a bed should be sought in. Patients without an
// assigned department default to General Medicine.
func (p *Patient) TargetWard() hospital.Department {
	if p.Department != nil && p.Department.Valid() {
		return *p.Department
	}
	return hospital.GeneralMedicine
}

// Assessed reports whether the external clinical assessment has been attached.
func (p *Patient) Assessed() bool { return p.RiskScore != nil }

// CareEvent maps to the care_event table: an append-only entry in a
// patient's care history.
type CareEvent struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PatientID         uuid.UUID `db:"patient_id" json:"patient_id"`
	Type              string    `db:"type" json:"type"`
	Title             string    `db:"title" json:"title"`
	Description       string    `db:"description" json:"description"`
	RiskScoreSnapshot int       `db:"risk_score_snapshot" json:"risk_score_snapshot"`
	PerformedBy       string    `db:"performed_by" json:"performed_by"`
	Timestamp         time.Time `db:"timestamp" json:"timestamp"`
}

// Care event types.
const (
	EventClinical     = "clinical"
	EventOperational  = "operational"
	EventIntervention = "intervention"
	EventStatusChange = "status_change"
)
