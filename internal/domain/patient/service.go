package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
	"github.com/orchestra-health/orchestra/internal/domain/ward"
)

var (
	// ErrInvalidTransition rejects a status move outside the state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrMissingAssessment rejects queueing a patient whose clinical
	// assessment has not been attached yet.
	ErrMissingAssessment = errors.New("clinical assessment missing")
)

// BedAllocator is the slice of the ward service the patient flow needs.
type BedAllocator interface {
	Allocate(ctx context.Context, patientID uuid.UUID, targetWard hospital.Department) (*ward.Bed, error)
	Release(ctx context.Context, patientID uuid.UUID) error
}

// Assessor produces a structured clinical assessment for a patient. The
// production implementation calls the external assessment service.
type Assessor interface {
	Assess(ctx context.Context, p *Patient) (*Assessment, error)
}

type Service struct {
	patients Repository
	beds     BedAllocator
	assessor Assessor
	now      func() time.Time
	logger   zerolog.Logger
}

func NewService(patients Repository, beds BedAllocator, assessor Assessor, logger zerolog.Logger) *Service {
	return &Service{patients: patients, beds: beds, assessor: assessor, now: time.Now, logger: logger}
}

// Intake registers a new patient. Status defaults to In Triage; field
// referrals may start the record at Pre-Hospital Triage or In Ambulance.
func (s *Service) Intake(ctx context.Context, p *Patient, actor string) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("invalid age: %d", p.Age)
	}
	if p.Severity < 0 || p.Severity > 10 {
		return fmt.Errorf("severity must be between 0 and 10")
	}
	if p.Status == "" {
		p.Status = StatusTriage
	}
	if p.Status != StatusTriage && p.Status != StatusPreHospital && p.Status != StatusAmbulance {
		return fmt.Errorf("intake status must be pre-hospital, ambulance or triage, got %s", p.Status)
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return err
	}
	s.recordEvent(ctx, p, EventOperational, "Patient registered",
		fmt.Sprintf("Intake at %s", p.Status), actor)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) CareHistory(ctx context.Context, id uuid.UUID) ([]*CareEvent, error) {
	if _, err := s.patients.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.patients.GetCareHistory(ctx, id)
}

// AddCareEvent appends a manual entry to the patient's care history.
func (s *Service) AddCareEvent(ctx context.Context, patientID uuid.UUID, e *CareEvent, actor string) error {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	switch e.Type {
	case EventClinical, EventOperational, EventIntervention, EventStatusChange:
	default:
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	e.PatientID = p.ID
	if e.PerformedBy == "" {
		e.PerformedBy = actor
	}
	if e.RiskScoreSnapshot == 0 && p.RiskScore != nil {
		e.RiskScoreSnapshot = *p.RiskScore
	}
	e.Timestamp = s.now()
	return s.patients.AddCareEvent(ctx, e)
}

// Assess calls the external assessment service and attaches the result.
func (s *Service) Assess(ctx context.Context, id uuid.UUID, actor string) (*Patient, error) {
	if s.assessor == nil {
		return nil, fmt.Errorf("assessment service not configured")
	}
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := s.assessor.Assess(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("clinical assessment: %w", err)
	}
	return s.AttachAssessment(ctx, id, a, actor)
}

// AttachAssessment stores the structured assessment on the patient record.
// A patient still in triage moves to Queued, which starts the wait clock.
func (s *Service) AttachAssessment(ctx context.Context, id uuid.UUID, a *Assessment, actor string) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.RiskLevel.Valid() {
		return nil, fmt.Errorf("invalid risk level: %s", a.RiskLevel)
	}
	if !a.PrimaryDepartment.Valid() {
		return nil, fmt.Errorf("invalid department: %s", a.PrimaryDepartment)
	}
	if a.SurgicalPriority != nil && !a.SurgicalPriority.Valid() {
		return nil, fmt.Errorf("invalid surgical priority: %s", *a.SurgicalPriority)
	}

	riskScore := a.RiskScore
	p.RiskScore = &riskScore
	riskLevel := a.RiskLevel
	p.RiskLevel = &riskLevel
	dept := a.PrimaryDepartment
	p.Department = &dept
	det := a.DeteriorationProb
	p.DeteriorationProb = &det
	icu := a.ICULikelihood
	p.ICULikelihood = &icu
	surg := a.SurgeryLikelihood
	p.SurgeryLikelihood = &surg
	p.SurgicalPriority = a.SurgicalPriority
	p.EstLengthOfStay = a.EstLengthOfStay
	p.EstTreatmentCost = a.EstTreatmentCost
	p.FinancialRiskScore = a.FinancialRiskScore
	p.SuggestedDiagnoses = a.SuggestedDiagnoses
	p.RedFlags = a.RedFlags

	if p.Status == StatusTriage {
		now := s.now()
		p.Status = StatusQueued
		p.QueueStartTime = &now
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	s.recordEvent(ctx, p, EventClinical, "Clinical assessment attached",
		fmt.Sprintf("Risk %s (%d), department %s", a.RiskLevel, a.RiskScore, a.PrimaryDepartment), actor)
	return p, nil
}

// Transition moves a patient one step along the care flow.
//
// Admission is atomic with bed allocation: when no bed can be claimed the
// move is rejected and the patient stays where they were. Surgery also
// claims a post-op bed, but a miss is tolerated so an assignment is never
// blocked on ward capacity. Discharge frees whatever bed the patient holds
// and ends the queue episode.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, next Status, actor string) (*Patient, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("invalid status: %s", next)
	}
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, next)
	}
	if next == StatusQueued && !p.Assessed() {
		return nil, fmt.Errorf("%w: patient %s cannot be queued", ErrMissingAssessment, id)
	}

	prev := p.Status
	now := s.now()
	bedClaimed := false

	switch next {
	case StatusAdmitted:
		bed, err := s.beds.Allocate(ctx, p.ID, p.TargetWard())
		if err != nil {
			return nil, fmt.Errorf("admit patient %s: %w", id, err)
		}
		bedClaimed = true
		p.AdmittedAt = &now
		p.QueueStartTime = nil
		s.logger.Info().
			Str("patient_id", id.String()).
			Str("bed", bed.Number).
			Str("ward", string(bed.Ward)).
			Msg("patient admitted")
	case StatusSurgery:
		// A post-op bed is claimed up front when one is free; a miss is
		// logged and the case proceeds regardless.
		if bed, err := s.beds.Allocate(ctx, p.ID, p.TargetWard()); err != nil {
			s.logger.Warn().Err(err).
				Str("patient_id", id.String()).
				Msg("no bed claimed for surgery-bound patient")
		} else {
			bedClaimed = true
			s.logger.Info().
				Str("patient_id", id.String()).
				Str("bed", bed.Number).
				Msg("post-op bed reserved")
		}
		p.QueueStartTime = nil
	case StatusDischarged:
		if err := s.beds.Release(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("release bed for %s: %w", id, err)
		}
		p.QueueStartTime = nil
		p.AdmittedAt = nil
	default:
		// Entering a queue status starts the wait clock once per episode;
		// Queued <-> Under Diagnosis keeps the original start time.
		if next.InQueue() && p.QueueStartTime == nil {
			p.QueueStartTime = &now
		}
	}

	p.Status = next
	if err := s.patients.Update(ctx, p); err != nil {
		// Keep the edge all-or-nothing: a bed claimed for a move that
		// never committed must go back to the pool.
		if bedClaimed {
			if relErr := s.beds.Release(ctx, p.ID); relErr != nil {
				s.logger.Error().Err(relErr).
					Str("patient_id", id.String()).
					Msg("failed to release bed after aborted transition")
			}
		}
		return nil, err
	}
	s.recordEvent(ctx, p, EventStatusChange, fmt.Sprintf("Status changed to %s", next),
		fmt.Sprintf("Moved from %s to %s", prev, next), actor)
	return p, nil
}

// recordEvent appends to the care history. Failures are logged, not
// surfaced: the primary mutation already committed.
func (s *Service) recordEvent(ctx context.Context, p *Patient, eventType, title, description, actor string) {
	snapshot := 0
	if p.RiskScore != nil {
		snapshot = *p.RiskScore
	}
	err := s.patients.AddCareEvent(ctx, &CareEvent{
		PatientID:         p.ID,
		Type:              eventType,
		Title:             title,
		Description:       description,
		RiskScoreSnapshot: snapshot,
		PerformedBy:       actor,
		Timestamp:         s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("patient_id", p.ID.String()).
			Str("event", title).
			Msg("failed to record care event")
	}
}
