package theatre

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orchestra-health/orchestra/internal/domain/patient"
)

// PatientFlow moves patients through the care state machine. Implemented by
// the patient service; an interface here keeps the dependency one-way.
type PatientFlow interface {
	Transition(ctx context.Context, id uuid.UUID, next patient.Status, actor string) (*patient.Patient, error)
}

type Service struct {
	theatres Repository
	patients patient.Repository
	flow     PatientFlow
	logger   zerolog.Logger
}

func NewService(theatres Repository, patients patient.Repository, flow PatientFlow, logger zerolog.Logger) *Service {
	return &Service{theatres: theatres, patients: patients, flow: flow, logger: logger}
}

func (s *Service) CreateTheatre(ctx context.Context, t *Theatre) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Status == "" {
		t.Status = StatusReady
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	if t.NextAvailable == "" {
		t.NextAvailable = "Now"
	}
	return s.theatres.Create(ctx, t)
}

func (s *Service) GetTheatre(ctx context.Context, id uuid.UUID) (*Theatre, error) {
	return s.theatres.GetByID(ctx, id)
}

func (s *Service) ListTheatres(ctx context.Context) ([]*Theatre, error) {
	return s.theatres.List(ctx)
}

// UpdateTheatreStatus moves a theatre through its lifecycle. Leaving In Use
// clears the current case.
func (s *Service) UpdateTheatreStatus(ctx context.Context, id uuid.UUID, status TheatreStatus) (*Theatre, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	t, err := s.theatres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = status
	if status != StatusInUse {
		t.CurrentPatientID = nil
		t.CurrentSurgery = nil
	}
	if status == StatusReady {
		t.NextAvailable = "Now"
	}
	if err := s.theatres.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// surgicalEligible is every status with a legal edge into surgery. Patients
// still in the field or in triage are excluded: the state machine cannot
// move them into surgery, so listing them would draft candidates the batch
// commit could never transition.
var surgicalEligible = []patient.Status{
	patient.StatusQueued, patient.StatusDiagnosis, patient.StatusAdmitted,
}

// SurgicalQueue returns the ranked surgical candidate list.
func (s *Service) SurgicalQueue(ctx context.Context) ([]*patient.Patient, error) {
	pats, err := s.patients.ListByStatus(ctx, surgicalEligible)
	if err != nil {
		return nil, fmt.Errorf("list surgical candidates: %w", err)
	}
	return RankCandidates(pats), nil
}

// BatchAssign drafts and commits a greedy 1:1 pairing of the ranked
// surgical queue onto ready theatres. The theatre updates commit in a
// single transaction; afterwards each assigned patient is moved into
// surgery through the state machine, which tolerates a missing ward bed
// for surgery-bound patients.
func (s *Service) BatchAssign(ctx context.Context, actor string) ([]Assignment, error) {
	ready, err := s.theatres.ListReady(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ready theatres: %w", err)
	}
	candidates, err := s.SurgicalQueue(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := PlanBatch(candidates, ready)
	if err != nil {
		return nil, err
	}
	if err := s.theatres.AssignBatch(ctx, plan); err != nil {
		return nil, fmt.Errorf("assign batch: %w", err)
	}
	for _, a := range plan {
		if _, err := s.flow.Transition(ctx, a.PatientID, patient.StatusSurgery, actor); err != nil {
			s.logger.Error().Err(err).
				Str("patient_id", a.PatientID.String()).
				Str("theatre", a.TheatreName).
				Msg("assigned patient could not enter surgery state")
		}
	}
	s.logger.Info().Int("assignments", len(plan)).Str("actor", actor).Msg("surgical batch committed")
	return plan, nil
}
