package ward

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

// ErrNoBedsAvailable is returned when the fallback chain finds no free bed.
var ErrNoBedsAvailable = errors.New("no beds available")

type Service struct {
	beds   Repository
	logger zerolog.Logger
}

func NewService(beds Repository, logger zerolog.Logger) *Service {
	return &Service{beds: beds, logger: logger}
}

func (s *Service) CreateBed(ctx context.Context, b *Bed) error {
	if b.Number == "" {
		return fmt.Errorf("number is required")
	}
	if !b.Ward.Valid() {
		return fmt.Errorf("invalid ward: %s", b.Ward)
	}
	if b.Type == "" {
		b.Type = BedStandard
	}
	if !b.Type.Valid() {
		return fmt.Errorf("invalid bed type: %s", b.Type)
	}
	return s.beds.Create(ctx, b)
}

func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.beds.GetByID(ctx, id)
}

func (s *Service) ListBeds(ctx context.Context) ([]*Bed, error) {
	return s.beds.List(ctx)
}

func (s *Service) ListBedsByWard(ctx context.Context, ward hospital.Department) ([]*Bed, error) {
	if !ward.Valid() {
		return nil, fmt.Errorf("invalid ward: %s", ward)
	}
	return s.beds.ListByWard(ctx, ward)
}

func (s *Service) Occupancy(ctx context.Context) ([]*Occupancy, error) {
	return s.beds.OccupancyByWard(ctx)
}

// Allocate reserves a bed for the patient using the fallback chain in
// SelectBed. If the patient already holds a bed the call is a no-op and
// returns that bed. Claims race against concurrent allocators, so a lost
// claim re-runs selection until either a claim lands or nothing is free.
func (s *Service) Allocate(ctx context.Context, patientID uuid.UUID, targetWard hospital.Department) (*Bed, error) {
	if held, err := s.beds.FindByPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("find held bed: %w", err)
	} else if held != nil {
		return held, nil
	}

	for {
		beds, err := s.beds.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list beds: %w", err)
		}
		candidate := SelectBed(beds, targetWard)
		if candidate == nil {
			s.logger.Warn().
				Str("patient_id", patientID.String()).
				Str("target_ward", string(targetWard)).
				Msg("capacity alert: no beds available")
			return nil, ErrNoBedsAvailable
		}
		ok, err := s.beds.Claim(ctx, candidate.ID, patientID)
		if err != nil {
			return nil, fmt.Errorf("claim bed %s: %w", candidate.ID, err)
		}
		if ok {
			claimed, err := s.beds.GetByID(ctx, candidate.ID)
			if err != nil {
				return nil, err
			}
			s.logger.Info().
				Str("patient_id", patientID.String()).
				Str("bed", claimed.Number).
				Str("ward", string(claimed.Ward)).
				Msg("bed allocated")
			return claimed, nil
		}
		// Lost the claim race; another writer took the bed. Re-select.
	}
}

// Release frees whatever bed the patient holds. Releasing a patient with no
// bed is a no-op.
func (s *Service) Release(ctx context.Context, patientID uuid.UUID) error {
	return s.beds.Release(ctx, patientID)
}
