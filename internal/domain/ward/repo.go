package ward

import (
	"context"

	"github.com/google/uuid"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

type Repository interface {
	Create(ctx context.Context, b *Bed) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bed, error)
	List(ctx context.Context) ([]*Bed, error)
	ListByWard(ctx context.Context, ward hospital.Department) ([]*Bed, error)
	// FindByPatient returns the bed currently held by the patient, or nil
	// when the patient holds none.
	FindByPatient(ctx context.Context, patientID uuid.UUID) (*Bed, error)
	// Claim marks the bed occupied by the patient. It must be atomic with
	// respect to concurrent claims on the same bed: the claim succeeds only
	// if the bed was free at commit time.
	Claim(ctx context.Context, bedID, patientID uuid.UUID) (bool, error)
	// Release frees any bed held by the patient. Idempotent.
	Release(ctx context.Context, patientID uuid.UUID) error
	OccupancyByWard(ctx context.Context) ([]*Occupancy, error)
}
