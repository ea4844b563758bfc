package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByStatus(ctx context.Context, statuses []Status) ([]*Patient, error)
	// Care history
	AddCareEvent(ctx context.Context, e *CareEvent) error
	GetCareHistory(ctx context.Context, patientID uuid.UUID) ([]*CareEvent, error)
}
