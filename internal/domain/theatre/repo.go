package theatre

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Theatre) error
	GetByID(ctx context.Context, id uuid.UUID) (*Theatre, error)
	Update(ctx context.Context, t *Theatre) error
	List(ctx context.Context) ([]*Theatre, error)
	ListReady(ctx context.Context) ([]*Theatre, error)
	// AssignBatch marks every theatre in the plan In Use for its paired
	// patient, atomically: if any theatre has left the Ready state since
	// the plan was drawn, the whole batch rolls back.
	AssignBatch(ctx context.Context, plan []Assignment) error
}
