package inventory

import (
	"context"

	"github.com/google/uuid"
)

// InventoryRepository stores the single facility-wide stock snapshot.
type InventoryRepository interface {
	Get(ctx context.Context) (*Inventory, error)
	Save(ctx context.Context, inv *Inventory) error
}

type RequestRepository interface {
	Create(ctx context.Context, req *ResourceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceRequest, error)
	List(ctx context.Context, limit, offset int) ([]*ResourceRequest, int, error)
	// SetStatus moves the request from to next, compare-and-swap style:
	// it succeeds only if the stored status still equals from.
	SetStatus(ctx context.Context, id uuid.UUID, from, next RequestStatus) (bool, error)
}

type RefillRepository interface {
	Create(ctx context.Context, order *RefillOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*RefillOrder, error)
	List(ctx context.Context, limit, offset int) ([]*RefillOrder, int, error)
	SetStatus(ctx context.Context, id uuid.UUID, from, next RefillStatus) (bool, error)
}
