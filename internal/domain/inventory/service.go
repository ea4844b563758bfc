package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

var (
	// ErrInvalidTransition rejects a status jump the state machine does
	// not allow. Nothing is mutated.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInsufficientStock rejects a blood request exceeding current
	// stock at creation time. No request record is created.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// TxRunner runs fn atomically. The production wiring wraps fn in a
// database transaction; tests run fn directly.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	inv      InventoryRepository
	requests RequestRepository
	refills  RefillRepository
	inTx     TxRunner
	logger   zerolog.Logger
}

func NewService(inv InventoryRepository, requests RequestRepository, refills RefillRepository, inTx TxRunner, logger zerolog.Logger) *Service {
	if inTx == nil {
		inTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{inv: inv, requests: requests, refills: refills, inTx: inTx, logger: logger}
}

func (s *Service) Snapshot(ctx context.Context) (*Inventory, error) {
	return s.inv.Get(ctx)
}

// CreateRequest validates and records a transfer request in the Requested
// state. Blood requests are pre-flight checked against current stock; the
// check repeats at delivery because concurrent requests can drain the
// group in between.
func (s *Service) CreateRequest(ctx context.Context, req *ResourceRequest) error {
	if !req.Type.Valid() {
		return fmt.Errorf("invalid resource type: %s", req.Type)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if !req.FromDept.Valid() || !req.ToDept.Valid() {
		return fmt.Errorf("invalid department")
	}
	if req.Urgency == "" {
		req.Urgency = UrgencyNormal
	}
	if !req.Urgency.Valid() {
		return fmt.Errorf("invalid urgency: %s", req.Urgency)
	}
	if req.Type == ResourceBlood {
		group := hospital.BloodGroup(req.SubType)
		if !group.Valid() {
			return fmt.Errorf("invalid blood group: %s", req.SubType)
		}
		inv, err := s.inv.Get(ctx)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		if req.Quantity > inv.Blood[group] {
			return fmt.Errorf("%w: %d units of %s requested, %d available",
				ErrInsufficientStock, req.Quantity, group, inv.Blood[group])
		}
	}
	req.Status = RequestRequested
	return s.requests.Create(ctx, req)
}

func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*ResourceRequest, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *Service) ListRequests(ctx context.Context, limit, offset int) ([]*ResourceRequest, int, error) {
	return s.requests.List(ctx, limit, offset)
}

// AdvanceRequest moves a request one step along its state machine. The
// status swap and the inventory debit commit together: on the edge into
// Delivered the full next inventory value is computed and saved in the
// same transaction, so a crash or a lost status race applies the delta
// zero times, never twice.
func (s *Service) AdvanceRequest(ctx context.Context, id uuid.UUID, next RequestStatus) (*ResourceRequest, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("invalid status: %s", next)
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, next)
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		swapped, err := s.requests.SetStatus(ctx, id, req.Status, next)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: request %s changed concurrently", ErrInvalidTransition, id)
		}
		if next != RequestDelivered {
			return nil
		}
		inv, err := s.inv.Get(ctx)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		nextInv, shortfall := ApplyRequestDelivery(inv, req)
		if shortfall > 0 {
			s.logger.Warn().
				Str("request_id", id.String()).
				Str("type", string(req.Type)).
				Str("sub_type", req.SubType).
				Int("shortfall", shortfall).
				Msg("delivery exceeded available stock; debit clamped at zero")
		}
		return s.inv.Save(ctx, nextInv)
	})
	if err != nil {
		return nil, err
	}
	req.Status = next
	return req, nil
}

// CreateRefill records a vendor refill order in the Requested state.
func (s *Service) CreateRefill(ctx context.Context, order *RefillOrder) error {
	if order.Type != ResourceOxygen && order.Type != ResourceBlood && order.Type != ResourceMedication {
		return fmt.Errorf("invalid refill type: %s", order.Type)
	}
	if order.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if order.Vendor == "" {
		return fmt.Errorf("vendor is required")
	}
	if order.Type == ResourceBlood && !hospital.BloodGroup(order.SubType).Valid() {
		return fmt.Errorf("invalid blood group: %s", order.SubType)
	}
	if order.Type == ResourceMedication {
		// An order against an untracked line would verify into nothing;
		// reject it while the vendor can still be corrected.
		inv, err := s.inv.Get(ctx)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		if !inv.HasMedication(order.SubType) {
			return fmt.Errorf("unknown medication: %s", order.SubType)
		}
	}
	order.Status = RefillRequested
	return s.refills.Create(ctx, order)
}

func (s *Service) GetRefill(ctx context.Context, id uuid.UUID) (*RefillOrder, error) {
	return s.refills.GetByID(ctx, id)
}

func (s *Service) ListRefills(ctx context.Context, limit, offset int) ([]*RefillOrder, int, error) {
	return s.refills.List(ctx, limit, offset)
}

// AdvanceRefill moves an order one step along its state machine, crediting
// inventory exactly once on the edge into Verified.
func (s *Service) AdvanceRefill(ctx context.Context, id uuid.UUID, next RefillStatus) (*RefillOrder, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("invalid status: %s", next)
	}
	order, err := s.refills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		swapped, err := s.refills.SetStatus(ctx, id, order.Status, next)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: order %s changed concurrently", ErrInvalidTransition, id)
		}
		if next != RefillVerified {
			return nil
		}
		inv, err := s.inv.Get(ctx)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		return s.inv.Save(ctx, ApplyRefillVerification(inv, order))
	})
	if err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}
