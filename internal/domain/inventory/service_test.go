package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

// -- Mock Repositories --

type mockInvRepo struct {
	inv   *Inventory
	saves int
}

func (m *mockInvRepo) Get(_ context.Context) (*Inventory, error) { return m.inv.Clone(), nil }

func (m *mockInvRepo) Save(_ context.Context, inv *Inventory) error {
	m.inv = inv
	m.saves++
	return nil
}

type mockRequestRepo struct {
	requests map[uuid.UUID]*ResourceRequest
	// afterGet runs once after the next GetByID, simulating a concurrent
	// writer slipping in between the read and the status swap.
	afterGet func()
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[uuid.UUID]*ResourceRequest)}
}

func (m *mockRequestRepo) Create(_ context.Context, req *ResourceRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*ResourceRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	clone := *req
	if m.afterGet != nil {
		m.afterGet()
		m.afterGet = nil
	}
	return &clone, nil
}

func (m *mockRequestRepo) List(_ context.Context, limit, offset int) ([]*ResourceRequest, int, error) {
	var result []*ResourceRequest
	for _, r := range m.requests {
		result = append(result, r)
	}
	return result, len(result), nil
}

func (m *mockRequestRepo) SetStatus(_ context.Context, id uuid.UUID, from, next RequestStatus) (bool, error) {
	req, ok := m.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = next
	return true, nil
}

type mockRefillRepo struct {
	orders map[uuid.UUID]*RefillOrder
}

func newMockRefillRepo() *mockRefillRepo {
	return &mockRefillRepo{orders: make(map[uuid.UUID]*RefillOrder)}
}

func (m *mockRefillRepo) Create(_ context.Context, order *RefillOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockRefillRepo) GetByID(_ context.Context, id uuid.UUID) (*RefillOrder, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	clone := *order
	return &clone, nil
}

func (m *mockRefillRepo) List(_ context.Context, limit, offset int) ([]*RefillOrder, int, error) {
	var result []*RefillOrder
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, len(result), nil
}

func (m *mockRefillRepo) SetStatus(_ context.Context, id uuid.UUID, from, next RefillStatus) (bool, error) {
	order, ok := m.orders[id]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = next
	return true, nil
}

func newTestService() (*Service, *mockInvRepo, *mockRequestRepo, *mockRefillRepo) {
	inv := &mockInvRepo{inv: seedInventory()}
	requests := newMockRequestRepo()
	refills := newMockRefillRepo()
	svc := NewService(inv, requests, refills, nil, zerolog.Nop())
	return svc, inv, requests, refills
}

// -- Request Tests --

func TestCreateRequest_BloodPreflight(t *testing.T) {
	svc, _, _, _ := newTestService()

	ok := &ResourceRequest{
		Type: ResourceBlood, SubType: "O-", Quantity: 6,
		FromDept: hospital.BloodBank, ToDept: hospital.Emergency,
	}
	if err := svc.CreateRequest(context.Background(), ok); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if ok.Status != RequestRequested {
		t.Errorf("status = %s, want Requested", ok.Status)
	}

	over := &ResourceRequest{
		Type: ResourceBlood, SubType: "O-", Quantity: 7,
		FromDept: hospital.BloodBank, ToDept: hospital.Emergency,
	}
	if err := svc.CreateRequest(context.Background(), over); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestCreateRequest_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []*ResourceRequest{
		{Type: "Snacks", Quantity: 1, FromDept: hospital.Pharmacy, ToDept: hospital.ICU},
		{Type: ResourceOxygen, Quantity: 0, FromDept: hospital.Pharmacy, ToDept: hospital.ICU},
		{Type: ResourceOxygen, Quantity: 5, FromDept: "Narnia", ToDept: hospital.ICU},
		{Type: ResourceOxygen, Quantity: 5, FromDept: hospital.Pharmacy, ToDept: hospital.ICU, Urgency: "Whenever"},
		{Type: ResourceBlood, SubType: "Z+", Quantity: 1, FromDept: hospital.BloodBank, ToDept: hospital.ICU},
	}
	for i, req := range cases {
		if err := svc.CreateRequest(ctx, req); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}

	defaulted := &ResourceRequest{Type: ResourceOxygen, Quantity: 5, FromDept: hospital.Logistics, ToDept: hospital.ICU}
	if err := svc.CreateRequest(ctx, defaulted); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if defaulted.Urgency != UrgencyNormal {
		t.Errorf("urgency = %s, want defaulted to Normal", defaulted.Urgency)
	}
}

func TestAdvanceRequest_DebitsOnDeliveredOnly(t *testing.T) {
	svc, inv, requests, _ := newTestService()
	ctx := context.Background()

	req := &ResourceRequest{ID: uuid.New(), Type: ResourceBlood, SubType: "O+", Quantity: 10, Status: RequestRequested}
	requests.requests[req.ID] = req

	for _, next := range []RequestStatus{RequestApproved, RequestInTransit} {
		if _, err := svc.AdvanceRequest(ctx, req.ID, next); err != nil {
			t.Fatalf("advance to %s failed: %v", next, err)
		}
		if inv.saves != 0 {
			t.Fatalf("inventory written before delivery at %s", next)
		}
	}

	if _, err := svc.AdvanceRequest(ctx, req.ID, RequestDelivered); err != nil {
		t.Fatalf("advance to Delivered failed: %v", err)
	}
	if inv.saves != 1 {
		t.Errorf("inventory saves = %d, want 1", inv.saves)
	}
	if inv.inv.Blood[hospital.OPos] != 42 {
		t.Errorf("O+ units = %d, want 42", inv.inv.Blood[hospital.OPos])
	}

	// Delivered is terminal; replaying the edge must not debit again.
	if _, err := svc.AdvanceRequest(ctx, req.ID, RequestDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on replay, got %v", err)
	}
	if inv.inv.Blood[hospital.OPos] != 42 {
		t.Errorf("replay double-debited: O+ = %d", inv.inv.Blood[hospital.OPos])
	}
}

func TestAdvanceRequest_RejectsIllegalJump(t *testing.T) {
	svc, inv, requests, _ := newTestService()

	req := &ResourceRequest{ID: uuid.New(), Type: ResourceOxygen, Quantity: 5, Status: RequestRequested}
	requests.requests[req.ID] = req

	if _, err := svc.AdvanceRequest(context.Background(), req.ID, RequestDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if req.Status != RequestRequested {
		t.Errorf("status mutated to %s on rejected transition", req.Status)
	}
	if inv.saves != 0 {
		t.Errorf("inventory written on rejected transition")
	}
}

func TestAdvanceRequest_ConcurrentSwapLosesCleanly(t *testing.T) {
	svc, inv, requests, _ := newTestService()

	req := &ResourceRequest{ID: uuid.New(), Type: ResourceOxygen, Quantity: 5, Status: RequestInTransit}
	requests.requests[req.ID] = req

	// Another actor cancels between the read and the swap.
	requests.afterGet = func() { req.Status = RequestCancelled }

	if _, err := svc.AdvanceRequest(context.Background(), req.ID, RequestDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on lost race, got %v", err)
	}
	if inv.saves != 0 {
		t.Errorf("inventory debited despite losing the status race")
	}
}

// -- Refill Tests --

func TestAdvanceRefill_CreditsOnVerifiedOnly(t *testing.T) {
	svc, inv, _, _ := newTestService()
	ctx := context.Background()

	order := &RefillOrder{Type: ResourceOxygen, Quantity: 50, Vendor: "AirGas"}
	if err := svc.CreateRefill(ctx, order); err != nil {
		t.Fatalf("CreateRefill failed: %v", err)
	}

	for _, next := range []RefillStatus{RefillConfirmed, RefillShipped, RefillDelivered} {
		if _, err := svc.AdvanceRefill(ctx, order.ID, next); err != nil {
			t.Fatalf("advance to %s failed: %v", next, err)
		}
		if inv.saves != 0 {
			t.Fatalf("inventory written before verification at %s", next)
		}
	}

	if _, err := svc.AdvanceRefill(ctx, order.ID, RefillVerified); err != nil {
		t.Fatalf("advance to Verified failed: %v", err)
	}
	if inv.saves != 1 {
		t.Errorf("inventory saves = %d, want 1", inv.saves)
	}
	if inv.inv.Oxygen.TankPercentage != 100 {
		t.Errorf("tank = %v, want capped at 100", inv.inv.Oxygen.TankPercentage)
	}

	if _, err := svc.AdvanceRefill(ctx, order.ID, RefillVerified); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on replay, got %v", err)
	}
	if inv.saves != 1 {
		t.Errorf("replay double-credited: saves = %d", inv.saves)
	}
}

func TestCreateRefill_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []*RefillOrder{
		{Type: ResourceVentilator, Quantity: 1, Vendor: "V"},
		{Type: ResourceOxygen, Quantity: 0, Vendor: "V"},
		{Type: ResourceOxygen, Quantity: 5},
		{Type: ResourceBlood, SubType: "Z+", Quantity: 5, Vendor: "V"},
		{Type: ResourceMedication, SubType: "Placebonol", Quantity: 5, Vendor: "V"},
	}
	for i, order := range cases {
		if err := svc.CreateRefill(ctx, order); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}

	ok := &RefillOrder{Type: ResourceMedication, SubType: "Fentanyl", Quantity: 100, Vendor: "PharmaCo"}
	if err := svc.CreateRefill(ctx, ok); err != nil {
		t.Fatalf("CreateRefill failed: %v", err)
	}
	if ok.Status != RefillRequested {
		t.Errorf("status = %s, want Requested", ok.Status)
	}
}
