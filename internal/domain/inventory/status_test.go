package inventory

import "testing"

func TestRequestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RequestStatus
		want     bool
	}{
		{RequestRequested, RequestApproved, true},
		{RequestRequested, RequestCancelled, true},
		{RequestRequested, RequestDelivered, false},
		{RequestApproved, RequestInTransit, true},
		{RequestApproved, RequestCancelled, true},
		{RequestInTransit, RequestDelivered, true},
		{RequestInTransit, RequestCancelled, true},
		{RequestDelivered, RequestCancelled, false},
		{RequestDelivered, RequestDelivered, false},
		{RequestCancelled, RequestApproved, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRefillStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RefillStatus
		want     bool
	}{
		{RefillRequested, RefillConfirmed, true},
		{RefillRequested, RefillShipped, false},
		{RefillConfirmed, RefillShipped, true},
		{RefillShipped, RefillDelivered, true},
		{RefillDelivered, RefillVerified, true},
		{RefillVerified, RefillVerified, false},
		{RefillDelivered, RefillDelivered, false},
		{RefillVerified, RefillRequested, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if RequestStatus("Teleported").Valid() {
		t.Error("unknown request status reported valid")
	}
	if RefillStatus("Teleported").Valid() {
		t.Error("unknown refill status reported valid")
	}
	if !RequestDelivered.Valid() || !RefillVerified.Valid() {
		t.Error("terminal statuses must still be valid states")
	}
}
