package inventory

// RequestStatus is the resource-request state machine. Inventory is
// debited exactly once, on the edge into Delivered; re-processing the same
// transition is rejected, so the delta can never double-apply.
type RequestStatus string

const (
	RequestRequested RequestStatus = "Requested"
	RequestApproved  RequestStatus = "Approved"
	RequestInTransit RequestStatus = "In Transit"
	RequestDelivered RequestStatus = "Delivered"
	RequestCancelled RequestStatus = "Cancelled"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestRequested: {RequestApproved, RequestCancelled},
	RequestApproved:  {RequestInTransit, RequestCancelled},
	RequestInTransit: {RequestDelivered, RequestCancelled},
	RequestDelivered: {},
	RequestCancelled: {},
}

func (s RequestStatus) Valid() bool {
	_, ok := requestTransitions[s]
	return ok
}

func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, t := range requestTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// RefillStatus is the refill-order state machine. Stock is credited exactly
// once, on the edge into Verified.
type RefillStatus string

const (
	RefillRequested RefillStatus = "Requested"
	RefillConfirmed RefillStatus = "Confirmed"
	RefillShipped   RefillStatus = "Shipped"
	RefillDelivered RefillStatus = "Delivered"
	RefillVerified  RefillStatus = "Verified"
)

var refillTransitions = map[RefillStatus][]RefillStatus{
	RefillRequested: {RefillConfirmed},
	RefillConfirmed: {RefillShipped},
	RefillShipped:   {RefillDelivered},
	RefillDelivered: {RefillVerified},
	RefillVerified:  {},
}

func (s RefillStatus) Valid() bool {
	_, ok := refillTransitions[s]
	return ok
}

func (s RefillStatus) CanTransitionTo(next RefillStatus) bool {
	for _, t := range refillTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
