package inventory

import "github.com/orchestra-health/orchestra/internal/domain/hospital"

// ApplyRequestDelivery computes the inventory after a resource request is
// delivered. Blood debits the requested group, oxygen debits cylinders;
// both floor at zero. The returned shortfall is how much of the debit the
// floor swallowed — nonzero means stock dropped since the request was
// validated at creation time, which callers should log. The input is not
// mutated; the full next state is returned for atomic commit.
func ApplyRequestDelivery(inv *Inventory, req *ResourceRequest) (*Inventory, int) {
	next := inv.Clone()
	shortfall := 0
	switch req.Type {
	case ResourceBlood:
		group := hospital.BloodGroup(req.SubType)
		have := next.Blood[group]
		if req.Quantity > have {
			shortfall = req.Quantity - have
		}
		next.Blood[group] = clampNonNegative(have - req.Quantity)
	case ResourceOxygen:
		have := next.Oxygen.CylindersAvailable
		if req.Quantity > have {
			shortfall = req.Quantity - have
		}
		next.Oxygen.CylindersAvailable = clampNonNegative(have - req.Quantity)
	}
	return next, shortfall
}

// ApplyRefillVerification computes the inventory after a refill order is
// verified. Oxygen credits the tank percentage capped at 100; medication
// credits the matching line's stock; blood credits the group uncapped.
func ApplyRefillVerification(inv *Inventory, order *RefillOrder) *Inventory {
	next := inv.Clone()
	switch order.Type {
	case ResourceOxygen:
		pct := next.Oxygen.TankPercentage + float64(order.Quantity)
		if pct > 100 {
			pct = 100
		}
		next.Oxygen.TankPercentage = pct
	case ResourceMedication:
		for i := range next.Medications {
			if next.Medications[i].Name == order.SubType {
				next.Medications[i].Stock += order.Quantity
				break
			}
		}
	case ResourceBlood:
		next.Blood[hospital.BloodGroup(order.SubType)] += order.Quantity
	}
	return next
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
