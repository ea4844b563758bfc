package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

// ResourceType names a consumable class moved by requests and refills.
type ResourceType string

const (
	ResourceOxygen     ResourceType = "Oxygen"
	ResourceBlood      ResourceType = "Blood"
	ResourceVentilator ResourceType = "Ventilator"
	ResourceMedication ResourceType = "Medication"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceOxygen, ResourceBlood, ResourceVentilator, ResourceMedication:
		return true
	}
	return false
}

// OxygenSupply is the oxygen slice of the facility inventory.
type OxygenSupply struct {
	TankPercentage     float64 `db:"tank_percentage" json:"tank_percentage"`
	CylindersAvailable int     `db:"cylinders_available" json:"cylinders_available"`
	CylindersInUse     int     `db:"cylinders_in_use" json:"cylinders_in_use"`
	UsageRatePerMin    float64 `db:"usage_rate_per_min" json:"usage_rate_per_min"`
	RefillScheduled    bool    `db:"refill_scheduled" json:"refill_scheduled"`
}

// Medication is one tracked critical medication line.
type Medication struct {
	Name         string `db:"name" json:"name"`
	Stock        int    `db:"stock" json:"stock"`
	Unit         string `db:"unit" json:"unit"`
	MinThreshold int    `db:"min_threshold" json:"min_threshold"`
}

// Critical reports whether the line has fallen below its minimum threshold.
func (m Medication) Critical() bool { return m.Stock < m.MinThreshold }

// Inventory is the facility-wide consumable snapshot. All quantities stay
// non-negative; every debit clamps at zero.
type Inventory struct {
	Oxygen      OxygenSupply               `json:"oxygen"`
	Blood       map[hospital.BloodGroup]int `json:"blood"`
	Medications []Medication               `json:"medications"`
}

// Clone returns a deep copy so ledger operations can compute a full
// next-state value without mutating the committed one.
func (inv *Inventory) Clone() *Inventory {
	next := &Inventory{
		Oxygen:      inv.Oxygen,
		Blood:       make(map[hospital.BloodGroup]int, len(inv.Blood)),
		Medications: make([]Medication, len(inv.Medications)),
	}
	for g, n := range inv.Blood {
		next.Blood[g] = n
	}
	copy(next.Medications, inv.Medications)
	return next
}

// HasMedication reports whether a line with the given name is tracked.
func (inv *Inventory) HasMedication(name string) bool {
	for _, m := range inv.Medications {
		if m.Name == name {
			return true
		}
	}
	return false
}

// CriticalMedications lists every line currently under threshold.
func (inv *Inventory) CriticalMedications() []Medication {
	var out []Medication
	for _, m := range inv.Medications {
		if m.Critical() {
			out = append(out, m)
		}
	}
	return out
}

// Urgency grades a resource request.
type Urgency string

const (
	UrgencyNormal   Urgency = "Normal"
	UrgencyUrgent   Urgency = "Urgent"
	UrgencyCritical Urgency = "Critical"
)

func (u Urgency) Valid() bool {
	return u == UrgencyNormal || u == UrgencyUrgent || u == UrgencyCritical
}

// ResourceRequest maps to the resource_request table: an internal transfer
// of stock between departments.
type ResourceRequest struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	Type        ResourceType        `db:"type" json:"type"`
	SubType     string              `db:"sub_type" json:"sub_type,omitempty"`
	Quantity    int                 `db:"quantity" json:"quantity"`
	FromDept    hospital.Department `db:"from_dept" json:"from_dept"`
	ToDept      hospital.Department `db:"to_dept" json:"to_dept"`
	Urgency     Urgency             `db:"urgency" json:"urgency"`
	Status      RequestStatus       `db:"status" json:"status"`
	RequestedBy string              `db:"requested_by" json:"requested_by"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`
}

// RefillOrder maps to the refill_order table: a procurement order against
// an external vendor.
type RefillOrder struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	Type      ResourceType `db:"type" json:"type"`
	SubType   string       `db:"sub_type" json:"sub_type,omitempty"`
	Quantity  int          `db:"quantity" json:"quantity"`
	Vendor    string       `db:"vendor" json:"vendor"`
	Status    RefillStatus `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}
