package ward

import (
	"time"

	"github.com/google/uuid"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

// BedType distinguishes physical bed capabilities.
type BedType string

const (
	BedStandard  BedType = "Standard"
	BedICU       BedType = "ICU"
	BedIsolation BedType = "Isolation"
)

func (t BedType) Valid() bool {
	return t == BedStandard || t == BedICU || t == BedIsolation
}

// Bed maps to the bed table. The pool is created at facility initialization
// and beds are never destroyed during normal operation; only occupancy
// toggles. IsOccupied is true iff PatientID is set.
type Bed struct {
	ID         uuid.UUID           `db:"id" json:"id"`
	Number     string              `db:"number" json:"number"`
	Ward       hospital.Department `db:"ward" json:"ward"`
	Type       BedType             `db:"type" json:"type"`
	IsOccupied bool                `db:"is_occupied" json:"is_occupied"`
	PatientID  *uuid.UUID          `db:"patient_id" json:"patient_id,omitempty"`
	CreatedAt  time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at" json:"updated_at"`
}

// Occupancy summarizes bed usage for one ward.
type Occupancy struct {
	Ward     hospital.Department `db:"ward" json:"ward"`
	Total    int                 `db:"total" json:"total"`
	Occupied int                 `db:"occupied" json:"occupied"`
	Free     int                 `db:"free" json:"free"`
}
