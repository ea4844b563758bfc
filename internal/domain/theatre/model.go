package theatre

import (
	"time"

	"github.com/google/uuid"
)

// TheatreStatus is the operating theatre lifecycle state. Only Ready
// theatres are eligible for new assignment.
type TheatreStatus string

const (
	StatusReady    TheatreStatus = "Ready"
	StatusInUse    TheatreStatus = "In Use"
	StatusCleaning TheatreStatus = "Cleaning"
)

func (s TheatreStatus) Valid() bool {
	return s == StatusReady || s == StatusInUse || s == StatusCleaning
}

// Theatre maps to the theatre table: one operating suite, independent of
// ward beds.
type Theatre struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	Name             string        `db:"name" json:"name"`
	Status           TheatreStatus `db:"status" json:"status"`
	CurrentPatientID *uuid.UUID    `db:"current_patient_id" json:"current_patient_id,omitempty"`
	CurrentSurgery   *string       `db:"current_surgery" json:"current_surgery,omitempty"`
	NextAvailable    string        `db:"next_available" json:"next_available"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// Assignment pairs one ranked surgical candidate with one ready theatre.
type Assignment struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	TheatreID   uuid.UUID `json:"theatre_id"`
	TheatreName string    `json:"theatre_name"`
	Procedure   string    `json:"procedure"`
}
