package laborder

import (
	"time"

	"github.com/google/uuid"
)

// LabOrder maps to the lab_order table.
type LabOrder struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	TestType  string     `db:"test_type" json:"test_type"`
	Notes     *string    `db:"notes" json:"notes,omitempty"`
	Status    string     `db:"status" json:"status"`
	Results   *string    `db:"results" json:"results,omitempty"`
	ResultsAt *time.Time `db:"results_at" json:"results_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Lab order statuses. Results arriving moves the order to completed.
const (
	StatusOrdered    = "ordered"
	StatusCollected  = "collected"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusOrdered, StatusCollected, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
