package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription maps to the prescription table.
type Prescription struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID     uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Medication   string     `db:"medication" json:"medication"`
	Dosage       string     `db:"dosage" json:"dosage"`
	Instructions *string    `db:"instructions" json:"instructions,omitempty"`
	Status       string     `db:"status" json:"status"`
	DeliveredBy  *string    `db:"delivered_by" json:"delivered_by,omitempty"`
	DeliveredAt  *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Prescription statuses. A prescription moves pending -> ready -> delivered;
// cancelled is reachable from any non-delivered state.
const (
	StatusPending   = "pending"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
