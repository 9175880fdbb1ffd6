package queue

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one patient's slot in a doctor's waiting queue. Positions are
// 1-based and contiguous per doctor.
type Entry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Position  int       `db:"position" json:"position"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Queue entry statuses.
const (
	StatusWaiting   = "waiting"
	StatusCalled    = "called"
	StatusCompleted = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusCalled, StatusCompleted:
		return true
	}
	return false
}
