package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification maps to the notification table. UserID is the recipient's
// account identifier, the same value the client presents when joining
// its socket rooms.
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Type      string          `db:"type" json:"type"`
	Message   string          `db:"message" json:"message"`
	Data      json.RawMessage `db:"data" json:"data,omitempty"`
	Read      bool            `db:"read" json:"read"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Well-known notification types. Callers may also send ad hoc types.
const (
	TypeLabResult    = "lab-result"
	TypeAppointment  = "appointment"
	TypePrescription = "prescription"
	TypeSystem       = "system"
)
