package prescription

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	List(ctx context.Context, limit, offset int) ([]*Prescription, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Prescription, int, error)
}

// Broadcaster is the slice of the real-time gateway the prescription
// service pushes into after each committed write.
type Broadcaster interface {
	BroadcastPrescriptionCreated(doctorID string, prescription interface{})
	BroadcastPrescriptionStatusChanged(doctorID, prescriptionID, status string)
	BroadcastPrescriptionDelivered(doctorID, prescriptionID, deliveredBy string)
}
