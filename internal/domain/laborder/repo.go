package laborder

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *LabOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabOrder, error)
	Update(ctx context.Context, o *LabOrder) error
	List(ctx context.Context, limit, offset int) ([]*LabOrder, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*LabOrder, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*LabOrder, int, error)
}

// Broadcaster is the slice of the real-time gateway the lab order
// service pushes into after each committed write.
type Broadcaster interface {
	BroadcastLabOrderCreated(doctorID string, labOrder interface{})
	BroadcastLabOrderStatusChanged(doctorID, labOrderID, status string)
	BroadcastLabOrderResultsReady(doctorID, labOrderID, results string)
}
