package queue

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Entry, error)
	NextPosition(ctx context.Context, doctorID uuid.UUID) (int, error)
	// ShiftDown closes the gap left at fromPosition after a removal.
	ShiftDown(ctx context.Context, doctorID uuid.UUID, fromPosition int) error
}

// Broadcaster is the slice of the real-time gateway the queue service
// pushes into after each committed write.
type Broadcaster interface {
	BroadcastQueueUpdated(queue interface{})
	BroadcastQueuePatientAdded(patient interface{}, position int)
	BroadcastQueuePatientRemoved(patientID string)
}
