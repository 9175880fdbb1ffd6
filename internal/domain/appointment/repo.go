package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
}

// Broadcaster is the slice of the real-time gateway the appointment
// service pushes into after each committed write.
type Broadcaster interface {
	BroadcastAppointmentCreated(doctorID string, appointment interface{})
	BroadcastAppointmentUpdated(doctorID string, appointment interface{})
	BroadcastAppointmentCancelled(doctorID, appointmentID string)
}
