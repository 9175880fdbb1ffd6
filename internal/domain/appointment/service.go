package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service owns appointment lifecycle rules and pushes change events to
// the real-time gateway after each successful write.
type Service struct {
	appointments Repository
	broadcast    Broadcaster
}

func NewService(appointments Repository, broadcast Broadcaster) *Service {
	return &Service{appointments: appointments, broadcast: broadcast}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil || a.DoctorID == uuid.Nil {
		return fmt.Errorf("patient_id and doctor_id are required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return err
	}
	s.broadcast.BroadcastAppointmentCreated(a.DoctorID.String(), a)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	existing, err := s.appointments.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing.Status == StatusCancelled {
		return fmt.Errorf("cannot update a cancelled appointment")
	}
	a.PatientID = existing.PatientID
	a.DoctorID = existing.DoctorID
	if a.Status == "" {
		a.Status = existing.Status
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		return err
	}
	s.broadcast.BroadcastAppointmentUpdated(a.DoctorID.String(), a)
	return nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == StatusCancelled {
		return nil
	}
	a.Status = StatusCancelled
	if err := s.appointments.Update(ctx, a); err != nil {
		return err
	}
	s.broadcast.BroadcastAppointmentCancelled(a.DoctorID.String(), a.ID.String())
	return nil
}

func (s *Service) List(ctx context.Context, doctorID, patientID *uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	switch {
	case doctorID != nil:
		return s.appointments.ListByDoctor(ctx, *doctorID, limit, offset)
	case patientID != nil:
		return s.appointments.ListByPatient(ctx, *patientID, limit, offset)
	default:
		return s.appointments.List(ctx, limit, offset)
	}
}
