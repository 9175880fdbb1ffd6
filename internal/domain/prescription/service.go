package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service enforces the prescription status machine and mirrors every
// transition onto the real-time gateway.
type Service struct {
	prescriptions Repository
	broadcast     Broadcaster
}

func NewService(prescriptions Repository, broadcast Broadcaster) *Service {
	return &Service{prescriptions: prescriptions, broadcast: broadcast}
}

func (s *Service) Create(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil || p.DoctorID == uuid.Nil {
		return fmt.Errorf("patient_id and doctor_id are required")
	}
	if p.Medication == "" || p.Dosage == "" {
		return fmt.Errorf("medication and dosage are required")
	}
	p.Status = StatusPending
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return err
	}
	s.broadcast.BroadcastPrescriptionCreated(p.DoctorID.String(), p)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

// UpdateStatus moves a prescription through the status machine. Delivery
// has its own entry point so the delivered-by audit fields stay mandatory.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	if status == StatusDelivered {
		return fmt.Errorf("use the deliver operation to mark delivered")
	}
	p, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == StatusDelivered {
		return fmt.Errorf("prescription already delivered")
	}
	if p.Status == status {
		return nil
	}
	p.Status = status
	if err := s.prescriptions.Update(ctx, p); err != nil {
		return err
	}
	s.broadcast.BroadcastPrescriptionStatusChanged(p.DoctorID.String(), p.ID.String(), status)
	return nil
}

func (s *Service) Deliver(ctx context.Context, id uuid.UUID, deliveredBy string) error {
	if deliveredBy == "" {
		return fmt.Errorf("delivered_by is required")
	}
	p, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch p.Status {
	case StatusDelivered:
		return fmt.Errorf("prescription already delivered")
	case StatusCancelled:
		return fmt.Errorf("cannot deliver a cancelled prescription")
	}
	now := time.Now()
	p.Status = StatusDelivered
	p.DeliveredBy = &deliveredBy
	p.DeliveredAt = &now
	if err := s.prescriptions.Update(ctx, p); err != nil {
		return err
	}
	s.broadcast.BroadcastPrescriptionDelivered(p.DoctorID.String(), p.ID.String(), deliveredBy)
	return nil
}

func (s *Service) List(ctx context.Context, doctorID *uuid.UUID, status string, limit, offset int) ([]*Prescription, int, error) {
	switch {
	case doctorID != nil:
		return s.prescriptions.ListByDoctor(ctx, *doctorID, limit, offset)
	case status != "":
		if !ValidStatus(status) {
			return nil, 0, fmt.Errorf("unknown status %q", status)
		}
		return s.prescriptions.ListByStatus(ctx, status, limit, offset)
	default:
		return s.prescriptions.List(ctx, limit, offset)
	}
}
