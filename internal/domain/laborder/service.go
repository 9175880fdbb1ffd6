package laborder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service owns the lab order lifecycle. Publishing results is the only
// path into the completed state.
type Service struct {
	orders    Repository
	broadcast Broadcaster
}

func NewService(orders Repository, broadcast Broadcaster) *Service {
	return &Service{orders: orders, broadcast: broadcast}
}

func (s *Service) Create(ctx context.Context, o *LabOrder) error {
	if o.PatientID == uuid.Nil || o.DoctorID == uuid.Nil {
		return fmt.Errorf("patient_id and doctor_id are required")
	}
	if o.TestType == "" {
		return fmt.Errorf("test_type is required")
	}
	o.Status = StatusOrdered
	if err := s.orders.Create(ctx, o); err != nil {
		return err
	}
	s.broadcast.BroadcastLabOrderCreated(o.DoctorID.String(), o)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*LabOrder, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	if status == StatusCompleted {
		return fmt.Errorf("use the results operation to complete an order")
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Status == StatusCompleted {
		return fmt.Errorf("order already completed")
	}
	if o.Status == status {
		return nil
	}
	o.Status = status
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	s.broadcast.BroadcastLabOrderStatusChanged(o.DoctorID.String(), o.ID.String(), status)
	return nil
}

// SetResults attaches results and completes the order in one step.
func (s *Service) SetResults(ctx context.Context, id uuid.UUID, results string) error {
	if results == "" {
		return fmt.Errorf("results are required")
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Status == StatusCancelled {
		return fmt.Errorf("cannot attach results to a cancelled order")
	}
	now := time.Now()
	o.Status = StatusCompleted
	o.Results = &results
	o.ResultsAt = &now
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	s.broadcast.BroadcastLabOrderResultsReady(o.DoctorID.String(), o.ID.String(), results)
	return nil
}

func (s *Service) List(ctx context.Context, doctorID, patientID *uuid.UUID, limit, offset int) ([]*LabOrder, int, error) {
	switch {
	case doctorID != nil:
		return s.orders.ListByDoctor(ctx, *doctorID, limit, offset)
	case patientID != nil:
		return s.orders.ListByPatient(ctx, *patientID, limit, offset)
	default:
		return s.orders.List(ctx, limit, offset)
	}
}
