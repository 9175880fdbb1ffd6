package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service maintains per-doctor waiting queues. Every mutation keeps
// positions 1-based and contiguous, then rebroadcasts the doctor's
// queue snapshot.
type Service struct {
	entries   Repository
	broadcast Broadcaster
}

func NewService(entries Repository, broadcast Broadcaster) *Service {
	return &Service{entries: entries, broadcast: broadcast}
}

func (s *Service) Add(ctx context.Context, doctorID, patientID uuid.UUID) (*Entry, error) {
	if doctorID == uuid.Nil || patientID == uuid.Nil {
		return nil, fmt.Errorf("doctor_id and patient_id are required")
	}
	existing, err := s.entries.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.PatientID == patientID && e.Status != StatusCompleted {
			return nil, fmt.Errorf("patient already in queue")
		}
	}

	pos, err := s.entries.NextPosition(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	e := &Entry{DoctorID: doctorID, PatientID: patientID, Position: pos, Status: StatusWaiting}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}

	s.broadcast.BroadcastQueuePatientAdded(e, e.Position)
	s.rebroadcast(ctx, doctorID)
	return e, nil
}

func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.entries.ShiftDown(ctx, e.DoctorID, e.Position); err != nil {
		return err
	}

	s.broadcast.BroadcastQueuePatientRemoved(e.PatientID.String())
	s.rebroadcast(ctx, e.DoctorID)
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e.Status == status {
		return nil
	}
	e.Status = status
	if err := s.entries.Update(ctx, e); err != nil {
		return err
	}
	s.rebroadcast(ctx, e.DoctorID)
	return nil
}

func (s *Service) List(ctx context.Context, doctorID uuid.UUID) ([]*Entry, error) {
	return s.entries.ListByDoctor(ctx, doctorID)
}

// rebroadcast pushes the doctor's full queue snapshot. Snapshot failures
// are swallowed so a read error cannot undo a committed write.
func (s *Service) rebroadcast(ctx context.Context, doctorID uuid.UUID) {
	snapshot, err := s.entries.ListByDoctor(ctx, doctorID)
	if err != nil {
		return
	}
	s.broadcast.BroadcastQueueUpdated(snapshot)
}
