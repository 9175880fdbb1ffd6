package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	byID    map[uuid.UUID]*Appointment
	created []*Appointment
	updated []*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	m.byID[a.ID] = a
	m.created = append(m.created, a)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.byID[a.ID] = a
	m.updated = append(m.updated, a)
	return nil
}

func (m *mockRepo) List(_ context.Context, _, _ int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.byID {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, _, _ int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.byID {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.byID {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

type recordedEvent struct {
	kind     string
	doctorID string
	payload  interface{}
}

type recordingBroadcaster struct {
	events []recordedEvent
}

func (r *recordingBroadcaster) BroadcastAppointmentCreated(doctorID string, a interface{}) {
	r.events = append(r.events, recordedEvent{"created", doctorID, a})
}

func (r *recordingBroadcaster) BroadcastAppointmentUpdated(doctorID string, a interface{}) {
	r.events = append(r.events, recordedEvent{"updated", doctorID, a})
}

func (r *recordingBroadcaster) BroadcastAppointmentCancelled(doctorID, appointmentID string) {
	r.events = append(r.events, recordedEvent{"cancelled", doctorID, appointmentID})
}

func newTestService() (*Service, *mockRepo, *recordingBroadcaster) {
	repo := newMockRepo()
	bc := &recordingBroadcaster{}
	return NewService(repo, bc), repo, bc
}

func validAppointment() *Appointment {
	return &Appointment{
		PatientID:   uuid.New(),
		DoctorID:    uuid.New(),
		ScheduledAt: time.Now().Add(24 * time.Hour),
	}
}

func TestCreate_BroadcastsToDoctorRoom(t *testing.T) {
	svc, repo, bc := newTestService()

	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("expected default status %q, got %q", StatusScheduled, a.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created, got %d", len(repo.created))
	}
	if len(bc.events) != 1 || bc.events[0].kind != "created" {
		t.Fatalf("expected one created event, got %+v", bc.events)
	}
	if bc.events[0].doctorID != a.DoctorID.String() {
		t.Errorf("event scoped to %q, want doctor %q", bc.events[0].doctorID, a.DoctorID)
	}
}

func TestCreate_RejectsMissingFields(t *testing.T) {
	svc, _, bc := newTestService()

	tests := []struct {
		name string
		a    *Appointment
	}{
		{"missing patient", &Appointment{DoctorID: uuid.New(), ScheduledAt: time.Now()}},
		{"missing doctor", &Appointment{PatientID: uuid.New(), ScheduledAt: time.Now()}},
		{"missing time", &Appointment{PatientID: uuid.New(), DoctorID: uuid.New()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tt.a); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if len(bc.events) != 0 {
		t.Errorf("no events expected on rejected creates, got %d", len(bc.events))
	}
}

func TestUpdate_RejectsCancelled(t *testing.T) {
	svc, _, bc := newTestService()

	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	upd := &Appointment{ID: a.ID, ScheduledAt: time.Now().Add(48 * time.Hour)}
	if err := svc.Update(context.Background(), upd); err == nil {
		t.Error("expected error updating cancelled appointment")
	}

	// One created plus one cancelled, nothing for the rejected update.
	if len(bc.events) != 2 {
		t.Errorf("expected 2 events, got %d", len(bc.events))
	}
}

func TestCancel_IsIdempotent(t *testing.T) {
	svc, _, bc := newTestService()

	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("second cancel: %v", err)
	}

	var cancels int
	for _, ev := range bc.events {
		if ev.kind == "cancelled" {
			cancels++
		}
	}
	if cancels != 1 {
		t.Errorf("expected exactly 1 cancelled event, got %d", cancels)
	}
}

func TestUpdate_PreservesParties(t *testing.T) {
	svc, _, _ := newTestService()

	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}

	upd := &Appointment{ID: a.ID, ScheduledAt: a.ScheduledAt.Add(time.Hour), Status: StatusConfirmed}
	if err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.PatientID != a.PatientID || upd.DoctorID != a.DoctorID {
		t.Error("update must not reassign patient or doctor")
	}
}

func TestList_FiltersByDoctor(t *testing.T) {
	svc, _, _ := newTestService()

	docA := uuid.New()
	for i := 0; i < 3; i++ {
		a := validAppointment()
		if i < 2 {
			a.DoctorID = docA
		}
		if err := svc.Create(context.Background(), a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), &docA, nil, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 for doctor, got %d (total %d)", len(items), total)
	}
}
