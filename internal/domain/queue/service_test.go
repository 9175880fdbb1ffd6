package queue

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	byID map[uuid.UUID]*Entry
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Entry)}
}

func (m *mockRepo) Create(_ context.Context, e *Entry) error {
	e.ID = uuid.New()
	m.byID[e.ID] = e
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return e, nil
}

func (m *mockRepo) Update(_ context.Context, e *Entry) error {
	m.byID[e.ID] = e
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Entry, error) {
	var out []*Entry
	for _, e := range m.byID {
		if e.DoctorID == doctorID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *mockRepo) NextPosition(_ context.Context, doctorID uuid.UUID) (int, error) {
	max := 0
	for _, e := range m.byID {
		if e.DoctorID == doctorID && e.Position > max {
			max = e.Position
		}
	}
	return max + 1, nil
}

func (m *mockRepo) ShiftDown(_ context.Context, doctorID uuid.UUID, fromPosition int) error {
	for _, e := range m.byID {
		if e.DoctorID == doctorID && e.Position > fromPosition {
			e.Position--
		}
	}
	return nil
}

type recordingBroadcaster struct {
	added     []int
	removed   []string
	snapshots [][]*Entry
}

func (r *recordingBroadcaster) BroadcastQueueUpdated(queue interface{}) {
	r.snapshots = append(r.snapshots, queue.([]*Entry))
}

func (r *recordingBroadcaster) BroadcastQueuePatientAdded(_ interface{}, position int) {
	r.added = append(r.added, position)
}

func (r *recordingBroadcaster) BroadcastQueuePatientRemoved(patientID string) {
	r.removed = append(r.removed, patientID)
}

func newTestService() (*Service, *recordingBroadcaster) {
	bc := &recordingBroadcaster{}
	return NewService(newMockRepo(), bc), bc
}

func fill(t *testing.T, svc *Service, doctorID uuid.UUID, n int) []*Entry {
	t.Helper()
	out := make([]*Entry, 0, n)
	for i := 0; i < n; i++ {
		e, err := svc.Add(context.Background(), doctorID, uuid.New())
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		out = append(out, e)
	}
	return out
}

func assertContiguous(t *testing.T, entries []*Entry) {
	t.Helper()
	for i, e := range entries {
		if e.Position != i+1 {
			t.Errorf("position at index %d is %d, want %d", i, e.Position, i+1)
		}
	}
}

func TestAdd_AssignsSequentialPositions(t *testing.T) {
	svc, bc := newTestService()
	doc := uuid.New()

	entries := fill(t, svc, doc, 3)
	assertContiguous(t, entries)

	if len(bc.added) != 3 || bc.added[2] != 3 {
		t.Errorf("added positions %v, want [1 2 3]", bc.added)
	}
	if len(bc.snapshots) != 3 {
		t.Errorf("expected a snapshot per add, got %d", len(bc.snapshots))
	}
}

func TestAdd_RejectsDuplicatePatient(t *testing.T) {
	svc, _ := newTestService()
	doc, pat := uuid.New(), uuid.New()

	if _, err := svc.Add(context.Background(), doc, pat); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(context.Background(), doc, pat); err == nil {
		t.Error("duplicate waiting patient must be rejected")
	}
}

func TestAdd_IndependentQueuesPerDoctor(t *testing.T) {
	svc, _ := newTestService()
	docA, docB := uuid.New(), uuid.New()

	fill(t, svc, docA, 2)
	entries := fill(t, svc, docB, 1)

	if entries[0].Position != 1 {
		t.Errorf("second doctor's queue starts at %d, want 1", entries[0].Position)
	}
}

func TestRemove_ClosesGap(t *testing.T) {
	svc, bc := newTestService()
	doc := uuid.New()

	entries := fill(t, svc, doc, 3)
	if err := svc.Remove(context.Background(), entries[1].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	remaining, err := svc.List(context.Background(), doc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(remaining))
	}
	assertContiguous(t, remaining)

	if len(bc.removed) != 1 || bc.removed[0] != entries[1].PatientID.String() {
		t.Errorf("removed events %v, want patient %s", bc.removed, entries[1].PatientID)
	}
}

func TestUpdateStatus_BroadcastsSnapshot(t *testing.T) {
	svc, bc := newTestService()
	doc := uuid.New()

	entries := fill(t, svc, doc, 1)
	before := len(bc.snapshots)
	if err := svc.UpdateStatus(context.Background(), entries[0].ID, StatusCalled); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if len(bc.snapshots) != before+1 {
		t.Error("status change must rebroadcast the queue")
	}

	last := bc.snapshots[len(bc.snapshots)-1]
	if last[0].Status != StatusCalled {
		t.Errorf("snapshot status %q, want %q", last[0].Status, StatusCalled)
	}
}

func TestUpdateStatus_NoOpAndInvalid(t *testing.T) {
	svc, bc := newTestService()
	doc := uuid.New()

	entries := fill(t, svc, doc, 1)
	before := len(bc.snapshots)
	if err := svc.UpdateStatus(context.Background(), entries[0].ID, StatusWaiting); err != nil {
		t.Fatalf("no-op status: %v", err)
	}
	if len(bc.snapshots) != before {
		t.Error("same-status update must not rebroadcast")
	}
	if err := svc.UpdateStatus(context.Background(), entries[0].ID, "bogus"); err == nil {
		t.Error("expected error for unknown status")
	}
}
