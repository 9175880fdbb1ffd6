package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	byID map[uuid.UUID]*Notification
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Notification)}
}

func (m *mockRepo) Create(_ context.Context, n *Notification) error {
	n.ID = uuid.New()
	m.byID[n.ID] = n
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Notification, error) {
	n, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return n, nil
}

func (m *mockRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	n, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	n.Read = true
	return nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]*Notification, int, error) {
	var out []*Notification
	for _, n := range m.byID {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

type pushed struct {
	userID, typ, message string
}

type recordingBroadcaster struct {
	events []pushed
}

func (r *recordingBroadcaster) BroadcastNotification(userID, notificationType, message string, _ interface{}) {
	r.events = append(r.events, pushed{userID, notificationType, message})
}

func newTestService() (*Service, *recordingBroadcaster) {
	bc := &recordingBroadcaster{}
	return NewService(newMockRepo(), bc), bc
}

func TestSend_PersistsThenPushes(t *testing.T) {
	svc, bc := newTestService()

	n, err := svc.Send(context.Background(), "doc1", TypeLabResult, "Critical result for patient P-001", map[string]string{"labOrderId": "lab-55"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if n.ID == uuid.Nil {
		t.Error("notification not persisted")
	}
	if n.Read {
		t.Error("new notification must be unread")
	}
	if len(bc.events) != 1 {
		t.Fatalf("expected 1 push, got %d", len(bc.events))
	}
	ev := bc.events[0]
	if ev.userID != "doc1" || ev.typ != TypeLabResult || ev.message != "Critical result for patient P-001" {
		t.Errorf("unexpected push %+v", ev)
	}
}

func TestSend_RejectsMissingFields(t *testing.T) {
	svc, bc := newTestService()

	if _, err := svc.Send(context.Background(), "", TypeSystem, "msg", nil); err == nil {
		t.Error("expected error without user_id")
	}
	if _, err := svc.Send(context.Background(), "doc1", "", "msg", nil); err == nil {
		t.Error("expected error without type")
	}
	if _, err := svc.Send(context.Background(), "doc1", TypeSystem, "", nil); err == nil {
		t.Error("expected error without message")
	}
	if len(bc.events) != 0 {
		t.Errorf("no pushes expected, got %d", len(bc.events))
	}
}

func TestMarkRead_FiltersUnread(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Send(context.Background(), "doc1", TypeSystem, "first", nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Send(context.Background(), "doc1", TypeSystem, "second", nil); err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := svc.MarkRead(context.Background(), a.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, total, err := svc.ListByUser(context.Background(), "doc1", true, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(unread) != 1 || unread[0].Message != "second" {
		t.Errorf("unread list %v (total %d)", unread, total)
	}

	all, total, err := svc.ListByUser(context.Background(), "doc1", false, 20, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(all))
	}
}

func TestMarkRead_UnknownID(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.MarkRead(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown notification")
	}
}
