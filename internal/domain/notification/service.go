package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Service persists notifications and then pushes them to the
// recipient's socket room. Persist-then-push means an offline user
// still finds the notification on next login.
type Service struct {
	notifications Repository
	broadcast     Broadcaster
}

func NewService(notifications Repository, broadcast Broadcaster) *Service {
	return &Service{notifications: notifications, broadcast: broadcast}
}

func (s *Service) Send(ctx context.Context, userID, notificationType, message string, data interface{}) (*Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if notificationType == "" || message == "" {
		return nil, fmt.Errorf("type and message are required")
	}

	n := &Notification{UserID: userID, Type: notificationType, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode data: %w", err)
		}
		n.Data = raw
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	s.broadcast.BroadcastNotification(userID, notificationType, message, data)
	return n, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if _, err := s.notifications.GetByID(ctx, id); err != nil {
		return err
	}
	return s.notifications.MarkRead(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	if userID == "" {
		return nil, 0, fmt.Errorf("user_id is required")
	}
	return s.notifications.ListByUser(ctx, userID, unreadOnly, limit, offset)
}
