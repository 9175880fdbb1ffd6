package notification

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*Notification, int, error)
}

// Broadcaster is the slice of the real-time gateway the notification
// service pushes into after persisting.
type Broadcaster interface {
	BroadcastNotification(userID, notificationType, message string, data interface{})
}
