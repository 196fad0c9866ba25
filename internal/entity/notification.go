package entity

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationProspect NotificationType = "prospect"
	NotificationTask     NotificationType = "task"
	NotificationMessage  NotificationType = "message"
	NotificationSystem   NotificationType = "system"
)

var NotificationTypes = []NotificationType{
	NotificationProspect,
	NotificationTask,
	NotificationMessage,
	NotificationSystem,
}

type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Timestamp   time.Time        `json:"timestamp"`
	Read        bool             `json:"read"`
	Link        string           `json:"link,omitempty"`
}

type NotificationRepositoryInterface interface {
	// List devolve da mais recente para a mais antiga.
	List(ctx context.Context) ([]Notification, error)
	Append(ctx context.Context, n *Notification) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}
