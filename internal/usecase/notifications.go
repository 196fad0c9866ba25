package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type PushNotificationInput struct {
	Type        entity.NotificationType `json:"type" validate:"required,notification_type"`
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Link        string                  `json:"link,omitempty"`
}

type NotificationUseCase struct {
	notifications entity.NotificationRepositoryInterface
	now           Clock
}

func NewNotificationUseCase(notifications entity.NotificationRepositoryInterface, now Clock) *NotificationUseCase {
	if now == nil {
		now = SystemClock
	}
	return &NotificationUseCase{notifications: notifications, now: now}
}

// List devolve da mais nova para a mais antiga.
func (uc *NotificationUseCase) List(ctx context.Context) ([]entity.Notification, error) {
	all, err := uc.notifications.List(ctx)
	if err != nil {
		return nil, storeError("list notifications", err)
	}
	return all, nil
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context) (int, error) {
	all, err := uc.notifications.List(ctx)
	if err != nil {
		return 0, storeError("list notifications", err)
	}
	n := 0
	for _, item := range all {
		if !item.Read {
			n++
		}
	}
	return n, nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.notifications.MarkRead(ctx, id)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) error {
	return uc.notifications.MarkAllRead(ctx)
}

func (uc *NotificationUseCase) Clear(ctx context.Context, id string) error {
	return uc.notifications.Delete(ctx, id)
}

func (uc *NotificationUseCase) Push(ctx context.Context, input PushNotificationInput) (*entity.Notification, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	n := &entity.Notification{
		ID:          uuid.New().String(),
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Timestamp:   uc.now(),
		Link:        input.Link,
	}
	if err := uc.notifications.Append(ctx, n); err != nil {
		return nil, storeError("append notification", err)
	}
	return n, nil
}

// HandleEvent projeta eventos de domínio em notificações. Eventos sem
// projeção são ignorados.
func (uc *NotificationUseCase) HandleEvent(ctx context.Context, evt Event) error {
	var input PushNotificationInput

	switch evt.Type {
	case EventProspectStatusChanged:
		switch entity.ProspectStatus(evt.To) {
		case entity.ProspectGanado:
			input = PushNotificationInput{
				Type:        entity.NotificationProspect,
				Title:       "Prospecto ganado",
				Description: evt.Name + " pasó a ganado",
				Link:        "/prospects/" + evt.EntityID,
			}
		case entity.ProspectPerdido:
			input = PushNotificationInput{
				Type:        entity.NotificationProspect,
				Title:       "Prospecto perdido",
				Description: evt.Name + " pasó a perdido",
				Link:        "/prospects/" + evt.EntityID,
			}
		default:
			return nil
		}
	case EventTaskCreated:
		input = PushNotificationInput{
			Type:        entity.NotificationTask,
			Title:       "Nueva tarea asignada",
			Description: evt.Title,
			Link:        "/tasks/" + evt.EntityID,
		}
	default:
		return nil
	}

	n, err := uc.Push(ctx, input)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"event":           evt.Type,
		"notification_id": n.ID,
	}).Debug("🔔 Notificação projetada")
	return nil
}
