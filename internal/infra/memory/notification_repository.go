package memory

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type NotificationRepository struct {
	store *Store
}

var _ entity.NotificationRepositoryInterface = (*NotificationRepository)(nil)

func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) List(ctx context.Context) ([]entity.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]entity.Notification(nil), r.store.notifications...), nil
}

// Append coloca a nova notificação no topo.
func (r *NotificationRepository) Append(ctx context.Context, n *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.notifications = append([]entity.Notification{*n}, r.store.notifications...)
	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.notifications {
		if r.store.notifications[i].ID == id {
			r.store.notifications[i].Read = true
			return nil
		}
	}
	return entity.ErrNotificationNotFound
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.notifications {
		r.store.notifications[i].Read = true
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, n := range r.store.notifications {
		if n.ID == id {
			r.store.notifications = append(r.store.notifications[:i:i], r.store.notifications[i+1:]...)
			return nil
		}
	}
	return entity.ErrNotificationNotFound
}
