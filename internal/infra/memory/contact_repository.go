package memory

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ContactRepository struct {
	store *Store
}

var _ entity.ContactRepositoryInterface = (*ContactRepository)(nil)

func NewContactRepository(store *Store) *ContactRepository {
	return &ContactRepository{store: store}
}

func (r *ContactRepository) List(ctx context.Context) ([]entity.Contact, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]entity.Contact, 0, len(r.store.contacts))
	for _, c := range r.store.contacts {
		out = append(out, cloneContact(c))
	}
	return out, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.contacts {
		if c.ID == id {
			cp := cloneContact(c)
			return &cp, nil
		}
	}
	return nil, entity.ErrContactNotFound
}

// Update não permite remover mensagens já gravadas (sequência append-only).
func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.contacts {
		if existing.ID != c.ID {
			continue
		}
		if len(c.Messages) < len(existing.Messages) {
			return entity.ErrVersionConflict
		}
		r.store.contacts[i] = cloneContact(*c)
		return nil
	}
	return entity.ErrContactNotFound
}
