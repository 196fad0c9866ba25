package memory

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TemplateRepository struct {
	store *Store
}

var _ entity.TemplateRepositoryInterface = (*TemplateRepository)(nil)

func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

func (r *TemplateRepository) List(ctx context.Context) ([]entity.MessageTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]entity.MessageTemplate(nil), r.store.templates...), nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.MessageTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, t := range r.store.templates {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, entity.ErrTemplateNotFound
}

func (r *TemplateRepository) Create(ctx context.Context, t *entity.MessageTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.templates = append([]entity.MessageTemplate{*t}, r.store.templates...)
	return nil
}

func (r *TemplateRepository) Update(ctx context.Context, t *entity.MessageTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.templates {
		if existing.ID == t.ID {
			r.store.templates[i] = *t
			return nil
		}
	}
	return entity.ErrTemplateNotFound
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, t := range r.store.templates {
		if t.ID == id {
			r.store.templates = append(r.store.templates[:i:i], r.store.templates[i+1:]...)
			return nil
		}
	}
	return entity.ErrTemplateNotFound
}
