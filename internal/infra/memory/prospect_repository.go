package memory

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ProspectRepository struct {
	store *Store
}

var _ entity.ProspectRepositoryInterface = (*ProspectRepository)(nil)

func NewProspectRepository(store *Store) *ProspectRepository {
	return &ProspectRepository{store: store}
}

func (r *ProspectRepository) List(ctx context.Context) ([]entity.Prospect, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]entity.Prospect, 0, len(r.store.prospects))
	for _, p := range r.store.prospects {
		out = append(out, cloneProspect(p))
	}
	return out, nil
}

func (r *ProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.prospects {
		if p.ID == id {
			cp := cloneProspect(p)
			return &cp, nil
		}
	}
	return nil, entity.ErrProspectNotFound
}

func (r *ProspectRepository) Create(ctx context.Context, p *entity.Prospect) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.prospects {
		if existing.ID == p.ID {
			return fmt.Errorf("prospect %s já existe", p.ID)
		}
	}
	if p.Version == 0 {
		p.Version = 1
	}
	r.store.prospects = append(r.store.prospects, cloneProspect(*p))
	return nil
}

// Update aplica controle otimista: p.Version precisa ser a versão gravada.
// Em sucesso p.Version é incrementado.
func (r *ProspectRepository) Update(ctx context.Context, p *entity.Prospect) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.prospects {
		if existing.ID != p.ID {
			continue
		}
		if existing.Version != p.Version {
			return entity.ErrVersionConflict
		}
		updated := cloneProspect(*p)
		updated.CreatedAt = existing.CreatedAt
		updated.Version = existing.Version + 1
		r.store.prospects[i] = updated

		p.CreatedAt = updated.CreatedAt
		p.Version = updated.Version
		return nil
	}
	return entity.ErrProspectNotFound
}
