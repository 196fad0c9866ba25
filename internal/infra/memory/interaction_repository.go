package memory

import (
	"context"
	"sort"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type InteractionRepository struct {
	store *Store
}

var _ entity.InteractionRepositoryInterface = (*InteractionRepository)(nil)

func NewInteractionRepository(store *Store) *InteractionRepository {
	return &InteractionRepository{store: store}
}

func (r *InteractionRepository) Append(ctx context.Context, i *entity.Interaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.interactions = append(r.store.interactions, cloneInteraction(*i))
	return nil
}

// Remove existe só para a compensação do registro de interação.
func (r *InteractionRepository) Remove(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for idx, i := range r.store.interactions {
		if i.ID == id {
			r.store.interactions = append(r.store.interactions[:idx:idx], r.store.interactions[idx+1:]...)
			return nil
		}
	}
	return nil
}

func (r *InteractionRepository) ListByProspect(ctx context.Context, prospectID string) ([]entity.Interaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []entity.Interaction
	for _, i := range r.store.interactions {
		if i.ProspectID == prospectID {
			out = append(out, cloneInteraction(i))
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Timestamp.Before(out[b].Timestamp)
	})
	return out, nil
}
