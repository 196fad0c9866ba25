package memory

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TaskRepository struct {
	store *Store
}

var _ entity.TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) List(ctx context.Context) ([]entity.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]entity.Task, 0, len(r.store.tasks))
	for _, t := range r.store.tasks {
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, t := range r.store.tasks {
		if t.ID == id {
			cp := cloneTask(t)
			return &cp, nil
		}
	}
	return nil, entity.ErrTaskNotFound
}

// Create insere no topo da lista, como a tela de tarefas faz.
func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.tasks {
		if existing.ID == t.ID {
			return fmt.Errorf("tarefa %s já existe", t.ID)
		}
	}
	if t.Version == 0 {
		t.Version = 1
	}
	r.store.tasks = append([]entity.Task{cloneTask(*t)}, r.store.tasks...)
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.tasks {
		if existing.ID != t.ID {
			continue
		}
		if existing.Version != t.Version {
			return entity.ErrVersionConflict
		}
		updated := cloneTask(*t)
		updated.CreatedAt = existing.CreatedAt
		updated.Version = existing.Version + 1
		r.store.tasks[i] = updated

		t.CreatedAt = updated.CreatedAt
		t.Version = updated.Version
		return nil
	}
	return entity.ErrTaskNotFound
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, t := range r.store.tasks {
		if t.ID == id {
			r.store.tasks = append(r.store.tasks[:i:i], r.store.tasks[i+1:]...)
			return nil
		}
	}
	return entity.ErrTaskNotFound
}
