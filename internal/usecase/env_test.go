package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/memory"
	"github.com/xavierca1/ligue-crm/internal/infra/seed"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// testEnv é um Store semeado com os repositórios e um publisher que grava eventos.
type testEnv struct {
	store         *memory.Store
	prospects     *memory.ProspectRepository
	tasks         *memory.TaskRepository
	interactions  *memory.InteractionRepository
	contacts      *memory.ContactRepository
	templates     *memory.TemplateRepository
	notifications *memory.NotificationRepository
	users         *memory.UserDirectory
	events        *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	assert.NoError(t, seed.Load(store, fixedNow))
	return &testEnv{
		store:         store,
		prospects:     memory.NewProspectRepository(store),
		tasks:         memory.NewTaskRepository(store),
		interactions:  memory.NewInteractionRepository(store),
		contacts:      memory.NewContactRepository(store),
		templates:     memory.NewTemplateRepository(store),
		notifications: memory.NewNotificationRepository(store),
		users:         memory.NewUserDirectory(store),
		events:        &recordingPublisher{},
	}
}

func (e *testEnv) transitions() *StatusTransitionUseCase {
	return NewStatusTransitionUseCase(e.prospects, e.tasks, e.events, fixedClock)
}

func (e *testEnv) recorder() *RecordInteractionUseCase {
	return NewRecordInteractionUseCase(e.prospects, e.tasks, e.interactions, nil, e.events, fixedClock, "Juan Pérez")
}

func (e *testEnv) prospect(t *testing.T, id string) entity.Prospect {
	t.Helper()
	p, err := e.prospects.FindByID(context.Background(), id)
	assert.NoError(t, err)
	if p == nil {
		t.FailNow()
	}
	return *p
}

func (e *testEnv) task(t *testing.T, id string) entity.Task {
	t.Helper()
	task, err := e.tasks.FindByID(context.Background(), id)
	assert.NoError(t, err)
	if task == nil {
		t.FailNow()
	}
	return *task
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type staticUser struct {
	user *entity.User
	err  error
}

func (s staticUser) Current(ctx context.Context) (*entity.User, error) {
	return s.user, s.err
}
