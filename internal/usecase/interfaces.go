package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Clock permite fixar "agora" nos testes.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now() }

const (
	EventProspectStatusChanged = "prospect.status_changed"
	EventTaskStatusChanged     = "task.status_changed"
	EventTaskCreated           = "task.created"
	EventInteractionRecorded   = "interaction.recorded"
)

// Event é o que trafega no barramento (RabbitMQ ou inline).
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	Name       string    `json:"name,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}

type EventHandler interface {
	HandleEvent(ctx context.Context, evt Event) error
}

// EmailSender entrega mensagens do canal email (SMTP).
type EmailSender interface {
	SendMessage(to, name, subject, body string) error
}

// CurrentUserProvider expõe o usuário logado para atribuir tarefas derivadas.
type CurrentUserProvider interface {
	Current(ctx context.Context) (*entity.User, error)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// NoopPublisher descarta eventos (testes e CLI).
var NoopPublisher EventPublisher = noopPublisher{}
