package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// EventPayload é o corpo JSON publicado em ex.crm.
type EventPayload struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	Name       string    `json:"name,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEventPayload(evt usecase.Event) EventPayload {
	return EventPayload(evt)
}

func (p EventPayload) Event() usecase.Event {
	return usecase.Event(p)
}

// AMQPPublisher é o pedaço do *amqp.Channel que o producer usa.
type AMQPPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch AMQPPublisher
}

var _ usecase.EventPublisher = (*RabbitMQProducer)(nil)

func NewProducer(ch AMQPPublisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) Publish(ctx context.Context, evt usecase.Event) error {
	body, err := json.Marshal(NewEventPayload(evt))
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.crm
		RoutingKey,   // k.crm.event
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         evt.Type,
			Timestamp:    evt.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}

// InlinePublisher entrega o evento direto ao handler, sem broker (AMQP_URL vazio).
type InlinePublisher struct {
	Handler usecase.EventHandler
}

var _ usecase.EventPublisher = (*InlinePublisher)(nil)

func NewInlinePublisher(h usecase.EventHandler) *InlinePublisher {
	return &InlinePublisher{Handler: h}
}

func (p *InlinePublisher) Publish(ctx context.Context, evt usecase.Event) error {
	return p.Handler.HandleEvent(ctx, evt)
}
