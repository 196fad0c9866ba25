package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// AMQPConsumer é o pedaço do *amqp.Channel que o worker usa.
type AMQPConsumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel AMQPConsumer
	Handler usecase.EventHandler
}

func NewWorker(ch AMQPConsumer, handler usecase.EventHandler) *Worker {
	return &Worker{Channel: ch, Handler: handler}
}

// Start consome até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	logrus.WithField("queue", queueName).Info("🐰 Worker aguardando eventos")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("🛑 Worker de eventos parado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var payload EventPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		logrus.WithError(err).Error("❌ [WORKER] JSON inválido")
		// mensagem podre: vai pra DLQ, sem requeue
		d.Nack(false, false)
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"event":     payload.Type,
		"entity_id": payload.EntityID,
	})

	if err := w.Handler.HandleEvent(ctx, payload.Event()); err != nil {
		log.WithError(err).Error("❌ [WORKER] Falha ao projetar evento")
		d.Nack(false, false)
		return
	}

	log.Debug("✅ [WORKER] Evento processado")
	d.Ack(false)
}
