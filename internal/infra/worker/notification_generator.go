package worker

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type Notifier interface {
	Push(ctx context.Context, input usecase.PushNotificationInput) (*entity.Notification, error)
}

// NotificationGenerator injeta notificações sintéticas: a cada tick, com
// probabilidade p, acrescenta uma de tipo aleatório. Só faz append.
type NotificationGenerator struct {
	notifier     Notifier
	tickInterval time.Duration
	probability  float64

	// Float64 e IntN são trocados nos testes para tornar o sorteio determinístico.
	Float64 func() float64
	IntN    func(n int) int
}

func NewNotificationGenerator(notifier Notifier, interval time.Duration, probability float64) *NotificationGenerator {
	if interval <= 0 {
		interval = time.Minute
	}
	return &NotificationGenerator{
		notifier:     notifier,
		tickInterval: interval,
		probability:  probability,
		Float64:      rand.Float64,
		IntN:         rand.IntN,
	}
}

// Start bloqueia até o ctx ser cancelado; deve ser chamado uma única vez por sessão.
func (g *NotificationGenerator) Start(ctx context.Context) {
	logrus.WithFields(logrus.Fields{
		"interval":    g.tickInterval,
		"probability": g.probability,
	}).Info("🕒 Gerador de notificações iniciado")

	ticker := time.NewTicker(g.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("⚠️ Gerador de notificações encerrado")
			return
		case <-ticker.C:
			g.Tick(ctx)
		}
	}
}

// Tick devolve true quando uma notificação foi gerada.
func (g *NotificationGenerator) Tick(ctx context.Context) bool {
	if g.Float64() >= g.probability {
		return false
	}

	kind := entity.NotificationTypes[g.IntN(len(entity.NotificationTypes))]
	n, err := g.notifier.Push(ctx, usecase.PushNotificationInput{
		Type:        kind,
		Title:       "Nueva notificación de " + string(kind),
		Description: "Esta es una notificación automática de tipo " + string(kind),
	})
	if err != nil {
		logrus.WithError(err).Error("❌ Erro ao gerar notificação")
		return false
	}

	middleware.RecordNotification("generator")
	logrus.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"type":            kind,
	}).Debug("🔔 Notificação sintética gerada")
	return true
}
