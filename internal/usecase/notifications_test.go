package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ============ TESTES DE NOTIFICAÇÕES ============

// TestNotificationReadLifecycle - Contador de não lidas acompanha MarkRead/MarkAllRead/Clear
func TestNotificationReadLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewNotificationUseCase(env.notifications, fixedClock)

	n, _ := uc.UnreadCount(ctx)
	assert.Equal(t, 5, n)

	assert.NoError(t, uc.MarkRead(ctx, "notification-1"))
	n, _ = uc.UnreadCount(ctx)
	assert.Equal(t, 4, n)

	assert.NoError(t, uc.Clear(ctx, "notification-3"))
	n, _ = uc.UnreadCount(ctx)
	assert.Equal(t, 3, n)

	assert.NoError(t, uc.MarkAllRead(ctx))
	n, _ = uc.UnreadCount(ctx)
	assert.Equal(t, 0, n)

	assert.ErrorIs(t, uc.Clear(ctx, "notification-99"), entity.ErrNotificationNotFound)
}

// TestPushNotification - Nova notificação entra no topo, não lida
func TestPushNotification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewNotificationUseCase(env.notifications, fixedClock)

	n, err := uc.Push(ctx, PushNotificationInput{Type: entity.NotificationSystem, Title: " Mantenimiento "})
	assert.NoError(t, err)
	if assert.NotNil(t, n) {
		assert.Equal(t, "Mantenimiento", n.Title)
		assert.Equal(t, fixedNow, n.Timestamp)
		assert.False(t, n.Read)
	}

	list, _ := uc.List(ctx)
	assert.Equal(t, "Mantenimiento", list[0].Title)

	_, err = uc.Push(ctx, PushNotificationInput{Type: "alerta", Title: "x"})
	assert.True(t, IsDomainError(err))
}

// TestHandleEventProjections - Ganado, perdido e tarefa criada viram notificações
func TestHandleEventProjections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewNotificationUseCase(env.notifications, fixedClock)
	before, _ := uc.List(ctx)

	assert.NoError(t, uc.HandleEvent(ctx, Event{Type: EventProspectStatusChanged, EntityID: "prospect-3", Name: "Ana", From: "nuevo", To: "ganado"}))
	list, _ := uc.List(ctx)
	assert.Equal(t, "Prospecto ganado", list[0].Title)
	assert.Equal(t, "Ana pasó a ganado", list[0].Description)
	assert.Equal(t, "/prospects/prospect-3", list[0].Link)

	assert.NoError(t, uc.HandleEvent(ctx, Event{Type: EventProspectStatusChanged, EntityID: "prospect-1", Name: "María", To: "perdido"}))
	assert.NoError(t, uc.HandleEvent(ctx, Event{Type: EventTaskCreated, EntityID: "task-x", Title: "Llamar a Ana"}))
	list, _ = uc.List(ctx)
	assert.Equal(t, entity.NotificationTask, list[0].Type)
	assert.Equal(t, "Nueva tarea asignada", list[0].Title)
	assert.Equal(t, "Prospecto perdido", list[1].Title)

	assert.Len(t, list, len(before)+3)
}

// TestHandleEventIgnored - Eventos sem projeção não geram notificação
func TestHandleEventIgnored(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewNotificationUseCase(env.notifications, fixedClock)
	before, _ := uc.List(ctx)

	assert.NoError(t, uc.HandleEvent(ctx, Event{Type: EventProspectStatusChanged, To: "contactado"}))
	assert.NoError(t, uc.HandleEvent(ctx, Event{Type: EventInteractionRecorded}))
	assert.NoError(t, uc.HandleEvent(ctx, Event{Type: EventTaskStatusChanged}))

	after, _ := uc.List(ctx)
	assert.Len(t, after, len(before))
}
