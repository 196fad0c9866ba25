package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ============ TESTES DE MUDANÇA DE STATUS ============

// TestChangeProspectStatusOnlyTouchesStatus - Só status e versão mudam; evento publicado
func TestChangeProspectStatusOnlyTouchesStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before := env.prospect(t, "prospect-3")

	p, err := env.transitions().ChangeProspectStatus(ctx, "prospect-3", entity.ProspectContactado)
	assert.NoError(t, err)
	if assert.NotNil(t, p) {
		assert.Equal(t, entity.ProspectContactado, p.Status)
	}

	after := env.prospect(t, "prospect-3")
	assert.Equal(t, entity.ProspectContactado, after.Status)
	assert.Equal(t, before.Version+1, after.Version)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.LastContactDate, after.LastContactDate)

	if assert.Len(t, env.events.events, 1) {
		evt := env.events.events[0]
		assert.Equal(t, EventProspectStatusChanged, evt.Type)
		assert.Equal(t, string(entity.ProspectNuevo), evt.From)
		assert.Equal(t, string(entity.ProspectContactado), evt.To)
		assert.Equal(t, fixedNow, evt.OccurredAt)
	}
}

// TestChangeProspectStatusInvalid - Status fora do vocabulário é rejeitado sem mutação
func TestChangeProspectStatusInvalid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before := env.prospect(t, "prospect-1")

	_, err := env.transitions().ChangeProspectStatus(ctx, "prospect-1", entity.ProspectStatus("cerrado"))
	var de *DomainError
	if assert.ErrorAs(t, err, &de) {
		assert.Equal(t, CodeInvalidStatus, de.Code)
	}
	assert.Equal(t, before, env.prospect(t, "prospect-1"))
	assert.Empty(t, env.events.events)
}

// TestChangeProspectStatusSameIsNoop - Mesmo status não incrementa versão nem publica
func TestChangeProspectStatusSameIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before := env.prospect(t, "prospect-1")

	_, err := env.transitions().ChangeProspectStatus(ctx, "prospect-1", before.Status)
	assert.NoError(t, err)
	assert.Equal(t, before.Version, env.prospect(t, "prospect-1").Version)
	assert.Empty(t, env.events.events)
}

// TestChangeProspectStatusUnknownID - Id desconhecido devolve not found
func TestChangeProspectStatusUnknownID(t *testing.T) {
	_, err := newTestEnv(t).transitions().ChangeProspectStatus(context.Background(), "prospect-99", entity.ProspectGanado)
	assert.ErrorIs(t, err, entity.ErrProspectNotFound)
}

// TestAnyStatusReachesAnyOther - O funil não bloqueia transições (ganado volta para nuevo)
func TestAnyStatusReachesAnyOther(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.transitions()

	_, err := uc.ChangeProspectStatus(ctx, "prospect-4", entity.ProspectNuevo)
	assert.NoError(t, err)
	assert.Equal(t, entity.ProspectNuevo, env.prospect(t, "prospect-4").Status)
}

// TestChangeTaskStatusAndPriority - Mudanças de tarefa por menu
func TestChangeTaskStatusAndPriority(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.transitions()

	task, err := uc.ChangeTaskStatus(ctx, "task-5", entity.TaskCompletada)
	assert.NoError(t, err)
	if assert.NotNil(t, task) {
		assert.False(t, task.IsOverdue(fixedNow))
	}
	assert.Equal(t, []string{EventTaskStatusChanged}, env.events.types())

	_, err = uc.ChangeTaskPriority(ctx, "task-5", entity.TaskPriority("urgente"))
	var de *DomainError
	if assert.ErrorAs(t, err, &de) {
		assert.Equal(t, CodeInvalidPriority, de.Code)
	}

	task, err = uc.ChangeTaskPriority(ctx, "task-5", entity.PriorityAlta)
	assert.NoError(t, err)
	if assert.NotNil(t, task) {
		assert.Equal(t, entity.PriorityAlta, task.Priority)
		assert.Equal(t, entity.TaskCompletada, task.Status)
	}
}

// ============ TESTES DO KANBAN ============

// TestMoveProspectApplied - Drop em outra coluna aplica a mudança
func TestMoveProspectApplied(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	outcome, err := env.transitions().MoveProspect(ctx, "prospect-3", "nuevo", "contactado")
	assert.NoError(t, err)
	assert.True(t, outcome.Applied())
	assert.Equal(t, entity.ProspectContactado, env.prospect(t, "prospect-3").Status)
}

// TestMoveProspectNoops - Coluna inválida, mesma coluna ou status já igual não mudam nada
func TestMoveProspectNoops(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.transitions()
	before := env.prospect(t, "prospect-3")

	cases := []struct{ from, to string }{
		{"nuevo", "archivado"},
		{"nuevo", ""},
		{"contactado", "contactado"},
		{"contactado", "nuevo"},
	}
	for _, c := range cases {
		outcome, err := uc.MoveProspect(ctx, "prospect-3", c.from, c.to)
		assert.NoError(t, err, c.to)
		assert.Equal(t, MoveNoop, outcome, c.to)
	}

	assert.Equal(t, before, env.prospect(t, "prospect-3"))
	assert.Empty(t, env.events.events)
}

// TestMoveProspectUnknownID - Id desconhecido não aplica e reporta not found
func TestMoveProspectUnknownID(t *testing.T) {
	outcome, err := newTestEnv(t).transitions().MoveProspect(context.Background(), "prospect-99", "nuevo", "ganado")
	assert.Equal(t, MoveNoop, outcome)
	assert.ErrorIs(t, err, entity.ErrProspectNotFound)
}

// TestMoveProspectUnderscoreColumn - Coluna com underscore é aceita
func TestMoveProspectUnderscoreColumn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	outcome, err := env.transitions().MoveProspect(ctx, "prospect-3", "nuevo", "en_conversacion")
	assert.NoError(t, err)
	assert.True(t, outcome.Applied())
	assert.Equal(t, entity.ProspectEnConversacion, env.prospect(t, "prospect-3").Status)
}

// TestMoveTaskByPriorityOnlyChangesPriority - Kanban por prioridade não toca no status
func TestMoveTaskByPriorityOnlyChangesPriority(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before := env.task(t, "task-4")

	outcome, err := env.transitions().MoveTask(ctx, BoardByPriority, "task-4", "baja", "alta")
	assert.NoError(t, err)
	assert.True(t, outcome.Applied())

	after := env.task(t, "task-4")
	assert.Equal(t, entity.PriorityAlta, after.Priority)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Version+1, after.Version)
}

// TestMoveTaskByStatus - Board vazio assume status
func TestMoveTaskByStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	outcome, err := env.transitions().MoveTask(ctx, "", "task-1", "pendiente", "en progreso")
	assert.NoError(t, err)
	assert.True(t, outcome.Applied())
	assert.Equal(t, entity.TaskEnProgreso, env.task(t, "task-1").Status)
}

// TestMoveTaskNoops - Board inválido, coluna inválida e mesma coluna
func TestMoveTaskNoops(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.transitions()
	before := env.task(t, "task-1")

	outcome, err := uc.MoveTask(ctx, TaskBoardKind("assignee"), "task-1", "pendiente", "completada")
	assert.NoError(t, err)
	assert.Equal(t, MoveNoop, outcome)

	outcome, err = uc.MoveTask(ctx, BoardByStatus, "task-1", "pendiente", "cancelada")
	assert.NoError(t, err)
	assert.Equal(t, MoveNoop, outcome)

	outcome, err = uc.MoveTask(ctx, BoardByPriority, "task-1", "alta", "alta")
	assert.NoError(t, err)
	assert.Equal(t, MoveNoop, outcome)

	outcome, err = uc.MoveTask(ctx, BoardByPriority, "task-1", "media", "alta")
	assert.NoError(t, err)
	assert.Equal(t, MoveNoop, outcome)

	assert.Equal(t, before, env.task(t, "task-1"))
}

// TestPublishFailureDoesNotFailTransition - Falha no broker não desfaz a mudança
func TestPublishFailureDoesNotFailTransition(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.events.err = assert.AnError

	_, err := env.transitions().ChangeProspectStatus(ctx, "prospect-3", entity.ProspectGanado)
	assert.NoError(t, err)
	assert.Equal(t, entity.ProspectGanado, env.prospect(t, "prospect-3").Status)
}
