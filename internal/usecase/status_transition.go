package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type MoveOutcome int

const (
	MoveNoop MoveOutcome = iota
	MoveApplied
)

func (o MoveOutcome) Applied() bool { return o == MoveApplied }

// StatusTransitionUseCase aplica mudanças de status/prioridade, seja pelo menu
// ou arrastando no kanban. O funil é consultivo: qualquer status alcança qualquer outro.
type StatusTransitionUseCase struct {
	prospects entity.ProspectRepositoryInterface
	tasks     entity.TaskRepositoryInterface
	events    EventPublisher
	now       Clock
}

func NewStatusTransitionUseCase(
	prospects entity.ProspectRepositoryInterface,
	tasks entity.TaskRepositoryInterface,
	events EventPublisher,
	now Clock,
) *StatusTransitionUseCase {
	if events == nil {
		events = NoopPublisher
	}
	if now == nil {
		now = SystemClock
	}
	return &StatusTransitionUseCase{prospects: prospects, tasks: tasks, events: events, now: now}
}

func (uc *StatusTransitionUseCase) ChangeProspectStatus(ctx context.Context, id string, status entity.ProspectStatus) (*entity.Prospect, error) {
	if !status.Valid() {
		return nil, &DomainError{
			Code:    CodeInvalidStatus,
			Message: fmt.Sprintf("status %q is not a prospect status", status),
		}
	}

	p, err := uc.prospects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return p, nil
	}

	from := p.Status
	p.Status = status
	if err := uc.prospects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update prospect %s: %w", id, err)
	}

	uc.publish(ctx, Event{
		Type:     EventProspectStatusChanged,
		EntityID: p.ID,
		Name:     p.Name,
		From:     string(from),
		To:       string(status),
	})
	return p, nil
}

func (uc *StatusTransitionUseCase) ChangeTaskStatus(ctx context.Context, id string, status entity.TaskStatus) (*entity.Task, error) {
	if !status.Valid() {
		return nil, &DomainError{
			Code:    CodeInvalidStatus,
			Message: fmt.Sprintf("status %q is not a task status", status),
		}
	}

	t, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == status {
		return t, nil
	}

	from := t.Status
	t.Status = status
	if err := uc.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	uc.publish(ctx, Event{
		Type:     EventTaskStatusChanged,
		EntityID: t.ID,
		Title:    t.Title,
		From:     string(from),
		To:       string(status),
	})
	return t, nil
}

func (uc *StatusTransitionUseCase) ChangeTaskPriority(ctx context.Context, id string, priority entity.TaskPriority) (*entity.Task, error) {
	if !priority.Valid() {
		return nil, &DomainError{
			Code:    CodeInvalidPriority,
			Message: fmt.Sprintf("priority %q is not a task priority", priority),
		}
	}

	t, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Priority == priority {
		return t, nil
	}

	t.Priority = priority
	if err := uc.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return t, nil
}

// MoveProspect é o drop no kanban de prospects. Coluna destino inválida ou
// igual à origem é no-op: nada muda, nenhum erro.
func (uc *StatusTransitionUseCase) MoveProspect(ctx context.Context, id, from, to string) (MoveOutcome, error) {
	target, ok := entity.ParseProspectStatus(to)
	if !ok {
		return MoveNoop, nil
	}
	if source, ok := entity.ParseProspectStatus(from); ok && source == target {
		return MoveNoop, nil
	}

	current, err := uc.prospects.FindByID(ctx, id)
	if err != nil {
		return MoveNoop, err
	}
	if current.Status == target {
		return MoveNoop, nil
	}

	if _, err := uc.ChangeProspectStatus(ctx, id, target); err != nil {
		return MoveNoop, err
	}
	return MoveApplied, nil
}

// MoveTask é o drop no kanban de tarefas, por status ou por prioridade.
func (uc *StatusTransitionUseCase) MoveTask(ctx context.Context, board TaskBoardKind, id, from, to string) (MoveOutcome, error) {
	if board == "" {
		board = BoardByStatus
	}
	if !board.Valid() {
		return MoveNoop, nil
	}

	if board == BoardByPriority {
		target := entity.TaskPriority(to)
		if !target.Valid() || entity.TaskPriority(from) == target {
			return MoveNoop, nil
		}
		current, err := uc.tasks.FindByID(ctx, id)
		if err != nil {
			return MoveNoop, err
		}
		if current.Priority == target {
			return MoveNoop, nil
		}
		if _, err := uc.ChangeTaskPriority(ctx, id, target); err != nil {
			return MoveNoop, err
		}
		return MoveApplied, nil
	}

	target, ok := entity.ParseTaskStatus(to)
	if !ok {
		return MoveNoop, nil
	}
	if source, ok := entity.ParseTaskStatus(from); ok && source == target {
		return MoveNoop, nil
	}
	current, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		return MoveNoop, err
	}
	if current.Status == target {
		return MoveNoop, nil
	}
	if _, err := uc.ChangeTaskStatus(ctx, id, target); err != nil {
		return MoveNoop, err
	}
	return MoveApplied, nil
}

// publish não falha a operação: a mutação já foi aplicada.
func (uc *StatusTransitionUseCase) publish(ctx context.Context, evt Event) {
	evt.OccurredAt = uc.now()
	if err := uc.events.Publish(ctx, evt); err != nil {
		logrus.WithFields(logrus.Fields{
			"event":     evt.Type,
			"entity_id": evt.EntityID,
			"error":     err,
		}).Error("❌ Falha ao publicar evento")
	}
}
