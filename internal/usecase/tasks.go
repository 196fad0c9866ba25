package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CreateTaskInput struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Status      entity.TaskStatus   `json:"status,omitempty" validate:"omitempty,task_status"`
	Priority    entity.TaskPriority `json:"priority,omitempty" validate:"omitempty,task_priority"`
	DueDate     time.Time           `json:"due_date"`
	AssignedTo  string              `json:"assigned_to,omitempty"`
	RelatedTo   *entity.RelatedRef  `json:"related_to,omitempty"`
}

type EditTaskInput struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *entity.TaskStatus   `json:"status,omitempty" validate:"omitempty,task_status"`
	Priority    *entity.TaskPriority `json:"priority,omitempty" validate:"omitempty,task_priority"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	AssignedTo  *string              `json:"assigned_to,omitempty"`
	RelatedTo   *entity.RelatedRef   `json:"related_to,omitempty"`
	Version     int                  `json:"version,omitempty"`
}

type TaskUseCase struct {
	tasks           entity.TaskRepositoryInterface
	users           CurrentUserProvider
	events          EventPublisher
	now             Clock
	defaultAssignee string
}

func NewTaskUseCase(tasks entity.TaskRepositoryInterface, users CurrentUserProvider, events EventPublisher, now Clock, defaultAssignee string) *TaskUseCase {
	if events == nil {
		events = NoopPublisher
	}
	if now == nil {
		now = SystemClock
	}
	return &TaskUseCase{tasks: tasks, users: users, events: events, now: now, defaultAssignee: defaultAssignee}
}

// List devolve as tarefas filtradas com o flag overdue calculado com o mesmo now.
func (uc *TaskUseCase) List(ctx context.Context, f TaskFilter) ([]TaskCard, error) {
	all, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	return NewTaskCards(FilterTasks(all, f), uc.now()), nil
}

func (uc *TaskUseCase) Board(ctx context.Context, kind TaskBoardKind, f TaskFilter) ([]TaskColumn, error) {
	if kind == "" {
		kind = BoardByStatus
	}
	if !kind.Valid() {
		return nil, &DomainError{Code: CodeValidation, Message: "board must be status or priority"}
	}
	all, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	return TaskBoard(kind, FilterTasks(all, f), uc.now()), nil
}

func (uc *TaskUseCase) Get(ctx context.Context, id string) (*TaskCard, error) {
	t, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TaskCard{Task: *t, Overdue: t.IsOverdue(uc.now())}, nil
}

func (uc *TaskUseCase) Create(ctx context.Context, input CreateTaskInput) (*entity.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.DueDate.IsZero() {
		return nil, newValidationFailure(CodeMissingRequiredField, []ValidationError{{"due_date", "is required"}})
	}

	assignee := strings.TrimSpace(input.AssignedTo)
	if assignee == "" {
		assignee = uc.currentUserName(ctx)
	}

	t := entity.NewTask(input.Title, input.Description, assignee, input.DueDate, uc.now())
	if input.Status != "" {
		t.Status = input.Status
	}
	if input.Priority != "" {
		t.Priority = input.Priority
	}
	if input.RelatedTo != nil {
		ref := *input.RelatedTo
		t.RelatedTo = &ref
	}
	if err := t.Validate(); err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, storeError("create task", err)
	}

	logrus.WithFields(logrus.Fields{
		"task_id":     t.ID,
		"assigned_to": t.AssignedTo,
	}).Info("📝 Tarefa criada")

	if err := uc.events.Publish(ctx, Event{
		Type:       EventTaskCreated,
		EntityID:   t.ID,
		Name:       t.AssignedTo,
		Title:      t.Title,
		OccurredAt: t.CreatedAt,
	}); err != nil {
		logrus.WithError(err).Error("❌ Falha ao publicar task.created")
	}
	return t, nil
}

// Edit aplica só os campos enviados; CreatedAt nunca muda.
func (uc *TaskUseCase) Edit(ctx context.Context, id string, input EditTaskInput) (*entity.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	t, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Version != 0 && input.Version != t.Version {
		return nil, &DomainError{Code: CodeVersionConflict, Message: "task was modified by another operation"}
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, newValidationFailure(CodeMissingRequiredField, []ValidationError{{"title", "is required"}})
		}
		t.Title = title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.DueDate != nil {
		t.DueDate = *input.DueDate
	}
	if input.AssignedTo != nil {
		t.AssignedTo = strings.TrimSpace(*input.AssignedTo)
	}
	if input.RelatedTo != nil {
		ref := *input.RelatedTo
		t.RelatedTo = &ref
	}
	if err := t.Validate(); err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("task_id", id).Info("🗑️ Tarefa removida")
	return nil
}

func (uc *TaskUseCase) currentUserName(ctx context.Context) string {
	if uc.users != nil {
		if u, err := uc.users.Current(ctx); err == nil && u.Name != "" {
			return u.Name
		}
	}
	return uc.defaultAssignee
}
