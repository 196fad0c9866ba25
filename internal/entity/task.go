package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskPendiente  TaskStatus = "pendiente"
	TaskEnProgreso TaskStatus = "en progreso"
	TaskVencida    TaskStatus = "vencida"
	TaskCompletada TaskStatus = "completada"
)

var TaskStatuses = []TaskStatus{TaskPendiente, TaskEnProgreso, TaskVencida, TaskCompletada}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseTaskStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(strings.TrimSpace(raw))
	if s.Valid() {
		return s, true
	}
	if strings.EqualFold(string(s), "en_progreso") {
		return TaskEnProgreso, true
	}
	return "", false
}

type TaskPriority string

const (
	PriorityAlta  TaskPriority = "alta"
	PriorityMedia TaskPriority = "media"
	PriorityBaja  TaskPriority = "baja"
)

var TaskPriorities = []TaskPriority{PriorityAlta, PriorityMedia, PriorityBaja}

func (p TaskPriority) Valid() bool {
	return p == PriorityAlta || p == PriorityMedia || p == PriorityBaja
}

type RelatedKind string

const (
	RelatedProspect RelatedKind = "prospect"
	RelatedOther    RelatedKind = "other"
)

// RelatedRef é só uma chave de busca (referência fraca), nunca um ponteiro para o Prospect.
type RelatedRef struct {
	Kind RelatedKind `json:"type"`
	ID   string      `json:"id"`
	Name string      `json:"name"`
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     time.Time    `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
	AssignedTo  string       `json:"assigned_to"`
	RelatedTo   *RelatedRef  `json:"related_to,omitempty"`
	Version     int          `json:"version"`
}

func NewTask(title, description, assignedTo string, dueDate, now time.Time) *Task {
	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      TaskPendiente,
		Priority:    PriorityMedia,
		DueDate:     dueDate,
		CreatedAt:   now,
		AssignedTo:  assignedTo,
		Version:     1,
	}
}

// IsOverdue é derivado: nunca persistir. Toda view usa esta função com o mesmo "now".
func (t Task) IsOverdue(now time.Time) bool {
	return now.After(t.DueDate) && t.Status != TaskCompletada
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	if !t.Priority.Valid() {
		return ErrInvalidTaskPriority
	}
	if t.RelatedTo != nil && t.RelatedTo.Kind != RelatedProspect && t.RelatedTo.Kind != RelatedOther {
		return errors.New("related_to.type must be prospect or other")
	}
	return nil
}

type TaskRepositoryInterface interface {
	List(ctx context.Context) ([]Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}
