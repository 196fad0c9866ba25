package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type RecordInteractionInput struct {
	ProspectID      string                   `json:"prospect_id" validate:"required"`
	InteractionType entity.InteractionType   `json:"interaction_type" validate:"required,interaction_type"`
	Result          entity.InteractionResult `json:"result" validate:"required,interaction_result"`
	NewStatus       entity.ProspectStatus    `json:"new_status" validate:"required,prospect_status"`
	NextAction      entity.NextAction        `json:"next_action,omitempty" validate:"omitempty,next_action"`
	FollowUpDate    *time.Time               `json:"follow_up_date,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
}

type RecordInteractionOutput struct {
	Prospect       entity.Prospect       `json:"prospect"`
	PreviousStatus entity.ProspectStatus `json:"previous_status"`
	Interaction    entity.Interaction    `json:"interaction"`
	Task           *entity.Task          `json:"task,omitempty"`
}

// StatusChanged indica se a interação moveu o prospect de coluna.
func (o RecordInteractionOutput) StatusChanged() bool {
	return o.PreviousStatus != o.Prospect.Status
}

// RecordInteractionUseCase registra o resultado de um contato: status do
// prospect, tarefa de seguimento e entrada no histórico, tudo ou nada.
type RecordInteractionUseCase struct {
	prospects       entity.ProspectRepositoryInterface
	tasks           entity.TaskRepositoryInterface
	interactions    entity.InteractionRepositoryInterface
	users           CurrentUserProvider
	events          EventPublisher
	now             Clock
	defaultAssignee string
}

func NewRecordInteractionUseCase(
	prospects entity.ProspectRepositoryInterface,
	tasks entity.TaskRepositoryInterface,
	interactions entity.InteractionRepositoryInterface,
	users CurrentUserProvider,
	events EventPublisher,
	now Clock,
	defaultAssignee string,
) *RecordInteractionUseCase {
	if events == nil {
		events = NoopPublisher
	}
	if now == nil {
		now = SystemClock
	}
	return &RecordInteractionUseCase{
		prospects:       prospects,
		tasks:           tasks,
		interactions:    interactions,
		users:           users,
		events:          events,
		now:             now,
		defaultAssignee: defaultAssignee,
	}
}

// Execute roda a saga update_prospect, create_task, append_interaction.
// A compensação do prospect usa a versão gravada pela própria saga: se outro
// escritor atualizar o prospect nesse intervalo, ela falha com
// ErrVersionConflict (só logada) e o prospect fica atualizado sem a tarefa.
func (uc *RecordInteractionUseCase) Execute(ctx context.Context, input RecordInteractionInput) (*RecordInteractionOutput, error) {
	input.ProspectID = strings.TrimSpace(input.ProspectID)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	original, err := uc.prospects.FindByID(ctx, input.ProspectID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	updated := *original
	updated.Status = input.NewStatus
	updated.LastContactDate = &now

	task, derived := DeriveFollowUpTask(*original, input.NextAction, input.FollowUpDate, uc.assignee(ctx), now)

	interaction := &entity.Interaction{
		ID:           uuid.New().String(),
		ProspectID:   original.ID,
		Type:         input.InteractionType,
		Result:       input.Result,
		NewStatus:    input.NewStatus,
		NextAction:   input.NextAction,
		FollowUpDate: input.FollowUpDate,
		Notes:        strings.TrimSpace(input.Notes),
		Timestamp:    now,
	}
	if derived {
		interaction.TaskID = task.ID
	}

	tx := NewTransaction()

	tx.AddOperation("update_prospect",
		func(ctx context.Context) error {
			return uc.prospects.Update(ctx, &updated)
		},
		func(ctx context.Context) error {
			restore := *original
			restore.Version = updated.Version
			return uc.prospects.Update(ctx, &restore)
		},
	)

	if derived {
		tx.AddOperation("create_task",
			func(ctx context.Context) error {
				return uc.tasks.Create(ctx, task)
			},
			func(ctx context.Context) error {
				return uc.tasks.Delete(ctx, task.ID)
			},
		)
	}

	tx.AddOperation("append_interaction",
		func(ctx context.Context) error {
			return uc.interactions.Append(ctx, interaction)
		},
		func(ctx context.Context) error {
			return uc.interactions.Remove(ctx, interaction.ID)
		},
	)

	if err := tx.Execute(ctx); err != nil {
		logrus.WithFields(logrus.Fields{
			"prospect_id": original.ID,
			"error":       err,
		}).Error("❌ Registro de interação revertido")
		return nil, storeError("record interaction", err)
	}

	logrus.WithFields(logrus.Fields{
		"prospect_id": original.ID,
		"result":      input.Result,
		"new_status":  input.NewStatus,
		"task_id":     interaction.TaskID,
	}).Info("📞 Interação registrada")

	uc.publish(ctx, Event{Type: EventInteractionRecorded, EntityID: original.ID, Name: original.Name, To: string(input.Result)}, now)
	if original.Status != updated.Status {
		uc.publish(ctx, Event{
			Type:     EventProspectStatusChanged,
			EntityID: original.ID,
			Name:     original.Name,
			From:     string(original.Status),
			To:       string(updated.Status),
		}, now)
	}

	out := &RecordInteractionOutput{Prospect: updated, PreviousStatus: original.Status, Interaction: *interaction}
	if derived {
		uc.publish(ctx, Event{Type: EventTaskCreated, EntityID: task.ID, Name: task.AssignedTo, Title: task.Title}, now)
		out.Task = task
	}
	return out, nil
}

func (uc *RecordInteractionUseCase) assignee(ctx context.Context) string {
	if uc.users != nil {
		if u, err := uc.users.Current(ctx); err == nil && u.Name != "" {
			return u.Name
		}
	}
	return uc.defaultAssignee
}

func (uc *RecordInteractionUseCase) publish(ctx context.Context, evt Event, at time.Time) {
	evt.OccurredAt = at
	if err := uc.events.Publish(ctx, evt); err != nil {
		logrus.WithFields(logrus.Fields{
			"event": evt.Type,
			"error": err,
		}).Error(fmt.Sprintf("❌ Falha ao publicar %s", evt.Type))
	}
}
