package usecase

import (
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// DeriveFollowUpTask traduz a próxima ação de uma interação numa tarefa.
// Retorna false quando a ação não gera tarefa (vazia ou no_recontactar).
func DeriveFollowUpTask(p entity.Prospect, action entity.NextAction, followUp *time.Time, assignee string, now time.Time) (*entity.Task, bool) {
	if action == "" || !action.CreatesTask() {
		return nil, false
	}

	due := now.Add(action.DefaultOffset())
	if followUp != nil && !followUp.IsZero() {
		due = *followUp
	}

	t := entity.NewTask(action.TaskTitle(p.Name), "Seguimiento generado desde interacción con "+p.Name, assignee, due, now)
	if action == entity.ActionLlamarManana || action == entity.ActionAgendarReunion {
		t.Priority = entity.PriorityAlta
	}
	t.RelatedTo = &entity.RelatedRef{
		Kind: entity.RelatedProspect,
		ID:   p.ID,
		Name: p.Name,
	}
	return t, true
}
