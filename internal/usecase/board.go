package usecase

import (
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TaskBoardKind string

const (
	BoardByStatus   TaskBoardKind = "status"
	BoardByPriority TaskBoardKind = "priority"
)

func (k TaskBoardKind) Valid() bool {
	return k == BoardByStatus || k == BoardByPriority
}

// TaskCard é a tarefa como aparece em qualquer visão (lista, kanban, dashboard).
// Overdue é derivado do mesmo "now" para todas as cartas de uma resposta.
type TaskCard struct {
	entity.Task
	Overdue bool `json:"overdue"`
}

func NewTaskCards(tasks []entity.Task, now time.Time) []TaskCard {
	cards := make([]TaskCard, 0, len(tasks))
	for _, t := range tasks {
		cards = append(cards, TaskCard{Task: t, Overdue: t.IsOverdue(now)})
	}
	return cards
}

type ProspectColumn struct {
	Status    entity.ProspectStatus `json:"status"`
	Prospects []entity.Prospect     `json:"prospects"`
}

// ProspectBoard agrupa por status na ordem do funil, preservando a ordem relativa.
func ProspectBoard(prospects []entity.Prospect) []ProspectColumn {
	cols := make([]ProspectColumn, len(entity.ProspectFunnel))
	idx := make(map[entity.ProspectStatus]int, len(entity.ProspectFunnel))
	for i, s := range entity.ProspectFunnel {
		cols[i] = ProspectColumn{Status: s, Prospects: []entity.Prospect{}}
		idx[s] = i
	}
	for _, p := range prospects {
		if i, ok := idx[p.Status]; ok {
			cols[i].Prospects = append(cols[i].Prospects, p)
		}
	}
	return cols
}

type TaskColumn struct {
	ID    string     `json:"id"`
	Tasks []TaskCard `json:"tasks"`
}

func taskColumnIDs(kind TaskBoardKind) []string {
	if kind == BoardByPriority {
		ids := make([]string, len(entity.TaskPriorities))
		for i, p := range entity.TaskPriorities {
			ids[i] = string(p)
		}
		return ids
	}
	ids := make([]string, len(entity.TaskStatuses))
	for i, s := range entity.TaskStatuses {
		ids[i] = string(s)
	}
	return ids
}

func TaskBoard(kind TaskBoardKind, tasks []entity.Task, now time.Time) []TaskColumn {
	ids := taskColumnIDs(kind)
	cols := make([]TaskColumn, len(ids))
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		cols[i] = TaskColumn{ID: id, Tasks: []TaskCard{}}
		idx[id] = i
	}
	for _, card := range NewTaskCards(tasks, now) {
		key := string(card.Status)
		if kind == BoardByPriority {
			key = string(card.Priority)
		}
		if i, ok := idx[key]; ok {
			cols[i].Tasks = append(cols[i].Tasks, card)
		}
	}
	return cols
}
