package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type DashboardSummary struct {
	GeneratedAt         time.Time                     `json:"generated_at"`
	TotalProspects      int                           `json:"total_prospects"`
	ProspectsByStatus   map[entity.ProspectStatus]int `json:"prospects_by_status"`
	Won                 int                           `json:"won"`
	Lost                int                           `json:"lost"`
	ConversionRate      float64                       `json:"conversion_rate"`
	PendingTasks        int                           `json:"pending_tasks"`
	OverdueTasks        int                           `json:"overdue_tasks"`
	UrgentTasks         []TaskCard                    `json:"urgent_tasks"`
	UnreadNotifications int                           `json:"unread_notifications"`
	UnreadMessages      int                           `json:"unread_messages"`
}

// MaxUrgentTasks limita a lista de urgentes do dashboard.
const MaxUrgentTasks = 5

type DashboardUseCase struct {
	prospects     entity.ProspectRepositoryInterface
	tasks         entity.TaskRepositoryInterface
	contacts      entity.ContactRepositoryInterface
	notifications entity.NotificationRepositoryInterface
	now           Clock
}

func NewDashboardUseCase(
	prospects entity.ProspectRepositoryInterface,
	tasks entity.TaskRepositoryInterface,
	contacts entity.ContactRepositoryInterface,
	notifications entity.NotificationRepositoryInterface,
	now Clock,
) *DashboardUseCase {
	if now == nil {
		now = SystemClock
	}
	return &DashboardUseCase{prospects: prospects, tasks: tasks, contacts: contacts, notifications: notifications, now: now}
}

// Summary calcula tudo na leitura com um único now.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*DashboardSummary, error) {
	now := uc.now()

	prospects, err := uc.prospects.List(ctx)
	if err != nil {
		return nil, storeError("list prospects", err)
	}
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	contacts, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, storeError("list contacts", err)
	}
	notifications, err := uc.notifications.List(ctx)
	if err != nil {
		return nil, storeError("list notifications", err)
	}

	s := &DashboardSummary{
		GeneratedAt:       now,
		TotalProspects:    len(prospects),
		ProspectsByStatus: make(map[entity.ProspectStatus]int, len(entity.ProspectFunnel)),
		UrgentTasks:       []TaskCard{},
		UnreadMessages:    entity.TotalUnread(contacts),
	}
	for _, st := range entity.ProspectFunnel {
		s.ProspectsByStatus[st] = 0
	}
	for _, p := range prospects {
		s.ProspectsByStatus[p.Status]++
	}
	for status, n := range s.ProspectsByStatus {
		if !status.IsTerminal() {
			continue
		}
		if status == entity.ProspectGanado {
			s.Won += n
		} else {
			s.Lost += n
		}
	}
	if s.TotalProspects > 0 {
		s.ConversionRate = float64(s.Won) / float64(s.TotalProspects) * 100
	}

	// urgente = vence até a meia-noite de hoje ou prioridade alta
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, card := range NewTaskCards(tasks, now) {
		if card.Status == entity.TaskCompletada {
			continue
		}
		s.PendingTasks++
		if card.Overdue {
			s.OverdueTasks++
		}
		if !card.DueDate.After(today) || card.Priority == entity.PriorityAlta {
			s.UrgentTasks = append(s.UrgentTasks, card)
		}
	}
	slices.SortStableFunc(s.UrgentTasks, func(a, b TaskCard) int {
		return a.DueDate.Compare(b.DueDate)
	})
	if len(s.UrgentTasks) > MaxUrgentTasks {
		s.UrgentTasks = s.UrgentTasks[:MaxUrgentTasks]
	}

	for _, n := range notifications {
		if !n.Read {
			s.UnreadNotifications++
		}
	}
	return s, nil
}
