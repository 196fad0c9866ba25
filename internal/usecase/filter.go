package usecase

import (
	"slices"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// DateRange é inclusivo nas duas pontas; ponta nil = sem limite.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

type ProspectFilter struct {
	Status    []entity.ProspectStatus `json:"status,omitempty"`
	Product   []string                `json:"product,omitempty"`
	Source    []string                `json:"source,omitempty"`
	DateRange *DateRange              `json:"date_range,omitempty"`
	Search    string                  `json:"search,omitempty"`
}

func (f ProspectFilter) Match(p entity.Prospect) bool {
	return inSet(f.Status, p.Status) &&
		inSet(f.Product, p.Product) &&
		inSet(f.Source, p.Source) &&
		f.DateRange.Contains(p.CreatedAt) &&
		containsText(f.Search, p.Name, p.Email)
}

// FilterProspects devolve um novo slice com os que batem, na ordem original.
func FilterProspects(prospects []entity.Prospect, f ProspectFilter) []entity.Prospect {
	out := make([]entity.Prospect, 0, len(prospects))
	for _, p := range prospects {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

type TaskFilter struct {
	Status     []entity.TaskStatus   `json:"status,omitempty"`
	Priority   []entity.TaskPriority `json:"priority,omitempty"`
	AssignedTo []string              `json:"assigned_to,omitempty"`
	DateRange  *DateRange            `json:"date_range,omitempty"`
	Search     string                `json:"search,omitempty"`
}

func (f TaskFilter) Match(t entity.Task) bool {
	return inSet(f.Status, t.Status) &&
		inSet(f.Priority, t.Priority) &&
		inSet(f.AssignedTo, t.AssignedTo) &&
		f.DateRange.Contains(t.DueDate) &&
		containsText(f.Search, t.Title, t.Description)
}

func FilterTasks(tasks []entity.Task, f TaskFilter) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ContactFilter é o filtro de destinatários do envio em massa.
type ContactFilter struct {
	Status  []entity.ProspectStatus `json:"status,omitempty"`
	Product []string                `json:"product,omitempty"`
	Search  string                  `json:"search,omitempty"`
}

func (f ContactFilter) Match(c entity.Contact) bool {
	return inSet(f.Status, c.Status) &&
		inSet(f.Product, c.Product) &&
		containsText(f.Search, c.Name, c.Email)
}

func FilterContacts(contacts []entity.Contact, f ContactFilter) []entity.Contact {
	out := make([]entity.Contact, 0, len(contacts))
	for _, c := range contacts {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// inSet: conjunto vazio não restringe.
func inSet[T comparable](set []T, v T) bool {
	return len(set) == 0 || slices.Contains(set, v)
}

func containsText(search string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
