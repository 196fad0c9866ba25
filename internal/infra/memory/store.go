// Package memory guarda todas as coleções da sessão em memória.
// Não existe persistência abaixo do Store: ele é semeado no boot e vive até o shutdown.
package memory

import (
	"sync"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Store é dono exclusivo das coleções. Os repositórios devolvem cópias,
// nunca ponteiros para o estado interno.
type Store struct {
	mu sync.RWMutex

	prospects     []entity.Prospect
	tasks         []entity.Task
	contacts      []entity.Contact
	templates     []entity.MessageTemplate
	notifications []entity.Notification
	interactions  []entity.Interaction
	users         []entity.Credential
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot é usado pelo seed e pelos testes.
type Snapshot struct {
	Prospects     []entity.Prospect
	Tasks         []entity.Task
	Contacts      []entity.Contact
	Templates     []entity.MessageTemplate
	Notifications []entity.Notification
	Users         []entity.Credential
}

// Load substitui todo o estado (seed do início da sessão).
func (s *Store) Load(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prospects = make([]entity.Prospect, 0, len(snap.Prospects))
	for _, p := range snap.Prospects {
		s.prospects = append(s.prospects, cloneProspect(p))
	}
	s.tasks = make([]entity.Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		s.tasks = append(s.tasks, cloneTask(t))
	}
	s.contacts = make([]entity.Contact, 0, len(snap.Contacts))
	for _, c := range snap.Contacts {
		s.contacts = append(s.contacts, cloneContact(c))
	}
	s.templates = append([]entity.MessageTemplate(nil), snap.Templates...)
	s.notifications = append([]entity.Notification(nil), snap.Notifications...)
	s.users = append([]entity.Credential(nil), snap.Users...)
	s.interactions = nil
}

func cloneProspect(p entity.Prospect) entity.Prospect {
	if p.LastContactDate != nil {
		t := *p.LastContactDate
		p.LastContactDate = &t
	}
	return p
}

func cloneTask(t entity.Task) entity.Task {
	if t.RelatedTo != nil {
		r := *t.RelatedTo
		t.RelatedTo = &r
	}
	return t
}

func cloneContact(c entity.Contact) entity.Contact {
	if c.LastMessage != nil {
		m := *c.LastMessage
		c.LastMessage = &m
	}
	c.Messages = append([]entity.Message(nil), c.Messages...)
	return c
}

func cloneInteraction(i entity.Interaction) entity.Interaction {
	if i.FollowUpDate != nil {
		t := *i.FollowUpDate
		i.FollowUpDate = &t
	}
	return i
}
