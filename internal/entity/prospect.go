package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProspectStatus é a etapa do funil de vendas.
type ProspectStatus string

const (
	ProspectNuevo          ProspectStatus = "nuevo"
	ProspectContactado     ProspectStatus = "contactado"
	ProspectEnConversacion ProspectStatus = "en conversación"
	ProspectNegociacion    ProspectStatus = "negociación"
	ProspectGanado         ProspectStatus = "ganado"
	ProspectPerdido        ProspectStatus = "perdido"
)

// ProspectFunnel lista os status na ordem do funil (colunas do kanban).
var ProspectFunnel = []ProspectStatus{
	ProspectNuevo,
	ProspectContactado,
	ProspectEnConversacion,
	ProspectNegociacion,
	ProspectGanado,
	ProspectPerdido,
}

func (s ProspectStatus) Valid() bool {
	for _, v := range ProspectFunnel {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal: ganado/perdido encerram o funil (não é bloqueante).
func (s ProspectStatus) IsTerminal() bool {
	return s == ProspectGanado || s == ProspectPerdido
}

// ParseProspectStatus aceita também o formato com underscore (en_conversacion).
func ParseProspectStatus(raw string) (ProspectStatus, bool) {
	s := ProspectStatus(strings.TrimSpace(raw))
	if s.Valid() {
		return s, true
	}
	switch strings.ToLower(string(s)) {
	case "en_conversacion", "en conversacion":
		return ProspectEnConversacion, true
	case "negociacion":
		return ProspectNegociacion, true
	}
	return "", false
}

// Entidade: Prospect
type Prospect struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	Status          ProspectStatus `json:"status"`
	Product         string         `json:"product"`
	Source          string         `json:"source"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	LastContactDate *time.Time     `json:"last_contact_date,omitempty"`
	Version         int            `json:"version"`
}

// Factory
func NewProspect(name, email, phone, product, source string, now time.Time) (*Prospect, error) {
	p := &Prospect{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Status:    ProspectNuevo,
		Product:   product,
		Source:    source,
		CreatedAt: now,
		Version:   1,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Prospect) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if !p.Status.Valid() {
		return ErrInvalidProspectStatus
	}
	if p.LastContactDate != nil && p.LastContactDate.Before(p.CreatedAt) {
		return errors.New("last_contact_date must not be before created_at")
	}
	return nil
}

type ProspectRepositoryInterface interface {
	List(ctx context.Context) ([]Prospect, error)
	FindByID(ctx context.Context, id string) (*Prospect, error)
	Create(ctx context.Context, p *Prospect) error
	// Update grava a versão recebida; CreatedAt original é preservado.
	Update(ctx context.Context, p *Prospect) error
}
