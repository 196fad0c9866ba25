package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CreateTemplateInput struct {
	Name     string         `json:"name" validate:"required"`
	Content  string         `json:"content" validate:"required"`
	Category string         `json:"category" validate:"required"`
	Channel  entity.Channel `json:"channel,omitempty" validate:"omitempty,channel"`
}

type RenderedTemplate struct {
	TemplateID string         `json:"template_id"`
	ContactID  string         `json:"contact_id"`
	Channel    entity.Channel `json:"channel"`
	Content    string         `json:"content"`
}

type TemplateUseCase struct {
	templates entity.TemplateRepositoryInterface
	contacts  entity.ContactRepositoryInterface
	now       Clock
	company   string
}

func NewTemplateUseCase(templates entity.TemplateRepositoryInterface, contacts entity.ContactRepositoryInterface, now Clock, company string) *TemplateUseCase {
	if now == nil {
		now = SystemClock
	}
	return &TemplateUseCase{templates: templates, contacts: contacts, now: now, company: company}
}

// List filtra por categoria e canal; vazio = todos.
func (uc *TemplateUseCase) List(ctx context.Context, category string, channel entity.Channel) ([]entity.MessageTemplate, error) {
	all, err := uc.templates.List(ctx)
	if err != nil {
		return nil, storeError("list templates", err)
	}
	out := make([]entity.MessageTemplate, 0, len(all))
	for _, t := range all {
		if category != "" && !strings.EqualFold(t.Category, category) {
			continue
		}
		if channel != "" && t.Channel != channel {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (uc *TemplateUseCase) Get(ctx context.Context, id string) (*entity.MessageTemplate, error) {
	return uc.templates.FindByID(ctx, id)
}

func (uc *TemplateUseCase) Create(ctx context.Context, input CreateTemplateInput) (*entity.MessageTemplate, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Content = strings.TrimSpace(input.Content)
	input.Category = strings.TrimSpace(input.Category)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Channel == "" {
		input.Channel = entity.ChannelWhatsApp
	}

	t := &entity.MessageTemplate{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Content:   input.Content,
		Category:  input.Category,
		Channel:   input.Channel,
		CreatedAt: uc.now(),
	}
	if err := uc.templates.Create(ctx, t); err != nil {
		return nil, storeError("create template", err)
	}
	return t, nil
}

func (uc *TemplateUseCase) Delete(ctx context.Context, id string) error {
	return uc.templates.Delete(ctx, id)
}

// Render devolve uma cópia do conteúdo com os placeholders do contato; o template não muda.
func (uc *TemplateUseCase) Render(ctx context.Context, templateID, contactID string) (*RenderedTemplate, error) {
	t, err := uc.templates.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	vars := entity.TemplateVars{Empresa: uc.company}
	if contactID != "" {
		c, err := uc.contacts.FindByID(ctx, contactID)
		if err != nil {
			return nil, err
		}
		vars.Nombre = c.Name
		vars.Producto = c.Product
	}

	return &RenderedTemplate{
		TemplateID: t.ID,
		ContactID:  contactID,
		Channel:    t.Channel,
		Content:    t.Render(vars),
	}, nil
}
