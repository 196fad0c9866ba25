package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type SendMessageInput struct {
	Content string         `json:"content" validate:"required"`
	Channel entity.Channel `json:"channel,omitempty" validate:"omitempty,channel"`
}

type MassMessageInput struct {
	ContactIDs []string       `json:"contact_ids" validate:"required,min=1"`
	Filter     *ContactFilter `json:"filter,omitempty"`
	Content    string         `json:"content,omitempty"`
	TemplateID string         `json:"template_id,omitempty"`
	Channel    entity.Channel `json:"channel,omitempty" validate:"omitempty,channel"`
}

type MassMessageOutput struct {
	Sent    []string `json:"sent"`
	Skipped []string `json:"skipped"`
}

type MessagingUseCase struct {
	contacts  entity.ContactRepositoryInterface
	templates entity.TemplateRepositoryInterface
	email     EmailSender
	now       Clock
	company   string
}

// email pode ser nil: mensagens do canal email ficam só no histórico.
func NewMessagingUseCase(
	contacts entity.ContactRepositoryInterface,
	templates entity.TemplateRepositoryInterface,
	email EmailSender,
	now Clock,
	company string,
) *MessagingUseCase {
	if now == nil {
		now = SystemClock
	}
	return &MessagingUseCase{contacts: contacts, templates: templates, email: email, now: now, company: company}
}

func (uc *MessagingUseCase) ListContacts(ctx context.Context, f ContactFilter) ([]entity.Contact, error) {
	all, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, storeError("list contacts", err)
	}
	return FilterContacts(all, f), nil
}

func (uc *MessagingUseCase) GetContact(ctx context.Context, id string) (*entity.Contact, error) {
	return uc.contacts.FindByID(ctx, id)
}

// UnreadTotal é calculado na leitura, nunca guardado.
func (uc *MessagingUseCase) UnreadTotal(ctx context.Context) (int, error) {
	all, err := uc.contacts.List(ctx)
	if err != nil {
		return 0, storeError("list contacts", err)
	}
	return entity.TotalUnread(all), nil
}

func (uc *MessagingUseCase) SendMessage(ctx context.Context, contactID string, input SendMessageInput) (*entity.Message, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Channel == "" {
		input.Channel = entity.ChannelWhatsApp
	}

	c, err := uc.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	msg := uc.appendOutgoing(c, input.Content, input.Channel)
	if err := uc.contacts.Update(ctx, c); err != nil {
		return nil, storeError("update contact", err)
	}

	uc.deliverEmail(c, msg)
	return &msg, nil
}

func (uc *MessagingUseCase) MarkRead(ctx context.Context, contactID string) (*entity.Contact, error) {
	c, err := uc.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if c.UnreadCount == 0 {
		return c, nil
	}
	c.UnreadCount = 0
	if err := uc.contacts.Update(ctx, c); err != nil {
		return nil, storeError("update contact", err)
	}
	return c, nil
}

// SendMassMessage envia o mesmo conteúdo (ou template renderizado por contato)
// para os selecionados. Com filtro, a seleção é reconciliada antes do envio.
func (uc *MessagingUseCase) SendMassMessage(ctx context.Context, input MassMessageInput) (*MassMessageOutput, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Content == "" && input.TemplateID == "" {
		return nil, newValidationFailure(CodeMissingRequiredField, []ValidationError{{"content", "is required"}})
	}
	if input.Channel == "" {
		input.Channel = entity.ChannelWhatsApp
	}

	var tpl *entity.MessageTemplate
	if input.TemplateID != "" {
		t, err := uc.templates.FindByID(ctx, input.TemplateID)
		if err != nil {
			return nil, err
		}
		tpl = t
	}

	selection := NewRecipientSelection(input.ContactIDs...)
	if input.Filter != nil {
		all, err := uc.contacts.List(ctx)
		if err != nil {
			return nil, storeError("list contacts", err)
		}
		selection.Reconcile(FilterContacts(all, *input.Filter))
	}

	out := &MassMessageOutput{Sent: []string{}, Skipped: []string{}}
	for _, id := range input.ContactIDs {
		if !selection.Has(id) {
			out.Skipped = append(out.Skipped, id)
		}
	}
	for _, id := range selection.IDs() {
		c, err := uc.contacts.FindByID(ctx, id)
		if err != nil {
			out.Skipped = append(out.Skipped, id)
			continue
		}

		content := input.Content
		if tpl != nil {
			content = tpl.Render(uc.varsFor(*c))
		}
		msg := uc.appendOutgoing(c, content, input.Channel)
		if err := uc.contacts.Update(ctx, c); err != nil {
			logrus.WithFields(logrus.Fields{
				"contact_id": id,
				"error":      err,
			}).Warn("⚠️ Falha ao gravar mensagem em massa")
			out.Skipped = append(out.Skipped, id)
			continue
		}
		uc.deliverEmail(c, msg)
		out.Sent = append(out.Sent, id)
	}

	if tpl != nil && len(out.Sent) > 0 {
		tpl.UsageCount += len(out.Sent)
		if err := uc.templates.Update(ctx, tpl); err != nil {
			logrus.WithError(err).Warn("⚠️ Falha ao atualizar uso da plantilla")
		}
	}

	logrus.WithFields(logrus.Fields{
		"channel": input.Channel,
		"sent":    len(out.Sent),
		"skipped": len(out.Skipped),
	}).Info("📨 Envio em massa concluído")
	return out, nil
}

func (uc *MessagingUseCase) appendOutgoing(c *entity.Contact, content string, channel entity.Channel) entity.Message {
	msg := entity.Message{
		ID:        uuid.New().String(),
		Content:   content,
		Sender:    entity.SenderUser,
		Timestamp: uc.now(),
		Status:    entity.MessageSent,
		Channel:   channel,
	}
	c.AppendMessage(msg)
	return msg
}

func (uc *MessagingUseCase) varsFor(c entity.Contact) entity.TemplateVars {
	return entity.TemplateVars{Nombre: c.Name, Producto: c.Product, Empresa: uc.company}
}

// deliverEmail é best-effort: falha de SMTP não desfaz a mensagem gravada.
func (uc *MessagingUseCase) deliverEmail(c *entity.Contact, msg entity.Message) {
	if uc.email == nil || msg.Channel != entity.ChannelEmail || c.Email == "" {
		return
	}
	subject := "Mensaje de " + uc.company
	if err := uc.email.SendMessage(c.Email, c.Name, subject, msg.Content); err != nil {
		logrus.WithFields(logrus.Fields{
			"contact_id": c.ID,
			"error":      err,
		}).Error("❌ Falha ao enviar email")
	}
}
