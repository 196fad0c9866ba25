package mail

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"
)

// ============ TESTES DO EMAIL SENDER ============

// TestSendMessageBuildsMultipart - Mensagem com texto e HTML para o destinatário certo
func TestSendMessageBuildsMultipart(t *testing.T) {
	var (
		gotFrom string
		gotTo   []string
		raw     bytes.Buffer
	)
	s := NewEmailSender("smtp.example.com", 587, "user", "pass", "crm@ligue.com", "Ligue")
	s.Sender = gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		gotFrom = from
		gotTo = to
		_, err := msg.WriteTo(&raw)
		return err
	})

	err := s.SendMessage("ana.martinez@example.com", "Ana", "Mensaje de Ligue", "Tu plan HBO Max está listo")
	assert.NoError(t, err)

	assert.Equal(t, "crm@ligue.com", gotFrom)
	assert.Equal(t, []string{"ana.martinez@example.com"}, gotTo)
	body := raw.String()
	assert.Contains(t, body, "Subject: Mensaje de Ligue")
	assert.Contains(t, body, "text/plain")
	assert.Contains(t, body, "text/html")
}

// TestSendMessageEmptyRecipient - Sem destinatário não tenta enviar
func TestSendMessageEmptyRecipient(t *testing.T) {
	called := false
	s := NewEmailSender("", 0, "", "", "crm@ligue.com", "Ligue")
	s.Sender = gomail.SendFunc(func(string, []string, io.WriterTo) error {
		called = true
		return nil
	})

	assert.Error(t, s.SendMessage("", "Ana", "x", "y"))
	assert.False(t, called)
}

// TestSendMessageSenderError - Erro do SMTP aparece na mensagem
func TestSendMessageSenderError(t *testing.T) {
	smtpErr := errors.New("connection refused")
	s := NewEmailSender("", 0, "", "", "crm@ligue.com", "Ligue")
	s.Sender = gomail.SendFunc(func(string, []string, io.WriterTo) error { return smtpErr })

	err := s.SendMessage("ana@example.com", "Ana", "x", "y")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "erro ao enviar email")
	assert.ErrorContains(t, err, "connection refused")
}

// TestMessageTemplateEscapesHTML - Corpo é escapado no HTML
func TestMessageTemplateEscapesHTML(t *testing.T) {
	var buf bytes.Buffer
	err := messageTemplate.Execute(&buf, MessageEmailData{Name: "Ana", Company: "Ligue", Body: "<b>oferta</b>"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;b&gt;oferta&lt;/b&gt;")
	assert.Contains(t, buf.String(), "Hola Ana,")
}
