package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

var messageTemplate = template.Must(template.New("message").Parse(`<p>Hola {{.Name}},</p>
<p>{{.Body}}</p>
<p>Saludos,<br>{{.Company}}</p>
`))

func NewEmailSender(host string, port int, user, password, from, company string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		Company:  company,
	}
}

// SendMessage entrega uma mensagem do canal email do CRM.
func (s *EmailSender) SendMessage(to, name, subject, body string) error {
	if to == "" {
		return fmt.Errorf("destinatário vazio")
	}

	var html bytes.Buffer
	if err := messageTemplate.Execute(&html, MessageEmailData{Name: name, Company: s.Company, Body: body}); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetAddressHeader("To", to, name)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", html.String())

	if s.Sender != nil {
		if err := gomail.Send(s.Sender, m); err != nil {
			return fmt.Errorf("erro ao enviar email: %w", err)
		}
		return nil
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}
