package mail

import "gopkg.in/gomail.v2"

type MessageEmailData struct {
	Name    string
	Company string
	Body    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Company  string

	// Sender substitui o dialer SMTP (testes).
	Sender gomail.Sender
}
