package entity

import (
	"context"
	"strings"
	"time"
)

type MessageSender string

const (
	SenderUser    MessageSender = "user"
	SenderContact MessageSender = "contact"
)

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
	ChannelPhone    Channel = "phone"
	ChannelSMS      Channel = "sms"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelWhatsApp, ChannelEmail, ChannelPhone, ChannelSMS:
		return true
	}
	return false
}

// Message é imutável depois de criada.
type Message struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Sender    MessageSender `json:"sender"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
	Channel   Channel       `json:"channel"`
}

type MessageSummary struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Contact é a projeção de canal de um Prospect (contact-N <-> prospect-N).
type Contact struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Status      ProspectStatus  `json:"status"`
	Product     string          `json:"product"`
	Source      string          `json:"source"`
	Online      bool            `json:"online"`
	UnreadCount int             `json:"unread_count"`
	LastMessage *MessageSummary `json:"last_message,omitempty"`
	Messages    []Message       `json:"messages,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// AppendMessage mantém a ordem por timestamp e atualiza o resumo.
func (c *Contact) AppendMessage(m Message) {
	c.Messages = append(c.Messages, m)
	for i := len(c.Messages) - 1; i > 0 && c.Messages[i].Timestamp.Before(c.Messages[i-1].Timestamp); i-- {
		c.Messages[i], c.Messages[i-1] = c.Messages[i-1], c.Messages[i]
	}
	last := c.Messages[len(c.Messages)-1]
	c.LastMessage = &MessageSummary{Content: last.Content, Timestamp: last.Timestamp}
}

const (
	prospectIDPrefix = "prospect-"
	contactIDPrefix  = "contact-"
)

func ContactIDForProspect(prospectID string) (string, bool) {
	if !strings.HasPrefix(prospectID, prospectIDPrefix) {
		return "", false
	}
	return contactIDPrefix + strings.TrimPrefix(prospectID, prospectIDPrefix), true
}

func ProspectIDForContact(contactID string) (string, bool) {
	if !strings.HasPrefix(contactID, contactIDPrefix) {
		return "", false
	}
	return prospectIDPrefix + strings.TrimPrefix(contactID, contactIDPrefix), true
}

// TotalUnread agrega unreadCount na leitura.
func TotalUnread(contacts []Contact) int {
	total := 0
	for _, c := range contacts {
		total += c.UnreadCount
	}
	return total
}

type ContactRepositoryInterface interface {
	List(ctx context.Context) ([]Contact, error)
	FindByID(ctx context.Context, id string) (*Contact, error)
	Update(ctx context.Context, c *Contact) error
}
