package entity

import (
	"context"
	"strings"
	"time"
)

type MessageTemplate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Channel    Channel   `json:"channel"`
	CreatedAt  time.Time `json:"created_at"`
	UsageCount int       `json:"usage_count"`
}

// TemplateVars são os valores de personalização de uma plantilla.
type TemplateVars struct {
	Nombre   string
	Producto string
	Empresa  string
}

// Render troca os placeholders {nombre}/{producto}/{empresa} e as formas antigas [Nombre]/[Producto].
// Placeholder sem valor fica como está.
func (t MessageTemplate) Render(v TemplateVars) string {
	var pairs []string
	if v.Nombre != "" {
		pairs = append(pairs, "{nombre}", v.Nombre, "[Nombre]", v.Nombre)
	}
	if v.Producto != "" {
		pairs = append(pairs, "{producto}", v.Producto, "[Producto]", v.Producto)
	}
	if v.Empresa != "" {
		pairs = append(pairs, "{empresa}", v.Empresa)
	}
	if len(pairs) == 0 {
		return t.Content
	}
	return strings.NewReplacer(pairs...).Replace(t.Content)
}

type TemplateRepositoryInterface interface {
	List(ctx context.Context) ([]MessageTemplate, error)
	FindByID(ctx context.Context, id string) (*MessageTemplate, error)
	Create(ctx context.Context, t *MessageTemplate) error
	Update(ctx context.Context, t *MessageTemplate) error
	Delete(ctx context.Context, id string) error
}
