package entity

import "context"

type Role string

const (
	RoleAgent   Role = "agent"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Rank: agent=1, manager=2, admin=3. Papel desconhecido = 0.
func (r Role) Rank() int {
	switch r {
	case RoleAgent:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// AtLeast é só uma checagem consultiva, não há enforcement no servidor.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() > 0 && r.Rank() >= min.Rank()
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Credential é o usuário de demonstração com o hash da senha.
type Credential struct {
	User         User
	PasswordHash []byte
}

type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
}

// SessionStore é o armazenamento chave-valor da sessão (chave "crm-user").
type SessionStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
