package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// UserDirectory resolve os usuários de demonstração carregados no Store.
type UserDirectory struct {
	store *Store
}

var _ entity.UserDirectory = (*UserDirectory)(nil)

func NewUserDirectory(store *Store) *UserDirectory {
	return &UserDirectory{store: store}
}

func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	for _, c := range d.store.users {
		if strings.EqualFold(c.User.Email, strings.TrimSpace(email)) {
			cp := c
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

// SessionStore é o backend padrão (SESSION_BACKEND=memory).
type SessionStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ entity.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{data: make(map[string][]byte)}
}

func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *SessionStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
