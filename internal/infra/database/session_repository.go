package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS crm_kv (
		key   TEXT PRIMARY KEY,
		value JSONB NOT NULL
	)`

// SessionRepository guarda a sessão numa tabela chave/valor (SESSION_BACKEND=postgres).
type SessionRepository struct {
	db *sql.DB
}

var _ entity.SessionStore = (*SessionRepository)(nil)

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createKVTable); err != nil {
		return fmt.Errorf("erro ao criar crm_kv: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM crm_kv WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSessionNotFound
	}
	if err != nil {
		return nil, wrapPQ("get", err)
	}
	return raw, nil
}

// Set grava o valor; precisa ser JSON válido (coluna jsonb).
func (r *SessionRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO crm_kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return wrapPQ("set", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM crm_kv WHERE key = $1`, key); err != nil {
		return wrapPQ("delete", err)
	}
	return nil
}

func wrapPQ(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("crm_kv %s: %s (%s): %w", op, pqErr.Message, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("crm_kv %s: %w", op, err)
}
