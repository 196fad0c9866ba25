package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// fakeRedis implementa kv sobre um map, devolvendo os Cmd prontos do go-redis.
type fakeRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, f.err)
}

// ============ TESTES DA SESSÃO NO REDIS ============

// TestRedisSessionRoundTrip - Chave com namespace e TTL configurado
func TestRedisSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := NewSessionStore(rdb, 12*time.Hour)

	assert.NoError(t, s.Set(ctx, "crm-user", []byte(`{"id":"1"}`)))
	assert.Contains(t, rdb.data, "ligue-crm:crm-user")
	assert.Equal(t, 12*time.Hour, rdb.ttl["ligue-crm:crm-user"])

	raw, err := s.Get(ctx, "crm-user")
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(raw))

	assert.NoError(t, s.Delete(ctx, "crm-user"))
	_, err = s.Get(ctx, "crm-user")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

// TestRedisSessionErrors - Erro de conexão não vira "sessão inexistente"
func TestRedisSessionErrors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	connErr := errors.New("dial tcp: connection refused")
	rdb.err = connErr
	s := NewSessionStore(rdb, 0)

	_, err := s.Get(ctx, "crm-user")
	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, entity.ErrSessionNotFound)

	assert.ErrorIs(t, s.Set(ctx, "crm-user", []byte("x")), connErr)
	assert.ErrorIs(t, s.Delete(ctx, "crm-user"), connErr)
}
