package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/memory"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// TestFixtureCounts - Quantidade de registros semeados
func TestFixtureCounts(t *testing.T) {
	assert.Len(t, Prospects(now), 12)
	assert.Len(t, Tasks(now), 12)
	assert.Len(t, Notifications(now), 7)
	assert.Len(t, Templates(now), 7)
	assert.Len(t, Contacts(now), 5)
}

// TestFixturesAreValid - Todo registro semeado respeita o vocabulário
func TestFixturesAreValid(t *testing.T) {
	for _, p := range Prospects(now) {
		assert.NoError(t, p.Validate(), p.ID)
	}
	for _, task := range Tasks(now) {
		assert.NoError(t, task.Validate(), task.ID)
		assert.Equal(t, "Juan Pérez", task.AssignedTo)
	}
	for _, c := range Contacts(now) {
		assert.True(t, c.Status.Valid(), c.ID)
		if assert.NotNil(t, c.LastMessage) {
			assert.Equal(t, c.Messages[len(c.Messages)-1].Content, c.LastMessage.Content)
		}
	}
}

// TestFixturesRelativeToNow - Datas são relativas ao instante do seed
func TestFixturesRelativeToNow(t *testing.T) {
	tasks := Tasks(now)
	overdue := 0
	for _, task := range tasks {
		if task.IsOverdue(now) {
			overdue++
		}
	}
	// só a tarefa vencida de Laura
	assert.Equal(t, 1, overdue)

	later := now.Add(72 * time.Hour)
	assert.Equal(t, later.Add(2*time.Hour), Tasks(later)[0].DueDate)
}

// TestFixtureSearchMaria - Busca "maria" encontra só María López García
func TestFixtureSearchMaria(t *testing.T) {
	hits := 0
	for _, p := range Prospects(now) {
		if strings.Contains(strings.ToLower(p.Name), "maria") || strings.Contains(strings.ToLower(p.Email), "maria") {
			hits++
			assert.Equal(t, "prospect-1", p.ID)
		}
	}
	assert.Equal(t, 1, hits)
}

// TestUsersShareDemoPassword - Usuários de demonstração usam a mesma senha
func TestUsersShareDemoPassword(t *testing.T) {
	users, err := Users()
	assert.NoError(t, err)
	assert.Len(t, users, 4)
	for _, u := range users {
		assert.True(t, u.User.Role.Rank() > 0, u.User.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(DemoPassword)))
	}
}

// TestLoadPopulatesStore - Load preenche todas as coleções do Store
func TestLoadPopulatesStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	assert.NoError(t, Load(store, now))

	prospects, _ := memory.NewProspectRepository(store).List(ctx)
	assert.Len(t, prospects, 12)

	cred, err := memory.NewUserDirectory(store).FindByEmail(ctx, "admin@crm.com")
	assert.NoError(t, err)
	if assert.NotNil(t, cred) {
		assert.Equal(t, entity.RoleAdmin, cred.User.Role)
	}
}
