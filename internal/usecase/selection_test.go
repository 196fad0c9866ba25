package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/seed"
)

// ============ TESTES DA SELEÇÃO DE DESTINATÁRIOS ============

// TestSelectionToggle - Toggle marca e desmarca preservando a ordem
func TestSelectionToggle(t *testing.T) {
	s := NewRecipientSelection("contact-1", "contact-2", "contact-1")
	assert.Equal(t, 2, s.Len())

	s.Toggle("contact-3")
	s.Toggle("contact-1")
	assert.Equal(t, []string{"contact-2", "contact-3"}, s.IDs())
	assert.False(t, s.Has("contact-1"))
}

// TestSelectionToggleAll - Seleciona tudo; com tudo já marcado, limpa
func TestSelectionToggleAll(t *testing.T) {
	contacts := seed.Contacts(fixedNow)
	s := NewRecipientSelection("contact-2")

	s.ToggleAll(contacts)
	assert.Equal(t, len(contacts), s.Len())
	assert.Equal(t, "contact-2", s.IDs()[0])

	s.ToggleAll(contacts)
	assert.Equal(t, 0, s.Len())

	s.ToggleAll(nil)
	assert.Equal(t, 0, s.Len())
}

// TestSelectionReconcileAfterFilterChange - Seleção ⊆ filtrados depois de trocar o filtro
func TestSelectionReconcileAfterFilterChange(t *testing.T) {
	contacts := seed.Contacts(fixedNow)
	s := NewRecipientSelection()
	s.ToggleAll(contacts)

	filtered := FilterContacts(contacts, ContactFilter{Status: []entity.ProspectStatus{entity.ProspectNuevo}})
	s.Reconcile(filtered)

	assert.Equal(t, []string{"contact-3"}, s.IDs())
	for _, id := range s.IDs() {
		assert.Contains(t, ids(filtered, func(c entity.Contact) string { return c.ID }), id)
	}

	s.Reconcile(nil)
	assert.Equal(t, 0, s.Len())
}

// ============ TESTES DOS QUADROS ============

// TestProspectBoardColumns - Seis colunas na ordem do funil, partição completa
func TestProspectBoardColumns(t *testing.T) {
	prospects := seed.Prospects(fixedNow)
	board := ProspectBoard(prospects)

	if !assert.Len(t, board, len(entity.ProspectFunnel)) {
		return
	}
	total := 0
	for i, col := range board {
		assert.Equal(t, entity.ProspectFunnel[i], col.Status)
		for _, p := range col.Prospects {
			assert.Equal(t, col.Status, p.Status)
		}
		total += len(col.Prospects)
	}
	assert.Equal(t, len(prospects), total)
	assert.Equal(t, []string{"prospect-3", "prospect-7"}, ids(board[0].Prospects, prospectID))
}

// TestTaskBoardByPriority - Colunas alta/media/baja com overdue calculado
func TestTaskBoardByPriority(t *testing.T) {
	board := TaskBoard(BoardByPriority, seed.Tasks(fixedNow), fixedNow)
	if !assert.Len(t, board, 3) {
		return
	}
	assert.Equal(t, "alta", board[0].ID)
	assert.Len(t, board[0].Tasks, 5)

	overdue := 0
	for _, col := range board {
		for _, c := range col.Tasks {
			if c.Overdue {
				overdue++
			}
		}
	}
	assert.Equal(t, 1, overdue)
}

// TestTaskBoardByStatus - Colunas na ordem dos status
func TestTaskBoardByStatus(t *testing.T) {
	board := TaskBoard(BoardByStatus, seed.Tasks(fixedNow), fixedNow)
	if !assert.Len(t, board, 4) {
		return
	}
	assert.Equal(t, []string{"pendiente", "en progreso", "vencida", "completada"}, []string{board[0].ID, board[1].ID, board[2].ID, board[3].ID})
	assert.Len(t, board[3].Tasks, 2)
}
