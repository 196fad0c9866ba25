package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, func() time.Time { return fixedNow })
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestProspectsSearchJSON - Busca por nome devolve só a María
func TestProspectsSearchJSON(t *testing.T) {
	out, err := runCLI(t, "prospects", "--search", "maria", "--format", "json")
	assert.NoError(t, err)

	var list []entity.Prospect
	assert.NoError(t, json.Unmarshal([]byte(out), &list))
	if assert.Len(t, list, 1) {
		assert.Equal(t, "prospect-1", list[0].ID)
	}
}

// TestProspectsTable - Tabela com cabeçalho e filtro de status
func TestProspectsTable(t *testing.T) {
	out, err := runCLI(t, "prospects", "--status", "ganado,perdido", "--source", "Facebook")
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
}

// TestProspectsInvalidStatus - Status fora do vocabulário falha
func TestProspectsInvalidStatus(t *testing.T) {
	_, err := runCLI(t, "prospects", "--status", "archivado")
	assert.Error(t, err)
}

// TestTasksOverdue - Só a tarefa vencida aparece
func TestTasksOverdue(t *testing.T) {
	out, err := runCLI(t, "tasks", "--overdue", "--format", "json")
	assert.NoError(t, err)

	var cards []usecase.TaskCard
	assert.NoError(t, json.Unmarshal([]byte(out), &cards))
	if assert.Len(t, cards, 1) {
		assert.Equal(t, "task-5", cards[0].ID)
		assert.True(t, cards[0].Overdue)
	}
}

// TestBoardTasksByPriority - Colunas alta, media e baja
func TestBoardTasksByPriority(t *testing.T) {
	out, err := runCLI(t, "board", "tasks", "--by", "priority")
	assert.NoError(t, err)
	assert.Contains(t, out, "alta (5)")
	assert.Contains(t, out, "[atrasada]")

	_, err = runCLI(t, "board", "tasks", "--by", "owner")
	assert.Error(t, err)

	_, err = runCLI(t, "board", "clientes")
	assert.Error(t, err)
}

// TestDashboardCommand - Resumo sobre as fixtures
func TestDashboardCommand(t *testing.T) {
	out, err := runCLI(t, "dashboard")
	assert.NoError(t, err)

	var s usecase.DashboardSummary
	assert.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 12, s.TotalProspects)
	assert.Equal(t, 1, s.OverdueTasks)
}

// TestRecordCommand - Interação com seguimento semanal deriva a tarefa
func TestRecordCommand(t *testing.T) {
	out, err := runCLI(t, "record", "prospect-2",
		"--type", "llamada", "--result", "interesado",
		"--status", "en_conversacion", "--next", "seguimiento_semanal")
	assert.NoError(t, err)

	var res usecase.RecordInteractionOutput
	assert.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, entity.ProspectEnConversacion, res.Prospect.Status)
	if assert.NotNil(t, res.Task) {
		assert.Equal(t, "Juan Pérez", res.Task.AssignedTo)
		assert.Equal(t, fixedNow.Add(7*24*time.Hour), res.Task.DueDate.UTC())
	}

	_, err = runCLI(t, "record", "prospect-2", "--type", "llamada")
	assert.Error(t, err)
}

// TestParseDay - Limite superior cobre o dia inteiro
func TestParseDay(t *testing.T) {
	to, err := parseDay("2026-03-10", true)
	assert.NoError(t, err)
	assert.Equal(t, 23, to.Hour())

	_, err = parseDay("10/03/2026", false)
	assert.Error(t, err)
}
