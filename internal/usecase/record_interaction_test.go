package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context) ([]entity.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *entity.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// failingInteractions falha sempre no Append.
type failingInteractions struct {
	entity.InteractionRepositoryInterface
}

func (failingInteractions) Append(ctx context.Context, i *entity.Interaction) error {
	return errors.New("disco cheio")
}

func (failingInteractions) Remove(ctx context.Context, id string) error { return nil }

// ============ TESTES DO REGISTRO DE INTERAÇÃO ============

// TestRecordInteractionCarlosScenario - Carlos passa para en conversación com seguimento semanal
func TestRecordInteractionCarlosScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tasksBefore, _ := env.tasks.List(ctx)

	out, err := env.recorder().Execute(ctx, RecordInteractionInput{
		ProspectID:      "prospect-2",
		InteractionType: entity.InteractionLlamada,
		Result:          entity.ResultInteresado,
		NewStatus:       entity.ProspectEnConversacion,
		NextAction:      entity.ActionSeguimientoSemanal,
		Notes:           "Quiere ver el catálogo infantil",
	})
	assert.NoError(t, err)
	if !assert.NotNil(t, out) || !assert.NotNil(t, out.Task) {
		return
	}

	p := env.prospect(t, "prospect-2")
	assert.Equal(t, entity.ProspectEnConversacion, p.Status)
	if assert.NotNil(t, p.LastContactDate) {
		assert.Equal(t, fixedNow, *p.LastContactDate)
	}

	tasksAfter, _ := env.tasks.List(ctx)
	assert.Len(t, tasksAfter, len(tasksBefore)+1)

	task := out.Task
	assert.Equal(t, "Seguimiento semanal - Carlos Rodríguez Silva", task.Title)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), task.DueDate)
	assert.Equal(t, entity.PriorityMedia, task.Priority)
	assert.Equal(t, entity.TaskPendiente, task.Status)
	assert.Equal(t, "Juan Pérez", task.AssignedTo)
	if assert.NotNil(t, task.RelatedTo) {
		assert.Equal(t, entity.RelatedProspect, task.RelatedTo.Kind)
		assert.Equal(t, "prospect-2", task.RelatedTo.ID)
	}
	assert.Equal(t, task.ID, out.Interaction.TaskID)
	assert.Equal(t, entity.ProspectContactado, out.PreviousStatus)
	assert.True(t, out.StatusChanged())

	history, _ := env.interactions.ListByProspect(ctx, "prospect-2")
	assert.Len(t, history, 1)

	assert.Equal(t, []string{EventInteractionRecorded, EventProspectStatusChanged, EventTaskCreated}, env.events.types())
}

// TestRecordInteractionAnaScenario - Ana ganha e a ligação de amanhã vira tarefa alta
func TestRecordInteractionAnaScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	out, err := env.recorder().Execute(ctx, RecordInteractionInput{
		ProspectID:      "prospect-3",
		InteractionType: entity.InteractionReunion,
		Result:          entity.ResultInteresado,
		NewStatus:       entity.ProspectGanado,
		NextAction:      entity.ActionLlamarManana,
	})
	assert.NoError(t, err)
	if !assert.NotNil(t, out) || !assert.NotNil(t, out.Task) {
		return
	}

	assert.Equal(t, entity.ProspectGanado, env.prospect(t, "prospect-3").Status)
	assert.Equal(t, "Llamar a Ana Martínez Fernández", out.Task.Title)
	assert.Equal(t, entity.PriorityAlta, out.Task.Priority)
	assert.Equal(t, fixedNow.Add(24*time.Hour), out.Task.DueDate)
}

// TestRecordInteractionExplicitFollowUp - Data explícita vence o prazo padrão
func TestRecordInteractionExplicitFollowUp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	followUp := fixedNow.Add(10 * 24 * time.Hour)

	out, err := env.recorder().Execute(ctx, RecordInteractionInput{
		ProspectID:      "prospect-1",
		InteractionType: entity.InteractionMensaje,
		Result:          entity.ResultQuierePensar,
		NewStatus:       entity.ProspectNegociacion,
		NextAction:      entity.ActionEnviarInfo,
		FollowUpDate:    &followUp,
	})
	assert.NoError(t, err)
	if assert.NotNil(t, out) && assert.NotNil(t, out.Task) {
		assert.Equal(t, followUp, out.Task.DueDate)
	}
	// status não mudou: sem evento de status
	assert.Equal(t, []string{EventInteractionRecorded, EventTaskCreated}, env.events.types())
}

// TestRecordInteractionNoRecontactar - Sem tarefa derivada
func TestRecordInteractionNoRecontactar(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before, _ := env.tasks.List(ctx)

	out, err := env.recorder().Execute(ctx, RecordInteractionInput{
		ProspectID:      "prospect-6",
		InteractionType: entity.InteractionLlamada,
		Result:          entity.ResultNoInteresado,
		NewStatus:       entity.ProspectPerdido,
		NextAction:      entity.ActionNoRecontactar,
	})
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Nil(t, out.Task)
		assert.Empty(t, out.Interaction.TaskID)
		// Miguel já estava perdido
		assert.Equal(t, entity.ProspectPerdido, out.PreviousStatus)
		assert.False(t, out.StatusChanged())
	}

	after, _ := env.tasks.List(ctx)
	assert.Len(t, after, len(before))
	assert.Equal(t, []string{EventInteractionRecorded}, env.events.types())
}

// TestRecordInteractionMissingFieldsMutatesNothing - Campo obrigatório ausente aborta sem efeitos
func TestRecordInteractionMissingFieldsMutatesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before := env.prospect(t, "prospect-2")
	tasksBefore, _ := env.tasks.List(ctx)

	inputs := []RecordInteractionInput{
		{ProspectID: "prospect-2", Result: entity.ResultInteresado, NewStatus: entity.ProspectContactado},
		{ProspectID: "prospect-2", InteractionType: entity.InteractionLlamada, NewStatus: entity.ProspectContactado},
		{ProspectID: "prospect-2", InteractionType: entity.InteractionLlamada, Result: entity.ResultInteresado},
	}
	for _, in := range inputs {
		_, err := env.recorder().Execute(ctx, in)
		var de *DomainError
		if assert.ErrorAs(t, err, &de) {
			assert.Equal(t, CodeMissingRequiredField, de.Code)
		}
	}

	assert.Equal(t, before, env.prospect(t, "prospect-2"))
	tasksAfter, _ := env.tasks.List(ctx)
	assert.Len(t, tasksAfter, len(tasksBefore))
	history, _ := env.interactions.ListByProspect(ctx, "prospect-2")
	assert.Empty(t, history)
	assert.Empty(t, env.events.events)
}

// TestRecordInteractionInvalidVocabulary - Valor fora do vocabulário vira VALIDATION_ERROR
func TestRecordInteractionInvalidVocabulary(t *testing.T) {
	_, err := newTestEnv(t).recorder().Execute(context.Background(), RecordInteractionInput{
		ProspectID:      "prospect-2",
		InteractionType: entity.InteractionType("fax"),
		Result:          entity.ResultInteresado,
		NewStatus:       entity.ProspectContactado,
	})
	var de *DomainError
	if assert.ErrorAs(t, err, &de) {
		assert.Equal(t, CodeValidation, de.Code)
		if assert.Len(t, de.Fields, 1) {
			assert.Equal(t, "interaction_type", de.Fields[0].Field)
		}
	}
}

// TestRecordInteractionUnknownProspect - Prospect inexistente
func TestRecordInteractionUnknownProspect(t *testing.T) {
	_, err := newTestEnv(t).recorder().Execute(context.Background(), RecordInteractionInput{
		ProspectID:      "prospect-99",
		InteractionType: entity.InteractionLlamada,
		Result:          entity.ResultNoContesta,
		NewStatus:       entity.ProspectContactado,
	})
	assert.ErrorIs(t, err, entity.ErrProspectNotFound)
}

// TestRecordInteractionCompensatesWhenTaskFails - Falha ao criar tarefa desfaz o prospect
func TestRecordInteractionCompensatesWhenTaskFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before := env.prospect(t, "prospect-2")

	mockTasks := new(MockTaskRepository)
	mockTasks.On("Create", mock.Anything, mock.AnythingOfType("*entity.Task")).Return(errors.New("store indisponível"))

	uc := NewRecordInteractionUseCase(env.prospects, mockTasks, env.interactions, nil, env.events, fixedClock, "Juan Pérez")
	_, err := uc.Execute(ctx, RecordInteractionInput{
		ProspectID:      "prospect-2",
		InteractionType: entity.InteractionLlamada,
		Result:          entity.ResultInteresado,
		NewStatus:       entity.ProspectGanado,
		NextAction:      entity.ActionAgendarReunion,
	})

	assert.Error(t, err)
	assert.True(t, IsTechnicalError(err))

	after := env.prospect(t, "prospect-2")
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.LastContactDate, after.LastContactDate)
	history, _ := env.interactions.ListByProspect(ctx, "prospect-2")
	assert.Empty(t, history)
	assert.Empty(t, env.events.events)

	mockTasks.AssertExpectations(t)
	mockTasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestRecordInteractionCompensatesWhenHistoryFails - Falha no histórico remove a tarefa criada
func TestRecordInteractionCompensatesWhenHistoryFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	before := env.prospect(t, "prospect-2")

	mockTasks := new(MockTaskRepository)
	mockTasks.On("Create", mock.Anything, mock.AnythingOfType("*entity.Task")).Return(nil)
	mockTasks.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	uc := NewRecordInteractionUseCase(env.prospects, mockTasks, failingInteractions{}, nil, env.events, fixedClock, "Juan Pérez")
	_, err := uc.Execute(ctx, RecordInteractionInput{
		ProspectID:      "prospect-2",
		InteractionType: entity.InteractionLlamada,
		Result:          entity.ResultInteresado,
		NewStatus:       entity.ProspectNegociacion,
		NextAction:      entity.ActionEnviarInfo,
	})

	assert.Error(t, err)
	assert.Equal(t, before.Status, env.prospect(t, "prospect-2").Status)
	mockTasks.AssertExpectations(t)
}

// TestRecordInteractionAssignsCurrentUser - Tarefa derivada vai para o usuário logado
func TestRecordInteractionAssignsCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	users := staticUser{user: &entity.User{ID: "3", Name: "Carlos López", Role: entity.RoleAgent}}
	uc := NewRecordInteractionUseCase(env.prospects, env.tasks, env.interactions, users, nil, fixedClock, "Juan Pérez")

	out, err := uc.Execute(context.Background(), RecordInteractionInput{
		ProspectID:      "prospect-8",
		InteractionType: entity.InteractionEmail,
		Result:          entity.ResultSolicitaInfo,
		NewStatus:       entity.ProspectEnConversacion,
		NextAction:      entity.ActionEnviarInfo,
	})
	assert.NoError(t, err)
	if assert.NotNil(t, out) && assert.NotNil(t, out.Task) {
		assert.Equal(t, "Carlos López", out.Task.AssignedTo)
		assert.Equal(t, fixedNow.Add(2*time.Hour), out.Task.DueDate)
	}
}

// ============ TESTES DA DERIVAÇÃO DE TAREFA ============

// TestDeriveFollowUpTask - Ação vazia ou no_recontactar não gera tarefa
func TestDeriveFollowUpTask(t *testing.T) {
	p := entity.Prospect{ID: "prospect-1", Name: "Ana"}

	_, ok := DeriveFollowUpTask(p, "", nil, "Juan", fixedNow)
	assert.False(t, ok)
	_, ok = DeriveFollowUpTask(p, entity.ActionNoRecontactar, nil, "Juan", fixedNow)
	assert.False(t, ok)

	task, ok := DeriveFollowUpTask(p, entity.ActionAgendarReunion, &time.Time{}, "Juan", fixedNow)
	assert.True(t, ok)
	if assert.NotNil(t, task) {
		assert.Equal(t, "Agendar reunión con Ana", task.Title)
		assert.Equal(t, entity.PriorityAlta, task.Priority)
		assert.Equal(t, fixedNow.Add(3*24*time.Hour), task.DueDate)
		assert.Equal(t, "Seguimiento generado desde interacción con Ana", task.Description)
	}
}

// ============ TESTES DA TRANSAÇÃO ============

// TestTransactionRollbackOrder - Compensações rodam em ordem reversa
func TestTransactionRollbackOrder(t *testing.T) {
	var trail []string
	step := func(name string, fail bool) (func(context.Context) error, func(context.Context) error) {
		return func(context.Context) error {
				trail = append(trail, "do:"+name)
				if fail {
					return errors.New(name)
				}
				return nil
			}, func(context.Context) error {
				trail = append(trail, "undo:"+name)
				return nil
			}
	}

	tx := NewTransaction()
	fn, comp := step("a", false)
	tx.AddOperation("a", fn, comp)
	fn, comp = step("b", false)
	tx.AddOperation("b", fn, comp)
	fn, comp = step("c", true)
	tx.AddOperation("c", fn, comp)

	err := tx.Execute(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"}, trail)
}
