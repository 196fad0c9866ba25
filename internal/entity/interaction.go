package entity

import (
	"context"
	"time"
)

type InteractionType string

const (
	InteractionLlamada InteractionType = "llamada"
	InteractionMensaje InteractionType = "mensaje"
	InteractionEmail   InteractionType = "email"
	InteractionReunion InteractionType = "reunion"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionLlamada, InteractionMensaje, InteractionEmail, InteractionReunion:
		return true
	}
	return false
}

type InteractionResult string

const (
	ResultInteresado      InteractionResult = "interesado"
	ResultNoInteresado    InteractionResult = "no_interesado"
	ResultNoContesta      InteractionResult = "no_contesta"
	ResultSolicitaInfo    InteractionResult = "solicita_info"
	ResultQuierePensar    InteractionResult = "quiere_pensar"
	ResultPrecioAlto      InteractionResult = "precio_alto"
	ResultYaTieneServicio InteractionResult = "ya_tiene_servicio"
	ResultContactarLuego  InteractionResult = "contactar_luego"
)

func (r InteractionResult) Valid() bool {
	switch r {
	case ResultInteresado, ResultNoInteresado, ResultNoContesta, ResultSolicitaInfo,
		ResultQuierePensar, ResultPrecioAlto, ResultYaTieneServicio, ResultContactarLuego:
		return true
	}
	return false
}

type NextAction string

const (
	ActionLlamarManana       NextAction = "llamar_manana"
	ActionEnviarInfo         NextAction = "enviar_info"
	ActionAgendarReunion     NextAction = "agendar_reunion"
	ActionSeguimientoSemanal NextAction = "seguimiento_semanal"
	ActionSeguimientoMensual NextAction = "seguimiento_mensual"
	ActionRecontactar3Meses  NextAction = "recontactar_3_meses"
	ActionRecontactar6Meses  NextAction = "recontactar_6_meses"
	ActionNoRecontactar      NextAction = "no_recontactar"
)

const day = 24 * time.Hour

var nextActionOffsets = map[NextAction]time.Duration{
	ActionLlamarManana:       day,
	ActionEnviarInfo:         2 * time.Hour,
	ActionAgendarReunion:     3 * day,
	ActionSeguimientoSemanal: 7 * day,
	ActionSeguimientoMensual: 30 * day,
	ActionRecontactar3Meses:  90 * day,
	ActionRecontactar6Meses:  180 * day,
}

func (a NextAction) Valid() bool {
	if a == ActionNoRecontactar {
		return true
	}
	_, ok := nextActionOffsets[a]
	return ok
}

// CreatesTask: toda ação válida gera tarefa, exceto no_recontactar.
func (a NextAction) CreatesTask() bool {
	_, ok := nextActionOffsets[a]
	return ok
}

// DefaultOffset é o prazo padrão a partir de "agora" quando não há data explícita.
func (a NextAction) DefaultOffset() time.Duration {
	if d, ok := nextActionOffsets[a]; ok {
		return d
	}
	return day
}

func (a NextAction) TaskTitle(prospectName string) string {
	switch a {
	case ActionLlamarManana:
		return "Llamar a " + prospectName
	case ActionEnviarInfo:
		return "Enviar información a " + prospectName
	case ActionAgendarReunion:
		return "Agendar reunión con " + prospectName
	case ActionSeguimientoSemanal:
		return "Seguimiento semanal - " + prospectName
	case ActionSeguimientoMensual:
		return "Seguimiento mensual - " + prospectName
	case ActionRecontactar3Meses:
		return "Recontactar a " + prospectName + " (3 meses)"
	case ActionRecontactar6Meses:
		return "Recontactar a " + prospectName + " (6 meses)"
	}
	return "Seguimiento - " + prospectName
}

// Interaction é o log append-only de tentativas de contato de um prospect.
type Interaction struct {
	ID           string            `json:"id"`
	ProspectID   string            `json:"prospect_id"`
	Type         InteractionType   `json:"interaction_type"`
	Result       InteractionResult `json:"result"`
	NewStatus    ProspectStatus    `json:"new_status"`
	NextAction   NextAction        `json:"next_action,omitempty"`
	FollowUpDate *time.Time        `json:"follow_up_date,omitempty"`
	TaskID       string            `json:"task_id,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

type InteractionRepositoryInterface interface {
	Append(ctx context.Context, i *Interaction) error
	Remove(ctx context.Context, id string) error
	ListByProspect(ctx context.Context, prospectID string) ([]Interaction, error)
}
