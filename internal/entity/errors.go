package entity

import "errors"

var (
	ErrProspectNotFound     = errors.New("prospect não encontrado")
	ErrTaskNotFound         = errors.New("tarefa não encontrada")
	ErrContactNotFound      = errors.New("contato não encontrado")
	ErrTemplateNotFound     = errors.New("plantilla não encontrada")
	ErrNotificationNotFound = errors.New("notificação não encontrada")
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("session not found")

	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidProspectStatus = errors.New("invalid prospect status")
	ErrInvalidTaskStatus     = errors.New("invalid task status")
	ErrInvalidTaskPriority   = errors.New("invalid task priority")

	// ErrVersionConflict: a versão gravada mudou desde a leitura.
	ErrVersionConflict = errors.New("version conflict")
)
