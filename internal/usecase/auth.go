package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// SessionKey é a chave única da sessão no SessionStore.
const SessionKey = "crm-user"

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthUseCase mantém um único usuário logado por instância.
type AuthUseCase struct {
	users    entity.UserDirectory
	sessions entity.SessionStore
}

func NewAuthUseCase(users entity.UserDirectory, sessions entity.SessionStore) *AuthUseCase {
	return &AuthUseCase{users: users, sessions: sessions}
}

// Login não distingue email desconhecido de senha errada.
func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*entity.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	cred, err := uc.users.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, storeError("find user", err)
	}
	if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(input.Password)) != nil {
		return nil, entity.ErrInvalidCredentials
	}

	user := cred.User
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, &TechnicalError{Code: CodeStoreError, Message: "encode session", Err: err}
	}
	if err := uc.sessions.Set(ctx, SessionKey, raw); err != nil {
		return nil, storeError("save session", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("🔐 Login efetuado")
	return &user, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context) error {
	if err := uc.sessions.Delete(ctx, SessionKey); err != nil {
		return storeError("delete session", err)
	}
	return nil
}

// Current devolve o usuário da sessão ou ErrSessionNotFound.
func (uc *AuthUseCase) Current(ctx context.Context) (*entity.User, error) {
	raw, err := uc.sessions.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			return nil, err
		}
		return nil, storeError("load session", err)
	}

	var user entity.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" || user.Role.Rank() == 0 {
		return nil, entity.ErrSessionNotFound
	}
	return &user, nil
}

// Restore é chamado no boot: sessão corrompida é apagada.
func (uc *AuthUseCase) Restore(ctx context.Context) (*entity.User, error) {
	user, err := uc.Current(ctx)
	if err == nil {
		logrus.WithField("user_id", user.ID).Info("🔐 Sessão restaurada")
		return user, nil
	}
	if !errors.Is(err, entity.ErrSessionNotFound) {
		return nil, err
	}

	if _, getErr := uc.sessions.Get(ctx, SessionKey); getErr == nil {
		logrus.Warn("⚠️ Sessão corrompida descartada")
		if delErr := uc.sessions.Delete(ctx, SessionKey); delErr != nil {
			return nil, storeError("delete session", delErr)
		}
	}
	return nil, entity.ErrSessionNotFound
}

// RequireRole é só consultivo: compara o ordinal do papel.
func (uc *AuthUseCase) RequireRole(ctx context.Context, min entity.Role) (*entity.User, error) {
	user, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !user.Role.AtLeast(min) {
		return nil, &DomainError{Code: CodeForbidden, Message: "role " + string(user.Role) + " below " + string(min)}
	}
	return user, nil
}
