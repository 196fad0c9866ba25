package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CreateProspectInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Product string `json:"product"`
	Source  string `json:"source"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateProspectInput é parcial: nil = mantém. Status só muda pelo StatusTransitionUseCase.
type UpdateProspectInput struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Product *string `json:"product,omitempty"`
	Source  *string `json:"source,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Version int     `json:"version,omitempty"`
}

type ProspectUseCase struct {
	prospects    entity.ProspectRepositoryInterface
	interactions entity.InteractionRepositoryInterface
	now          Clock
}

func NewProspectUseCase(prospects entity.ProspectRepositoryInterface, interactions entity.InteractionRepositoryInterface, now Clock) *ProspectUseCase {
	if now == nil {
		now = SystemClock
	}
	return &ProspectUseCase{prospects: prospects, interactions: interactions, now: now}
}

func (uc *ProspectUseCase) List(ctx context.Context, f ProspectFilter) ([]entity.Prospect, error) {
	all, err := uc.prospects.List(ctx)
	if err != nil {
		return nil, storeError("list prospects", err)
	}
	return FilterProspects(all, f), nil
}

func (uc *ProspectUseCase) Board(ctx context.Context, f ProspectFilter) ([]ProspectColumn, error) {
	filtered, err := uc.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return ProspectBoard(filtered), nil
}

func (uc *ProspectUseCase) Get(ctx context.Context, id string) (*entity.Prospect, error) {
	return uc.prospects.FindByID(ctx, id)
}

func (uc *ProspectUseCase) Create(ctx context.Context, input CreateProspectInput) (*entity.Prospect, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	p, err := entity.NewProspect(input.Name, input.Email, strings.TrimSpace(input.Phone), input.Product, input.Source, uc.now())
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	p.Notes = input.Notes

	if err := uc.prospects.Create(ctx, p); err != nil {
		return nil, storeError("create prospect", err)
	}

	logrus.WithFields(logrus.Fields{
		"prospect_id": p.ID,
		"source":      p.Source,
	}).Info("✅ Prospect criado")
	return p, nil
}

func (uc *ProspectUseCase) Update(ctx context.Context, id string, input UpdateProspectInput) (*entity.Prospect, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	p, err := uc.prospects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Version != 0 && input.Version != p.Version {
		return nil, &DomainError{Code: CodeVersionConflict, Message: "prospect was modified by another operation"}
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationFailure(CodeMissingRequiredField, []ValidationError{{"name", "is required"}})
		}
		p.Name = name
	}
	if input.Email != nil {
		p.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		p.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Product != nil {
		p.Product = *input.Product
	}
	if input.Source != nil {
		p.Source = *input.Source
	}
	if input.Notes != nil {
		p.Notes = *input.Notes
	}

	if err := uc.prospects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Interactions devolve o histórico do prospect em ordem cronológica.
func (uc *ProspectUseCase) Interactions(ctx context.Context, prospectID string) ([]entity.Interaction, error) {
	if _, err := uc.prospects.FindByID(ctx, prospectID); err != nil {
		return nil, err
	}
	return uc.interactions.ListByProspect(ctx, prospectID)
}
