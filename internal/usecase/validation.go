package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Nome do campo no erro = tag json (interaction_type, new_status...)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	vocab := map[string]func(string) bool{
		"prospect_status":    func(s string) bool { return entity.ProspectStatus(s).Valid() },
		"task_status":        func(s string) bool { return entity.TaskStatus(s).Valid() },
		"task_priority":      func(s string) bool { return entity.TaskPriority(s).Valid() },
		"interaction_type":   func(s string) bool { return entity.InteractionType(s).Valid() },
		"interaction_result": func(s string) bool { return entity.InteractionResult(s).Valid() },
		"next_action":        func(s string) bool { return entity.NextAction(s).Valid() },
		"channel":            func(s string) bool { return entity.Channel(s).Valid() },
		"notification_type":  func(s string) bool { return slices.Contains(entity.NotificationTypes, entity.NotificationType(s)) },
	}
	for tag, ok := range vocab {
		check := ok
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
	}
	return v
}

// validateInput roda as tags `validate` e devolve nil ou um *DomainError.
// Campo obrigatório ausente tem precedência: MISSING_REQUIRED_FIELD.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	code := CodeValidation
	fields := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			code = CodeMissingRequiredField
			fields = append(fields, ValidationError{fe.Field(), "is required"})
		case "min":
			fields = append(fields, ValidationError{fe.Field(), "must have at least " + fe.Param() + " item(s)"})
		case "email":
			fields = append(fields, ValidationError{fe.Field(), "must be a valid email"})
		default:
			fields = append(fields, ValidationError{fe.Field(), fmt.Sprintf("value %q is invalid", fe.Value())})
		}
	}
	return newValidationFailure(code, fields)
}

func newValidationFailure(code string, fields []ValidationError) *DomainError {
	msg := "validation failed: "
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+" ("+f.Message+")")
	}
	msg += strings.Join(parts, ", ")
	if code == CodeMissingRequiredField {
		msg = "missing required field: " + strings.Join(parts, ", ")
	}
	return &DomainError{Code: code, Message: msg, Fields: fields}
}
