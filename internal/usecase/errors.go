package usecase

import "errors"

const (
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidStatus        = "INVALID_STATUS"
	CodeInvalidPriority      = "INVALID_PRIORITY"
	CodeInvalidChannel       = "INVALID_CHANNEL"
	CodeVersionConflict      = "VERSION_CONFLICT"
	CodeForbidden            = "FORBIDDEN"
	CodeStoreError           = "STORE_ERROR"
)

// DomainError é falha de validação local: a operação é abortada sem mutação.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError embrulha falhas de infraestrutura (store, broker, smtp).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func storeError(op string, err error) error {
	return &TechnicalError{
		Code:    CodeStoreError,
		Message: op + ": " + err.Error(),
		Err:     err,
	}
}
