package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientCapacity = errors.New("capacidad insuficiente")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrTransactionAborted   = errors.New("transacción abortada")
)

// ValidationError describe un campo inválido. Es un ErrInvalidInput.
type ValidationError struct {
	Field string
	Msg   string
}

// NewValidationError construye un error de validación para un campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// CapacityError informa el peso solicitado y la capacidad disponible real de la ubicación.
type CapacityError struct {
	LocationID string
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: ubicación %s, solicitado %s kg, disponible %s kg",
		ErrInsufficientCapacity, e.LocationID, e.Requested.StringFixed(3), e.Available.StringFixed(3))
}

func (e *CapacityError) Unwrap() error { return ErrInsufficientCapacity }

// TransitionError se devuelve cuando un evento no está definido para el estado actual.
type TransitionError struct {
	From  string
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s no permitido desde %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// BatchError identifica el elemento del lote que abortó la transacción.
// Coincide con ErrTransactionAborted y con la causa original.
type BatchError struct {
	BatchID string
	Index   int
	Field   string
	Err     error
}

func (e *BatchError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: producto[%d].%s: %v", ErrTransactionAborted, e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: producto[%d]: %v", ErrTransactionAborted, e.Index, e.Err)
}

func (e *BatchError) Unwrap() []error { return []error{ErrTransactionAborted, e.Err} }

// Conflictf construye un ErrConflict con detalle.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// NotFoundf construye un ErrNotFound con detalle.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
