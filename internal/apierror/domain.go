package apierror

// domain.go — typed errors raised by the core services.
// Handlers map each type to an HTTP status in one place; services never
// import net/http. Infrastructure failures (DB down, redis down) are NOT
// part of this taxonomy and surface as generic 500s.

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidInputError rejects malformed domain input before any write:
// non-positive amounts, missing bank name on a transfer, unknown fuel type.
type InvalidInputError struct {
	Detail string
}

func (e *InvalidInputError) Error() string { return e.Detail }

func NewInvalidInput(format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError means a code or id did not resolve within the tenant scope.
type NotFoundError struct {
	Entidade string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s nao encontrado", e.Entidade, e.Ref)
}

// AlreadyUsedError rejects a second redemption of the same senha.
type AlreadyUsedError struct {
	Codigo string
}

func (e *AlreadyUsedError) Error() string {
	return fmt.Sprintf("senha %s ja foi utilizada", e.Codigo)
}

// InsufficientBalanceError rejects a debit larger than the remaining balance.
// Disponivel carries the balance still available so the caller can show it.
type InsufficientBalanceError struct {
	Disponivel decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo insuficiente: disponivel %s", e.Disponivel.StringFixed(2))
}

// ClosedRecordError rejects any mutation of a record already bound to a fecho.
type ClosedRecordError struct {
	Entidade string
}

func (e *ClosedRecordError) Error() string {
	return fmt.Sprintf("%s ja pertence a um fecho e nao pode ser alterado", e.Entidade)
}

// DivisionError surfaces an undefined per-senha split (zero-count batch).
type DivisionError struct {
	Motivo string
}

func (e *DivisionError) Error() string {
	return "divisao invalida: " + e.Motivo
}
