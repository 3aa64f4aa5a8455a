package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequisicaoSaldo is a prepaid balance credit issued to a cliente, debited
// incrementally by Movimentos. The remaining balance is NEVER stored — it is
// always derived as Valor - SUM(movimentos.valor) at read time, inside the
// same transaction as any debit insert.
type RequisicaoSaldo struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ClienteID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cliente        *Cliente        `gorm:"foreignKey:ClienteID"`
	Valor          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Codigo         string          `gorm:"type:varchar(10);uniqueIndex;not null"`
	FormaPagamento string          `gorm:"type:varchar(20);not null"`
	Banco          *string         `gorm:"type:varchar(60)"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'ativo'"`
	FechoID        *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Movimentos []Movimento `gorm:"foreignKey:RequisicaoSaldoID"`
}

// PodeEditar reports whether the requisition is still open for mutation.
func (r *RequisicaoSaldo) PodeEditar() bool { return r.FechoID == nil }

// Movimento is an immutable debit against a RequisicaoSaldo. The empresa scope
// is derived transitively through the requisition — there is no empresa column.
// Movements are NEVER modified or deleted; only FechoID may be set post-creation.
type Movimento struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequisicaoSaldoID uuid.UUID        `gorm:"type:uuid;index;not null"`
	RequisicaoSaldo   *RequisicaoSaldo `gorm:"foreignKey:RequisicaoSaldoID"`
	Valor             decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	// TipoCombustivel: "gasolina" | "diesel"
	TipoCombustivel *string    `gorm:"type:varchar(20)"`
	Descricao       string     `gorm:"not null"`
	FuncionarioID   *uuid.UUID `gorm:"type:uuid"`
	FechoID         *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time
}
