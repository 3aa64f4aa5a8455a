package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequisicaoSenhas is a batch of single-use fuel vouchers issued to a cliente.
// Valor is the total value of the batch; each senha is worth Valor / Quantidade.
// Once FechoID is set the record is immutable (ClosedRecordError on edit/delete).
type RequisicaoSenhas struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ClienteID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cliente        *Cliente        `gorm:"foreignKey:ClienteID"`
	Valor          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantidade     int             `gorm:"not null"`
	FormaPagamento string          `gorm:"type:varchar(20);not null"`
	// Banco is set only when FormaPagamento = "transferencia"
	Banco  *string `gorm:"type:varchar(60)"`
	Estado string  `gorm:"type:varchar(20);not null;default:'ativo'"`
	// DataConclusao is set when the last senha of the batch is used
	DataConclusao *time.Time
	FechoID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Senhas []Senha `gorm:"foreignKey:RequisicaoID"`
}

// PodeEditar reports whether the batch is still open for mutation.
func (r *RequisicaoSenhas) PodeEditar() bool { return r.FechoID == nil }

// Senha is a single-use voucher. Usada flips false→true exactly once; at that
// transition DataUso, FuncionarioID and TipoCombustivel are written and never
// change again. FechoID is set only when the *redemption* is swept into a fecho.
type Senha struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID    uuid.UUID         `gorm:"type:uuid;index;not null"`
	ClienteID    uuid.UUID         `gorm:"type:uuid;index;not null"`
	RequisicaoID uuid.UUID         `gorm:"type:uuid;index;not null"`
	Requisicao   *RequisicaoSenhas `gorm:"foreignKey:RequisicaoID"`
	Codigo       string            `gorm:"type:varchar(10);uniqueIndex;not null"`
	Usada        bool              `gorm:"not null;default:false"`
	DataUso      *time.Time
	// FuncionarioID records who redeemed the senha
	FuncionarioID *uuid.UUID `gorm:"type:uuid"`
	// TipoCombustivel: "gasolina" | "diesel", set at redemption
	TipoCombustivel *string    `gorm:"type:varchar(20)"`
	FechoID         *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time
}
