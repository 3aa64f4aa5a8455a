package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarRequisicaoSaldoRequest struct {
	ClienteID      string          `json:"cliente_id"      validate:"required,uuid"`
	Valor          decimal.Decimal `json:"valor"           validate:"required"`
	FormaPagamento string          `json:"forma_pagamento" validate:"required,oneof=transferencia cash pos"`
	Banco          *string         `json:"banco"           validate:"omitempty,max=60"`
}

type EditarRequisicaoSaldoRequest struct {
	Valor          *decimal.Decimal `json:"valor"`
	FormaPagamento string           `json:"forma_pagamento" validate:"omitempty,oneof=transferencia cash pos"`
	Banco          *string          `json:"banco"           validate:"omitempty,max=60"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentoResponse struct {
	ID              string          `json:"id"`
	Valor           decimal.Decimal `json:"valor"`
	TipoCombustivel *string         `json:"tipo_combustivel"`
	Descricao       string          `json:"descricao"`
	FechoID         *string         `json:"fecho_id"`
	CreatedAt       string          `json:"created_at"`
}

type RequisicaoSaldoResponse struct {
	ID             string          `json:"id"`
	ClienteID      string          `json:"cliente_id"`
	ClienteNome    string          `json:"cliente_nome"`
	Codigo         string          `json:"codigo"`
	Valor          decimal.Decimal `json:"valor"`
	// SaldoRestante is always derived: valor - SUM(movimentos)
	SaldoRestante  decimal.Decimal     `json:"saldo_restante"`
	FormaPagamento string              `json:"forma_pagamento"`
	Banco          *string             `json:"banco"`
	Estado         string              `json:"estado"`
	FechoID        *string             `json:"fecho_id"`
	Movimentos     []MovimentoResponse `json:"movimentos,omitempty"`
	CreatedAt      string              `json:"created_at"`
}

type RequisicaoSaldoListResponse struct {
	Data  []RequisicaoSaldoResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}
