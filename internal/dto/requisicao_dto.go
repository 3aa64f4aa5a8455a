package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// RequisicaoFilter is bound from query string of the listing endpoints.
type RequisicaoFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	// Fecho: "aberto" (no fecho yet) | "fechado" | "all"
	Fecho string `form:"fecho,default=all"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarRequisicaoSenhasRequest struct {
	ClienteID      string          `json:"cliente_id"      validate:"required,uuid"`
	Valor          decimal.Decimal `json:"valor"           validate:"required"`
	Quantidade     int             `json:"quantidade"      validate:"required,min=1"`
	FormaPagamento string          `json:"forma_pagamento" validate:"required,oneof=transferencia cash pos"`
	// Banco is required iff forma_pagamento = transferencia (checked in service)
	Banco *string `json:"banco" validate:"omitempty,max=60"`
}

// EditarRequisicaoSenhasRequest may only grow the batch: a quantidade larger
// than the current one appends the delta of new senhas. Shrinking is rejected.
type EditarRequisicaoSenhasRequest struct {
	Valor          *decimal.Decimal `json:"valor"`
	Quantidade     *int             `json:"quantidade"      validate:"omitempty,min=1"`
	FormaPagamento string           `json:"forma_pagamento" validate:"omitempty,oneof=transferencia cash pos"`
	Banco          *string          `json:"banco"           validate:"omitempty,max=60"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SenhaResponse struct {
	ID              string  `json:"id"`
	Codigo          string  `json:"codigo"`
	Usada           bool    `json:"usada"`
	DataUso         *string `json:"data_uso"`
	TipoCombustivel *string `json:"tipo_combustivel"`
	FechoID         *string `json:"fecho_id"`
}

type RequisicaoSenhasResponse struct {
	ID             string          `json:"id"`
	ClienteID      string          `json:"cliente_id"`
	ClienteNome    string          `json:"cliente_nome"`
	Valor          decimal.Decimal `json:"valor"`
	Quantidade     int             `json:"quantidade"`
	FormaPagamento string          `json:"forma_pagamento"`
	Banco          *string         `json:"banco"`
	Estado         string          `json:"estado"`
	// SenhasRestantes is derived: count of unused senhas in the batch
	SenhasRestantes int             `json:"senhas_restantes"`
	DataConclusao   *string         `json:"data_conclusao"`
	FechoID         *string         `json:"fecho_id"`
	Senhas          []SenhaResponse `json:"senhas,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type RequisicaoSenhasListResponse struct {
	Data  []RequisicaoSenhasResponse `json:"data"`
	Total int64                      `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
}
