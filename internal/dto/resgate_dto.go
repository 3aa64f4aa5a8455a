package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ResgatarRequest carries a scanned or typed code. The presence of Valor
// selects the path: absent = senha redemption, present = balance debit.
type ResgatarRequest struct {
	Codigo string           `json:"codigo" validate:"required,len=10"`
	Valor  *decimal.Decimal `json:"valor"`
	// TipoCombustivel is required on the balance-debit path
	TipoCombustivel *string `json:"tipo_combustivel" validate:"omitempty,oneof=gasolina diesel"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ResgateResponse reports the outcome of a redemption.
// Tipo: "senha" | "saldo"
type ResgateResponse struct {
	Tipo        string `json:"tipo"`
	Codigo      string `json:"codigo"`
	ClienteNome string `json:"cliente_nome"`
	// Valor: per-senha value on the senha path, debited amount on the saldo path
	Valor decimal.Decimal `json:"valor"`
	// SaldoRestante is present on the saldo path only
	SaldoRestante   *decimal.Decimal `json:"saldo_restante,omitempty"`
	TipoCombustivel *string          `json:"tipo_combustivel"`
	DataUso         string           `json:"data_uso"`
}
