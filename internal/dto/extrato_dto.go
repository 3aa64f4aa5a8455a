package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ExtratoLinha is one entry of a client statement. Exactly one of Credito and
// Debito is set. Saldo is the running balance after this line.
type ExtratoLinha struct {
	Data      string           `json:"data"`
	Descricao string           `json:"descricao"`
	Credito   *decimal.Decimal `json:"credito"`
	Debito    *decimal.Decimal `json:"debito"`
	Saldo     decimal.Decimal  `json:"saldo"`
	// FormaPagamento carries the banco name appended on transfers
	FormaPagamento  string  `json:"forma_pagamento,omitempty"`
	TipoCombustivel *string `json:"tipo_combustivel,omitempty"`
	FechoID         string  `json:"fecho_id"`
}

// ExtratoPendentes counts tenant/client-scoped records not yet swept into a
// fecho — the statement is necessarily incomplete until the next closing.
type ExtratoPendentes struct {
	RequisicoesSenhas int64 `json:"requisicoes_senhas"`
	RequisicoesSaldo  int64 `json:"requisicoes_saldo"`
	Movimentos        int64 `json:"movimentos"`
	SenhasUsadas      int64 `json:"senhas_usadas"`
}

type ExtratoResponse struct {
	ClienteID   string           `json:"cliente_id"`
	ClienteNome string           `json:"cliente_nome"`
	Linhas      []ExtratoLinha   `json:"linhas"`
	SaldoFinal  decimal.Decimal  `json:"saldo_final"`
	Pendentes   ExtratoPendentes `json:"pendentes"`
}
