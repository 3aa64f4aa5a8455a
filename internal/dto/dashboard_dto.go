package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates headline numbers for the gerente home screen.
// Served from a short-lived redis cache.
type DashboardResponse struct {
	Clientes                 int64            `json:"clientes"`
	RequisicoesSenhasAbertas int64            `json:"requisicoes_senhas_abertas"`
	RequisicoesSaldoAbertas  int64            `json:"requisicoes_saldo_abertas"`
	SenhasPorUsar            int64            `json:"senhas_por_usar"`
	MovimentosMes            int64            `json:"movimentos_mes"`
	ValorMovimentosMes       decimal.Decimal  `json:"valor_movimentos_mes"`
	PorFormaPagamento        map[string]int64 `json:"por_forma_pagamento"`
}
