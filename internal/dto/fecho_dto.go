package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// FechoContagens reports per-collection counts for a closing (or a preview).
type FechoContagens struct {
	RequisicoesSenhas int64 `json:"requisicoes_senhas"`
	RequisicoesSaldo  int64 `json:"requisicoes_saldo"`
	Movimentos        int64 `json:"movimentos"`
	SenhasUsadas      int64 `json:"senhas_usadas"`
}

func (c FechoContagens) Total() int64 {
	return c.RequisicoesSenhas + c.RequisicoesSaldo + c.Movimentos + c.SenhasUsadas
}

// FazerFechoResponse is the result of a committed closing. When nothing was
// open, FechoID is nil and Mensagem explains that no fecho was created.
type FazerFechoResponse struct {
	FechoID   *string        `json:"fecho_id"`
	Contagens FechoContagens `json:"contagens"`
	Mensagem  string         `json:"mensagem"`
	CreatedAt *string        `json:"created_at"`
}

// PreviewFechoResponse shows what a closing would sweep, without writing:
// the candidate records of each collection plus their value totals, so the
// gerente can review the selection before committing.
type PreviewFechoResponse struct {
	Contagens FechoContagens `json:"contagens"`
	// Value totals of the candidate records
	TotalRequisicoesSenhas decimal.Decimal `json:"total_requisicoes_senhas"`
	TotalRequisicoesSaldo  decimal.Decimal `json:"total_requisicoes_saldo"`
	TotalMovimentos        decimal.Decimal `json:"total_movimentos"`
	// Candidate records, same selection the closing would apply
	RequisicoesSenhas []FechoRequisicaoSenhasItem `json:"requisicoes_senhas"`
	RequisicoesSaldo  []FechoRequisicaoSaldoItem  `json:"requisicoes_saldo"`
	Movimentos        []FechoMovimentoItem        `json:"movimentos"`
	SenhasUsadas      []FechoSenhaItem            `json:"senhas_usadas"`
}

type FechoRequisicaoSenhasItem struct {
	ID          string          `json:"id"`
	ClienteNome string          `json:"cliente_nome"`
	Valor       decimal.Decimal `json:"valor"`
	Quantidade  int             `json:"quantidade"`
	CreatedAt   string          `json:"created_at"`
}

type FechoRequisicaoSaldoItem struct {
	ID          string          `json:"id"`
	ClienteNome string          `json:"cliente_nome"`
	Codigo      string          `json:"codigo"`
	Valor       decimal.Decimal `json:"valor"`
	CreatedAt   string          `json:"created_at"`
}

type FechoMovimentoItem struct {
	ID        string          `json:"id"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	CreatedAt string          `json:"created_at"`
}

type FechoSenhaItem struct {
	Codigo          string  `json:"codigo"`
	DataUso         string  `json:"data_uso"`
	TipoCombustivel *string `json:"tipo_combustivel"`
}

type FechoListItem struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type FechoListResponse struct {
	Data []FechoListItem `json:"data"`
}
