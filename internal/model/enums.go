package model

// Lifecycle states. Deactivated records are excluded from all default queries;
// there is no hard-delete path for requisitions or employees.
const (
	EstadoAtivo      = "ativo"
	EstadoDesativado = "desativado"
)

// Payment methods accepted on both requisition kinds.
// Banco is required if and only if the method is "transferencia".
const (
	PagamentoTransferencia = "transferencia"
	PagamentoCash          = "cash"
	PagamentoPOS           = "pos"
)

// Fuel types recorded at redemption time.
const (
	CombustivelGasolina = "gasolina"
	CombustivelDiesel   = "diesel"
)

// User roles.
const (
	RolGerente     = "gerente"
	RolFuncionario = "funcionario"
)

func FormaPagamentoValida(fp string) bool {
	return fp == PagamentoTransferencia || fp == PagamentoCash || fp == PagamentoPOS
}

func TipoCombustivelValido(tc string) bool {
	return tc == CombustivelGasolina || tc == CombustivelDiesel
}
