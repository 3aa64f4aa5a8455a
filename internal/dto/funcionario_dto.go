package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarFuncionarioRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=150"`
	Password string  `json:"password" validate:"required,min=8"`
	Nome     string  `json:"nome"     validate:"required,min=2,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefone *string `json:"telefone" validate:"omitempty,max=30"`
}

type AtualizarFuncionarioRequest struct {
	Nome     string  `json:"nome"     validate:"omitempty,min=2,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefone *string `json:"telefone" validate:"omitempty,max=30"`
	Password string  `json:"password" validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FuncionarioResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nome     string  `json:"nome"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
	Estado   string  `json:"estado"`
}
