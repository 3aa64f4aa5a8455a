package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarClienteRequest struct {
	Nome     string  `json:"nome"     validate:"required,min=2,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefone *string `json:"telefone" validate:"omitempty,max=30"`
	Endereco *string `json:"endereco" validate:"omitempty,max=255"`
}

type AtualizarClienteRequest struct {
	Nome     string  `json:"nome"     validate:"omitempty,min=2,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefone *string `json:"telefone" validate:"omitempty,max=30"`
	Endereco *string `json:"endereco" validate:"omitempty,max=255"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Email     *string `json:"email"`
	Telefone  *string `json:"telefone"`
	Endereco  *string `json:"endereco"`
	CreatedAt string  `json:"created_at"`
}
