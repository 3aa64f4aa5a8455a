package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer of an empresa. Hard delete is allowed only while the
// cliente holds no active requisitions (enforced in the service layer).
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome      string    `gorm:"not null"`
	Email     *string
	Telefone  *string `gorm:"type:varchar(30)"`
	Endereco  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
