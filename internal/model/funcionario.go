package model

import (
	"time"

	"github.com/google/uuid"
)

// Funcionario is a station employee of an empresa, linked 1:1 to its login
// principal. Deactivation is an estado flip — never a hard delete, because
// redeemed senhas and movimentos reference the employee forever.
type Funcionario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Usuario   *Usuario  `gorm:"foreignKey:UsuarioID"`
	Nome      string    `gorm:"not null"`
	Telefone  *string   `gorm:"type:varchar(30)"`
	Estado    string    `gorm:"type:varchar(20);not null;default:'ativo'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
