package model

import (
	"time"

	"github.com/google/uuid"
)

// Empresa is the tenant. Every other business entity carries (directly or
// transitively) an empresa reference. Created by the platform operator,
// never deleted — only deactivated.
type Empresa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	NUIT      *string   `gorm:"type:varchar(30)"`
	Endereco  *string
	Estado    string    `gorm:"type:varchar(20);not null;default:'ativo'"`
	GerenteID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Gerente   *Usuario  `gorm:"foreignKey:GerenteID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
