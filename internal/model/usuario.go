package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores login principals with role-based access.
// Rol: "gerente" | "funcionario"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Estado       string `gorm:"type:varchar(20);not null;default:'ativo'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
