package model

import (
	"time"

	"github.com/google/uuid"
)

// Fecho is an immutable closing batch — a pure marker that open requisitions,
// movimentos and redeemed senhas point to once swept. Created only by the
// closing engine; never updated or deleted.
type Fecho struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
}
