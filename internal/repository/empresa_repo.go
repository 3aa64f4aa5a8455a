package repository

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmpresaRepository interface {
	Create(ctx context.Context, e *model.Empresa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empresa, error)
	FindByGerenteID(ctx context.Context, gerenteID uuid.UUID) (*model.Empresa, error)
}

type empresaRepo struct{ db *gorm.DB }

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository { return &empresaRepo{db: db} }

func (r *empresaRepo) Create(ctx context.Context, e *model.Empresa) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empresaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empresa, error) {
	var e model.Empresa
	err := r.db.WithContext(ctx).Where("estado = 'ativo'").First(&e, id).Error
	return &e, err
}

func (r *empresaRepo) FindByGerenteID(ctx context.Context, gerenteID uuid.UUID) (*model.Empresa, error) {
	var e model.Empresa
	err := r.db.WithContext(ctx).Where("gerente_id = ? AND estado = 'ativo'", gerenteID).First(&e).Error
	return &e, err
}
