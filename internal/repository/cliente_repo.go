package repository

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, empresaID uuid.UUID) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, empresaID, id uuid.UUID) error
	Count(ctx context.Context, empresaID uuid.UUID) (int64, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("empresa_id = ?", empresaID).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, empresaID uuid.UUID) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Where("empresa_id = ?", empresaID).Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, empresaID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("empresa_id = ?", empresaID).Delete(&model.Cliente{}, id).Error
}

func (r *clienteRepo) Count(ctx context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("empresa_id = ?", empresaID).Count(&n).Error
	return n, err
}
