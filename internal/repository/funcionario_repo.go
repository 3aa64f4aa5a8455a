package repository

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuncionarioRepository interface {
	CreateTx(tx *gorm.DB, f *model.Funcionario) error
	FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.Funcionario, error)
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Funcionario, error)
	List(ctx context.Context, empresaID uuid.UUID) ([]model.Funcionario, error)
	Update(ctx context.Context, f *model.Funcionario) error
	DB() *gorm.DB
}

type funcionarioRepo struct{ db *gorm.DB }

func NewFuncionarioRepository(db *gorm.DB) FuncionarioRepository { return &funcionarioRepo{db: db} }

func (r *funcionarioRepo) DB() *gorm.DB { return r.db }

func (r *funcionarioRepo) CreateTx(tx *gorm.DB, f *model.Funcionario) error {
	return tx.Create(f).Error
}

func (r *funcionarioRepo) FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Preload("Usuario").Where("empresa_id = ?", empresaID).First(&f, id).Error
	return &f, err
}

func (r *funcionarioRepo) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Where("usuario_id = ? AND estado = 'ativo'", usuarioID).First(&f).Error
	return &f, err
}

func (r *funcionarioRepo) List(ctx context.Context, empresaID uuid.UUID) ([]model.Funcionario, error) {
	var funcionarios []model.Funcionario
	err := r.db.WithContext(ctx).Preload("Usuario").
		Where("empresa_id = ?", empresaID).Order("nome ASC").Find(&funcionarios).Error
	return funcionarios, err
}

func (r *funcionarioRepo) Update(ctx context.Context, f *model.Funcionario) error {
	return r.db.WithContext(ctx).Save(f).Error
}
