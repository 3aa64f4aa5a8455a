package repository

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequisicaoSenhasRepository interface {
	CreateTx(tx *gorm.DB, r *model.RequisicaoSenhas) error
	CreateSenhasTx(tx *gorm.DB, senhas []model.Senha) error
	FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.RequisicaoSenhas, error)
	Update(ctx context.Context, r *model.RequisicaoSenhas) error
	UpdateTx(tx *gorm.DB, r *model.RequisicaoSenhas) error
	List(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) ([]model.RequisicaoSenhas, int64, error)

	// Senha lookups. The *Tx variants take FOR UPDATE row locks and must run
	// inside the redemption transaction.
	CodigoSenhaExiste(ctx context.Context, codigo string) (bool, error)
	FindSenhaByCodigo(ctx context.Context, empresaID uuid.UUID, codigo string) (*model.Senha, error)
	FindSenhaByCodigoTx(tx *gorm.DB, empresaID uuid.UUID, codigo string) (*model.Senha, error)
	UpdateSenhaTx(tx *gorm.DB, s *model.Senha) error
	CountSenhasNaoUsadasTx(tx *gorm.DB, requisicaoID uuid.UUID) (int64, error)
	CountSenhasNaoUsadas(ctx context.Context, requisicaoID uuid.UUID) (int64, error)
	ListSenhas(ctx context.Context, empresaID, requisicaoID uuid.UUID) ([]model.Senha, error)

	// Statement / guard queries
	ListFechadasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.RequisicaoSenhas, error)
	ListSenhasUsadasFechadasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.Senha, error)
	CountAtivasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error)
	CountPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error)
	CountSenhasUsadasPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error)

	// Dashboard aggregates
	CountAbertas(ctx context.Context, empresaID uuid.UUID) (int64, error)
	CountSenhasPorUsar(ctx context.Context, empresaID uuid.UUID) (int64, error)
	CountPorFormaPagamento(ctx context.Context, empresaID uuid.UUID) (map[string]int64, error)
	SumValorAbertas(ctx context.Context, empresaID uuid.UUID) (decimal.Decimal, error)

	DB() *gorm.DB
}

type requisicaoSenhasRepo struct{ db *gorm.DB }

func NewRequisicaoSenhasRepository(db *gorm.DB) RequisicaoSenhasRepository {
	return &requisicaoSenhasRepo{db: db}
}

func (r *requisicaoSenhasRepo) DB() *gorm.DB { return r.db }

func (r *requisicaoSenhasRepo) CreateTx(tx *gorm.DB, req *model.RequisicaoSenhas) error {
	return tx.Create(req).Error
}

func (r *requisicaoSenhasRepo) CreateSenhasTx(tx *gorm.DB, senhas []model.Senha) error {
	return tx.Create(&senhas).Error
}

func (r *requisicaoSenhasRepo) FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.RequisicaoSenhas, error) {
	var req model.RequisicaoSenhas
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Senhas").
		Where("empresa_id = ?", empresaID).First(&req, id).Error
	return &req, err
}

func (r *requisicaoSenhasRepo) Update(ctx context.Context, req *model.RequisicaoSenhas) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *requisicaoSenhasRepo) UpdateTx(tx *gorm.DB, req *model.RequisicaoSenhas) error {
	return tx.Save(req).Error
}

func (r *requisicaoSenhasRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) ([]model.RequisicaoSenhas, int64, error) {
	var reqs []model.RequisicaoSenhas
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.RequisicaoSenhas{}).
		Where("empresa_id = ? AND estado = 'ativo'", empresaID)

	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	switch filter.Fecho {
	case "aberto":
		q = q.Where("fecho_id IS NULL")
	case "fechado":
		q = q.Where("fecho_id IS NOT NULL")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&reqs).Error

	return reqs, total, err
}

func (r *requisicaoSenhasRepo) CodigoSenhaExiste(ctx context.Context, codigo string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Senha{}).Where("codigo = ?", codigo).Count(&n).Error
	return n > 0, err
}

func (r *requisicaoSenhasRepo) FindSenhaByCodigo(ctx context.Context, empresaID uuid.UUID, codigo string) (*model.Senha, error) {
	var s model.Senha
	err := r.db.WithContext(ctx).Preload("Requisicao").Preload("Requisicao.Cliente").
		Where("empresa_id = ? AND codigo = ?", empresaID, codigo).First(&s).Error
	return &s, err
}

func (r *requisicaoSenhasRepo) FindSenhaByCodigoTx(tx *gorm.DB, empresaID uuid.UUID, codigo string) (*model.Senha, error) {
	var s model.Senha
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("empresa_id = ? AND codigo = ?", empresaID, codigo).First(&s).Error
	return &s, err
}

func (r *requisicaoSenhasRepo) UpdateSenhaTx(tx *gorm.DB, s *model.Senha) error {
	return tx.Save(s).Error
}

func (r *requisicaoSenhasRepo) CountSenhasNaoUsadasTx(tx *gorm.DB, requisicaoID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.Senha{}).
		Where("requisicao_id = ? AND usada = false", requisicaoID).Count(&n).Error
	return n, err
}

func (r *requisicaoSenhasRepo) CountSenhasNaoUsadas(ctx context.Context, requisicaoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Senha{}).
		Where("requisicao_id = ? AND usada = false", requisicaoID).Count(&n).Error
	return n, err
}

func (r *requisicaoSenhasRepo) ListSenhas(ctx context.Context, empresaID, requisicaoID uuid.UUID) ([]model.Senha, error) {
	var senhas []model.Senha
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND requisicao_id = ?", empresaID, requisicaoID).
		Order("created_at ASC").Find(&senhas).Error
	return senhas, err
}

func (r *requisicaoSenhasRepo) ListFechadasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.RequisicaoSenhas, error) {
	var reqs []model.RequisicaoSenhas
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND cliente_id = ? AND fecho_id IS NOT NULL", empresaID, clienteID).
		Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *requisicaoSenhasRepo) ListSenhasUsadasFechadasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.Senha, error) {
	var senhas []model.Senha
	err := r.db.WithContext(ctx).Preload("Requisicao").
		Where("empresa_id = ? AND cliente_id = ? AND usada = true AND data_uso IS NOT NULL AND fecho_id IS NOT NULL",
			empresaID, clienteID).
		Order("data_uso ASC").Find(&senhas).Error
	return senhas, err
}

func (r *requisicaoSenhasRepo) CountAtivasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSenhas{}).
		Where("empresa_id = ? AND cliente_id = ? AND estado = 'ativo'", empresaID, clienteID).Count(&n).Error
	return n, err
}

func (r *requisicaoSenhasRepo) CountPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSenhas{}).
		Where("empresa_id = ? AND cliente_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID, clienteID).
		Count(&n).Error
	return n, err
}

func (r *requisicaoSenhasRepo) CountSenhasUsadasPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Senha{}).
		Where("empresa_id = ? AND cliente_id = ? AND usada = true AND data_uso IS NOT NULL AND fecho_id IS NULL",
			empresaID, clienteID).
		Count(&n).Error
	return n, err
}

func (r *requisicaoSenhasRepo) CountAbertas(ctx context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSenhas{}).
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).Count(&n).Error
	return n, err
}

func (r *requisicaoSenhasRepo) CountSenhasPorUsar(ctx context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Senha{}).
		Where("empresa_id = ? AND usada = false", empresaID).Count(&n).Error
	return n, err
}

func (r *requisicaoSenhasRepo) CountPorFormaPagamento(ctx context.Context, empresaID uuid.UUID) (map[string]int64, error) {
	type row struct {
		FormaPagamento string
		N              int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSenhas{}).
		Select("forma_pagamento, COUNT(*) AS n").
		Where("empresa_id = ? AND estado = 'ativo'", empresaID).
		Group("forma_pagamento").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.FormaPagamento] = rw.N
	}
	return out, nil
}

func (r *requisicaoSenhasRepo) SumValorAbertas(ctx context.Context, empresaID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSenhas{}).
		Select("COALESCE(SUM(valor), 0)").
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}
