package repository

import (
	"context"
	"time"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequisicaoSaldoRepository interface {
	Create(ctx context.Context, r *model.RequisicaoSaldo) error
	FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.RequisicaoSaldo, error)
	FindByCodigo(ctx context.Context, empresaID uuid.UUID, codigo string) (*model.RequisicaoSaldo, error)
	Update(ctx context.Context, r *model.RequisicaoSaldo) error
	List(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) ([]model.RequisicaoSaldo, int64, error)
	CodigoExiste(ctx context.Context, codigo string) (bool, error)

	// Debit path. FindByIDForUpdateTx locks the requisition row so the
	// sufficient-funds check and the movimento insert are serialized against
	// concurrent debits of the same requisition.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.RequisicaoSaldo, error)
	SumMovimentosTx(tx *gorm.DB, requisicaoID uuid.UUID) (decimal.Decimal, error)
	SumMovimentos(ctx context.Context, requisicaoID uuid.UUID) (decimal.Decimal, error)
	CreateMovimentoTx(tx *gorm.DB, m *model.Movimento) error
	ListMovimentos(ctx context.Context, requisicaoID uuid.UUID) ([]model.Movimento, error)

	// Statement / guard queries
	ListFechadasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.RequisicaoSaldo, error)
	ListMovimentosFechadosPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.Movimento, error)
	CountAtivasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error)
	CountPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error)
	CountMovimentosPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error)

	// Dashboard aggregates
	CountAbertas(ctx context.Context, empresaID uuid.UUID) (int64, error)
	MovimentosDesde(ctx context.Context, empresaID uuid.UUID, desde time.Time) (int64, decimal.Decimal, error)
	CountPorFormaPagamento(ctx context.Context, empresaID uuid.UUID) (map[string]int64, error)
	SumValorAbertas(ctx context.Context, empresaID uuid.UUID) (decimal.Decimal, error)

	DB() *gorm.DB
}

type requisicaoSaldoRepo struct{ db *gorm.DB }

func NewRequisicaoSaldoRepository(db *gorm.DB) RequisicaoSaldoRepository {
	return &requisicaoSaldoRepo{db: db}
}

func (r *requisicaoSaldoRepo) DB() *gorm.DB { return r.db }

func (r *requisicaoSaldoRepo) Create(ctx context.Context, req *model.RequisicaoSaldo) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requisicaoSaldoRepo) FindByID(ctx context.Context, empresaID, id uuid.UUID) (*model.RequisicaoSaldo, error) {
	var req model.RequisicaoSaldo
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Movimentos").
		Where("empresa_id = ?", empresaID).First(&req, id).Error
	return &req, err
}

func (r *requisicaoSaldoRepo) FindByCodigo(ctx context.Context, empresaID uuid.UUID, codigo string) (*model.RequisicaoSaldo, error) {
	var req model.RequisicaoSaldo
	err := r.db.WithContext(ctx).Preload("Cliente").
		Where("empresa_id = ? AND codigo = ? AND estado = 'ativo'", empresaID, codigo).First(&req).Error
	return &req, err
}

func (r *requisicaoSaldoRepo) Update(ctx context.Context, req *model.RequisicaoSaldo) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *requisicaoSaldoRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) ([]model.RequisicaoSaldo, int64, error) {
	var reqs []model.RequisicaoSaldo
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.RequisicaoSaldo{}).
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

	err := q.Preload("Cliente").Preload("Movimentos").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&reqs).Error

	return reqs, total, err
}

func (r *requisicaoSaldoRepo) CodigoExiste(ctx context.Context, codigo string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSaldo{}).Where("codigo = ?", codigo).Count(&n).Error
	return n > 0, err
}

func (r *requisicaoSaldoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.RequisicaoSaldo, error) {
	var req model.RequisicaoSaldo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error
	return &req, err
}

func (r *requisicaoSaldoRepo) SumMovimentosTx(tx *gorm.DB, requisicaoID uuid.UUID) (decimal.Decimal, error) {
	return sumMovimentos(tx, requisicaoID)
}

func (r *requisicaoSaldoRepo) SumMovimentos(ctx context.Context, requisicaoID uuid.UUID) (decimal.Decimal, error) {
	return sumMovimentos(r.db.WithContext(ctx), requisicaoID)
}

func sumMovimentos(db *gorm.DB, requisicaoID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&model.Movimento{}).
		Select("COALESCE(SUM(valor), 0)").
		Where("requisicao_saldo_id = ?", requisicaoID).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *requisicaoSaldoRepo) CreateMovimentoTx(tx *gorm.DB, m *model.Movimento) error {
	return tx.Create(m).Error
}

func (r *requisicaoSaldoRepo) ListMovimentos(ctx context.Context, requisicaoID uuid.UUID) ([]model.Movimento, error) {
	var movs []model.Movimento
	err := r.db.WithContext(ctx).
		Where("requisicao_saldo_id = ?", requisicaoID).
		Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *requisicaoSaldoRepo) ListFechadasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.RequisicaoSaldo, error) {
	var reqs []model.RequisicaoSaldo
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND cliente_id = ? AND fecho_id IS NOT NULL", empresaID, clienteID).
		Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

// ListMovimentosFechadosPorCliente scopes movimentos transitively through their
// requisition — movimentos carry no empresa column.
func (r *requisicaoSaldoRepo) ListMovimentosFechadosPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) ([]model.Movimento, error) {
	var movs []model.Movimento
	err := r.db.WithContext(ctx).
		Joins("JOIN requisicao_saldos rs ON rs.id = movimentos.requisicao_saldo_id").
		Where("rs.empresa_id = ? AND rs.cliente_id = ? AND movimentos.fecho_id IS NOT NULL", empresaID, clienteID).
		Order("movimentos.created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *requisicaoSaldoRepo) CountAtivasPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSaldo{}).
		Where("empresa_id = ? AND cliente_id = ? AND estado = 'ativo'", empresaID, clienteID).Count(&n).Error
	return n, err
}

func (r *requisicaoSaldoRepo) CountPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSaldo{}).
		Where("empresa_id = ? AND cliente_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID, clienteID).
		Count(&n).Error
	return n, err
}

func (r *requisicaoSaldoRepo) CountMovimentosPendentesPorCliente(ctx context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Movimento{}).
		Joins("JOIN requisicao_saldos rs ON rs.id = movimentos.requisicao_saldo_id").
		Where("rs.empresa_id = ? AND rs.cliente_id = ? AND movimentos.fecho_id IS NULL", empresaID, clienteID).
		Count(&n).Error
	return n, err
}

func (r *requisicaoSaldoRepo) CountAbertas(ctx context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSaldo{}).
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).Count(&n).Error
	return n, err
}

func (r *requisicaoSaldoRepo) MovimentosDesde(ctx context.Context, empresaID uuid.UUID, desde time.Time) (int64, decimal.Decimal, error) {
	type row struct {
		N     int64
		Total decimal.NullDecimal
	}
	var rw row
	err := r.db.WithContext(ctx).Model(&model.Movimento{}).
		Select("COUNT(*) AS n, COALESCE(SUM(movimentos.valor), 0) AS total").
		Joins("JOIN requisicao_saldos rs ON rs.id = movimentos.requisicao_saldo_id").
		Where("rs.empresa_id = ? AND movimentos.created_at >= ?", empresaID, desde).
		Scan(&rw).Error
	if err != nil || !rw.Total.Valid {
		return rw.N, decimal.Zero, err
	}
	return rw.N, rw.Total.Decimal, nil
}

func (r *requisicaoSaldoRepo) CountPorFormaPagamento(ctx context.Context, empresaID uuid.UUID) (map[string]int64, error) {
	type row struct {
		FormaPagamento string
		N              int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSaldo{}).
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

func (r *requisicaoSaldoRepo) SumValorAbertas(ctx context.Context, empresaID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.RequisicaoSaldo{}).
		Select("COALESCE(SUM(valor), 0)").
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}
