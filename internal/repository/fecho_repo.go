package repository

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FechoRepository backs the closing engine. The Fechar*Tx bulk updates
// re-evaluate the open-record filters in SQL at update time — they never take
// a cached id list, so a record committed between the count and the update is
// either swept in or left open for the next fecho, never half-closed.
type FechoRepository interface {
	CreateTx(tx *gorm.DB, f *model.Fecho) error
	ContarAbertosTx(tx *gorm.DB, empresaID uuid.UUID) (dto.FechoContagens, error)
	FecharRequisicoesSenhasTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error)
	FecharRequisicoesSaldoTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error)
	FecharMovimentosTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error)
	FecharSenhasTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error)

	ContarAbertos(ctx context.Context, empresaID uuid.UUID) (dto.FechoContagens, error)
	SumMovimentosAbertos(ctx context.Context, empresaID uuid.UUID) (decimal.Decimal, error)
	ListRequisicoesSenhasAbertas(ctx context.Context, empresaID uuid.UUID) ([]model.RequisicaoSenhas, error)
	ListRequisicoesSaldoAbertas(ctx context.Context, empresaID uuid.UUID) ([]model.RequisicaoSaldo, error)
	ListMovimentosAbertos(ctx context.Context, empresaID uuid.UUID) ([]model.Movimento, error)
	ListSenhasUsadasAbertas(ctx context.Context, empresaID uuid.UUID) ([]model.Senha, error)
	List(ctx context.Context, empresaID uuid.UUID) ([]model.Fecho, error)
	DB() *gorm.DB
}

type fechoRepo struct{ db *gorm.DB }

func NewFechoRepository(db *gorm.DB) FechoRepository { return &fechoRepo{db: db} }

func (r *fechoRepo) DB() *gorm.DB { return r.db }

func (r *fechoRepo) CreateTx(tx *gorm.DB, f *model.Fecho) error {
	return tx.Create(f).Error
}

func (r *fechoRepo) ContarAbertosTx(tx *gorm.DB, empresaID uuid.UUID) (dto.FechoContagens, error) {
	return contarAbertos(tx, empresaID)
}

func (r *fechoRepo) ContarAbertos(ctx context.Context, empresaID uuid.UUID) (dto.FechoContagens, error) {
	return contarAbertos(r.db.WithContext(ctx), empresaID)
}

func contarAbertos(db *gorm.DB, empresaID uuid.UUID) (dto.FechoContagens, error) {
	var c dto.FechoContagens

	if err := db.Model(&model.RequisicaoSenhas{}).
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Count(&c.RequisicoesSenhas).Error; err != nil {
		return c, err
	}
	if err := db.Model(&model.RequisicaoSaldo{}).
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Count(&c.RequisicoesSaldo).Error; err != nil {
		return c, err
	}
	if err := db.Model(&model.Movimento{}).
		Where("fecho_id IS NULL AND requisicao_saldo_id IN (?)", saldoIDsDaEmpresa(db, empresaID)).
		Count(&c.Movimentos).Error; err != nil {
		return c, err
	}
	if err := db.Model(&model.Senha{}).
		Where("empresa_id = ? AND usada = true AND data_uso IS NOT NULL AND fecho_id IS NULL", empresaID).
		Count(&c.SenhasUsadas).Error; err != nil {
		return c, err
	}
	return c, nil
}

// saldoIDsDaEmpresa builds the tenant-scoping subquery for movimentos, which
// carry no empresa column of their own.
func saldoIDsDaEmpresa(db *gorm.DB, empresaID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&model.RequisicaoSaldo{}).
		Select("id").
		Where("empresa_id = ?", empresaID)
}

func (r *fechoRepo) FecharRequisicoesSenhasTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	res := tx.Model(&model.RequisicaoSenhas{}).
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Update("fecho_id", fechoID)
	return res.RowsAffected, res.Error
}

func (r *fechoRepo) FecharRequisicoesSaldoTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	res := tx.Model(&model.RequisicaoSaldo{}).
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Update("fecho_id", fechoID)
	return res.RowsAffected, res.Error
}

func (r *fechoRepo) FecharMovimentosTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	res := tx.Model(&model.Movimento{}).
		Where("fecho_id IS NULL AND requisicao_saldo_id IN (?)", saldoIDsDaEmpresa(tx, empresaID)).
		Update("fecho_id", fechoID)
	return res.RowsAffected, res.Error
}

func (r *fechoRepo) FecharSenhasTx(tx *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	res := tx.Model(&model.Senha{}).
		Where("empresa_id = ? AND usada = true AND data_uso IS NOT NULL AND fecho_id IS NULL", empresaID).
		Update("fecho_id", fechoID)
	return res.RowsAffected, res.Error
}

func (r *fechoRepo) SumMovimentosAbertos(ctx context.Context, empresaID uuid.UUID) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx)
	var total decimal.NullDecimal
	err := db.Model(&model.Movimento{}).
		Select("COALESCE(SUM(valor), 0)").
		Where("fecho_id IS NULL AND requisicao_saldo_id IN (?)", saldoIDsDaEmpresa(db, empresaID)).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

// The ListAbertas family mirrors the Fechar*Tx filters so a preview shows
// exactly the records a closing would sweep.

func (r *fechoRepo) ListRequisicoesSenhasAbertas(ctx context.Context, empresaID uuid.UUID) ([]model.RequisicaoSenhas, error) {
	var reqs []model.RequisicaoSenhas
	err := r.db.WithContext(ctx).Preload("Cliente").
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *fechoRepo) ListRequisicoesSaldoAbertas(ctx context.Context, empresaID uuid.UUID) ([]model.RequisicaoSaldo, error) {
	var reqs []model.RequisicaoSaldo
	err := r.db.WithContext(ctx).Preload("Cliente").
		Where("empresa_id = ? AND estado = 'ativo' AND fecho_id IS NULL", empresaID).
		Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *fechoRepo) ListMovimentosAbertos(ctx context.Context, empresaID uuid.UUID) ([]model.Movimento, error) {
	db := r.db.WithContext(ctx)
	var movimentos []model.Movimento
	err := db.Where("fecho_id IS NULL AND requisicao_saldo_id IN (?)", saldoIDsDaEmpresa(db, empresaID)).
		Order("created_at ASC").Find(&movimentos).Error
	return movimentos, err
}

func (r *fechoRepo) ListSenhasUsadasAbertas(ctx context.Context, empresaID uuid.UUID) ([]model.Senha, error) {
	var senhas []model.Senha
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND usada = true AND data_uso IS NOT NULL AND fecho_id IS NULL", empresaID).
		Order("data_uso ASC").Find(&senhas).Error
	return senhas, err
}

func (r *fechoRepo) List(ctx context.Context, empresaID uuid.UUID) ([]model.Fecho, error) {
	var fechos []model.Fecho
	err := r.db.WithContext(ctx).
		Where("empresa_id = ?", empresaID).
		Order("created_at DESC").Find(&fechos).Error
	return fechos, err
}
