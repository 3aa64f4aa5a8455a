package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// cenarioFecho seeds one open voucher batch (one senha redeemed), one open
// saldo requisition and one open movimento for the empresa.
func cenarioFecho(t *testing.T, empresaID uuid.UUID) (*stubSenhasRepo, *stubSaldoRepo, *stubFechoRepo) {
	t.Helper()
	senhasRepo := newStubSenhasRepo()
	saldoRepo := newStubSaldoRepo()

	seedLoteSenhas(senhasRepo, empresaID, "600.00", "AAAAAAAAAA", "BBBBBBBBBB")
	agora := time.Now().UTC()
	usada := senhasRepo.senhas["AAAAAAAAAA"]
	usada.Usada = true
	usada.DataUso = &agora

	saldo := seedSaldo(saldoRepo, empresaID, "1000.00", "SSSSSSSSSS")
	saldoRepo.movimentos = append(saldoRepo.movimentos, &model.Movimento{
		ID:                uuid.New(),
		RequisicaoSaldoID: saldo.ID,
		Valor:             dec("250.00"),
		Descricao:         "Abastecimento registado por Carlos Macamo",
		CreatedAt:         agora,
	})

	return senhasRepo, saldoRepo, newStubFechoRepo(senhasRepo, saldoRepo)
}

func TestFecho_FazerVarreTudoAberto(t *testing.T) {
	empresaID := uuid.New()
	senhasRepo, saldoRepo, fechoRepo := cenarioFecho(t, empresaID)
	svc := NewFechoService(fechoRepo, senhasRepo, saldoRepo)

	resp, err := svc.Fazer(context.Background(), empresaID)
	require.NoError(t, err)

	require.NotNil(t, resp.FechoID)
	assert.Equal(t, "fecho realizado", resp.Mensagem)
	assert.Equal(t, dto.FechoContagens{
		RequisicoesSenhas: 1,
		RequisicoesSaldo:  1,
		Movimentos:        1,
		SenhasUsadas:      1,
	}, resp.Contagens)

	// Every swept record now points at the new fecho.
	fechoID := uuid.MustParse(*resp.FechoID)
	for _, req := range senhasRepo.reqs {
		require.NotNil(t, req.FechoID)
		assert.Equal(t, fechoID, *req.FechoID)
	}
	require.NotNil(t, senhasRepo.senhas["AAAAAAAAAA"].FechoID)
	assert.Nil(t, senhasRepo.senhas["BBBBBBBBBB"].FechoID, "unused senha stays open")
	for _, mov := range saldoRepo.movimentos {
		require.NotNil(t, mov.FechoID)
		assert.Equal(t, fechoID, *mov.FechoID)
	}
}

func TestFecho_NadaParaFecharNaoEscreve(t *testing.T) {
	empresaID := uuid.New()
	senhasRepo := newStubSenhasRepo()
	saldoRepo := newStubSaldoRepo()
	fechoRepo := newStubFechoRepo(senhasRepo, saldoRepo)
	svc := NewFechoService(fechoRepo, senhasRepo, saldoRepo)

	resp, err := svc.Fazer(context.Background(), empresaID)
	require.NoError(t, err)

	assert.Nil(t, resp.FechoID)
	assert.Equal(t, "nada para fechar", resp.Mensagem)
	assert.Equal(t, int64(0), resp.Contagens.Total())
	assert.Empty(t, fechoRepo.fechos, "no fecho row may be created")
}

func TestFecho_SegundaChamadaSemActividadeENoOp(t *testing.T) {
	empresaID := uuid.New()
	senhasRepo, saldoRepo, fechoRepo := cenarioFecho(t, empresaID)
	svc := NewFechoService(fechoRepo, senhasRepo, saldoRepo)

	_, err := svc.Fazer(context.Background(), empresaID)
	require.NoError(t, err)

	resp, err := svc.Fazer(context.Background(), empresaID)
	require.NoError(t, err)
	assert.Nil(t, resp.FechoID)
	assert.Equal(t, "nada para fechar", resp.Mensagem)
	assert.Len(t, fechoRepo.fechos, 1, "no second fecho without new activity")
}

func TestFecho_NaoTocaOutrasEmpresas(t *testing.T) {
	empresaID := uuid.New()
	outraEmpresa := uuid.New()
	senhasRepo, saldoRepo, fechoRepo := cenarioFecho(t, empresaID)
	alheia := seedLoteSenhas(senhasRepo, outraEmpresa, "100.00", "QQQQQQQQQQ")

	svc := NewFechoService(fechoRepo, senhasRepo, saldoRepo)
	resp, err := svc.Fazer(context.Background(), empresaID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Contagens.RequisicoesSenhas)
	assert.Nil(t, alheia.FechoID, "other tenant's batch must stay open")
}

func TestFecho_PreviewNaoEscreve(t *testing.T) {
	empresaID := uuid.New()
	senhasRepo, saldoRepo, fechoRepo := cenarioFecho(t, empresaID)
	svc := NewFechoService(fechoRepo, senhasRepo, saldoRepo)

	resp, err := svc.Preview(context.Background(), empresaID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.Contagens.Total())
	assert.True(t, resp.TotalRequisicoesSenhas.Equal(dec("600.00")))
	assert.True(t, resp.TotalRequisicoesSaldo.Equal(dec("1000.00")))
	assert.True(t, resp.TotalMovimentos.Equal(dec("250.00")))

	// The candidate records themselves are listed for review.
	require.Len(t, resp.RequisicoesSenhas, 1)
	assert.True(t, resp.RequisicoesSenhas[0].Valor.Equal(dec("600.00")))
	assert.Equal(t, 2, resp.RequisicoesSenhas[0].Quantidade)
	require.Len(t, resp.RequisicoesSaldo, 1)
	assert.Equal(t, "SSSSSSSSSS", resp.RequisicoesSaldo[0].Codigo)
	require.Len(t, resp.Movimentos, 1)
	assert.True(t, resp.Movimentos[0].Valor.Equal(dec("250.00")))
	require.Len(t, resp.SenhasUsadas, 1)
	assert.Equal(t, "AAAAAAAAAA", resp.SenhasUsadas[0].Codigo)

	assert.Empty(t, fechoRepo.fechos)
	for _, req := range senhasRepo.reqs {
		assert.Nil(t, req.FechoID)
	}
}

func TestFecho_PreviewVazioSemAbertos(t *testing.T) {
	empresaID := uuid.New()
	senhasRepo := newStubSenhasRepo()
	saldoRepo := newStubSaldoRepo()
	svc := NewFechoService(newStubFechoRepo(senhasRepo, saldoRepo), senhasRepo, saldoRepo)

	resp, err := svc.Preview(context.Background(), empresaID)
	require.NoError(t, err)
	assert.Empty(t, resp.RequisicoesSenhas)
	assert.Empty(t, resp.RequisicoesSaldo)
	assert.Empty(t, resp.Movimentos)
	assert.Empty(t, resp.SenhasUsadas)
}

// falhaFechoRepo fails one of the bulk sweeps mid-close.
type falhaFechoRepo struct {
	*stubFechoRepo
	erro error
}

func (r *falhaFechoRepo) FecharMovimentosTx(_ *gorm.DB, _, _ uuid.UUID) (int64, error) {
	return 0, r.erro
}

func TestFecho_FalhaNoVarrimentoAbortaTransacao(t *testing.T) {
	empresaID := uuid.New()
	senhasRepo, saldoRepo, fechoRepo := cenarioFecho(t, empresaID)
	falha := errors.New("deadlock detected")
	svc := NewFechoService(&falhaFechoRepo{stubFechoRepo: fechoRepo, erro: falha}, senhasRepo, saldoRepo)

	_, err := svc.Fazer(context.Background(), empresaID)
	require.ErrorIs(t, err, falha, "a failed sweep must surface so the transaction rolls back")
}

func TestFecho_ListarDevolveFechosDaEmpresa(t *testing.T) {
	empresaID := uuid.New()
	senhasRepo, saldoRepo, fechoRepo := cenarioFecho(t, empresaID)
	fechoRepo.fechos = append(fechoRepo.fechos, &model.Fecho{
		ID:        uuid.New(),
		EmpresaID: uuid.New(), // another tenant
		CreatedAt: time.Now().UTC(),
	})
	svc := NewFechoService(fechoRepo, senhasRepo, saldoRepo)

	_, err := svc.Fazer(context.Background(), empresaID)
	require.NoError(t, err)

	resp, err := svc.Listar(context.Background(), empresaID)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
}
