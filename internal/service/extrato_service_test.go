package service

import (
	"context"
	"testing"
	"time"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCliente(repo *stubClienteRepo, empresaID uuid.UUID, nome string) *model.Cliente {
	c := &model.Cliente{ID: uuid.New(), EmpresaID: empresaID, Nome: nome}
	repo.clientes[c.ID] = c
	return c
}

func TestExtrato_ClienteDesconhecido(t *testing.T) {
	empresaID := uuid.New()
	svc := NewExtratoService(newStubSenhasRepo(), newStubSaldoRepo(), newStubClienteRepo())

	_, err := svc.Gerar(context.Background(), empresaID, uuid.New())
	var nfErr *apierror.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "cliente", nfErr.Entidade)
}

func TestExtrato_CreditoEDebitoComSaldoCorrente(t *testing.T) {
	empresaID := uuid.New()
	fechoID := uuid.New()
	clienteRepo := newStubClienteRepo()
	senhasRepo := newStubSenhasRepo()
	saldoRepo := newStubSaldoRepo()
	cliente := seedCliente(clienteRepo, empresaID, "Transportes Matola")

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// Closed saldo credit of 100, then a closed debit of 30 an hour later.
	saldo := &model.RequisicaoSaldo{
		ID:             uuid.New(),
		EmpresaID:      empresaID,
		ClienteID:      cliente.ID,
		Valor:          dec("100.00"),
		Codigo:         "SSSSSSSSSS",
		FormaPagamento: model.PagamentoCash,
		Estado:         model.EstadoAtivo,
		FechoID:        &fechoID,
		CreatedAt:      base,
	}
	saldoRepo.reqs[saldo.ID] = saldo
	saldoRepo.movimentos = append(saldoRepo.movimentos, &model.Movimento{
		ID:                uuid.New(),
		RequisicaoSaldoID: saldo.ID,
		Valor:             dec("30.00"),
		Descricao:         "Abastecimento registado por Carlos Macamo",
		FechoID:           &fechoID,
		CreatedAt:         base.Add(time.Hour),
	})

	svc := NewExtratoService(senhasRepo, saldoRepo, clienteRepo)
	resp, err := svc.Gerar(context.Background(), empresaID, cliente.ID)
	require.NoError(t, err)

	assert.Equal(t, "Transportes Matola", resp.ClienteNome)
	require.Len(t, resp.Linhas, 2)

	primeira, segunda := resp.Linhas[0], resp.Linhas[1]
	require.NotNil(t, primeira.Credito)
	assert.True(t, primeira.Credito.Equal(dec("100.00")))
	assert.True(t, primeira.Saldo.Equal(dec("100.00")))

	require.NotNil(t, segunda.Debito)
	assert.True(t, segunda.Debito.Equal(dec("30.00")))
	assert.True(t, segunda.Saldo.Equal(dec("70.00")))
	assert.Equal(t, "Consumo", segunda.FormaPagamento)

	assert.True(t, resp.SaldoFinal.Equal(dec("70.00")))
}

func TestExtrato_SenhaUsadaValeDivisaoDoLote(t *testing.T) {
	empresaID := uuid.New()
	fechoID := uuid.New()
	clienteRepo := newStubClienteRepo()
	senhasRepo := newStubSenhasRepo()
	cliente := seedCliente(clienteRepo, empresaID, "Frota Beira")

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	usoEm := base.Add(2 * time.Hour)

	// Closed batch of 4 senhas worth 120 total; one redeemed and closed.
	lote := &model.RequisicaoSenhas{
		ID:             uuid.New(),
		EmpresaID:      empresaID,
		ClienteID:      cliente.ID,
		Valor:          dec("120.00"),
		Quantidade:     4,
		FormaPagamento: model.PagamentoTransferencia,
		Banco:          strPtr("BIM"),
		Estado:         model.EstadoAtivo,
		FechoID:        &fechoID,
		CreatedAt:      base,
	}
	senhasRepo.reqs[lote.ID] = lote
	senhasRepo.senhas["AAAAAAAAAA"] = &model.Senha{
		ID:           uuid.New(),
		EmpresaID:    empresaID,
		ClienteID:    cliente.ID,
		RequisicaoID: lote.ID,
		Codigo:       "AAAAAAAAAA",
		Usada:        true,
		DataUso:      &usoEm,
		FechoID:      &fechoID,
	}

	svc := NewExtratoService(senhasRepo, newStubSaldoRepo(), clienteRepo)
	resp, err := svc.Gerar(context.Background(), empresaID, cliente.ID)
	require.NoError(t, err)

	require.Len(t, resp.Linhas, 2)

	credito := resp.Linhas[0]
	require.NotNil(t, credito.Credito)
	assert.True(t, credito.Credito.Equal(dec("120.00")))
	assert.Equal(t, "transferencia (BIM)", credito.FormaPagamento)

	debito := resp.Linhas[1]
	require.NotNil(t, debito.Debito)
	// 120.00 / 4
	assert.True(t, debito.Debito.Equal(dec("30.00")), "debito = %s", debito.Debito)
	assert.Contains(t, debito.Descricao, "AAAAAAAAAA")
	assert.Equal(t, "Uso de senha", debito.FormaPagamento)

	assert.True(t, resp.SaldoFinal.Equal(dec("90.00")))
}

func TestExtrato_LoteSemQuantidadeFalhaDivisao(t *testing.T) {
	empresaID := uuid.New()
	fechoID := uuid.New()
	clienteRepo := newStubClienteRepo()
	senhasRepo := newStubSenhasRepo()
	cliente := seedCliente(clienteRepo, empresaID, "Cliente Zero")

	agora := time.Now().UTC()
	lote := &model.RequisicaoSenhas{
		ID:        uuid.New(),
		EmpresaID: empresaID,
		ClienteID: cliente.ID,
		Valor:     dec("50.00"),
		Estado:    model.EstadoAtivo,
		FechoID:   &fechoID,
		CreatedAt: agora,
	}
	senhasRepo.reqs[lote.ID] = lote
	senhasRepo.senhas["BBBBBBBBBB"] = &model.Senha{
		ID:           uuid.New(),
		EmpresaID:    empresaID,
		ClienteID:    cliente.ID,
		RequisicaoID: lote.ID,
		Codigo:       "BBBBBBBBBB",
		Usada:        true,
		DataUso:      &agora,
		FechoID:      &fechoID,
	}

	svc := NewExtratoService(senhasRepo, newStubSaldoRepo(), clienteRepo)
	_, err := svc.Gerar(context.Background(), empresaID, cliente.ID)
	var divErr *apierror.DivisionError
	require.ErrorAs(t, err, &divErr)
}

func TestExtrato_AbertosSoContamComoPendentes(t *testing.T) {
	empresaID := uuid.New()
	clienteRepo := newStubClienteRepo()
	senhasRepo := newStubSenhasRepo()
	saldoRepo := newStubSaldoRepo()
	cliente := seedCliente(clienteRepo, empresaID, "Pendentes Lda")

	// Open (unclosed) records only.
	lote := seedLoteSenhas(senhasRepo, empresaID, "200.00", "CCCCCCCCCC", "DDDDDDDDDD")
	lote.ClienteID = cliente.ID
	for _, s := range senhasRepo.senhas {
		s.ClienteID = cliente.ID
	}
	agora := time.Now().UTC()
	usada := senhasRepo.senhas["CCCCCCCCCC"]
	usada.Usada = true
	usada.DataUso = &agora

	saldo := seedSaldo(saldoRepo, empresaID, "500.00", "SSSSSSSSSS")
	saldo.ClienteID = cliente.ID
	saldoRepo.movimentos = append(saldoRepo.movimentos, &model.Movimento{
		ID:                uuid.New(),
		RequisicaoSaldoID: saldo.ID,
		Valor:             dec("50.00"),
		Descricao:         "Abastecimento registado por Carlos Macamo",
		CreatedAt:         agora,
	})

	svc := NewExtratoService(senhasRepo, saldoRepo, clienteRepo)
	resp, err := svc.Gerar(context.Background(), empresaID, cliente.ID)
	require.NoError(t, err)

	assert.Empty(t, resp.Linhas, "open records never appear as statement lines")
	assert.True(t, resp.SaldoFinal.Equal(decimal.Zero))
	assert.Equal(t, int64(1), resp.Pendentes.RequisicoesSenhas)
	assert.Equal(t, int64(1), resp.Pendentes.SenhasUsadas)
	assert.Equal(t, int64(1), resp.Pendentes.RequisicoesSaldo)
	assert.Equal(t, int64(1), resp.Pendentes.Movimentos)
}
