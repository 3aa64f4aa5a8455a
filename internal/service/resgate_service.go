package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResgateService is the redemption state machine. A submitted code is looked
// up in both code spaces within the tenant; exactly one hit selects the
// entity, and the presence of an amount selects the path:
//   - no amount  → senha redemption (single-use flip)
//   - amount     → balance debit (movimento insert against saldo_restante)
type ResgateService interface {
	Resgatar(ctx context.Context, empresaID uuid.UUID, funcionario *model.Funcionario, req dto.ResgatarRequest) (*dto.ResgateResponse, error)
}

type resgateService struct {
	senhasRepo repository.RequisicaoSenhasRepository
	saldoRepo  repository.RequisicaoSaldoRepository
}

func NewResgateService(
	senhasRepo repository.RequisicaoSenhasRepository,
	saldoRepo repository.RequisicaoSaldoRepository,
) ResgateService {
	return &resgateService{senhasRepo: senhasRepo, saldoRepo: saldoRepo}
}

func (s *resgateService) Resgatar(ctx context.Context, empresaID uuid.UUID, funcionario *model.Funcionario, req dto.ResgatarRequest) (*dto.ResgateResponse, error) {
	senha, errSenha := s.senhasRepo.FindSenhaByCodigo(ctx, empresaID, req.Codigo)
	if errSenha != nil && !errors.Is(errSenha, gorm.ErrRecordNotFound) {
		return nil, errSenha
	}
	saldo, errSaldo := s.saldoRepo.FindByCodigo(ctx, empresaID, req.Codigo)
	if errSaldo != nil && !errors.Is(errSaldo, gorm.ErrRecordNotFound) {
		return nil, errSaldo
	}

	temSenha := errSenha == nil
	temSaldo := errSaldo == nil

	switch {
	case temSenha && temSaldo:
		// Codes are generated independently per space; a double hit means the
		// uniqueness invariant is broken. Fail loud, never pick one silently.
		return nil, fmt.Errorf("codigo %s existe em ambos os espacos de codigos", req.Codigo)
	case !temSenha && !temSaldo:
		return nil, &apierror.NotFoundError{Entidade: "codigo", Ref: req.Codigo}
	case temSenha:
		if req.Valor != nil {
			return nil, apierror.NewInvalidInput("senhas nao aceitam valor")
		}
		return s.resgatarSenha(ctx, empresaID, funcionario, senha, req)
	default:
		return s.debitarSaldo(ctx, funcionario, saldo, req)
	}
}

// ── Senha path ────────────────────────────────────────────────────────────────
// The used flag flips false→true exactly once. The row is re-read FOR UPDATE
// inside the transaction so two concurrent redemptions of the same code
// cannot both pass the check.

func (s *resgateService) resgatarSenha(ctx context.Context, empresaID uuid.UUID, funcionario *model.Funcionario, senha *model.Senha, req dto.ResgatarRequest) (*dto.ResgateResponse, error) {
	if req.TipoCombustivel == nil || !model.TipoCombustivelValido(*req.TipoCombustivel) {
		return nil, apierror.NewInvalidInput("tipo de combustivel invalido")
	}

	requisicao := senha.Requisicao
	if requisicao == nil {
		return nil, &apierror.NotFoundError{Entidade: "requisicao", Ref: senha.RequisicaoID.String()}
	}
	if requisicao.Quantidade == 0 {
		return nil, &apierror.DivisionError{Motivo: "requisicao sem senhas"}
	}

	agora := time.Now().UTC()
	txErr := runTx(ctx, s.senhasRepo.DB(), func(tx *gorm.DB) error {
		bloqueada, err := s.senhasRepo.FindSenhaByCodigoTx(tx, empresaID, senha.Codigo)
		if err != nil {
			return err
		}
		if bloqueada.Usada {
			return &apierror.AlreadyUsedError{Codigo: bloqueada.Codigo}
		}

		bloqueada.Usada = true
		bloqueada.DataUso = &agora
		bloqueada.FuncionarioID = &funcionario.ID
		bloqueada.TipoCombustivel = req.TipoCombustivel
		if err := s.senhasRepo.UpdateSenhaTx(tx, bloqueada); err != nil {
			return err
		}

		// Last senha of the batch: stamp the completion time.
		restantes, err := s.senhasRepo.CountSenhasNaoUsadasTx(tx, senha.RequisicaoID)
		if err != nil {
			return err
		}
		if restantes == 0 {
			requisicao.DataConclusao = &agora
			return s.senhasRepo.UpdateTx(tx, requisicao)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	valorSenha := requisicao.Valor.DivRound(decimal.NewFromInt(int64(requisicao.Quantidade)), 2)
	resp := &dto.ResgateResponse{
		Tipo:            "senha",
		Codigo:          senha.Codigo,
		Valor:           valorSenha,
		TipoCombustivel: req.TipoCombustivel,
		DataUso:         agora.Format("2006-01-02T15:04:05Z"),
	}
	if requisicao.Cliente != nil {
		resp.ClienteNome = requisicao.Cliente.Nome
	}
	return resp, nil
}

// ── Saldo path ────────────────────────────────────────────────────────────────
// saldo_restante is never stored: it is re-derived inside the transaction,
// after locking the requisition row, so two concurrent debits cannot both
// read a stale balance and jointly overdraw.

func (s *resgateService) debitarSaldo(ctx context.Context, funcionario *model.Funcionario, saldo *model.RequisicaoSaldo, req dto.ResgatarRequest) (*dto.ResgateResponse, error) {
	if req.Valor == nil || !req.Valor.IsPositive() {
		return nil, apierror.NewInvalidInput("valor deve ser maior que zero")
	}
	if req.TipoCombustivel == nil || !model.TipoCombustivelValido(*req.TipoCombustivel) {
		return nil, apierror.NewInvalidInput("tipo de combustivel invalido")
	}

	valor := *req.Valor
	agora := time.Now().UTC()
	var restante = saldo.Valor

	txErr := runTx(ctx, s.saldoRepo.DB(), func(tx *gorm.DB) error {
		bloqueada, err := s.saldoRepo.FindByIDForUpdateTx(tx, saldo.ID)
		if err != nil {
			return err
		}
		debitado, err := s.saldoRepo.SumMovimentosTx(tx, bloqueada.ID)
		if err != nil {
			return err
		}
		disponivel := bloqueada.Valor.Sub(debitado)
		if valor.GreaterThan(disponivel) {
			return &apierror.InsufficientBalanceError{Disponivel: disponivel}
		}

		mov := &model.Movimento{
			RequisicaoSaldoID: bloqueada.ID,
			Valor:             valor,
			TipoCombustivel:   req.TipoCombustivel,
			Descricao:         fmt.Sprintf("Abastecimento registado por %s", funcionario.Nome),
			FuncionarioID:     &funcionario.ID,
		}
		if err := s.saldoRepo.CreateMovimentoTx(tx, mov); err != nil {
			return err
		}
		restante = disponivel.Sub(valor)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.ResgateResponse{
		Tipo:            "saldo",
		Codigo:          saldo.Codigo,
		Valor:           valor,
		SaldoRestante:   &restante,
		TipoCombustivel: req.TipoCombustivel,
		DataUso:         agora.Format("2006-01-02T15:04:05Z"),
	}
	if saldo.Cliente != nil {
		resp.ClienteNome = saldo.Cliente.Nome
	}
	return resp, nil
}
