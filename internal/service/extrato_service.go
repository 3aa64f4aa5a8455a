package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExtratoService builds the client statement: the four closed collections
// merged into one chronological ledger with a running balance. Only records
// already swept into a fecho appear; open records are surfaced as pending
// counts so the reader knows the statement is incomplete until the next
// closing.
type ExtratoService interface {
	Gerar(ctx context.Context, empresaID, clienteID uuid.UUID) (*dto.ExtratoResponse, error)
}

type extratoService struct {
	senhasRepo  repository.RequisicaoSenhasRepository
	saldoRepo   repository.RequisicaoSaldoRepository
	clienteRepo repository.ClienteRepository
}

func NewExtratoService(
	senhasRepo repository.RequisicaoSenhasRepository,
	saldoRepo repository.RequisicaoSaldoRepository,
	clienteRepo repository.ClienteRepository,
) ExtratoService {
	return &extratoService{senhasRepo: senhasRepo, saldoRepo: saldoRepo, clienteRepo: clienteRepo}
}

// linha is one pre-fold entry. Credits and debits are kept apart so the fold
// below stays a plain accumulate.
type linha struct {
	data            time.Time
	descricao       string
	credito         *decimal.Decimal
	debito          *decimal.Decimal
	formaPagamento  string
	tipoCombustivel *string
	fechoID         uuid.UUID
}

func (s *extratoService) Gerar(ctx context.Context, empresaID, clienteID uuid.UUID) (*dto.ExtratoResponse, error) {
	cliente, err := s.clienteRepo.FindByID(ctx, empresaID, clienteID)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "cliente", Ref: clienteID.String()}
	}

	reqsSenhas, err := s.senhasRepo.ListFechadasPorCliente(ctx, empresaID, clienteID)
	if err != nil {
		return nil, err
	}
	senhasUsadas, err := s.senhasRepo.ListSenhasUsadasFechadasPorCliente(ctx, empresaID, clienteID)
	if err != nil {
		return nil, err
	}
	reqsSaldo, err := s.saldoRepo.ListFechadasPorCliente(ctx, empresaID, clienteID)
	if err != nil {
		return nil, err
	}
	movimentos, err := s.saldoRepo.ListMovimentosFechadosPorCliente(ctx, empresaID, clienteID)
	if err != nil {
		return nil, err
	}

	linhas := make([]linha, 0, len(reqsSenhas)+len(senhasUsadas)+len(reqsSaldo)+len(movimentos))

	// a. closed balance requisitions — credits at creation date
	for i := range reqsSaldo {
		r := &reqsSaldo[i]
		valor := r.Valor
		linhas = append(linhas, linha{
			data:           r.CreatedAt,
			descricao:      fmt.Sprintf("Requisicao de saldo %s", r.Codigo),
			credito:        &valor,
			formaPagamento: formaPagamentoLabel(r.FormaPagamento, r.Banco),
			fechoID:        *r.FechoID,
		})
	}

	// b. closed movimentos — debits at creation date
	for i := range movimentos {
		m := &movimentos[i]
		valor := m.Valor
		linhas = append(linhas, linha{
			data:            m.CreatedAt,
			descricao:       m.Descricao,
			debito:          &valor,
			formaPagamento:  "Consumo",
			tipoCombustivel: m.TipoCombustivel,
			fechoID:         *m.FechoID,
		})
	}

	// c. closed voucher batches — credits at creation date
	for i := range reqsSenhas {
		r := &reqsSenhas[i]
		valor := r.Valor
		linhas = append(linhas, linha{
			data:           r.CreatedAt,
			descricao:      fmt.Sprintf("Requisicao de %d senhas", r.Quantidade),
			credito:        &valor,
			formaPagamento: formaPagamentoLabel(r.FormaPagamento, r.Banco),
			fechoID:        *r.FechoID,
		})
	}

	// d. closed redeemed senhas — debits at redemption date, each worth the
	//    even split of its batch value
	for i := range senhasUsadas {
		sn := &senhasUsadas[i]
		if sn.Requisicao == nil {
			return nil, &apierror.NotFoundError{Entidade: "requisicao", Ref: sn.RequisicaoID.String()}
		}
		if sn.Requisicao.Quantidade == 0 {
			return nil, &apierror.DivisionError{Motivo: "requisicao sem senhas"}
		}
		valor := sn.Requisicao.Valor.DivRound(decimal.NewFromInt(int64(sn.Requisicao.Quantidade)), 2)
		linhas = append(linhas, linha{
			data:            *sn.DataUso,
			descricao:       fmt.Sprintf("Senha %s utilizada", sn.Codigo),
			debito:          &valor,
			formaPagamento:  "Uso de senha",
			tipoCombustivel: sn.TipoCombustivel,
			fechoID:         *sn.FechoID,
		})
	}

	sort.SliceStable(linhas, func(i, j int) bool {
		return linhas[i].data.Before(linhas[j].data)
	})

	// Running balance fold: += credit, -= debit, in merge order.
	saldo := decimal.Zero
	out := make([]dto.ExtratoLinha, 0, len(linhas))
	for _, l := range linhas {
		if l.credito != nil {
			saldo = saldo.Add(*l.credito)
		}
		if l.debito != nil {
			saldo = saldo.Sub(*l.debito)
		}
		out = append(out, dto.ExtratoLinha{
			Data:            l.data.Format("2006-01-02T15:04:05Z"),
			Descricao:       l.descricao,
			Credito:         l.credito,
			Debito:          l.debito,
			Saldo:           saldo,
			FormaPagamento:  l.formaPagamento,
			TipoCombustivel: l.tipoCombustivel,
			FechoID:         l.fechoID.String(),
		})
	}

	pendentes, err := s.contarPendentes(ctx, empresaID, clienteID)
	if err != nil {
		return nil, err
	}

	return &dto.ExtratoResponse{
		ClienteID:   clienteID.String(),
		ClienteNome: cliente.Nome,
		Linhas:      out,
		SaldoFinal:  saldo,
		Pendentes:   pendentes,
	}, nil
}

func (s *extratoService) contarPendentes(ctx context.Context, empresaID, clienteID uuid.UUID) (dto.ExtratoPendentes, error) {
	var p dto.ExtratoPendentes
	var err error

	if p.RequisicoesSenhas, err = s.senhasRepo.CountPendentesPorCliente(ctx, empresaID, clienteID); err != nil {
		return p, err
	}
	if p.SenhasUsadas, err = s.senhasRepo.CountSenhasUsadasPendentesPorCliente(ctx, empresaID, clienteID); err != nil {
		return p, err
	}
	if p.RequisicoesSaldo, err = s.saldoRepo.CountPendentesPorCliente(ctx, empresaID, clienteID); err != nil {
		return p, err
	}
	if p.Movimentos, err = s.saldoRepo.CountMovimentosPendentesPorCliente(ctx, empresaID, clienteID); err != nil {
		return p, err
	}
	return p, nil
}

// formaPagamentoLabel appends the banco name on transfers.
func formaPagamentoLabel(formaPagamento string, banco *string) string {
	if formaPagamento == model.PagamentoTransferencia && banco != nil && *banco != "" {
		return fmt.Sprintf("%s (%s)", formaPagamento, *banco)
	}
	return formaPagamento
}
