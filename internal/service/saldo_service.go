package service

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"
	"github.com/AyushManoj111/Engen/internal/worker"

	"github.com/google/uuid"
)

type SaldoService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarRequisicaoSaldoRequest) (*dto.RequisicaoSaldoResponse, error)
	Editar(ctx context.Context, empresaID, id uuid.UUID, req dto.EditarRequisicaoSaldoRequest) (*dto.RequisicaoSaldoResponse, error)
	Excluir(ctx context.Context, empresaID, id uuid.UUID) error
	ObterPorID(ctx context.Context, empresaID, id uuid.UUID) (*dto.RequisicaoSaldoResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) (*dto.RequisicaoSaldoListResponse, error)
}

type saldoService struct {
	repo        repository.RequisicaoSaldoRepository
	clienteRepo repository.ClienteRepository
	dispatcher  *worker.Dispatcher
}

func NewSaldoService(
	repo repository.RequisicaoSaldoRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
) SaldoService {
	return &saldoService{repo: repo, clienteRepo: clienteRepo, dispatcher: dispatcher}
}

// ── Criar ─────────────────────────────────────────────────────────────────────
// A single credit row with a fresh unique code from the saldo code space.
// saldo_restante at creation equals valor — no movimentos exist yet.

func (s *saldoService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarRequisicaoSaldoRequest) (*dto.RequisicaoSaldoResponse, error) {
	if err := validarPagamento(req.Valor, req.FormaPagamento, req.Banco); err != nil {
		return nil, err
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.NewInvalidInput("cliente_id invalido")
	}
	cliente, err := s.clienteRepo.FindByID(ctx, empresaID, clienteID)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "cliente", Ref: req.ClienteID}
	}

	codigo, err := GerarCodigoUnico(ctx, s.repo.CodigoExiste)
	if err != nil {
		return nil, err
	}

	requisicao := model.RequisicaoSaldo{
		EmpresaID:      empresaID,
		ClienteID:      clienteID,
		Valor:          req.Valor,
		Codigo:         codigo,
		FormaPagamento: req.FormaPagamento,
		Banco:          bancoPara(req.FormaPagamento, req.Banco),
		Estado:         model.EstadoAtivo,
	}
	if err := s.repo.Create(ctx, &requisicao); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		payload := map[string]interface{}{
			"tipo":          "saldo",
			"empresa_id":    empresaID.String(),
			"requisicao_id": requisicao.ID.String(),
		}
		if cliente.Email != nil && *cliente.Email != "" {
			payload["cliente_email"] = *cliente.Email
		}
		_ = s.dispatcher.EnqueueRecibo(ctx, payload)
	}

	requisicao.Cliente = cliente
	return s.paraResponse(ctx, &requisicao), nil
}

// ── Editar ────────────────────────────────────────────────────────────────────

func (s *saldoService) Editar(ctx context.Context, empresaID, id uuid.UUID, req dto.EditarRequisicaoSaldoRequest) (*dto.RequisicaoSaldoResponse, error) {
	requisicao, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "requisicao de saldo", Ref: id.String()}
	}
	if !requisicao.PodeEditar() {
		return nil, &apierror.ClosedRecordError{Entidade: "requisicao de saldo"}
	}

	if req.Valor != nil {
		if !req.Valor.IsPositive() {
			return nil, apierror.NewInvalidInput("valor deve ser maior que zero")
		}
		// Never shrink below what was already debited.
		debitado, err := s.repo.SumMovimentos(ctx, requisicao.ID)
		if err != nil {
			return nil, err
		}
		if req.Valor.LessThan(debitado) {
			return nil, apierror.NewInvalidInput("valor nao pode ser inferior ao total ja debitado (%s)", debitado.StringFixed(2))
		}
		requisicao.Valor = *req.Valor
	}
	if req.FormaPagamento != "" {
		requisicao.FormaPagamento = req.FormaPagamento
	}
	if requisicao.FormaPagamento == model.PagamentoTransferencia {
		if req.Banco != nil {
			requisicao.Banco = req.Banco
		}
		if requisicao.Banco == nil || *requisicao.Banco == "" {
			return nil, apierror.NewInvalidInput("banco e obrigatorio para pagamento por transferencia")
		}
	} else {
		requisicao.Banco = nil
	}

	if err := s.repo.Update(ctx, requisicao); err != nil {
		return nil, err
	}
	return s.paraResponse(ctx, requisicao), nil
}

// ── Excluir ───────────────────────────────────────────────────────────────────

func (s *saldoService) Excluir(ctx context.Context, empresaID, id uuid.UUID) error {
	requisicao, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return &apierror.NotFoundError{Entidade: "requisicao de saldo", Ref: id.String()}
	}
	if !requisicao.PodeEditar() {
		return &apierror.ClosedRecordError{Entidade: "requisicao de saldo"}
	}
	requisicao.Estado = model.EstadoDesativado
	return s.repo.Update(ctx, requisicao)
}

func (s *saldoService) ObterPorID(ctx context.Context, empresaID, id uuid.UUID) (*dto.RequisicaoSaldoResponse, error) {
	requisicao, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "requisicao de saldo", Ref: id.String()}
	}
	return s.paraResponse(ctx, requisicao), nil
}

func (s *saldoService) Listar(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) (*dto.RequisicaoSaldoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	reqs, total, err := s.repo.List(ctx, empresaID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RequisicaoSaldoResponse, 0, len(reqs))
	for i := range reqs {
		items = append(items, *s.paraResponse(ctx, &reqs[i]))
	}
	return &dto.RequisicaoSaldoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *saldoService) paraResponse(ctx context.Context, r *model.RequisicaoSaldo) *dto.RequisicaoSaldoResponse {
	debitado, _ := s.repo.SumMovimentos(ctx, r.ID)

	resp := &dto.RequisicaoSaldoResponse{
		ID:             r.ID.String(),
		ClienteID:      r.ClienteID.String(),
		Codigo:         r.Codigo,
		Valor:          r.Valor,
		SaldoRestante:  r.Valor.Sub(debitado),
		FormaPagamento: r.FormaPagamento,
		Banco:          r.Banco,
		Estado:         r.Estado,
		CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if r.Cliente != nil {
		resp.ClienteNome = r.Cliente.Nome
	}
	if r.FechoID != nil {
		f := r.FechoID.String()
		resp.FechoID = &f
	}
	for _, mov := range r.Movimentos {
		resp.Movimentos = append(resp.Movimentos, movimentoParaResponse(mov))
	}
	return resp
}

func movimentoParaResponse(m model.Movimento) dto.MovimentoResponse {
	resp := dto.MovimentoResponse{
		ID:              m.ID.String(),
		Valor:           m.Valor,
		TipoCombustivel: m.TipoCombustivel,
		Descricao:       m.Descricao,
		CreatedAt:       m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.FechoID != nil {
		f := m.FechoID.String()
		resp.FechoID = &f
	}
	return resp
}
