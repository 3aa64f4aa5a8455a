package service

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"
	"github.com/AyushManoj111/Engen/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RequisicaoService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarRequisicaoSenhasRequest) (*dto.RequisicaoSenhasResponse, error)
	Editar(ctx context.Context, empresaID, id uuid.UUID, req dto.EditarRequisicaoSenhasRequest) (*dto.RequisicaoSenhasResponse, error)
	Excluir(ctx context.Context, empresaID, id uuid.UUID) error
	ObterPorID(ctx context.Context, empresaID, id uuid.UUID) (*dto.RequisicaoSenhasResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) (*dto.RequisicaoSenhasListResponse, error)
	ListarSenhas(ctx context.Context, empresaID, id uuid.UUID) ([]dto.SenhaResponse, error)
}

type requisicaoService struct {
	repo        repository.RequisicaoSenhasRepository
	clienteRepo repository.ClienteRepository
	dispatcher  *worker.Dispatcher
}

func NewRequisicaoService(
	repo repository.RequisicaoSenhasRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
) RequisicaoService {
	return &requisicaoService{repo: repo, clienteRepo: clienteRepo, dispatcher: dispatcher}
}

// ── Criar ─────────────────────────────────────────────────────────────────────
// One atomic transaction: the batch row plus Quantidade senha rows, each with
// an independently generated unique code. Either all rows commit or none do.

func (s *requisicaoService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarRequisicaoSenhasRequest) (*dto.RequisicaoSenhasResponse, error) {
	if err := validarPagamento(req.Valor, req.FormaPagamento, req.Banco); err != nil {
		return nil, err
	}
	if req.Quantidade < 1 {
		return nil, apierror.NewInvalidInput("quantidade deve ser maior que zero")
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.NewInvalidInput("cliente_id invalido")
	}
	cliente, err := s.clienteRepo.FindByID(ctx, empresaID, clienteID)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "cliente", Ref: req.ClienteID}
	}

	// Pre-generate all codes outside the TX; the unique index still backstops.
	codigos, err := s.gerarCodigos(ctx, req.Quantidade)
	if err != nil {
		return nil, err
	}

	requisicao := model.RequisicaoSenhas{
		EmpresaID:      empresaID,
		ClienteID:      clienteID,
		Valor:          req.Valor,
		Quantidade:     req.Quantidade,
		FormaPagamento: req.FormaPagamento,
		Banco:          bancoPara(req.FormaPagamento, req.Banco),
		Estado:         model.EstadoAtivo,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &requisicao); err != nil {
			return err
		}
		senhas := make([]model.Senha, 0, len(codigos))
		for _, codigo := range codigos {
			senhas = append(senhas, model.Senha{
				EmpresaID:    empresaID,
				ClienteID:    clienteID,
				RequisicaoID: requisicao.ID,
				Codigo:       codigo,
			})
		}
		return s.repo.CreateSenhasTx(tx, senhas)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async recibo: best-effort, never blocks the issuance path.
	s.despacharRecibo(ctx, empresaID, requisicao.ID, cliente)

	requisicao.Cliente = cliente
	return s.paraResponse(ctx, &requisicao), nil
}

// ── Editar ────────────────────────────────────────────────────────────────────
// Append-only: a larger quantidade appends exactly the delta of new senhas
// under the same generation rule. Shrinking is not supported — there is no
// senha deletion path. Closed batches are immutable.

func (s *requisicaoService) Editar(ctx context.Context, empresaID, id uuid.UUID, req dto.EditarRequisicaoSenhasRequest) (*dto.RequisicaoSenhasResponse, error) {
	requisicao, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "requisicao", Ref: id.String()}
	}
	if !requisicao.PodeEditar() {
		return nil, &apierror.ClosedRecordError{Entidade: "requisicao de senhas"}
	}

	if req.Valor != nil {
		if !req.Valor.IsPositive() {
			return nil, apierror.NewInvalidInput("valor deve ser maior que zero")
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

	var novosCodigos []string
	if req.Quantidade != nil {
		if *req.Quantidade < requisicao.Quantidade {
			return nil, apierror.NewInvalidInput("quantidade nao pode ser reduzida")
		}
		delta := *req.Quantidade - requisicao.Quantidade
		if delta > 0 {
			novosCodigos, err = s.gerarCodigos(ctx, delta)
			if err != nil {
				return nil, err
			}
			requisicao.Quantidade = *req.Quantidade
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, requisicao); err != nil {
			return err
		}
		if len(novosCodigos) == 0 {
			return nil
		}
		senhas := make([]model.Senha, 0, len(novosCodigos))
		for _, codigo := range novosCodigos {
			senhas = append(senhas, model.Senha{
				EmpresaID:    empresaID,
				ClienteID:    requisicao.ClienteID,
				RequisicaoID: requisicao.ID,
				Codigo:       codigo,
			})
		}
		return s.repo.CreateSenhasTx(tx, senhas)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.ObterPorID(ctx, empresaID, id)
}

// ── Excluir ───────────────────────────────────────────────────────────────────
// Soft delete: estado flip. Closed batches are immutable.

func (s *requisicaoService) Excluir(ctx context.Context, empresaID, id uuid.UUID) error {
	requisicao, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return &apierror.NotFoundError{Entidade: "requisicao", Ref: id.String()}
	}
	if !requisicao.PodeEditar() {
		return &apierror.ClosedRecordError{Entidade: "requisicao de senhas"}
	}
	requisicao.Estado = model.EstadoDesativado
	return s.repo.Update(ctx, requisicao)
}

func (s *requisicaoService) ObterPorID(ctx context.Context, empresaID, id uuid.UUID) (*dto.RequisicaoSenhasResponse, error) {
	requisicao, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "requisicao", Ref: id.String()}
	}
	return s.paraResponse(ctx, requisicao), nil
}

func (s *requisicaoService) Listar(ctx context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) (*dto.RequisicaoSenhasListResponse, error) {
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
	items := make([]dto.RequisicaoSenhasResponse, 0, len(reqs))
	for i := range reqs {
		items = append(items, *s.paraResponse(ctx, &reqs[i]))
	}
	return &dto.RequisicaoSenhasListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ListarSenhas returns the flat senha list of a batch, for the CSV export.
func (s *requisicaoService) ListarSenhas(ctx context.Context, empresaID, id uuid.UUID) ([]dto.SenhaResponse, error) {
	if _, err := s.repo.FindByID(ctx, empresaID, id); err != nil {
		return nil, &apierror.NotFoundError{Entidade: "requisicao", Ref: id.String()}
	}
	senhas, err := s.repo.ListSenhas(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SenhaResponse, 0, len(senhas))
	for _, senha := range senhas {
		out = append(out, senhaParaResponse(senha))
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *requisicaoService) gerarCodigos(ctx context.Context, n int) ([]string, error) {
	codigos := make([]string, 0, n)
	vistos := make(map[string]bool, n)
	existe := func(ctx context.Context, codigo string) (bool, error) {
		if vistos[codigo] {
			return true, nil
		}
		return s.repo.CodigoSenhaExiste(ctx, codigo)
	}
	for i := 0; i < n; i++ {
		codigo, err := GerarCodigoUnico(ctx, existe)
		if err != nil {
			return nil, err
		}
		vistos[codigo] = true
		codigos = append(codigos, codigo)
	}
	return codigos, nil
}

func (s *requisicaoService) despacharRecibo(ctx context.Context, empresaID, requisicaoID uuid.UUID, cliente *model.Cliente) {
	if s.dispatcher == nil {
		return
	}
	payload := map[string]interface{}{
		"tipo":          "senhas",
		"empresa_id":    empresaID.String(),
		"requisicao_id": requisicaoID.String(),
	}
	if cliente != nil && cliente.Email != nil && *cliente.Email != "" {
		payload["cliente_email"] = *cliente.Email
	}
	_ = s.dispatcher.EnqueueRecibo(ctx, payload)
}

func (s *requisicaoService) paraResponse(ctx context.Context, r *model.RequisicaoSenhas) *dto.RequisicaoSenhasResponse {
	restantes, _ := s.repo.CountSenhasNaoUsadas(ctx, r.ID)

	resp := &dto.RequisicaoSenhasResponse{
		ID:              r.ID.String(),
		ClienteID:       r.ClienteID.String(),
		Valor:           r.Valor,
		Quantidade:      r.Quantidade,
		FormaPagamento:  r.FormaPagamento,
		Banco:           r.Banco,
		Estado:          r.Estado,
		SenhasRestantes: int(restantes),
		CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if r.Cliente != nil {
		resp.ClienteNome = r.Cliente.Nome
	}
	if r.DataConclusao != nil {
		t := r.DataConclusao.Format("2006-01-02T15:04:05Z")
		resp.DataConclusao = &t
	}
	if r.FechoID != nil {
		f := r.FechoID.String()
		resp.FechoID = &f
	}
	for _, senha := range r.Senhas {
		resp.Senhas = append(resp.Senhas, senhaParaResponse(senha))
	}
	return resp
}

func senhaParaResponse(s model.Senha) dto.SenhaResponse {
	resp := dto.SenhaResponse{
		ID:              s.ID.String(),
		Codigo:          s.Codigo,
		Usada:           s.Usada,
		TipoCombustivel: s.TipoCombustivel,
	}
	if s.DataUso != nil {
		t := s.DataUso.Format("2006-01-02T15:04:05Z")
		resp.DataUso = &t
	}
	if s.FechoID != nil {
		f := s.FechoID.String()
		resp.FechoID = &f
	}
	return resp
}

// validarPagamento runs the shared issuance validation: positive amount,
// known payment method, banco present iff transferencia.
func validarPagamento(valor decimal.Decimal, formaPagamento string, banco *string) error {
	if !valor.IsPositive() {
		return apierror.NewInvalidInput("valor deve ser maior que zero")
	}
	if !model.FormaPagamentoValida(formaPagamento) {
		return apierror.NewInvalidInput("forma de pagamento invalida: %s", formaPagamento)
	}
	if formaPagamento == model.PagamentoTransferencia && (banco == nil || *banco == "") {
		return apierror.NewInvalidInput("banco e obrigatorio para pagamento por transferencia")
	}
	return nil
}

func bancoPara(formaPagamento string, banco *string) *string {
	if formaPagamento == model.PagamentoTransferencia {
		return banco
	}
	return nil
}
