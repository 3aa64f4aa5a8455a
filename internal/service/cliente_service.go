package service

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarClienteRequest) (*dto.ClienteResponse, error)
	Atualizar(ctx context.Context, empresaID, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error)
	Excluir(ctx context.Context, empresaID, id uuid.UUID) error
	ObterPorID(ctx context.Context, empresaID, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo       repository.ClienteRepository
	senhasRepo repository.RequisicaoSenhasRepository
	saldoRepo  repository.RequisicaoSaldoRepository
}

func NewClienteService(
	repo repository.ClienteRepository,
	senhasRepo repository.RequisicaoSenhasRepository,
	saldoRepo repository.RequisicaoSaldoRepository,
) ClienteService {
	return &clienteService{repo: repo, senhasRepo: senhasRepo, saldoRepo: saldoRepo}
}

func (s *clienteService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		EmpresaID: empresaID,
		Nome:      req.Nome,
		Email:     req.Email,
		Telefone:  req.Telefone,
		Endereco:  req.Endereco,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteParaResponse(cliente), nil
}

func (s *clienteService) Atualizar(ctx context.Context, empresaID, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "cliente", Ref: id.String()}
	}
	if req.Nome != "" {
		cliente.Nome = req.Nome
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Telefone != nil {
		cliente.Telefone = req.Telefone
	}
	if req.Endereco != nil {
		cliente.Endereco = req.Endereco
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteParaResponse(cliente), nil
}

// Excluir hard-deletes a cliente, allowed only while no active requisitions of
// either kind exist for it.
func (s *clienteService) Excluir(ctx context.Context, empresaID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, empresaID, id); err != nil {
		return &apierror.NotFoundError{Entidade: "cliente", Ref: id.String()}
	}

	senhas, err := s.senhasRepo.CountAtivasPorCliente(ctx, empresaID, id)
	if err != nil {
		return err
	}
	saldo, err := s.saldoRepo.CountAtivasPorCliente(ctx, empresaID, id)
	if err != nil {
		return err
	}
	if senhas+saldo > 0 {
		return apierror.NewInvalidInput("cliente possui requisicoes ativas e nao pode ser excluido")
	}
	return s.repo.Delete(ctx, empresaID, id)
}

func (s *clienteService) ObterPorID(ctx context.Context, empresaID, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "cliente", Ref: id.String()}
	}
	return clienteParaResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = *clienteParaResponse(&clientes[i])
	}
	return resp, nil
}

func clienteParaResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Email:     c.Email,
		Telefone:  c.Telefone,
		Endereco:  c.Endereco,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
