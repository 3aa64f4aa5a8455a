package service

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/middleware"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
)

// EmpresaService is the tenant scope resolver: given the authenticated
// principal's claims it returns the owning empresa. Gerentes resolve through
// the empresa they manage, funcionarios through their employment record.
// Every other service takes the resolved empresa id as an input — nothing
// downstream re-derives tenant scope.
type EmpresaService interface {
	Resolver(ctx context.Context, claims *middleware.JWTClaims) (uuid.UUID, error)
	// ResolverFuncionario additionally returns the employment record; only
	// funcionario principals can redeem.
	ResolverFuncionario(ctx context.Context, claims *middleware.JWTClaims) (uuid.UUID, *model.Funcionario, error)
}

type empresaService struct {
	empresaRepo     repository.EmpresaRepository
	funcionarioRepo repository.FuncionarioRepository
}

func NewEmpresaService(
	empresaRepo repository.EmpresaRepository,
	funcionarioRepo repository.FuncionarioRepository,
) EmpresaService {
	return &empresaService{empresaRepo: empresaRepo, funcionarioRepo: funcionarioRepo}
}

func (s *empresaService) Resolver(ctx context.Context, claims *middleware.JWTClaims) (uuid.UUID, error) {
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apierror.NewInvalidInput("token mal formado")
	}

	switch claims.Rol {
	case model.RolGerente:
		empresa, err := s.empresaRepo.FindByGerenteID(ctx, usuarioID)
		if err != nil {
			return uuid.Nil, &apierror.NotFoundError{Entidade: "empresa", Ref: claims.Username}
		}
		return empresa.ID, nil
	case model.RolFuncionario:
		funcionario, err := s.funcionarioRepo.FindByUsuarioID(ctx, usuarioID)
		if err != nil {
			return uuid.Nil, &apierror.NotFoundError{Entidade: "funcionario", Ref: claims.Username}
		}
		return funcionario.EmpresaID, nil
	default:
		return uuid.Nil, apierror.NewInvalidInput("rol desconhecido: %s", claims.Rol)
	}
}

func (s *empresaService) ResolverFuncionario(ctx context.Context, claims *middleware.JWTClaims) (uuid.UUID, *model.Funcionario, error) {
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, nil, apierror.NewInvalidInput("token mal formado")
	}
	funcionario, err := s.funcionarioRepo.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return uuid.Nil, nil, &apierror.NotFoundError{Entidade: "funcionario", Ref: claims.Username}
	}
	return funcionario.EmpresaID, funcionario, nil
}
