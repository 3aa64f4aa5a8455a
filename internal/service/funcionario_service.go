package service

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type FuncionarioService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	Atualizar(ctx context.Context, empresaID, id uuid.UUID, req dto.AtualizarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	Desativar(ctx context.Context, empresaID, id uuid.UUID) error
	Reativar(ctx context.Context, empresaID, id uuid.UUID) error
	Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.FuncionarioResponse, error)
}

type funcionarioService struct {
	repo        repository.FuncionarioRepository
	usuarioRepo repository.UsuarioRepository
}

func NewFuncionarioService(
	repo repository.FuncionarioRepository,
	usuarioRepo repository.UsuarioRepository,
) FuncionarioService {
	return &funcionarioService{repo: repo, usuarioRepo: usuarioRepo}
}

// Criar creates the login principal and the employment record in one
// transaction — an orphaned usuario without funcionario would be able to log
// in but resolve no tenant.
func (s *funcionarioService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	usuario := model.Usuario{
		Username:     req.Username,
		Nome:         req.Nome,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          model.RolFuncionario,
		Estado:       model.EstadoAtivo,
	}
	funcionario := model.Funcionario{
		EmpresaID: empresaID,
		Nome:      req.Nome,
		Telefone:  req.Telefone,
		Estado:    model.EstadoAtivo,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.usuarioRepo.CreateTx(tx, &usuario); err != nil {
			return err
		}
		funcionario.UsuarioID = usuario.ID
		return s.repo.CreateTx(tx, &funcionario)
	})
	if txErr != nil {
		return nil, txErr
	}

	funcionario.Usuario = &usuario
	return funcionarioParaResponse(&funcionario), nil
}

func (s *funcionarioService) Atualizar(ctx context.Context, empresaID, id uuid.UUID, req dto.AtualizarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	funcionario, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Entidade: "funcionario", Ref: id.String()}
	}

	if req.Nome != "" {
		funcionario.Nome = req.Nome
	}
	if req.Telefone != nil {
		funcionario.Telefone = req.Telefone
	}
	if err := s.repo.Update(ctx, funcionario); err != nil {
		return nil, err
	}

	if funcionario.Usuario != nil && (req.Nome != "" || req.Email != nil || req.Password != "") {
		usuario := funcionario.Usuario
		if req.Nome != "" {
			usuario.Nome = req.Nome
		}
		if req.Email != nil {
			usuario.Email = req.Email
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
			if err != nil {
				return nil, err
			}
			usuario.PasswordHash = string(hash)
		}
		if err := s.usuarioRepo.Update(ctx, usuario); err != nil {
			return nil, err
		}
	}

	return funcionarioParaResponse(funcionario), nil
}

// Desativar is a soft flip — funcionarios are never hard-deleted because
// redeemed senhas and movimentos reference them.
func (s *funcionarioService) Desativar(ctx context.Context, empresaID, id uuid.UUID) error {
	return s.mudarEstado(ctx, empresaID, id, model.EstadoDesativado)
}

func (s *funcionarioService) Reativar(ctx context.Context, empresaID, id uuid.UUID) error {
	return s.mudarEstado(ctx, empresaID, id, model.EstadoAtivo)
}

func (s *funcionarioService) mudarEstado(ctx context.Context, empresaID, id uuid.UUID, estado string) error {
	funcionario, err := s.repo.FindByID(ctx, empresaID, id)
	if err != nil {
		return &apierror.NotFoundError{Entidade: "funcionario", Ref: id.String()}
	}
	funcionario.Estado = estado
	if err := s.repo.Update(ctx, funcionario); err != nil {
		return err
	}
	if funcionario.Usuario != nil {
		funcionario.Usuario.Estado = estado
		return s.usuarioRepo.Update(ctx, funcionario.Usuario)
	}
	return nil
}

func (s *funcionarioService) Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.FuncionarioResponse, error) {
	funcionarios, err := s.repo.List(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FuncionarioResponse, len(funcionarios))
	for i := range funcionarios {
		resp[i] = *funcionarioParaResponse(&funcionarios[i])
	}
	return resp, nil
}

func funcionarioParaResponse(f *model.Funcionario) *dto.FuncionarioResponse {
	resp := &dto.FuncionarioResponse{
		ID:       f.ID.String(),
		Nome:     f.Nome,
		Telefone: f.Telefone,
		Estado:   f.Estado,
	}
	if f.Usuario != nil {
		resp.Username = f.Usuario.Username
		resp.Email = f.Usuario.Email
	}
	return resp
}
