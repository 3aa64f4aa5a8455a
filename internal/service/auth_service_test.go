package service

import (
	"context"
	"testing"
	"time"

	"github.com/AyushManoj111/Engen/internal/config"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now().UTC()
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) CreateTx(_ *gorm.DB, u *model.Usuario) error {
	return r.Create(context.Background(), u)
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "segredo-de-teste",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(repo *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		Username:     username,
		Nome:         "Usuario Teste",
		PasswordHash: string(hash),
		Rol:          rol,
		Estado:       model.EstadoAtivo,
	}
	repo.usuarios[u.ID] = u
	return u
}

func TestLogin_CredenciaisCorretas(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "gerente@engen.co.mz", "1234", model.RolGerente)
	svc := NewAuthService(repo, authConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente@engen.co.mz",
		Password: "1234",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, model.RolGerente, resp.User.Rol)
}

func TestLogin_PasswordErrada(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "gerente@engen.co.mz", "1234", model.RolGerente)
	svc := NewAuthService(repo, authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente@engen.co.mz",
		Password: "errada",
	})
	require.Error(t, err)
	assert.Equal(t, "credenciais invalidas", err.Error())
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ninguem",
		Password: "1234",
	})
	require.Error(t, err)
	assert.Equal(t, "credenciais invalidas", err.Error())
}

func TestRefresh_TokenValidoRenova(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "func@engen.co.mz", "1234", model.RolFuncionario)
	svc := NewAuthService(repo, authConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "func@engen.co.mz",
		Password: "1234",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, login.User.ID, renovado.User.ID)
}

func TestRefresh_UsuarioDesativadoRejeitado(t *testing.T) {
	repo := newStubUsuarioRepo()
	usuario := seedUsuario(repo, "func@engen.co.mz", "1234", model.RolFuncionario)
	svc := NewAuthService(repo, authConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "func@engen.co.mz",
		Password: "1234",
	})
	require.NoError(t, err)

	usuario.Estado = model.EstadoDesativado

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestRefresh_TokenAdulteradoRejeitado(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authConfig())

	_, err := svc.Refresh(context.Background(), "nao.e.um.jwt")
	require.Error(t, err)
}
