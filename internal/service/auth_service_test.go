package service_test

import (
	"context"
	"errors"
	"testing"

	"bymen/internal/config"
	"bymen/internal/dto"
	"bymen/internal/model"
	"bymen/internal/repository"
	"bymen/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUsuarioRepo struct {
	usuarios map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.Username] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	u, ok := r.usuarios[username]
	if !ok || !u.Ativo {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id && u.Ativo {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func buildAuthSvc(t *testing.T) (service.AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.Usuario{
		ID:           uuid.New(),
		Username:     "joao@bymen.com.br",
		Nome:         "João",
		PasswordHash: string(hash),
		Ativo:        true,
	}))

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func TestLogin(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "joao@bymen.com.br",
		Password: "segredo123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "João", resp.User.Nome)
}

func TestLogin_SenhaErrada(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "joao@bymen.com.br",
		Password: "errada",
	})
	assert.ErrorContains(t, err, "credenciais inválidas")
}

func TestLogin_UsuarioInativo(t *testing.T) {
	svc, repo := buildAuthSvc(t)
	repo.usuarios["joao@bymen.com.br"].Ativo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "joao@bymen.com.br",
		Password: "segredo123",
	})
	assert.ErrorContains(t, err, "credenciais inválidas")
}

func TestRefresh(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "joao@bymen.com.br",
		Password: "segredo123",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, login.User.ID, renovado.User.ID)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc, _ := buildAuthSvc(t)

	_, err := svc.Refresh(context.Background(), "nao-e-um-jwt")
	assert.ErrorContains(t, err, "inválido")
}
