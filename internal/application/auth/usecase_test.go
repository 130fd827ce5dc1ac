package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	pkgjwt "github.com/chainsync/chainsync-lite/pkg/jwt"
)

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func newTestAuthUC() *AuthUseCase {
	return NewAuthUseCase(newMemUserRepo(), JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "chainsync-lite-test",
	})
}

func TestRegister_YLogin(t *testing.T) {
	uc := newTestAuthUC()
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterRequest{
		Email:    "  Ana@Tienda.com ",
		Password: "secreto-largo",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.com", user.Email, "email normalizado")
	assert.NotEmpty(t, user.ID)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@tienda.com", Password: "secreto-largo"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	// El token lleva el ID del usuario como OwnerID.
	ownerID, err := pkgjwt.Parse("test-secret-key-for-unit-tests", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ownerID)
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newTestAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "sin-arroba", Password: "secreto-largo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newTestAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@tienda.com", Password: "secreto-largo"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ANA@tienda.com", Password: "otro-secreto"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newTestAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@tienda.com", Password: "secreto-largo"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@tienda.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.com", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
