package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

type memUsers struct {
	byID map[string]*entity.User
	err  error
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if m.err != nil {
		return m.err
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) EmailTaken(_ context.Context, email, exceptID string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) RecordLoginFailure(_ context.Context, id string, attempts int, lockedUntil *time.Time) error {
	u := m.byID[id]
	u.FailedLoginAttempts = attempts
	u.LockedUntil = lockedUntil
	return nil
}

func (m *memUsers) RecordLoginSuccess(_ context.Context, id string) error {
	u := m.byID[id]
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func seller(t *testing.T) *entity.User {
	return &entity.User{
		ID: "u-1", Email: "vendedor@tienda.co", PasswordHash: mustHash(t, "Clave1234"),
		Name: "Vendedor", Role: entity.RoleSales, IsActive: true,
	}
}

var fixedNow = time.Date(2025, 11, 6, 10, 0, 0, 0, time.UTC)

func newAuth(repo *memUsers) *AuthUseCase {
	uc := NewAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"},
		LockoutPolicy{MaxAttempts: 3, Duration: 15 * time.Minute}, zerolog.Nop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestLogin_Exitoso(t *testing.T) {
	repo := newMemUsers(seller(t))
	repo.byID["u-1"].FailedLoginAttempts = 2
	uc := newAuth(repo)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  Vendedor@Tienda.co ", Password: "Clave1234"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "sales", out.User.Role)
	assert.Zero(t, repo.byID["u-1"].FailedLoginAttempts)

	id, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "sales", id.Role)
}

func TestLogin_BloqueoPorIntentos(t *testing.T) {
	repo := newMemUsers(seller(t))
	uc := newAuth(repo)
	bad := dto.LoginRequest{Email: "vendedor@tienda.co", Password: "Incorrecta1"}

	for i := 1; i < 3; i++ {
		_, err := uc.Login(context.Background(), bad)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, i, repo.byID["u-1"].FailedLoginAttempts)
	}
	_, err := uc.Login(context.Background(), bad)
	require.ErrorIs(t, err, domain.ErrAccountLocked)
	require.NotNil(t, repo.byID["u-1"].LockedUntil)
	assert.Equal(t, fixedNow.Add(15*time.Minute), *repo.byID["u-1"].LockedUntil)

	// bloqueada incluso con la contraseña correcta
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "vendedor@tienda.co", Password: "Clave1234"})
	assert.ErrorIs(t, err, domain.ErrAccountLocked)

	// vencido el bloqueo vuelve a entrar
	uc.now = func() time.Time { return fixedNow.Add(16 * time.Minute) }
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "vendedor@tienda.co", Password: "Clave1234"})
	assert.NoError(t, err)
}

func TestLogin_Rechazos(t *testing.T) {
	inactive := seller(t)
	inactive.IsActive = false
	uc := newAuth(newMemUsers(inactive))

	cases := []struct {
		name string
		in   dto.LoginRequest
		want error
	}{
		{"sin datos", dto.LoginRequest{}, domain.ErrValidation},
		{"email inválido", dto.LoginRequest{Email: "no-es-email", Password: "Clave1234"}, domain.ErrValidation},
		{"password corta", dto.LoginRequest{Email: "vendedor@tienda.co", Password: "abc"}, domain.ErrValidation},
		{"usuario inexistente", dto.LoginRequest{Email: "otro@tienda.co", Password: "Clave1234"}, domain.ErrUnauthorized},
		{"inactivo", dto.LoginRequest{Email: "vendedor@tienda.co", Password: "Clave1234"}, domain.ErrAccountInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestVerify(t *testing.T) {
	uc := newAuth(newMemUsers())
	tok, err := jwt.Generate(testSecret, "u-9", "a@b.co", entity.RoleAdmin, "test", 5)
	require.NoError(t, err)

	v, err := uc.Verify(tok)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "admin", v.Role)

	_, err = uc.Verify(tok + "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("password", "Segura123"))
	for _, pw := range []string{"Ab1", "sinmayuscula1", "SINMINUSCULA1", "SinNumeros"} {
		err := validatePassword("password", pw)
		assert.ErrorIs(t, err, domain.ErrValidation, pw)
	}
}

func TestUsers_CrearYDuplicado(t *testing.T) {
	repo := newMemUsers(seller(t))
	uc := NewUserUseCase(repo, zerolog.Nop())

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email: "Admin@Tienda.co", Password: "Segura123", Name: " Admin ", Role: "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@tienda.co", out.Email)
	assert.Equal(t, "Admin", out.Name)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.True(t, out.IsActive)
	require.Contains(t, repo.byID, out.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byID[out.ID].PasswordHash), []byte("Segura123")))

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{
		Email: "vendedor@tienda.co", Password: "Segura123", Name: "Otro", Role: "sales",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{
		Email: "x@tienda.co", Password: "Segura123", Name: "X", Role: "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUsers_ActualizarYDesactivar(t *testing.T) {
	other := &entity.User{ID: "u-2", Email: "otro@tienda.co", Role: entity.RoleSales, IsActive: true}
	repo := newMemUsers(seller(t), other)
	uc := NewUserUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	taken := "otro@tienda.co"
	_, err := uc.Update(ctx, "u-1", dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	role := "admin"
	out, err := uc.Update(ctx, "u-1", dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, "vendedor@tienda.co", out.Email)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Deactivate(ctx, "u-1", "u-1"), domain.ErrValidation)
	require.NoError(t, uc.Deactivate(ctx, "u-2", "u-1"))
	assert.False(t, repo.byID["u-2"].IsActive)
}

func TestUsers_CambioYReseteoDeClave(t *testing.T) {
	repo := newMemUsers(seller(t))
	uc := NewUserUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	err := uc.ChangePassword(ctx, "u-1", dto.ChangePasswordRequest{CurrentPassword: "Mala1234", NewPassword: "Nueva1234"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, uc.ChangePassword(ctx, "u-1", dto.ChangePasswordRequest{CurrentPassword: "Clave1234", NewPassword: "Nueva1234"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byID["u-1"].PasswordHash), []byte("Nueva1234")))

	locked := fixedNow.Add(time.Hour)
	repo.byID["u-1"].FailedLoginAttempts = 5
	repo.byID["u-1"].LockedUntil = &locked
	require.NoError(t, uc.ResetPassword(ctx, "u-1", dto.ResetPasswordRequest{NewPassword: "Reset1234"}))
	assert.Zero(t, repo.byID["u-1"].FailedLoginAttempts)
	assert.Nil(t, repo.byID["u-1"].LockedUntil)

	err = uc.ResetPassword(ctx, "u-1", dto.ResetPasswordRequest{NewPassword: "debil"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUsers_EnsureAdmin(t *testing.T) {
	repo := newMemUsers(seller(t))
	uc := NewUserUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "Admin@Tienda.co", "Administrador", "Admin1234")
	require.NoError(t, err)
	assert.True(t, created)
	admin, _ := repo.GetByEmail(ctx, "admin@tienda.co")
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	// el vendedor existente pasa a admin con la nueva clave
	repo.byID["u-1"].IsActive = false
	created, err = uc.EnsureAdmin(ctx, "vendedor@tienda.co", "", "Otra12345")
	require.NoError(t, err)
	assert.False(t, created)
	u := repo.byID["u-1"]
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, "Vendedor", u.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Otra12345")))
}
