package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin, salvo ChangePassword).
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now, log: log}
}

// List usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// Get un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Create valida y crea un usuario activo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	role := strings.ToLower(strings.TrimSpace(in.Role))
	switch {
	case email == "" || name == "" || role == "" || in.Password == "":
		return nil, domain.Invalid("", "email, password, name y role son requeridos")
	case !validEmail(email):
		return nil, domain.Invalid("email", "formato de email inválido")
	case !entity.ValidRole(role):
		return nil, domain.Invalid("role", "rol inválido, use admin o sales")
	}
	hash, err := HashPassword("password", in.Password)
	if err != nil {
		return nil, err
	}
	taken, err := uc.repo.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("el email ya está registrado: %w", domain.ErrDuplicate)
	}

	now := uc.now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	uc.log.Info().Str("user_id", u.ID).Str("email", email).Str("role", role).Msg("usuario creado")
	return toUserResponse(u), nil
}

// Update aplica solo los campos presentes.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, domain.Invalid("email", "formato de email inválido")
		}
		taken, err := uc.repo.EmailTaken(ctx, email, u.ID)
		if err != nil {
			return nil, fmt.Errorf("actualizar usuario: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("el email ya está en uso: %w", domain.ErrDuplicate)
		}
		u.Email = email
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil && strings.TrimSpace(*in.Role) != "" {
		role := strings.ToLower(strings.TrimSpace(*in.Role))
		if !entity.ValidRole(role) {
			return nil, domain.Invalid("role", "rol inválido, use admin o sales")
		}
		u.Role = role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Password != nil {
		hash, err := HashPassword("password", *in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("actualizar usuario: %w", err)
	}
	return toUserResponse(u), nil
}

// Deactivate desactiva un usuario (borrado lógico). Nadie puede desactivarse a sí mismo.
func (uc *UserUseCase) Deactivate(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return domain.Invalid("id", "no puede desactivar su propia cuenta")
	}
	u, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	u.IsActive = false
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("desactivar usuario: %w", err)
	}
	uc.log.Info().Str("user_id", id).Str("by", actorID).Msg("usuario desactivado")
	return nil
}

// ChangePassword cambia la contraseña propia verificando la actual.
func (uc *UserUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return domain.Invalid("", "current_password y new_password son requeridos")
	}
	u, err := uc.find(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return domain.Invalid("current_password", "contraseña actual incorrecta")
	}
	return uc.setPassword(ctx, u, in.NewPassword)
}

// ResetPassword un admin fija la contraseña de otro usuario y lo desbloquea.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.ResetPasswordRequest) error {
	u, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	return uc.setPassword(ctx, u, in.NewPassword)
}

// EnsureAdmin crea el administrador inicial o, si el email ya existe, le fija
// la contraseña, el rol admin y lo reactiva. Devuelve true si lo creó.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, email, name, password string) (bool, error) {
	u, err := uc.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("buscar %s: %w", email, err)
	}
	if u == nil {
		_, err := uc.Create(ctx, dto.CreateUserRequest{
			Email: email, Password: password, Name: name, Role: entity.RoleAdmin,
		})
		return err == nil, err
	}
	u.Role = entity.RoleAdmin
	u.IsActive = true
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	if n := strings.TrimSpace(name); n != "" {
		u.Name = n
	}
	return false, uc.setPassword(ctx, u, password)
}

func (uc *UserUseCase) setPassword(ctx context.Context, u *entity.User, pw string) error {
	hash, err := HashPassword("new_password", pw)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("cambiar contraseña: %w", err)
	}
	uc.log.Info().Str("user_id", u.ID).Msg("contraseña actualizada")
	return nil
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usuario %s: %w", id, err)
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
