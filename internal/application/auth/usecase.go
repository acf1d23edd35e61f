// Package auth implementa el login con bloqueo por intentos fallidos y la
// administración de usuarios del panel.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/internal/domain/repository"
	"github.com/jhoicas/alegra-reports-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LockoutPolicy intentos permitidos antes de bloquear y duración del bloqueo.
type LockoutPolicy struct {
	MaxAttempts int
	Duration    time.Duration
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	lockout  LockoutPolicy
	now      func() time.Time
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, lockout LockoutPolicy, log zerolog.Logger) *AuthUseCase {
	if lockout.MaxAttempts <= 0 {
		lockout.MaxAttempts = 5
	}
	if lockout.Duration <= 0 {
		lockout.Duration = 15 * time.Minute
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, lockout: lockout, now: time.Now, log: log}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Cada fallo incrementa el contador; al llegar al máximo la cuenta queda bloqueada.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("", "email y contraseña son requeridos")
	}
	if !validEmail(email) {
		return nil, domain.Invalid("email", "formato de email inválido")
	}
	if n := len(in.Password); n < minPasswordLen || n > maxPasswordLen {
		return nil, domain.Invalid("password", "la contraseña debe tener entre %d y %d caracteres", minPasswordLen, maxPasswordLen)
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		uc.log.Warn().Str("email", email).Msg("login: usuario no existe")
		return nil, fmt.Errorf("credenciales incorrectas: %w", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	now := uc.now()
	if user.IsLocked(now) {
		uc.log.Warn().Str("email", email).Msg("login: cuenta bloqueada")
		return nil, domain.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		attempts := user.FailedLoginAttempts + 1
		var until *time.Time
		if attempts >= uc.lockout.MaxAttempts {
			t := now.Add(uc.lockout.Duration)
			until = &t
		}
		if err := uc.userRepo.RecordLoginFailure(ctx, user.ID, attempts, until); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		if until != nil {
			uc.log.Warn().Str("email", email).Int("attempts", attempts).Msg("login: cuenta bloqueada por intentos fallidos")
			return nil, fmt.Errorf("cuenta bloqueada por %d minutos debido a múltiples intentos fallidos: %w",
				int(uc.lockout.Duration.Minutes()), domain.ErrAccountLocked)
		}
		uc.log.Warn().Str("email", email).Int("attempts", attempts).Msg("login: contraseña incorrecta")
		return nil, fmt.Errorf("credenciales incorrectas (%d/%d intentos): %w", attempts, uc.lockout.MaxAttempts, domain.ErrUnauthorized)
	}

	if err := uc.userRepo.RecordLoginSuccess(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("email", email).Str("role", user.Role).Msg("login exitoso")
	user.LastLogin = &now
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User:    *toUserResponse(user),
	}, nil
}

// Verify valida el token y devuelve sus claims.
func (uc *AuthUseCase) Verify(token string) (*dto.VerifyResponse, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.VerifyResponse{
		Valid:     true,
		UserID:    id.UserID,
		Email:     id.Email,
		Role:      id.Role,
		ExpiresAt: id.ExpiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
