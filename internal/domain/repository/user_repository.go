package repository

import (
	"context"
	"time"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de búsqueda devuelven (nil, nil) cuando no hay registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// EmailTaken indica si otro usuario (distinto de exceptID) ya usa el email.
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	// RecordLoginFailure incrementa el contador y opcionalmente fija el bloqueo.
	RecordLoginFailure(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error
	// RecordLoginSuccess reinicia contador y bloqueo y marca last_login.
	RecordLoginSuccess(ctx context.Context, id string) error
}
