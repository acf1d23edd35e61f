package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, role, is_active,
	failed_login_attempts, locked_until, last_login, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db querier
}

// NewUserRepository construye el adaptador; acepta el pool o una transacción.
func NewUserRepository(db querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail busca por email ya normalizado a minúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

// Update guarda datos de perfil, contraseña y estado de bloqueo.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, role = $5, is_active = $6,
			failed_login_attempts = $7, locked_until = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive,
		u.FailedLoginAttempts, u.LockedUntil, u.UpdatedAt,
	)
	return affectedOne("update user", tag, err)
}

// List usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// EmailTaken indica si otro usuario ya usa el email.
func (r *UserRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id::text <> $2)`,
		email, exceptID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("email taken: %w", err)
	}
	return taken, nil
}

// RecordLoginFailure guarda el contador de fallos y el bloqueo si aplica.
func (r *UserRepo) RecordLoginFailure(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET failed_login_attempts = $2, locked_until = $3, updated_at = now() WHERE id = $1`,
		id, attempts, lockedUntil,
	)
	return affectedOne("record login failure", tag, err)
}

// RecordLoginSuccess limpia contador y bloqueo y marca last_login.
func (r *UserRepo) RecordLoginSuccess(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET failed_login_attempts = 0, locked_until = NULL, last_login = now() WHERE id = $1`,
		id,
	)
	return affectedOne("record login success", tag, err)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive,
		&u.FailedLoginAttempts, &u.LockedUntil, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
