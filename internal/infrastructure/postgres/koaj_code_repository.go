package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/internal/domain/repository"
)

var _ repository.KoajCodeRepository = (*KoajCodeRepo)(nil)

const koajColumns = `id, code, category, COALESCE(description, ''), applies_to, is_active, created_at, updated_at`

// KoajCodeRepo catálogo de códigos KOAJ en PostgreSQL.
type KoajCodeRepo struct {
	db querier
}

// NewKoajCodeRepository construye el adaptador.
func NewKoajCodeRepository(db querier) *KoajCodeRepo {
	return &KoajCodeRepo{db: db}
}

// List aplica los filtros y ordena por el valor numérico del código.
func (r *KoajCodeRepo) List(ctx context.Context, f repository.KoajCodeFilter) ([]*entity.KoajCode, error) {
	query, args := listKoajQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list koaj codes: %w", err)
	}
	defer rows.Close()
	var list []*entity.KoajCode
	for rows.Next() {
		c, err := scanKoaj(rows)
		if err != nil {
			return nil, fmt.Errorf("scan koaj code: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// listKoajQuery arma el SELECT con placeholders en orden.
func listKoajQuery(f repository.KoajCodeFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.OnlyActive {
		where = append(where, "is_active = TRUE")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(code ILIKE $%d OR category ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if f.AppliesTo != "" {
		args = append(args, f.AppliesTo)
		where = append(where, fmt.Sprintf("(applies_to = $%d OR applies_to = 'todos')", len(args)))
	}
	q := `SELECT ` + koajColumns + ` FROM koaj_codes`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	return q + " ORDER BY code::bigint", args
}

// GetByID (nil, nil) si no existe.
func (r *KoajCodeRepo) GetByID(ctx context.Context, id int64) (*entity.KoajCode, error) {
	return r.getOne(ctx, `SELECT `+koajColumns+` FROM koaj_codes WHERE id = $1`, id)
}

// GetByCode (nil, nil) si no existe.
func (r *KoajCodeRepo) GetByCode(ctx context.Context, code string) (*entity.KoajCode, error) {
	return r.getOne(ctx, `SELECT `+koajColumns+` FROM koaj_codes WHERE code = $1`, code)
}

// Create inserta y completa el ID generado.
func (r *KoajCodeRepo) Create(ctx context.Context, c *entity.KoajCode) error {
	query := `
		INSERT INTO koaj_codes (code, category, description, applies_to, is_active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		c.Code, c.Category, c.Description, c.AppliesTo, c.IsActive, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return wrapWrite("insert koaj code", err)
	}
	return nil
}

// Update reemplaza todos los campos editables.
func (r *KoajCodeRepo) Update(ctx context.Context, c *entity.KoajCode) error {
	query := `
		UPDATE koaj_codes SET code = $2, category = $3, description = NULLIF($4, ''),
			applies_to = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Code, c.Category, c.Description, c.AppliesTo, c.IsActive, c.UpdatedAt,
	)
	return affectedOne("update koaj code", tag, err)
}

func (r *KoajCodeRepo) getOne(ctx context.Context, query string, arg any) (*entity.KoajCode, error) {
	c, err := scanKoaj(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get koaj code: %w", err)
	}
	return c, nil
}

func scanKoaj(row pgx.Row) (*entity.KoajCode, error) {
	var c entity.KoajCode
	if err := row.Scan(&c.ID, &c.Code, &c.Category, &c.Description, &c.AppliesTo, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
