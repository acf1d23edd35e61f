package repository

import (
	"context"

	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
)

// KoajCodeFilter filtros de listado.
type KoajCodeFilter struct {
	OnlyActive bool
	Search     string // código, categoría o descripción
	AppliesTo  string
}

// KoajCodeRepository puerto de persistencia del catálogo de códigos KOAJ.
type KoajCodeRepository interface {
	List(ctx context.Context, f KoajCodeFilter) ([]*entity.KoajCode, error)
	GetByID(ctx context.Context, id int64) (*entity.KoajCode, error)
	GetByCode(ctx context.Context, code string) (*entity.KoajCode, error)
	Create(ctx context.Context, c *entity.KoajCode) error
	Update(ctx context.Context, c *entity.KoajCode) error
}
