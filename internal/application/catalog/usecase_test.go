package catalog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/internal/domain/repository"
)

type memCodes struct {
	rows    map[int64]*entity.KoajCode
	next    int64
	filters []repository.KoajCodeFilter
}

func newMemCodes(codes ...*entity.KoajCode) *memCodes {
	m := &memCodes{rows: map[int64]*entity.KoajCode{}}
	for _, c := range codes {
		m.next++
		c.ID = m.next
		m.rows[c.ID] = c
	}
	return m
}

func (m *memCodes) List(_ context.Context, f repository.KoajCodeFilter) ([]*entity.KoajCode, error) {
	m.filters = append(m.filters, f)
	var out []*entity.KoajCode
	for i := int64(1); i <= m.next; i++ {
		c, ok := m.rows[i]
		if !ok || (f.OnlyActive && !c.IsActive) {
			continue
		}
		if f.AppliesTo != "" && c.AppliesTo != f.AppliesTo && c.AppliesTo != "todos" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memCodes) GetByID(_ context.Context, id int64) (*entity.KoajCode, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCodes) GetByCode(_ context.Context, code string) (*entity.KoajCode, error) {
	for _, c := range m.rows {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCodes) Create(_ context.Context, c *entity.KoajCode) error {
	m.next++
	c.ID = m.next
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCodes) Update(_ context.Context, c *entity.KoajCode) error {
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func ptr[T any](v T) *T { return &v }

func seed() *memCodes {
	return newMemCodes(
		&entity.KoajCode{Code: "42", Category: "Bermudas", AppliesTo: "hombre", IsActive: true},
		&entity.KoajCode{Code: "40", Category: "Blusas", AppliesTo: "mujer", IsActive: true},
		&entity.KoajCode{Code: "50", Category: "Gorras", AppliesTo: "todos", IsActive: true},
		&entity.KoajCode{Code: "99", Category: "Retirado", AppliesTo: "todos", IsActive: false},
	)
}

func TestList_FiltraPorGenero(t *testing.T) {
	repo := seed()
	uc := NewUseCase(repo, zerolog.Nop())

	out, err := uc.List(context.Background(), ListQuery{AppliesTo: "Hombre"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "42", out.Codes[0].Code)
	assert.Equal(t, "50", out.Codes[1].Code)

	out, err = uc.List(context.Background(), ListQuery{AppliesTo: "todos", IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, "", repo.filters[1].AppliesTo)

	_, err = uc.List(context.Background(), ListQuery{AppliesTo: "mascotas"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := NewUseCase(seed(), zerolog.Nop())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.KoajCodeRequest{Code: ptr(" 7 "), Category: ptr("Body Niña"), AppliesTo: ptr("nina")})
	require.NoError(t, err)
	assert.Equal(t, "7", out.Code)
	assert.Equal(t, "niña", out.AppliesTo)
	assert.True(t, out.IsActive)

	out, err = uc.Create(ctx, dto.KoajCodeRequest{Code: ptr("8"), Category: ptr("Buzo")})
	require.NoError(t, err)
	assert.Equal(t, "todos", out.AppliesTo)

	_, err = uc.Create(ctx, dto.KoajCodeRequest{Code: ptr("42"), Category: ptr("Repetido")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	for _, code := range []string{"A1", "12345678901", ""} {
		_, err = uc.Create(ctx, dto.KoajCodeRequest{Code: ptr(code), Category: ptr("X")})
		assert.ErrorIs(t, err, domain.ErrValidation, code)
	}
}

func TestUpdate_YDesactivar(t *testing.T) {
	repo := seed()
	uc := NewUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Update(ctx, 1, dto.KoajCodeRequest{Code: ptr("40")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := uc.Update(ctx, 1, dto.KoajCodeRequest{Code: ptr("42"), Category: ptr("Bermudas Hombre"), Description: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "Bermudas Hombre", out.Category)

	_, err = uc.Update(ctx, 77, dto.KoajCodeRequest{Category: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, 2))
	assert.False(t, repo.rows[2].IsActive)
	assert.ErrorIs(t, uc.Delete(ctx, 77), domain.ErrNotFound)
}

func TestGuide(t *testing.T) {
	g := NewUseCase(seed(), zerolog.Nop()).Guide()
	assert.Len(t, g.GenderPrefixes, 4)
	assert.Equal(t, "42", g.ExampleParts["category_code"])
}

func TestUpsert_CreaOActualiza(t *testing.T) {
	repo := seed()
	uc := NewUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := uc.Upsert(ctx, dto.KoajCodeRequest{Code: ptr("99"), Category: ptr("Reactivado"), AppliesTo: ptr("mujer")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, repo.rows[4].IsActive)
	assert.Equal(t, "Reactivado", repo.rows[4].Category)
	assert.Equal(t, "mujer", repo.rows[4].AppliesTo)

	created, err = uc.Upsert(ctx, dto.KoajCodeRequest{Code: ptr("68"), Category: ptr("Sombrilla")})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, repo.rows, 5)
}
