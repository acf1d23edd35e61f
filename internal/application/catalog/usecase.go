// Package catalog administra el catálogo de códigos de categoría KOAJ que
// aparecen dentro de los códigos de barras de la tienda.
package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/internal/domain/repository"
)

const appliesToAll = "todos"

var codePattern = regexp.MustCompile(`^[0-9]{1,10}$`)

var appliesToAliases = map[string]string{
	"hombre": "hombre",
	"mujer":  "mujer",
	"niño":   "niño",
	"nino":   "niño",
	"niña":   "niña",
	"nina":   "niña",
	"todos":  appliesToAll,
}

// ListQuery filtros del listado.
type ListQuery struct {
	Search          string
	AppliesTo       string
	IncludeInactive bool
}

// UseCase CRUD del catálogo KOAJ.
type UseCase struct {
	repo repository.KoajCodeRepository
	now  func() time.Time
	log  zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.KoajCodeRepository, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, now: time.Now, log: log}
}

// List códigos ordenados numéricamente. Con AppliesTo también devuelve los de "todos".
func (uc *UseCase) List(ctx context.Context, q ListQuery) (*dto.KoajCodeList, error) {
	f := repository.KoajCodeFilter{
		OnlyActive: !q.IncludeInactive,
		Search:     strings.TrimSpace(q.Search),
	}
	if q.AppliesTo != "" {
		a, err := normalizeAppliesTo(q.AppliesTo)
		if err != nil {
			return nil, err
		}
		if a != appliesToAll {
			f.AppliesTo = a
		}
	}
	codes, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar códigos: %w", err)
	}
	out := &dto.KoajCodeList{Codes: make([]dto.KoajCodeResponse, 0, len(codes)), Total: len(codes)}
	for _, c := range codes {
		out.Codes = append(out.Codes, toResponse(c))
	}
	return out, nil
}

// Get un código por ID.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.KoajCodeResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	r := toResponse(c)
	return &r, nil
}

// Create exige code y category; el código es único.
func (uc *UseCase) Create(ctx context.Context, in dto.KoajCodeRequest) (*dto.KoajCodeResponse, error) {
	code, category := trim(in.Code), trim(in.Category)
	if code == "" || category == "" {
		return nil, domain.Invalid("", "código y categoría son requeridos")
	}
	if !codePattern.MatchString(code) {
		return nil, domain.Invalid("code", "debe tener entre 1 y 10 dígitos")
	}
	appliesTo := appliesToAll
	if a := trim(in.AppliesTo); a != "" {
		var err error
		if appliesTo, err = normalizeAppliesTo(a); err != nil {
			return nil, err
		}
	}
	if err := uc.ensureFree(ctx, code, 0); err != nil {
		return nil, err
	}

	now := uc.now()
	c := &entity.KoajCode{
		Code:        code,
		Category:    category,
		Description: trim(in.Description),
		AppliesTo:   appliesTo,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear código: %w", err)
	}
	uc.log.Info().Str("code", code).Str("category", category).Msg("código KOAJ creado")
	r := toResponse(c)
	return &r, nil
}

// Update aplica los campos presentes. Description vacía la borra.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.KoajCodeRequest) (*dto.KoajCodeResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if code := trim(in.Code); code != "" {
		if !codePattern.MatchString(code) {
			return nil, domain.Invalid("code", "debe tener entre 1 y 10 dígitos")
		}
		if err := uc.ensureFree(ctx, code, id); err != nil {
			return nil, err
		}
		c.Code = code
	}
	if category := trim(in.Category); category != "" {
		c.Category = category
	}
	if in.Description != nil {
		c.Description = trim(in.Description)
	}
	if a := trim(in.AppliesTo); a != "" {
		if c.AppliesTo, err = normalizeAppliesTo(a); err != nil {
			return nil, err
		}
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("actualizar código: %w", err)
	}
	uc.log.Info().Str("code", c.Code).Msg("código KOAJ actualizado")
	r := toResponse(c)
	return &r, nil
}

// Delete desactiva el código; el registro se conserva.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	c, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = false
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("desactivar código: %w", err)
	}
	uc.log.Info().Str("code", c.Code).Msg("código KOAJ desactivado")
	return nil
}

// Upsert crea el código o, si ya existe, actualiza categoría, género y
// descripción y lo reactiva. Devuelve true si lo creó. Lo usa la carga inicial.
func (uc *UseCase) Upsert(ctx context.Context, in dto.KoajCodeRequest) (bool, error) {
	existing, err := uc.repo.GetByCode(ctx, trim(in.Code))
	if err != nil {
		return false, fmt.Errorf("código %s: %w", trim(in.Code), err)
	}
	if existing == nil {
		_, err := uc.Create(ctx, in)
		return err == nil, err
	}
	active := true
	in.Code = nil
	in.IsActive = &active
	_, err = uc.Update(ctx, existing.ID, in)
	return false, err
}

// Guide guía fija de lectura de códigos de barras.
func (uc *UseCase) Guide() dto.BarcodeGuide {
	return barcodeGuide
}

func (uc *UseCase) ensureFree(ctx context.Context, code string, selfID int64) error {
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("código %s: %w", code, err)
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("el código %s ya existe: %w", code, domain.ErrDuplicate)
	}
	return nil
}

func (uc *UseCase) find(ctx context.Context, id int64) (*entity.KoajCode, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("código %d: %w", id, err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func normalizeAppliesTo(s string) (string, error) {
	a, ok := appliesToAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", domain.Invalid("applies_to", "use hombre, mujer, niño, niña o todos")
	}
	return a, nil
}

func trim(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func toResponse(c *entity.KoajCode) dto.KoajCodeResponse {
	return dto.KoajCodeResponse{
		ID:          c.ID,
		Code:        c.Code,
		Category:    c.Category,
		Description: c.Description,
		AppliesTo:   c.AppliesTo,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
