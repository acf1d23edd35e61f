package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/alegra-reports-api/internal/application/catalog"
	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/application/normalizer"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

type importResult struct {
	Created int
	Updated int
}

type codeUpserter interface {
	Upsert(ctx context.Context, in dto.KoajCodeRequest) (bool, error)
}

var _ codeUpserter = (*catalog.UseCase)(nil)

// parseCodes lee el archivo con el mismo lector de los archivos de inventario
// (CSV Latin-1 o UTF-8, o Excel). Exige las columnas code y category.
func parseCodes(filename string, content []byte) ([]dto.KoajCodeRequest, error) {
	t, err := normalizer.ReadFile(filename, content)
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range t.Headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"code", "category"} {
		if _, ok := idx[col]; !ok {
			return nil, domain.Invalid(col, "falta la columna %q", col)
		}
	}
	get := func(rec []string, col string) *string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return nil
		}
		v := strings.TrimSpace(rec[i])
		return &v
	}

	out := make([]dto.KoajCodeRequest, 0, len(t.Rows))
	for _, rec := range t.Rows {
		in := dto.KoajCodeRequest{
			Code:        get(rec, "code"),
			Category:    get(rec, "category"),
			AppliesTo:   get(rec, "applies_to"),
			Description: get(rec, "description"),
		}
		if in.Code == nil || *in.Code == "" {
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func importCodes(ctx context.Context, uc codeUpserter, rows []dto.KoajCodeRequest) (importResult, error) {
	var res importResult
	for _, in := range rows {
		created, err := uc.Upsert(ctx, in)
		if err != nil {
			return res, fmt.Errorf("código %s: %w", *in.Code, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}
