package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

func TestParseCodes_CatalogoEmbebido(t *testing.T) {
	rows, err := parseCodes("koaj_codes.csv", defaultCodes)
	require.NoError(t, err)
	require.Len(t, rows, 66)

	first := rows[0]
	assert.Equal(t, "55", *first.Code)
	assert.Equal(t, "Maletas", *first.Category)
	assert.Equal(t, "todos", *first.AppliesTo)

	var girls int
	for _, r := range rows {
		if *r.AppliesTo == "niña" {
			girls++
		}
	}
	assert.Equal(t, 10, girls)
}

func TestParseCodes_Latin1YColumnas(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String("code;category;applies_to\n6;Body Niño;niño\n;vacío;todos\n")
	require.NoError(t, err)

	rows, err := parseCodes("codigos.csv", []byte(latin1))
	require.NoError(t, err)
	require.Len(t, rows, 1, "las filas sin código se omiten")
	assert.Equal(t, "Body Niño", *rows[0].Category)
	assert.Nil(t, rows[0].Description)

	_, err = parseCodes("codigos.csv", []byte("code;applies_to\n6;niño\n"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type fakeUpserter struct {
	existing map[string]bool
	fail     string
}

func (f *fakeUpserter) Upsert(_ context.Context, in dto.KoajCodeRequest) (bool, error) {
	if *in.Code == f.fail {
		return false, domain.Invalid("code", "inválido")
	}
	if f.existing[*in.Code] {
		return false, nil
	}
	f.existing[*in.Code] = true
	return true, nil
}

func TestImportCodes(t *testing.T) {
	code := func(s string) dto.KoajCodeRequest { return dto.KoajCodeRequest{Code: &s} }
	up := &fakeUpserter{existing: map[string]bool{"55": true}}

	res, err := importCodes(context.Background(), up, []dto.KoajCodeRequest{code("55"), code("50"), code("49")})
	require.NoError(t, err)
	assert.Equal(t, importResult{Created: 2, Updated: 1}, res)

	up.fail = "x"
	_, err = importCodes(context.Background(), up, []dto.KoajCodeRequest{code("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "código x")
}
