package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError_IsPorTipo(t *testing.T) {
	err := fmt.Errorf("listar facturas: %w", &UpstreamError{Op: "invoices", Kind: UpstreamTimeout, Err: context.DeadlineExceeded})

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, ErrUpstreamTimeout))
	assert.False(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestUpstreamError_Mensaje(t *testing.T) {
	err := &UpstreamError{Op: "invoices", Kind: UpstreamUnavailable, Status: 503, From: "2025-12-01", To: "2025-12-02"}
	assert.Equal(t, "alegra invoices (unavailable, HTTP 503) rango 2025-12-01..2025-12-02", err.Error())
}

func TestWithRange(t *testing.T) {
	base := &UpstreamError{Op: "invoices", Kind: UpstreamAuth, Status: 401}
	err := WithRange(fmt.Errorf("x: %w", base), "2025-01-01", "2025-01-31")

	var ue *UpstreamError
	assert.True(t, errors.As(err, &ue))
	assert.Equal(t, "2025-01-01", ue.From)
	assert.Empty(t, base.From)

	plain := errors.New("otro")
	assert.Equal(t, plain, WithRange(plain, "a", "b"))
}

func TestValidationError_IsErrValidation(t *testing.T) {
	err := Invalid("from", "es requerido")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "from: es requerido", err.Error())
}
