package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrAccountLocked   = errors.New("cuenta bloqueada temporalmente")
	ErrAccountInactive = errors.New("cuenta inactiva")
	ErrValidation      = errors.New("parámetros inválidos")
	ErrSchemaMismatch  = errors.New("estructura de inventario no reconocida")

	ErrUpstream            = errors.New("error consultando Alegra")
	ErrUpstreamTimeout     = errors.New("tiempo de espera agotado consultando Alegra")
	ErrUpstreamAuth        = errors.New("credenciales de Alegra rechazadas")
	ErrUpstreamUnavailable = errors.New("Alegra no disponible")
)

// ValidationError describe un parámetro faltante o mal formado.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid construye un ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UpstreamKind clasifica las fallas de Alegra.
type UpstreamKind string

const (
	UpstreamTimeout     UpstreamKind = "timeout"
	UpstreamAuth        UpstreamKind = "auth"
	UpstreamUnavailable UpstreamKind = "unavailable"
)

// UpstreamError lleva la operación y el rango consultado para log y respuesta.
type UpstreamError struct {
	Op     string
	Kind   UpstreamKind
	Status int    // 0 si no hubo respuesta HTTP
	From   string // opcional, YYYY-MM-DD
	To     string
	Err    error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("alegra %s (%s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(", HTTP %d", e.Status)
	}
	msg += ")"
	if e.From != "" || e.To != "" {
		msg += fmt.Sprintf(" rango %s..%s", e.From, e.To)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrUpstreamTimeout:
		return e.Kind == UpstreamTimeout
	case ErrUpstreamAuth:
		return e.Kind == UpstreamAuth
	case ErrUpstreamUnavailable:
		return e.Kind == UpstreamUnavailable
	}
	return false
}

// WithRange devuelve una copia con el rango anotado (si err es UpstreamError); en otro caso err sin cambios.
func WithRange(err error, from, to string) error {
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		return err
	}
	cp := *ue
	cp.From, cp.To = from, to
	return &cp
}
