package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// Mensaje único para fallas de Alegra; el detalle va al log.
const upstreamMessage = "No fue posible obtener datos de Alegra, intente nuevamente"

// statusFor traduce errores de dominio a (status HTTP, código).
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrSchemaMismatch):
		return fiber.StatusUnprocessableEntity, "SCHEMA_MISMATCH"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return fiber.StatusGatewayTimeout, "UPSTREAM_TIMEOUT"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, "UPSTREAM_ERROR"
	case errors.Is(err, domain.ErrAccountLocked):
		return fiber.StatusForbidden, "ACCOUNT_LOCKED"
	case errors.Is(err, domain.ErrAccountInactive):
		return fiber.StatusForbidden, "ACCOUNT_INACTIVE"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde el error con el cuerpo estándar. Los 5xx se registran
// y no exponen el detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrUpstream):
		msg = upstreamMessage
		ev := log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c))
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			ev = ev.Str("op", ue.Op).Str("kind", string(ue.Kind)).Int("status", ue.Status).
				Str("from", ue.From).Str("to", ue.To)
		}
		ev.Msg("falla consultando Alegra")
	case status == fiber.StatusInternalServerError:
		log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("error interno")
		msg = "error interno del servidor"
	}
	return fail(c, status, code, msg)
}

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Code: code, Error: msg})
}

// ErrorHandler manejador global de Fiber para errores no atendidos por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, "HTTP_ERROR", fe.Message)
	}
	return writeError(c, err)
}
