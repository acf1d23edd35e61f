package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Pinger lo cumplen el cliente de Alegra y el pool de PostgreSQL.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 5 * time.Second

// HealthHandler estado del servicio y sus dependencias.
type HealthHandler struct {
	service          string
	alegra           Pinger
	alegraConfigured bool
	db               Pinger
	log              zerolog.Logger
}

// NewHealthHandler construye el handler. db puede ser nil.
func NewHealthHandler(service string, alegra Pinger, alegraConfigured bool, db Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{service: service, alegra: alegra, alegraConfigured: alegraConfigured, db: db, log: log}
}

// Health godoc
// @Summary      Estado del servicio
// @Description  Siempre responde 200; status es "degraded" si Alegra o la base de datos fallan.
// @Tags         health
// @Produce      json
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := "ok"
	alegra := "not_configured"
	if h.alegraConfigured && h.alegra != nil {
		alegra = "connected"
		if err := h.alegra.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Msg("health: alegra no responde")
			alegra = "disconnected"
			status = "degraded"
		}
	}

	database := "not_configured"
	if h.db != nil {
		database = "connected"
		if err := h.db.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Msg("health: base de datos no responde")
			database = "disconnected"
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"service":   h.service,
		"alegra":    alegra,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
