package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/almacen-web/pkg/logger"
)

// MethodOverride permite que los formularios HTML (solo GET/POST) emitan
// PATCH y DELETE vía el campo oculto _method, al estilo Rack::MethodOverride.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost {
			switch strings.ToUpper(c.FormValue("_method")) {
			case fiber.MethodPatch:
				c.Method(fiber.MethodPatch)
			case fiber.MethodDelete:
				c.Method(fiber.MethodDelete)
			}
		}
		return c.Next()
	}
}

// RequestLogger loguea cada request con un ID propio, estado y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := uuid.New().String()
		c.Locals("request_id", reqID)

		err := c.Next()

		log.Info().
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request atendida")
		return err
	}
}
