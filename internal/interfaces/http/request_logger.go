package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/terraflow-api/pkg/logger"
)

const (
	headerRequestID = "X-Request-ID"
	localRequestID  = "request_id"
)

// RequestLogger asigna un request id (o respeta el entrante) y registra cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(localRequestID, rid)
		c.Set(headerRequestID, rid)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("request_id", rid).
			Msg("http request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals(localRequestID).(string)
	return s
}
