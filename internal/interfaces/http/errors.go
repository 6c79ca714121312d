package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/pkg/logger"
)

// statusFor traduce el Kind de dominio a código HTTP.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict:
		return fiber.StatusBadRequest
	case domain.KindAuth:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError escribe {success:false, message} con el status del error.
// Los errores de infraestructura se registran con su causa.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Infrastructure("Server error: "+err.Error(), err)
	}
	status := statusFor(de.Kind)
	if status >= fiber.StatusInternalServerError && log != nil {
		log.Error().Err(de.Err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg(de.Message)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Message: de.Message})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Success: false, Message: msg})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
