package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/terraflow-api/internal/application/auth"
	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/application/usecase"
	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/pkg/jwt"
	"github.com/jhoicas/terraflow-api/pkg/logger"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Success: false, Message: msg})
}

// AuthMiddleware valida el Bearer Token JWT y carga user_id, email y role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header required")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "Authorization format: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "Empty token")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireActiveAccount revalida la cuenta del token contra el store: rechaza cuentas
// borradas o deshabilitadas y reemplaza el rol del claim por el rol actual.
// Va entre AuthMiddleware y RequireRole. Con legacyAdmin el admin fijo pasa sin consulta.
func RequireActiveAccount(users *usecase.UserUseCase, legacyAdmin bool, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if legacyAdmin && GetUserID(c) == auth.LegacyAdminID && GetEmail(c) == auth.LegacyAdminEmail {
			return c.Next()
		}
		u, err := users.GetByID(c.UserContext(), GetUserID(c))
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return unauthorized(c, "Account no longer exists")
			}
			return respondError(c, log, err)
		}
		// el id pudo reasignarse a otra cuenta
		if u.Email != GetEmail(c) {
			return unauthorized(c, "Account no longer exists")
		}
		if !u.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Success: false, Message: auth.MsgAccountDisabled})
		}
		c.Locals(LocalRole, u.Role)
		return c.Next()
	}
}

// RequireRole deja pasar solo si el rol del token está en roles. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "Token has no role claim")
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Success: false, Message: "Forbidden: insufficient role"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
