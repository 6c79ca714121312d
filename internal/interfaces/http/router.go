package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/terraflow-api/internal/application/analytics"
	"github.com/jhoicas/terraflow-api/internal/application/auth"
	"github.com/jhoicas/terraflow-api/internal/application/usecase"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	Log         *logger.Logger

	// EnforceActive revalida cada token admin contra el store (cuenta activa y rol vigente).
	// Sin él, el rol sale solo del claim hasta que el token expira.
	EnforceActive     bool
	LegacyAdminBypass bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Administración (Bearer Token + rol admin)
	guards := []fiber.Handler{AuthMiddleware(deps.JWTSecret)}
	if deps.EnforceActive {
		guards = append(guards, RequireActiveAccount(deps.UserUC, deps.LegacyAdminBypass, log))
	}
	guards = append(guards, RequireRole(entity.RoleAdmin))
	admin := api.Group("/admin", guards...)

	userHandler := NewUserHandler(deps.UserUC, log)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.GetByID)
	admin.Put("/users/:id/status", userHandler.UpdateStatus)
	admin.Put("/users/:id/role", userHandler.UpdateRole)
	admin.Delete("/users/:id", userHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC, log)
	admin.Get("/products", productHandler.List)
	admin.Post("/products", productHandler.Create)
	admin.Get("/products/:id", productHandler.GetByID)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	admin.Get("/dashboard-stats", dashboardHandler.GetStats)
	admin.Get("/production-recommendations", dashboardHandler.GetProductionRecommendations)
}
