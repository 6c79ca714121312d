package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/terraflow-api/internal/application/analytics"
	"github.com/jhoicas/terraflow-api/internal/application/auth"
	"github.com/jhoicas/terraflow-api/internal/application/usecase"
	"github.com/jhoicas/terraflow-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/terraflow-api/internal/interfaces/http"
	"github.com/jhoicas/terraflow-api/pkg/config"
	"github.com/jhoicas/terraflow-api/pkg/logger"
	"github.com/jhoicas/terraflow-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// precios y revenue como número JSON, no string
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al store")
	}
	defer repos.Close()

	if cfg.DB.AutoMigrate {
		if err := repos.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto efímero, los tokens no sobreviven un reinicio")
	}
	if cfg.Auth.LegacyAdminBypass {
		log.Warn().Msg("credencial fija de administrador habilitada (AUTH_LEGACY_ADMIN_BYPASS)")
	}

	authUC := auth.NewAuthUseCase(repos.Users, password.NewHasher(cfg.Auth.BcryptCost), auth.Config{
		JWT: auth.JWTConfig{
			Secret:     jwtSecret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		QueryTimeout:      cfg.DB.QueryTimeout,
		LegacyAdminBypass: cfg.Auth.LegacyAdminBypass,
		EnforceActive:     cfg.Auth.EnforceActive,
	}, log)

	if cfg.Admin.Enabled() {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName)
		if err != nil {
			log.Error().Err(err).Msg("provisión de admin")
		} else if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("admin provisionado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TerraFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(repos.Users, cfg.DB.QueryTimeout),
		ProductUC:   usecase.NewProductUseCase(repos.Products, cfg.DB.QueryTimeout),
		DashboardUC: appanalytics.NewDashboardUseCase(repos.Analytics, cfg.DB.QueryTimeout),
		JWTSecret:   jwtSecret,
		Log:         log,

		EnforceActive:     cfg.Auth.EnforceActive,
		LegacyAdminBypass: cfg.Auth.LegacyAdminBypass,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
