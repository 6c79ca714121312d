// seed_admin aplica el esquema (opcional) y provisiona una cuenta admin con hash bcrypt.
//
// Uso: go run ./cmd/seed_admin -email ops@terraflow.com -password '...' [-name "Ops"] [-migrate]
// Sin flags usa ADMIN_SEED_EMAIL, ADMIN_SEED_PASSWORD y ADMIN_SEED_NAME.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/terraflow-api/internal/application/auth"
	"github.com/jhoicas/terraflow-api/internal/infrastructure/storage"
	"github.com/jhoicas/terraflow-api/pkg/config"
	"github.com/jhoicas/terraflow-api/pkg/logger"
	"github.com/jhoicas/terraflow-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	email := flag.String("email", cfg.Admin.Email, "email del admin")
	pass := flag.String("password", cfg.Admin.Password, "password del admin")
	name := flag.String("name", cfg.Admin.FullName, "nombre completo")
	migrate := flag.Bool("migrate", cfg.DB.AutoMigrate, "aplicar el esquema antes de provisionar")
	flag.Parse()

	if *email == "" || *pass == "" {
		fmt.Fprintln(os.Stderr, "Se requieren -email y -password (o ADMIN_SEED_EMAIL / ADMIN_SEED_PASSWORD)")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.QueryTimeout*3)
	defer cancel()

	repos, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al store")
	}
	defer repos.Close()

	if *migrate {
		if err := repos.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		log.Info().Str("driver", cfg.DB.Driver).Msg("esquema aplicado")
	}

	uc := auth.NewAuthUseCase(repos.Users, password.NewHasher(cfg.Auth.BcryptCost), auth.Config{
		QueryTimeout: cfg.DB.QueryTimeout,
	}, log)
	created, err := uc.EnsureAdmin(ctx, *email, *pass, *name)
	if err != nil {
		log.Fatal().Err(err).Msg("provisión de admin")
	}
	if created {
		fmt.Printf("Admin creado: %s\n", auth.NormalizeEmail(*email))
		return
	}
	fmt.Printf("Ya existe una cuenta con email %s; no se modificó\n", auth.NormalizeEmail(*email))
}
