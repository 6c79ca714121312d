// Package storage selecciona el adaptador de persistencia según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/terraflow-api/internal/domain/repository"
	"github.com/jhoicas/terraflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/terraflow-api/internal/infrastructure/mysql"
	"github.com/jhoicas/terraflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/terraflow-api/pkg/config"
)

// Repositories puertos de persistencia listos para inyectar en los casos de uso.
type Repositories struct {
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Analytics repository.AnalyticsRepository

	migrate func(ctx context.Context) error
	close   func()
}

// Migrate aplica el esquema embebido. En memoria no hace nada.
func (r *Repositories) Migrate(ctx context.Context) error {
	if r.migrate == nil {
		return nil
	}
	return r.migrate(ctx)
}

// Close libera el pool de conexiones.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open abre el store configurado y construye sus repositorios.
func Open(ctx context.Context, cfg config.DBConfig) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Repositories{
			Users:     postgres.NewUserRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Analytics: postgres.NewAnalyticsRepository(pool),
			migrate:   func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
			close:     pool.Close,
		}, nil
	case config.DriverMySQL:
		db, err := mysql.NewDB(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a MySQL: %w", err)
		}
		return &Repositories{
			Users:     mysql.NewUserRepository(db),
			Products:  mysql.NewProductRepository(db),
			Analytics: mysql.NewAnalyticsRepository(db),
			migrate:   func(ctx context.Context) error { return mysql.Migrate(ctx, db) },
			close:     func() { _ = db.Close() },
		}, nil
	case config.DriverMemory:
		return NewMemory(memory.NewStore()), nil
	default:
		return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
	}
}

// NewMemory construye los repositorios sobre un store en memoria.
func NewMemory(store *memory.Store) *Repositories {
	return &Repositories{
		Users:     memory.NewUserRepository(store),
		Products:  memory.NewProductRepository(store),
		Analytics: memory.NewAnalyticsRepository(store),
	}
}
