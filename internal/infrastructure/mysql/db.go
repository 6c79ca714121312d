// Package mysql implementa los puertos de persistencia sobre MySQL (database/sql + go-sql-driver/mysql).
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/terraflow-api/internal/infrastructure/schema"
	"github.com/jhoicas/terraflow-api/pkg/config"
)

// Querier es el subconjunto de database/sql que usan los repositorios; lo cumplen *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewDB abre el pool de conexiones MySQL y verifica conectividad.
func NewDB(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("abrir DB: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return db, nil
}

// Migrate aplica el esquema embebido sentencia por sentencia (no requiere multiStatements).
func Migrate(ctx context.Context, q Querier) error {
	stmts, err := schema.Statements("mysql")
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migración mysql #%d: %w", i+1, err)
		}
	}
	return nil
}
