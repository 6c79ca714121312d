package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/terraflow-api/internal/infrastructure/schema"
)

// Migrate aplica el esquema embebido (CREATE ... IF NOT EXISTS, idempotente).
func Migrate(ctx context.Context, q Querier) error {
	stmts, err := schema.Statements("postgres")
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración postgres #%d: %w", i+1, err)
		}
	}
	return nil
}
