package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/terraflow-api/internal/domain"
)

// Límites de paginación para listados de administración.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// DefaultQueryTimeout se usa cuando el constructor recibe timeout <= 0.
const DefaultQueryTimeout = 10 * time.Second

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// withTimeout acota una ida y vuelta al store.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultQueryTimeout
	}
	return context.WithTimeout(ctx, d)
}

// translate convierte errores de repositorio en *domain.Error.
func translate(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound(notFoundMsg)
	case errors.Is(err, domain.ErrStorageNotInitialized):
		return domain.Infrastructure("Database tables not found. Please run database setup.", err)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.Infrastructure("Database error: timeout", err)
	default:
		return domain.Infrastructure("Database error: "+err.Error(), err)
	}
}
