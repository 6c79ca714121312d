package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/terraflow-api/internal/domain"
)

const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isUndefinedTable verifica si la relación no existe (42P01): esquema sin provisionar.
func isUndefinedTable(err error) bool {
	return hasCode(err, codeUndefinedTable)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// translate convierte errores de PostgreSQL en sentinelas de dominio cuando aplica.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case isUndefinedTable(err):
		return errors.Join(domain.ErrStorageNotInitialized, err)
	default:
		return err
	}
}

// nullIfEmpty mapea "" a NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// limitArg LIMIT NULL equivale a sin límite en PostgreSQL.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
