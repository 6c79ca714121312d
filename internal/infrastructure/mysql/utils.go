package mysql

import (
	"database/sql"
	"errors"
	"math"

	"github.com/go-sql-driver/mysql"

	"github.com/jhoicas/terraflow-api/internal/domain"
)

// Códigos de error del servidor MySQL.
const (
	erDupEntry    = 1062 // ER_DUP_ENTRY
	erNoSuchTable = 1146 // ER_NO_SUCH_TABLE
)

func isDuplicateEntry(err error) bool {
	return hasNumber(err, erDupEntry)
}

func isNoSuchTable(err error) bool {
	return hasNumber(err, erNoSuchTable)
}

func hasNumber(err error, n uint16) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == n
	}
	return false
}

// translate convierte errores de MySQL en sentinelas de dominio cuando aplica.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case isNoSuchTable(err):
		return errors.Join(domain.ErrStorageNotInitialized, err)
	default:
		return err
	}
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// limitArg MySQL no acepta LIMIT sin valor; sin límite se traduce a MaxInt64.
func limitArg(limit int) int64 {
	if limit <= 0 {
		return math.MaxInt64
	}
	return int64(limit)
}

// rowsAffectedOrNotFound traduce 0 filas afectadas a domain.ErrNotFound.
func rowsAffectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
