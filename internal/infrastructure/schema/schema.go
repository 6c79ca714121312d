// Package schema contiene las migraciones SQL embebidas por dialecto.
package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed postgres/*.sql mysql/*.sql
var files embed.FS

// Statements devuelve las sentencias de todas las migraciones del dialecto
// ("postgres" o "mysql"), en orden de archivo.
func Statements(dialect string) ([]string, error) {
	names, err := fs.Glob(files, dialect+"/*.sql")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("schema: sin migraciones para %q", dialect)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("schema: leer %s: %w", name, err)
		}
		out = append(out, split(string(b))...)
	}
	return out, nil
}

// split separa por ';' al final de línea e ignora comentarios de línea completa.
// Las migraciones no contienen ';' dentro de literales.
func split(script string) []string {
	var (
		stmts []string
		cur   strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(cur.String()), ";")
			stmts = append(stmts, stmt)
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
