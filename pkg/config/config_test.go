package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.DB.Driver)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, 10*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Auth.LegacyAdminBypass)
	assert.False(t, cfg.Auth.EnforceActive)
	assert.False(t, cfg.Admin.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "terra")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("AUTH_LEGACY_ADMIN_BYPASS", "false")
	t.Setenv("AUTH_ENFORCE_ACTIVE", "true")
	t.Setenv("ADMIN_SEED_EMAIL", "ops@terraflow.com")
	t.Setenv("ADMIN_SEED_PASSWORD", "s3cret!")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port, "puerto por defecto de postgres")
	assert.Equal(t, 3*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.LegacyAdminBypass)
	assert.True(t, cfg.Auth.EnforceActive)
	assert.True(t, cfg.Admin.Enabled())
	assert.Equal(t, "Administrator", cfg.Admin.FullName)

	dsn := cfg.DB.ConnectionString()
	assert.True(t, strings.HasPrefix(dsn, "postgres://terra:"), dsn)
	assert.Contains(t, dsn, "db.internal:5432/terraflow")
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TimeoutInvalido(t *testing.T) {
	t.Setenv("DB_QUERY_TIMEOUT", "diez")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_MySQLDSN(t *testing.T) {
	c := DBConfig{Driver: DriverMySQL, Host: "localhost", Port: 3306, User: "root", Password: "pw", DBName: "terraflow"}
	dsn := c.ConnectionString()
	assert.Contains(t, dsn, "root:pw@tcp(localhost:3306)/terraflow")
	assert.Contains(t, dsn, "parseTime=true")
	assert.NotContains(t, dsn, "multiStatements")
}

func TestDBConfig_MySQLDatabaseURLFuerzaParseTime(t *testing.T) {
	c := DBConfig{Driver: DriverMySQL, DatabaseURL: "app:pw@tcp(db:3306)/terraflow?charset=utf8mb4", Host: "ignored"}
	dsn := c.ConnectionString()
	assert.Contains(t, dsn, "app:pw@tcp(db:3306)/terraflow")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.NotContains(t, dsn, "ignored")
}

func TestLoad_MySQLDatabaseURLInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "mysql://app:pw@db:3306/terraflow")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	c := DBConfig{Driver: DriverPostgres, DatabaseURL: "postgres://u:p@h:1/db", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@h:1/db", c.ConnectionString())
}
