package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Drivers de persistencia soportados.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Auth  AuthConfig
	Admin AdminSeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración del store relacional.
// Si DatabaseURL no está vacío, se usa como connection string completo
// (con mysql se parsea como DSN del driver y se fuerza parseTime).
type DBConfig struct {
	Driver       string // postgres | mysql | memory
	DatabaseURL  string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	QueryTimeout time.Duration // límite por ida y vuelta al store
	AutoMigrate  bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el del driver.
func (c DBConfig) ConnectionString() string {
	if c.Driver == DriverMySQL {
		return c.MySQLDSN()
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MySQLDSN devuelve el DSN de go-sql-driver/mysql. parseTime siempre activo: los repositorios
// escanean DATETIME en time.Time. Un DATABASE_URL inválido se devuelve tal cual (Load ya lo rechaza).
func (c DBConfig) MySQLDSN() string {
	mc, err := c.mysqlConfig()
	if err != nil {
		return c.DatabaseURL
	}
	return mc.FormatDSN()
}

func (c DBConfig) mysqlConfig() (*mysql.Config, error) {
	if c.DatabaseURL != "" {
		mc, err := mysql.ParseDSN(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("DATABASE_URL inválido para mysql: %w", err)
		}
		mc.ParseTime = true
		return mc, nil
	}
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.DBName
	mc.ParseTime = true
	return mc, nil
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig políticas de autenticación.
type AuthConfig struct {
	BcryptCost        int
	LegacyAdminBypass bool // credencial fija admin@terraflow.com / admin123
	EnforceActive     bool // rechazar login y tokens admin de cuentas con is_active = false
}

// AdminSeedConfig cuenta admin a provisionar al arrancar (vacío = no se provisiona).
type AdminSeedConfig struct {
	Email    string
	Password string
	FullName string
}

// Enabled indica si hay credenciales de seed configuradas.
func (c AdminSeedConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_DRIVER, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	timeout, err := getDuration(v, "DB_QUERY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "terraflow-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:       strings.ToLower(getString(v, "DB_DRIVER", DriverMySQL)),
			DatabaseURL:  getString(v, "DATABASE_URL", ""),
			Host:         getString(v, "DB_HOST", "localhost"),
			User:         getString(v, "DB_USER", "root"),
			Password:     getString(v, "DB_PASSWORD", ""),
			DBName:       getString(v, "DB_NAME", "terraflow"),
			SSLMode:      getString(v, "DB_SSLMODE", "disable"),
			QueryTimeout: timeout,
			AutoMigrate:  getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "terraflow"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			BcryptCost:        getInt(v, "AUTH_BCRYPT_COST", 10),
			LegacyAdminBypass: getBool(v, "AUTH_LEGACY_ADMIN_BYPASS", true),
			EnforceActive:     getBool(v, "AUTH_ENFORCE_ACTIVE", false),
		},
		Admin: AdminSeedConfig{
			Email:    getString(v, "ADMIN_SEED_EMAIL", ""),
			Password: getString(v, "ADMIN_SEED_PASSWORD", ""),
			FullName: getString(v, "ADMIN_SEED_NAME", "Administrator"),
		},
	}

	// El puerto por defecto depende del driver.
	defPort := 3306
	if cfg.DB.Driver == DriverPostgres {
		defPort = 5432
	}
	cfg.DB.Port = getInt(v, "DB_PORT", defPort)

	switch cfg.DB.Driver {
	case DriverMySQL:
		if _, err := cfg.DB.mysqlConfig(); err != nil {
			return nil, err
		}
	case DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) (time.Duration, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}
