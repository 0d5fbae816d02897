package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends soportados para los colaboradores de catálogo, autenticación y persistencia.
const (
	BackendAPI      = "api"
	BackendPostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Backend  string
	Upstream UpstreamConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Session  SessionConfig
	Currency CurrencyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// UpstreamConfig API REST remoto (fuente de verdad de catálogo y documentos).
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
	// SendTotals incluye total_price/total_cost en el payload; por defecto el servidor los recalcula.
	SendTotals bool
}

// DBConfig configuración de PostgreSQL (solo backend postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplicar migraciones embebidas al iniciar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
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

// RedisConfig cache opcional del catálogo. URL vacía = sin cache.
type RedisConfig struct {
	URL             string
	CatalogCacheTTL time.Duration
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret string
	Issuer string
}

// SessionConfig vida de sesiones y borradores.
type SessionConfig struct {
	TTL      time.Duration
	DraftTTL time.Duration
}

// CurrencyConfig selección y formato de moneda.
type CurrencyConfig struct {
	Default   string
	Supported []string
	Locale    string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND, UPSTREAM_BASE_URL, JWT_SECRET, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invorya-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: strings.ToLower(getString(v, "BACKEND", BackendAPI)),
		Upstream: UpstreamConfig{
			BaseURL:    strings.TrimRight(getString(v, "UPSTREAM_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout:    time.Duration(getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
			SendTotals: getBool(v, "UPSTREAM_SEND_TOTALS", false),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "invorya"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:             getString(v, "REDIS_URL", ""),
			CatalogCacheTTL: time.Duration(getInt(v, "CATALOG_CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "invorya-admin"),
		},
		Session: SessionConfig{
			TTL:      time.Duration(getInt(v, "SESSION_TTL_MINUTES", 480)) * time.Minute,
			DraftTTL: time.Duration(getInt(v, "DRAFT_TTL_MINUTES", 120)) * time.Minute,
		},
		Currency: CurrencyConfig{
			Default:   strings.ToUpper(getString(v, "CURRENCY_DEFAULT", "COP")),
			Supported: getList(v, "CURRENCY_SUPPORTED", []string{"COP", "USD", "EUR"}),
			Locale:    getString(v, "CURRENCY_LOCALE", "es-CO"),
		},
	}
	if cfg.Backend != BackendAPI && cfg.Backend != BackendPostgres {
		return nil, fmt.Errorf("BACKEND inválido %q (api|postgres)", cfg.Backend)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET es obligatorio")
	}
	if !contains(cfg.Currency.Supported, cfg.Currency.Default) {
		cfg.Currency.Supported = append([]string{cfg.Currency.Default}, cfg.Currency.Supported...)
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
		return v.GetBool(key)
	}
	return def
}

// getList lee una lista separada por comas ("COP, USD").
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}
