package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, BackendAPI, cfg.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "COP", cfg.Currency.Default)
	assert.Equal(t, []string{"COP", "USD", "EUR"}, cfg.Currency.Supported)
	assert.Equal(t, 120*time.Minute, cfg.Session.DraftTTL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("BACKEND", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("UPSTREAM_BASE_URL", "https://api.example.com/v1/")
	v.Set("CURRENCY_DEFAULT", "mxn")
	v.Set("CURRENCY_SUPPORTED", "usd, eur")
	v.Set("DB_PASSWORD", "p@ss:word")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://api.example.com/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, []string{"MXN", "USD", "EUR"}, cfg.Currency.Supported, "la moneda por defecto siempre está soportada")
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%3Aword")
}

func TestFromViper_Errores(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err, "sin JWT_SECRET")

	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("BACKEND", "sqlite")
	_, err = fromViper(v)
	assert.Error(t, err)
}
