package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "tienda-backoffice", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "inventory.stock-changed", cfg.Kafka.StockTopic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 5<<20, cfg.Catalog.MaxImportBytes)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 15*time.Second, cfg.DB.StatementTimeout)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Empty(t, cfg.DB.DNSFallback)
}

func TestLoad_PoolDesdeEntorno(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_STATEMENT_TIMEOUT", "3s")
	t.Setenv("DB_FORCE_IPV4", "false")
	t.Setenv("DB_DNS_FALLBACK", "8.8.8.8:53")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int32(8), cfg.DB.MaxConns)
	assert.Equal(t, 3*time.Second, cfg.DB.StatementTimeout)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "8.8.8.8:53", cfg.DB.DNSFallback)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("OTEL_INSECURE", "true")
	t.Setenv("DB_PORT", "no-es-numero")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.Otel.Insecure)
	assert.Equal(t, 5432, cfg.DB.Port, "un puerto inválido vuelve al valor por defecto")
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "tienda", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/tienda?sslmode=require", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
