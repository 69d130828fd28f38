package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "chat")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")

	cfg := ConfigFromEnv()
	assert.Equal(t, "host=db port=5432 user=chat password=secret dbname=healthifyme sslmode=disable", cfg.DSN())
	assert.Equal(t, 20, cfg.MaxOpen)
	assert.Equal(t, 10, cfg.MaxIdle)
}

func TestSchemaIsEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS foods")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS chat_history")
}
