package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	os.Setenv("BOT_TOKEN", "token123")
	os.Setenv("DB_PASSWORD", "secret")
	os.Setenv("ADMIN_IDS", "111,222")
	defer func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("ADMIN_IDS")
	}()

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "token123", cfg.BotToken)
	assert.Equal(t, []int64{111, 222}, cfg.AdminIDs)
	assert.Equal(t, 24*time.Hour, cfg.ConversationTTL)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestLoad_MissingToken(t *testing.T) {
	os.Unsetenv("BOT_TOKEN")
	os.Setenv("DB_PASSWORD", "secret")
	defer os.Unsetenv("DB_PASSWORD")

	_, err := Load()

	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()

	assert.Equal(t, "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable", dsn)
}

func TestConfig_IsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{111, 222}}

	assert.True(t, cfg.IsAdmin(111))
	assert.True(t, cfg.IsAdmin(222))
	assert.False(t, cfg.IsAdmin(333))
	assert.False(t, cfg.IsAdmin(0))
}
