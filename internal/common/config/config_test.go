package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminIDs_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AdminIDs
		wantErr bool
	}{
		{name: "plain list", input: "1,2,3", want: AdminIDs{1, 2, 3}},
		{name: "brackets and spaces", input: "[ 10, 20 ]", want: AdminIDs{10, 20}},
		{name: "trailing comma", input: "5,", want: AdminIDs{5}},
		{name: "empty", input: "", want: AdminIDs{}},
		{name: "garbage", input: "1,abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids AdminIDs
			err := ids.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestAdminIDs_Contains(t *testing.T) {
	ids := AdminIDs{7, 9}
	assert.True(t, ids.Contains(9))
	assert.False(t, ids.Contains(8))
	assert.False(t, AdminIDs(nil).Contains(0))
}

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "customer-token")
	t.Setenv("ADMIN_BOT_TOKEN", "admin-token")
	t.Setenv("ALLOWED_ADMIN_IDS", "[111,222]")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "customer-token", cfg.Telegram.BotToken)
	assert.Equal(t, "admin-token", cfg.Telegram.AdminBotToken)
	assert.Equal(t, AdminIDs{111, 222}, cfg.Telegram.AdminIDs)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Telegram.PollTimeout)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ADMIN_BOT_TOKEN", "admin-token")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RedisBackendNeedsAddr(t *testing.T) {
	t.Setenv("BOT_TOKEN", "a")
	t.Setenv("ADMIN_BOT_TOKEN", "b")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_BACKEND", "etcd")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadDatabase_IgnoresBotTokens(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ADMIN_BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://cafe@db:5432/cafe?sslmode=disable")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "postgres://cafe@db:5432/cafe?sslmode=disable", cfg.Postgres.DatabaseURL)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
	assert.True(t, cfg.Debug)
}
