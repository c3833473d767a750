package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/bracket-backend/internal/engine"
)

func TestLoad_Defaults(t *testing.T) {
	v, err := New("")
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.True(t, cfg.AutoAdvance.Enabled)
	assert.Equal(t, time.Second, cfg.AutoAdvance.Delay)
	assert.Equal(t, engine.DefaultRules(), cfg.Tournament)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRACKET_ADDR", ":9090")
	t.Setenv("BRACKET_AUTO_ADVANCE_DELAY", "250ms")
	t.Setenv("BRACKET_RANDOM_SEED", "99")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.AutoAdvance.Delay)
	assert.Equal(t, uint64(99), cfg.Random.Seed)
}

func TestLoad_FileShapesTournament(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bracket.yaml")
	doc := `tournament:
  total_teams: 16
  groups: 4
  teams_per_group: 4
  advancing_per_group: 2
  wildcards: 0
  advancing_teams: 8
  rounds: 3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Tournament.Rounds)
	assert.Equal(t, map[int]int{1: 4, 2: 2, 3: 1}, cfg.Tournament.MatchesPerRound())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = StorePostgres }},
		{name: "redis without url", mutate: func(c *Config) { c.Store.Driver = StoreRedis }},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }},
		{name: "inconsistent shape", mutate: func(c *Config) { c.Tournament.AdvancingTeams = 30 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
