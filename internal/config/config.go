// Package config loads server settings from defaults, an optional .env file,
// an optional YAML config file and BRACKET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/DoyleJ11/bracket-backend/internal/engine"
)

const EnvPrefix = "BRACKET"

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr        string            `mapstructure:"addr"`
	Log         LogConfig         `mapstructure:"log"`
	Store       StoreConfig       `mapstructure:"store"`
	Redis       RedisConfig       `mapstructure:"redis"`
	AutoAdvance AutoAdvanceConfig `mapstructure:"auto_advance"`
	Random      RandomConfig      `mapstructure:"random"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Tournament  engine.Rules      `mapstructure:"tournament"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	URL string        `mapstructure:"url"`
	TTL time.Duration `mapstructure:"ttl"`
}

// AutoAdvanceConfig controls moving to the next round once every match of
// the active round has a winner.
type AutoAdvanceConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Delay   time.Duration `mapstructure:"delay"`
}

// RandomConfig seeds auto-pick. Zero means seed from the clock.
type RandomConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

type CatalogConfig struct {
	File string `mapstructure:"file"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

func Default() *Config {
	return &Config{
		Addr:        ":8080",
		Log:         LogConfig{Level: "info"},
		Store:       StoreConfig{Driver: StoreMemory},
		Redis:       RedisConfig{TTL: 24 * time.Hour},
		AutoAdvance: AutoAdvanceConfig{Enabled: true, Delay: time.Second},
		CORS:        CORSConfig{Origins: []string{"http://localhost:*"}},
		Tournament:  engine.DefaultRules(),
	}
}

// SetDefaults registers every key on v so env overrides resolve without a
// config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("redis.url", d.Redis.URL)
	v.SetDefault("redis.ttl", d.Redis.TTL)
	v.SetDefault("auto_advance.enabled", d.AutoAdvance.Enabled)
	v.SetDefault("auto_advance.delay", d.AutoAdvance.Delay)
	v.SetDefault("random.seed", d.Random.Seed)
	v.SetDefault("catalog.file", d.Catalog.File)
	v.SetDefault("cors.origins", d.CORS.Origins)

	v.SetDefault("tournament.total_teams", d.Tournament.TotalTeams)
	v.SetDefault("tournament.groups", d.Tournament.Groups)
	v.SetDefault("tournament.teams_per_group", d.Tournament.TeamsPerGroup)
	v.SetDefault("tournament.advancing_per_group", d.Tournament.AdvancingPerGroup)
	v.SetDefault("tournament.wildcards", d.Tournament.Wildcards)
	v.SetDefault("tournament.advancing_teams", d.Tournament.AdvancingTeams)
	v.SetDefault("tournament.rounds", d.Tournament.Rounds)
}

// New prepares a viper instance: defaults, env binding, optional file.
// A missing .env is not an error.
func New(configFile string) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	// BRACKET_AUTO_ADVANCE_DELAY for auto_advance.delay
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres, StoreSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn required for %s", ErrInvalidConfig, c.Store.Driver)
		}
	case StoreRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("%w: redis.url required for redis store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.AutoAdvance.Delay < 0 {
		return fmt.Errorf("%w: negative auto_advance.delay", ErrInvalidConfig)
	}
	if err := c.Tournament.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
