package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"economic-wars/internal/game"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Rules are the game constants an operator may override.
type Rules struct {
	StartingMoney  int `env:"STARTING_MONEY" envDefault:"8000"`
	StartSalary    int `env:"START_SALARY" envDefault:"700"`
	SanctionsBail  int `env:"SANCTIONS_BAIL" envDefault:"1000"`
	InfluenceToWin int `env:"INFLUENCE_TO_WIN" envDefault:"2500"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":3000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173,http://localhost:8080"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	ReconnectGrace  time.Duration `env:"RECONNECT_GRACE" envDefault:"20s"`
	RoomTTL         time.Duration `env:"ROOM_TTL" envDefault:"2h"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
	SnapshotTimeout time.Duration `env:"SNAPSHOT_TIMEOUT" envDefault:"2s"`

	Store      string `env:"STORE" envDefault:"memory"`
	Redis      Redis
	SQLitePath string `env:"SQLITE_PATH" envDefault:"economic-wars.db"`

	ActionRate  float64 `env:"ACTION_RATE" envDefault:"10"`
	ActionBurst int     `env:"ACTION_BURST" envDefault:"20"`

	Rules Rules
}

// Prefix is prepended to every variable name.
const Prefix = "ECONWARS_"

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("parse env: unknown store %q", c.Store)
	}
	if c.ActionRate <= 0 || c.ActionBurst <= 0 {
		return fmt.Errorf("parse env: action rate and burst must be positive")
	}
	if c.ReconnectGrace <= 0 || c.RoomTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("parse env: durations must be positive")
	}
	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
	return nil
}

// AllowAllOrigins reports whether the allowlist is the wildcard.
func (c Config) AllowAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// OriginAllowed checks a request Origin header against the allowlist. A
// missing header is allowed so non-browser clients can connect.
func (c Config) OriginAllowed(origin string) bool {
	if origin == "" || c.AllowAllOrigins() {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// GameSettings converts the rule overrides into engine settings.
func (c Config) GameSettings() game.Settings {
	return game.Settings{
		StartingMoney:  c.Rules.StartingMoney,
		StartSalary:    c.Rules.StartSalary,
		SanctionsBail:  c.Rules.SanctionsBail,
		InfluenceToWin: c.Rules.InfluenceToWin,
	}
}
