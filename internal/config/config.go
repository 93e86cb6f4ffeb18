package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	TheatreRegistry string   `mapstructure:"THEATRE_REGISTRY"`
	DayStart        string   `mapstructure:"DAY_START"`
	DayEnd          string   `mapstructure:"DAY_END"`
	TurnoverMinutes int      `mapstructure:"TURNOVER_MINUTES"`
	FilterBudgetMS  int      `mapstructure:"FILTER_BUDGET_MS"`
	SeedDemoData    bool     `mapstructure:"SEED_DEMO_DATA"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DAY_START", "08:00")
	v.SetDefault("DAY_END", "18:00")
	v.SetDefault("TURNOVER_MINUTES", 30)
	v.SetDefault("FILTER_BUDGET_MS", 100)
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("THEATRE_REGISTRY")
	v.BindEnv("DAY_START")
	v.BindEnv("DAY_END")
	v.BindEnv("TURNOVER_MINUTES")
	v.BindEnv("FILTER_BUDGET_MS")
	v.BindEnv("SEED_DEMO_DATA")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UseMemoryStore reports whether the engine should run on the in-memory
// repositories. An empty DATABASE_URL selects them; anything else selects
// Postgres.
func (c *Config) UseMemoryStore() bool {
	return c.DatabaseURL == ""
}

// Validate checks the operating-day window and timing settings. DAY_START
// and DAY_END must be HH:MM clock times with the start strictly before the
// end.
func (c *Config) Validate() error {
	start, err := ParseClock(c.DayStart)
	if err != nil {
		return fmt.Errorf("DAY_START: %w", err)
	}
	end, err := ParseClock(c.DayEnd)
	if err != nil {
		return fmt.Errorf("DAY_END: %w", err)
	}
	if start >= end {
		return fmt.Errorf("DAY_START %s must be before DAY_END %s", c.DayStart, c.DayEnd)
	}
	if c.TurnoverMinutes < 0 {
		return fmt.Errorf("TURNOVER_MINUTES must not be negative, got %d", c.TurnoverMinutes)
	}
	if c.FilterBudgetMS <= 0 {
		return fmt.Errorf("FILTER_BUDGET_MS must be positive, got %d", c.FilterBudgetMS)
	}
	return nil
}

// ParseClock converts an "HH:MM" clock time to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}
