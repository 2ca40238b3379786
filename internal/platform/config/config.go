package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr              string        `envconfig:"APP_ADDR" default:":8080"`
	Environment       string        `envconfig:"APP_ENV" default:"development"`
	DatabaseURL       string        `envconfig:"DATABASE_URL"`
	DBMaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns        int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"1h"`
	Timezone          string        `envconfig:"APP_TIMEZONE" default:"America/Mexico_City"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat         string        `envconfig:"LOG_FORMAT" default:"json"`
	RunMigrations     bool          `envconfig:"RUN_MIGRATIONS" default:"true"`
	RunSeed           bool          `envconfig:"RUN_SEED" default:"true"`
	SeedAdminUsername string        `envconfig:"SEED_ADMIN_USERNAME"`
	SeedAdminPassword string        `envconfig:"SEED_ADMIN_PASSWORD"`
	SeedAdminCURP     string        `envconfig:"SEED_ADMIN_CURP" default:"ADMN000000HDFXXX00"`
	MaxBodyBytes      int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	LoginRateLimit    int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow   time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
	RedisURL          string        `envconfig:"REDIS_URL"`
	MetricsEnabled    bool          `envconfig:"METRICS_ENABLED" default:"true"`
	CORSOrigins       []string      `envconfig:"CORS_ORIGINS" default:"*"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads the process environment. It does not validate.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// Location resolves APP_TIMEZONE, falling back to the host zone.
func (c Config) Location() *time.Location {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 bytes in production")
		}
		if c.RunSeed && c.SeedAdminUsername != "" && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive")
	}
	if c.LoginRateWindow <= 0 {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be positive")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return nil
}
