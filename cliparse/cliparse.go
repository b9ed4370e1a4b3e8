package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"5000"`
	DatabaseURL  string `env:"DATABASE_URL" envDefault:"voting_system.db"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// Secrets
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	IPHashSalt string        `env:"IP_HASH_SALT"`

	// Seed data
	AdminUsername  string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword  string `env:"ADMIN_PASSWORD"`
	SeedCandidates bool   `env:"SEED_CANDIDATES" envDefault:"true"`

	// Optional results cache
	RedisURL        string        `env:"REDIS_URL"`
	ResultsCacheTTL time.Duration `env:"RESULTS_CACHE_TTL" envDefault:"30s"`
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("hackathon-voting", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Token signing secret (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "Token lifetime")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", cfg.IPHashSalt, "Salt for hashing voter IPs (defaults to the JWT secret)")

	fs.StringVar(&cfg.AdminUsername, "admin-user", cfg.AdminUsername, "Seeded admin username")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Seeded admin password (prefer env)")
	fs.BoolVar(&cfg.SeedCandidates, "seed-candidates", cfg.SeedCandidates, "Seed sample candidates into an empty table")

	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for the results cache (disabled when empty)")
	fs.DurationVar(&cfg.ResultsCacheTTL, "cache-ttl", cfg.ResultsCacheTTL, "Results cache TTL")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("token TTL must be positive")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = cfg.JWTSecret
	}

	return cfg, nil
}
