package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

const defaultJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminToken   string
	JWKSURL      string
	Issuer       string
	Audience     string
}

// ParseFlags validates flags and fills in env-variable fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("keyring-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Identity provider config
	fs.StringVar(&cfg.JWKSURL, "jwks-url", "", "Identity provider JWKS endpoint")
	fs.StringVar(&cfg.Issuer, "issuer", "", "Expected token issuer")
	fs.StringVar(&cfg.Audience, "audience", "", "Expected token audience")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Admin bearer token (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5172 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if cfg.JWKSURL == "" {
		cfg.JWKSURL = os.Getenv("JWKS_URL")
		if cfg.JWKSURL == "" {
			cfg.JWKSURL = defaultJWKSURL
		}
	}

	if cfg.Issuer == "" {
		cfg.Issuer = os.Getenv("ISSUER_BASE_URL")
	}
	if cfg.Issuer == "" {
		return Config{}, errors.New("ISSUER_BASE_URL required")
	}

	if cfg.Audience == "" {
		cfg.Audience = os.Getenv("AUDIENCE")
	}
	if cfg.Audience == "" {
		return Config{}, errors.New("AUDIENCE required")
	}

	// Secrets - MUST be provided
	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	}
	if cfg.AdminToken == "" {
		return Config{}, errors.New("ADMIN_TOKEN required")
	}

	return cfg, nil
}
