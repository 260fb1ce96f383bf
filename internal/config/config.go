package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envAuthIssuerDomain      = "AUTH_ISSUER_DOMAIN"
	envAuthAudience          = "AUTH_AUDIENCE"
	envAuthAlgorithms        = "AUTH_ALGORITHMS"
	envAuthKeySetCacheTTL    = "AUTH_JWKS_CACHE_TTL"
	envAuthFetchTimeout      = "AUTH_FETCH_TIMEOUT"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "drinkservice"
	defaultDBUser             = "drinkservice_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultAuthAlgorithms     = "RS256"
	defaultKeySetCacheTTL     = 5 * time.Minute
	defaultAuthFetchTimeout   = 5 * time.Second

	errPortRequiredFmt         = "PORT must be set"
	errDBPasswordRequiredFmt   = "DB_PASSWORD must be set"
	errIssuerDomainRequiredFmt = "AUTH_ISSUER_DOMAIN must be set"
	errIssuerDomainSchemeFmt   = "AUTH_ISSUER_DOMAIN must be a bare domain, not a URL"
	errAudienceRequiredFmt     = "AUTH_AUDIENCE must be set"
	errAlgorithmsRequiredFmt   = "AUTH_ALGORITHMS must contain at least one algorithm"
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

// AuthConfig is the static, process-wide verification policy: which issuer
// is trusted, for which audience, and which signing algorithms are allowed.
type AuthConfig struct {
	IssuerDomain string
	Audience     string
	Algorithms   []string
	KeySetTTL    time.Duration
	FetchTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: requireEnv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		Auth: AuthConfig{
			IssuerDomain: requireEnv(envAuthIssuerDomain),
			Audience:     requireEnv(envAuthAudience),
			Algorithms:   getListEnv(envAuthAlgorithms, defaultAuthAlgorithms),
			KeySetTTL:    getDurationEnv(envAuthKeySetCacheTTL, defaultKeySetCacheTTL),
			FetchTimeout: getDurationEnv(envAuthFetchTimeout, defaultAuthFetchTimeout),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	if c.Auth.IssuerDomain == "" {
		return fmt.Errorf(errIssuerDomainRequiredFmt)
	}

	if strings.Contains(c.Auth.IssuerDomain, "://") {
		return fmt.Errorf(errIssuerDomainSchemeFmt)
	}

	if c.Auth.Audience == "" {
		return fmt.Errorf(errAudienceRequiredFmt)
	}

	if len(c.Auth.Algorithms) == 0 {
		return fmt.Errorf(errAlgorithmsRequiredFmt)
	}

	return nil
}

// IssuerURL is the exact issuer claim expected in verified tokens.
func (c *AuthConfig) IssuerURL() string {
	return fmt.Sprintf("https://%s/", c.IssuerDomain)
}

// JWKSURL is the well-known location of the issuer's public key set.
func (c *AuthConfig) JWKSURL() string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", c.IssuerDomain)
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(messages.requiredEnvNotSet(key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// A bare integer means seconds.
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func getListEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
