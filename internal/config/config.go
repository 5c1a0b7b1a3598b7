// Package config loads server configuration from the environment with
// sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
	DefaultHTTPTimeout  = 30 * time.Second
)

// Config holds the server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	HTTPTimeout  time.Duration

	// Seed, when non-zero, seeds every new session deterministically.
	// Zero means seed from the clock.
	Seed int64
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() Config {
	return Config{
		Addr:         DefaultAddr,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
		HTTPTimeout:  DefaultHTTPTimeout,
	}
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" && !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}
	if addr == "" {
		addr = envDefault("BIRZHA_ADDR", DefaultAddr)
	}

	return Config{
		Addr:         addr,
		ReadTimeout:  envDurationDefault("BIRZHA_READ_TIMEOUT", DefaultReadTimeout),
		WriteTimeout: envDurationDefault("BIRZHA_WRITE_TIMEOUT", DefaultWriteTimeout),
		IdleTimeout:  envDurationDefault("BIRZHA_IDLE_TIMEOUT", DefaultIdleTimeout),
		HTTPTimeout:  envDurationDefault("BIRZHA_HTTP_TIMEOUT", DefaultHTTPTimeout),
		Seed:         envInt64Default("BIRZHA_SEED", 0),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
