// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mulbot/mulchat/internal/client"
	"github.com/mulbot/mulchat/internal/service/cache"
)

// Config aggregates the settings for both entrypoints.
type Config struct {
	Server ServerConfig
	Client ClientConfig
	Cache  CacheConfig
	// LogLevel is a zerolog level name; empty means info.
	LogLevel string
}

// ServerConfig describes the dev server.
type ServerConfig struct {
	Addr string
	// StepDelay paces the replayed status frames.
	StepDelay time.Duration
}

// ClientConfig describes the backend the CLI talks to.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig bounds the dev server's response cache.
type CacheConfig struct {
	MaxEntries int
	TTL        time.Duration
}

// Load reads every setting from the environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	clientCfg, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	cacheCfg, err := loadCacheConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Client:   clientCfg,
		Cache:    cacheCfg,
		LogLevel: strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	delayMS, err := parseOptionalIntEnv("STREAM_STEP_DELAY_MS")
	if err != nil {
		return ServerConfig{}, err
	}
	delay := 300 * time.Millisecond
	if delayMS != nil {
		delay = time.Duration(*delayMS) * time.Millisecond
	}

	return ServerConfig{Addr: addr, StepDelay: delay}, nil
}

func loadClientConfig() (ClientConfig, error) {
	timeoutSeconds, err := parseOptionalIntEnv("MULCHAT_TIMEOUT_SECONDS")
	if err != nil {
		return ClientConfig{}, err
	}
	timeout := client.DefaultTimeout
	if timeoutSeconds != nil {
		timeout = time.Duration(*timeoutSeconds) * time.Second
	}

	return ClientConfig{
		BaseURL: getEnvOrDefault("MULCHAT_BASE_URL", client.DefaultBaseURL),
		Timeout: timeout,
	}, nil
}

func loadCacheConfig() (CacheConfig, error) {
	maxEntries, err := parseOptionalIntEnv("CACHE_MAX_ENTRIES")
	if err != nil {
		return CacheConfig{}, err
	}
	ttlSeconds, err := parseOptionalIntEnv("CACHE_TTL_SECONDS")
	if err != nil {
		return CacheConfig{}, err
	}

	cfg := CacheConfig{
		MaxEntries: cache.DefaultMaxEntries,
		TTL:        cache.DefaultTTL,
	}
	if maxEntries != nil {
		cfg.MaxEntries = *maxEntries
	}
	if ttlSeconds != nil {
		cfg.TTL = time.Duration(*ttlSeconds) * time.Second
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
