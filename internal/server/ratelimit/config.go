package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to requests matching Path and Method.
// Path segments may be "*" to match any single segment; a trailing "/" makes
// the pattern match every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig is used when NewLimiter gets a nil config.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	suggestionLimit := getEnvInt("RATE_LIMIT_SUGGESTION_LIMIT", 0)
	for i := range cfg.EndpointConfigs {
		if suggestionLimit > 0 && cfg.EndpointConfigs[i].Path == suggestionPath {
			cfg.EndpointConfigs[i].Limit = suggestionLimit
		}
	}
	return cfg
}

const suggestionPath = "/resumes/*/suggestions/"

// DefaultEndpointConfigs returns the endpoint-specific limits. More specific
// patterns come first because matching stops at the first hit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Generated content costs a provider call (strictest)
		{Path: suggestionPath, Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		// Writes, each one persisted
		{Path: "/resumes", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/resumes/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/resumes/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/resumes/", Method: "DELETE", Limit: 300, Window: time.Minute, Burst: 30},

		// Reads use the default limit; health and metrics are unlimited
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
