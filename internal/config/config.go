// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage backend names accepted in StorageBackend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

// Config represents the application configuration. Values come from an optional
// JSON file, are filled from Defaults and finally overridden by the environment.
type Config struct {
	Env         string `json:"env,omitempty"`          // "prod" switches to JSON logs at INFO
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	CORSOrigins string `json:"cors_origins,omitempty"` // Comma-separated allowed origins; empty allows all

	// Generative text service
	APIKey string `json:"api_key,omitempty"` // Gemini API key; empty disables suggestions
	Model  string `json:"model,omitempty"`   // Overrides the standard-tier model

	// Persistence. StorageBackend may list several backends separated by commas;
	// writes then go to all of them and reads come from the first that has data.
	StorageBackend string `json:"storage_backend,omitempty"`
	StorageDir     string `json:"storage_dir,omitempty"`
	StorageKey     string `json:"storage_key,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty"`
	RedisAddr      string `json:"redis_addr,omitempty"`
	RedisDB        int    `json:"redis_db,omitempty"`
	S3Bucket       string `json:"s3_bucket,omitempty"`
	S3Prefix       string `json:"s3_prefix,omitempty"`
	S3Region       string `json:"s3_region,omitempty"`
	S3Endpoint     string `json:"s3_endpoint,omitempty"`
	S3AccessKey    string `json:"s3_access_key,omitempty"`
	S3SecretKey    string `json:"s3_secret_key,omitempty"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	dir := ".career-pulse"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".career-pulse")
	}
	return Config{
		Env:            "dev",
		Port:           8080,
		StorageBackend: BackendFile,
		StorageDir:     dir,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the file at path (when non-empty),
// merged with Defaults, then overridden by the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.ApplyEnv(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from environment variables that are set.
// GEMINI_API_KEY takes precedence over API_KEY.
func (c *Config) ApplyEnv() error {
	setString := func(dst *string, names ...string) {
		for _, name := range names {
			if v := os.Getenv(name); v != "" {
				*dst = v
				return
			}
		}
	}
	setInt := func(dst *int, name string) error {
		v := os.Getenv(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", name, err)
		}
		*dst = n
		return nil
	}

	setString(&c.Env, "APP_ENV")
	setString(&c.CORSOrigins, "CORS_ALLOWED_ORIGINS")
	setString(&c.APIKey, "GEMINI_API_KEY", "API_KEY")
	setString(&c.Model, "GEMINI_MODEL")
	setString(&c.StorageBackend, "STORAGE_BACKEND")
	setString(&c.StorageDir, "STORAGE_DIR")
	setString(&c.StorageKey, "STORAGE_KEY")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.S3Bucket, "S3_BUCKET")
	setString(&c.S3Prefix, "S3_PREFIX")
	setString(&c.S3Region, "S3_REGION")
	setString(&c.S3Endpoint, "S3_ENDPOINT")
	setString(&c.S3AccessKey, "S3_ACCESS_KEY")
	setString(&c.S3SecretKey, "S3_SECRET_KEY")

	if err := setInt(&c.Port, "PORT"); err != nil {
		return err
	}
	return setInt(&c.RedisDB, "REDIS_DB")
}

// Backends returns the configured storage backend names in order.
func (c *Config) Backends() []string {
	var names []string
	for _, name := range strings.Split(c.StorageBackend, ",") {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// AllowedOrigins returns the CORS origins, defaulting to every origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// AIEnabled reports whether a credential for the generative text service is set.
func (c *Config) AIEnabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Validate checks that the configuration has valid values and that every
// selected backend has what it needs to connect.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}

	backends := c.Backends()
	if len(backends) == 0 {
		return fmt.Errorf("config error: 'storage_backend' is empty")
	}

	seen := make(map[string]bool, len(backends))
	for _, name := range backends {
		if seen[name] {
			return fmt.Errorf("config error: storage backend %q listed twice", name)
		}
		seen[name] = true

		switch name {
		case BackendMemory:
		case BackendFile:
			if c.StorageDir == "" {
				return fmt.Errorf("config error: 'storage_dir' is required for the file backend")
			}
		case BackendPostgres:
			if c.DatabaseURL == "" {
				return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
			}
		case BackendRedis:
			if c.RedisAddr == "" {
				return fmt.Errorf("config error: 'redis_addr' is required for the redis backend")
			}
		case BackendS3:
			if c.S3Bucket == "" {
				return fmt.Errorf("config error: 's3_bucket' is required for the s3 backend")
			}
		default:
			return fmt.Errorf("config error: unknown storage backend %q", name)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	strs := []struct {
		dst *string
		def string
	}{
		{&result.Env, defaults.Env},
		{&result.CORSOrigins, defaults.CORSOrigins},
		{&result.APIKey, defaults.APIKey},
		{&result.Model, defaults.Model},
		{&result.StorageBackend, defaults.StorageBackend},
		{&result.StorageDir, defaults.StorageDir},
		{&result.StorageKey, defaults.StorageKey},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.RedisAddr, defaults.RedisAddr},
		{&result.S3Bucket, defaults.S3Bucket},
		{&result.S3Prefix, defaults.S3Prefix},
		{&result.S3Region, defaults.S3Region},
		{&result.S3Endpoint, defaults.S3Endpoint},
		{&result.S3AccessKey, defaults.S3AccessKey},
		{&result.S3SecretKey, defaults.S3SecretKey},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = s.def
		}
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}

	return result
}
