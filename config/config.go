package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Origins allowed to call the JSON API from a browser
	AllowedOrigins []string
	// Proxies whose X-Forwarded-For header is trusted for the client IP
	TrustedProxies []string

	// Generation service configuration
	LLMProvider string
	LLMModel    string
	LLMAPIKey   string
	LLMAPIURL   string

	// Session configuration
	SessionSecret string
	SessionTTL    time.Duration

	// Document configuration
	PDFOutputPath string

	// Redis configuration, only used by the rate limiter
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
	RateLimit     int

	// S3 archive configuration
	S3BucketName string
	AWSRegion    string
	S3Endpoint   string
}

// Supported generation providers
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
)

// apiKeyEnv maps a provider to the environment variable holding its key
var apiKeyEnv = map[string]string{
	ProviderGemini:   "GOOGLE_API_KEY",
	ProviderOpenAI:   "OPENAI_API_KEY",
	ProviderDeepSeek: "DEEPSEEK_API_KEY",
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
		LLMProvider:    strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		LLMModel:       os.Getenv("LLM_MODEL"),
		LLMAPIURL:      os.Getenv("LLM_API_URL"),
		PDFOutputPath:  getEnv("RECIPE_PDF_PATH", "recipe.pdf"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisURL:       os.Getenv("REDIS_URL"),
		S3BucketName:   os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:      os.Getenv("AWS_REGION"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		SessionTTL:     24 * time.Hour,
		RateLimit:      20,
	}

	var err error
	if cfg.RedisPassword, err = readSecret("REDIS_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.SessionSecret, err = readSecret("SESSION_SECRET"); err != nil {
		return nil, err
	}
	if envName, ok := apiKeyEnv[cfg.LLMProvider]; ok {
		if cfg.LLMAPIKey, err = readSecret(envName); err != nil {
			return nil, err
		}
	}

	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getEnvInt("RATE_LIMIT_PER_HOUR", cfg.RateLimit); err != nil {
		return nil, err
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}

	if cfg.SessionSecret == "" && env != Production {
		cfg.SessionSecret = "development-session-secret"
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a Redis server was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ArchiveEnabled reports whether generated documents can be shared through S3
func (c *Config) ArchiveEnabled() bool {
	return c.S3BucketName != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// readSecret returns the value of the named environment variable, falling back
// to the contents of the file named by NAME_FILE, then to SECRETS_DIR/name.
func readSecret(name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return strings.TrimSpace(v), nil
	}

	if path := os.Getenv(name + "_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read secret %s: %w", name, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, strings.ToLower(name))); err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	return "", nil
}
