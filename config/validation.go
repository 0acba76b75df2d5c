package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errors []string

	envName, known := apiKeyEnv[cfg.LLMProvider]
	if !known {
		errors = append(errors, ValidationError{
			Field:   "LLM_PROVIDER",
			Message: fmt.Sprintf("unsupported provider %q", cfg.LLMProvider),
		}.Error())
	} else if cfg.LLMAPIKey == "" {
		errors = append(errors, ValidationError{
			Field:   envName,
			Message: "required environment variable or secret is not set",
		}.Error())
	}

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}.Error())
	}
	if cfg.PDFOutputPath == "" {
		errors = append(errors, ValidationError{Field: "RECIPE_PDF_PATH", Message: "must not be empty"}.Error())
	}
	if cfg.SessionSecret == "" {
		errors = append(errors, ValidationError{Field: "SESSION_SECRET", Message: "secret is required in production"}.Error())
	}
	if cfg.SessionTTL <= 0 {
		errors = append(errors, ValidationError{Field: "SESSION_TTL", Message: "must be positive"}.Error())
	}
	if cfg.RedisEnabled() && cfg.RateLimit < 1 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_PER_HOUR", Message: "must be at least 1"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
