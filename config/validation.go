package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is complete for the current
// environment. Development gets permissive defaults; production must carry
// real secrets.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must not be empty"}.Error())
	}
	if cfg.DBHost == "" {
		errs = append(errs, ValidationError{"DB_HOST", "must not be empty"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{"DB_NAME", "must not be empty"}.Error())
	}

	if IsProduction() {
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{"JWT_SECRET", "required in production"}.Error())
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "required in production"}.Error())
		}
		if cfg.DBSSLMode == "disable" {
			errs = append(errs, ValidationError{"DB_SSL_MODE", "must not be 'disable' in production"}.Error())
		}
	} else if cfg.JWTSecret == "" {
		// A fixed secret is acceptable for local development only.
		cfg.JWTSecret = "dev-secret-change-me"
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
