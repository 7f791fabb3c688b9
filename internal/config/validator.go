package config

import (
	"errors"
	"strings"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				messages = append(messages, e.StructNamespace()+": failed '"+e.Tag()+"' validation")
			}
			return errorwrapper.NewError("config validation failed: %s", strings.Join(messages, "; "))
		}
		return errorwrapper.WrapError(err, "config validation failed")
	}

	if cfg.CacheConfig.Backend == CacheBackendFile && cfg.CacheConfig.Dir == "" {
		return errorwrapper.NewValidationError("cache_config.dir", cfg.CacheConfig.Dir, "cache directory required for file backend")
	}
	if cfg.CacheConfig.Backend == CacheBackendSQLite && cfg.CacheConfig.SQLitePath == "" {
		return errorwrapper.NewValidationError("cache_config.sqlite_path", cfg.CacheConfig.SQLitePath, "sqlite path required for sqlite backend")
	}

	return nil
}
