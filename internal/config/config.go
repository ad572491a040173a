package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the service settings.
type Config struct {
	Addr      string `yaml:"addr" validate:"required"`
	FontDir   string `yaml:"font_dir"`
	PublicURL string `yaml:"public_url" validate:"omitempty,url"`
	LogLevel  string `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogHuman  bool   `yaml:"log_human"`
	// DownloadTimeoutSeconds bounds image payloads given by URL.
	DownloadTimeoutSeconds int `yaml:"download_timeout_seconds" validate:"gte=1,lte=120"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:                   ":8080",
		PublicURL:              "http://localhost:8080",
		LogLevel:               "info",
		DownloadTimeoutSeconds: 10,
	}
}

// Load builds a Config from defaults, an optional YAML file, an optional
// .env file and the process environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if v := os.Getenv("POSTCARD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("POSTCARD_FONT_DIR"); v != "" {
		cfg.FontDir = v
	}
	if v := os.Getenv("POSTCARD_PUBLIC_URL"); v != "" {
		cfg.PublicURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("POSTCARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

var validate = validator.New()

// Validate checks field constraints and reports the first failing field.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return fmt.Errorf("config: %s failed validation for tag '%s'", strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("config: %w", err)
}
