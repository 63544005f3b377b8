package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/soaringjerry/evoa/internal/services"
	"github.com/soaringjerry/evoa/internal/utils"
)

type Config struct {
	Addr      string
	Commit    string
	BuildTime string

	Gemini          services.GeminiConfig
	AnalysisTimeout time.Duration

	Upload services.UploadConfig

	AllowedOrigins []string
	TokenSecret    string
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string
}

// LoadDotEnv reads .env files into the environment when present. Missing
// files are ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load reads the server configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:      utils.SafeEnv("EVOA_ADDR", ":8080"),
		Commit:    utils.SafeEnv("EVOA_COMMIT", ""),
		BuildTime: utils.SafeEnv("EVOA_BUILD_TIME", ""),
		Gemini: services.GeminiConfig{
			APIKey:  utils.SafeEnv("GEMINI_API_KEY", ""),
			Model:   utils.SafeEnv("GEMINI_MODEL", services.DefaultGeminiModel),
			BaseURL: utils.SafeEnv("GEMINI_BASE_URL", ""),
		},
		AllowedOrigins: utils.SafeEnvList("EVOA_ALLOWED_ORIGINS", []string{"*"}),
		TokenSecret:    utils.SafeEnv("EVOA_TOKEN_SECRET", ""),
		LogLevel:       utils.SafeEnv("EVOA_LOG_LEVEL", "info"),
		LogFormat:      utils.SafeEnv("EVOA_LOG_FORMAT", "text"),
	}
	var errs []error
	var err error
	if cfg.AnalysisTimeout, err = utils.SafeEnvDuration("EVOA_ANALYSIS_TIMEOUT", services.DefaultAnalysisTimeout); err != nil {
		errs = append(errs, err)
	}
	maxDuration, err := utils.SafeEnvInt("EVOA_UPLOAD_MAX_DURATION", services.DefaultMaxDuration)
	if err != nil {
		errs = append(errs, err)
	}
	ttl, err := utils.SafeEnvDuration("EVOA_UPLOAD_URL_TTL", services.DefaultUploadURLTTL)
	if err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitRPS, err = utils.SafeEnvFloat("EVOA_RATE_LIMIT_RPS", 1); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitBurst, err = utils.SafeEnvInt("EVOA_RATE_LIMIT_BURST", 5); err != nil {
		errs = append(errs, err)
	}
	cfg.Upload = services.UploadConfig{
		AccountID:      utils.SafeEnv("CLOUDFLARE_ACCOUNT_ID", ""),
		APIToken:       utils.SafeEnv("CLOUDFLARE_API_TOKEN", ""),
		BaseURL:        utils.SafeEnv("CLOUDFLARE_API_BASE", services.DefaultCloudflareBase),
		MaxDuration:    maxDuration,
		URLTTL:         ttl,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if len(errs) == 0 {
		errs = append(errs, cfg.validate()...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error
	if c.AnalysisTimeout <= 0 {
		errs = append(errs, errors.New("EVOA_ANALYSIS_TIMEOUT must be positive"))
	}
	if c.Upload.MaxDuration <= 0 {
		errs = append(errs, errors.New("EVOA_UPLOAD_MAX_DURATION must be positive"))
	}
	if c.Upload.URLTTL <= 0 {
		errs = append(errs, errors.New("EVOA_UPLOAD_URL_TTL must be positive"))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("rate limit values must not be negative"))
	}
	return errs
}

// RateLimitEnabled reports whether proxy routes get a per-client limiter.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0 && c.RateLimitBurst > 0
}
