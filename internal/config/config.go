package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// DiscoveryConfig configures the grounded discovery backend and the lead pipeline.
type DiscoveryConfig struct {
	APIKey             string
	Model              string
	Grounding          bool
	Timeout            time.Duration
	DefaultLocation    string
	PhoneRegion        string
	SocialWebsiteCheck bool
}

// OperatorConfig describes the single account allowed to call the search API.
type OperatorConfig struct {
	Email        string
	PasswordHash string
	Role         string
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string
	Format string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port            string
	JWTSecret       string
	TokenTTL        time.Duration
	RateLimitSearch RateLimitConfig
	Discovery       DiscoveryConfig
	Operator        OperatorConfig
	Log             LogConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:  parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		Discovery: DiscoveryConfig{
			APIKey:          getEnv("API_KEY", os.Getenv("GEMINI_API_KEY")),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:         parseDuration(getEnv("DISCOVERY_TIMEOUT", "90s"), 90*time.Second),
			DefaultLocation: getEnv("DEFAULT_LOCATION", "Portugal"),
			PhoneRegion:     strings.ToUpper(getEnv("PHONE_REGION", "PT")),
		},
		Operator: OperatorConfig{
			Email:        strings.TrimSpace(os.Getenv("OPERATOR_EMAIL")),
			PasswordHash: strings.TrimSpace(os.Getenv("OPERATOR_PASSWORD_HASH")),
			Role:         getEnv("OPERATOR_ROLE", "operator"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	grounding, err := parseBool(getEnv("DISCOVERY_GROUNDING", "true"))
	if err != nil {
		return nil, eris.Wrap(err, "invalid DISCOVERY_GROUNDING value")
	}
	cfg.Discovery.Grounding = grounding

	socialCheck, err := parseBool(getEnv("SOCIAL_WEBSITE_CHECK", "false"))
	if err != nil {
		return nil, eris.Wrap(err, "invalid SOCIAL_WEBSITE_CHECK value")
	}
	cfg.Discovery.SocialWebsiteCheck = socialCheck

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "5/min"))
	if err != nil {
		return nil, eris.Wrap(err, "invalid RATE_LIMIT_SEARCH value")
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, eris.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, eris.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, eris.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, eris.Errorf("expected a boolean, got %q", value)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
