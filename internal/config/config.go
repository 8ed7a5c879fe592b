package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server   ServerConfig
	Honeypot HoneypotConfig
	LogLevel slog.Level
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// HoneypotConfig tunes detection, engagement and reporting.
type HoneypotConfig struct {
	APIKey           string
	CallbackURL      string
	CallbackTimeout  time.Duration
	KeywordThreshold int
	ReportThreshold  int
	Keywords         []string
	PhonePattern     string
	SessionTTL       time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	honeypot, err := loadHoneypotConfig()
	if err != nil {
		return nil, err
	}

	level, err := parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Honeypot: honeypot, LogLevel: level}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadHoneypotConfig() (HoneypotConfig, error) {
	keywordThreshold, err := parseIntEnv("HONEYPOT_KEYWORD_THRESHOLD", 2)
	if err != nil {
		return HoneypotConfig{}, err
	}
	if keywordThreshold < 1 {
		return HoneypotConfig{}, fmt.Errorf("HONEYPOT_KEYWORD_THRESHOLD must be at least 1, got %d", keywordThreshold)
	}

	reportThreshold, err := parseIntEnv("HONEYPOT_REPORT_THRESHOLD", 6)
	if err != nil {
		return HoneypotConfig{}, err
	}
	if reportThreshold < 1 {
		return HoneypotConfig{}, fmt.Errorf("HONEYPOT_REPORT_THRESHOLD must be at least 1, got %d", reportThreshold)
	}

	callbackTimeout, err := parseDurationEnv("HONEYPOT_CALLBACK_TIMEOUT", 5*time.Second)
	if err != nil {
		return HoneypotConfig{}, err
	}

	sessionTTL, err := parseDurationEnv("HONEYPOT_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return HoneypotConfig{}, err
	}

	return HoneypotConfig{
		APIKey:           strings.TrimSpace(os.Getenv("HONEYPOT_API_KEY")),
		CallbackURL:      getEnvOrDefault("HONEYPOT_CALLBACK_URL", "https://hackathon.guvi.in/api/updateHoneyPotFinalResult"),
		CallbackTimeout:  callbackTimeout,
		KeywordThreshold: keywordThreshold,
		ReportThreshold:  reportThreshold,
		Keywords:         parseListEnv("HONEYPOT_KEYWORDS"),
		PhonePattern:     strings.TrimSpace(os.Getenv("HONEYPOT_PHONE_PATTERN")),
		SessionTTL:       sessionTTL,
	}, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL value: %q", raw)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// parseListEnv splits a comma-separated value, dropping empty entries.
// Returns nil when the variable is unset so callers can fall back to defaults.
func parseListEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}
