package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingEnv = errors.New("required environment variable is not set")

// LoadTestConfig is the immutable input of a prober run.
type LoadTestConfig struct {
	BaseURL      string
	RequestCount int
	Timeout      time.Duration
	Endpoints    []string
	Debug        bool
}

type ServerConfig struct {
	ServerPort          string
	MaxRandomNumber     int
	MetricDecimalPlaces float64
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
}

func DefaultLoadTestConfig() LoadTestConfig {
	return LoadTestConfig{
		BaseURL:      "http://localhost:3000",
		RequestCount: 100,
		Timeout:      5 * time.Second,
		Endpoints:    []string{"health", "ready", "payload", "metrics"},
	}
}

func LoadLoadTestConfig() (LoadTestConfig, error) {
	// Load .env file if it exists, but don't return error if it doesn't
	godotenv.Load()

	def := DefaultLoadTestConfig()
	cfg := LoadTestConfig{
		BaseURL:      strings.TrimSuffix(getEnvWithDefault("LOADTEST_BASE_URL", def.BaseURL), "/"),
		RequestCount: getEnvAsInt("LOADTEST_REQUEST_COUNT", def.RequestCount),
		Timeout:      time.Duration(getEnvAsInt("LOADTEST_TIMEOUT_SECONDS", int(def.Timeout/time.Second))) * time.Second,
		Endpoints:    def.Endpoints,
		Debug:        getEnvAsBool("LOADTEST_DEBUG", false),
	}

	if value, ok := os.LookupEnv("LOADTEST_ENDPOINTS"); ok {
		cfg.Endpoints = splitList(value)
	}

	if cfg.RequestCount < 0 {
		return LoadTestConfig{}, fmt.Errorf("LOADTEST_REQUEST_COUNT must not be negative, got %d", cfg.RequestCount)
	}
	if cfg.Timeout <= 0 {
		return LoadTestConfig{}, fmt.Errorf("LOADTEST_TIMEOUT_SECONDS must be positive, got %s", cfg.Timeout)
	}

	return cfg, nil
}

func LoadServerConfig() (*ServerConfig, error) {
	godotenv.Load()

	port, err := requireEnvAsInt("PORT")
	if err != nil {
		return nil, err
	}

	maxRandom, err := requireEnvAsInt("APP_MAX_RANDOM_NUMBER")
	if err != nil {
		return nil, err
	}
	if maxRandom <= 0 {
		return nil, fmt.Errorf("APP_MAX_RANDOM_NUMBER must be positive, got %d", maxRandom)
	}

	raw := os.Getenv("APP_METRIC_DECIMAL_PLACES")
	if raw == "" {
		return nil, fmt.Errorf("APP_METRIC_DECIMAL_PLACES: %w", ErrMissingEnv)
	}
	decimalPlaces, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("APP_METRIC_DECIMAL_PLACES needs to be numeric: %w", err)
	}
	if decimalPlaces <= 0 {
		return nil, fmt.Errorf("APP_METRIC_DECIMAL_PLACES must be positive, got %v", decimalPlaces)
	}

	return &ServerConfig{
		ServerPort:          fmt.Sprintf(":%d", port),
		MaxRandomNumber:     maxRandom,
		MetricDecimalPlaces: decimalPlaces,
		ReadTimeout:         time.Duration(getEnvAsInt("READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout:        time.Duration(getEnvAsInt("WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
	}, nil
}

// Helper function to get environment variable with default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func requireEnvAsInt(key string) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, fmt.Errorf("%s: %w", key, ErrMissingEnv)
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s needs to be numeric: %w", key, err)
	}
	return intValue, nil
}

// An empty value yields an empty list, which disables the probe loop.
func splitList(value string) []string {
	list := []string{}
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
