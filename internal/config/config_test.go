package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test. t.Setenv(key, "") is not
// enough for LOADTEST_ENDPOINTS, where an empty value means an empty list.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, ok := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

func clearLoadTestEnv(t *testing.T) {
	for _, key := range []string{"LOADTEST_BASE_URL", "LOADTEST_REQUEST_COUNT", "LOADTEST_TIMEOUT_SECONDS", "LOADTEST_ENDPOINTS", "LOADTEST_DEBUG"} {
		unsetEnv(t, key)
	}
}

func TestLoadLoadTestConfigDefaults(t *testing.T) {
	clearLoadTestEnv(t)

	cfg, err := LoadLoadTestConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, 100, cfg.RequestCount)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"health", "ready", "payload", "metrics"}, cfg.Endpoints)
	assert.False(t, cfg.Debug)
}

func TestLoadLoadTestConfigOverrides(t *testing.T) {
	clearLoadTestEnv(t)
	t.Setenv("LOADTEST_BASE_URL", "http://127.0.0.1:8080/")
	t.Setenv("LOADTEST_REQUEST_COUNT", "3")
	t.Setenv("LOADTEST_TIMEOUT_SECONDS", "1")
	t.Setenv("LOADTEST_ENDPOINTS", " health , payload,,")
	t.Setenv("LOADTEST_DEBUG", "true")

	cfg, err := LoadLoadTestConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	assert.Equal(t, 3, cfg.RequestCount)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, []string{"health", "payload"}, cfg.Endpoints)
	assert.True(t, cfg.Debug)
}

func TestLoadLoadTestConfigEmptyEndpointList(t *testing.T) {
	clearLoadTestEnv(t)
	t.Setenv("LOADTEST_ENDPOINTS", "")

	cfg, err := LoadLoadTestConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Endpoints)
}

func TestLoadLoadTestConfigIgnoresAmbientEndpoints(t *testing.T) {
	t.Setenv("LOADTEST_ENDPOINTS", "ready")
	clearLoadTestEnv(t)

	cfg, err := LoadLoadTestConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"health", "ready", "payload", "metrics"}, cfg.Endpoints)
}

func TestLoadLoadTestConfigInvalidNumbersFallBack(t *testing.T) {
	clearLoadTestEnv(t)
	t.Setenv("LOADTEST_REQUEST_COUNT", "many")

	cfg, err := LoadLoadTestConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.RequestCount)
}

func TestLoadLoadTestConfigRejectsNegativeCount(t *testing.T) {
	clearLoadTestEnv(t)
	t.Setenv("LOADTEST_REQUEST_COUNT", "-1")

	_, err := LoadLoadTestConfig()
	assert.Error(t, err)
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("APP_MAX_RANDOM_NUMBER", "50")
	t.Setenv("APP_METRIC_DECIMAL_PLACES", "100")
	t.Setenv("READ_TIMEOUT_SECONDS", "")
	t.Setenv("WRITE_TIMEOUT_SECONDS", "7")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ServerPort)
	assert.Equal(t, 50, cfg.MaxRandomNumber)
	assert.Equal(t, 100.0, cfg.MetricDecimalPlaces)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 7*time.Second, cfg.WriteTimeout)
}

func TestLoadServerConfigErrors(t *testing.T) {
	testCases := []struct {
		name       string
		port       string
		maxRandom  string
		decimals   string
		missingEnv bool
	}{
		{"missing port", "", "50", "100", true},
		{"non numeric port", "http", "50", "100", false},
		{"missing max random", "3000", "", "100", true},
		{"zero max random", "3000", "0", "100", false},
		{"missing decimals", "3000", "50", "", true},
		{"non numeric decimals", "3000", "50", "two", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", tc.port)
			t.Setenv("APP_MAX_RANDOM_NUMBER", tc.maxRandom)
			t.Setenv("APP_METRIC_DECIMAL_PLACES", tc.decimals)

			cfg, err := LoadServerConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tc.missingEnv {
				assert.ErrorIs(t, err, ErrMissingEnv)
			}
		})
	}
}
