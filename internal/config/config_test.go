package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// No env set in tests; defaults apply.
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://graph.facebook.com", cfg.APIBaseURL)
	assert.Equal(t, "v19.0", cfg.APIVersion)
	assert.True(t, cfg.Enabled)
	assert.False(t, cfg.CallingEnabled)
	assert.Equal(t, 0, cfg.MaxCallDuration)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CALLING_ENABLED", "true")
	t.Setenv("MAX_CALL_DURATION", "3600")
	t.Setenv("DB_DRIVER", "postgres")

	cfg := LoadConfig()

	assert.True(t, cfg.CallingEnabled)
	assert.Equal(t, 3600, cfg.MaxCallDuration)
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CALLING_ENABLED", "definitely")
	t.Setenv("MAX_CALL_DURATION", "one hour")

	cfg := LoadConfig()

	assert.False(t, cfg.CallingEnabled)
	assert.Equal(t, 0, cfg.MaxCallDuration)
}
