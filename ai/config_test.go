package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.openai.com/v1", cfg.VisionHost)
	assert.Equal(t, "gpt-4o", cfg.VisionModel)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "https://api.openai.com/v1", cfg.VisionHost)
		assert.Equal(t, "gpt-4o", cfg.VisionModel)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithVisionHost("http://localhost:11434/v1"))

		assert.Equal(t, "http://localhost:11434/v1", cfg.VisionHost)
	})

	t.Run("with custom model and key", func(t *testing.T) {
		cfg := NewConfig(
			WithVisionModel("llava:13b"),
			WithAPIKey("sk-test"),
		)

		assert.Equal(t, "llava:13b", cfg.VisionModel)
		assert.Equal(t, "sk-test", cfg.APIKey)
	})

	t.Run("with custom timeout", func(t *testing.T) {
		cfg := NewConfig(WithRequestTimeout(5 * time.Second))

		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"adds v1 suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"adds v1 after trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"keeps existing v1", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"empty host untouched", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{VisionHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.VisionHost)
		})
	}
}

func TestConfigNormalize_DefaultsTimeout(t *testing.T) {
	cfg := &Config{VisionHost: "http://localhost:11434/v1", VisionModel: "gpt-4o"}
	cfg.Normalize()
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("sk-test"))
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing api key is not an error", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := NewConfig()
		cfg.VisionHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig()
		cfg.VisionModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes host", func(t *testing.T) {
		cfg := NewConfig(WithVisionHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.VisionHost)
	})
}
