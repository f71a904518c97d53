package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora/auditguard/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"AUDIT_SINK", "AUDIT_LOG_DIR", "LOG_FORMAT", "SERVICE_NAME", "AUDIT_MIRROR_LOGS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SinkFile, cfg.Sink)
	assert.Equal(t, ".", cfg.LogDir)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auditguard", cfg.ServiceName)
	assert.False(t, cfg.MirrorLogs)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AUDIT_SINK", "memory")
	t.Setenv("AUDIT_RULES_FILE", "rules.yaml")
	t.Setenv("AUDIT_MIRROR_LOGS", "true")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SinkMemory, cfg.Sink)
	assert.Equal(t, "rules.yaml", cfg.RulesFile)
	assert.True(t, cfg.MirrorLogs)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("AUDIT_MIRROR_LOGS", "sometimes")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Sink: SinkFile, LogDir: ".", LogFormat: "text"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"Valid", func(c *Config) {}, nil},
		{"UnknownSink", func(c *Config) { c.Sink = "kafka" }, ErrUnknownSink},
		{"FileWithoutDir", func(c *Config) { c.LogDir = "" }, ErrMissingLogDir},
		{"RedisWithoutURL", func(c *Config) { c.Sink = SinkRedis }, ErrMissingRedisURL},
		{"Memory", func(c *Config) { c.Sink = SinkMemory; c.LogDir = "" }, nil},
		{"BadFormat", func(c *Config) { c.LogFormat = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadProductRules(t *testing.T) {
	t.Run("EmptyPathGivesDefaults", func(t *testing.T) {
		rules, err := LoadProductRules("")
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultProductRules(), rules)
	})

	t.Run("OverlaysFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := "name:\n  max_length: 20\nquantity:\n  min_count: 0\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		rules, err := LoadProductRules(path)
		require.NoError(t, err)

		defaults := entity.DefaultProductRules()
		assert.Equal(t, 3, rules.Name.MinLength)
		assert.Equal(t, 20, rules.Name.MaxLength)
		assert.Equal(t, defaults.Price, rules.Price)
		assert.Equal(t, int64(0), rules.Quantity.MinCount)
		assert.Equal(t, defaults.Quantity.MaxCount, rules.Quantity.MaxCount)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadProductRules(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: [unclosed"), 0o600))

		_, err := LoadProductRules(path)
		assert.Error(t, err)
	})
}
