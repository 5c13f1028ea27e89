package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Storage:   StorageConfig{DataPath: "/some/path"},
		Recommend: RecommendConfig{CacheTTL: 10 * time.Minute, MaxResults: 50},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 20, Burst: 40},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }, "invalid log level"},
		{"empty data path", func(c *Config) { c.Storage.DataPath = "" }, "data path"},
		{"zero max results", func(c *Config) { c.Recommend.MaxResults = 0 }, "max results"},
		{"negative ttl", func(c *Config) { c.Recommend.CacheTTL = -time.Second }, "cache ttl"},
		{"zero rps", func(c *Config) { c.RateLimit.RPS = 0 }, "rps"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "burst"},
		{"no origins", func(c *Config) { c.CORS.AllowedOrigins = nil }, "CORS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_DisabledRateLimitSkipsChecks(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: false}

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "LOG_LEVEL", "DATA_PATH", "SERVER_PORT", "RECOMMEND_CACHE_TTL",
		"RECOMMEND_MAX_RESULTS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
	dataDir := t.TempDir()

	cfg, err := LoadConfig([]string{"-env-file", filepath.Join(dataDir, "missing.env"), "-data-path", dataDir})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, dataDir, cfg.Storage.DataPath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Recommend.CacheTTL)
	assert.Equal(t, 50, cfg.Recommend.MaxResults)
	assert.InDelta(t, 20.0, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, filepath.Join(dataDir, "platelist.db"), cfg.Storage.DatabasePath())
}

func TestLoadConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("RECOMMEND_MAX_RESULTS", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	dataDir := t.TempDir()

	cfg, err := LoadConfig([]string{"-env-file", "", "-data-path", dataDir, "-port", "7000"})
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Recommend.MaxResults)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("RECOMMEND_CACHE_TTL", "soon")

	_, err := LoadConfig([]string{"-env-file", "", "-data-path", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECOMMEND_CACHE_TTL")
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/plates", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "plates"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestExpandDataPath_EmptyUsesDefault(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.expandDataPath())

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "Platelist", "data"), cfg.Storage.DataPath)
}

func TestConfigValueHelpers(t *testing.T) {
	t.Setenv("PL_TEST_INT", "12")
	t.Setenv("PL_TEST_BAD_INT", "twelve")
	t.Setenv("PL_TEST_FLOAT", "2.5")
	t.Setenv("PL_TEST_BOOL", "YES")

	assert.Equal(t, "flag", getConfigValue("flag", "PL_TEST_INT", "default"))
	assert.Equal(t, "12", getConfigValue("", "PL_TEST_INT", "default"))
	assert.Equal(t, "default", getConfigValue("", "PL_TEST_MISSING", "default"))

	assert.Equal(t, 12, getIntConfigValue("", "PL_TEST_INT", 1))
	assert.Equal(t, 1, getIntConfigValue("", "PL_TEST_BAD_INT", 1))
	assert.InDelta(t, 2.5, getFloatConfigValue("", "PL_TEST_FLOAT", 1), 1e-9)
	assert.True(t, getBoolConfigValue("", "PL_TEST_BOOL", false))
	assert.False(t, getBoolConfigValue("no", "PL_TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("", "PL_TEST_MISSING", true))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := `# Test env file
PL_ENV_A=staging

# Comment line
PL_ENV_QUOTED="some value"
PL_ENV_SINGLE='another value'
PL_ENV_URL=postgres://x?a=b
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	for _, key := range []string{"PL_ENV_A", "PL_ENV_QUOTED", "PL_ENV_SINGLE", "PL_ENV_URL"} {
		t.Setenv(key, "")
	}

	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "staging", os.Getenv("PL_ENV_A"))
	assert.Equal(t, "some value", os.Getenv("PL_ENV_QUOTED"))
	assert.Equal(t, "another value", os.Getenv("PL_ENV_SINGLE"))
	assert.Equal(t, "postgres://x?a=b", os.Getenv("PL_ENV_URL"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VALID=1\nINVALID LINE\n"), 0o644))

	err := loadEnvFile(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format at line 2")
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/file/.env"))
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	t.Setenv("PL_ENV_KEEP", "original-value")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PL_ENV_KEEP=new-value"), 0o644))

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "original-value", os.Getenv("PL_ENV_KEEP"))
}
