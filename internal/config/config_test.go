package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ModeRemote, cfg.AnalysisMode)
	assert.Equal(t, "http://localhost:5000", cfg.MLAPIURL)
	assert.Equal(t, 5*time.Second, cfg.MLHealthTimeout)
	assert.Equal(t, 10*time.Second, cfg.MLAnalyzeTimeout)
	assert.True(t, cfg.AdvancedRules)
	assert.Equal(t, 12, cfg.HistoryMonths)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.DigestEnabled())
}

func TestNewConfigFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ANALYSIS_MODE", "LOCAL")
	t.Setenv("ML_API_URL", "http://ml:5000/")
	t.Setenv("ML_HEALTH_TIMEOUT", "2s")
	t.Setenv("ML_ANALYZE_TIMEOUT", "1m")
	t.Setenv("ADVANCED_RULES", "false")
	t.Setenv("HISTORY_MONTHS", "6")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DIGEST_SCHEDULE", "0 8 * * 1")
	t.Setenv("DIGEST_RECIPIENT", "ops@example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, cfg.AnalysisMode)
	assert.Equal(t, "http://ml:5000", cfg.MLAPIURL)
	assert.Equal(t, 2*time.Second, cfg.MLHealthTimeout)
	assert.Equal(t, time.Minute, cfg.MLAnalyzeTimeout)
	assert.False(t, cfg.AdvancedRules)
	assert.Equal(t, 6, cfg.HistoryMonths)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.DigestEnabled())
}

func TestNewConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "empty db", key: "DB_CONN", value: ""},
		{name: "empty jwt secret", key: "JWT_SECRET", value: ""},
		{name: "unknown mode", key: "ANALYSIS_MODE", value: "hybrid"},
		{name: "bad timeout", key: "ML_HEALTH_TIMEOUT", value: "soon"},
		{name: "negative timeout", key: "ML_ANALYZE_TIMEOUT", value: "-1s"},
		{name: "bad bool", key: "ADVANCED_RULES", value: "maybe"},
		{name: "bad months", key: "HISTORY_MONTHS", value: "twelve"},
		{name: "zero months", key: "HISTORY_MONTHS", value: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
