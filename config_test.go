package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "MODEL_PATH", "DNS_SERVER",
		"VT_API_KEY", "VIRUSTOTAL_API_KEY", "GEMINI_API_KEY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "threat_logs.db", cfg.DBPath)
	assert.Empty(t, cfg.ModelPath)
	assert.Equal(t, "8.8.8.8:53", cfg.DNSServer)
	assert.Empty(t, cfg.VTAPIKey)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/var/lib/scans.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/var/lib/scans.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestVTKeyAliases(t *testing.T) {
	t.Setenv("VT_API_KEY", "")
	t.Setenv("VIRUSTOTAL_API_KEY", "legacy-key")
	assert.Equal(t, "legacy-key", LoadConfig().VTAPIKey)

	t.Setenv("VT_API_KEY", "primary-key")
	assert.Equal(t, "primary-key", LoadConfig().VTAPIKey)
}
