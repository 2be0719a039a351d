package main

import "os"

// Config holds all service configuration, loaded from the environment.
type Config struct {
	Port      string
	DBPath    string
	ModelPath string
	DNSServer string

	VTAPIKey     string
	GeminiAPIKey string

	LogLevel string
}

// LoadConfig reads configuration from environment variables, applying
// defaults. API keys are optional; the lookups that need them degrade to
// neutral results when absent.
func LoadConfig() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "threat_logs.db"),
		ModelPath:    os.Getenv("MODEL_PATH"),
		DNSServer:    getEnv("DNS_SERVER", "8.8.8.8:53"),
		VTAPIKey:     firstEnv("VT_API_KEY", "VIRUSTOTAL_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}
