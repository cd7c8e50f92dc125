package config

import (
	"strings"
	"testing"
)

func validProduction() *Config {
	return &Config{
		Environment:          EnvProduction,
		SessionAuthKey:       strings.Repeat("a", 32),
		SessionEncryptionKey: strings.Repeat("b", 32),
		LogLevel:             "info",
		CORSAllowedOrigins:   "https://fnbrowser.app",
		PageSize:             20,
	}
}

func TestValidateForProduction_NonProductionSkips(t *testing.T) {
	cfg := &Config{Environment: EnvDevelopment, LogLevel: "debug"}
	if err := ValidateForProduction(cfg); err != nil {
		t.Fatalf("expected nil for development, got %v", err)
	}
}

func TestValidateForProduction_Valid(t *testing.T) {
	if err := ValidateForProduction(validProduction()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateForProduction_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"short encryption key", func(c *Config) { c.SessionEncryptionKey = "short" }, "SESSION_ENCRYPTION_KEY"},
		{"debug logging", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"wildcard cors", func(c *Config) { c.CORSAllowedOrigins = "*" }, "CORS_ALLOWED_ORIGINS"},
		{"page size", func(c *Config) { c.PageSize = 0 }, "PAGE_SIZE"},
		{"sample rate", func(c *Config) { c.SentryTracesSampleRate = 1.5 }, "SENTRY_TRACES_SAMPLE_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProduction()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}
