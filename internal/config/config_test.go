package config

import (
	"bytes"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Env != EnvDevelopment || !cfg.IsDevelopment() {
		t.Errorf("env = %q, want development", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.RateLimitPermits != 5 || cfg.RateLimitWindow != 10*time.Second {
		t.Errorf("rate limit = %d/%s", cfg.RateLimitPermits, cfg.RateLimitWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.APIKey != "" {
		t.Errorf("api key should default to empty")
	}
	if cfg.SquareDefaultStoreID != 1 {
		t.Errorf("square store id = %d", cfg.SquareDefaultStoreID)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"APP_ENV":                   "production",
		"API_KEY":                   "dev-super-secret",
		"CORS_ALLOWED_ORIGINS":      "http://a.test, http://b.test ,",
		"RATE_LIMIT_PERMITS":        "60",
		"RATE_LIMIT_WINDOW_SECONDS": "30",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production")
	}
	if cfg.APIKey != "dev-super-secret" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
	if got := cfg.CORSAllowedOrigins; len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("origins = %v", got)
	}
	if cfg.RateLimitPermits != 60 || cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit = %d/%s", cfg.RateLimitPermits, cfg.RateLimitWindow)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"env":     {"APP_ENV": "staging"},
		"permits": {"RATE_LIMIT_PERMITS": "five"},
		"zero":    {"RATE_LIMIT_PERMITS": "0"},
		"window":  {"RATE_LIMIT_WINDOW_SECONDS": "-1"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromEnv(envMap(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logg, err := NewLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logg.Info("dropped")
	logg.Warn("kept")
	if bytes.Contains(buf.Bytes(), []byte("dropped")) || !bytes.Contains(buf.Bytes(), []byte(`"msg":"kept"`)) {
		t.Fatalf("unexpected output %s", buf.String())
	}

	if _, err := NewLogger(&Config{LogLevel: "loud"}, &buf); err == nil {
		t.Fatal("expected level parse error")
	}
}
