package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "TAX_API_URL", "CACHE_TTL", "TRACING_ENABLED", "LAYOUT_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Port != 8080 || cfg.TaxAPIURL != "http://localhost:8000" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("cache must be off by default, got %v", cfg.CacheTTL)
	}
	if cfg.TracingEndpoint() != "" {
		t.Error("tracing must be off by default")
	}
}

func TestLoad_RegionTTL(t *testing.T) {
	cases := map[string]time.Duration{
		"":    30 * time.Minute,
		"5m":  5 * time.Minute,
		"0":   30 * time.Minute,
		"0s":  30 * time.Minute,
		"-1m": 30 * time.Minute,
	}
	for env, want := range cases {
		t.Setenv("REGION_TTL", env)
		if got := Load().RegionTTL; got != want {
			t.Errorf("REGION_TTL=%q: got %v, want %v", env, got, want)
		}
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("MAX_CONCURRENCY", "not-a-number")

	cfg := Load()

	if cfg.Port != 9090 || cfg.HTTPTimeout != 3*time.Second || cfg.CacheTTL != 10*time.Minute {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("unexpected redis addr %q", cfg.RedisAddr)
	}
	if cfg.TracingEndpoint() != "collector:4317" {
		t.Errorf("unexpected tracing endpoint %q", cfg.TracingEndpoint())
	}
	if cfg.MaxConcurrency != 50 {
		t.Errorf("invalid value should fall back to default, got %d", cfg.MaxConcurrency)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# local settings
TAXCALC_TEST_URL="http://tax-api:8000"
export TAXCALC_TEST_TTL=5m # five minutes
TAXCALC_TEST_KEPT=from-file
TAXCALC_TEST_HASH='a #b'
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TAXCALC_TEST_KEPT", "from-env")
	for _, k := range []string{"TAXCALC_TEST_URL", "TAXCALC_TEST_TTL", "TAXCALC_TEST_HASH"} {
		os.Unsetenv(k)
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := map[string]string{
		"TAXCALC_TEST_URL":  "http://tax-api:8000",
		"TAXCALC_TEST_TTL":  "5m",
		"TAXCALC_TEST_KEPT": "from-env",
		"TAXCALC_TEST_HASH": "a #b",
	}
	for k, v := range want {
		if got := os.Getenv(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("TAX-API=localhost\n"), 0o600)

	if err := LoadDotEnv(path); err == nil {
		t.Error("expected error for an invalid variable name")
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
