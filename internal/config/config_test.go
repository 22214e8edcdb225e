package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Mode != ModePolling {
		t.Errorf("mode = %q, want %q", cfg.Server.Mode, ModePolling)
	}
	if cfg.Analysis.Backend != BackendSimulated {
		t.Errorf("backend = %q, want %q", cfg.Analysis.Backend, BackendSimulated)
	}
	if cfg.SimulatedDelay() != 5*time.Second {
		t.Errorf("simulated delay = %v, want 5s", cfg.SimulatedDelay())
	}
	if cfg.AnalysisTimeout() != 0 {
		t.Errorf("default timeout = %v, want none", cfg.AnalysisTimeout())
	}
	if cfg.OpenAIKey != "" {
		t.Errorf("key should be empty without the env var, got %q", cfg.OpenAIKey)
	}
}

func TestLoad_FileOverridesAndEnvKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-123")

	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: 9000
  mode: sync
analysis:
  backend: openai
  model: gpt-4o
  timeoutSeconds: 30
  maxConcurrent: 4
cors:
  allowedOrigins:
    - https://app.example.com
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Server.Mode != ModeSync {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Analysis.Backend != BackendOpenAI || cfg.Analysis.Model != "gpt-4o" {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.AnalysisTimeout() != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.AnalysisTimeout())
	}
	if cfg.Analysis.MaxConcurrent != 4 {
		t.Errorf("maxConcurrent = %d, want 4", cfg.Analysis.MaxConcurrent)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.OpenAIKey != "sk-test-123" {
		t.Errorf("key = %q, want the env value", cfg.OpenAIKey)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()

	cases := []struct {
		name string
		yaml string
	}{
		{"bad mode", "server:\n  mode: streaming\n"},
		{"bad backend", "analysis:\n  backend: bedrock\n"},
		{"bad port", "server:\n  port: 70000\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected an error for %q", tc.yaml)
			}
		})
	}
}
