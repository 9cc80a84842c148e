package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Resolver.PollInterval != 30*time.Second {
		t.Errorf("Resolver.PollInterval = %v, want 30s", cfg.Resolver.PollInterval)
	}
	if cfg.Supervisor.MaxRestarts != 5 {
		t.Errorf("Supervisor.MaxRestarts = %d, want 5", cfg.Supervisor.MaxRestarts)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	t.Setenv("WAVEALERT360_RESOLVER_POLL_INTERVAL", "15s")
	t.Setenv("WAVEALERT360_CLOUD_BASE_URL", "https://override.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Resolver.PollInterval != 15*time.Second {
		t.Errorf("Resolver.PollInterval = %v, want 15s", cfg.Resolver.PollInterval)
	}
	if cfg.Cloud.BaseURL != "https://override.example" {
		t.Errorf("Cloud.BaseURL = %q, want override", cfg.Cloud.BaseURL)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	yamlContent := "resolver:\n  poll_interval: 45s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Resolver.PollInterval != 45*time.Second {
		t.Errorf("Resolver.PollInterval = %v, want 45s", cfg.Resolver.PollInterval)
	}
}

func TestValidateRejectsMissingCloudBaseURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cloud.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing cloud.base_url")
	}
}
