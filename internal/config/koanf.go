package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in
// priority order. The first one found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/wavealert360/config.yaml",
	"/etc/wavealert360/config.yml",
}

// ConfigPathEnvVar overrides the search paths above with one explicit
// file.
const ConfigPathEnvVar = "WAVEALERT360_CONFIG_PATH"

// sliceConfigPaths lists dotted koanf paths that must be parsed as
// comma-separated lists when they arrive from an environment variable.
var sliceConfigPaths = []string{
	"dashboard.metrics_allow_cidrs",
}

// Load builds the Config in three layers — struct defaults, an optional
// YAML file, then environment variables (highest priority) — and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("WAVEALERT360_", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc turns WAVEALERT360_RESOLVER_POLL_INTERVAL into
// resolver.poll_interval, i.e. strips the prefix (koanf only filters on
// it and passes the full name through) and lowercases the remaining
// underscore-joined path, mapping the first segment to its config
// section.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "WAVEALERT360_"))
	for _, section := range []string{
		"device", "cloud", "weather", "updater", "resolver", "led",
		"dashboard", "supervisor", "logging", "paths",
	} {
		prefix := section + "_"
		if strings.HasPrefix(key, prefix) {
			return section + "." + strings.TrimPrefix(key, prefix)
		}
	}
	return key
}
