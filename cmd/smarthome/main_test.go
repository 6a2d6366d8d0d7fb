package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("SMARTHOME_CONFIG")
	defer os.Setenv("SMARTHOME_CONFIG", originalEnv)

	os.Setenv("SMARTHOME_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_InvalidBrokerPort verifies run fails config validation.
func TestRun_InvalidBrokerPort(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
mqtt:
  broker:
    host: "127.0.0.1"
    port: 99999
    client_id: "test-client"
  qos: 1

logging:
  level: info
  format: text
  output: stdout

api:
  enabled: false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("SMARTHOME_CONFIG")
	defer os.Setenv("SMARTHOME_CONFIG", originalEnv)
	os.Setenv("SMARTHOME_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with out-of-range broker port")
	}
}

// TestGetConfigPath_Default verifies the default config path.
func TestGetConfigPath_Default(t *testing.T) {
	originalEnv := os.Getenv("SMARTHOME_CONFIG")
	defer os.Setenv("SMARTHOME_CONFIG", originalEnv)

	os.Unsetenv("SMARTHOME_CONFIG")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	originalEnv := os.Getenv("SMARTHOME_CONFIG")
	defer os.Setenv("SMARTHOME_CONFIG", originalEnv)

	expected := "/custom/path/config.yaml"
	os.Setenv("SMARTHOME_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}
