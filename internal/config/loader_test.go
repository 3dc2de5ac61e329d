package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
source:
  host: localhost
  port: 3307
  user: coach
  password: ${SWIMREC_TEST_PASSWORD}
  database: swim
  tls: disable

store:
  tables:
    performances: times

data:
  kind: api
  api:
    base_url: https://swimming-api.example.dev
    timeout_seconds: 5

import:
  batch_size: 50

server:
  addr: ":9090"
  refresh_interval_seconds: 60

output:
  format: json
  color: false

logging:
  level: debug
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("SWIMREC_TEST_PASSWORD", "s3cret")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Source.Port != 3307 {
		t.Errorf("expected source port 3307, got %d", cfg.Source.Port)
	}
	if cfg.Source.Password != "s3cret" {
		t.Errorf("expected password from environment, got %q", cfg.Source.Password)
	}
	if cfg.Store.Tables.Performances != "times" {
		t.Errorf("expected performances table 'times', got %s", cfg.Store.Tables.Performances)
	}
	if cfg.Store.Tables.Meets != "meets" {
		t.Errorf("expected default meets table to survive partial override, got %s", cfg.Store.Tables.Meets)
	}
	if cfg.Data.Kind != DataKindAPI || cfg.Data.API.BaseURL != "https://swimming-api.example.dev" {
		t.Errorf("unexpected data config: %+v", cfg.Data)
	}
	if cfg.Import.BatchSize != 50 {
		t.Errorf("expected import batch_size 50, got %d", cfg.Import.BatchSize)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.RefreshIntervalSeconds != 60 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected loaded config to validate, got: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("data.kind", "file")
	v.Set("data.file", "$SWIMREC_TEST_DATA")
	t.Setenv("SWIMREC_TEST_DATA", "/srv/meets.json")

	cfg, err := LoadFromViper(v)
	if err != nil {
		t.Fatalf("LoadFromViper() error = %v", err)
	}
	if cfg.Data.File != "/srv/meets.json" {
		t.Errorf("expected expanded data file, got %s", cfg.Data.File)
	}
	if cfg.Source.Port != 3306 {
		t.Errorf("expected default port to be kept, got %d", cfg.Source.Port)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("SWIMREC_HOST", "db.internal")

	tests := []struct {
		input    string
		expected string
	}{
		{"${SWIMREC_HOST}", "db.internal"},
		{"$SWIMREC_HOST", "db.internal"},
		{"tcp://${SWIMREC_HOST}:3306", "tcp://db.internal:3306"},
		{"${SWIMREC_UNSET_VAR}", "${SWIMREC_UNSET_VAR}"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandEnvVar(tt.input); got != tt.expected {
				t.Errorf("expandEnvVar(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
