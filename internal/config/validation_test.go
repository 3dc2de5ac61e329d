package config

import (
	"strings"
	"testing"
)

func validMySQLConfig() *Config {
	cfg := DefaultConfig()
	cfg.Source.Host = "localhost"
	cfg.Source.User = "coach"
	cfg.Source.Database = "swim"
	return cfg
}

func TestValidConfig(t *testing.T) {
	if err := validMySQLConfig().Validate(); err != nil {
		t.Errorf("expected no validation errors, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing host", func(c *Config) { c.Source.Host = "" }, "source.host"},
		{"bad port", func(c *Config) { c.Source.Port = 70000 }, "source.port"},
		{"missing database", func(c *Config) { c.Source.Database = "" }, "source.database"},
		{"bad tls", func(c *Config) { c.Source.TLS = "sometimes" }, "source.tls"},
		{"bad table name", func(c *Config) { c.Store.Tables.Relays = "relays; DROP TABLE meets" }, "store.tables.relays"},
		{"negative lock timeout", func(c *Config) { c.Store.LockTimeoutSeconds = -1 }, "store.lock_timeout_seconds"},
		{"unknown data kind", func(c *Config) { c.Data.Kind = "ftp" }, "data.kind"},
		{"file kind without path", func(c *Config) { c.Data.Kind = DataKindFile }, "data.file"},
		{"api kind without url", func(c *Config) { c.Data.Kind = DataKindAPI }, "data.api.base_url"},
		{"api kind relative url", func(c *Config) {
			c.Data.Kind = DataKindAPI
			c.Data.API.BaseURL = "/records"
		}, "data.api.base_url"},
		{"zero import batch", func(c *Config) { c.Import.BatchSize = 0 }, "import.batch_size"},
		{"empty server addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"negative refresh", func(c *Config) { c.Server.RefreshIntervalSeconds = -5 }, "server.refresh_interval_seconds"},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "yaml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validMySQLConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error mentioning %q, got: %v", tt.field, err)
			}
		})
	}
}

func TestValidate_SkipsDatabaseForFileSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Kind = DataKindFile
	cfg.Data.File = "dataset.json"

	if err := cfg.Validate(); err != nil {
		t.Errorf("file source must not require database settings, got: %v", err)
	}
	if err := cfg.ValidateDatabase(); err == nil {
		t.Error("ValidateDatabase() must still report missing database settings")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "source.host", Message: "host is required"},
		{Field: "source.user", Message: "user is required"},
	}
	msg := errs.Error()
	if !strings.HasPrefix(msg, "validation failed:") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "source.host: host is required") || !strings.Contains(msg, "source.user: user is required") {
		t.Errorf("expected both errors in message, got: %s", msg)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should render as empty string")
	}
}
