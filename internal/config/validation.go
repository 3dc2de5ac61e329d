package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dbsmedya/swimrecords/internal/sqlutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// Database settings are only checked when the data source is MySQL.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateData()...)

	if c.UsesDatabase() {
		errors = append(errors, c.validateDatabase("source", &c.Source)...)
		errors = append(errors, c.validateStore()...)
	}

	errors = append(errors, c.validateImport()...)
	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateDatabase checks only the settings needed to talk to MySQL.
// Commands that write (import, schema) call it regardless of the data source.
func (c *Config) ValidateDatabase() error {
	var errors ValidationErrors
	errors = append(errors, c.validateDatabase("source", &c.Source)...)
	errors = append(errors, c.validateStore()...)
	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateData() ValidationErrors {
	var errors ValidationErrors

	switch c.Data.Kind {
	case DataKindMySQL, "":
	case DataKindFile:
		if c.Data.File == "" {
			errors = append(errors, ValidationError{
				Field:   "data.file",
				Message: "file is required when data.kind is 'file'",
			})
		}
	case DataKindAPI:
		if c.Data.API.BaseURL == "" {
			errors = append(errors, ValidationError{
				Field:   "data.api.base_url",
				Message: "base_url is required when data.kind is 'api'",
			})
		} else if u, err := url.Parse(c.Data.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "data.api.base_url",
				Message: "base_url must be an absolute http(s) URL",
			})
		}
		if c.Data.API.TimeoutSeconds < 0 {
			errors = append(errors, ValidationError{
				Field:   "data.api.timeout_seconds",
				Message: "timeout_seconds cannot be negative",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "data.kind",
			Message: "kind must be 'mysql', 'api', or 'file'",
		})
	}

	return errors
}

func (c *Config) validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateStore() ValidationErrors {
	var errors ValidationErrors

	tables := []struct{ field, name string }{
		{"store.tables.swimmers", c.Store.Tables.Swimmers},
		{"store.tables.meets", c.Store.Tables.Meets},
		{"store.tables.performances", c.Store.Tables.Performances},
		{"store.tables.relays", c.Store.Tables.Relays},
	}
	for _, tbl := range tables {
		if !sqlutil.IsValidIdentifier(tbl.name) {
			errors = append(errors, ValidationError{
				Field:   tbl.field,
				Message: "table name must contain only letters, digits and underscores",
			})
		}
	}

	if c.Store.LockTimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "store.lock_timeout_seconds",
			Message: "lock_timeout_seconds cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateImport() ValidationErrors {
	var errors ValidationErrors

	if c.Import.BatchSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "import.batch_size",
			Message: "batch_size must be positive",
		})
	}

	return errors
}

func (c *Config) validateServer() ValidationErrors {
	var errors ValidationErrors

	if c.Server.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Message: "addr is required",
		})
	}

	if c.Server.RefreshIntervalSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.refresh_interval_seconds",
			Message: "refresh_interval_seconds cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"table": true, "json": true, "": true}
	if !validFormats[c.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "format must be 'table' or 'json'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
