package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/swimrecords/internal/config"
	"github.com/dbsmedya/swimrecords/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// defaultConfigFile is read when --config is not given.
const defaultConfigFile = "swimrecords.yaml"

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	dataKind     string
	dataFile     string
	outputFormat string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "swimrecords",
	Short: "Swim team personal and school records",
	Long: `Swimrecords tracks a swim team's meet results and derives, for every swim,
whether it is or was a personal record (PR) or school record (SR), by how
much it improved on the record it replaced, and when it was beaten.

Features:
  - Records recomputed in full from MySQL, an HTTP API or a JSON file
  - Relay-start splits tracked apart from flat-start swims
  - CSV bulk import of meet results and relays
  - Read-only JSON API with periodic refresh`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Data overrides
	rootCmd.PersistentFlags().StringVar(&dataKind, "data", "",
		"Override data source (mysql, api, file)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "",
		"Read the dataset from a JSON file (implies --data file)")

	// Output overrides
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "",
		"Override output format (table, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		DataKind:  dataKind,
		DataFile:  dataFile,
		Format:    outputFormat,
		NoColor:   noColor,
	}
}

// loadConfig reads the config file, applies flag overrides and validates the
// result. A missing default config file is not an error, so file-based
// commands work without one.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		if configFile != defaultConfigFile || !isNotExist(configFile) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = config.DefaultConfig()
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isNotExist(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}

// newLogger builds the logger for a command.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
