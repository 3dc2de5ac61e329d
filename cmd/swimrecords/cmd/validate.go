package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check the data source",
	Long: `Validate checks the configuration file and then loads the configured
data source once, so a bad connection or a malformed dataset is caught before
serving or reporting.

Checks performed:
  - Configuration syntax and required fields
  - Database connectivity (mysql source)
  - Dataset shape and references (all sources)

Example:
  swimrecords validate --config swimrecords.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting validation checks...")

	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())
	cmd.Printf("Data source: %s\n\n", cfg.Data.Kind)

	ctx := cmd.Context()
	src, cleanup, err := openSource(ctx, cfg, log)
	if err != nil {
		cmd.Printf("❌ Source unavailable: %v\n", err)
		return fmt.Errorf("validation failed")
	}
	defer cleanup()

	ds, err := src.Load(ctx)
	if err != nil {
		cmd.Printf("❌ Load failed: %v\n", err)
		return fmt.Errorf("validation failed")
	}

	cmd.Printf("Swimmers: %d\n", len(ds.Swimmers))
	cmd.Printf("Meets: %d\n", len(ds.Meets))
	cmd.Printf("Performances: %d\n", len(ds.Performances))
	cmd.Printf("Relays: %d\n\n", len(ds.Relays))

	cmd.Println("=== Validation Complete ===")
	cmd.Println("✅ Configuration and data source are valid")
	return nil
}
