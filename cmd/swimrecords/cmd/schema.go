package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var schemaPrint bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the records tables",
	Long: `Schema creates the swimmers, meets, performances and relays tables if they
do not exist. Table names come from store.tables in the config file.

Examples:
  swimrecords schema
  swimrecords schema --print > schema.sql`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaPrint, "print", false, "Print the DDL instead of applying it")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	st, dbManager, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer dbManager.Close()

	if schemaPrint {
		for _, stmt := range st.SchemaStatements() {
			cmd.Println(strings.TrimSpace(stmt))
			cmd.Println()
		}
		return nil
	}

	if err := st.InitializeSchema(ctx); err != nil {
		return err
	}
	cmd.Printf("Schema ready in database %s\n", cfg.Source.Database)
	return nil
}
