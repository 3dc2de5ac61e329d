package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/swimrecords/internal/importer"
	"github.com/dbsmedya/swimrecords/internal/lock"
	"github.com/dbsmedya/swimrecords/internal/types"
)

var (
	importFile   string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk import meet results from CSV",
	Long: `Import reads a CSV export of meet results and writes it to the records
database. The first row is a header. Rows have either 6 columns

  swimmer, meet, event, type, start, time

for an individual swim or relay split, or 9 columns

  swimmer 1, swimmer 2, swimmer 3, swimmer 4, meet, relay type, -, -, time

for a relay result. Swimmers and meets must already exist. Every row is
checked before anything is written; one bad row rejects the whole file.

Examples:
  swimrecords import --file champs.csv --dry-run
  swimrecords import --file champs.csv`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file to import")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and check the file without writing")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	ctx := cmd.Context()
	st, dbManager, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer dbManager.Close()

	im, err := importer.New(st, lock.NewImportLock(dbManager.DB, cfg.Source.Database), cfg.Store.LockTimeoutSeconds, log)
	if err != nil {
		return err
	}

	res, err := im.Run(ctx, f, importDryRun)
	if err != nil {
		if rowErrs, ok := importer.AsRowErrors(err); ok {
			cmd.PrintErrf("%s: %d row(s) rejected\n", importFile, len(rowErrs))
			for _, re := range rowErrs {
				cmd.PrintErrf("  - %s\n", re.Error())
			}
			return fmt.Errorf("import failed: %s", types.KindMalformedInput)
		}
		return fmt.Errorf("import failed: %w", err)
	}

	if res.DryRun {
		cmd.Printf("Dry run: %d performances and %d relays would be imported from %s\n",
			len(res.Batch.Performances), len(res.Batch.Relays), importFile)
		return nil
	}
	cmd.Printf("Imported %d performances and %d relays from %s\n", res.Performances, res.Relays, importFile)
	return nil
}
