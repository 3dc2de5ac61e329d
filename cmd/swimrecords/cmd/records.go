package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/swimrecords/internal/report"
)

var (
	recordsMeetID  int64
	recordsSwimmer string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show school records, a meet or a swimmer",
	Long: `Records loads the full dataset, recomputes every record lineage and prints
the school record board. With --meet it lists every swim at one meet with its
PR/SR badges; with --swimmer it lists a swimmer's bests and history.

Examples:
  swimrecords records
  swimrecords records --meet 12
  swimrecords records --swimmer "Avery Kim" --format json
  swimrecords records --data-file dataset.json`,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().Int64Var(&recordsMeetID, "meet", 0, "Show one meet by id")
	recordsCmd.Flags().StringVar(&recordsSwimmer, "swimmer", "", "Show one swimmer by name")
	recordsCmd.MarkFlagsMutuallyExclusive("meet", "swimmer")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, args []string) error {
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
	src, cleanup, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ds, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s data: %w", src.Name(), err)
	}
	log.WithSource(src.Name()).Debugf("Loaded %d performances in %s", len(ds.Performances), ds.Stats.Duration)

	in := report.NewInputs(ds)
	out := cmd.OutOrStdout()
	asJSON := cfg.Output.Format == "json"
	r := report.NewRenderer(out, cfg.Output.Color)

	switch {
	case recordsMeetID != 0:
		view, err := report.BuildMeet(in, recordsMeetID)
		if err != nil {
			return err
		}
		if asJSON {
			return report.WriteJSON(out, view)
		}
		return r.Meet(view)
	case recordsSwimmer != "":
		view, err := report.BuildSwimmer(in, recordsSwimmer)
		if err != nil {
			return err
		}
		if asJSON {
			return report.WriteJSON(out, view)
		}
		return r.Swimmer(view)
	default:
		view := report.BuildRecords(in)
		if asJSON {
			return report.WriteJSON(out, view)
		}
		return r.SchoolRecords(view)
	}
}
