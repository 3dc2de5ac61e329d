package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/swimrecords/internal/types"
)

var (
	swimmerName  string
	swimmerClass int

	meetName     string
	meetLocation string
	meetDate     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a swimmer or a meet",
	Long: `Add registers a swimmer or a meet in the records database. Both must exist
before results that name them can be imported.`,
}

var addSwimmerCmd = &cobra.Command{
	Use:   "swimmer",
	Short: "Add a swimmer to the roster",
	Long: `Example:
  swimrecords add swimmer --name "Avery Kim" --class 2027`,
	RunE: runAddSwimmer,
}

var addMeetCmd = &cobra.Command{
	Use:   "meet",
	Short: "Add a meet",
	Long: `Example:
  swimrecords add meet --name "Conference Champs" --location "Aquatic Center" --date 2024-02-15`,
	RunE: runAddMeet,
}

func init() {
	addSwimmerCmd.Flags().StringVar(&swimmerName, "name", "", "Swimmer's full name")
	addSwimmerCmd.Flags().IntVar(&swimmerClass, "class", 0, "Graduating year")
	_ = addSwimmerCmd.MarkFlagRequired("name")
	_ = addSwimmerCmd.MarkFlagRequired("class")

	addMeetCmd.Flags().StringVar(&meetName, "name", "", "Meet name")
	addMeetCmd.Flags().StringVar(&meetLocation, "location", "", "Pool or venue")
	addMeetCmd.Flags().StringVar(&meetDate, "date", "", "Meet date (YYYY-MM-DD)")
	_ = addMeetCmd.MarkFlagRequired("name")
	_ = addMeetCmd.MarkFlagRequired("date")

	addCmd.AddCommand(addSwimmerCmd, addMeetCmd)
	rootCmd.AddCommand(addCmd)
}

func runAddSwimmer(cmd *cobra.Command, args []string) error {
	if swimmerClass < 1900 || swimmerClass > 2200 {
		return fmt.Errorf("invalid class %d: expected a four-digit graduating year", swimmerClass)
	}

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

	sw := types.Swimmer{Name: swimmerName, GraduatingYear: swimmerClass}
	id, err := st.InsertSwimmer(ctx, sw)
	if err != nil {
		return err
	}
	cmd.Printf("Added swimmer %s (%s) with id %d\n", sw.Name, sw.ClassLabel(), id)
	return nil
}

func runAddMeet(cmd *cobra.Command, args []string) error {
	date, err := types.MeetDateFromDay(meetDate)
	if err != nil {
		return err
	}

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

	m := types.Meet{Name: meetName, Location: meetLocation, Date: date}
	id, err := st.InsertMeet(ctx, m)
	if err != nil {
		return err
	}
	cmd.Printf("Added meet %s on %s with id %d\n", m.Name, types.FormatMeetDate(m.Date), id)
	return nil
}
