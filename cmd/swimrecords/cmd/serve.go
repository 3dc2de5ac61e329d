package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/swimrecords/internal/database"
	"github.com/dbsmedya/swimrecords/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve records over HTTP",
	Long: `Serve exposes the computed records as JSON. The dataset is reloaded and
the records recomputed every server.refresh_interval_seconds and on
POST /refresh. A failed reload keeps the previous records.

Endpoints:
  GET  /health
  GET  /records
  GET  /annotations
  GET  /performances/{id}
  GET  /meets/{id}
  GET  /swimmers/{name}
  GET  /swimmers/{name}/bests
  POST /refresh

Example:
  swimrecords serve --addr :8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Override listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := database.SetupSignalHandlerWithCallback(func(sig os.Signal) {
		log.Infof("Received %s, shutting down", sig)
	})

	src, cleanup, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	return server.New(cfg.Server, src, log).Run(ctx)
}
