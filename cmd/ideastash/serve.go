package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ideastash/internal/api"

	"github.com/spf13/cobra"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API server",
	Long: `Starts the HTTP API on the configured address (default 127.0.0.1:7420)
and serves ideas, categories, tags, and stats to local front-ends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		addr := app.cfg.API.Addr
		if serveAddrFlag != "" {
			addr = serveAddrFlag
		}

		server := api.NewServer(addr, app.cfg.API.AllowedOrigins,
			app.ideas, app.cats, app.stats, app.logger)

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			app.logger.Info("signal received, shutting down", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
