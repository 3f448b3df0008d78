package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/practicelabs/bugdrill/pkg/bugdrill"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/config"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/dashboard"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/exercises"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/feedback"
)

var (
	serveConfig string
	serveAddr   string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "path to a YAML config file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfig)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		engine := bugdrill.NewEngine()

		catalog := exercises.NewCatalog()
		if cfg.ExerciseDir != "" {
			if err := catalog.LoadDir(cfg.ExerciseDir); err != nil {
				return err
			}
		}

		registry := feedback.NewRegistry()
		registry.RegisterAll(&feedback.ConsoleHandler{})

		server := dashboard.NewServer(engine, catalog, registry, dashboard.Options{
			Addr:       cfg.Addr,
			CheckDelay: cfg.CheckDelay,
			MaxClients: cfg.MaxClients,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := server.Start(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return server.Stop()
		})

		return g.Wait()
	},
}
