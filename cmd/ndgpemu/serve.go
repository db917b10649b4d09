package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/internal/server"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Long:  `Load the artifacts once and serve boost predictions as a JSON API until interrupted.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		e.cfg.Server.Addr = addr
	}

	policy, err := e.cfg.RangePolicy()
	if err != nil {
		return err
	}
	ext, err := e.cfg.Extrapolation()
	if err != nil {
		return err
	}

	store, err := artifact.Load(e.cfg.Artifacts.Dir, e.cfg.LoadOptions()...)
	if err != nil {
		return err
	}
	e.logger.Info("artifacts loaded",
		slog.String("dir", e.cfg.Artifacts.Dir),
		slog.Int("grid", len(store.Grid())),
		slog.String("regressor", store.Regressor().Type().String()),
		slog.String("basis", store.Basis().Type().String()),
	)

	srv, err := server.New(store, e.cfg.Server,
		server.WithLogger(e.logger),
		server.WithRangePolicy(policy),
		server.WithDefaultExtrapolation(ext),
	)
	if err != nil {
		return err
	}

	return srv.Run(cmd.Context())
}
