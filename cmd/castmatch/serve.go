// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/castmatch/castmatch/internal/config"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the castmatch HTTP server",
		Long:  "Load configuration, connect the model provider and Postgres, and serve the recommendation API.",
		RunE:  runServe,
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	if cfg.Database.URL == "" {
		return cmerr.New(cmerr.CodeConfigValidateInvalidValue, "config: database.url is required to serve")
	}

	srv, err := wireServer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "castmatch listening on %s\n", cfg.Server.Listen)
	slog.Info("starting server", "listen", cfg.Server.Listen, "provider", cfg.Provider.Name)

	return srv.Start(ctx)
}
