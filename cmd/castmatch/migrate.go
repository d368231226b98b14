// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castmatch/castmatch/internal/config"
	"github.com/castmatch/castmatch/internal/store/postgres"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the castmatch schema",
		Long:  "Enable the pgvector extension and create the episode, user, and suggestion tables if they do not exist.",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return cmerr.New(cmerr.CodeConfigValidateInvalidValue, "config: database.url is required to migrate")
	}

	executor, err := postgres.NewExecutor(cfg.Database.URL)
	if err != nil {
		return err
	}

	if err := executor.Migrate(cmd.Context(), cfg.Embedding.Dimensions); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (vector dimensions: %d).\n", cfg.Embedding.Dimensions)
	return nil
}
