// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root castmatch command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "castmatch",
		Short:         "Castmatch podcast recommendation service",
		Long:          "Castmatch registers podcast transcripts, tracks listening history, and recommends episodes by embedding similarity.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSecretCmd(),
		newVersionCmd(),
	)

	return root
}
