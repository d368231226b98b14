// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// serviceName is the keyring service name under which castmatch stores
// secrets; keyring://castmatch/<name> in config resolves against it.
const serviceName = "castmatch"

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secrets stored in the OS keyring",
		Long:  "Set and delete secrets stored under the castmatch service in the operating system keyring.",
	}

	cmd.AddCommand(
		newSecretSetCmd(),
		newSecretDeleteCmd(),
	)

	return cmd
}

func newSecretSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a secret by name",
		Args:  cobra.ExactArgs(2),
		RunE:  runSecretSet,
	}
}

func newSecretDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a secret by name",
		Args:  cobra.ExactArgs(1),
		RunE:  runSecretDelete,
	}
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	name, value := args[0], args[1]
	store := secretStoreFactory()

	if err := store.Store(serviceName, name, value); err != nil {
		return cmerr.Wrapf(err, cmerr.CodeSecretStoreFailure, "storing secret %q", name)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored secret: %s (reference it as keyring://%s/%s)\n", name, serviceName, name)
	return nil
}

func runSecretDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	store := secretStoreFactory()

	if err := store.Delete(serviceName, name); err != nil {
		if cmerr.HasCode(err, cmerr.CodeSecretNotFound) {
			return cmerr.Errorf(cmerr.CodeSecretNotFound, "secret %q not found", name)
		}
		return cmerr.Wrapf(err, cmerr.CodeSecretStoreFailure, "deleting secret %q", name)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted secret: %s\n", name)
	return nil
}
