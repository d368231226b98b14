// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

// Package secrets keeps provider credentials out of config files. A
// config value of the form keyring://service/key is resolved against
// the OS keyring at wiring time.
package secrets

// Store provides secure secret storage operations.
type Store interface {
	// Store saves a secret value under the given service and key.
	Store(service, key, value string) error

	// Retrieve fetches the secret value for the given service and key.
	// The returned error carries CodeSecretNotFound if the key does not
	// exist.
	Retrieve(service, key string) (string, error)

	// Delete removes the secret for the given service and key.
	Delete(service, key string) error
}
