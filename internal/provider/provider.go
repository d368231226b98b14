// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

// Package provider defines the contracts for the external LLM services
// the podcast pipeline delegates to: text embedding and text completion.
// Implementations live in subpackages, one per upstream API.
package provider

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// Embedder turns a non-empty text into a fixed-dimensionality embedding.
// Upstream API failures (rate limit, auth, network) surface to the
// caller; there is no local retry or backoff.
type Embedder interface {
	// Embed returns the embedding for text. The vector length always
	// equals Dimensions.
	Embed(ctx context.Context, text string) (pgvector.Vector, error)

	// Dimensions is the provider's fixed output size.
	Dimensions() int
}

// Completer generates a text completion for a prompt. Same failure
// policy as Embedder.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
