// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package google_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castmatch/castmatch/internal/provider"
	"github.com/castmatch/castmatch/internal/provider/google"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// Compile-time interface satisfaction checks.
var (
	_ provider.Embedder  = (*google.Client)(nil)
	_ provider.Completer = (*google.Client)(nil)
)

func TestNew_MissingAPIKey(t *testing.T) {
	_, err := google.New(google.Config{Dimensions: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
	assert.True(t, cmerr.HasCode(err, cmerr.CodeProviderRequestInvalid))
}

func TestNew_InvalidDimensions(t *testing.T) {
	_, err := google.New(google.Config{APIKey: "test-key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensions")
}

func TestNew_PopulatesDefaults(t *testing.T) {
	c, err := google.New(google.Config{APIKey: "test-key", Dimensions: 1536})
	require.NoError(t, err)
	assert.Equal(t, 1536, c.Dimensions())
}

func TestEmbed_EmptyText(t *testing.T) {
	c, err := google.New(google.Config{APIKey: "test-key", Dimensions: 3})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), "")
	require.Error(t, err)
	assert.True(t, cmerr.HasCode(err, cmerr.CodeProviderRequestInvalid))
}
