// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package google

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"google.golang.org/genai"

	"github.com/castmatch/castmatch/internal/provider"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// Config holds Google Gemini client configuration.
type Config struct {
	APIKey          string
	CompletionModel string
	EmbeddingModel  string
	Dimensions      int
}

// Compile-time interface checks.
var (
	_ provider.Embedder  = (*Client)(nil)
	_ provider.Completer = (*Client)(nil)
)

// Client implements provider.Embedder and provider.Completer on the
// Gemini API.
type Client struct {
	client *genai.Client
	config Config
}

// New creates a Gemini client. Returns an error if the API key is
// missing or the configured dimensionality is invalid.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, cmerr.New(cmerr.CodeProviderRequestInvalid, "google: missing api_key in config", cmerr.FieldProvider("google"))
	}
	if cfg.Dimensions <= 0 {
		return nil, cmerr.Errorf(cmerr.CodeProviderRequestInvalid, "google: embedding dimensions must be positive, got %d", cfg.Dimensions)
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = "gemini-2.5-flash"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "gemini-embedding-001"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, cmerr.Wrapf(err, cmerr.CodeProviderUpstreamFailure, "google: creating client")
	}

	return &Client{client: client, config: cfg}, nil
}

// Dimensions returns the configured embedding output size.
func (c *Client) Dimensions() int { return c.config.Dimensions }

// Embed returns the embedding vector for text. The output
// dimensionality is pinned so Gemini embeddings stay column-compatible
// with vectors produced by other providers.
func (c *Client) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	if text == "" {
		return pgvector.Vector{}, cmerr.New(cmerr.CodeProviderRequestInvalid, "google: text to embed must not be empty")
	}

	res, err := c.client.Models.EmbedContent(ctx, c.config.EmbeddingModel, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr(int32(c.config.Dimensions)),
	})
	if err != nil {
		return pgvector.Vector{}, cmerr.Wrapf(err, cmerr.CodeProviderUpstreamFailure, "google: embedding request")
	}
	if len(res.Embeddings) == 0 || res.Embeddings[0] == nil {
		return pgvector.Vector{}, cmerr.New(cmerr.CodeProviderResponseInvalid, "google: embedding response contains no data")
	}

	values := res.Embeddings[0].Values
	if len(values) != c.config.Dimensions {
		return pgvector.Vector{}, cmerr.Errorf(cmerr.CodeProviderResponseInvalid,
			"google: embedding has %d dimensions, expected %d", len(values), c.config.Dimensions)
	}

	return pgvector.NewVector(values), nil
}

// Complete returns a single generated response for prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.config.CompletionModel, genai.Text(prompt), nil)
	if err != nil {
		return "", cmerr.Wrapf(err, cmerr.CodeProviderUpstreamFailure, "google: completion request")
	}

	text := resp.Text()
	if text == "" {
		return "", cmerr.New(cmerr.CodeProviderResponseInvalid, "google: completion response contains no text")
	}

	return text, nil
}
