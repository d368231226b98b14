// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package openai

import (
	"context"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/pgvector/pgvector-go"

	"github.com/castmatch/castmatch/internal/provider"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// Config holds OpenAI client configuration.
type Config struct {
	APIKey          string
	BaseURL         string // optional, useful for testing against a mock server
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
// OpenAI Embeddings and Chat Completions APIs.
type Client struct {
	client openaisdk.Client
	config Config
}

// New creates an OpenAI client. Returns an error if the API key is
// missing or the configured dimensionality is invalid.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, cmerr.New(cmerr.CodeProviderRequestInvalid, "openai: missing api_key in config", cmerr.FieldProvider("openai"))
	}
	if cfg.Dimensions <= 0 {
		return nil, cmerr.Errorf(cmerr.CodeProviderRequestInvalid, "openai: embedding dimensions must be positive, got %d", cfg.Dimensions)
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = "gpt-4.1-mini"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{client: openaisdk.NewClient(opts...), config: cfg}, nil
}

// Dimensions returns the configured embedding output size.
func (c *Client) Dimensions() int { return c.config.Dimensions }

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	if text == "" {
		return pgvector.Vector{}, cmerr.New(cmerr.CodeProviderRequestInvalid, "openai: text to embed must not be empty")
	}

	res, err := c.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Model: openaisdk.EmbeddingModel(c.config.EmbeddingModel),
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	})
	if err != nil {
		return pgvector.Vector{}, cmerr.Wrapf(err, cmerr.CodeProviderUpstreamFailure, "openai: embedding request")
	}
	if len(res.Data) == 0 {
		return pgvector.Vector{}, cmerr.New(cmerr.CodeProviderResponseInvalid, "openai: embedding response contains no data")
	}

	raw := res.Data[0].Embedding
	if len(raw) != c.config.Dimensions {
		return pgvector.Vector{}, cmerr.Errorf(cmerr.CodeProviderResponseInvalid,
			"openai: embedding has %d dimensions, expected %d", len(raw), c.config.Dimensions)
	}

	vec := make([]float32, len(raw))
	for i, f := range raw {
		vec[i] = float32(f)
	}
	return pgvector.NewVector(vec), nil
}

// Complete returns a single chat completion for prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(c.config.CompletionModel),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", cmerr.Wrapf(err, cmerr.CodeProviderUpstreamFailure, "openai: completion request")
	}
	if len(resp.Choices) == 0 {
		return "", cmerr.New(cmerr.CodeProviderResponseInvalid, "openai: completion response contains no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
