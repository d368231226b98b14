// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package main

import (
	"github.com/castmatch/castmatch/internal/config"
	"github.com/castmatch/castmatch/internal/podcast"
	"github.com/castmatch/castmatch/internal/provider"
	googleprov "github.com/castmatch/castmatch/internal/provider/google"
	openaiprov "github.com/castmatch/castmatch/internal/provider/openai"
	"github.com/castmatch/castmatch/internal/secrets"
	"github.com/castmatch/castmatch/internal/server"
	"github.com/castmatch/castmatch/internal/store/postgres"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// secretStoreFactory creates a secrets.Store. It is a package-level
// variable so tests can substitute a mock implementation.
var secretStoreFactory = func() secrets.Store {
	return secrets.NewKeyringStore()
}

// buildProvider resolves credentials and constructs the configured model
// provider. Both interfaces come back from the same client.
func buildProvider(cfg *config.Config, store secrets.Store) (provider.Embedder, provider.Completer, error) {
	switch cfg.Provider.Name {
	case config.ProviderOpenAI:
		apiKey, err := secrets.Resolve(store, cfg.Provider.OpenAI.APIKey)
		if err != nil {
			return nil, nil, err
		}
		client, err := openaiprov.New(openaiprov.Config{
			APIKey:          apiKey,
			BaseURL:         cfg.Provider.OpenAI.BaseURL,
			CompletionModel: cfg.Provider.OpenAI.CompletionModel,
			EmbeddingModel:  cfg.Provider.OpenAI.EmbeddingModel,
			Dimensions:      cfg.Embedding.Dimensions,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case config.ProviderGoogle:
		apiKey, err := secrets.Resolve(store, cfg.Provider.Google.APIKey)
		if err != nil {
			return nil, nil, err
		}
		client, err := googleprov.New(googleprov.Config{
			APIKey:          apiKey,
			CompletionModel: cfg.Provider.Google.CompletionModel,
			EmbeddingModel:  cfg.Provider.Google.EmbeddingModel,
			Dimensions:      cfg.Embedding.Dimensions,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	default:
		return nil, nil, cmerr.Errorf(cmerr.CodeCLIInputInvalid, "unknown provider %q", cfg.Provider.Name)
	}
}

// wireServer builds the full serving stack: executor, provider, podcast
// service, and HTTP server.
func wireServer(cfg *config.Config) (*server.Server, error) {
	executor, err := postgres.NewExecutor(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	embedder, completer, err := buildProvider(cfg, secretStoreFactory())
	if err != nil {
		return nil, err
	}

	svc, err := podcast.NewService(executor, embedder, completer)
	if err != nil {
		return nil, err
	}

	srv, err := server.New(server.Config{
		ListenAddr:  cfg.Server.Listen,
		CORSOrigins: cfg.Server.CORSOrigins,
		StrictIDs:   cfg.Server.IDValidation == config.IDValidationStrict,
	})
	if err != nil {
		return nil, err
	}
	srv.RegisterPodcasts(svc)

	return srv, nil
}
