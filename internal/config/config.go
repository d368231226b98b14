// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

// Package config loads the castmatch configuration from an optional
// YAML file with CASTMATCH_ environment overrides, and validates it
// collecting every error rather than stopping at the first one.
package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// ID parse policies for the history and recommendation endpoints.
const (
	IDValidationPropagate = "propagate"
	IDValidationStrict    = "strict"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// Config is the top-level castmatch configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
}

// ServerConfig controls how castmatch listens for connections.
type ServerConfig struct {
	Listen       string   `mapstructure:"listen"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
	IDValidation string   `mapstructure:"id_validation"`
}

// DatabaseConfig points at the Postgres instance holding the episode
// and user tables.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ProviderConfig selects and configures the model provider.
type ProviderConfig struct {
	Name   string       `mapstructure:"name"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Google GoogleConfig `mapstructure:"google"`
}

// OpenAIConfig holds credentials and model names for the OpenAI provider.
type OpenAIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	CompletionModel string `mapstructure:"completion_model"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
}

// GoogleConfig holds credentials and model names for the Gemini provider.
type GoogleConfig struct {
	APIKey          string `mapstructure:"api_key"`
	CompletionModel string `mapstructure:"completion_model"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
}

// EmbeddingConfig fixes the stored vector width. It must match the
// vector(n) columns created by the migration.
type EmbeddingConfig struct {
	Dimensions int `mapstructure:"dimensions"`
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix CASTMATCH_).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.listen", "127.0.0.1:8480")
	v.SetDefault("server.id_validation", IDValidationPropagate)
	v.SetDefault("provider.name", ProviderOpenAI)
	v.SetDefault("provider.openai.completion_model", "gpt-4.1-mini")
	v.SetDefault("provider.openai.embedding_model", "text-embedding-3-small")
	v.SetDefault("provider.google.completion_model", "gemini-2.5-flash")
	v.SetDefault("provider.google.embedding_model", "gemini-embedding-001")
	v.SetDefault("embedding.dimensions", 1536)

	// Environment
	v.SetEnvPrefix("CASTMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// File
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, cmerr.Errorf(cmerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns all
// validation errors found, not just the first.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateProvider()...)
	errs = append(errs, c.validateEmbedding()...)

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue, "config: server.listen must not be empty"))
	} else {
		_, portStr, err := net.SplitHostPort(c.Server.Listen)
		if err != nil {
			errs = append(errs, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue,
				"config: server.listen must be a valid host:port address, got %q: %w",
				c.Server.Listen, err,
			))
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				errs = append(errs, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue,
					"config: server.listen port must be a number, got %q",
					portStr,
				))
			} else if port < 0 || port > 65535 {
				errs = append(errs, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue,
					"config: server.listen port must be between 0 and 65535, got %d",
					port,
				))
			}
		}
	}

	validPolicies := map[string]bool{IDValidationPropagate: true, IDValidationStrict: true}
	if !validPolicies[c.Server.IDValidation] {
		errs = append(errs, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue,
			"config: server.id_validation must be one of [propagate, strict], got %q",
			c.Server.IDValidation,
		))
	}

	return errs
}

func (c *Config) validateProvider() []error {
	var errs []error

	validProviders := map[string]bool{ProviderOpenAI: true, ProviderGoogle: true}
	if !validProviders[c.Provider.Name] {
		errs = append(errs, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue,
			"config: provider.name must be one of [openai, google], got %q",
			c.Provider.Name,
		))
	}

	return errs
}

func (c *Config) validateEmbedding() []error {
	var errs []error

	if c.Embedding.Dimensions <= 0 {
		errs = append(errs, cmerr.Errorf(cmerr.CodeConfigValidateInvalidValue,
			"config: embedding.dimensions must be greater than 0, got %d",
			c.Embedding.Dimensions,
		))
	}

	return errs
}
