// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

// Package podcast implements the four use cases: registering episodes,
// recording listening history, similarity-based recommendation, and the
// suggestion history. It orchestrates the embedding and completion
// clients with the query executor; HTTP concerns stay in the server
// package.
package podcast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/castmatch/castmatch/internal/provider"
	"github.com/castmatch/castmatch/internal/store/postgres"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// recommendationLimit is the fixed nearest-neighbor cutoff.
const recommendationLimit = 3

const (
	summaryPrompt = "Summarize the following podcast transcript:\n%s\nSummary:"

	shortDescriptionPrompt = "Summarize the following podcast in 5 words or less:\n\nPodcast: %s\nDescription: %s\n\nSummary:"
)

const (
	insertEpisodeSQL = `INSERT INTO podcast_episodes (title, summary, transcript, embedding)
VALUES (@title, @summary, @transcript, @embedding)`

	updateHistorySQL = `UPDATE users SET listening_history = @history, embedding = @embedding WHERE id = @id`

	selectUserEmbeddingSQL = `SELECT embedding FROM users WHERE id = @id`

	rankEpisodesSQL = `SELECT id, title, summary, embedding <-> @embedding AS similarity
FROM podcast_episodes
WHERE embedding IS NOT NULL
ORDER BY similarity ASC
LIMIT 3`

	insertSuggestionSQL = `INSERT INTO suggested_podcasts (user_id, podcast_id, similarity_score)
VALUES (@user_id, @podcast_id, @similarity)`

	selectSuggestionsSQL = `SELECT sp.user_id, pe.id AS podcast_id, pe.title
FROM suggested_podcasts sp
JOIN podcast_episodes pe ON sp.podcast_id = pe.id
WHERE sp.user_id = @user_id
ORDER BY sp.similarity_score ASC`
)

// QueryExecutor is the statement-level data access contract the service
// depends on. *postgres.Executor implements it; tests substitute fakes.
type QueryExecutor interface {
	Query(ctx context.Context, sql string, params *postgres.Params) ([]postgres.Row, error)
}

// Recommendation is one ranked candidate: nearest first, summary
// replaced by a short generated description.
type Recommendation struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Similarity float64 `json:"similarity"`
}

// Suggestion is one row of the accumulated recommendation history.
type Suggestion struct {
	UserID    int64  `json:"user_id"`
	PodcastID int64  `json:"podcast_id"`
	Title     string `json:"title"`
}

// Service orchestrates providers and the store for the podcast use
// cases. It holds no mutable state and is safe for concurrent use.
type Service struct {
	executor  QueryExecutor
	embedder  provider.Embedder
	completer provider.Completer
}

// NewService creates a Service. All dependencies are required.
func NewService(executor QueryExecutor, embedder provider.Embedder, completer provider.Completer) (*Service, error) {
	if executor == nil {
		return nil, cmerr.New(cmerr.CodeServerConfigInvalid, "query executor is required")
	}
	if embedder == nil {
		return nil, cmerr.New(cmerr.CodeServerConfigInvalid, "embedder is required")
	}
	if completer == nil {
		return nil, cmerr.New(cmerr.CodeServerConfigInvalid, "completer is required")
	}
	return &Service{executor: executor, embedder: embedder, completer: completer}, nil
}

// AddEpisode summarizes the transcript, embeds the summary, and inserts
// one podcast_episodes row.
func (s *Service) AddEpisode(ctx context.Context, title, transcript string) error {
	if title == "" || transcript == "" {
		return cmerr.New(cmerr.CodePodcastRequestInvalid, "title and transcript must not be empty")
	}

	summary, err := s.completer.Complete(ctx, fmt.Sprintf(summaryPrompt, transcript))
	if err != nil {
		return err
	}

	embedding, err := s.embedder.Embed(ctx, summary)
	if err != nil {
		return err
	}

	_, err = s.executor.Query(ctx, insertEpisodeSQL, postgres.NewParams().
		Text("title", title).
		Text("summary", summary).
		Text("transcript", transcript).
		Vector("embedding", embedding))
	if err != nil {
		return err
	}

	slog.Info("added podcast episode", "title", title)
	return nil
}

// UpdateHistory replaces the user's listening history and recomputes the
// embedding from the new text. The embedding is always re-derived, never
// reused.
func (s *Service) UpdateHistory(ctx context.Context, userID int64, history string) error {
	if history == "" {
		return cmerr.New(cmerr.CodePodcastRequestInvalid, "listening history must not be empty", cmerr.FieldUserID(userID))
	}

	embedding, err := s.embedder.Embed(ctx, history)
	if err != nil {
		return err
	}

	_, err = s.executor.Query(ctx, updateHistorySQL, postgres.NewParams().
		Text("history", history).
		Vector("embedding", embedding).
		Int("id", userID))
	if err != nil {
		return err
	}

	slog.Info("updated listening history", "user_id", userID)
	return nil
}

// Recommend ranks the three nearest episodes against the user's stored
// embedding. For each candidate, in rank order, it generates a short
// description and appends one suggested_podcasts row carrying the
// similarity from the ranking query. The per-candidate calls are
// sequential; the first failure aborts the request and rows already
// appended stay (no transaction spans the loop).
func (s *Service) Recommend(ctx context.Context, userID int64) ([]Recommendation, error) {
	userRows, err := s.executor.Query(ctx, selectUserEmbeddingSQL, postgres.NewParams().Int("id", userID))
	if err != nil {
		return nil, err
	}

	if len(userRows) == 0 || userRows[0].Value("embedding").IsNull() {
		return nil, cmerr.New(cmerr.CodePodcastUserEmbeddingMissing,
			fmt.Sprintf("no embedding found for user ID %d", userID), cmerr.FieldUserID(userID))
	}

	userEmbedding, ok := userRows[0].Value("embedding").Vector()
	if !ok {
		return nil, cmerr.New(cmerr.CodeStoreScanFailure, "user embedding column did not decode as a vector", cmerr.FieldUserID(userID))
	}

	candidates, err := s.executor.Query(ctx, rankEpisodesSQL,
		postgres.NewParams().Vector("embedding", userEmbedding))
	if err != nil {
		return nil, err
	}

	recommendations := make([]Recommendation, 0, len(candidates))
	for _, row := range candidates {
		id, err := intColumn(row, "id")
		if err != nil {
			return nil, err
		}
		title := textColumn(row, "title")
		summary := textColumn(row, "summary")
		similarity, err := floatColumn(row, "similarity")
		if err != nil {
			return nil, err
		}

		shortDescription, err := s.completer.Complete(ctx, fmt.Sprintf(shortDescriptionPrompt, title, summary))
		if err != nil {
			return nil, err
		}

		_, err = s.executor.Query(ctx, insertSuggestionSQL, postgres.NewParams().
			Int("user_id", userID).
			Int("podcast_id", id).
			Float("similarity", similarity))
		if err != nil {
			return nil, err
		}

		recommendations = append(recommendations, Recommendation{
			ID:         id,
			Title:      title,
			Summary:    shortDescription,
			Similarity: similarity,
		})
	}

	slog.Info("recommended podcasts", "user_id", userID, "count", len(recommendations))
	return recommendations, nil
}

// Suggestions returns the accumulated recommendation history for a
// user, ordered by the similarity recorded at recommendation time.
// The stored ranking is never recomputed.
func (s *Service) Suggestions(ctx context.Context, userID int64) ([]Suggestion, error) {
	rows, err := s.executor.Query(ctx, selectSuggestionsSQL, postgres.NewParams().Int("user_id", userID))
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(rows))
	for _, row := range rows {
		uid, err := intColumn(row, "user_id")
		if err != nil {
			return nil, err
		}
		pid, err := intColumn(row, "podcast_id")
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, Suggestion{
			UserID:    uid,
			PodcastID: pid,
			Title:     textColumn(row, "title"),
		})
	}

	return suggestions, nil
}

func intColumn(row postgres.Row, name string) (int64, error) {
	v, ok := row.Get(name)
	if !ok {
		return 0, cmerr.Errorf(cmerr.CodeStoreScanFailure, "result row is missing column %q", name)
	}
	i, ok := v.Int()
	if !ok {
		return 0, cmerr.Errorf(cmerr.CodeStoreScanFailure, "column %q holds %s, expected int", name, v.Kind())
	}
	return i, nil
}

func floatColumn(row postgres.Row, name string) (float64, error) {
	v, ok := row.Get(name)
	if !ok {
		return 0, cmerr.Errorf(cmerr.CodeStoreScanFailure, "result row is missing column %q", name)
	}
	f, ok := v.Float()
	if !ok {
		return 0, cmerr.Errorf(cmerr.CodeStoreScanFailure, "column %q holds %s, expected float", name, v.Kind())
	}
	return f, nil
}

// textColumn returns the text under name, or "" for NULL and missing
// columns. Summary may legitimately be NULL.
func textColumn(row postgres.Row, name string) string {
	s, _ := row.Value(name).Text()
	return s
}
