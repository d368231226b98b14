// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castmatch/castmatch/internal/podcast"
	"github.com/castmatch/castmatch/internal/server"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// mockPodcastService records calls and returns canned results. Any hook
// left nil means success with zero values.
type mockPodcastService struct {
	addEpisodeErr    error
	updateHistoryErr error
	recommendErr     error
	recommendations  []podcast.Recommendation
	suggestions      []podcast.Suggestion

	addEpisodeCalls    int
	updateHistoryCalls int
	recommendCalls     int
	lastUserID         int64
}

func (m *mockPodcastService) AddEpisode(_ context.Context, _, _ string) error {
	m.addEpisodeCalls++
	return m.addEpisodeErr
}

func (m *mockPodcastService) UpdateHistory(_ context.Context, userID int64, _ string) error {
	m.updateHistoryCalls++
	m.lastUserID = userID
	return m.updateHistoryErr
}

func (m *mockPodcastService) Recommend(_ context.Context, userID int64) ([]podcast.Recommendation, error) {
	m.recommendCalls++
	m.lastUserID = userID
	if m.recommendErr != nil {
		return nil, m.recommendErr
	}
	return m.recommendations, nil
}

func (m *mockPodcastService) Suggestions(_ context.Context, userID int64) ([]podcast.Suggestion, error) {
	m.lastUserID = userID
	return m.suggestions, nil
}

func newRoutesServer(t *testing.T, cfg server.Config, svc server.PodcastService) *server.Server {
	t.Helper()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:0"
	}
	srv, err := server.New(cfg)
	require.NoError(t, err)
	srv.RegisterPodcasts(svc)
	return srv
}

func postJSON(srv *server.Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func get(srv *server.Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestRoutes_AddPodcast(t *testing.T) {
	svc := &mockPodcastService{}
	srv := newRoutesServer(t, server.Config{}, svc)

	w := postJSON(srv, "/add-podcast", `{"title":"Ep1","transcript":"full text"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Podcast 'Ep1' added successfully.")
	assert.Equal(t, 1, svc.addEpisodeCalls)
}

func TestRoutes_AddPodcast_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{"transcript":"text"}`},
		{name: "missing transcript", body: `{"title":"Ep1"}`},
		{name: "empty body", body: `{}`},
		{name: "empty strings", body: `{"title":"","transcript":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPodcastService{}
			srv := newRoutesServer(t, server.Config{}, svc)

			w := postJSON(srv, "/add-podcast", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing 'title' or 'transcript' in the request body.")
			assert.Zero(t, svc.addEpisodeCalls, "service must not be called on validation failure")
		})
	}
}

func TestRoutes_AddPodcast_DownstreamFailure(t *testing.T) {
	svc := &mockPodcastService{
		addEpisodeErr: cmerr.New(cmerr.CodeProviderUpstreamFailure, "model unavailable"),
	}
	srv := newRoutesServer(t, server.Config{}, svc)

	w := postJSON(srv, "/add-podcast", `{"title":"Ep1","transcript":"text"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRoutes_UpdateUserHistory(t *testing.T) {
	svc := &mockPodcastService{}
	srv := newRoutesServer(t, server.Config{}, svc)

	w := postJSON(srv, "/update-user-history", `{"user_id":"42","listening_history":"ep one; ep two"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Listening history updated for user ID 42.")
	assert.Equal(t, 1, svc.updateHistoryCalls)
	assert.Equal(t, int64(42), svc.lastUserID)
}

func TestRoutes_UpdateUserHistory_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing user_id", body: `{"listening_history":"text"}`},
		{name: "missing history", body: `{"user_id":"42"}`},
		{name: "empty body", body: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPodcastService{}
			srv := newRoutesServer(t, server.Config{}, svc)

			w := postJSON(srv, "/update-user-history", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing 'user_id' or 'listening_history' in the request body.")
			assert.Zero(t, svc.updateHistoryCalls)
		})
	}
}

func TestRoutes_UpdateUserHistory_NonIntegerID(t *testing.T) {
	body := `{"user_id":"abc","listening_history":"text"}`

	t.Run("propagate", func(t *testing.T) {
		svc := &mockPodcastService{}
		srv := newRoutesServer(t, server.Config{}, svc)

		w := postJSON(srv, "/update-user-history", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Zero(t, svc.updateHistoryCalls)
	})

	t.Run("strict", func(t *testing.T) {
		svc := &mockPodcastService{}
		srv := newRoutesServer(t, server.Config{StrictIDs: true}, svc)

		w := postJSON(srv, "/update-user-history", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not an integer")
		assert.Zero(t, svc.updateHistoryCalls)
	})
}

func TestRoutes_RecommendPodcasts(t *testing.T) {
	svc := &mockPodcastService{
		recommendations: []podcast.Recommendation{
			{ID: 10, Title: "Go Time", Summary: "concise Go talk", Similarity: 0.12},
			{ID: 11, Title: "Data Hour", Summary: "data in brief", Similarity: 0.34},
		},
	}
	srv := newRoutesServer(t, server.Config{}, svc)

	w := get(srv, "/recommend-podcasts?userId=7")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.lastUserID)

	var recs []podcast.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, int64(10), recs[0].ID)
	assert.LessOrEqual(t, recs[0].Similarity, recs[1].Similarity)
}

func TestRoutes_RecommendPodcasts_MissingParam(t *testing.T) {
	svc := &mockPodcastService{}
	srv := newRoutesServer(t, server.Config{}, svc)

	w := get(srv, "/recommend-podcasts")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing 'userId' query parameter.")
	assert.Zero(t, svc.recommendCalls)
}

func TestRoutes_RecommendPodcasts_NoUserEmbedding(t *testing.T) {
	svc := &mockPodcastService{
		recommendErr: cmerr.New(cmerr.CodePodcastUserEmbeddingMissing, "no embedding found for user ID 7"),
	}
	srv := newRoutesServer(t, server.Config{}, svc)

	w := get(srv, "/recommend-podcasts?userId=7")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No embedding found for user ID 7.")
}

func TestRoutes_RecommendPodcasts_NonIntegerID(t *testing.T) {
	t.Run("propagate", func(t *testing.T) {
		svc := &mockPodcastService{}
		srv := newRoutesServer(t, server.Config{}, svc)

		w := get(srv, "/recommend-podcasts?userId=abc")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Zero(t, svc.recommendCalls)
	})

	t.Run("strict", func(t *testing.T) {
		svc := &mockPodcastService{}
		srv := newRoutesServer(t, server.Config{StrictIDs: true}, svc)

		w := get(srv, "/recommend-podcasts?userId=abc")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, svc.recommendCalls)
	})
}

func TestRoutes_GetSuggestedPodcasts(t *testing.T) {
	svc := &mockPodcastService{
		suggestions: []podcast.Suggestion{
			{UserID: 7, PodcastID: 10, Title: "Go Time"},
			{UserID: 7, PodcastID: 11, Title: "Data Hour"},
		},
	}
	srv := newRoutesServer(t, server.Config{}, svc)

	w := get(srv, "/get-suggested-podcasts?userId=7")

	assert.Equal(t, http.StatusOK, w.Code)

	var suggestions []podcast.Suggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 2)
	assert.Equal(t, int64(10), suggestions[0].PodcastID)
}

func TestRoutes_GetSuggestedPodcasts_MissingParam(t *testing.T) {
	srv := newRoutesServer(t, server.Config{}, &mockPodcastService{})

	w := get(srv, "/get-suggested-podcasts")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing 'userId' query parameter.")
}

func TestRoutes_GetSuggestedPodcasts_NonIntegerID(t *testing.T) {
	// Format validation here is unconditional, unlike the other two
	// id-taking endpoints.
	srv := newRoutesServer(t, server.Config{}, &mockPodcastService{})

	w := get(srv, "/get-suggested-podcasts?userId=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not an integer")
}
