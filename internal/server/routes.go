// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Castmatch Contributors

package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/castmatch/castmatch/internal/podcast"
	cmerr "github.com/castmatch/castmatch/pkg/errors"
)

// PodcastService is what the HTTP layer needs from the podcast package.
// *podcast.Service implements it; tests substitute fakes.
type PodcastService interface {
	AddEpisode(ctx context.Context, title, transcript string) error
	UpdateHistory(ctx context.Context, userID int64, history string) error
	Recommend(ctx context.Context, userID int64) ([]podcast.Recommendation, error)
	Suggestions(ctx context.Context, userID int64) ([]podcast.Suggestion, error)
}

// RegisterPodcasts sets the podcast service and registers the REST routes.
func (s *Server) RegisterPodcasts(svc PodcastService) {
	s.podcasts = svc
	s.registerRoutes()
}

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "add-podcast",
		Method:        http.MethodPost,
		Path:          "/add-podcast",
		Summary:       "Register a podcast episode",
		Tags:          []string{"podcasts"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddPodcast)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-user-history",
		Method:      http.MethodPost,
		Path:        "/update-user-history",
		Summary:     "Replace a user's listening history",
		Tags:        []string{"users"},
	}, s.handleUpdateUserHistory)

	huma.Register(s.api, huma.Operation{
		OperationID: "recommend-podcasts",
		Method:      http.MethodGet,
		Path:        "/recommend-podcasts",
		Summary:     "Recommend podcasts for a user",
		Tags:        []string{"podcasts"},
	}, s.handleRecommendPodcasts)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-suggested-podcasts",
		Method:      http.MethodGet,
		Path:        "/get-suggested-podcasts",
		Summary:     "List past recommendations for a user",
		Tags:        []string{"podcasts"},
	}, s.handleGetSuggestedPodcasts)
}

// --- Request/Response types for huma ---

// Required-field checks live in the handlers so a missing field is a
// plain 400, not a schema-validation 422. The structs therefore carry
// no validation tags.

type addPodcastInput struct {
	Body struct {
		Title      string `json:"title" doc:"Episode title"`
		Transcript string `json:"transcript" doc:"Full episode transcript"`
	}
}
type addPodcastOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type updateUserHistoryInput struct {
	Body struct {
		UserID           string `json:"user_id" doc:"User id as an integer string"`
		ListeningHistory string `json:"listening_history" doc:"Replacement listening history text"`
	}
}
type updateUserHistoryOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type userIDQueryInput struct {
	UserID string `query:"userId" doc:"User id as an integer string"`
}

type recommendPodcastsOutput struct {
	Body []podcast.Recommendation
}

type suggestedPodcastsOutput struct {
	Body []podcast.Suggestion
}

// --- Handlers ---

func (s *Server) handleAddPodcast(ctx context.Context, input *addPodcastInput) (*addPodcastOutput, error) {
	if input.Body.Title == "" || input.Body.Transcript == "" {
		return nil, huma.Error400BadRequest("Missing 'title' or 'transcript' in the request body.")
	}

	if err := s.podcasts.AddEpisode(ctx, input.Body.Title, input.Body.Transcript); err != nil {
		return nil, mapServiceError(err)
	}

	out := &addPodcastOutput{}
	out.Body.Message = fmt.Sprintf("Podcast '%s' added successfully.", input.Body.Title)
	return out, nil
}

func (s *Server) handleUpdateUserHistory(ctx context.Context, input *updateUserHistoryInput) (*updateUserHistoryOutput, error) {
	if input.Body.UserID == "" || input.Body.ListeningHistory == "" {
		return nil, huma.Error400BadRequest("Missing 'user_id' or 'listening_history' in the request body.")
	}

	userID, err := s.parseUserID(input.Body.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.podcasts.UpdateHistory(ctx, userID, input.Body.ListeningHistory); err != nil {
		return nil, mapServiceError(err)
	}

	out := &updateUserHistoryOutput{}
	out.Body.Message = fmt.Sprintf("Listening history updated for user ID %d.", userID)
	return out, nil
}

func (s *Server) handleRecommendPodcasts(ctx context.Context, input *userIDQueryInput) (*recommendPodcastsOutput, error) {
	if input.UserID == "" {
		return nil, huma.Error400BadRequest("Missing 'userId' query parameter.")
	}

	userID, err := s.parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	recommendations, err := s.podcasts.Recommend(ctx, userID)
	if err != nil {
		if cmerr.IsNotFound(err) {
			return nil, huma.Error404NotFound(fmt.Sprintf("No embedding found for user ID %d.", userID))
		}
		return nil, mapServiceError(err)
	}

	return &recommendPodcastsOutput{Body: recommendations}, nil
}

func (s *Server) handleGetSuggestedPodcasts(ctx context.Context, input *userIDQueryInput) (*suggestedPodcastsOutput, error) {
	if input.UserID == "" {
		return nil, huma.Error400BadRequest("Missing 'userId' query parameter.")
	}

	// This endpoint always validates the id format, regardless of the
	// configured parse policy.
	userID, err := strconv.ParseInt(input.UserID, 10, 64)
	if err != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Invalid 'userId': %q is not an integer.", input.UserID))
	}

	suggestions, err := s.podcasts.Suggestions(ctx, userID)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &suggestedPodcastsOutput{Body: suggestions}, nil
}

// parseUserID applies the configured id parse policy. Under the default
// policy a malformed id comes back as an unclassified error, which huma
// surfaces as 500. Strict mode turns it into a 400.
func (s *Server) parseUserID(raw string) (int64, error) {
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return userID, nil
	}
	if s.cfg.StrictIDs {
		return 0, huma.Error400BadRequest(fmt.Sprintf("Invalid user id: %q is not an integer.", raw))
	}
	return 0, cmerr.Wrapf(err, cmerr.CodeServerInternalFailure, "parsing user id %q", raw)
}

// mapServiceError translates classified service errors into huma status
// errors. Downstream failures stay unclassified and fall through to
// huma's default 500.
func mapServiceError(err error) error {
	switch cmerr.HTTPStatus(err) {
	case http.StatusNotFound:
		return huma.Error404NotFound(err.Error())
	case http.StatusBadRequest:
		return huma.Error400BadRequest(err.Error())
	default:
		return err
	}
}
