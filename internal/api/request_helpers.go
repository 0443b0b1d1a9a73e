// Package api contains the HTTP handlers, request/response models and the
// error mapping between service errors and status codes.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/query"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context, where the auth middleware placed it.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserID(r.Context())
}

// requireUserID extracts the authenticated user ID or writes a 401.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}
	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrValidation, paramName)
	}
	return id, nil
}

// wrapBadRequest marks a decode or validation failure as a client error.
func wrapBadRequest(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// DataResponse wraps a single entity.
type DataResponse struct {
	Data any `json:"data"`
}

// ListResponse wraps a page of entities with its pagination descriptor.
type ListResponse struct {
	Results          int              `json:"results"`
	PaginationResult query.Pagination `json:"paginationResult"`
	Data             any              `json:"data"`
}

// respondList projects each document to the requested fields and writes the
// list envelope.
func respondList[T any](
	w http.ResponseWriter,
	r *http.Request,
	docs []T,
	pagination query.Pagination,
	plan *query.Plan,
) {
	data := make([]any, len(docs))
	for i := range docs {
		projected, err := query.Project(&docs[i], plan.Fields)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		data[i] = projected
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Results:          len(docs),
		PaginationResult: pagination,
		Data:             data,
	})
}
