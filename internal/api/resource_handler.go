package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/service"
)

// protectedPatchKeys are stripped from update payloads; storage owns them.
var protectedPatchKeys = []string{"id", "_id", "createdAt", "updatedAt"}

// ResourceHandler serves the five standard endpoints for one entity type.
// Entity-specific behavior is injected: parseCreate builds the domain object
// from the request, scope restricts nested listings to their parent.
type ResourceHandler[T any] struct {
	svc         *service.Resource[T]
	parseCreate func(r *http.Request) (*T, error)
	docID       func(doc *T) uuid.UUID
	scope       func(r *http.Request) ([]query.Filter, error)
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler[T any](
	svc *service.Resource[T],
	parseCreate func(r *http.Request) (*T, error),
	docID func(doc *T) uuid.UUID,
) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		svc:         svc,
		parseCreate: parseCreate,
		docID:       docID,
	}
}

// WithScope returns a copy of the handler whose listings are restricted by
// the given filter builder. Used for nested routes.
func (h *ResourceHandler[T]) WithScope(
	scope func(r *http.Request) ([]query.Filter, error),
) *ResourceHandler[T] {
	scoped := *h
	scoped.scope = scope
	return &scoped
}

// Create handles POST /.
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	doc, err := h.parseCreate(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), h.docID(doc), doc)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, DataResponse{Data: created})
}

// List handles GET /.
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	var scope []query.Filter
	if h.scope != nil {
		filters, err := h.scope(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		scope = filters
	}

	docs, pagination, plan, err := h.svc.List(r.Context(), scope, r.URL.Query())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondList(w, r, docs, pagination, plan)
}

// Get handles GET /{id}.
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: doc})
}

// Update handles PUT /{id}. The body is a partial document; server-owned
// keys are dropped before the merge.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var patch map[string]any
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	for _, key := range protectedPatchKeys {
		delete(patch, key)
	}
	// Slugs are derived, never client-supplied.
	delete(patch, "slug")
	if name, ok := patch["name"].(string); ok {
		patch["slug"] = domain.Slugify(name)
	}
	if title, ok := patch["title"].(string); ok {
		patch["slug"] = domain.Slugify(title)
	}
	if len(patch) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No updatable fields in request")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: updated})
}

// Delete handles DELETE /{id}.
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
