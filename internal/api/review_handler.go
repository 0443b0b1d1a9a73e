package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/service"
)

// ReviewHandler serves review CRUD. Reviews are write-guarded: users mutate
// only their own, admins may also delete.
type ReviewHandler struct {
	svc *service.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Create handles POST /reviews and POST /products/{productId}/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	productID := req.Product
	if productID == uuid.Nil {
		if pathParam := chi.URLParam(r, "productId"); pathParam != "" {
			parsed, err := uuid.Parse(pathParam)
			if err != nil {
				RespondError(w, r, wrapBadRequest(err))
				return
			}
			productID = parsed
		}
	}

	review, err := domain.NewReview(req.Title, req.Ratings, userID, productID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), review)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, DataResponse{Data: created})
}

// List handles GET /reviews and GET /products/{productId}/reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	var scope []query.Filter
	if pathParam := chi.URLParam(r, "productId"); pathParam != "" {
		productID, err := getPathUUID(r, "productId")
		if err != nil {
			RespondError(w, r, err)
			return
		}
		scope = []query.Filter{{
			Field: "product",
			Op:    query.OpEq,
			Value: productID.String(),
		}}
	}

	reviews, pagination, plan, err := h.svc.Resource.List(r.Context(), scope, r.URL.Query())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondList(w, r, reviews, pagination, plan)
}

// Get handles GET /reviews/{id}.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	review, err := h.svc.Resource.Get(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: review})
}

// Update handles PUT /reviews/{id}. Only the review's owner may update it.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req UpdateReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, userID, req.Title, req.Ratings)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: updated})
}

// Delete handles DELETE /reviews/{id}. Owner or admin.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID, shared.IsAdmin(r.Context())); err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
