package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/service"
)

// WishlistHandler serves the authenticated user's wishlist.
type WishlistHandler struct {
	svc *service.WishlistService
}

// NewWishlistHandler creates a WishlistHandler.
func NewWishlistHandler(svc *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

// Get handles GET /wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	wishlist, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondWishlist(w, r, wishlist)
}

// Add handles POST /wishlist.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req WishlistRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	wishlist, err := h.svc.Add(r.Context(), userID, req.Product)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondWishlist(w, r, wishlist)
}

// Remove handles DELETE /wishlist/{productId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	productID, err := getPathUUID(r, "productId")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	wishlist, err := h.svc.Remove(r.Context(), userID, productID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondWishlist(w, r, wishlist)
}

func respondWishlist(w http.ResponseWriter, r *http.Request, wishlist []uuid.UUID) {
	shared.RespondWithJSON(w, r, http.StatusOK, WishlistResponse{
		Results: len(wishlist),
		Data:    wishlist,
	})
}
