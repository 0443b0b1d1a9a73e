package api

import (
	"net/http"

	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/service"
)

// CartHandler serves the authenticated user's cart.
type CartHandler struct {
	svc *service.CartService
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// CartResponse wraps a cart with its line count.
type CartResponse struct {
	NumOfCartItems int          `json:"numOfCartItems"`
	Data           *domain.Cart `json:"data"`
}

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cart, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondCart(w, r, http.StatusOK, cart)
}

// AddItem handles POST /cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.svc.AddItem(r.Context(), userID, req.Product, req.Quantity, req.Color)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondCart(w, r, http.StatusOK, cart)
}

// UpdateItem handles PUT /cart/{itemId}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, err := getPathUUID(r, "itemId")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req UpdateCartItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.svc.UpdateItemQuantity(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondCart(w, r, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/{itemId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, err := getPathUUID(r, "itemId")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	cart, err := h.svc.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondCart(w, r, http.StatusOK, cart)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cart, err := h.svc.Clear(r.Context(), userID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondCart(w, r, http.StatusOK, cart)
}

// ApplyCoupon handles PUT /cart/applyCoupon.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ApplyCouponRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.svc.ApplyCoupon(r.Context(), userID, req.Coupon)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondCart(w, r, http.StatusOK, cart)
}

func respondCart(w http.ResponseWriter, r *http.Request, status int, cart *domain.Cart) {
	shared.RespondWithJSON(w, r, status, CartResponse{
		NumOfCartItems: len(cart.Items),
		Data:           cart,
	})
}
