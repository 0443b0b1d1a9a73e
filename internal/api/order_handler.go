package api

import (
	"net/http"

	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/service"
)

// OrderHandler serves checkout and the order lifecycle endpoints.
type OrderHandler struct {
	svc *service.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// CreateCashOrder handles POST /orders: cash checkout of the authenticated
// user's cart.
func (h *OrderHandler) CreateCashOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	order, err := h.svc.CreateCashOrder(r.Context(), userID, domain.ShippingAddress{
		Details:    req.ShippingAddress.Details,
		Phone:      req.ShippingAddress.Phone,
		City:       req.ShippingAddress.City,
		PostalCode: req.ShippingAddress.PostalCode,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, DataResponse{Data: order})
}

// List handles GET /orders. Users see their own orders, admins see all.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var scope []query.Filter
	if !shared.IsAdmin(r.Context()) {
		scope = []query.Filter{{
			Field: "user",
			Op:    query.OpEq,
			Value: userID.String(),
		}}
	}

	orders, pagination, plan, err := h.svc.Resource.List(r.Context(), scope, r.URL.Query())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respondList(w, r, orders, pagination, plan)
}

// Get handles GET /orders/{id}. Owner or admin only.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.svc.Get(r.Context(), id, userID, shared.IsAdmin(r.Context()))
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: order})
}

// MarkPaid handles PUT /orders/{id}/pay. Admin only by routing.
func (h *OrderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.svc.MarkPaid(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: order})
}

// MarkDelivered handles PUT /orders/{id}/deliver. Admin only by routing.
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.svc.MarkDelivered(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: order})
}
