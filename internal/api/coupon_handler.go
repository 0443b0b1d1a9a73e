package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/service"
)

// NewCouponHandler creates the admin-only coupon CRUD handler.
func NewCouponHandler(coupons *service.Resource[domain.Coupon]) *ResourceHandler[domain.Coupon] {
	return NewResourceHandler(coupons,
		parseCouponCreate,
		func(c *domain.Coupon) uuid.UUID { return c.ID })
}

func parseCouponCreate(r *http.Request) (*domain.Coupon, error) {
	var req CreateCouponRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, wrapBadRequest(err)
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, wrapBadRequest(err)
	}
	return domain.NewCoupon(req.Name, req.Expire, req.Discount)
}
