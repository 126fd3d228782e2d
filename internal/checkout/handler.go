package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"befit/internal/addresses"
	"befit/internal/auth"
	"befit/internal/coupons"
	"befit/internal/orders"
	"befit/internal/payments"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Checkout handles POST /api/orders/checkout.
func (h *Handler) Checkout(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.svc.Checkout(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "checkout failed"
		switch {
		case errors.Is(err, addresses.ErrNotFound):
			status, msg = http.StatusBadRequest, "address not found"
		case errors.Is(err, payments.ErrReferenceNotFound):
			status, msg = http.StatusBadRequest, "payment reference not found"
		case errors.Is(err, ErrUnknownMethod):
			status, msg = http.StatusBadRequest, "unknown payment method"
		case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrBadVariant):
			status, msg = http.StatusBadRequest, err.Error()
		case errors.Is(err, coupons.ErrCouponInvalid):
			status, msg = http.StatusBadRequest, err.Error()
		case errors.Is(err, orders.ErrOutOfStock):
			status, msg = http.StatusConflict, "insufficient stock"
		}
		c.JSON(status, gin.H{
			"error":       msg,
			"state":       res.State,
			"failed_step": res.FailedStep,
		})
		return
	}

	c.JSON(http.StatusCreated, res)
}
