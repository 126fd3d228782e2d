package coupons

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"befit/internal/pricing"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

type applyReq struct {
	Codes []string   `json:"coupon_codes" binding:"required"`
	Items []CartLine `json:"items" binding:"required"`
}

// Apply validates the whole code list against the cart snapshot and
// returns the new discount and total. Failure resets the discount to
// zero; there is no partial success.
func (h *Handler) Apply(c *gin.Context) {
	var req applyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	unique, dups := Dedup(req.Codes)
	subtotal := Subtotal(req.Items)

	if len(unique) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "no coupon codes given",
			"discount": decimal.Zero,
			"total":    subtotal,
		})
		return
	}

	cs, err := h.repo.ByCodes(c.Request.Context(), unique)
	if err == nil {
		var discount decimal.Decimal
		discount, err = Discount(req.Items, cs)
		if err == nil {
			resp := gin.H{
				"coupon_codes": unique,
				"discount":     discount,
				"subtotal":     subtotal,
				"total":        pricing.Round(subtotal.Sub(discount)),
			}
			if len(dups) > 0 {
				resp["warning"] = "cupão já aplicado: " + strings.Join(dups, ", ")
			}
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	status := http.StatusInternalServerError
	msg := "failed to apply coupons"
	if errors.Is(err, ErrCouponInvalid) {
		status = http.StatusBadRequest
		msg = err.Error()
	}
	c.JSON(status, gin.H{
		"error":    msg,
		"discount": decimal.Zero,
		"total":    subtotal,
	})
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type createCouponReq struct {
	Code            string        `json:"code" binding:"required"`
	DiscountPercent pricing.Price `json:"discount_percent"`
	ProductID       *int64        `json:"product_id"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req createCouponReq
	if err := c.ShouldBindJSON(&req); err != nil || !req.DiscountPercent.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	pct := req.DiscountPercent.Decimal()
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount must be between 0 and 100"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	cp, err := h.repo.Create(c.Request.Context(), code, pct, req.ProductID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "coupon code already exists"})
		return
	}
	c.JSON(http.StatusCreated, cp)
}

type updateCouponReq struct {
	DiscountPercent *pricing.Price `json:"discount_percent"`
	IsActive        *bool          `json:"is_active"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req updateCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var pct *decimal.Decimal
	if req.DiscountPercent != nil {
		if !req.DiscountPercent.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discount"})
			return
		}
		d := req.DiscountPercent.Decimal()
		pct = &d
	}

	cp, err := h.repo.Update(c.Request.Context(), id, pct, req.IsActive)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update coupon"})
		return
	}
	c.JSON(http.StatusOK, cp)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to delete coupon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
