package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"befit/internal/pricing"
)

type Handler struct {
	gateway *Gateway
	repo    *Repo
}

func NewHandler(gateway *Gateway, repo *Repo) *Handler {
	return &Handler{gateway: gateway, repo: repo}
}

type createReq struct {
	Name     string        `json:"name" binding:"required"`
	Email    string        `json:"email" binding:"required,email"`
	Phone    string        `json:"phone"`
	OrderKey string        `json:"order_key"`
	Total    pricing.Price `json:"total"`
}

// Create handles POST /api/referencia/:metodo/create. It mints the
// method-specific confirmation fields and stores a pending reference
// that the final checkout call verifies.
func (h *Handler) Create(c *gin.Context) {
	method := c.Param("metodo")

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !req.Total.Valid() || req.Total.Decimal().IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid total"})
		return
	}

	key := req.OrderKey
	if key == "" {
		key = NewOrderKey()
	}

	ref, err := h.gateway.NewReference(method, key, pricing.Round(req.Total.Decimal()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method"})
		return
	}

	stored, err := h.repo.Insert(c.Request.Context(), ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment reference"})
		return
	}
	c.JSON(http.StatusCreated, stored)
}
