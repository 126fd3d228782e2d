package addresses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"befit/internal/auth"
	"befit/internal/domain/address"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

type createReq struct {
	Kind       string `json:"kind" binding:"required"`
	Name       string `json:"name"`
	Street     string `json:"morada"`
	City       string `json:"cidade"`
	PostalCode string `json:"codigo_postal"`
	Phone      string `json:"telefone"`
}

// Create records the shipping address the checkout will reference. The
// client either picks a fixed pickup point ("store"/"befit") or sends
// custom fields; both produce a row and return its id, which is the
// contract the checkout step depends on.
func (h *Handler) Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var a address.Address
	switch req.Kind {
	case address.KindStore, address.KindBefit:
		a, _ = PickupAddress(req.Kind)
	case address.KindCustom:
		if req.Name == "" || req.Street == "" || req.City == "" || req.PostalCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing address fields"})
			return
		}
		a = address.Address{
			Kind:       address.KindCustom,
			Name:       req.Name,
			Street:     req.Street,
			City:       req.City,
			PostalCode: req.PostalCode,
			Phone:      req.Phone,
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown address kind"})
		return
	}

	a.UserID = auth.UserID(c)
	created, err := h.repo.Create(c.Request.Context(), a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create address"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
