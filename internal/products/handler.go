package products

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"befit/internal/cache"
	"befit/internal/domain/product"
	"befit/internal/pricing"
)

type Handler struct {
	repo  *Repo
	cache *cache.Cache
}

func NewHandler(repo *Repo, c *cache.Cache) *Handler {
	return &Handler{repo: repo, cache: c}
}

type listResponse struct {
	Items   []product.Product `json:"items"`
	Brands  []product.Option  `json:"brands"`
	Flavors []product.Option  `json:"flavors"`
}

// List is the storefront listing. Each product carries display_price
// (minimum valid variant price) and total_stock (online + gym pools),
// derived fresh on every fetch; the brand/flavor sets feed the filter
// controls.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var cat *string
	if v := c.Query("category"); v != "" {
		cat = &v
	}

	// Only the unfiltered listing is cached; category views go to the DB.
	if cat == nil {
		var cached listResponse
		if ok, _ := h.cache.GetJSON(ctx, cache.KeyProductList, &cached); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	items, err := h.repo.ListPublic(ctx, cat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	for i := range items {
		items[i].Recompute()
	}
	brands, flavors := product.FilterOptions(items)

	resp := listResponse{Items: items, Brands: brands, Flavors: flavors}
	if cat == nil {
		_ = h.cache.SetJSON(ctx, cache.KeyProductList, resp)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.GetPublic(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	p.Recompute()
	c.JSON(http.StatusOK, p)
}

type createVariantReq struct {
	SKU         string        `json:"sku" binding:"required"`
	WeightGrams int           `json:"weight_grams"`
	FlavorID    *int64        `json:"flavor_id"`
	Price       pricing.Price `json:"preco"`
	StockOnline int           `json:"quantidade_em_stock"`
	StockGym    int           `json:"stock_ginasio"`
}

type createProductReq struct {
	CategoryID    int64            `json:"category_id" binding:"required"`
	BrandID       int64            `json:"brand_id" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Image         string           `json:"image"`
	OriginalPrice pricing.Price    `json:"original_price"`
	Variants      []createVariantReq `json:"variants" binding:"required"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	vars := make([]CreateVariantInput, 0, len(req.Variants))
	for _, v := range req.Variants {
		if !v.Price.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant price"})
			return
		}
		vars = append(vars, CreateVariantInput{
			SKU:         v.SKU,
			WeightGrams: v.WeightGrams,
			FlavorID:    v.FlavorID,
			Price:       v.Price.Decimal(),
			StockOnline: v.StockOnline,
			StockGym:    v.StockGym,
		})
	}

	origPrice := decimal.Zero
	if req.OriginalPrice.Valid() {
		origPrice = req.OriginalPrice.Decimal()
	}

	p, err := h.repo.CreateProductWithVariants(c.Request.Context(), CreateProductInput{
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Name:          req.Name,
		Description:   req.Description,
		Image:         req.Image,
		OriginalPrice: origPrice,
		Variants:      vars,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create product"})
		return
	}

	h.invalidateListing(c)
	c.JSON(http.StatusCreated, p)
}

type updateProductReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	CategoryID  *int64  `json:"category_id"`
	BrandID     *int64  `json:"brand_id"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := h.repo.AdminUpdate(c.Request.Context(), id, req.Name, req.Description, req.Image, req.CategoryID, req.BrandID, req.IsActive)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update product"})
		return
	}
	h.invalidateListing(c)
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.AdminDelete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to delete product"})
		return
	}
	h.invalidateListing(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) AdminAddVariant(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req createVariantReq
	if err := c.ShouldBindJSON(&req); err != nil || !req.Price.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	v, err := h.repo.AddVariant(c.Request.Context(), productID, CreateVariantInput{
		SKU:         req.SKU,
		WeightGrams: req.WeightGrams,
		FlavorID:    req.FlavorID,
		Price:       req.Price.Decimal(),
		StockOnline: req.StockOnline,
		StockGym:    req.StockGym,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to add variant"})
		return
	}
	h.invalidateListing(c)
	c.JSON(http.StatusCreated, v)
}

type updateVariantReq struct {
	Price       *pricing.Price `json:"preco"`
	StockOnline *int           `json:"quantidade_em_stock"`
	StockGym    *int           `json:"stock_ginasio"`
}

func (h *Handler) AdminUpdateVariant(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req updateVariantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var price *decimal.Decimal
	if req.Price != nil {
		if !req.Price.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant price"})
			return
		}
		d := req.Price.Decimal()
		price = &d
	}

	v, err := h.repo.UpdateVariant(c.Request.Context(), id, price, req.StockOnline, req.StockGym)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update variant"})
		return
	}
	h.invalidateListing(c)
	c.JSON(http.StatusOK, v)
}

func (h *Handler) AdminDeleteVariant(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.DeleteVariant(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to delete variant"})
		return
	}
	h.invalidateListing(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) invalidateListing(c *gin.Context) {
	_ = h.cache.Invalidate(c.Request.Context(), cache.KeyProductList)
}
