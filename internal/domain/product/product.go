package product

import (
	"time"

	"github.com/shopspring/decimal"

	"befit/internal/pricing"
)

type Product struct {
	ID            int64         `json:"id"`
	CategoryID    int64         `json:"category_id"`
	BrandID       int64         `json:"brand_id"`
	Category      string        `json:"category,omitempty"`
	Brand         string        `json:"brand,omitempty"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Image         string        `json:"image,omitempty"`
	OriginalPrice pricing.Price `json:"original_price"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Variants      []Variant     `json:"variants,omitempty"`

	// Derived on every fetch, never persisted.
	DisplayPrice decimal.Decimal `json:"display_price"`
	TotalStock   int             `json:"total_stock"`
}

type Variant struct {
	ID          int64         `json:"id"`
	ProductID   int64         `json:"product_id"`
	SKU         string        `json:"sku"`
	WeightGrams int           `json:"weight_grams"`
	FlavorID    *int64        `json:"flavor_id,omitempty"`
	Flavor      string        `json:"flavor,omitempty"`
	Price       pricing.Price `json:"preco"`
	StockOnline int           `json:"quantidade_em_stock"`
	StockGym    int           `json:"stock_ginasio"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TotalStock sums both pools: what the webshop holds plus what sits at
// the gym counter.
func (v Variant) TotalStock() int {
	return v.StockOnline + v.StockGym
}

// Recompute refreshes the derived display fields from the variants.
func (p *Product) Recompute() {
	prices := make([]pricing.Price, 0, len(p.Variants))
	total := 0
	for _, v := range p.Variants {
		prices = append(prices, v.Price)
		total += v.TotalStock()
	}
	p.DisplayPrice = pricing.DisplayPrice(prices)
	p.TotalStock = total
}

// Option is a deduplicated {id, name} pair for storefront filter
// controls (brands, flavors).
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FilterOptions derives the distinct brands and flavors present across
// the given products, deduplicated by id.
func FilterOptions(products []Product) (brands, flavors []Option) {
	seenBrands := map[int64]bool{}
	seenFlavors := map[int64]bool{}
	for _, p := range products {
		if p.BrandID != 0 && !seenBrands[p.BrandID] {
			seenBrands[p.BrandID] = true
			brands = append(brands, Option{ID: p.BrandID, Name: p.Brand})
		}
		for _, v := range p.Variants {
			if v.FlavorID == nil || seenFlavors[*v.FlavorID] {
				continue
			}
			seenFlavors[*v.FlavorID] = true
			flavors = append(flavors, Option{ID: *v.FlavorID, Name: v.Flavor})
		}
	}
	return brands, flavors
}
