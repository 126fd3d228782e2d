package product

import (
	"testing"

	"github.com/shopspring/decimal"

	"befit/internal/pricing"
)

func TestRecompute(t *testing.T) {
	p := Product{
		Variants: []Variant{
			{Price: pricing.ParsePrice("10.00"), StockOnline: 3, StockGym: 2},
			{Price: pricing.ParsePrice("abc"), StockOnline: 0, StockGym: 1},
			{Price: pricing.ParsePrice("5.50"), StockOnline: 0, StockGym: 0},
		},
	}
	p.Recompute()

	if !p.DisplayPrice.Equal(decimal.RequireFromString("5.50")) {
		t.Errorf("DisplayPrice = %s, want 5.50", p.DisplayPrice)
	}
	if p.TotalStock != 6 {
		t.Errorf("TotalStock = %d, want 6", p.TotalStock)
	}
}

func TestRecomputeNoVariants(t *testing.T) {
	var p Product
	p.Recompute()
	if !p.DisplayPrice.IsZero() {
		t.Errorf("DisplayPrice = %s, want 0", p.DisplayPrice)
	}
	if p.TotalStock != 0 {
		t.Errorf("TotalStock = %d, want 0", p.TotalStock)
	}
}

func TestFilterOptionsDedup(t *testing.T) {
	f1, f2 := int64(1), int64(2)
	products := []Product{
		{BrandID: 10, Brand: "Prozis", Variants: []Variant{
			{FlavorID: &f1, Flavor: "Chocolate"},
			{FlavorID: &f2, Flavor: "Morango"},
		}},
		{BrandID: 10, Brand: "Prozis", Variants: []Variant{
			{FlavorID: &f1, Flavor: "Chocolate"},
		}},
		{BrandID: 20, Brand: "Scitec"},
	}

	brands, flavors := FilterOptions(products)
	if len(brands) != 2 {
		t.Fatalf("brands = %v, want 2 entries", brands)
	}
	if len(flavors) != 2 {
		t.Fatalf("flavors = %v, want 2 entries", flavors)
	}
	if brands[0].Name != "Prozis" || brands[1].Name != "Scitec" {
		t.Errorf("unexpected brand order/names: %v", brands)
	}
}
