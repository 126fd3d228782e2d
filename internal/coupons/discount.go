package coupons

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"befit/internal/domain/coupon"
	"befit/internal/pricing"
)

var ErrCouponInvalid = errors.New("coupon invalid or inactive")

// CartLine is the cart snapshot the storefront sends with an apply
// request: price and quantity per product.
type CartLine struct {
	ProductID     int64         `json:"product_id"`
	Price         pricing.Price `json:"price"`
	OriginalPrice pricing.Price `json:"original_price"`
	Qty           int           `json:"quantity"`
}

// Dedup normalizes a submitted code list: trims, uppercases, and drops
// repeats, reporting which codes were duplicated so the storefront can
// warn.
func Dedup(codes []string) (unique, dups []string) {
	seen := map[string]bool{}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if seen[c] {
			dups = append(dups, c)
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	return unique, dups
}

// Subtotal sums price*qty over valid lines.
func Subtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if !l.Price.Valid() || l.Qty <= 0 {
			continue
		}
		total = total.Add(l.Price.Decimal().Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return pricing.Round(total)
}

// Discount computes the combined discount of the given coupons over the
// cart. Application is all-or-nothing: any inactive coupon fails the
// whole call, mirroring the storefront behavior of resetting the
// discount to zero on failure. Product-scoped coupons only discount
// their product's lines.
func Discount(lines []CartLine, cs []coupon.Coupon) (decimal.Decimal, error) {
	total := decimal.Zero
	hundred := decimal.NewFromInt(100)

	for _, cp := range cs {
		if !cp.IsActive {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrCouponInvalid, cp.Code)
		}

		base := decimal.Zero
		for _, l := range lines {
			if !l.Price.Valid() || l.Qty <= 0 {
				continue
			}
			if cp.ProductID != nil && *cp.ProductID != l.ProductID {
				continue
			}
			base = base.Add(l.Price.Decimal().Mul(decimal.NewFromInt(int64(l.Qty))))
		}
		total = total.Add(base.Mul(cp.DiscountPercent).Div(hundred))
	}

	total = pricing.Round(total)
	if sub := Subtotal(lines); total.GreaterThan(sub) {
		total = sub
	}
	return total, nil
}
