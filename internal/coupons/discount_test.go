package coupons

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"befit/internal/domain/coupon"
	"befit/internal/pricing"
)

func line(productID int64, price string, qty int) CartLine {
	return CartLine{ProductID: productID, Price: pricing.ParsePrice(price), Qty: qty}
}

func TestDedup(t *testing.T) {
	unique, dups := Dedup([]string{"VERAO10", " verao10 ", "FIT5", ""})
	if len(unique) != 2 || unique[0] != "VERAO10" || unique[1] != "FIT5" {
		t.Fatalf("unique = %v", unique)
	}
	if len(dups) != 1 || dups[0] != "VERAO10" {
		t.Fatalf("dups = %v", dups)
	}
}

func TestSubtotal(t *testing.T) {
	lines := []CartLine{
		line(1, "20.00", 2),
		line(2, "abc", 1), // malformed price is skipped
		line(3, "5.00", 0),
	}
	got := Subtotal(lines)
	if !got.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("Subtotal = %s, want 40.00", got)
	}
}

func TestDiscountStorewide(t *testing.T) {
	lines := []CartLine{line(1, "20.00", 2)} // subtotal 40
	cs := []coupon.Coupon{{
		Code:            "VERAO10",
		DiscountPercent: decimal.NewFromInt(10),
		IsActive:        true,
	}}
	got, err := Discount(lines, cs)
	if err != nil {
		t.Fatalf("Discount: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("4.00")) {
		t.Fatalf("Discount = %s, want 4.00", got)
	}
}

func TestDiscountProductScoped(t *testing.T) {
	scoped := int64(2)
	lines := []CartLine{
		line(1, "10.00", 1),
		line(2, "30.00", 1),
	}
	cs := []coupon.Coupon{{
		Code:            "WHEY20",
		DiscountPercent: decimal.NewFromInt(20),
		ProductID:       &scoped,
		IsActive:        true,
	}}
	got, err := Discount(lines, cs)
	if err != nil {
		t.Fatalf("Discount: %v", err)
	}
	// 20% of 30, the scoped product only.
	if !got.Equal(decimal.RequireFromString("6.00")) {
		t.Fatalf("Discount = %s, want 6.00", got)
	}
}

func TestDiscountInactiveFailsWhole(t *testing.T) {
	lines := []CartLine{line(1, "20.00", 2)}
	cs := []coupon.Coupon{
		{Code: "OK10", DiscountPercent: decimal.NewFromInt(10), IsActive: true},
		{Code: "DEAD", DiscountPercent: decimal.NewFromInt(50), IsActive: false},
	}
	got, err := Discount(lines, cs)
	if !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("err = %v, want ErrCouponInvalid", err)
	}
	if !got.IsZero() {
		t.Fatalf("Discount on failure = %s, want 0", got)
	}
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	lines := []CartLine{line(1, "10.00", 1)}
	cs := []coupon.Coupon{
		{Code: "A", DiscountPercent: decimal.NewFromInt(80), IsActive: true},
		{Code: "B", DiscountPercent: decimal.NewFromInt(80), IsActive: true},
	}
	got, err := Discount(lines, cs)
	if err != nil {
		t.Fatalf("Discount: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("Discount = %s, want capped at 10.00", got)
	}
}
