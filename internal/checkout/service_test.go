package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"befit/internal/addresses"
	"befit/internal/domain/address"
	"befit/internal/domain/coupon"
	"befit/internal/domain/order"
	"befit/internal/domain/product"
	"befit/internal/payments"
	"befit/internal/pricing"
)

type fakeAddresses struct {
	addr address.Address
	err  error
}

func (f *fakeAddresses) ByID(ctx context.Context, userID, id int64) (address.Address, error) {
	return f.addr, f.err
}

type fakePayments struct {
	ref      payments.Reference
	err      error
	verified bool
	used     []int64
}

func (f *fakePayments) PendingByKey(ctx context.Context, method, orderKey string) (payments.Reference, error) {
	f.verified = true
	return f.ref, f.err
}

func (f *fakePayments) MarkUsed(ctx context.Context, id int64) error {
	f.used = append(f.used, id)
	return nil
}

type fakeVariants struct {
	variants []product.Variant
}

func (f *fakeVariants) VariantsByIDs(ctx context.Context, ids []int64) ([]product.Variant, error) {
	return f.variants, nil
}

type fakeCoupons struct {
	cs  []coupon.Coupon
	err error
}

func (f *fakeCoupons) ByCodes(ctx context.Context, codes []string) ([]coupon.Coupon, error) {
	return f.cs, f.err
}

type fakeOrders struct {
	created *order.Order
	err     error
}

func (f *fakeOrders) Create(ctx context.Context, o order.Order) (order.Order, error) {
	if f.err != nil {
		return order.Order{}, f.err
	}
	o.ID = 101
	f.created = &o
	return o, nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, to)
	return nil
}

func testConfig() Config {
	return Config{
		ShippingFlatRate:      decimal.RequireFromString("4.99"),
		FreeShippingThreshold: decimal.RequireFromString("10.00"),
	}
}

func twoOfTwenty() ([]product.Variant, []ItemRequest) {
	vs := []product.Variant{{
		ID:        1,
		ProductID: 7,
		SKU:       "WHEY-1KG-CHOC",
		Price:     pricing.ParsePrice("20.00"),
	}}
	items := []ItemRequest{{VariantID: 1, Qty: 2}}
	return vs, items
}

func TestCheckoutHappyPathCOD(t *testing.T) {
	vs, items := twoOfTwenty()
	ords := &fakeOrders{}
	mailer := &fakeMailer{}
	svc := NewService(testConfig(),
		&fakeAddresses{addr: address.Address{ID: 3, Name: "Ana"}},
		&fakePayments{},
		&fakeVariants{variants: vs},
		&fakeCoupons{},
		ords,
		mailer,
	)

	res, err := svc.Checkout(context.Background(), 42, Request{
		AddressID: 3,
		Email:     "ana@example.com",
		Method:    order.MethodCOD,
		Items:     items,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if res.State != StateSucceeded {
		t.Errorf("state = %s", res.State)
	}
	// subtotal 40, no coupon, free shipping above 10 => total 40.00
	if res.Order.Total.String() != "40.00" {
		t.Errorf("Total = %s, want 40.00", res.Order.Total)
	}
	if !res.Order.Shipping.IsZero() {
		t.Errorf("Shipping = %s, want 0", res.Order.Shipping)
	}
	if res.Order.ID != 101 || ords.created == nil {
		t.Error("order was not persisted")
	}
	if res.Order.Status != order.StatusPendingPayment {
		t.Errorf("Status = %s", res.Order.Status)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ana@example.com" {
		t.Errorf("confirmation mail not sent: %v", mailer.sent)
	}
}

func TestCheckoutAddressFailureAbortsEverything(t *testing.T) {
	vs, items := twoOfTwenty()
	pays := &fakePayments{ref: payments.Reference{ID: 9}}
	ords := &fakeOrders{}
	svc := NewService(testConfig(),
		&fakeAddresses{err: addresses.ErrNotFound},
		pays,
		&fakeVariants{variants: vs},
		&fakeCoupons{},
		ords,
		nil,
	)

	res, err := svc.Checkout(context.Background(), 42, Request{
		AddressID: 99,
		Email:     "ana@example.com",
		Method:    order.MethodMBWay,
		OrderKey:  "befit-1",
		Items:     items,
	})
	if !errors.Is(err, addresses.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if res.State != StateFailed || res.FailedStep != "resolve-address" {
		t.Errorf("state = %s, failed step = %s", res.State, res.FailedStep)
	}
	if pays.verified {
		t.Error("payment was verified after address failure")
	}
	if ords.created != nil {
		t.Error("order was persisted after address failure")
	}
}

func TestCheckoutMultibancoCarriesReference(t *testing.T) {
	vs, items := twoOfTwenty()
	pays := &fakePayments{ref: payments.Reference{
		ID:        9,
		Entity:    "11249",
		Reference: "123456789",
	}}
	svc := NewService(testConfig(),
		&fakeAddresses{addr: address.Address{ID: 3}},
		pays,
		&fakeVariants{variants: vs},
		&fakeCoupons{},
		&fakeOrders{},
		nil,
	)

	res, err := svc.Checkout(context.Background(), 42, Request{
		AddressID: 3,
		Email:     "ana@example.com",
		Method:    order.MethodMultibanco,
		OrderKey:  "befit-1",
		Items:     items,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if res.Order.Payment.Entity != "11249" || res.Order.Payment.Reference != "123456789" {
		t.Errorf("payment details = %+v", res.Order.Payment)
	}
	if len(pays.used) != 1 || pays.used[0] != 9 {
		t.Errorf("reference not consumed: %v", pays.used)
	}
}

func TestCheckoutAppliesCouponAndShipping(t *testing.T) {
	vs, items := twoOfTwenty()
	cs := []coupon.Coupon{{
		Code:            "VERAO50",
		DiscountPercent: decimal.NewFromInt(50),
		IsActive:        true,
	}}
	svc := NewService(Config{
		ShippingFlatRate:      decimal.RequireFromString("4.99"),
		FreeShippingThreshold: decimal.RequireFromString("50.00"),
	},
		&fakeAddresses{addr: address.Address{ID: 3}},
		&fakePayments{},
		&fakeVariants{variants: vs},
		&fakeCoupons{cs: cs},
		&fakeOrders{},
		nil,
	)

	res, err := svc.Checkout(context.Background(), 42, Request{
		AddressID: 3,
		Email:     "ana@example.com",
		Method:    order.MethodCOD,
		Coupons:   []string{"verao50", "VERAO50"},
		Items:     items,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	// subtotal 40, 50% off => 20, below threshold => + 4.99 shipping
	if res.Order.Discount.String() != "20.00" {
		t.Errorf("Discount = %s, want 20.00", res.Order.Discount)
	}
	if res.Order.Total.String() != "24.99" {
		t.Errorf("Total = %s, want 24.99", res.Order.Total)
	}
	if len(res.Order.Coupons) != 1 {
		t.Errorf("coupon codes not deduped: %v", res.Order.Coupons)
	}
}

func TestCheckoutUnknownMethodFailsBeforePricing(t *testing.T) {
	vs, items := twoOfTwenty()
	ords := &fakeOrders{}
	svc := NewService(testConfig(),
		&fakeAddresses{addr: address.Address{ID: 3}},
		&fakePayments{},
		&fakeVariants{variants: vs},
		&fakeCoupons{},
		ords,
		nil,
	)

	res, err := svc.Checkout(context.Background(), 42, Request{
		AddressID: 3,
		Email:     "ana@example.com",
		Method:    "paypal",
		Items:     items,
	})
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("err = %v", err)
	}
	if res.FailedStep != "verify-payment" {
		t.Errorf("failed step = %s", res.FailedStep)
	}
	if ords.created != nil {
		t.Error("order persisted for unknown method")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := NewService(testConfig(),
		&fakeAddresses{addr: address.Address{ID: 3}},
		&fakePayments{},
		&fakeVariants{},
		&fakeCoupons{},
		&fakeOrders{},
		nil,
	)

	_, err := svc.Checkout(context.Background(), 42, Request{
		AddressID: 3,
		Email:     "ana@example.com",
		Method:    order.MethodCOD,
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}
