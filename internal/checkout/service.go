package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"befit/internal/coupons"
	"befit/internal/domain/address"
	"befit/internal/domain/coupon"
	"befit/internal/domain/order"
	"befit/internal/domain/product"
	"befit/internal/mail"
	"befit/internal/payments"
	"befit/internal/pricing"
)

var (
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrEmptyCart     = errors.New("empty cart")
	ErrBadVariant    = errors.New("variant unavailable")
)

type Config struct {
	ShippingFlatRate      decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

type AddressResolver interface {
	ByID(ctx context.Context, userID, id int64) (address.Address, error)
}

type ReferenceVerifier interface {
	PendingByKey(ctx context.Context, method, orderKey string) (payments.Reference, error)
	MarkUsed(ctx context.Context, id int64) error
}

type VariantSource interface {
	VariantsByIDs(ctx context.Context, ids []int64) ([]product.Variant, error)
}

type CouponSource interface {
	ByCodes(ctx context.Context, codes []string) ([]coupon.Coupon, error)
}

type OrderStore interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
}

type Service struct {
	cfg       Config
	addresses AddressResolver
	payments  ReferenceVerifier
	variants  VariantSource
	coupons   CouponSource
	orders    OrderStore
	mailer    mail.Mailer
}

func NewService(cfg Config, a AddressResolver, p ReferenceVerifier, v VariantSource, c CouponSource, o OrderStore, m mail.Mailer) *Service {
	return &Service{cfg: cfg, addresses: a, payments: p, variants: v, coupons: c, orders: o, mailer: m}
}

type ItemRequest struct {
	VariantID int64 `json:"variant_id" binding:"required"`
	Qty       int   `json:"quantity" binding:"required"`
}

type Request struct {
	AddressID int64         `json:"address_id" binding:"required"`
	Email     string        `json:"email" binding:"required,email"`
	Method    string        `json:"payment_method" binding:"required"`
	OrderKey  string        `json:"order_key"`
	Coupons   []string      `json:"coupon_codes"`
	Items     []ItemRequest `json:"items" binding:"required"`
}

// Result is what the confirmation page renders: the final state, the
// persisted order with its totals and payment details, and the shipping
// address.
type Result struct {
	State      State           `json:"state"`
	FailedStep string          `json:"failed_step,omitempty"`
	Order      order.Order     `json:"order"`
	Address    address.Address `json:"address"`
}

// Checkout runs the submission pipeline: resolve address, verify the
// payment reference, price the cart against live variant data, persist.
// Each step depends on the previous one succeeding.
func (s *Service) Checkout(ctx context.Context, userID int64, req Request) (Result, error) {
	p := NewPipeline()

	var (
		addr       address.Address
		payDetails order.PaymentDetails
		payRefID   int64
		priced     order.Order
	)

	resolveAddress := Step{Name: "resolve-address", Run: func(ctx context.Context) error {
		var err error
		addr, err = s.addresses.ByID(ctx, userID, req.AddressID)
		return err
	}}

	verifyPayment := Step{Name: "verify-payment", Run: func(ctx context.Context) error {
		switch req.Method {
		case order.MethodCOD:
			payDetails = order.PaymentDetails{Method: order.MethodCOD}
			return nil
		case order.MethodMBWay, order.MethodMultibanco, order.MethodCard:
			ref, err := s.payments.PendingByKey(ctx, req.Method, req.OrderKey)
			if err != nil {
				return err
			}
			payRefID = ref.ID
			payDetails = order.PaymentDetails{
				Method:      req.Method,
				Entity:      ref.Entity,
				Reference:   ref.Reference,
				RedirectURL: ref.RedirectURL,
			}
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrUnknownMethod, req.Method)
		}
	}}

	priceOrder := Step{Name: "price-order", Run: func(ctx context.Context) error {
		var err error
		priced, err = s.price(ctx, req)
		return err
	}}

	persistOrder := Step{Name: "persist-order", Run: func(ctx context.Context) error {
		priced.UserID = userID
		priced.Email = req.Email
		priced.AddressID = addr.ID
		priced.Status = order.StatusPendingPayment
		priced.Payment = payDetails

		var err error
		priced, err = s.orders.Create(ctx, priced)
		if err != nil {
			return err
		}
		if payRefID != 0 {
			_ = s.payments.MarkUsed(ctx, payRefID)
		}
		return nil
	}}

	if err := p.Run(ctx, resolveAddress, verifyPayment, priceOrder, persistOrder); err != nil {
		return Result{State: p.State(), FailedStep: p.FailedStep()}, err
	}

	// Confirmation mail is best-effort; a mail outage never fails an order.
	if s.mailer != nil {
		_ = s.mailer.Send(priced.Email, "A tua encomenda BeFit", confirmationBody(priced, addr))
	}

	return Result{State: p.State(), Order: priced, Address: addr}, nil
}

func (s *Service) price(ctx context.Context, req Request) (order.Order, error) {
	if len(req.Items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	ids := make([]int64, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Qty <= 0 {
			return order.Order{}, fmt.Errorf("%w: bad quantity for variant %d", ErrBadVariant, it.VariantID)
		}
		ids = append(ids, it.VariantID)
	}

	variants, err := s.variants.VariantsByIDs(ctx, ids)
	if err != nil {
		return order.Order{}, err
	}
	byID := make(map[int64]product.Variant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}

	var o order.Order
	subtotal := decimal.Zero
	lines := make([]coupons.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		v, ok := byID[it.VariantID]
		if !ok || !v.Price.Valid() {
			return order.Order{}, fmt.Errorf("%w: %d", ErrBadVariant, it.VariantID)
		}
		unit := v.Price.Decimal()
		line := unit.Mul(decimal.NewFromInt(int64(it.Qty)))
		subtotal = subtotal.Add(line)

		o.Items = append(o.Items, order.Item{
			VariantID: v.ID,
			ProductID: v.ProductID,
			Name:      v.SKU,
			Qty:       it.Qty,
			UnitPrice: unit,
			LineTotal: pricing.Round(line),
		})
		lines = append(lines, coupons.CartLine{ProductID: v.ProductID, Price: v.Price, Qty: it.Qty})
	}
	subtotal = pricing.Round(subtotal)

	discount := decimal.Zero
	unique, _ := coupons.Dedup(req.Coupons)
	if len(unique) > 0 {
		cs, err := s.coupons.ByCodes(ctx, unique)
		if err != nil {
			return order.Order{}, err
		}
		discount, err = coupons.Discount(lines, cs)
		if err != nil {
			return order.Order{}, err
		}
	}

	shipping := s.cfg.ShippingFlatRate
	if subtotal.Sub(discount).GreaterThanOrEqual(s.cfg.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	o.Coupons = unique
	o.Subtotal = subtotal
	o.Discount = discount
	o.Shipping = shipping
	o.Total = pricing.Round(subtotal.Sub(discount).Add(shipping))
	return o, nil
}

func confirmationBody(o order.Order, a address.Address) string {
	body := fmt.Sprintf("Obrigado pela tua encomenda #%d!\n\n", o.ID)
	body += fmt.Sprintf("Total: %s EUR\n", o.Total.StringFixed(2))
	body += fmt.Sprintf("Pagamento: %s\n", o.Payment.Method)
	if o.Payment.Entity != "" {
		body += fmt.Sprintf("Entidade: %s\nReferência: %s\n", o.Payment.Entity, o.Payment.Reference)
	}
	body += fmt.Sprintf("\nEntrega: %s, %s, %s %s\n", a.Name, a.Street, a.PostalCode, a.City)
	return body
}
