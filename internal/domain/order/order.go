package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPendingPayment = "pending_payment"
	StatusPaid           = "paid"
	StatusShipped        = "shipped"
	StatusCancelled      = "cancelled"
)

const (
	MethodMBWay      = "mbway"
	MethodMultibanco = "multibanco"
	MethodCard       = "cc"
	MethodCOD        = "cod"
)

type Item struct {
	ID        int64           `json:"id"`
	VariantID int64           `json:"variant_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PaymentDetails is what the confirmation page renders: entity/reference
// for Multibanco, a redirect URL for card, nothing extra for MBWay/COD.
type PaymentDetails struct {
	Method      string `json:"method"`
	Entity      string `json:"entity,omitempty"`
	Reference   string `json:"reference,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Email     string          `json:"email"`
	AddressID int64           `json:"address_id"`
	Status    string          `json:"status"`
	Payment   PaymentDetails  `json:"payment"`
	Coupons   []string        `json:"coupon_codes,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	Items     []Item          `json:"items,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Dashboard is the admin back-office summary block.
type Dashboard struct {
	TotalOrders   int64           `json:"total_orders"`
	PendingOrders int64           `json:"pending_orders"`
	OrdersToday   int64           `json:"orders_today"`
	Revenue       decimal.Decimal `json:"revenue"`
}
