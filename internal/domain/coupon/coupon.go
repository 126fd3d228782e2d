package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID              int64           `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	// ProductID scopes the coupon to one product; nil means storewide.
	ProductID *int64    `json:"product_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
