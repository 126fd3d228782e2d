package payments

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"befit/internal/domain/order"
	"befit/internal/util"
)

var ErrUnknownMethod = errors.New("unknown payment method")

// Reference is a pending payment initiation: what the storefront shows
// on the confirmation step, and what checkout later verifies.
type Reference struct {
	ID          int64           `json:"id"`
	OrderKey    string          `json:"order_key"`
	Method      string          `json:"method"`
	Entity      string          `json:"entity,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	RedirectURL string          `json:"redirect_url,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type GatewayConfig struct {
	MultibancoEntity string
	CardRedirectBase string
}

// Gateway mints method-specific payment references. The old system got
// these from its payment collaborator; the shape (entity/reference for
// Multibanco, a redirect URL for card, a bare ack for MBWay) is kept.
type Gateway struct {
	cfg GatewayConfig
}

func NewGateway(cfg GatewayConfig) *Gateway {
	return &Gateway{cfg: cfg}
}

// NewOrderKey derives the order key the same way the storefront did,
// from the current timestamp, plus a short random suffix since the
// server mints keys for concurrent customers.
func NewOrderKey() string {
	return fmt.Sprintf("befit-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (g *Gateway) NewReference(method, orderKey string, total decimal.Decimal) (Reference, error) {
	ref := Reference{
		OrderKey: orderKey,
		Method:   method,
		Total:    total,
		Status:   "pending",
	}

	switch method {
	case order.MethodMBWay:
		// MBWay pushes to the customer's phone; nothing extra to show.
	case order.MethodMultibanco:
		digits, err := util.RandomDigits(9)
		if err != nil {
			return Reference{}, err
		}
		ref.Entity = g.cfg.MultibancoEntity
		ref.Reference = digits
	case order.MethodCard:
		ref.RedirectURL = g.cfg.CardRedirectBase + "/" + uuid.NewString()
	default:
		return Reference{}, ErrUnknownMethod
	}
	return ref, nil
}
