package coupons

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"befit/internal/domain/coupon"
	"befit/internal/pricing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func scanCoupon(row interface{ Scan(dest ...any) error }) (coupon.Coupon, error) {
	var cp coupon.Coupon
	var pct string
	err := row.Scan(&cp.ID, &cp.Code, &pct, &cp.ProductID, &cp.IsActive, &cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		return coupon.Coupon{}, err
	}
	cp.DiscountPercent = pricing.ParsePrice(pct).Decimal()
	return cp, nil
}

// ByCodes resolves every submitted code; a missing code fails the whole
// lookup so coupon application stays all-or-nothing.
func (r *Repo) ByCodes(ctx context.Context, codes []string) ([]coupon.Coupon, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, discount_percent::text, product_id, is_active, created_at, updated_at
		FROM coupons
		WHERE code = ANY($1)
	`, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := map[string]coupon.Coupon{}
	for rows.Next() {
		cp, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		found[cp.Code] = cp
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]coupon.Coupon, 0, len(codes))
	for _, code := range codes {
		cp, ok := found[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCouponInvalid, code)
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *Repo) List(ctx context.Context) ([]coupon.Coupon, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, discount_percent::text, product_id, is_active, created_at, updated_at
		FROM coupons ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []coupon.Coupon
	for rows.Next() {
		cp, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, code string, pct decimal.Decimal, productID *int64) (coupon.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx, `
		INSERT INTO coupons (code, discount_percent, product_id, is_active)
		VALUES ($1,$2,$3,true)
		RETURNING id, code, discount_percent::text, product_id, is_active, created_at, updated_at
	`, code, pct, productID))
}

func (r *Repo) Update(ctx context.Context, id int64, pct *decimal.Decimal, isActive *bool) (coupon.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx, `
		UPDATE coupons
		SET
		  discount_percent = COALESCE($2, discount_percent),
		  is_active = COALESCE($3, is_active),
		  updated_at = now()
		WHERE id = $1
		RETURNING id, code, discount_percent::text, product_id, is_active, created_at, updated_at
	`, id, pct, isActive))
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id=$1`, id)
	return err
}
