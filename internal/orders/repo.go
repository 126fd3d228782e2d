package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"befit/internal/domain/order"
	"befit/internal/pricing"
)

var (
	ErrOutOfStock    = errors.New("insufficient stock")
	ErrOrderNotFound = errors.New("order not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Create persists the order with its items and decrements variant stock
// in one transaction. Stock draws from the online pool first and spills
// into the gym pool; a variant without enough combined stock aborts the
// whole order.
func (r *Repo) Create(ctx context.Context, o order.Order) (order.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, email, address_id, status, method, entity, reference, redirect_url,
		                    coupon_codes, subtotal, discount, shipping, total)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),NULLIF($7,''),NULLIF($8,''),$9,$10,$11,$12,$13)
		RETURNING id, created_at, updated_at
	`, o.UserID, o.Email, o.AddressID, o.Status, o.Payment.Method, o.Payment.Entity,
		o.Payment.Reference, o.Payment.RedirectURL, o.Coupons,
		o.Subtotal, o.Discount, o.Shipping, o.Total,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return order.Order{}, err
	}

	for i, it := range o.Items {
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, variant_id, product_id, name, qty, unit_price, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`, o.ID, it.VariantID, it.ProductID, it.Name, it.Qty, it.UnitPrice, it.LineTotal).Scan(&o.Items[i].ID)
		if err != nil {
			return order.Order{}, fmt.Errorf("order item insert failed: %w", err)
		}

		ct, err := tx.Exec(ctx, `
			UPDATE product_variants
			SET stock_online = GREATEST(0, stock_online - $2),
			    stock_gym = stock_gym - GREATEST(0, $2 - stock_online),
			    updated_at = now()
			WHERE id = $1 AND stock_online + stock_gym >= $2
		`, it.VariantID, it.Qty)
		if err != nil {
			return order.Order{}, err
		}
		if ct.RowsAffected() == 0 {
			return order.Order{}, fmt.Errorf("%w: variant %d", ErrOutOfStock, it.VariantID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

const orderColumns = `
	id, user_id, email, address_id, status,
	method, COALESCE(entity,''), COALESCE(reference,''), COALESCE(redirect_url,''),
	coupon_codes, subtotal::text, discount::text, shipping::text, total::text,
	created_at, updated_at
`

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	var subtotal, discount, shipping, total string
	err := row.Scan(
		&o.ID, &o.UserID, &o.Email, &o.AddressID, &o.Status,
		&o.Payment.Method, &o.Payment.Entity, &o.Payment.Reference, &o.Payment.RedirectURL,
		&o.Coupons, &subtotal, &discount, &shipping, &total,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return order.Order{}, err
	}
	o.Subtotal = pricing.ParsePrice(subtotal).Decimal()
	o.Discount = pricing.ParsePrice(discount).Decimal()
	o.Shipping = pricing.ParsePrice(shipping).Decimal()
	o.Total = pricing.ParsePrice(total).Decimal()
	return o, nil
}

func (r *Repo) ListOwn(ctx context.Context, userID int64) ([]order.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) AdminList(ctx context.Context) ([]order.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) ByID(ctx context.Context, id int64) (order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return order.Order{}, ErrOrderNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, variant_id, product_id, name, qty, unit_price::text, line_total::text
		FROM order_items WHERE order_id=$1 ORDER BY id
	`, id)
	if err != nil {
		return order.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it order.Item
		var unit, line string
		if err := rows.Scan(&it.ID, &it.VariantID, &it.ProductID, &it.Name, &it.Qty, &unit, &line); err != nil {
			return order.Order{}, err
		}
		it.UnitPrice = pricing.ParsePrice(unit).Decimal()
		it.LineTotal = pricing.ParsePrice(line).Decimal()
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// UpdateStatus moves an order through its lifecycle; cancelling puts the
// reserved stock back into the online pool.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) (order.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var prev string
	if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&prev); err != nil {
		return order.Order{}, ErrOrderNotFound
	}

	if status == order.StatusCancelled && prev != order.StatusCancelled {
		_, err := tx.Exec(ctx, `
			UPDATE product_variants v
			SET stock_online = v.stock_online + oi.qty, updated_at = now()
			FROM order_items oi
			WHERE oi.order_id = $1 AND oi.variant_id = v.id
		`, id)
		if err != nil {
			return order.Order{}, err
		}
	}

	o, err := scanOrder(tx.QueryRow(ctx, `
		UPDATE orders SET status=$2, updated_at=now() WHERE id=$1
		RETURNING `+orderColumns, id, status))
	if err != nil {
		return order.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func (r *Repo) Dashboard(ctx context.Context) (order.Dashboard, error) {
	var d order.Dashboard
	var revenue string
	err := r.db.QueryRow(ctx, `
		SELECT
		  COUNT(*),
		  COUNT(*) FILTER (WHERE status = 'pending_payment'),
		  COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE),
		  COALESCE(SUM(total) FILTER (WHERE status IN ('paid','shipped')), 0)::text
		FROM orders
	`).Scan(&d.TotalOrders, &d.PendingOrders, &d.OrdersToday, &revenue)
	if err != nil {
		return order.Dashboard{}, err
	}
	d.Revenue = pricing.ParsePrice(revenue).Decimal()
	return d, nil
}
