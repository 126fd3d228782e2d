package favorites

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"befit/internal/domain/product"
	"befit/internal/pricing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Add is idempotent; favoriting twice is a no-op.
func (r *Repo) Add(ctx context.Context, userID, productID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO favorites (user_id, product_id)
		VALUES ($1,$2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *Repo) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM favorites WHERE user_id=$1 AND product_id=$2
	`, userID, productID)
	return err
}

// List returns favorited products with just enough to render a card:
// name, image and the minimum variant price.
func (r *Repo) List(ctx context.Context, userID int64) ([]product.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.image,''),
		       COALESCE(MIN(v.price), 0)::text,
		       COALESCE(SUM(v.stock_online + v.stock_gym), 0)
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		LEFT JOIN product_variants v ON v.product_id = p.id
		WHERE f.user_id = $1 AND p.is_active = true
		GROUP BY p.id, p.name, p.image
		ORDER BY MAX(f.created_at) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		var p product.Product
		var minPrice string
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &minPrice, &p.TotalStock); err != nil {
			return nil, err
		}
		p.DisplayPrice = pricing.ParsePrice(minPrice).Decimal()
		out = append(out, p)
	}
	return out, rows.Err()
}
