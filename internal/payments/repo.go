package payments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"befit/internal/pricing"
)

var ErrReferenceNotFound = errors.New("payment reference not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, ref Reference) (Reference, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO payment_references (order_key, method, entity, reference, redirect_url, total, status)
		VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),NULLIF($5,''),$6,$7)
		RETURNING id, created_at
	`, ref.OrderKey, ref.Method, ref.Entity, ref.Reference, ref.RedirectURL, ref.Total, ref.Status).Scan(&ref.ID, &ref.CreatedAt)
	return ref, err
}

// PendingByKey looks up an unconsumed reference for checkout to verify.
func (r *Repo) PendingByKey(ctx context.Context, method, orderKey string) (Reference, error) {
	var ref Reference
	var total string
	err := r.db.QueryRow(ctx, `
		SELECT id, order_key, method, COALESCE(entity,''), COALESCE(reference,''), COALESCE(redirect_url,''),
		       total::text, status, created_at
		FROM payment_references
		WHERE order_key=$1 AND method=$2 AND status='pending'
	`, orderKey, method).Scan(
		&ref.ID, &ref.OrderKey, &ref.Method, &ref.Entity, &ref.Reference, &ref.RedirectURL,
		&total, &ref.Status, &ref.CreatedAt,
	)
	if err != nil {
		return Reference{}, ErrReferenceNotFound
	}
	ref.Total = pricing.ParsePrice(total).Decimal()
	return ref, nil
}

func (r *Repo) MarkUsed(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE payment_references SET status='used' WHERE id=$1`, id)
	return err
}
