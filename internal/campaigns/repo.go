package campaigns

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"befit/internal/domain/campaign"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const columns = `id, name, COALESCE(image,''), product_id, starts_at, ends_at, is_active, created_at, updated_at`

func scan(row pgx.Row) (campaign.Campaign, error) {
	var cp campaign.Campaign
	err := row.Scan(&cp.ID, &cp.Name, &cp.Image, &cp.ProductID, &cp.StartsAt, &cp.EndsAt, &cp.IsActive, &cp.CreatedAt, &cp.UpdatedAt)
	return cp, err
}

// ListActive returns campaigns currently inside their window, for the
// storefront banner.
func (r *Repo) ListActive(ctx context.Context) ([]campaign.Campaign, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+columns+`
		FROM campaigns
		WHERE is_active = true
		  AND (starts_at IS NULL OR starts_at <= now())
		  AND (ends_at IS NULL OR ends_at >= now())
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []campaign.Campaign
	for rows.Next() {
		cp, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *Repo) AdminList(ctx context.Context) ([]campaign.Campaign, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []campaign.Campaign
	for rows.Next() {
		cp, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name, image string, productID *int64, startsAt, endsAt *time.Time) (campaign.Campaign, error) {
	return scan(r.db.QueryRow(ctx, `
		INSERT INTO campaigns (name, image, product_id, starts_at, ends_at, is_active)
		VALUES ($1,NULLIF($2,''),$3,$4,$5,true)
		RETURNING `+columns, name, image, productID, startsAt, endsAt))
}

func (r *Repo) Update(ctx context.Context, id int64, name, image *string, startsAt, endsAt *time.Time, isActive *bool) (campaign.Campaign, error) {
	return scan(r.db.QueryRow(ctx, `
		UPDATE campaigns
		SET
		  name = COALESCE($2, name),
		  image = COALESCE($3, image),
		  starts_at = COALESCE($4, starts_at),
		  ends_at = COALESCE($5, ends_at),
		  is_active = COALESCE($6, is_active),
		  updated_at = now()
		WHERE id = $1
		RETURNING `+columns, id, name, image, startsAt, endsAt, isActive))
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	return err
}
