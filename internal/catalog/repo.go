package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"befit/internal/domain/catalog"
	"befit/internal/util"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	q := `
		SELECT id, name, slug, is_active, sort_order, created_at, updated_at
		FROM categories
	`
	if activeOnly {
		q += ` WHERE is_active = true`
	}
	q += ` ORDER BY sort_order ASC, name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) CreateCategory(ctx context.Context, name string, sortOrder int) (catalog.Category, error) {
	slug := util.Slugify(name)

	var c catalog.Category
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, slug, sort_order, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, name, slug, is_active, sort_order, created_at, updated_at
	`, name, slug, sortOrder).Scan(
		&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *Repo) UpdateCategory(ctx context.Context, id int64, name *string, sortOrder *int, isActive *bool) (catalog.Category, error) {
	// Keep slug synced with name if name updated
	var slug any
	if name != nil {
		slug = util.Slugify(*name)
	}

	var c catalog.Category
	err := r.db.QueryRow(ctx, `
		UPDATE categories
		SET
		  name = COALESCE($2, name),
		  slug = CASE WHEN $2 IS NULL THEN slug ELSE $5 END,
		  sort_order = COALESCE($3, sort_order),
		  is_active = COALESCE($4, is_active),
		  updated_at = now()
		WHERE id = $1
		RETURNING id, name, slug, is_active, sort_order, created_at, updated_at
	`, id, name, sortOrder, isActive, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repo) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(image,''), created_at
		FROM brands ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Brand
	for rows.Next() {
		var b catalog.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Image, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) CreateBrand(ctx context.Context, name, image string) (catalog.Brand, error) {
	var b catalog.Brand
	err := r.db.QueryRow(ctx, `
		INSERT INTO brands (name, image)
		VALUES ($1, NULLIF($2,''))
		RETURNING id, name, COALESCE(image,''), created_at
	`, name, image).Scan(&b.ID, &b.Name, &b.Image, &b.CreatedAt)
	return b, err
}

func (r *Repo) DeleteBrand(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM brands WHERE id=$1`, id)
	return err
}

func (r *Repo) ListFlavors(ctx context.Context) ([]catalog.Flavor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at FROM flavors ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Flavor
	for rows.Next() {
		var f catalog.Flavor
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) CreateFlavor(ctx context.Context, name string) (catalog.Flavor, error) {
	var f catalog.Flavor
	err := r.db.QueryRow(ctx, `
		INSERT INTO flavors (name) VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&f.ID, &f.Name, &f.CreatedAt)
	return f, err
}

func (r *Repo) DeleteFlavor(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM flavors WHERE id=$1`, id)
	return err
}
