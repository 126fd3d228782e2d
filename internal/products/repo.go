package products

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"befit/internal/domain/product"
	"befit/internal/pricing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type CreateProductInput struct {
	CategoryID    int64
	BrandID       int64
	Name          string
	Description   string
	Image         string
	OriginalPrice decimal.Decimal

	Variants []CreateVariantInput
}

type CreateVariantInput struct {
	SKU         string
	WeightGrams int
	FlavorID    *int64
	Price       decimal.Decimal
	StockOnline int
	StockGym    int
}

func (r *Repo) CreateProductWithVariants(ctx context.Context, in CreateProductInput) (product.Product, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return product.Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var p product.Product
	var origPrice string
	err = tx.QueryRow(ctx, `
		INSERT INTO products (category_id, brand_id, name, description, image, original_price, is_active)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,true)
		RETURNING id, category_id, brand_id, name, COALESCE(description,''), COALESCE(image,''),
		          original_price::text, is_active, created_at, updated_at
	`, in.CategoryID, in.BrandID, in.Name, in.Description, in.Image, in.OriginalPrice).Scan(
		&p.ID, &p.CategoryID, &p.BrandID, &p.Name, &p.Description, &p.Image,
		&origPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return product.Product{}, err
	}
	p.OriginalPrice = pricing.ParsePrice(origPrice)

	for _, v := range in.Variants {
		_, err := tx.Exec(ctx, `
			INSERT INTO product_variants (product_id, sku, weight_grams, flavor_id, price, stock_online, stock_gym)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, p.ID, v.SKU, v.WeightGrams, v.FlavorID, v.Price, v.StockOnline, v.StockGym)
		if err != nil {
			return product.Product{}, fmt.Errorf("variant insert failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return product.Product{}, err
	}
	return p, nil
}

// ListPublic returns active products with their variants attached so the
// handler can derive display price and total stock.
func (r *Repo) ListPublic(ctx context.Context, categorySlug *string) ([]product.Product, error) {
	q := `
		SELECT
		  p.id, p.category_id, p.brand_id, p.name, COALESCE(p.description,''), COALESCE(p.image,''),
		  p.original_price::text, p.is_active, p.created_at, p.updated_at,
		  c.name as category_name, b.name as brand_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id
		WHERE p.is_active = true AND c.is_active = true
	`
	args := []any{}
	if categorySlug != nil && *categorySlug != "" {
		q += " AND c.slug = $1 "
		args = append(args, *categorySlug)
	}
	q += " ORDER BY p.created_at DESC "

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	index := map[int64]int{}
	var ids []int64
	for rows.Next() {
		var p product.Product
		var origPrice string
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.BrandID, &p.Name, &p.Description, &p.Image,
			&origPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&p.Category, &p.Brand,
		); err != nil {
			return nil, err
		}
		p.OriginalPrice = pricing.ParsePrice(origPrice)
		index[p.ID] = len(out)
		ids = append(ids, p.ID)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	variants, err := r.variantsForProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, v := range variants {
		i := index[v.ProductID]
		out[i].Variants = append(out[i].Variants, v)
	}
	return out, nil
}

func (r *Repo) variantsForProducts(ctx context.Context, ids []int64) ([]product.Variant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.product_id, v.sku, v.weight_grams, v.flavor_id, COALESCE(f.name,''),
		       v.price::text, v.stock_online, v.stock_gym, v.created_at, v.updated_at
		FROM product_variants v
		LEFT JOIN flavors f ON f.id = v.flavor_id
		WHERE v.product_id = ANY($1)
		ORDER BY v.product_id, v.id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVariant(row pgx.Row) (product.Variant, error) {
	var v product.Variant
	var price string
	err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.WeightGrams, &v.FlavorID, &v.Flavor,
		&price, &v.StockOnline, &v.StockGym, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return product.Variant{}, err
	}
	v.Price = pricing.ParsePrice(price)
	return v, nil
}

func (r *Repo) GetPublic(ctx context.Context, id int64) (product.Product, error) {
	var p product.Product
	var origPrice string
	err := r.db.QueryRow(ctx, `
		SELECT
		  p.id, p.category_id, p.brand_id, p.name, COALESCE(p.description,''), COALESCE(p.image,''),
		  p.original_price::text, p.is_active, p.created_at, p.updated_at,
		  c.name as category_name, b.name as brand_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1 AND p.is_active = true AND c.is_active = true
	`, id).Scan(
		&p.ID, &p.CategoryID, &p.BrandID, &p.Name, &p.Description, &p.Image,
		&origPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.Category, &p.Brand,
	)
	if err != nil {
		return product.Product{}, err
	}
	p.OriginalPrice = pricing.ParsePrice(origPrice)

	variants, err := r.variantsForProducts(ctx, []int64{p.ID})
	if err != nil {
		return product.Product{}, err
	}
	p.Variants = variants
	return p, nil
}

// VariantsByIDs loads live variant rows for checkout pricing.
func (r *Repo) VariantsByIDs(ctx context.Context, ids []int64) ([]product.Variant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.product_id, v.sku, v.weight_grams, v.flavor_id, COALESCE(f.name,''),
		       v.price::text, v.stock_online, v.stock_gym, v.created_at, v.updated_at
		FROM product_variants v
		LEFT JOIN flavors f ON f.id = v.flavor_id
		WHERE v.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) AdminUpdate(ctx context.Context, id int64, name, description, image *string, categoryID, brandID *int64, isActive *bool) (product.Product, error) {
	var p product.Product
	var origPrice string
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET
		  name = COALESCE($2, name),
		  description = COALESCE($3, description),
		  image = COALESCE($4, image),
		  category_id = COALESCE($5, category_id),
		  brand_id = COALESCE($6, brand_id),
		  is_active = COALESCE($7, is_active),
		  updated_at = now()
		WHERE id = $1
		RETURNING id, category_id, brand_id, name, COALESCE(description,''), COALESCE(image,''),
		          original_price::text, is_active, created_at, updated_at
	`, id, name, description, image, categoryID, brandID, isActive).Scan(
		&p.ID, &p.CategoryID, &p.BrandID, &p.Name, &p.Description, &p.Image,
		&origPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return product.Product{}, err
	}
	p.OriginalPrice = pricing.ParsePrice(origPrice)
	return p, nil
}

func (r *Repo) AdminDelete(ctx context.Context, id int64) error {
	// Soft delete keeps order history intact.
	_, err := r.db.Exec(ctx, `UPDATE products SET is_active = false, updated_at = now() WHERE id=$1`, id)
	return err
}

func (r *Repo) AddVariant(ctx context.Context, productID int64, in CreateVariantInput) (product.Variant, error) {
	var v product.Variant
	var price string
	err := r.db.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, sku, weight_grams, flavor_id, price, stock_online, stock_gym)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, product_id, sku, weight_grams, flavor_id, price::text, stock_online, stock_gym, created_at, updated_at
	`, productID, in.SKU, in.WeightGrams, in.FlavorID, in.Price, in.StockOnline, in.StockGym).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.WeightGrams, &v.FlavorID, &price, &v.StockOnline, &v.StockGym, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return product.Variant{}, err
	}
	v.Price = pricing.ParsePrice(price)
	return v, nil
}

func (r *Repo) UpdateVariant(ctx context.Context, id int64, price *decimal.Decimal, stockOnline, stockGym *int) (product.Variant, error) {
	var v product.Variant
	var priceOut string
	err := r.db.QueryRow(ctx, `
		UPDATE product_variants
		SET
		  price = COALESCE($2, price),
		  stock_online = COALESCE($3, stock_online),
		  stock_gym = COALESCE($4, stock_gym),
		  updated_at = now()
		WHERE id = $1
		RETURNING id, product_id, sku, weight_grams, flavor_id, price::text, stock_online, stock_gym, created_at, updated_at
	`, id, price, stockOnline, stockGym).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.WeightGrams, &v.FlavorID, &priceOut, &v.StockOnline, &v.StockGym, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return product.Variant{}, err
	}
	v.Price = pricing.ParsePrice(priceOut)
	return v, nil
}

func (r *Repo) DeleteVariant(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM product_variants WHERE id=$1`, id)
	return err
}

func (r *Repo) SetImage(ctx context.Context, productID int64, path string) error {
	_, err := r.db.Exec(ctx, `UPDATE products SET image=$2, updated_at=now() WHERE id=$1`, productID, path)
	return err
}
