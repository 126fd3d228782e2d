package addresses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"befit/internal/domain/address"
)

var ErrNotFound = errors.New("address not found")

// Fixed pickup points the storefront offers next to the custom form.
// They are still persisted per order so the record is self-contained.
var pickupAddresses = map[string]address.Address{
	address.KindStore: {
		Kind:       address.KindStore,
		Name:       "Loja PowerNutrition",
		Street:     "Rua do Comércio 12",
		City:       "Lisboa",
		PostalCode: "1100-150",
	},
	address.KindBefit: {
		Kind:       address.KindBefit,
		Name:       "Ginásio BeFit",
		Street:     "Avenida da República 45",
		City:       "Lisboa",
		PostalCode: "1050-187",
	},
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, a address.Address) (address.Address, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO addresses (user_id, kind, name, street, city, postal_code, phone)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''))
		RETURNING id, created_at
	`, a.UserID, a.Kind, a.Name, a.Street, a.City, a.PostalCode, a.Phone).Scan(&a.ID, &a.CreatedAt)
	return a, err
}

// ByID fetches an address, enforcing ownership.
func (r *Repo) ByID(ctx context.Context, userID, id int64) (address.Address, error) {
	var a address.Address
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, kind, name, street, city, postal_code, COALESCE(phone,''), created_at
		FROM addresses WHERE id=$1 AND user_id=$2
	`, id, userID).Scan(&a.ID, &a.UserID, &a.Kind, &a.Name, &a.Street, &a.City, &a.PostalCode, &a.Phone, &a.CreatedAt)
	if err != nil {
		return address.Address{}, ErrNotFound
	}
	return a, nil
}

// PickupAddress resolves one of the fixed pickup points.
func PickupAddress(kind string) (address.Address, bool) {
	a, ok := pickupAddresses[kind]
	return a, ok
}
