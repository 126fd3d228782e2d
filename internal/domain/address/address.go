package address

import "time"

// Kind of a shipping address: the two fixed pickup points, or a
// customer-entered one.
const (
	KindStore  = "store"
	KindBefit  = "befit"
	KindCustom = "custom"
)

type Address struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`
	Street     string    `json:"morada"`
	City       string    `json:"cidade"`
	PostalCode string    `json:"codigo_postal"`
	Phone      string    `json:"telefone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
