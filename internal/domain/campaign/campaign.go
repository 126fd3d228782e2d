package campaign

import "time"

type Campaign struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Image     string     `json:"image,omitempty"`
	ProductID *int64     `json:"product_id,omitempty"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
