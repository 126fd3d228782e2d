// Package pricing holds the money primitives shared by the catalog and
// checkout: a tolerant price type for the loosely-typed JSON the old
// backend emitted (numbers and strings side by side), and the derived
// display aggregates.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Price wraps a decimal that may have failed to parse. Malformed values
// are carried as invalid rather than erroring out, so one bad variant
// never breaks a whole product listing.
type Price struct {
	dec   decimal.Decimal
	valid bool
}

func NewPrice(d decimal.Decimal) Price {
	return Price{dec: d, valid: true}
}

func ParsePrice(s string) Price {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}
	}
	return Price{dec: d, valid: true}
}

func (p Price) Valid() bool { return p.valid }

func (p Price) Decimal() decimal.Decimal { return p.dec }

// UnmarshalJSON accepts both `12.5` and `"12.5"`. Anything unparsable
// yields an invalid price, not an error.
func (p *Price) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*p = Price{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*p = ParsePrice(s)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte(`"0"`), nil
	}
	return p.dec.MarshalJSON()
}

// DisplayPrice is the minimum valid price, or zero when nothing valid
// exists. Recomputed on every read, never stored.
func DisplayPrice(prices []Price) decimal.Decimal {
	var min decimal.Decimal
	found := false
	for _, p := range prices {
		if !p.valid {
			continue
		}
		if !found || p.dec.LessThan(min) {
			min = p.dec
			found = true
		}
	}
	if !found {
		return decimal.Zero
	}
	return min
}

// Round normalizes a money amount to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
