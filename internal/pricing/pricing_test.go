package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDisplayPriceSkipsInvalid(t *testing.T) {
	prices := []Price{
		ParsePrice("10.00"),
		ParsePrice("abc"),
		ParsePrice("5.50"),
	}
	got := DisplayPrice(prices)
	if !got.Equal(decimal.RequireFromString("5.50")) {
		t.Fatalf("DisplayPrice = %s, want 5.50", got)
	}
}

func TestDisplayPriceEmptyAndAllInvalid(t *testing.T) {
	if got := DisplayPrice(nil); !got.IsZero() {
		t.Fatalf("DisplayPrice(nil) = %s, want 0", got)
	}
	prices := []Price{ParsePrice("abc"), ParsePrice("")}
	if got := DisplayPrice(prices); !got.IsZero() {
		t.Fatalf("DisplayPrice(all invalid) = %s, want 0", got)
	}
}

func TestPriceUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{`"12.50"`, true, "12.50"},
		{`12.5`, true, "12.5"},
		{`"abc"`, false, ""},
		{`null`, false, ""},
	}
	for _, tt := range tests {
		var p Price
		if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if p.Valid() != tt.valid {
			t.Errorf("Unmarshal(%s).Valid = %v, want %v", tt.in, p.Valid(), tt.valid)
		}
		if tt.valid && !p.Decimal().Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Unmarshal(%s) = %s, want %s", tt.in, p.Decimal(), tt.want)
		}
	}
}

func TestPriceMarshal(t *testing.T) {
	b, err := json.Marshal(ParsePrice("7.90"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"7.90"` {
		t.Errorf("Marshal = %s, want \"7.90\"", b)
	}

	b, err = json.Marshal(Price{})
	if err != nil {
		t.Fatalf("Marshal invalid: %v", err)
	}
	if string(b) != `"0"` {
		t.Errorf("Marshal invalid = %s, want \"0\"", b)
	}
}

func TestRound(t *testing.T) {
	got := Round(decimal.RequireFromString("10.005"))
	if got.String() != "10.01" {
		t.Errorf("Round = %s, want 10.01", got)
	}
}
