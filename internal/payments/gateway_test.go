package payments

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"befit/internal/domain/order"
)

func testGateway() *Gateway {
	return NewGateway(GatewayConfig{
		MultibancoEntity: "11249",
		CardRedirectBase: "https://pay.test/cc",
	})
}

func TestNewReferenceMultibanco(t *testing.T) {
	g := testGateway()
	ref, err := g.NewReference(order.MethodMultibanco, "befit-1", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	if ref.Entity != "11249" {
		t.Errorf("Entity = %q, want 11249", ref.Entity)
	}
	if len(ref.Reference) != 9 {
		t.Errorf("Reference = %q, want 9 digits", ref.Reference)
	}
	for _, r := range ref.Reference {
		if r < '0' || r > '9' {
			t.Fatalf("Reference contains non-digit: %q", ref.Reference)
		}
	}
	if ref.RedirectURL != "" {
		t.Errorf("unexpected redirect for multibanco: %q", ref.RedirectURL)
	}
}

func TestNewReferenceCard(t *testing.T) {
	g := testGateway()
	ref, err := g.NewReference(order.MethodCard, "befit-2", decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	if !strings.HasPrefix(ref.RedirectURL, "https://pay.test/cc/") {
		t.Errorf("RedirectURL = %q", ref.RedirectURL)
	}
	if ref.Entity != "" || ref.Reference != "" {
		t.Errorf("card reference should not carry entity/reference: %+v", ref)
	}
}

func TestNewReferenceMBWay(t *testing.T) {
	g := testGateway()
	ref, err := g.NewReference(order.MethodMBWay, "befit-3", decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	if ref.Entity != "" || ref.Reference != "" || ref.RedirectURL != "" {
		t.Errorf("mbway carries no extra fields: %+v", ref)
	}
	if ref.Status != "pending" {
		t.Errorf("Status = %q, want pending", ref.Status)
	}
}

func TestNewReferenceUnknownMethod(t *testing.T) {
	g := testGateway()
	if _, err := g.NewReference("paypal", "befit-4", decimal.NewFromInt(1)); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestNewOrderKeyUnique(t *testing.T) {
	a, b := NewOrderKey(), NewOrderKey()
	if a == b {
		t.Fatalf("keys collided: %s", a)
	}
	if !strings.HasPrefix(a, "befit-") {
		t.Errorf("key = %q", a)
	}
}
