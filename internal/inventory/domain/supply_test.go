package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tair/supply-manager/pkg/apperr"
)

func TestDeriveSKU(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     string
	}{
		{"Pencil", 12, "PEN-0012"},
		{"notebook", 0, "NOT-0000"},
		{"Ox", 7, "OX-0007"},
		{"  glue stick", 150, "GLU-0150"},
		{"Crayons", 12345, "CRA-12345"},
	}
	for _, tt := range tests {
		if got := DeriveSKU(tt.name, tt.quantity); got != tt.want {
			t.Errorf("DeriveSKU(%q, %d) = %q, want %q", tt.name, tt.quantity, got, tt.want)
		}
	}
}

func TestStatusAndValue(t *testing.T) {
	item := SupplyItem{Quantity: 5, MinQuantity: 5, Price: decimal.RequireFromString("1.25")}
	if item.Status() != StatusLowStock {
		t.Fatalf("quantity equal to minimum should be low stock")
	}
	if !item.Value().Equal(decimal.RequireFromString("6.25")) {
		t.Fatalf("unexpected value %s", item.Value())
	}

	item.Quantity = 6
	if item.Status() != StatusInStock {
		t.Fatalf("quantity above minimum should be in stock")
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{ItemID: 1, Type: TransactionOut, Quantity: 3}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid.Delta() != -3 {
		t.Fatalf("OUT delta should be negative, got %d", valid.Delta())
	}

	for _, tx := range []Transaction{
		{ItemID: 1, Type: "MOVE", Quantity: 1},
		{ItemID: 1, Type: TransactionIn, Quantity: 0},
		{Type: TransactionIn, Quantity: 1},
	} {
		if err := tx.Validate(); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("expected validation error for %+v, got %v", tx, err)
		}
	}
}
