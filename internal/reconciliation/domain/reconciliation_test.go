package domain

import "testing"

func TestVariance(t *testing.T) {
	tests := []struct {
		recorded, actual, want int
	}{
		{10, 8, -2},
		{5, 5, 0},
		{0, 3, 3},
	}
	for _, tt := range tests {
		if got := Variance(tt.recorded, tt.actual); got != tt.want {
			t.Errorf("Variance(%d, %d) = %d, want %d", tt.recorded, tt.actual, got, tt.want)
		}
	}
}

func TestWorksheetRowReconciled(t *testing.T) {
	count := 4
	if (WorksheetRow{}).Reconciled() {
		t.Fatal("row without count should not be reconciled")
	}
	if !(WorksheetRow{ActualQty: &count}).Reconciled() {
		t.Fatal("row with count should be reconciled")
	}
}
