package month

import (
	"errors"
	"testing"
	"time"

	"github.com/tair/supply-manager/pkg/apperr"
)

func TestParse(t *testing.T) {
	m, err := Parse("2024-12")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.String() != "2024-12" {
		t.Fatalf("String() = %s", m)
	}
	if !m.End().Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("December should end at new year, got %v", m.End())
	}

	for _, bad := range []string{"", "2024-13", "2024/01", "24-01"} {
		if _, err := Parse(bad); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Parse(%q) expected validation error, got %v", bad, err)
		}
	}
}

func TestContains(t *testing.T) {
	m, _ := Parse("2024-03")

	if !m.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("first instant should be inside")
	}
	if m.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("next month start should be outside")
	}
	if !m.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)) {
		t.Fatal("last second should be inside")
	}
}

func TestAdd(t *testing.T) {
	m, _ := Parse("2024-01")

	cases := map[int]string{0: "2024-01", -1: "2023-12", -11: "2023-02", 12: "2025-01", 1: "2024-02"}
	for n, want := range cases {
		if got := m.Add(n).String(); got != want {
			t.Errorf("Add(%d) = %s, want %s", n, got, want)
		}
	}
}
