// Package month is the YYYY-MM calendar month used by reports and
// reconciliation. Ranges are half-open and in UTC so SQL filters stay
// portable across databases.
package month

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tair/supply-manager/pkg/apperr"
)

const layout = "2006-01"

type Month struct {
	Year  int
	Month time.Month
}

// Parse reads a YYYY-MM string
func Parse(s string) (Month, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Month{}, apperr.Validation(fmt.Sprintf("invalid month %q, expected YYYY-MM", s))
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Of returns the month containing t (in UTC)
func Of(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// Current returns the current UTC month
func Current() Month {
	return Of(time.Now())
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start is the first instant of the month
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant of the next month
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// Add moves n months forward, or backward when n is negative
func (m Month) Add(n int) Month {
	return Of(m.Start().AddDate(0, n, 0))
}

// Contains reports whether t falls within the month
func (m Month) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(m.Start()) && t.Before(m.End())
}

func (m Month) IsZero() bool {
	return m.Year == 0
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
