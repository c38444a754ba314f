package funding

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period identifies one funding cycle. Immutable once constructed.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewPeriod builds a Period from a year/month pair.
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month %d: must be 1-12", month)
	}
	if year < 2000 || year > 9999 {
		return Period{}, fmt.Errorf("invalid year %d", year)
	}
	return Period{Year: year, Month: month}, nil
}

// ParsePeriod parses a "YYYY-MM" period key.
func ParsePeriod(key string) (Period, error) {
	parts := strings.SplitN(strings.TrimSpace(key), "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYY-MM", key)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYY-MM", key)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYY-MM", key)
	}
	return NewPeriod(year, month)
}

// Key returns the canonical "YYYY-MM" form.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// MonthName returns the English month name.
func (p Period) MonthName() string {
	return time.Month(p.Month).String()
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.MonthName(), p.Year)
}
