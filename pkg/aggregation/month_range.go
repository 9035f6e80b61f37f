package aggregation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidMonthRange = errors.New("invalid month range")

// MonthRange is an inclusive range of months within one year.
type MonthRange struct {
	Start int
	End   int
}

func NewMonthRange(start, end int) (MonthRange, error) {
	if start < 1 || start > 12 || end < 1 || end > 12 {
		return MonthRange{}, fmt.Errorf("%w: months must be between 1 and 12, got %d-%d", ErrInvalidMonthRange, start, end)
	}
	if start > end {
		return MonthRange{}, fmt.Errorf("%w: start %d is after end %d", ErrInvalidMonthRange, start, end)
	}
	return MonthRange{Start: start, End: end}, nil
}

func FullYear() MonthRange {
	return MonthRange{Start: 1, End: 12}
}

func Quarter(q int) (MonthRange, error) {
	if q < 1 || q > 4 {
		return MonthRange{}, fmt.Errorf("%w: unknown quarter %d", ErrInvalidMonthRange, q)
	}
	return MonthRange{Start: 3*q - 2, End: 3 * q}, nil
}

func YearToDate(currentMonth int) (MonthRange, error) {
	return NewMonthRange(1, currentMonth)
}

func (r MonthRange) Contains(month int) bool {
	return month >= r.Start && month <= r.End
}

func (r MonthRange) Months() int {
	return r.End - r.Start + 1
}

func (r MonthRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ParseRange resolves the quick range names all, q1..q4 and ytd.
// ytd ends at currentMonth.
func ParseRange(name string, currentMonth int) (MonthRange, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "" || name == "all":
		return FullYear(), nil
	case name == "ytd":
		return YearToDate(currentMonth)
	case len(name) == 2 && name[0] == 'q':
		q, err := strconv.Atoi(name[1:])
		if err != nil {
			return MonthRange{}, fmt.Errorf("%w: %q", ErrInvalidMonthRange, name)
		}
		return Quarter(q)
	}
	return MonthRange{}, fmt.Errorf("%w: %q", ErrInvalidMonthRange, name)
}
