package dateparse

import (
	"errors"
	"fmt"
	"time"
)

const Layout = "DD/MM/YYYY"

const minYear = 1900

var ErrInvalidDate = errors.New("date must be a valid DD/MM/YYYY calendar date")

// Date is a calendar day with no time-of-day or zone. The zero value is not
// a valid date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Parse reads text in the strict DD/MM/YYYY form. Out-of-range days are
// rejected, never rolled into the following month.
func Parse(text string) (Date, error) {
	if len(text) != len(Layout) || text[2] != '/' || text[5] != '/' {
		return Date{}, invalid(text)
	}

	day, ok := digits(text[0:2])
	if !ok {
		return Date{}, invalid(text)
	}
	month, ok := digits(text[3:5])
	if !ok {
		return Date{}, invalid(text)
	}
	year, ok := digits(text[6:10])
	if !ok {
		return Date{}, invalid(text)
	}

	if day < 1 || day > 31 || month < 1 || month > 12 || year < minYear {
		return Date{}, invalid(text)
	}
	if day > DaysInMonth(year, month) {
		return Date{}, invalid(text)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

func MustParse(text string) Date {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}

func DaysInMonth(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// FromTime returns the calendar day t falls on in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

func (d Date) Equal(other Date) bool { return d == other }

// AddDays moves d by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(time.Date(d.Year, time.Month(d.Month), d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func invalid(text string) error {
	return fmt.Errorf("%w: %q", ErrInvalidDate, text)
}
