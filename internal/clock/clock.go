package clock

import (
	"strings"
	"time"

	"github.com/dharmasatrya/searchconfirm/pkg/dateparse"
)

// Clock supplies the calendar date that counts as "today".
type Clock interface {
	Today() dateparse.Date
}

type System struct {
	loc *time.Location
	now func() time.Time
}

func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc, now: time.Now}
}

func (s *System) Today() dateparse.Date {
	return dateparse.FromTime(s.now().In(s.loc))
}

type Fixed dateparse.Date

func (f Fixed) Today() dateparse.Date {
	return dateparse.Date(f)
}

// FromConfig returns a Fixed clock when fixedToday is set, otherwise a
// System clock in the named location.
func FromConfig(fixedToday, location string) (Clock, error) {
	if fixedToday != "" {
		d, err := dateparse.Parse(fixedToday)
		if err != nil {
			return nil, err
		}
		return Fixed(d), nil
	}

	loc, err := LocationByName(location)
	if err != nil {
		return nil, err
	}
	return NewSystem(loc), nil
}

func LocationByName(name string) (*time.Location, error) {
	switch strings.ToUpper(name) {
	case "", "LOCAL":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	default:
		return time.LoadLocation(name)
	}
}
