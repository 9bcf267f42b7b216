package search

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dharmasatrya/searchconfirm/internal/catalog"
	"github.com/dharmasatrya/searchconfirm/internal/clock"
	"github.com/dharmasatrya/searchconfirm/pkg/dateparse"
)

const (
	minPassengers = 1
	maxPassengers = 9

	maxChildrenPerAdult = 2
	maxInfantsPerAdult  = 1
)

type Validator struct {
	clock  clock.Clock
	logger *zap.Logger
}

// NewValidator builds a Validator. A nil clock falls back to the system
// clock in the local zone; a nil logger discards output.
func NewValidator(clk clock.Clock, logger *zap.Logger) *Validator {
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{clock: clk, logger: logger}
}

// Validate runs every rule against req and, only if all pass, commits req
// into rec. A rejected request leaves rec exactly as it was. A nil rec is
// always rejected.
func (v *Validator) Validate(req SearchRequest, rec *SearchRecord) bool {
	return v.ValidateOn(req, rec, v.clock.Today()) == nil
}

// ValidateOn is Validate with an explicit "today", returning the first
// violated rule instead of a bool. It returns ErrNilRecord without running
// any rule when rec is nil.
func (v *Validator) ValidateOn(req SearchRequest, rec *SearchRecord, today dateparse.Date) error {
	if rec == nil {
		return ErrNilRecord
	}
	if err := v.check(req, today); err != nil {
		return err
	}
	rec.commit(req)
	return nil
}

// Check returns the first rule req violates, or nil, without touching any
// record.
func (v *Validator) Check(req SearchRequest) error {
	return v.check(req, v.clock.Today())
}

func (v *Validator) Today() dateparse.Date {
	return v.clock.Today()
}

func (v *Validator) check(req SearchRequest, today dateparse.Date) error {
	err := checkRules(req, today)
	if err != nil {
		v.logger.Debug("search rejected",
			zap.Error(err),
			zap.String("today", today.String()),
			zap.String("departure_date", req.DepartureDate),
			zap.String("return_date", req.ReturnDate),
			zap.String("origin", req.DepartureAirportCode),
			zap.String("destination", req.DestinationAirportCode),
			zap.String("seating_class", req.SeatingClass),
			zap.Bool("emergency_row", req.EmergencyRowSeating),
			zap.Int("adults", req.AdultPassengerCount),
			zap.Int("children", req.ChildPassengerCount),
			zap.Int("infants", req.InfantPassengerCount),
		)
	}
	return err
}

func checkRules(req SearchRequest, today dateparse.Date) error {
	total := req.TotalPassengers()
	if total < minPassengers || total > maxPassengers {
		return ErrPassengerTotal
	}

	if req.ChildPassengerCount > 0 &&
		(req.EmergencyRowSeating || req.SeatingClass == catalog.First) {
		return ErrChildSeating
	}

	if req.InfantPassengerCount > 0 &&
		(req.EmergencyRowSeating || req.SeatingClass == catalog.Business) {
		return ErrInfantSeating
	}

	if req.ChildPassengerCount > req.AdultPassengerCount*maxChildrenPerAdult {
		return ErrChildRatio
	}

	if req.InfantPassengerCount > req.AdultPassengerCount*maxInfantsPerAdult {
		return ErrInfantRatio
	}

	departure, err := dateparse.Parse(req.DepartureDate)
	if err != nil {
		return fmt.Errorf("%w: departure: %w", ErrInvalidDate, err)
	}
	ret, err := dateparse.Parse(req.ReturnDate)
	if err != nil {
		return fmt.Errorf("%w: return: %w", ErrInvalidDate, err)
	}
	if departure.Before(today) {
		return ErrDepartureInPast
	}

	if ret.Before(departure) {
		return ErrReturnBeforeDeparture
	}

	if !catalog.IsSeatingClass(req.SeatingClass) {
		return ErrSeatingClass
	}

	if req.EmergencyRowSeating && req.SeatingClass != catalog.Economy {
		return ErrEmergencyRowClass
	}

	if !catalog.IsAirport(req.DepartureAirportCode) || !catalog.IsAirport(req.DestinationAirportCode) {
		return ErrUnknownAirport
	}

	if req.DepartureAirportCode == req.DestinationAirportCode {
		return ErrSameAirport
	}

	return nil
}
