package search

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrPassengerTotal        ValidationError = "total passengers must be between 1 and 9"
	ErrChildSeating          ValidationError = "children cannot sit in emergency rows or first class"
	ErrInfantSeating         ValidationError = "infants cannot sit in emergency rows or business class"
	ErrChildRatio            ValidationError = "each adult can accompany at most two children"
	ErrInfantRatio           ValidationError = "each adult can accompany at most one infant"
	ErrInvalidDate           ValidationError = "dates must be valid DD/MM/YYYY calendar dates"
	ErrDepartureInPast       ValidationError = "departure date cannot be in the past"
	ErrReturnBeforeDeparture ValidationError = "return date cannot be before departure date"
	ErrSeatingClass          ValidationError = "seating class must be economy, premium economy, business or first"
	ErrEmergencyRowClass     ValidationError = "emergency row seating is only available in economy"
	ErrUnknownAirport        ValidationError = "airport is not served"
	ErrSameAirport           ValidationError = "departure and destination airports must differ"
	ErrNilRecord             ValidationError = "search record is required"
)
