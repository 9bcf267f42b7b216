package search

// SearchRequest holds the raw inputs of one validation call.
type SearchRequest struct {
	DepartureDate          string
	DepartureAirportCode   string
	EmergencyRowSeating    bool
	ReturnDate             string
	DestinationAirportCode string
	SeatingClass           string
	AdultPassengerCount    int
	ChildPassengerCount    int
	InfantPassengerCount   int
}

func (r SearchRequest) TotalPassengers() int {
	return r.AdultPassengerCount + r.ChildPassengerCount + r.InfantPassengerCount
}

// SearchRecord is a confirmed search. It is either empty or holds a request
// that passed every rule; fields are only written by Validator.Validate.
type SearchRecord struct {
	fields    SearchRequest
	populated bool
}

func (r *SearchRecord) Populated() bool {
	return r.populated
}

func (r *SearchRecord) DepartureDate() string {
	return r.fields.DepartureDate
}

func (r *SearchRecord) DepartureAirportCode() string {
	return r.fields.DepartureAirportCode
}

func (r *SearchRecord) EmergencyRowSeating() bool {
	return r.fields.EmergencyRowSeating
}

func (r *SearchRecord) ReturnDate() string {
	return r.fields.ReturnDate
}

func (r *SearchRecord) DestinationAirportCode() string {
	return r.fields.DestinationAirportCode
}

func (r *SearchRecord) SeatingClass() string {
	return r.fields.SeatingClass
}

func (r *SearchRecord) AdultPassengerCount() int {
	return r.fields.AdultPassengerCount
}

func (r *SearchRecord) ChildPassengerCount() int {
	return r.fields.ChildPassengerCount
}

func (r *SearchRecord) InfantPassengerCount() int {
	return r.fields.InfantPassengerCount
}

// Request returns a copy of the committed fields.
func (r *SearchRecord) Request() SearchRequest {
	return r.fields
}

func (r *SearchRecord) commit(req SearchRequest) {
	*r = SearchRecord{fields: req, populated: true}
}
