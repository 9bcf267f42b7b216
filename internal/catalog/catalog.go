package catalog

import "sort"

const (
	Economy        = "economy"
	PremiumEconomy = "premium economy"
	Business       = "business"
	First          = "first"
)

var airportCities = map[string]string{
	"syd": "Sydney",      // Kingsford Smith
	"mel": "Melbourne",   // Tullamarine
	"lax": "Los Angeles", // Los Angeles International
	"cdg": "Paris",       // Charles de Gaulle
	"del": "Delhi",       // Indira Gandhi International
	"pvg": "Shanghai",    // Pudong
	"doh": "Doha",        // Hamad International
}

var seatingClasses = []string{Economy, PremiumEconomy, Business, First}

var (
	airportSet map[string]struct{}
	classSet   map[string]struct{}
)

func init() {
	airportSet = make(map[string]struct{}, len(airportCities))
	for code := range airportCities {
		airportSet[code] = struct{}{}
	}

	classSet = make(map[string]struct{}, len(seatingClasses))
	for _, class := range seatingClasses {
		classSet[class] = struct{}{}
	}
}

// IsAirport reports whether code is a served airport. Codes are matched
// exactly; "SYD" is not "syd".
func IsAirport(code string) bool {
	_, ok := airportSet[code]
	return ok
}

func IsSeatingClass(class string) bool {
	_, ok := classSet[class]
	return ok
}

func AirportCity(code string) (string, bool) {
	city, ok := airportCities[code]
	return city, ok
}

// Airports returns the served airport codes in ascending order.
func Airports() []string {
	codes := make([]string, 0, len(airportCities))
	for code := range airportCities {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SeatingClasses returns the classes from cheapest to most expensive.
func SeatingClasses() []string {
	out := make([]string, len(seatingClasses))
	copy(out, seatingClasses)
	return out
}
