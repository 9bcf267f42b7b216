package models

import "github.com/dharmasatrya/searchconfirm/internal/search"

type SearchRequest struct {
	DepartureDate          string `json:"departure_date"`
	DepartureAirportCode   string `json:"departure_airport_code"`
	EmergencyRowSeating    bool   `json:"emergency_row_seating"`
	ReturnDate             string `json:"return_date"`
	DestinationAirportCode string `json:"destination_airport_code"`
	SeatingClass           string `json:"seating_class"`
	Adults                 int    `json:"adults"`
	Children               int    `json:"children"`
	Infants                int    `json:"infants"`
}

func (r SearchRequest) ToSearch() search.SearchRequest {
	return search.SearchRequest{
		DepartureDate:          r.DepartureDate,
		DepartureAirportCode:   r.DepartureAirportCode,
		EmergencyRowSeating:    r.EmergencyRowSeating,
		ReturnDate:             r.ReturnDate,
		DestinationAirportCode: r.DestinationAirportCode,
		SeatingClass:           r.SeatingClass,
		AdultPassengerCount:    r.Adults,
		ChildPassengerCount:    r.Children,
		InfantPassengerCount:   r.Infants,
	}
}
