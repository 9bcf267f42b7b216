package models

import "github.com/dharmasatrya/searchconfirm/internal/search"

type SearchMetadata struct {
	Today            string `json:"today"`
	ValidationTimeUs int64  `json:"validation_time_us"`
	CacheHit         bool   `json:"cache_hit"`
}

type ConfirmedSearch struct {
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

type SearchResponse struct {
	Error    string           `json:"error,omitempty"`
	SearchID string           `json:"search_id,omitempty"`
	Accepted bool             `json:"accepted"`
	Reason   string           `json:"reason,omitempty"`
	Search   *ConfirmedSearch `json:"search,omitempty"`
	Metadata SearchMetadata   `json:"metadata"`
}

type Airport struct {
	Code string `json:"code"`
	City string `json:"city"`
}

type CatalogResponse struct {
	Airports       []Airport `json:"airports"`
	SeatingClasses []string  `json:"seating_classes"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func NewConfirmedSearch(rec *search.SearchRecord) *ConfirmedSearch {
	return &ConfirmedSearch{
		DepartureDate:          rec.DepartureDate(),
		DepartureAirportCode:   rec.DepartureAirportCode(),
		EmergencyRowSeating:    rec.EmergencyRowSeating(),
		ReturnDate:             rec.ReturnDate(),
		DestinationAirportCode: rec.DestinationAirportCode(),
		SeatingClass:           rec.SeatingClass(),
		Adults:                 rec.AdultPassengerCount(),
		Children:               rec.ChildPassengerCount(),
		Infants:                rec.InfantPassengerCount(),
	}
}
