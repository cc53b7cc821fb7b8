package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusCancelled FlightStatus = "cancelled"
	FlightStatusPostponed FlightStatus = "postponed"
)

type FlightClass string

const (
	FlightClassEconomy  FlightClass = "economy"
	FlightClassBusiness FlightClass = "business"
)

type Prices struct {
	Economy  int64 `json:"economy"`
	Business int64 `json:"business"`
}

// For returns the fare for the given cabin class; unknown classes fall back
// to economy.
func (p Prices) For(class FlightClass) int64 {
	if class == FlightClassBusiness {
		return p.Business
	}
	return p.Economy
}

type Flight struct {
	FlightNumber   int64        `json:"flight_number"`
	Airline        string       `json:"airline"`
	AircraftID     int64        `json:"aircraft_id"`
	RouteID        int64        `json:"route_id"`
	Departure      string       `json:"departure"`
	Arrival        string       `json:"arrival"`
	Date           time.Time    `json:"date"`
	Time           string       `json:"time"`
	Duration       string       `json:"duration"`
	AvailableSeats int          `json:"available_seats"`
	FlightType     string       `json:"flight_type"`
	FlightClass    FlightClass  `json:"flight_class"`
	Prices         Prices       `json:"prices"`
	Status         FlightStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
