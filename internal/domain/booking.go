package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type BookingFlightStatus string

const (
	BookingFlightScheduled BookingFlightStatus = "scheduled"
	BookingFlightDelayed   BookingFlightStatus = "delayed"
	BookingFlightCancelled BookingFlightStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// FlightSnapshot is the flight data copied into a booking at creation time.
// Later flight edits never touch it, so historical bookings keep the fare and
// schedule they were sold under.
type FlightSnapshot struct {
	Airline     string      `json:"airline"`
	Departure   string      `json:"departure"`
	Arrival     string      `json:"arrival"`
	AircraftID  int64       `json:"aircraft_id"`
	RouteID     int64       `json:"route_id"`
	Date        time.Time   `json:"date"`
	Time        string      `json:"time"`
	Duration    string      `json:"duration"`
	Price       int64       `json:"price"`
	FlightClass FlightClass `json:"flight_class"`
}

type Booking struct {
	ID            string
	BookingNumber int64
	UserID        int64
	FlightNumber  int64
	SeatNumber    string
	FlightDetails FlightSnapshot
	Status        BookingStatus
	FlightStatus  BookingFlightStatus
	PaymentStatus PaymentStatus
	PaymentAmount int64
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
