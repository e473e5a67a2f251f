// Package domain defines the persistent record types, validation rules,
// error taxonomy, and persistence interfaces of the flyrecord core.
package domain

import "time"

// EntityType identifies the type of record stored in the core.
type EntityType string

// Supported record type discriminators used in persistence buckets and
// error reporting.
const (
	// EntityClient identifies a client record.
	EntityClient EntityType = "client"
	// EntityAirline identifies an airline record.
	EntityAirline EntityType = "airline"
	// EntityFlight identifies a flight record.
	EntityFlight EntityType = "flight"
)

// Base contains the common header of all record types. Identifiers are
// unique within a single entity type and assigned monotonically by the
// store; a client, an airline, and a flight may each be #1.
type Base struct {
	ID   int        `json:"id"`
	Type EntityType `json:"type"`
}

// Client represents a travel-agency customer.
type Client struct {
	Base
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	AddressLine3 string `json:"address_line3"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	PhoneNumber  string `json:"phone_number"`
}

// Airline represents an airline company.
type Airline struct {
	Base
	CompanyName string `json:"company_name"`
}

// Flight links a client to an airline for a dated journey. ClientID and
// AirlineID must resolve to existing records whenever a flight is created
// or updated.
type Flight struct {
	Base
	ClientID  int       `json:"client_id"`
	AirlineID int       `json:"airline_id"`
	Date      time.Time `json:"date"`
	StartCity string    `json:"start_city"`
	EndCity   string    `json:"end_city"`
}
