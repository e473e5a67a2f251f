package domain

import "context"

// Transaction exposes the record operations a persistence implementation
// must support within an atomic scope. Create operations assign the next
// identifier for the entity type and validate before applying; update
// operations re-validate the mutated copy before committing; delete
// operations on clients and airlines enforce referential integrity
// against flights.
type Transaction interface {
	Snapshot() TransactionView
	CreateClient(Client) (Client, error)
	UpdateClient(id int, mutator func(*Client) error) (Client, error)
	DeleteClient(id int) error
	CreateAirline(Airline) (Airline, error)
	UpdateAirline(id int, mutator func(*Airline) error) (Airline, error)
	DeleteAirline(id int) error
	CreateFlight(Flight) (Flight, error)
	UpdateFlight(id int, mutator func(*Flight) error) (Flight, error)
	DeleteFlight(id int) error
	FindClient(id int) (Client, bool)
	FindAirline(id int) (Airline, bool)
	FindFlight(id int) (Flight, bool)
}

// TransactionView provides read-only access to a consistent snapshot of
// the record collections. List results are sorted by identifier.
type TransactionView interface {
	RecordView
	FindFlight(id int) (Flight, bool)
	ListClients() []Client
	ListAirlines() []Airline
	ListFlights() []Flight
	FlightsForClient(id int) []Flight
	FlightsForAirline(id int) []Flight
}

// PersistentStore is the abstraction over durable backends. Durable
// implementations hydrate the full record set on open and rewrite their
// snapshot after every successful transaction.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) error
	View(ctx context.Context, fn func(TransactionView) error) error
	GetClient(id int) (Client, bool)
	GetAirline(id int) (Airline, bool)
	GetFlight(id int) (Flight, bool)
	ListClients() []Client
	ListAirlines() []Airline
	ListFlights() []Flight
}
