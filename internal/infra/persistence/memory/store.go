// Package memory provides the in-memory implementation of the record
// store. Durable backends wrap it and persist its snapshot after every
// successful transaction.
package memory

import (
	"context"
	"sort"
	"sync"

	"flyrecord/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the
// domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Client aliases domain.Client for in-memory persistence operations.
	Client = domain.Client
	// Airline aliases domain.Airline.
	Airline = domain.Airline
	// Flight aliases domain.Flight.
	Flight = domain.Flight
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

type memoryState struct {
	clients  map[int]Client
	airlines map[int]Airline
	flights  map[int]Flight
}

func newMemoryState() memoryState {
	return memoryState{
		clients:  make(map[int]Client),
		airlines: make(map[int]Airline),
		flights:  make(map[int]Flight),
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for id, c := range s.clients {
		cloned.clients[id] = c
	}
	for id, a := range s.airlines {
		cloned.airlines[id] = a
	}
	for id, f := range s.flights {
		cloned.flights[id] = f
	}
	return cloned
}

// Snapshot captures a point-in-time copy of the store state in the shape
// persisted by durable backends: one collection per entity type, each
// sorted by identifier.
type Snapshot struct {
	Clients  []Client  `json:"clients"`
	Airlines []Airline `json:"airlines"`
	Flights  []Flight  `json:"flights"`
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Clients:  make([]Client, 0, len(state.clients)),
		Airlines: make([]Airline, 0, len(state.airlines)),
		Flights:  make([]Flight, 0, len(state.flights)),
	}
	for _, c := range state.clients {
		s.Clients = append(s.Clients, c)
	}
	for _, a := range state.airlines {
		s.Airlines = append(s.Airlines, a)
	}
	for _, f := range state.flights {
		s.Flights = append(s.Flights, f)
	}
	sort.Slice(s.Clients, func(i, j int) bool { return s.Clients[i].ID < s.Clients[j].ID })
	sort.Slice(s.Airlines, func(i, j int) bool { return s.Airlines[i].ID < s.Airlines[j].ID })
	sort.Slice(s.Flights, func(i, j int) bool { return s.Flights[i].ID < s.Flights[j].ID })
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for _, c := range s.Clients {
		c.Type = domain.EntityClient
		state.clients[c.ID] = c
	}
	for _, a := range s.Airlines {
		a.Type = domain.EntityAirline
		state.airlines[a.ID] = a
	}
	for _, f := range s.Flights {
		f.Type = domain.EntityFlight
		state.flights[f.ID] = f
	}
	return state
}

// Store provides an in-memory transactional store for the record core.
// Mutating operations are serialized; reads run against cloned snapshots.
type Store struct {
	mu    sync.RWMutex
	state memoryState
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{state: newMemoryState()}
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snapshot)
}

// transaction applies mutations against a cloned state that is committed
// back only when the transaction function returns nil, so a rejected
// validation leaves the store untouched.
type transaction struct {
	state memoryState
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// FindClient retrieves a client by ID from the snapshot.
func (v transactionView) FindClient(id int) (Client, bool) {
	c, ok := v.state.clients[id]
	return c, ok
}

// FindAirline retrieves an airline by ID from the snapshot.
func (v transactionView) FindAirline(id int) (Airline, bool) {
	a, ok := v.state.airlines[id]
	return a, ok
}

// FindFlight retrieves a flight by ID from the snapshot.
func (v transactionView) FindFlight(id int) (Flight, bool) {
	f, ok := v.state.flights[id]
	return f, ok
}

// ListClients returns all clients sorted by ID.
func (v transactionView) ListClients() []Client {
	out := make([]Client, 0, len(v.state.clients))
	for _, c := range v.state.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListAirlines returns all airlines sorted by ID.
func (v transactionView) ListAirlines() []Airline {
	out := make([]Airline, 0, len(v.state.airlines))
	for _, a := range v.state.airlines {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListFlights returns all flights sorted by ID.
func (v transactionView) ListFlights() []Flight {
	out := make([]Flight, 0, len(v.state.flights))
	for _, f := range v.state.flights {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FlightsForClient returns flights referencing the client, sorted by ID.
func (v transactionView) FlightsForClient(id int) []Flight {
	return flightsWhere(v.state, func(f Flight) bool { return f.ClientID == id })
}

// FlightsForAirline returns flights referencing the airline, sorted by ID.
func (v transactionView) FlightsForAirline(id int) []Flight {
	return flightsWhere(v.state, func(f Flight) bool { return f.AirlineID == id })
}

func flightsWhere(state *memoryState, match func(Flight) bool) []Flight {
	var out []Flight
	for _, f := range state.flights {
		if match(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RunInTransaction executes fn within a transactional copy of the store
// state and commits the copy when fn succeeds.
func (s *Store) RunInTransaction(_ context.Context, fn func(Transaction) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(newTransactionView(&snapshot))
}

// GetClient retrieves a client by ID.
func (s *Store) GetClient(id int) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.clients[id]
	return c, ok
}

// GetAirline retrieves an airline by ID.
func (s *Store) GetAirline(id int) (Airline, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.state.airlines[id]
	return a, ok
}

// GetFlight retrieves a flight by ID.
func (s *Store) GetFlight(id int) (Flight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.state.flights[id]
	return f, ok
}

// ListClients returns all clients sorted by ID.
func (s *Store) ListClients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListClients()
}

// ListAirlines returns all airlines sorted by ID.
func (s *Store) ListAirlines() []Airline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListAirlines()
}

// ListFlights returns all flights sorted by ID.
func (s *Store) ListFlights() []Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListFlights()
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// FindClient exposes client lookup within the transaction scope.
func (tx *transaction) FindClient(id int) (Client, bool) {
	c, ok := tx.state.clients[id]
	return c, ok
}

// FindAirline exposes airline lookup within the transaction scope.
func (tx *transaction) FindAirline(id int) (Airline, bool) {
	a, ok := tx.state.airlines[id]
	return a, ok
}

// FindFlight exposes flight lookup within the transaction scope.
func (tx *transaction) FindFlight(id int) (Flight, bool) {
	f, ok := tx.state.flights[id]
	return f, ok
}

// nextClientID assigns max(existing)+1, starting at 1 when empty.
func (tx *transaction) nextClientID() int {
	max := 0
	for id := range tx.state.clients {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (tx *transaction) nextAirlineID() int {
	max := 0
	for id := range tx.state.airlines {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (tx *transaction) nextFlightID() int {
	max := 0
	for id := range tx.state.flights {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// CreateClient assigns the next client ID, validates, and stores the
// record within the transaction.
func (tx *transaction) CreateClient(c Client) (Client, error) {
	c.ID = tx.nextClientID()
	c.Type = domain.EntityClient
	if errs := c.Validate(); len(errs) > 0 {
		return Client{}, domain.ValidationError{Entity: domain.EntityClient, Fields: errs}
	}
	tx.state.clients[c.ID] = c
	return c, nil
}

// UpdateClient mutates a scratch copy, re-validates, and commits in place.
func (tx *transaction) UpdateClient(id int, mutator func(*Client) error) (Client, error) {
	current, ok := tx.state.clients[id]
	if !ok {
		return Client{}, domain.NotFoundError{Entity: domain.EntityClient, ID: id}
	}
	if err := mutator(&current); err != nil {
		return Client{}, err
	}
	current.ID = id
	current.Type = domain.EntityClient
	if errs := current.Validate(); len(errs) > 0 {
		return Client{}, domain.ValidationError{Entity: domain.EntityClient, Fields: errs}
	}
	tx.state.clients[id] = current
	return current, nil
}

// DeleteClient removes a client unless flights still reference it.
func (tx *transaction) DeleteClient(id int) error {
	if _, ok := tx.state.clients[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityClient, ID: id}
	}
	if referencing := flightsWhere(&tx.state, func(f Flight) bool { return f.ClientID == id }); len(referencing) > 0 {
		return domain.IntegrityError{Entity: domain.EntityClient, ID: id, FlightCount: len(referencing)}
	}
	delete(tx.state.clients, id)
	return nil
}

// CreateAirline assigns the next airline ID, validates, and stores the
// record within the transaction.
func (tx *transaction) CreateAirline(a Airline) (Airline, error) {
	a.ID = tx.nextAirlineID()
	a.Type = domain.EntityAirline
	if errs := a.Validate(); len(errs) > 0 {
		return Airline{}, domain.ValidationError{Entity: domain.EntityAirline, Fields: errs}
	}
	tx.state.airlines[a.ID] = a
	return a, nil
}

// UpdateAirline mutates a scratch copy, re-validates, and commits in place.
func (tx *transaction) UpdateAirline(id int, mutator func(*Airline) error) (Airline, error) {
	current, ok := tx.state.airlines[id]
	if !ok {
		return Airline{}, domain.NotFoundError{Entity: domain.EntityAirline, ID: id}
	}
	if err := mutator(&current); err != nil {
		return Airline{}, err
	}
	current.ID = id
	current.Type = domain.EntityAirline
	if errs := current.Validate(); len(errs) > 0 {
		return Airline{}, domain.ValidationError{Entity: domain.EntityAirline, Fields: errs}
	}
	tx.state.airlines[id] = current
	return current, nil
}

// DeleteAirline removes an airline unless flights still reference it.
func (tx *transaction) DeleteAirline(id int) error {
	if _, ok := tx.state.airlines[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityAirline, ID: id}
	}
	if referencing := flightsWhere(&tx.state, func(f Flight) bool { return f.AirlineID == id }); len(referencing) > 0 {
		return domain.IntegrityError{Entity: domain.EntityAirline, ID: id, FlightCount: len(referencing)}
	}
	delete(tx.state.airlines, id)
	return nil
}

// CreateFlight assigns the next flight ID and validates, including the
// relational checks against the transaction state.
func (tx *transaction) CreateFlight(f Flight) (Flight, error) {
	f.ID = tx.nextFlightID()
	f.Type = domain.EntityFlight
	if errs := f.Validate(tx.Snapshot()); len(errs) > 0 {
		return Flight{}, domain.ValidationError{Entity: domain.EntityFlight, Fields: errs}
	}
	tx.state.flights[f.ID] = f
	return f, nil
}

// UpdateFlight mutates a scratch copy and re-validates relationally
// before committing.
func (tx *transaction) UpdateFlight(id int, mutator func(*Flight) error) (Flight, error) {
	current, ok := tx.state.flights[id]
	if !ok {
		return Flight{}, domain.NotFoundError{Entity: domain.EntityFlight, ID: id}
	}
	if err := mutator(&current); err != nil {
		return Flight{}, err
	}
	current.ID = id
	current.Type = domain.EntityFlight
	if errs := current.Validate(tx.Snapshot()); len(errs) > 0 {
		return Flight{}, domain.ValidationError{Entity: domain.EntityFlight, Fields: errs}
	}
	tx.state.flights[id] = current
	return current, nil
}

// DeleteFlight removes a flight. Flights are never referenced by other
// records, so no integrity check applies.
func (tx *transaction) DeleteFlight(id int) error {
	if _, ok := tx.state.flights[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityFlight, ID: id}
	}
	delete(tx.state.flights, id)
	return nil
}
