package core

import (
	"context"
	"fmt"
	"time"

	"flyrecord/internal/validation"
	"flyrecord/pkg/domain"
)

// Service exposes the typed record operations consumed by the GUI layer:
// create/update/delete per entity type, lookups, related-flight queries,
// and free-text search. Every mutation runs validate → apply → persist
// through the underlying store.
type Service struct {
	store   PersistentStore
	metrics MetricsRecorder
	tracer  Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithMetricsRecorder wires a metrics recorder into the service.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer wires a tracer into the service.
func WithTracer(tr Tracer) Option {
	return func(s *Service) {
		if tr != nil {
			s.tracer = tr
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		metrics: noopMetrics{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

func (s *Service) instrument(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, operation)
	start := time.Now()
	err := fn(ctx)
	span.End(err)
	s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	return err
}

// CreateClient validates and persists a new client record.
func (s *Service) CreateClient(ctx context.Context, client Client) (Client, error) {
	var created Client
	err := s.instrument(ctx, "create_client", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			created, err = tx.CreateClient(client)
			return err
		})
	})
	return created, err
}

// UpdateClient mutates a client using the provided mutator and
// re-validates before committing.
func (s *Service) UpdateClient(ctx context.Context, id int, mutator func(*Client) error) (Client, error) {
	var updated Client
	err := s.instrument(ctx, "update_client", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			updated, err = tx.UpdateClient(id, mutator)
			return err
		})
	})
	return updated, err
}

// DeleteClient removes a client unless flights still reference it.
func (s *Service) DeleteClient(ctx context.Context, id int) error {
	return s.instrument(ctx, "delete_client", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			return tx.DeleteClient(id)
		})
	})
}

// CreateAirline validates and persists a new airline record.
func (s *Service) CreateAirline(ctx context.Context, airline Airline) (Airline, error) {
	var created Airline
	err := s.instrument(ctx, "create_airline", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			created, err = tx.CreateAirline(airline)
			return err
		})
	})
	return created, err
}

// UpdateAirline mutates an airline and re-validates before committing.
func (s *Service) UpdateAirline(ctx context.Context, id int, mutator func(*Airline) error) (Airline, error) {
	var updated Airline
	err := s.instrument(ctx, "update_airline", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			updated, err = tx.UpdateAirline(id, mutator)
			return err
		})
	})
	return updated, err
}

// DeleteAirline removes an airline unless flights still reference it.
func (s *Service) DeleteAirline(ctx context.Context, id int) error {
	return s.instrument(ctx, "delete_airline", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			return tx.DeleteAirline(id)
		})
	})
}

// CreateFlight validates (including relational checks) and persists a new
// flight record.
func (s *Service) CreateFlight(ctx context.Context, flight Flight) (Flight, error) {
	var created Flight
	err := s.instrument(ctx, "create_flight", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			created, err = tx.CreateFlight(flight)
			return err
		})
	})
	return created, err
}

// UpdateFlight mutates a flight and re-validates relationally before
// committing.
func (s *Service) UpdateFlight(ctx context.Context, id int, mutator func(*Flight) error) (Flight, error) {
	var updated Flight
	err := s.instrument(ctx, "update_flight", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			updated, err = tx.UpdateFlight(id, mutator)
			return err
		})
	})
	return updated, err
}

// DeleteFlight removes a flight record.
func (s *Service) DeleteFlight(ctx context.Context, id int) error {
	return s.instrument(ctx, "delete_flight", func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, func(tx Transaction) error {
			return tx.DeleteFlight(id)
		})
	})
}

// GetClient retrieves a client by ID.
func (s *Service) GetClient(id int) (Client, error) {
	c, ok := s.store.GetClient(id)
	if !ok {
		return Client{}, NotFoundError{Entity: EntityClient, ID: id}
	}
	return c, nil
}

// GetAirline retrieves an airline by ID.
func (s *Service) GetAirline(id int) (Airline, error) {
	a, ok := s.store.GetAirline(id)
	if !ok {
		return Airline{}, NotFoundError{Entity: EntityAirline, ID: id}
	}
	return a, nil
}

// GetFlight retrieves a flight by ID.
func (s *Service) GetFlight(id int) (Flight, error) {
	f, ok := s.store.GetFlight(id)
	if !ok {
		return Flight{}, NotFoundError{Entity: EntityFlight, ID: id}
	}
	return f, nil
}

// ListClients returns all clients sorted by ID.
func (s *Service) ListClients() []Client { return s.store.ListClients() }

// ListAirlines returns all airlines sorted by ID.
func (s *Service) ListAirlines() []Airline { return s.store.ListAirlines() }

// ListFlights returns all flights sorted by ID.
func (s *Service) ListFlights() []Flight { return s.store.ListFlights() }

// RelatedFlights returns the flights referencing a client or airline.
// Deletion of either is refused while this result is non-empty.
func (s *Service) RelatedFlights(ctx context.Context, id int, entity EntityType) ([]Flight, error) {
	var related []Flight
	err := s.store.View(ctx, func(view TransactionView) error {
		switch entity {
		case EntityClient:
			related = view.FlightsForClient(id)
		case EntityAirline:
			related = view.FlightsForAirline(id)
		default:
			return fmt.Errorf("no related records for entity type %s", entity)
		}
		return nil
	})
	return related, err
}

// flightDateLayouts are the textual forms accepted for flight dates, in
// resolution order.
var flightDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseFlightDate resolves a textual flight date into a structured
// date-time. Unparseable input is rejected with a ValidationError keyed
// on the date field so callers surface it like any other field failure.
func ParseFlightDate(value string) (time.Time, error) {
	for _, layout := range flightDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, domain.ValidationError{
		Entity: EntityFlight,
		Fields: validation.Errors{"date": fmt.Sprintf("invalid date format %q, use ISO format (YYYY-MM-DDTHH:MM:SS)", value)},
	}
}
