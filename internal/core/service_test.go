package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"flyrecord/internal/core"
	"flyrecord/internal/infra/persistence/memory"
	"flyrecord/pkg/domain"
)

func clientFixture(name string) core.Client {
	return core.Client{
		Name:         name,
		AddressLine1: "1 Main Street",
		City:         "Lisbon",
		State:        "Lisboa",
		ZipCode:      "1000-001",
		Country:      "Portugal",
		PhoneNumber:  "+351 210 000 000",
	}
}

func seedService(t *testing.T) (*core.Service, core.Client, core.Airline, core.Flight) {
	t.Helper()
	svc := core.NewService(memory.NewStore())
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, clientFixture("Alice Smith"))
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	airline, err := svc.CreateAirline(ctx, core.Airline{CompanyName: "Blue Skies"})
	if err != nil {
		t.Fatalf("create airline: %v", err)
	}
	flight, err := svc.CreateFlight(ctx, core.Flight{
		ClientID:  client.ID,
		AirlineID: airline.ID,
		Date:      time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		StartCity: "Lisbon",
		EndCity:   "Porto",
	})
	if err != nil {
		t.Fatalf("create flight: %v", err)
	}
	return svc, client, airline, flight
}

func TestServiceCRUDLifecycle(t *testing.T) {
	svc, client, airline, flight := seedService(t)
	ctx := context.Background()

	got, err := svc.GetClient(client.ID)
	if err != nil || got.Name != "Alice Smith" {
		t.Fatalf("get client: %+v err=%v", got, err)
	}
	if _, err := svc.GetClient(999); err == nil {
		t.Fatalf("expected not found")
	} else {
		var nferr core.NotFoundError
		if !errors.As(err, &nferr) || nferr.ID != 999 {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	}

	updated, err := svc.UpdateClient(ctx, client.ID, func(c *core.Client) error {
		c.Name = "Alice Jones"
		return nil
	})
	if err != nil || updated.Name != "Alice Jones" {
		t.Fatalf("update client: %+v err=%v", updated, err)
	}

	err = svc.DeleteClient(ctx, client.ID)
	var ierr core.IntegrityError
	if !errors.As(err, &ierr) || ierr.FlightCount != 1 {
		t.Fatalf("expected integrity error, got %v", err)
	}

	if err := svc.DeleteFlight(ctx, flight.ID); err != nil {
		t.Fatalf("delete flight: %v", err)
	}
	if err := svc.DeleteClient(ctx, client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if err := svc.DeleteAirline(ctx, airline.ID); err != nil {
		t.Fatalf("delete airline: %v", err)
	}
	if len(svc.ListClients()) != 0 || len(svc.ListAirlines()) != 0 || len(svc.ListFlights()) != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestServiceRelatedFlights(t *testing.T) {
	svc, client, airline, flight := seedService(t)
	ctx := context.Background()

	flights, err := svc.RelatedFlights(ctx, client.ID, core.EntityClient)
	if err != nil || len(flights) != 1 || flights[0].ID != flight.ID {
		t.Fatalf("client related flights: %v err=%v", flights, err)
	}
	flights, err = svc.RelatedFlights(ctx, airline.ID, core.EntityAirline)
	if err != nil || len(flights) != 1 {
		t.Fatalf("airline related flights: %v err=%v", flights, err)
	}
	if _, err := svc.RelatedFlights(ctx, flight.ID, core.EntityFlight); err == nil {
		t.Fatalf("expected error for flight entity type")
	}
}

func TestServiceUpdateFlightRevalidatesReferences(t *testing.T) {
	svc, _, _, flight := seedService(t)
	ctx := context.Background()

	_, err := svc.UpdateFlight(ctx, flight.ID, func(f *core.Flight) error {
		f.ClientID = 999
		return nil
	})
	var verr core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["client_id"] != "Client with ID 999 does not exist" {
		t.Fatalf("unexpected message %q", verr.Fields["client_id"])
	}
}

func TestServiceInstrumentation(t *testing.T) {
	rec := core.NewExpvarMetricsRecorder("")
	tracer := core.NewJSONTracer(nil)
	svc := core.NewService(memory.NewStore(),
		core.WithMetricsRecorder(rec),
		core.WithTracer(tracer),
	)
	ctx := context.Background()

	if _, err := svc.CreateClient(ctx, clientFixture("Alice Smith")); err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := svc.CreateClient(ctx, core.Client{}); err == nil {
		t.Fatalf("expected validation error")
	}

	snap := rec.Snapshot()
	results := snap.Results["create_client"]
	if results["success"] != 1 || results["error"] != 1 {
		t.Fatalf("unexpected metric results %v", snap.Results)
	}

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 trace entries, have %d", len(entries))
	}
	if entries[0].Operation != "create_client" || entries[0].Status != "success" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Status != "error" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
}

func TestParseFlightDate(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	for _, input := range []string{
		"2025-03-14T09:30:00Z",
		"2025-03-14T09:30:00",
		"2025-03-14 09:30:00",
		"2025-03-14 09:30",
	} {
		got, err := core.ParseFlightDate(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q: got %v", input, got)
		}
	}

	if got, err := core.ParseFlightDate("2025-03-14"); err != nil || !got.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only parse: %v err=%v", got, err)
	}

	_, err := core.ParseFlightDate("14/03/2025")
	var verr core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["date"]; !ok {
		t.Fatalf("expected date field error, got %v", verr.Fields)
	}
	if verr.Entity != domain.EntityFlight {
		t.Fatalf("unexpected entity %q", verr.Entity)
	}
}
