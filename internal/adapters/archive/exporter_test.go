package archive_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"flyrecord/internal/adapters/archive"
	memoryblob "flyrecord/internal/infra/blob/memory"
	"flyrecord/internal/infra/persistence/memory"
	"flyrecord/pkg/domain"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	if err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		client, err := tx.CreateClient(domain.Client{
			Name:         "Alice Smith",
			AddressLine1: "1 Main Street",
			City:         "Lisbon",
			State:        "Lisboa",
			ZipCode:      "1000-001",
			Country:      "Portugal",
			PhoneNumber:  "+351 210 000 000",
		})
		if err != nil {
			return err
		}
		airline, err := tx.CreateAirline(domain.Airline{CompanyName: "Blue Skies"})
		if err != nil {
			return err
		}
		_, err = tx.CreateFlight(domain.Flight{
			ClientID:  client.ID,
			AirlineID: airline.ID,
			Date:      time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
			StartCity: "Lisbon",
			EndCity:   "Porto",
		})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestExporterRunProducesArtifacts(t *testing.T) {
	store := seedStore(t)
	blobs := memoryblob.New()
	exporter := archive.NewExporter(store, blobs)
	ctx := context.Background()

	record, err := exporter.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if record.Clients != 1 || record.Airlines != 1 || record.Flights != 1 {
		t.Fatalf("unexpected counts %+v", record)
	}
	if !strings.HasPrefix(record.Prefix, "archives/") {
		t.Fatalf("unexpected prefix %q", record.Prefix)
	}
	if len(record.Artifacts) != 4 {
		t.Fatalf("expected 4 artifacts, have %d", len(record.Artifacts))
	}

	stored, err := blobs.List(ctx, record.Prefix+"/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := make(map[string]bool)
	for _, info := range stored {
		names[strings.TrimPrefix(info.Key, record.Prefix+"/")] = true
	}
	for _, want := range []string{"records.json", "clients.csv", "airlines.csv", "flights.csv"} {
		if !names[want] {
			t.Fatalf("missing artifact %s in %v", want, names)
		}
	}

	// the JSON snapshot decodes back into the entity collections
	_, rc, err := blobs.Get(ctx, record.Prefix+"/records.json")
	if err != nil {
		t.Fatalf("get records.json: %v", err)
	}
	payload, _ := io.ReadAll(rc)
	_ = rc.Close()
	var snapshot struct {
		Clients  []domain.Client  `json:"clients"`
		Airlines []domain.Airline `json:"airlines"`
		Flights  []domain.Flight  `json:"flights"`
	}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snapshot.Clients) != 1 || snapshot.Clients[0].Name != "Alice Smith" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	// the flights CSV carries header plus one row with an RFC 3339 date
	_, rc, err = blobs.Get(ctx, record.Prefix+"/flights.csv")
	if err != nil {
		t.Fatalf("get flights.csv: %v", err)
	}
	rows, err := csv.NewReader(rc).ReadAll()
	_ = rc.Close()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "id" {
		t.Fatalf("unexpected csv %v", rows)
	}
	if rows[1][3] != "2025-03-14T09:30:00Z" {
		t.Fatalf("unexpected date cell %q", rows[1][3])
	}
}

func TestExporterRunOnEmptyStore(t *testing.T) {
	exporter := archive.NewExporter(memory.NewStore(), memoryblob.New())
	record, err := exporter.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if record.Clients != 0 || len(record.Artifacts) != 4 {
		t.Fatalf("empty store still archives headers: %+v", record)
	}
}
