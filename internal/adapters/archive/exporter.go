// Package archive renders full record snapshots into durable archive
// artifacts stored in a blob backend.
package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"flyrecord/internal/blob"
	"flyrecord/internal/core"
)

// Record describes a completed archive run and the artifacts it produced.
type Record struct {
	Prefix      string      `json:"prefix"`
	Clients     int         `json:"clients"`
	Airlines    int         `json:"airlines"`
	Flights     int         `json:"flights"`
	Artifacts   []blob.Info `json:"artifacts"`
	CompletedAt time.Time   `json:"completed_at"`
}

// Exporter writes point-in-time record archives to a blob store. Each
// run produces a full JSON snapshot plus one CSV per entity type under
// a timestamped prefix.
type Exporter struct {
	store PersistentStore
	blobs blob.Store
	now   func() time.Time
}

// PersistentStore is the storage surface the exporter reads from.
type PersistentStore interface {
	View(ctx context.Context, fn func(core.TransactionView) error) error
}

// NewExporter constructs an archive exporter.
func NewExporter(store PersistentStore, blobs blob.Store) *Exporter {
	return &Exporter{store: store, blobs: blobs, now: time.Now}
}

type renderedArtifact struct {
	name        string
	contentType string
	payload     []byte
}

// Run captures a consistent snapshot and stores its artifacts. The
// returned record lists what was written and where.
func (e *Exporter) Run(ctx context.Context) (Record, error) {
	var (
		clients  []core.Client
		airlines []core.Airline
		flights  []core.Flight
	)
	if err := e.store.View(ctx, func(view core.TransactionView) error {
		clients = view.ListClients()
		airlines = view.ListAirlines()
		flights = view.ListFlights()
		return nil
	}); err != nil {
		return Record{}, err
	}

	artifacts, err := renderArtifacts(clients, airlines, flights)
	if err != nil {
		return Record{}, err
	}

	now := e.now().UTC()
	prefix := "archives/" + now.Format("20060102T150405Z")
	record := Record{
		Prefix:      prefix,
		Clients:     len(clients),
		Airlines:    len(airlines),
		Flights:     len(flights),
		CompletedAt: now,
	}
	for _, art := range artifacts {
		key := prefix + "/" + art.name
		info, err := e.blobs.Put(ctx, key, bytes.NewReader(art.payload), blob.PutOptions{
			ContentType: art.contentType,
			Metadata:    map[string]string{"archive": now.Format(time.RFC3339)},
		})
		if err != nil {
			return Record{}, fmt.Errorf("store artifact %s: %w", key, err)
		}
		record.Artifacts = append(record.Artifacts, info)
	}
	return record, nil
}

func renderArtifacts(clients []core.Client, airlines []core.Airline, flights []core.Flight) ([]renderedArtifact, error) {
	snapshot := struct {
		Clients  []core.Client  `json:"clients"`
		Airlines []core.Airline `json:"airlines"`
		Flights  []core.Flight  `json:"flights"`
	}{Clients: clients, Airlines: airlines, Flights: flights}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	artifacts := []renderedArtifact{{name: "records.json", contentType: "application/json", payload: payload}}

	clientCSV, err := renderCSV(
		[]string{"id", "name", "address_line1", "address_line2", "address_line3", "city", "state", "zip_code", "country", "phone_number"},
		len(clients),
		func(i int) []string {
			c := clients[i]
			return []string{strconv.Itoa(c.ID), c.Name, c.AddressLine1, c.AddressLine2, c.AddressLine3, c.City, c.State, c.ZipCode, c.Country, c.PhoneNumber}
		})
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, renderedArtifact{name: "clients.csv", contentType: "text/csv", payload: clientCSV})

	airlineCSV, err := renderCSV(
		[]string{"id", "company_name"},
		len(airlines),
		func(i int) []string {
			a := airlines[i]
			return []string{strconv.Itoa(a.ID), a.CompanyName}
		})
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, renderedArtifact{name: "airlines.csv", contentType: "text/csv", payload: airlineCSV})

	flightCSV, err := renderCSV(
		[]string{"id", "client_id", "airline_id", "date", "start_city", "end_city"},
		len(flights),
		func(i int) []string {
			f := flights[i]
			return []string{strconv.Itoa(f.ID), strconv.Itoa(f.ClientID), strconv.Itoa(f.AirlineID), f.Date.Format(time.RFC3339), f.StartCity, f.EndCity}
		})
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, renderedArtifact{name: "flights.csv", contentType: "text/csv", payload: flightCSV})
	return artifacts, nil
}

func renderCSV(headers []string, rows int, row func(i int) []string) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		if err := writer.Write(row(i)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
