package core_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"flyrecord/internal/core"
)

func TestExpvarMetricsRecorder(t *testing.T) {
	rec := core.NewExpvarMetricsRecorder("")
	ctx := context.Background()

	rec.Observe(ctx, "create_client", true, 25*time.Millisecond)
	rec.Observe(ctx, "create_client", false, 5*time.Millisecond)
	rec.Observe(ctx, "delete_flight", true, time.Millisecond)
	rec.Observe(ctx, "", true, time.Second) // ignored

	snap := rec.Snapshot()
	if snap.DurationsMS["create_client"] < 29 || snap.DurationsMS["create_client"] > 31 {
		t.Fatalf("unexpected duration total %v", snap.DurationsMS)
	}
	results := snap.Results["create_client"]
	if results["success"] != 1 || results["error"] != 1 {
		t.Fatalf("unexpected results %v", snap.Results)
	}
	if _, ok := snap.Results[""]; ok {
		t.Fatalf("empty operation must be ignored")
	}
	if rec.Name() == "" {
		t.Fatalf("recorder must self-assign a name")
	}
}

func TestJSONTracerStreamsEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	tracer := core.NewJSONTracer(buf)
	ctx := context.Background()

	_, span := tracer.Start(ctx, "create_flight")
	span.End(nil)
	_, span = tracer.Start(ctx, "delete_client")
	span.End(errors.New("boom"))

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, have %d", len(entries))
	}
	if entries[0].Operation != "create_flight" || entries[0].Status != "success" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
	if entries[1].Status != "error" {
		t.Fatalf("unexpected entry %+v", entries[1])
	}

	dec := json.NewDecoder(buf)
	var streamed []core.JSONTraceEntry
	for dec.More() {
		var entry core.JSONTraceEntry
		if err := dec.Decode(&entry); err != nil {
			t.Fatalf("decode stream: %v", err)
		}
		streamed = append(streamed, entry)
	}
	if len(streamed) != 2 || streamed[1].Operation != "delete_client" {
		t.Fatalf("unexpected streamed entries %+v", streamed)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := core.NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	ctx := context.Background()

	rec.Observe(ctx, "create_client", true, 10*time.Millisecond)
	rec.Observe(ctx, "create_client", false, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	byName := map[string]bool{}
	for _, fam := range families {
		byName[fam.GetName()] = true
		if fam.GetName() == "flyrecord_operations_total" {
			var total float64
			for _, m := range fam.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			if total != 2 {
				t.Fatalf("expected 2 observations, got %v", total)
			}
		}
	}
	if !byName["flyrecord_operations_total"] || !byName["flyrecord_operation_duration_seconds"] {
		t.Fatalf("expected registered metric families, got %v", byName)
	}

	// double registration against the same registry fails
	if _, err := core.NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
