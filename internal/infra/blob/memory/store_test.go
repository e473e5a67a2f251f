package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"flyrecord/internal/blob/core"
	"flyrecord/internal/infra/blob/memory"
)

func TestStorePutGetHeadDelete(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	info, err := store.Put(ctx, "archives/a/records.json", strings.NewReader(`{"clients":[]}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"archive": "2025"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "archives/a/records.json" || info.Size != int64(len(`{"clients":[]}`)) {
		t.Fatalf("unexpected info %+v", info)
	}

	if _, err := store.Put(ctx, "archives/a/records.json", strings.NewReader("x"), core.PutOptions{}); err == nil {
		t.Fatalf("duplicate keys must be rejected")
	}

	got, rc, err := store.Get(ctx, "archives/a/records.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	payload, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(payload) != `{"clients":[]}` || got.ContentType != "application/json" {
		t.Fatalf("unexpected payload %q info %+v", payload, got)
	}

	head, err := store.Head(ctx, "archives/a/records.json")
	if err != nil || head.Metadata["archive"] != "2025" {
		t.Fatalf("head: %+v err=%v", head, err)
	}

	existed, err := store.Delete(ctx, "archives/a/records.json")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	existed, err = store.Delete(ctx, "archives/a/records.json")
	if err != nil || existed {
		t.Fatalf("second delete must be a no-op: existed=%v err=%v", existed, err)
	}
	if _, _, err := store.Get(ctx, "archives/a/records.json"); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestStoreListByPrefix(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	for _, key := range []string{"archives/a/records.json", "archives/a/clients.csv", "archives/b/records.json"} {
		if _, err := store.Put(ctx, key, strings.NewReader("data"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	infos, err := store.List(ctx, "archives/a/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "archives/a/clients.csv" {
		t.Fatalf("unexpected listing %+v", infos)
	}

	all, err := store.List(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("empty prefix must list all: %v err=%v", all, err)
	}
}
