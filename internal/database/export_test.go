package database

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t, ctx)
	if err := src.SaveNotifications(ctx, sampleRows()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	payload, err := src.ExportSheet(ctx)
	if err != nil {
		t.Fatalf("ExportSheet failed: %v", err)
	}
	var parsed SheetExport
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if parsed.Version != exportVersion || len(parsed.Notifications) != 3 {
		t.Fatalf("unexpected export %+v", parsed)
	}

	dst := setupTestDB(t, ctx)
	ns, err := dst.ImportSheet(ctx, payload)
	if err != nil {
		t.Fatalf("ImportSheet failed: %v", err)
	}
	if len(ns) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ns))
	}
	loaded, _ := dst.LoadNotifications(ctx)
	for i, want := range sampleRows() {
		if loaded[i] != want {
			t.Fatalf("row %d = %+v, want %+v", i, loaded[i], want)
		}
	}
}

func TestImportRejectsBadPayloads(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"not json", "{", "import sheet"},
		{"future version", `{"version": 99}`, "unsupported version"},
		{"missing id", `{"version": 1, "notifications": [{"level": "warning"}]}`, "missing or duplicate"},
		{"duplicate id", `{"version": 1, "notifications": [{"id": "a"}, {"id": "a"}]}`, "missing or duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.ImportSheet(ctx, []byte(tt.payload))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
