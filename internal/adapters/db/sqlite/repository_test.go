package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/databridge-io/databridge/internal/domain"
)

func TestSouthConnectorRoundTripPreservesSettings(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSouthConnectorRepository(db)

	settings := json.RawMessage(`{"host":"opc.tcp://plc:4840","keepAlive":true,"retry":5,"auth":{"mode":"none","cert":null}}`)
	created, err := repo.Create(ctx, domain.SouthConnectorCommand{
		Name:        "Line 1 PLC",
		Type:        "opcua",
		Description: "main line",
		Enabled:     true,
		Settings:    settings,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.ID) != 16 {
		t.Fatalf("expected 16-char id, got %q", created.ID)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Line 1 PLC" || got.Type != "opcua" || got.Description != "main line" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Enabled {
		t.Fatalf("expected enabled to survive integer storage")
	}
	if string(got.Settings) != string(settings) {
		t.Fatalf("settings not byte-identical: %s", got.Settings)
	}

	// full-row overwrite, including the boolean flip
	if err := repo.Update(ctx, created.ID, domain.SouthConnectorCommand{
		Name:     "Line 1 PLC",
		Type:     "opcua",
		Enabled:  false,
		Settings: settings,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Enabled {
		t.Fatalf("expected enabled=false after update")
	}
	if got.Description != "" {
		t.Fatalf("expected description cleared by full-row update, got %q", got.Description)
	}
}

func TestScanModeDeleteRemovesExactlyOneRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewScanModeRepository(db)

	keep, err := repo.Create(ctx, domain.ScanModeCommand{Name: "Every minute", Cron: "0 * * * * *"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	drop, err := repo.Create(ctx, domain.ScanModeCommand{Name: "Every hour", Cron: "0 0 * * * *"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, drop.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, keep.ID); err != nil {
		t.Fatalf("unrelated row affected: %v", err)
	}
}

func TestSouthItemSearchPagination(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	scanModes := NewScanModeRepository(db)
	souths := NewSouthConnectorRepository(db)
	items := NewSouthItemRepository(db)

	mode, err := scanModes.Create(ctx, domain.ScanModeCommand{Name: "Every 10s", Cron: "*/10 * * * * *"})
	if err != nil {
		t.Fatalf("create scan mode: %v", err)
	}
	south, err := souths.Create(ctx, domain.SouthConnectorCommand{Name: "historian", Type: "mssql", Enabled: true})
	if err != nil {
		t.Fatalf("create south: %v", err)
	}

	const total = 120
	for i := 0; i < total; i++ {
		_, err := items.Create(ctx, south.ID, domain.SouthItemCommand{
			Name:       fmt.Sprintf("point-%03d", i),
			ScanModeID: mode.ID,
		})
		if err != nil {
			t.Fatalf("create item %d: %v", i, err)
		}
	}

	for page, want := range map[int]int{0: 50, 1: 50, 2: 20} {
		result, err := items.Search(ctx, south.ID, "", page)
		if err != nil {
			t.Fatalf("search page %d: %v", page, err)
		}
		if len(result.Content) != want {
			t.Fatalf("page %d: expected %d items, got %d", page, want, len(result.Content))
		}
		if result.TotalElements != total {
			t.Fatalf("page %d: expected %d total, got %d", page, total, result.TotalElements)
		}
		if result.TotalPages != 3 {
			t.Fatalf("page %d: expected 3 pages, got %d", page, result.TotalPages)
		}
		if result.Size != domain.PageSize || result.Number != page {
			t.Fatalf("page %d: bad page envelope %+v", page, result)
		}
	}

	filtered, err := items.Search(ctx, south.ID, "point-11", 0)
	if err != nil {
		t.Fatalf("filtered search: %v", err)
	}
	// point-110 through point-119
	if filtered.TotalElements != 10 {
		t.Fatalf("expected 10 matches for point-11, got %d", filtered.TotalElements)
	}
}

func TestSouthConnectorDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	scanModes := NewScanModeRepository(db)
	souths := NewSouthConnectorRepository(db)
	items := NewSouthItemRepository(db)
	caches := NewSouthCacheRepository(db)

	shared, err := scanModes.Create(ctx, domain.ScanModeCommand{Name: "shared", Cron: "0 * * * * *"})
	if err != nil {
		t.Fatalf("create scan mode: %v", err)
	}
	private, err := scanModes.Create(ctx, domain.ScanModeCommand{Name: "private", Cron: "0 0 * * * *"})
	if err != nil {
		t.Fatalf("create scan mode: %v", err)
	}

	doomed, err := souths.Create(ctx, domain.SouthConnectorCommand{Name: "doomed", Type: "modbus", Enabled: true})
	if err != nil {
		t.Fatalf("create south: %v", err)
	}
	survivor, err := souths.Create(ctx, domain.SouthConnectorCommand{Name: "survivor", Type: "modbus", Enabled: true})
	if err != nil {
		t.Fatalf("create south: %v", err)
	}

	if _, err := items.Create(ctx, doomed.ID, domain.SouthItemCommand{Name: "a", ScanModeID: shared.ID}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := items.Create(ctx, doomed.ID, domain.SouthItemCommand{Name: "b", ScanModeID: private.ID}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := items.Create(ctx, survivor.ID, domain.SouthItemCommand{Name: "c", ScanModeID: shared.ID}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := caches.Upsert(ctx, domain.SouthCache{ScanModeID: shared.ID, IntervalIndex: 1, MaxInstant: "2024-03-01T00:00:00.000Z"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := caches.Upsert(ctx, domain.SouthCache{ScanModeID: private.ID, IntervalIndex: 2, MaxInstant: "2024-03-02T00:00:00.000Z"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := souths.Delete(ctx, doomed.ID); err != nil {
		t.Fatalf("delete connector: %v", err)
	}

	if _, err := souths.GetByID(ctx, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected connector gone, got %v", err)
	}
	left, err := items.ListBySouth(ctx, doomed.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected no orphaned items, got %d", len(left))
	}
	if _, err := caches.GetByScanMode(ctx, private.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected private cursor removed, got %v", err)
	}
	// shared scan mode is still referenced by the survivor's item
	if _, err := caches.GetByScanMode(ctx, shared.ID); err != nil {
		t.Fatalf("shared cursor should survive: %v", err)
	}
	kept, err := items.ListBySouth(ctx, survivor.ID)
	if err != nil {
		t.Fatalf("list survivor items: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("survivor items affected: got %d", len(kept))
	}
}

func TestHistoryQueryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	scanModes := NewScanModeRepository(db)
	repo := NewHistoryQueryRepository(db)

	mode, err := scanModes.Create(ctx, domain.ScanModeCommand{Name: "backfill", Cron: "0 0 * * * *"})
	if err != nil {
		t.Fatalf("create scan mode: %v", err)
	}

	command := domain.HistoryQueryCommand{
		Name:          "January backfill",
		Description:   "reload line 1",
		Enabled:       true,
		StartTime:     "2024-01-01T00:00:00.000Z",
		EndTime:       "2024-02-01T00:00:00.000Z",
		SouthType:     "mssql",
		NorthType:     "oianalytics",
		SouthSettings: json.RawMessage(`{"query":"SELECT * FROM telemetry"}`),
		NorthSettings: json.RawMessage(`{"endpoint":"https://sink.example.com"}`),
		Caching: domain.HistoryCaching{
			ScanModeID:    mode.ID,
			GroupCount:    1000,
			RetryInterval: 5000,
			RetryCount:    3,
			MaxSendCount:  10000,
			Timeout:       30,
		},
		Archive: domain.HistoryArchive{Enabled: true, RetentionDuration: 72},
	}

	created, err := repo.Create(ctx, command)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.ID) != 6 {
		t.Fatalf("expected short 6-char history id, got %q", created.ID)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Caching != command.Caching {
		t.Fatalf("caching mismatch: %+v", got.Caching)
	}
	if got.Archive != command.Archive {
		t.Fatalf("archive mismatch: %+v", got.Archive)
	}
	if string(got.SouthSettings) != string(command.SouthSettings) {
		t.Fatalf("south settings mismatch: %s", got.SouthSettings)
	}
	if got.StartTime != command.StartTime || got.EndTime != command.EndTime {
		t.Fatalf("time window mismatch: %+v", got)
	}
}

func TestLogSearchFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewLogRepository(db)

	entries := []domain.LogEntry{
		{Timestamp: "2024-01-01T10:00:00.000Z", Level: "info", Scope: "engine", Message: "started"},
		{Timestamp: "2024-01-01T11:00:00.000Z", Level: "error", Scope: "south:plc", Message: "connection lost"},
		{Timestamp: "2024-01-01T12:00:00.000Z", Level: "error", Scope: "south:plc", Message: "connection restored"},
		{Timestamp: "2024-01-02T09:00:00.000Z", Level: "debug", Scope: "north:sink", Message: "flushed 100 values"},
	}
	for _, e := range entries {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	page, err := repo.Search(ctx, domain.LogSearchParams{
		Start:  "2024-01-01T00:00:00.000Z",
		End:    "2024-01-01T23:59:59.999Z",
		Levels: []string{"error"},
		Scope:  "south:plc",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected 2 error rows, got %d", page.TotalElements)
	}
	// newest first
	if page.Content[0].Message != "connection restored" {
		t.Fatalf("unexpected ordering: %+v", page.Content)
	}

	text, err := repo.Search(ctx, domain.LogSearchParams{MessageContent: "flushed"})
	if err != nil {
		t.Fatalf("text search: %v", err)
	}
	if text.TotalElements != 1 || text.Content[0].Scope != "north:sink" {
		t.Fatalf("unexpected text search result: %+v", text)
	}
}
