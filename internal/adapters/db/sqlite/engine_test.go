package sqlite

import (
	"context"
	"testing"

	"github.com/databridge-io/databridge/internal/domain"
)

func testEngineCommand() domain.EngineSettingsCommand {
	return domain.EngineSettingsCommand{
		Name: "plant-gateway",
		Port: 2223,
		LogParameters: domain.LogParameters{
			Console:  domain.ConsoleLogSettings{Level: "silent"},
			File:     domain.FileLogSettings{Level: "info", MaxFileSize: 50, NumberOfFiles: 5},
			Database: domain.DatabaseLogSettings{Level: "info", MaxNumberOfLogs: 100_000},
			Loki:     domain.LokiLogSettings{Level: "silent", Interval: 60},
		},
		HealthSignal: domain.HealthSignal{
			Logging: domain.HealthSignalLogging{Enabled: true, Interval: 60},
			HTTP: domain.HealthSignalHTTP{
				Enabled:  true,
				Interval: 300,
				Address:  "https://monitor.example.com/health",
				Authentication: domain.Authentication{
					Type:   "basic",
					Key:    "monitor",
					Secret: "s3cret",
				},
			},
		},
	}
}

func TestEngineSettingsCreateIfAbsentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewEngineSettingsRepository(db)

	if _, err := repo.Get(ctx); err == nil {
		t.Fatal("expected no settings row before seeding")
	}

	if err := repo.CreateIfAbsent(ctx, testEngineCommand()); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	first, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}

	changed := testEngineCommand()
	changed.Name = "other-name"
	changed.Port = 9999
	if err := repo.CreateIfAbsent(ctx, changed); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	second, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get settings after second seed: %v", err)
	}
	if second.ID != first.ID || second.Name != first.Name || second.Port != first.Port {
		t.Fatalf("second seed must not overwrite the existing row: got %+v, want %+v", second, first)
	}

	var count int64
	if err := db.Model(&EngineModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count engine rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one engine row, got %d", count)
	}
}

func TestEngineSettingsUpdateOverwritesSingleRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewEngineSettingsRepository(db)

	if err := repo.CreateIfAbsent(ctx, testEngineCommand()); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	before, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}

	cmd := testEngineCommand()
	cmd.Name = "renamed-gateway"
	cmd.Port = 8080
	cmd.LogParameters.File.Level = "debug"
	cmd.HealthSignal.HTTP.Authentication = domain.Authentication{Type: "api-key", Key: "k", Secret: "v"}
	if err := repo.Update(ctx, cmd); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	after, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get settings after update: %v", err)
	}
	if after.ID != before.ID {
		t.Fatalf("update must keep the row id, got %q want %q", after.ID, before.ID)
	}
	if after.Name != "renamed-gateway" || after.Port != 8080 {
		t.Fatalf("unexpected settings after update: %+v", after)
	}
	if after.LogParameters.File.Level != "debug" {
		t.Fatalf("expected file log level debug, got %q", after.LogParameters.File.Level)
	}
	if after.HealthSignal.HTTP.Authentication != (domain.Authentication{Type: "api-key", Key: "k", Secret: "v"}) {
		t.Fatalf("authentication did not round trip: %+v", after.HealthSignal.HTTP.Authentication)
	}
}
