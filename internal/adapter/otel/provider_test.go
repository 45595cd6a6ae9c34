package otel_test

import (
	"context"
	"testing"

	adapter "github.com/neomorfeo/dealerops/internal/adapter/otel"
	"github.com/neomorfeo/dealerops/internal/adapter/sqlite"
	"github.com/neomorfeo/dealerops/internal/domain"
)

func TestSetup_StdoutExporter(t *testing.T) {
	providers, err := adapter.Setup(context.Background(), adapter.Config{
		ServiceName:    "test",
		ServiceVersion: "0.0.1",
		Environment:    "test",
		Exporter:       adapter.ExporterStdout,
		SampleRatio:    0.5,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	if err := providers.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}

func TestSetup_NoneExporter(t *testing.T) {
	providers, err := adapter.Setup(context.Background(), adapter.Config{
		ServiceName: "test",
		Exporter:    adapter.ExporterNone,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := providers.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}

func TestOpenDB_BacksStore(t *testing.T) {
	db, err := adapter.OpenDB(sqlite.DSN(":memory:"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	store, err := sqlite.NewFromDB(db)
	if err != nil {
		t.Fatalf("NewFromDB failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.ListDealers(context.Background(), domain.DealerFilter{}); err != nil {
		t.Fatalf("ListDealers failed: %v", err)
	}
}

func TestSetup_InvalidExporter(t *testing.T) {
	_, err := adapter.Setup(context.Background(), adapter.Config{
		ServiceName:    "test",
		ServiceVersion: "0.0.1",
		Environment:    "test",
		Exporter:       "invalid",
	})
	if err == nil {
		t.Fatal("expected error for invalid exporter")
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg := adapter.ConfigFromEnv()

	if cfg.ServiceName != "dealerops" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "dealerops")
	}
	if cfg.ServiceVersion != "0.1.0" {
		t.Errorf("ServiceVersion = %q, want %q", cfg.ServiceVersion, "0.1.0")
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "development")
	}
	if cfg.Exporter != adapter.ExporterStdout {
		t.Errorf("Exporter = %q, want %q", cfg.Exporter, adapter.ExporterStdout)
	}
	if cfg.SampleRatio != 1 {
		t.Errorf("SampleRatio = %v, want 1", cfg.SampleRatio)
	}
	if !cfg.Insecure {
		t.Error("development should use insecure OTLP")
	}
}

func TestConfigFromEnv_SampleRatio(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"0.25", 0.25},
		{"0", 0},
		{"1.5", 1},
		{"half", 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("OTEL_TRACES_SAMPLE_RATIO", tt.raw)

			if got := adapter.ConfigFromEnv().SampleRatio; got != tt.want {
				t.Errorf("SampleRatio = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigFromEnv_CustomValues(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "custom-service")
	t.Setenv("OTEL_SERVICE_VERSION", "1.0.0")
	t.Setenv("OTEL_ENVIRONMENT", "production")
	t.Setenv("OTEL_EXPORTER", "otlp")
	t.Setenv("OTEL_ENDPOINT", "http://collector:4318")

	cfg := adapter.ConfigFromEnv()

	if cfg.ServiceName != "custom-service" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "custom-service")
	}
	if cfg.ServiceVersion != "1.0.0" {
		t.Errorf("ServiceVersion = %q, want %q", cfg.ServiceVersion, "1.0.0")
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "production")
	}
	if cfg.Exporter != adapter.ExporterOTLP {
		t.Errorf("Exporter = %q, want %q", cfg.Exporter, adapter.ExporterOTLP)
	}
	if cfg.Endpoint != "http://collector:4318" {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, "http://collector:4318")
	}
	if cfg.Insecure {
		t.Error("production should not use insecure OTLP")
	}
}
