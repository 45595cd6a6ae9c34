package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adapter "github.com/neomorfeo/dealerops/internal/adapter/otel"
	"github.com/neomorfeo/dealerops/internal/adapter/sqlite"
	"github.com/neomorfeo/dealerops/internal/domain"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

func newTracingStore(t *testing.T) *adapter.TracingStore {
	t.Helper()
	inner, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { inner.Close() })
	return adapter.NewTracingStore(inner)
}

func newDealer(id, phone string) domain.Dealer {
	return domain.NewDealer(id, "Ravi", "Ravi Motors", phone, "", domain.CategoryFourWheeler, "hash")
}

func spanNamed(t *testing.T, spans tracetest.SpanStubs, name string) tracetest.SpanStub {
	t.Helper()
	for _, s := range spans {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("span %q not recorded", name)
	return tracetest.SpanStub{}
}

// --- Tests ---

func TestTracingStore_CreateDealer_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	store := newTracingStore(t)

	if err := store.CreateDealer(context.Background(), newDealer("d-1", "9000000001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "DealerRepository.CreateDealer" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "DealerRepository.CreateDealer")
	}
	assertAttribute(t, spans[0], "dealer.id", "d-1")
	assertAttribute(t, spans[0], "dealer.status", "pending")
}

func TestTracingStore_ReadsPassThrough(t *testing.T) {
	exporter := setupTestTracer(t)
	store := newTracingStore(t)
	ctx := context.Background()

	if err := store.CreateDealer(ctx, newDealer("d-1", "9000000001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exporter.Reset()

	got, err := store.GetDealer(ctx, "d-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Phone != "9000000001" {
		t.Errorf("Phone = %q, want %q", got.Phone, "9000000001")
	}
	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("got %d spans for a plain read, want 0", n)
	}
}

func TestTracingStore_Atomic_NestsSpans(t *testing.T) {
	exporter := setupTestTracer(t)
	store := newTracingStore(t)
	ctx := context.Background()

	if err := store.CreateDealer(ctx, newDealer("d-1", "9000000001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exporter.Reset()

	err := store.Atomic(ctx, func(tx domain.Store) error {
		return tx.SetDealerStatus(ctx, "d-1", domain.DealerApproved, "")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	parent := spanNamed(t, spans, "Store.Atomic")
	child := spanNamed(t, spans, "DealerRepository.SetDealerStatus")
	if child.Parent.SpanID() != parent.SpanContext.SpanID() {
		t.Error("status span is not a child of the transaction span")
	}
	assertAttribute(t, child, "dealer.status", "approved")
}

func TestTracingStore_Atomic_RecordsRollback(t *testing.T) {
	exporter := setupTestTracer(t)
	store := newTracingStore(t)
	boom := errors.New("boom")

	err := store.Atomic(context.Background(), func(tx domain.Store) error {
		if err := tx.CreateDealer(context.Background(), newDealer("d-1", "9000000001")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	span := spanNamed(t, exporter.GetSpans(), "Store.Atomic")
	if span.Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", span.Status.Code, codes.Error)
	}

	if _, err := store.GetDealer(context.Background(), "d-1"); !errors.Is(err, domain.ErrDealerNotFound) {
		t.Errorf("dealer survived rollback: err = %v", err)
	}
}

func TestTracingStore_DeleteDealer_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	store := newTracingStore(t)

	err := store.DeleteDealer(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrDealerNotFound) {
		t.Fatalf("err = %v, want %v", err, domain.ErrDealerNotFound)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}

func TestTracingStore_ListDealers_CountsResults(t *testing.T) {
	exporter := setupTestTracer(t)
	store := newTracingStore(t)
	ctx := context.Background()

	for _, d := range []domain.Dealer{newDealer("d-1", "9000000001"), newDealer("d-2", "9000000002")} {
		if err := store.CreateDealer(ctx, d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	exporter.Reset()

	status := domain.DealerPending
	if _, err := store.ListDealers(ctx, domain.DealerFilter{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	span := spanNamed(t, exporter.GetSpans(), "DealerRepository.ListDealers")
	assertAttribute(t, span, "filter.status", "pending")
	assertAttribute(t, span, "result.count", "2")
}

func assertAttribute(t *testing.T, span tracetest.SpanStub, key, want string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			got := attr.Value.Emit()
			if got != want {
				t.Errorf("attribute %q = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Errorf("attribute %q not found on span %q", key, span.Name)
}
