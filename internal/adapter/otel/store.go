package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const tracerName = "github.com/neomorfeo/dealerops/internal/adapter/otel"

// TracingStore wraps a domain.Store with OpenTelemetry tracing. Writes,
// lifecycle changes and aggregates get a span each; plain reads pass through
// and are covered by the SQL driver spans.
type TracingStore struct {
	domain.Store
	tracer trace.Tracer
}

// Compile-time check: TracingStore implements domain.Store.
var _ domain.Store = (*TracingStore)(nil)

// NewTracingStore creates a tracing decorator around the given store.
func NewTracingStore(next domain.Store) *TracingStore {
	return &TracingStore{
		Store:  next,
		tracer: otel.Tracer(tracerName),
	}
}

func (s *TracingStore) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Atomic traces the whole transaction and hands fn a tracing view of the
// transaction-bound store.
func (s *TracingStore) Atomic(ctx context.Context, fn func(tx domain.Store) error) (err error) {
	ctx, span := s.start(ctx, "Store.Atomic")
	defer func() { finish(span, err) }()

	return s.Store.Atomic(ctx, func(tx domain.Store) error {
		return fn(&TracingStore{Store: tx, tracer: s.tracer})
	})
}

func (s *TracingStore) CreateDealer(ctx context.Context, dealer domain.Dealer) (err error) {
	ctx, span := s.start(ctx, "DealerRepository.CreateDealer",
		attribute.String("dealer.id", dealer.ID),
		attribute.String("dealer.status", string(dealer.Status)),
		attribute.Bool("dealer.system", dealer.IsSystemAccount),
	)
	defer func() { finish(span, err) }()

	return s.Store.CreateDealer(ctx, dealer)
}

func (s *TracingStore) ListDealers(ctx context.Context, filter domain.DealerFilter) (dealers []domain.DealerSummary, err error) {
	ctx, span := s.start(ctx, "DealerRepository.ListDealers")
	defer func() { finish(span, err) }()

	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	dealers, err = s.Store.ListDealers(ctx, filter)
	span.SetAttributes(attribute.Int("result.count", len(dealers)))
	return dealers, err
}

func (s *TracingStore) SetDealerStatus(ctx context.Context, id string, status domain.DealerStatus, reason string) (err error) {
	ctx, span := s.start(ctx, "DealerRepository.SetDealerStatus",
		attribute.String("dealer.id", id),
		attribute.String("dealer.status", string(status)),
	)
	defer func() { finish(span, err) }()

	return s.Store.SetDealerStatus(ctx, id, status, reason)
}

func (s *TracingStore) DeleteDealer(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, "DealerRepository.DeleteDealer", attribute.String("dealer.id", id))
	defer func() { finish(span, err) }()

	return s.Store.DeleteDealer(ctx, id)
}

func (s *TracingStore) CreateVehicle(ctx context.Context, vehicle domain.Vehicle) (err error) {
	ctx, span := s.start(ctx, "VehicleRepository.CreateVehicle",
		attribute.String("vehicle.id", vehicle.ID),
		attribute.String("dealer.id", vehicle.DealerID),
		attribute.String("vehicle.status", string(vehicle.Status)),
	)
	defer func() { finish(span, err) }()

	return s.Store.CreateVehicle(ctx, vehicle)
}

func (s *TracingStore) SetVehicleStatus(ctx context.Context, id string, status domain.VehicleStatus) (err error) {
	ctx, span := s.start(ctx, "VehicleRepository.SetVehicleStatus",
		attribute.String("vehicle.id", id),
		attribute.String("vehicle.status", string(status)),
	)
	defer func() { finish(span, err) }()

	return s.Store.SetVehicleStatus(ctx, id, status)
}

func (s *TracingStore) RecordSale(ctx context.Context, id string, sale domain.Sale) (err error) {
	ctx, span := s.start(ctx, "VehicleRepository.RecordSale",
		attribute.String("vehicle.id", id),
		attribute.Float64("sale.price", sale.SellingPrice),
	)
	defer func() { finish(span, err) }()

	return s.Store.RecordSale(ctx, id, sale)
}

func (s *TracingStore) ClearSale(ctx context.Context, id string, status domain.VehicleStatus) (err error) {
	ctx, span := s.start(ctx, "VehicleRepository.ClearSale",
		attribute.String("vehicle.id", id),
		attribute.String("vehicle.status", string(status)),
	)
	defer func() { finish(span, err) }()

	return s.Store.ClearSale(ctx, id, status)
}

func (s *TracingStore) CreateEmployee(ctx context.Context, employee domain.Employee) (err error) {
	ctx, span := s.start(ctx, "EmployeeRepository.CreateEmployee",
		attribute.String("employee.id", employee.ID),
		attribute.String("dealer.id", employee.DealerID),
	)
	defer func() { finish(span, err) }()

	return s.Store.CreateEmployee(ctx, employee)
}

func (s *TracingStore) CreateLead(ctx context.Context, lead domain.Lead) (err error) {
	ctx, span := s.start(ctx, "LeadRepository.CreateLead",
		attribute.String("lead.id", lead.ID),
		attribute.String("dealer.id", lead.DealerID),
	)
	defer func() { finish(span, err) }()

	return s.Store.CreateLead(ctx, lead)
}

func (s *TracingStore) ArchiveLeadsForVehicle(ctx context.Context, vehicleID string) (n int, err error) {
	ctx, span := s.start(ctx, "LeadRepository.ArchiveLeadsForVehicle", attribute.String("vehicle.id", vehicleID))
	defer func() { finish(span, err) }()

	n, err = s.Store.ArchiveLeadsForVehicle(ctx, vehicleID)
	span.SetAttributes(attribute.Int("result.count", n))
	return n, err
}

func (s *TracingStore) CreateSalarySlip(ctx context.Context, slip domain.SalarySlip) (err error) {
	ctx, span := s.start(ctx, "SalarySlipRepository.CreateSalarySlip",
		attribute.String("employee.id", slip.EmployeeID),
		attribute.Int("slip.month", slip.Month),
		attribute.Int("slip.year", slip.Year),
	)
	defer func() { finish(span, err) }()

	return s.Store.CreateSalarySlip(ctx, slip)
}

func (s *TracingStore) SetWebsiteState(ctx context.Context, dealerID string, status domain.WebsiteStatus, live bool) (err error) {
	ctx, span := s.start(ctx, "WebsiteRepository.SetWebsiteState",
		attribute.String("dealer.id", dealerID),
		attribute.String("website.status", string(status)),
		attribute.Bool("website.live", live),
	)
	defer func() { finish(span, err) }()

	return s.Store.SetWebsiteState(ctx, dealerID, status, live)
}

func (s *TracingStore) DashboardMetrics(ctx context.Context, dealerID string) (m domain.DashboardMetrics, err error) {
	ctx, span := s.start(ctx, "InsightsRepository.DashboardMetrics", attribute.String("dealer.id", dealerID))
	defer func() { finish(span, err) }()

	return s.Store.DashboardMetrics(ctx, dealerID)
}

func (s *TracingStore) StockBuckets(ctx context.Context, dealerID string, examples int) (b []domain.StockBucket, err error) {
	ctx, span := s.start(ctx, "InsightsRepository.StockBuckets", attribute.String("dealer.id", dealerID))
	defer func() { finish(span, err) }()

	return s.Store.StockBuckets(ctx, dealerID, examples)
}

func (s *TracingStore) PlatformCounts(ctx context.Context) (p domain.PlatformStats, err error) {
	ctx, span := s.start(ctx, "InsightsRepository.PlatformCounts")
	defer func() { finish(span, err) }()

	return s.Store.PlatformCounts(ctx)
}
