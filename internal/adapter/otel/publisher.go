package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// PublishedMetric counts notification publishes by kind and outcome.
const PublishedMetric = "dealerops.notifications.published"

// TracingPublisher wraps a domain.EventPublisher with a span and a counter
// per notification.
type TracingPublisher struct {
	next      domain.EventPublisher
	tracer    trace.Tracer
	published metric.Int64Counter
}

var _ domain.EventPublisher = (*TracingPublisher)(nil)

// NewTracingPublisher decorates next using the global tracer and meter
// providers.
func NewTracingPublisher(next domain.EventPublisher) *TracingPublisher {
	counter, err := otel.Meter(tracerName).Int64Counter(PublishedMetric,
		metric.WithDescription("Lifecycle notifications handed to the queue"),
	)
	if err != nil {
		otel.Handle(err)
		counter = noop.Int64Counter{}
	}
	return &TracingPublisher{
		next:      next,
		tracer:    otel.Tracer(tracerName),
		published: counter,
	}
}

func (p *TracingPublisher) Publish(ctx context.Context, n domain.Notification) error {
	ctx, span := p.tracer.Start(ctx, "EventPublisher.Publish",
		trace.WithAttributes(
			attribute.String("notification.kind", n.Kind),
			attribute.String("dealer.id", n.DealerID),
			attribute.String("entity.id", n.EntityID),
		),
	)
	defer span.End()

	outcome := "ok"
	err := p.next.Publish(ctx, n)
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	p.published.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", n.Kind),
		attribute.String("outcome", outcome),
	))
	return err
}
