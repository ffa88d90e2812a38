package state

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName identifies this package's instrumentation scope.
const meterName = "corvid/state"

// engineMetrics records cache mutation counters.
type engineMetrics struct {
	writes  metric.Int64Counter
	removes metric.Int64Counter
	drops   metric.Int64Counter
}

// newEngineMetrics wires the engine counters against the given provider.
func newEngineMetrics(provider metric.MeterProvider) (*engineMetrics, error) {
	meter := provider.Meter(meterName)

	writes, err := meter.Int64Counter(
		"cache.entity.writes",
		metric.WithDescription("Entity values stored or replaced"),
		metric.WithUnit("{entity}"),
	)
	if err != nil {
		return nil, err
	}

	removes, err := meter.Int64Counter(
		"cache.entity.removes",
		metric.WithDescription("Entity values removed, including cascade removals"),
		metric.WithUnit("{entity}"),
	)
	if err != nil {
		return nil, err
	}

	drops, err := meter.Int64Counter(
		"cache.event.drops",
		metric.WithDescription("Events dropped without a cache write"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return &engineMetrics{
		writes:  writes,
		removes: removes,
		drops:   drops,
	}, nil
}

// write counts stored entity values of one kind.
func (m *engineMetrics) write(ctx context.Context, kind string, count int64) {
	m.writes.Add(ctx, count, metric.WithAttributes(attribute.String("entity.kind", kind)))
}

// remove counts removed entity values of one kind.
func (m *engineMetrics) remove(ctx context.Context, kind string, count int64) {
	m.removes.Add(ctx, count, metric.WithAttributes(attribute.String("entity.kind", kind)))
}

// drop counts an event dropped for the given reason.
func (m *engineMetrics) drop(ctx context.Context, kind string, reason string) {
	m.drops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity.kind", kind),
		attribute.String("drop.reason", reason),
	))
}
