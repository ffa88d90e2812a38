package state

import (
	"context"
	"log/slog"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"corvid/pkg/corvid"
)

func collectCounterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &resourceMetrics); err != nil {
		t.Fatalf("collect metrics failed: %v", err)
	}

	var total int64
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metricEntry := range scopeMetrics.Metrics {
			if metricEntry.Name != name {
				continue
			}
			sum, ok := metricEntry.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, want int64 sum", name, metricEntry.Data)
			}
			for _, dataPoint := range sum.DataPoints {
				total += dataPoint.Value
			}
		}
	}

	return total
}

func TestEngineCountsWritesRemovesAndDrops(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	engine, err := New(
		WithLogger(slog.New(slog.DiscardHandler)),
		WithMeterProvider(provider),
	)
	if err != nil {
		t.Fatalf("new engine failed: %v", err)
	}

	applyAll(t, engine,
		memberAddEvent(10, 400, "alice", "", nil),
		textChannelEvent(corvid.EventChannelCreate, 10, 100, "general"),
		textChannelEvent(corvid.EventChannelDelete, 10, 100, "general"),
		&corvid.Event{Kind: corvid.EventGuildMemberUpdate, Member: &corvid.MemberRecord{
			GuildID: 10,
			User:    corvid.UserRecord{ID: 999},
		}},
	)

	// Member add writes both the member and the carried user.
	if got := collectCounterTotal(t, reader, "cache.entity.writes"); got != 3 {
		t.Fatalf("write count = %d, want 3", got)
	}
	if got := collectCounterTotal(t, reader, "cache.entity.removes"); got != 1 {
		t.Fatalf("remove count = %d, want 1", got)
	}
	if got := collectCounterTotal(t, reader, "cache.event.drops"); got != 1 {
		t.Fatalf("drop count = %d, want 1", got)
	}
}

func TestEngineDefaultsToNoopMetrics(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	applyAll(t, engine, memberAddEvent(10, 400, "alice", "", nil))

	if _, ok := engine.Member(10, 400); !ok {
		t.Fatal("member not cached under noop metrics")
	}
}
