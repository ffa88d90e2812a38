package dispatch

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"corvid/pkg/corvid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestBusPublishDeliversMatchingSubscriptions verifies filtered publish delivery.
func TestBusPublishDeliversMatchingSubscriptions(t *testing.T) {
	t.Parallel()

	bus := NewBus(8, 1, time.Second, nil)
	t.Cleanup(func() {
		_ = bus.Close(context.Background())
	})

	received := make(chan *corvid.Event, 1)
	_, err := bus.Subscribe(context.Background(), corvid.SubscriptionSpec{
		Name:  "match",
		Kinds: []corvid.EventKind{corvid.EventGuildCreate},
	}, func(_ context.Context, event *corvid.Event) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bus.Publish(context.Background(), newGuildEvent(1, corvid.EventGuildCreate)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		if event.Guild.ID != 1 {
			t.Fatalf("guild id = %d, want 1", event.Guild.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

// TestBusPublishSkipsOtherKinds verifies subscriptions never receive unrequested kinds.
func TestBusPublishSkipsOtherKinds(t *testing.T) {
	t.Parallel()

	bus := NewBus(8, 1, time.Second, nil)
	t.Cleanup(func() {
		_ = bus.Close(context.Background())
	})

	received := make(chan *corvid.Event, 1)
	_, err := bus.Subscribe(context.Background(), corvid.SubscriptionSpec{
		Name:  "guilds-only",
		Kinds: []corvid.EventKind{corvid.EventGuildCreate},
	}, func(_ context.Context, event *corvid.Event) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bus.Publish(context.Background(), newGuildEvent(2, corvid.EventGuildDelete)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		t.Fatalf("unexpected delivery of kind %s", event.Kind)
	case <-time.After(200 * time.Millisecond):
	}
}

// TestBusSingleWorkerPreservesPublishOrder verifies serialized consumption order.
func TestBusSingleWorkerPreservesPublishOrder(t *testing.T) {
	t.Parallel()

	bus := NewBus(32, 1, time.Second, nil)
	t.Cleanup(func() {
		_ = bus.Close(context.Background())
	})

	const total = 16
	var mu sync.Mutex
	seen := make([]int64, 0, total)
	done := make(chan struct{})

	_, err := bus.Subscribe(context.Background(), corvid.SubscriptionSpec{
		Name:         "ordered",
		Workers:      1,
		Buffer:       total,
		Backpressure: corvid.BackpressureBlock,
	}, func(_ context.Context, event *corvid.Event) error {
		mu.Lock()
		seen = append(seen, event.Sequence)
		if len(seen) == total {
			close(done)
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	for i := 1; i <= total; i++ {
		event := newGuildEvent(corvid.ID(i), corvid.EventGuildUpdate)
		event.Sequence = int64(i)
		if err := bus.Publish(context.Background(), event); err != nil {
			t.Fatalf("publish %d failed: %v", i, err)
		}
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for all events")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, sequence := range seen {
		if sequence != int64(i+1) {
			t.Fatalf("seen[%d] = %d, want %d", i, sequence, i+1)
		}
	}
}

// TestBusBackpressurePolicies verifies queue behavior under each backpressure policy.
func TestBusBackpressurePolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		policy        corvid.BackpressurePolicy
		wantSequences []int64
	}{
		{
			name:          "drop newest keeps queued oldest",
			policy:        corvid.BackpressureDropNewest,
			wantSequences: []int64{1, 2},
		},
		{
			name:          "drop oldest keeps latest",
			policy:        corvid.BackpressureDropOldest,
			wantSequences: []int64{1, 3},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			bus := NewBus(1, 1, time.Second, nil)
			t.Cleanup(func() {
				_ = bus.Close(context.Background())
			})

			release := make(chan struct{})
			blocked := make(chan struct{}, 1)
			processed := make([]int64, 0, 3)
			var first sync.Once
			var mu sync.Mutex

			_, err := bus.Subscribe(context.Background(), corvid.SubscriptionSpec{
				Name:         "policy",
				Kinds:        []corvid.EventKind{corvid.EventGuildUpdate},
				Workers:      1,
				Buffer:       1,
				Backpressure: testCase.policy,
			}, func(_ context.Context, event *corvid.Event) error {
				first.Do(func() {
					blocked <- struct{}{}
					<-release
				})
				mu.Lock()
				processed = append(processed, event.Sequence)
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Fatalf("subscribe failed: %v", err)
			}

			for sequence := int64(1); sequence <= 3; sequence++ {
				event := newGuildEvent(corvid.ID(sequence), corvid.EventGuildUpdate)
				event.Sequence = sequence
				if err := bus.Publish(context.Background(), event); err != nil {
					t.Fatalf("publish %d failed: %v", sequence, err)
				}
				if sequence == 1 {
					select {
					case <-blocked:
					case <-time.After(time.Second):
						t.Fatal("handler did not block as expected")
					}
				}
			}

			close(release)
			eventually(t, 2*time.Second, func() bool {
				mu.Lock()
				defer mu.Unlock()
				return len(processed) == 2
			})

			mu.Lock()
			gotSequences := append([]int64(nil), processed...)
			mu.Unlock()
			if gotSequences[0] != testCase.wantSequences[0] || gotSequences[1] != testCase.wantSequences[1] {
				t.Fatalf("processed = %v, want %v", gotSequences, testCase.wantSequences)
			}
		})
	}
}

// TestBusHandlerPanicIsContained verifies a panicking handler does not kill its worker.
func TestBusHandlerPanicIsContained(t *testing.T) {
	t.Parallel()

	asyncErrs := make(chan error, 4)
	bus := NewBus(8, 1, time.Second, func(_ context.Context, _ string, err error) {
		asyncErrs <- err
	})
	t.Cleanup(func() {
		_ = bus.Close(context.Background())
	})

	received := make(chan int64, 2)
	_, err := bus.Subscribe(context.Background(), corvid.SubscriptionSpec{
		Name: "panicky",
	}, func(_ context.Context, event *corvid.Event) error {
		if event.Sequence == 1 {
			panic("boom")
		}
		received <- event.Sequence
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	for sequence := int64(1); sequence <= 2; sequence++ {
		event := newGuildEvent(corvid.ID(sequence), corvid.EventGuildCreate)
		event.Sequence = sequence
		if err := bus.Publish(context.Background(), event); err != nil {
			t.Fatalf("publish %d failed: %v", sequence, err)
		}
	}

	select {
	case <-asyncErrs:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for panic report")
	}
	select {
	case sequence := <-received:
		if sequence != 2 {
			t.Fatalf("sequence = %d, want 2", sequence)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive handler panic")
	}
}

// TestBusCloseRejectsNewPublish verifies publish rejection after bus closure.
func TestBusCloseRejectsNewPublish(t *testing.T) {
	t.Parallel()

	bus := NewBus(8, 1, time.Second, nil)
	if err := bus.Close(context.Background()); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if err := bus.Publish(context.Background(), newGuildEvent(1, corvid.EventGuildCreate)); err == nil {
		t.Fatal("expected publish on closed bus to fail")
	}
}

// TestBusPublishInvalidEventReturnsError verifies envelope validation on publish.
func TestBusPublishInvalidEventReturnsError(t *testing.T) {
	t.Parallel()

	bus := NewBus(8, 1, time.Second, nil)
	t.Cleanup(func() {
		_ = bus.Close(context.Background())
	})

	if err := bus.Publish(context.Background(), nil); err == nil {
		t.Fatal("expected nil event publish to fail")
	}
	if err := bus.Publish(context.Background(), &corvid.Event{Kind: corvid.EventGuildCreate}); err == nil {
		t.Fatal("expected branchless event publish to fail")
	}
}

// TestBusSubscriptionCloseStopsDelivery verifies unsubscription detaches the consumer.
func TestBusSubscriptionCloseStopsDelivery(t *testing.T) {
	t.Parallel()

	bus := NewBus(8, 1, time.Second, nil)
	t.Cleanup(func() {
		_ = bus.Close(context.Background())
	})

	received := make(chan *corvid.Event, 1)
	sub, err := bus.Subscribe(context.Background(), corvid.SubscriptionSpec{
		Name: "short-lived",
	}, func(_ context.Context, event *corvid.Event) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := sub.Close(context.Background()); err != nil {
		t.Fatalf("subscription close failed: %v", err)
	}

	if err := bus.Publish(context.Background(), newGuildEvent(1, corvid.EventGuildCreate)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		t.Fatalf("unexpected delivery after close: %s", event.Kind)
	case <-time.After(200 * time.Millisecond):
	}
}

func newGuildEvent(id corvid.ID, kind corvid.EventKind) *corvid.Event {
	return &corvid.Event{
		Kind: kind,
		Guild: &corvid.GuildRecord{
			ID:   id,
			Name: "guild-" + strconv.FormatUint(uint64(id), 10),
		},
	}
}

func eventually(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatal("condition not met before timeout")
}
