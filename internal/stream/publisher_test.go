package stream

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func requireClosed[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case _, ok := <-ch:
		require.False(t, ok, "expected channel to be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for close")
	}
}

func TestPublisher_ReplaysLatestOnSubscribe(t *testing.T) {
	p := NewPublisher[int]()
	p.Publish(1)
	p.Publish(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := p.Subscribe(ctx)

	assert.Equal(t, 2, receive(t, ch))
}

func TestPublisher_NoReplayBeforeFirstPublish(t *testing.T) {
	p := NewPublisher[string]()
	_, ok := p.Latest()
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := p.Subscribe(ctx)

	p.Publish("first")
	assert.Equal(t, "first", receive(t, ch))
}

func TestPublisher_DeliversInOrderWithoutDrops(t *testing.T) {
	p := NewPublisher[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := p.Subscribe(ctx)

	// Publish far more than any channel buffer before reading anything.
	for i := 0; i < 500; i++ {
		p.Publish(i)
	}
	for i := 0; i < 500; i++ {
		assert.Equal(t, i, receive(t, ch))
	}
}

func TestPublisher_CancelTearsDownSubscription(t *testing.T) {
	var count atomic.Int64
	p := NewPublisher(WithSubscriberGauge[int](func(n int) { count.Store(int64(n)) }))

	ctx, cancel := context.WithCancel(context.Background())
	ch := p.Subscribe(ctx)
	assert.Equal(t, int64(1), count.Load())

	cancel()
	requireClosed(t, ch)
	assert.Eventually(t, func() bool { return p.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return count.Load() == 0 }, time.Second, 5*time.Millisecond)
}

func TestPublisher_GaugeReportsInChangeOrder(t *testing.T) {
	var mu sync.Mutex
	var reports []int
	p := NewPublisher(WithSubscriberGauge[int](func(n int) {
		mu.Lock()
		reports = append(reports, n)
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithCancel(context.Background())
			ch := p.Subscribe(ctx)
			cancel()
			for range ch {
			}
		}()
	}
	wg.Wait()
	require.Eventually(t, func() bool { return p.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reports, 100)
	prev := 0
	for i, n := range reports {
		step := n - prev
		assert.True(t, step == 1 || step == -1, "report %d jumped from %d to %d", i, prev, n)
		prev = n
	}
	assert.Equal(t, 0, reports[len(reports)-1])
}

func TestPublisher_CloseDrainsThenCloses(t *testing.T) {
	p := NewPublisher[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := p.Subscribe(ctx)

	p.Publish(1)
	p.Publish(2)
	p.Close()
	p.Publish(3)

	assert.Equal(t, 1, receive(t, ch))
	assert.Equal(t, 2, receive(t, ch))
	requireClosed(t, ch)
}

func TestPublisher_SubscribeAfterClose(t *testing.T) {
	p := NewPublisher[int]()
	p.Close()

	ch := p.Subscribe(context.Background())
	requireClosed(t, ch)
}

func TestPublisher_LatestNeverStalerThanDelivered(t *testing.T) {
	p := NewPublisher[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := p.Subscribe(ctx)

	for i := 1; i <= 50; i++ {
		p.Publish(i)
	}
	for i := 1; i <= 50; i++ {
		got := receive(t, ch)
		latest, ok := p.Latest()
		require.True(t, ok)
		assert.GreaterOrEqual(t, latest, got)
	}
}
