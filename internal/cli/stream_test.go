package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, backoff(0))
	assert.Equal(t, 500*time.Millisecond, backoff(1))
	assert.Equal(t, 2*time.Second, backoff(3))
	assert.Equal(t, 10*time.Second, backoff(6))
	assert.Equal(t, 10*time.Second, backoff(50))
}

func TestStreamSub_DeliversThenReportsClose(t *testing.T) {
	opens := 0
	sub := newStreamSub(context.Background(), func(ctx context.Context) <-chan int {
		opens++
		ch := make(chan int, 1)
		ch <- opens
		close(ch)
		return ch
	})

	msg := sub.start()()
	v, ok := msg.(streamValueMsg[int])
	require.True(t, ok)
	assert.Equal(t, 1, v.value)
	assert.Same(t, sub, v.sub)

	_, ok = sub.received()().(streamClosedMsg[int])
	require.True(t, ok)

	require.NotNil(t, sub.closed(), "a live owner resubscribes")
	assert.Equal(t, 1, sub.attempt)

	msg = sub.retry()()
	v, ok = msg.(streamValueMsg[int])
	require.True(t, ok)
	assert.Equal(t, 2, v.value, "retry opens a fresh stream")

	sub.received()
	assert.Equal(t, 0, sub.attempt, "a value resets the backoff")
}

func TestStreamSub_StopsAfterOwnerCloses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := newStreamSub(ctx, func(ctx context.Context) <-chan int {
		ch := make(chan int)
		close(ch)
		return ch
	})
	sub.start()
	cancel()

	assert.Nil(t, sub.closed())
	assert.Nil(t, sub.retry())
}
