package usermessage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_EmitThenShown(t *testing.T) {
	h := NewHolder()
	_, ok := h.Current()
	assert.False(t, ok)

	msg := h.Emit("Saved")
	require.NotEmpty(t, msg.ID)

	got, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, msg, got)

	h.MessageShown(msg.ID)
	_, ok = h.Current()
	assert.False(t, ok)
}

func TestHolder_EmitReplacesPending(t *testing.T) {
	h := NewHolder()
	first := h.Emit("first")
	second := h.Emit("second")
	assert.NotEqual(t, first.ID, second.ID)

	// Acknowledging the replaced message must not clear the newer one.
	h.MessageShown(first.ID)
	got, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "second", got.Text)
}

func TestHolder_TakeIsExactlyOnce(t *testing.T) {
	h := NewHolder()
	h.Emit("once")

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := h.Take(); ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, taken)
}
