package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	resubscribeBase = 250 * time.Millisecond
	resubscribeMax  = 10 * time.Second
)

// streamSub feeds a repository stream into the bubbletea loop one value at
// a time. A stream that ends while its context is live is reopened with
// exponential backoff.
type streamSub[T any] struct {
	ctx     context.Context
	open    func(ctx context.Context) <-chan T
	ch      <-chan T
	attempt int
}

type streamValueMsg[T any] struct {
	sub   *streamSub[T]
	value T
}

type streamClosedMsg[T any] struct {
	sub *streamSub[T]
}

type streamRetryMsg[T any] struct {
	sub *streamSub[T]
}

// Stream messages go to every view; each view ignores subs it does not own.
func (streamValueMsg[T]) isStackMsg()  {}
func (streamClosedMsg[T]) isStackMsg() {}
func (streamRetryMsg[T]) isStackMsg()  {}

func newStreamSub[T any](ctx context.Context, open func(ctx context.Context) <-chan T) *streamSub[T] {
	return &streamSub[T]{ctx: ctx, open: open}
}

// start subscribes and waits for the first value.
func (s *streamSub[T]) start() tea.Cmd {
	s.ch = s.open(s.ctx)
	return s.next()
}

// next waits for one value.
func (s *streamSub[T]) next() tea.Cmd {
	ch := s.ch
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return streamClosedMsg[T]{sub: s}
		}
		return streamValueMsg[T]{sub: s, value: v}
	}
}

// received resets the backoff and waits for the next value.
func (s *streamSub[T]) received() tea.Cmd {
	s.attempt = 0
	return s.next()
}

// closed schedules a resubscribe unless the owner has gone away.
func (s *streamSub[T]) closed() tea.Cmd {
	if s.ctx.Err() != nil {
		return nil
	}
	delay := backoff(s.attempt)
	s.attempt++
	return tea.Tick(delay, func(time.Time) tea.Msg { return streamRetryMsg[T]{sub: s} })
}

// retry reopens the stream if the owner is still alive.
func (s *streamSub[T]) retry() tea.Cmd {
	if s.ctx.Err() != nil {
		return nil
	}
	return s.start()
}

func backoff(attempt int) time.Duration {
	d := resubscribeBase
	for i := 0; i < attempt && d < resubscribeMax; i++ {
		d *= 2
	}
	return min(d, resubscribeMax)
}
