// Package stream implements a replay-latest publisher: subscribers receive
// the most recent value immediately, then every later value in publish order.
package stream

import (
	"context"
	"sync"
)

// Publisher fans values out to subscribers. Each subscriber has its own FIFO
// queue, so a slow reader never blocks Publish and never misses a value.
type Publisher[T any] struct {
	mu     sync.Mutex
	latest T
	has    bool
	closed bool
	subs   map[uint64]*subscription[T]
	nextID uint64

	// onChange, if set, is called with the live subscriber count.
	onChange func(n int)
}

// Option configures a Publisher.
type Option[T any] func(*Publisher[T])

// WithSubscriberGauge reports the subscriber count after every change. fn is
// called with the publisher locked and must not call back into it.
func WithSubscriberGauge[T any](fn func(n int)) Option[T] {
	return func(p *Publisher[T]) { p.onChange = fn }
}

func NewPublisher[T any](opts ...Option[T]) *Publisher[T] {
	p := &Publisher[T]{subs: make(map[uint64]*subscription[T])}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish records v as the latest value and enqueues it for every subscriber.
// Publishing after Close is a no-op.
func (p *Publisher[T]) Publish(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.latest = v
	p.has = true
	for _, s := range p.subs {
		s.enqueue(v)
	}
}

// Latest returns the most recently published value.
func (p *Publisher[T]) Latest() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest, p.has
}

// Subscribe returns a channel that first yields the latest value (if any),
// then every subsequent Publish. The channel is closed when ctx is done or
// the publisher is closed; pending values are still delivered on Close.
func (p *Publisher[T]) Subscribe(ctx context.Context) <-chan T {
	out := make(chan T)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		close(out)
		return out
	}
	p.nextID++
	id := p.nextID
	s := &subscription[T]{
		out:    out,
		notify: make(chan struct{}, 1),
	}
	if p.has {
		s.queue = append(s.queue, p.latest)
		s.signal()
	}
	p.subs[id] = s
	p.reportCount(len(p.subs))
	p.mu.Unlock()

	go func() {
		s.pump(ctx)
		p.remove(id)
	}()
	return out
}

// Close ends every subscription after its queued values are delivered.
func (p *Publisher[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, s := range p.subs {
		s.finish()
	}
}

// Subscribers returns the current subscriber count.
func (p *Publisher[T]) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func (p *Publisher[T]) remove(id uint64) {
	p.mu.Lock()
	delete(p.subs, id)
	p.reportCount(len(p.subs))
	p.mu.Unlock()
}

// reportCount must run with p.mu held so reports arrive in change order.
func (p *Publisher[T]) reportCount(n int) {
	if p.onChange != nil {
		p.onChange(n)
	}
}

type subscription[T any] struct {
	mu     sync.Mutex
	queue  []T
	done   bool
	notify chan struct{}
	out    chan T
}

func (s *subscription[T]) enqueue(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()
	s.signal()
}

func (s *subscription[T]) finish() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
	s.signal()
}

func (s *subscription[T]) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// pump moves queued values to out until ctx ends or the publisher closes.
func (s *subscription[T]) pump(ctx context.Context) {
	defer close(s.out)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.notify:
		}

		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				done := s.done
				s.mu.Unlock()
				if done {
					return
				}
				break
			}
			v := s.queue[0]
			var zero T
			s.queue[0] = zero
			s.queue = s.queue[1:]
			s.mu.Unlock()

			select {
			case s.out <- v:
			case <-ctx.Done():
				return
			}
		}
	}
}
