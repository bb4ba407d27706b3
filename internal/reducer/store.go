// Package reducer provides a small unidirectional state store: an immutable
// state value, a pure reduce function, and observers notified after every
// transition.
package reducer

import "sync"

// Func maps the current state and an incoming action to the next state.
// It must not mutate its input.
type Func[S, A any] func(state S, action A) S

// Store owns a state value for the lifetime of one screen.
type Store[S, A any] struct {
	mu        sync.Mutex
	state     S
	reduce    Func[S, A]
	observers []observer[S]
	nextID    int
}

type observer[S any] struct {
	id int
	fn func(S)
}

// NewStore creates a Store seeded with initial.
func NewStore[S, A any](initial S, reduce Func[S, A]) *Store[S, A] {
	return &Store[S, A]{state: initial, reduce: reduce}
}

// State returns the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs the action through the reducer, stores the result and
// notifies observers in subscription order. Returns the new state.
func (s *Store[S, A]) Dispatch(action A) S {
	s.mu.Lock()
	next := s.reduce(s.state, action)
	s.state = next
	observers := make([]observer[S], len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	// Observers run outside the lock so they may read State() or dispatch.
	for _, o := range observers {
		o.fn(next)
	}
	return next
}

// Subscribe registers fn to be called after each transition. The returned
// function removes the observer; calling it more than once is a no-op.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer[S]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}
