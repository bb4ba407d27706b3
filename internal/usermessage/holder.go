// Package usermessage holds at most one pending message for the user.
package usermessage

import (
	"sync"

	"github.com/google/uuid"
)

// Message is a short notice shown once, then cleared.
type Message struct {
	ID   string
	Text string
}

// Holder is a single-slot message store. Emitting replaces any message that
// has not been shown yet.
type Holder struct {
	mu      sync.Mutex
	current *Message
}

func NewHolder() *Holder {
	return &Holder{}
}

// Emit stores text as the pending message and returns it.
func (h *Holder) Emit(text string) Message {
	msg := Message{ID: uuid.NewString(), Text: text}
	h.mu.Lock()
	h.current = &msg
	h.mu.Unlock()
	return msg
}

// Current returns the pending message, if any.
func (h *Holder) Current() (Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return Message{}, false
	}
	return *h.current, true
}

// MessageShown clears the slot if id is still the pending message. A stale
// id leaves a newer message in place.
func (h *Holder) MessageShown(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil && h.current.ID == id {
		h.current = nil
	}
}

// Take returns the pending message and clears the slot in one step.
func (h *Holder) Take() (Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return Message{}, false
	}
	msg := *h.current
	h.current = nil
	return msg, true
}
