// ABOUTME: Append-only chat transcript store backing the visible conversation
// ABOUTME: Copy-on-write so snapshots handed to readers never change underneath them

package transcript

import (
	"sync"

	"reader-assist/core/domain"
)

// Listener receives the full transcript after every change
type Listener func(domain.Transcript)

// Store holds the ordered conversation for one reader session
type Store struct {
	notifyMu sync.Mutex

	mu        sync.RWMutex
	messages  domain.Transcript
	listeners map[uint64]Listener
	nextID    uint64
}

// New creates an empty transcript
func New() *Store {
	return &Store{
		messages:  domain.Transcript{},
		listeners: make(map[uint64]Listener),
	}
}

// Append adds msgs in order and returns the new full sequence
func (s *Store) Append(msgs ...domain.ChatMessage) domain.Transcript {
	return s.swap(func(current domain.Transcript) domain.Transcript {
		next := make(domain.Transcript, 0, len(current)+len(msgs))
		next = append(next, current...)
		return append(next, msgs...)
	})
}

// Current returns the transcript snapshot. Callers must not modify it.
func (s *Store) Current() domain.Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messages
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Reset starts a new conversation. Earlier snapshots are unaffected.
func (s *Store) Reset() domain.Transcript {
	return s.swap(func(domain.Transcript) domain.Transcript {
		return domain.Transcript{}
	})
}

// Subscribe registers a listener and returns a function that removes it
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Teardown drops all listeners
func (s *Store) Teardown() {
	s.mu.Lock()
	s.listeners = make(map[uint64]Listener)
	s.mu.Unlock()
}

func (s *Store) swap(next func(domain.Transcript) domain.Transcript) domain.Transcript {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.messages = next(s.messages)
	updated := s.messages
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(updated)
	}
	return updated
}
