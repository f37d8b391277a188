// ABOUTME: Per-page-view reader session state owned by one mounted overlay
// ABOUTME: Exposes independent field setters and change subscriptions

package session

import (
	"sync"

	"github.com/google/uuid"

	"reader-assist/core/domain"
)

// Listener receives the session snapshot after every change
type Listener func(domain.SessionState)

// State holds one reader session. Setters are independent primitives; composite
// transitions belong to the toolbar controller.
type State struct {
	id string

	// notifyMu keeps listener deliveries in mutation order
	notifyMu sync.Mutex

	mu        sync.RWMutex
	state     domain.SessionState
	listeners map[uint64]Listener
	nextID    uint64
}

// New mounts a session for article
func New(article domain.Article) *State {
	return &State{
		id:        uuid.NewString(),
		state:     domain.NewSessionState(article),
		listeners: make(map[uint64]Listener),
	}
}

// ID returns the session identifier
func (s *State) ID() string {
	return s.id
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetSettingStatus shows or hides the settings panel
func (s *State) SetSettingStatus(open bool) domain.SessionState {
	return s.update(func(st *domain.SessionState) { st.SettingStatus = open })
}

// SetArticle replaces the current article
func (s *State) SetArticle(article domain.Article) domain.SessionState {
	return s.update(func(st *domain.SessionState) { st.Article = article })
}

// SetTranslateOn toggles page translation
func (s *State) SetTranslateOn(on bool) domain.SessionState {
	return s.update(func(st *domain.SessionState) { st.TranslateOn = on })
}

// SetChatOn shows or hides the chat panel without touching the summary type
func (s *State) SetChatOn(on bool) domain.SessionState {
	return s.update(func(st *domain.SessionState) { st.ChatOn = on })
}

// SetSummaryType selects the summary mode without touching panel visibility
func (s *State) SetSummaryType(summaryType domain.SummaryType) domain.SessionState {
	return s.update(func(st *domain.SessionState) { st.SummaryType = summaryType })
}

// Update applies fn to the state as one change with a single notification
func (s *State) Update(fn func(*domain.SessionState)) domain.SessionState {
	return s.update(fn)
}

// Reset returns every field to its default, keeping the mounted article
func (s *State) Reset() domain.SessionState {
	return s.update(func(st *domain.SessionState) {
		*st = domain.NewSessionState(st.Article)
	})
}

// Subscribe registers a listener and returns a function that removes it
func (s *State) Subscribe(listener Listener) func() {
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

// Teardown drops all listeners. The state stays readable.
func (s *State) Teardown() {
	s.mu.Lock()
	s.listeners = make(map[uint64]Listener)
	s.mu.Unlock()
}

func (s *State) update(fn func(*domain.SessionState)) domain.SessionState {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	updated := s.state
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
