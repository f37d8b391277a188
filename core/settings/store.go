// ABOUTME: Settings store shared by every overlay consumer of one browser profile
// ABOUTME: In-memory snapshot with partial updates, subscriptions and ordered background persistence

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"reader-assist/core/domain"
	coreerrors "reader-assist/core/errors"
	"reader-assist/core/interfaces"
)

// StorageKey is the key the settings record is persisted under
const StorageKey = "reader:settings"

const writeTimeout = 5 * time.Second

// Listener is notified with the new snapshot after every change. Listeners
// run on the caller's goroutine and must not call Set themselves.
type Listener func(domain.Settings)

// Store owns the settings record. Memory is authoritative; storage is a
// best-effort mirror written in issue order by a single writer goroutine.
type Store struct {
	cache  interfaces.Cache
	logger interfaces.Logger

	// notifyMu serializes mutate+notify so listeners see changes in order
	notifyMu sync.Mutex

	mu        sync.RWMutex
	current   domain.Settings
	listeners map[uint64]Listener
	nextID    uint64
	pending   *domain.Settings
	closed    bool

	wake     chan struct{}
	flushReq chan chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a store holding the default settings and starts its writer.
// Call Init to load the persisted record.
func New(cache interfaces.Cache, logger interfaces.Logger) *Store {
	s := &Store{
		cache:     cache,
		logger:    logger,
		current:   domain.DefaultSettings(),
		listeners: make(map[uint64]Listener),
		wake:      make(chan struct{}, 1),
		flushReq:  make(chan chan struct{}),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.writer()
	return s
}

// Init loads the persisted record over defaults. Keys absent from the record
// keep their default. Storage failures are logged and the defaults are used.
func (s *Store) Init(ctx context.Context, defaults domain.Settings) domain.Settings {
	loaded := defaults

	data, err := s.cache.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, interfaces.ErrCacheMiss):
		s.logger.Debug("No persisted settings, using defaults", nil)
	case err != nil:
		s.logger.Warn("Failed to load settings, using defaults", map[string]interface{}{
			"key":   StorageKey,
			"error": err.Error(),
		})
	default:
		candidate := defaults
		if err := json.Unmarshal(data, &candidate); err != nil {
			s.logger.Warn("Persisted settings are unreadable, using defaults", map[string]interface{}{
				"key":   StorageKey,
				"error": err.Error(),
			})
		} else {
			loaded = candidate
		}
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.current = loaded
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(loaded)
	}
	return loaded
}

// Get returns the current settings snapshot
func (s *Store) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set merges patch into the current settings and returns the result. The
// in-memory copy is updated before Set returns; persistence happens in the
// background and its failures never reach the caller.
func (s *Store) Set(patch domain.SettingsPatch) domain.Settings {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	updated := patch.Apply(s.current)
	s.current = updated
	listeners := s.snapshotListeners()
	closed := s.closed
	if !closed {
		snapshot := updated
		s.pending = &snapshot
	}
	s.mu.Unlock()

	if closed {
		s.logger.Debug("Settings store torn down, change kept in memory only", nil)
	} else {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}

	for _, l := range listeners {
		l(updated)
	}
	return updated
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

// Flush blocks until every change issued before the call has been written
// (or has failed and been logged)
func (s *Store) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case s.flushReq <- reply:
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Teardown writes any pending change, stops the writer and drops all
// listeners. The store keeps serving Get afterwards.
func (s *Store) Teardown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})

	var err error
	select {
	case <-s.done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	s.mu.Lock()
	s.closed = true
	s.listeners = make(map[uint64]Listener)
	s.mu.Unlock()
	return err
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func (s *Store) writer() {
	defer close(s.done)
	for {
		select {
		case <-s.wake:
			s.persistPending()
		case reply := <-s.flushReq:
			s.persistPending()
			close(reply)
		case <-s.stop:
			s.persistPending()
			return
		}
	}
}

// persistPending writes the newest unwritten snapshot. Older snapshots that
// were superseded before the writer woke are skipped, which never reorders.
func (s *Store) persistPending() {
	s.mu.Lock()
	snapshot := s.pending
	s.pending = nil
	s.mu.Unlock()

	if snapshot == nil {
		return
	}

	if err := s.persist(*snapshot); err != nil {
		s.logger.Warn("Settings write failed, keeping in-memory copy", map[string]interface{}{
			"key":   StorageKey,
			"error": err.Error(),
		})
	}
}

func (s *Store) persist(snapshot domain.Settings) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return &coreerrors.PersistenceError{Key: StorageKey, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := s.cache.Set(ctx, StorageKey, data, 0); err != nil {
		return &coreerrors.PersistenceError{Key: StorageKey, Err: err}
	}
	return nil
}
