// ABOUTME: Registry of mounted reader overlays keyed by session id
// ABOUTME: Each overlay bundles session state, transcript and toolbar over the shared settings store

package overlay

import (
	"sort"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
	"reader-assist/core/extractor"
	"reader-assist/core/interfaces"
	"reader-assist/core/reader"
	"reader-assist/core/session"
	"reader-assist/core/toolbar"
	"reader-assist/core/transcript"
)

// Overlay is one mounted reader view
type Overlay struct {
	Session    *session.State
	Transcript *transcript.Store
	Toolbar    *toolbar.Controller

	view domain.ReaderView
	doc  *goquery.Document
}

// ID returns the session id of the overlay
func (o *Overlay) ID() string {
	return o.Session.ID()
}

// View returns the rendered article the overlay was mounted with
func (o *Overlay) View() domain.ReaderView {
	return o.view
}

// SummarizeFullArticle runs the toolbar action against the overlay's page
func (o *Overlay) SummarizeFullArticle() toolbar.SummaryOutcome {
	return o.Toolbar.SummarizeFullArticle(o.doc)
}

// Registry tracks mounted overlays
type Registry struct {
	settings  toolbar.SettingsSource
	extractor *extractor.Extractor
	logger    interfaces.Logger

	mu       sync.RWMutex
	overlays map[string]*Overlay
}

// NewRegistry creates an empty registry sharing one settings source
func NewRegistry(settings toolbar.SettingsSource, ext *extractor.Extractor, logger interfaces.Logger) *Registry {
	if ext == nil {
		ext = extractor.New("")
	}
	return &Registry{
		settings:  settings,
		extractor: ext,
		logger:    logger,
		overlays:  make(map[string]*Overlay),
	}
}

// Mount creates a session for a rendered view
func (r *Registry) Mount(view domain.ReaderView) (*Overlay, error) {
	doc, err := reader.Document(view)
	if err != nil {
		return nil, errors.WrapError(err, "parse reader view")
	}

	state := session.New(view.Article())
	messages := transcript.New()
	o := &Overlay{
		Session:    state,
		Transcript: messages,
		Toolbar:    toolbar.NewController(state, messages, r.settings, r.extractor, r.logger),
		view:       view,
		doc:        doc,
	}

	r.mu.Lock()
	r.overlays[o.ID()] = o
	count := len(r.overlays)
	r.mu.Unlock()

	r.logger.Info("Reader overlay mounted", map[string]interface{}{
		"session_id": o.ID(),
		"title":      view.Title,
		"mounted":    count,
	})
	return o, nil
}

// Lookup returns the overlay for id
func (r *Registry) Lookup(id string) (*Overlay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.overlays[id]
	if !ok {
		return nil, &errors.NotFoundError{Resource: "session", ID: id}
	}
	return o, nil
}

// Unmount tears the overlay down and forgets it
func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	o, ok := r.overlays[id]
	delete(r.overlays, id)
	r.mu.Unlock()

	if !ok {
		return &errors.NotFoundError{Resource: "session", ID: id}
	}
	o.Session.Teardown()
	o.Transcript.Teardown()

	r.logger.Info("Reader overlay unmounted", map[string]interface{}{
		"session_id": id,
	})
	return nil
}

// IDs returns the mounted session ids in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.overlays))
	for id := range r.overlays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of mounted overlays
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.overlays)
}

// UnmountAll tears down every overlay
func (r *Registry) UnmountAll() {
	for _, id := range r.IDs() {
		_ = r.Unmount(id)
	}
}
