package overlay

import (
	"testing"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
)

type staticSettings struct{}

func (staticSettings) Get() domain.Settings { return domain.DefaultSettings() }

type mockLogger struct{}

func (mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (mockLogger) Info(msg string, fields map[string]interface{})  {}
func (mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (mockLogger) Error(msg string, fields map[string]interface{}) {}

func testView() domain.ReaderView {
	return domain.ReaderView{
		Title:   "Mounted Article",
		Content: `<div class="page"><p>Body of the mounted article.</p></div>`,
	}
}

func TestMountLookupUnmount(t *testing.T) {
	r := NewRegistry(staticSettings{}, nil, mockLogger{})

	o, err := r.Mount(testView())
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if o.Session.Snapshot().Article.Title != "Mounted Article" {
		t.Errorf("article = %+v", o.Session.Snapshot().Article)
	}

	got, err := r.Lookup(o.ID())
	if err != nil || got != o {
		t.Fatalf("Lookup = %v, %v", got, err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d", r.Len())
	}

	if err := r.Unmount(o.ID()); err != nil {
		t.Fatalf("Unmount failed: %v", err)
	}
	if _, err := r.Lookup(o.ID()); !errors.IsNotFound(err) {
		t.Errorf("Lookup after unmount err = %v", err)
	}
	if err := r.Unmount(o.ID()); !errors.IsNotFound(err) {
		t.Errorf("second Unmount err = %v", err)
	}
}

func TestOverlay_SummarizeFullArticle(t *testing.T) {
	r := NewRegistry(staticSettings{}, nil, mockLogger{})
	o, err := r.Mount(testView())
	if err != nil {
		t.Fatal(err)
	}

	out := o.SummarizeFullArticle()

	if out.Err != nil || out.Appended != 2 {
		t.Fatalf("outcome = %+v", out)
	}
	if got := o.Transcript.Current()[1].Content; got != "Body of the mounted article." {
		t.Errorf("user turn = %q", got)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	r := NewRegistry(staticSettings{}, nil, mockLogger{})
	a, _ := r.Mount(testView())
	b, _ := r.Mount(testView())

	a.Toolbar.ToggleChat()

	if b.Session.Snapshot().ChatOn {
		t.Error("toggling one session changed another")
	}
	if len(r.IDs()) != 2 {
		t.Errorf("IDs() = %v", r.IDs())
	}

	r.UnmountAll()
	if r.Len() != 0 {
		t.Errorf("Len() after UnmountAll = %d", r.Len())
	}
}
