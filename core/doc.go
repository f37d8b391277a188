// Package core contains the business logic of the reader overlay.
// It is framework-agnostic and can be used without the HTTP API or CLI.
//
// The core package is organized into several sub-packages:
//
// - domain: settings, session state, chat transcript and reader view models
// - settings: the settings store shared by every overlay
// - session: per-overlay session state with subscriptions
// - transcript: the per-overlay append-only chat transcript
// - extractor: visible text extraction from the page content root
// - prompt: summary prompt templates and request assembly
// - toolbar: toolbar actions and the full-article summary pipeline
// - reader: page rendering, markdown export and the view cache
// - overlay: registry of mounted overlays
// - workers: render pool for batch export
// - errors: typed errors for extraction, persistence and validation failures
// - interfaces: contracts for external dependencies (cache, HTTP, logger, chat)
//
// # Design Principles
//
// - All external dependencies are injected via interfaces
// - In-memory state is authoritative; storage is a best-effort mirror
// - Listeners observe every change in order
//
// # Usage Example
//
//	store := settings.New(cache, logger)
//	store.Init(ctx, domain.DefaultSettings())
//
//	registry := overlay.NewRegistry(store, extractor.New(".page"), logger)
//	o, err := registry.Mount(view)
//	if err != nil {
//	    return err
//	}
//
//	outcome := o.SummarizeFullArticle()
//	transcript := o.Transcript.Current()
package core
