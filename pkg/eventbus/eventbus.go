// Package eventbus is the document model's fine-grained change
// notification bus. It is grounded on the teacher's
// pkg/session/pubsub.go subscription-table shape (an ID'd Subscription
// per listener, tracked in a slice), but specialized to a fixed, closed
// set of document event kinds (spec.md §4.9) rather than the teacher's
// open file-path channel strings, and made synchronous: the teacher's
// PubSub fans events out over goroutines and channels for a multi-client
// server; this bus has exactly one consumer (the host UI) on the
// document's own thread, so emission happens directly on the caller's
// stack per the single-threaded cooperative model (spec.md §5).
package eventbus

import "github.com/google/uuid"

// Kind enumerates the fixed set of document event kinds. Unlike the
// teacher's arbitrary channel strings, this is a closed set.
type Kind string

const (
	TextChanged             Kind = "TextChanged"
	SelectionChanged        Kind = "SelectionChanged"
	FoldsChanged            Kind = "FoldsChanged"
	DecorationsChanged      Kind = "DecorationsChanged"
	DiagnosticsChanged      Kind = "DiagnosticsChanged"
	SemanticTokensChanged   Kind = "SemanticTokensChanged"
	SearchHighlightsChanged Kind = "SearchHighlightsChanged"
	InlayHintsChanged       Kind = "InlayHintsChanged"
	DocumentColorsChanged   Kind = "DocumentColorsChanged"
	HighlightsChanged       Kind = "HighlightsChanged"
	GhostTextChanged        Kind = "GhostTextChanged"
)

// Event carries a Kind and an optional payload (e.g. a dirty range for
// TextChanged, or a version for SemanticTokensChanged).
type Event struct {
	Kind    Kind
	Payload interface{}
}

// Listener receives events synchronously on the emitting goroutine. Per
// spec.md §4.9, a listener must not issue further core calls except to
// read state.
type Listener func(Event)

type subscription struct {
	id       string
	kind     Kind // "" subscribes to every kind
	listener Listener
}

// Bus is a synchronous fan-out publisher for document events.
type Bus struct {
	subs []*subscription
}

// New creates an empty event bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers listener for events of kind, or for every kind if
// kind is "". It returns a subscription handle for Unsubscribe.
func (b *Bus) Subscribe(kind Kind, listener Listener) string {
	id := uuid.New().String()
	b.subs = append(b.subs, &subscription{id: id, kind: kind, listener: listener})
	return id
}

// Unsubscribe removes a previously registered listener by handle.
func (b *Bus) Unsubscribe(id string) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Emit synchronously calls every matching listener in subscription order.
func (b *Bus) Emit(evt Event) {
	for _, s := range b.subs {
		if s.kind == "" || s.kind == evt.Kind {
			s.listener(evt)
		}
	}
}
