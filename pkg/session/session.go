// Package session tracks the set of open documents and pairs each one
// with its LSP client connection, per SPEC_FULL.md's session registry
// role. It is grounded on the teacher's pkg/session.SimpleSession /
// Manager shape (one session per doc ID, a manager keyed by doc ID),
// generalized from the teacher's OT-document-plus-subscriber-channel
// session to a document.Document-plus-lsp/client.Client pair; the
// teacher's per-session pub/sub is dropped in favor of subscribing
// directly to the document's own pkg/eventbus.Bus.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/coreseekdev/loom/pkg/document"
	"github.com/coreseekdev/loom/pkg/lsp/client"
)

// Session pairs one open document with its (optional) LSP connection.
type Session struct {
	URI  string
	Doc  *document.Document
	LSP  *client.Client // nil until the host attaches an LSP connection
	Lang string
}

// Manager is the registry of open sessions, keyed by URI.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	storage  ContentStorage
}

// NewManager creates an empty registry backed by storage (use
// NewMemoryContentStorage for untitled/test buffers).
func NewManager(storage ContentStorage) *Manager {
	return &Manager{sessions: make(map[string]*Session), storage: storage}
}

// Open loads uri's content via storage, creates its Document, and
// registers the session. If lsp is non-nil, it also performs
// textDocument/didOpen against it.
func (m *Manager) Open(ctx context.Context, uri, languageID string, lsp *client.Client) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[uri]; exists {
		return nil, ErrAlreadyExists
	}

	content, err := m.storage.Get(ctx, uri, nil)
	text := ""
	if err == nil {
		text = content.Content
	}

	doc := document.New(uri, text)
	sess := &Session{URI: uri, Doc: doc, LSP: lsp, Lang: languageID}

	if lsp != nil {
		if err := lsp.OpenFile(doc, languageID); err != nil {
			return nil, err
		}
	}

	m.sessions[uri] = sess
	return sess, nil
}

// Get retrieves a session by URI.
func (m *Manager) Get(uri string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[uri]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Save flushes the session's document text back to storage.
func (m *Manager) Save(ctx context.Context, uri string) error {
	sess, err := m.Get(uri)
	if err != nil {
		return err
	}
	_, err = m.storage.Save(ctx, uri, &ContentModel{Name: uri, Type: "file", Content: sess.Doc.Text()}, nil)
	return err
}

// Close sends didClose (if an LSP client is attached) and removes the
// session from the registry.
func (m *Manager) Close(ctx context.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[uri]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.LSP != nil {
		if err := sess.LSP.CloseFile(uri); err != nil {
			return fmt.Errorf("session: didClose %s: %w", uri, err)
		}
	}
	delete(m.sessions, uri)
	return nil
}

// List returns every open session's URI.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uris := make([]string, 0, len(m.sessions))
	for uri := range m.sessions {
		uris = append(uris, uri)
	}
	return uris
}
