package session

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ========== Content Storage Interface ==========

// ContentModel represents a file's content as loaded from or about to
// be saved to storage.
type ContentModel struct {
	Name     string
	Type     string // "file", "directory"
	Content  string
	MimeType string
	Size     int64
	Created  string
	Modified string
	Path     string
	ReadOnly bool
}

// GetOptions specifies options for getting content.
type GetOptions struct {
	Format string
}

// SaveOptions specifies options for saving content.
type SaveOptions struct {
	Overwrite     bool
	CreateParents bool
}

// ContentItem represents an item in a directory listing.
type ContentItem struct {
	Name     string
	Path     string
	Type     string
	MimeType string
	Size     int64
	Modified string
}

// ContentStorage backs a session's open/save lifecycle: loading a
// file's initial text to seed a document.Document and persisting it
// back out on save. The core document engine itself persists nothing
// (spec.md §6); this is the host-side storage a session manager needs
// to actually open and save files.
type ContentStorage interface {
	List(ctx context.Context, path string) ([]*ContentItem, error)
	Get(ctx context.Context, contentPath string, options *GetOptions) (*ContentModel, error)
	Save(ctx context.Context, contentPath string, model *ContentModel, options *SaveOptions) (*ContentModel, error)
	Delete(ctx context.Context, contentPath string) error
	CheckExists(ctx context.Context, contentPath string) (bool, error)
}

// MemoryContentStorage is an in-memory ContentStorage, useful for
// tests and for untitled buffers that have no backing file yet.
type MemoryContentStorage struct {
	mu       sync.RWMutex
	contents map[string]*ContentModel
}

// NewMemoryContentStorage creates an empty in-memory store.
func NewMemoryContentStorage() *MemoryContentStorage {
	return &MemoryContentStorage{contents: make(map[string]*ContentModel)}
}

// List returns the content items whose path is at or under path.
func (m *MemoryContentStorage) List(ctx context.Context, path string) ([]*ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := path
	if path != "" && !strings.HasSuffix(path, "/") {
		prefix += "/"
	}

	var items []*ContentItem
	for p, content := range m.contents {
		if p == path || (len(p) > len(path) && strings.HasPrefix(p, prefix)) {
			items = append(items, &ContentItem{
				Name: content.Name, Path: content.Path, Type: content.Type,
				MimeType: content.MimeType, Size: content.Size, Modified: content.Modified,
			})
		}
	}
	return items, nil
}

// Get retrieves content at the given path.
func (m *MemoryContentStorage) Get(ctx context.Context, contentPath string, options *GetOptions) (*ContentModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.contents[contentPath]
	if !ok {
		return nil, ErrContentNotFound
	}
	return content, nil
}

// Save saves content at the given path.
func (m *MemoryContentStorage) Save(ctx context.Context, contentPath string, model *ContentModel, options *SaveOptions) (*ContentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	model.Path = contentPath
	model.Modified = time.Now().Format(time.RFC3339)
	if model.Created == "" {
		model.Created = model.Modified
	}
	m.contents[contentPath] = model
	return model, nil
}

// Delete deletes content at the given path.
func (m *MemoryContentStorage) Delete(ctx context.Context, contentPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contents, contentPath)
	return nil
}

// CheckExists checks if content exists at the given path.
func (m *MemoryContentStorage) CheckExists(ctx context.Context, contentPath string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.contents[contentPath]
	return ok, nil
}

// ========== Error Definitions ==========

var (
	ErrContentNotFound = &SessionError{Code: "not_found", Message: "content not found"}
	ErrSessionNotFound = &SessionError{Code: "session_not_found", Message: "session not found"}
	ErrAlreadyExists   = &SessionError{Code: "already_exists", Message: "already exists"}
)

// SessionError represents a session-related error.
type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string { return e.Message }
