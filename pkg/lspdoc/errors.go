// Package lspdoc holds the sentinel error taxonomy shared by the document
// model and the LSP client/transport, so callers can test failure kinds with
// errors.Is regardless of which package raised them.
package lspdoc

import "errors"

var (
	// ErrInvalidRange is returned when caller-supplied offsets violate rope
	// or selection bounds.
	ErrInvalidRange = errors.New("lspdoc: invalid range")

	// ErrNotReady is returned when an LSP request is issued before the
	// client has completed its initialize handshake.
	ErrNotReady = errors.New("lspdoc: client not ready")

	// ErrTimeout is returned when a pending LSP request exceeds its budget.
	ErrTimeout = errors.New("lspdoc: request timed out")

	// ErrDisconnected is returned for all pending requests when the
	// transport socket closes.
	ErrDisconnected = errors.New("lspdoc: transport disconnected")

	// ErrParseError marks malformed JSON-RPC or an unexpected payload shape.
	ErrParseError = errors.New("lspdoc: parse error")

	// ErrCrossFileEditUnsupported is returned when a WorkspaceEdit targets
	// a file other than the one it was applied against.
	ErrCrossFileEditUnsupported = errors.New("lspdoc: workspace edit targets a different file")

	// ErrStale marks an internal condition: a response arrived for a
	// document version that a newer edit has already superseded. Not
	// surfaced to callers; used internally with errors.Is.
	ErrStale = errors.New("lspdoc: stale response")

	// ErrIllegalNesting is returned by the undo log when a transaction is
	// begun while one is already open.
	ErrIllegalNesting = errors.New("lspdoc: nested transaction")
)
