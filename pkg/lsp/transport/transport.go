// Package transport implements the LSP wire layer (spec.md §4.7):
// single-threaded cooperative JSON-RPC framing over either a
// Content-Length-prefixed byte stream (stdio, the usual LSP transport)
// or a WebSocket connection, a pending-request table keyed by integer
// ID with a configurable timeout, and cooperative cancellation via
// `$/cancelRequest`.
//
// Grounded on the teacher's pkg/transport/websocket.go for the
// gorilla/websocket dial/upgrade idiom (reused here for the WebSocket
// framing mode) and pkg/transport/session_manager.go for the
// pending-request bookkeeping idiom, both generalized from the
// teacher's OT collaboration message envelope to JSON-RPC 2.0.
package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coreseekdev/loom/pkg/lspdoc"
)

// DefaultTimeout is the default budget for a pending request (spec.md §4.7).
const DefaultTimeout = 30 * time.Second

// Message is a JSON-RPC 2.0 envelope; exactly one of Method (request or
// notification) or Result/Error (response) is populated.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int            `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string { return fmt.Sprintf("lsp error %d: %s", e.Code, e.Message) }

// Framer reads and writes one Message at a time over a concrete wire
// format.
type Framer interface {
	ReadMessage() (*Message, error)
	WriteMessage(*Message) error
	Close() error
}

// pending is one outstanding request's wait slot.
type pending struct {
	resultCh  chan *Message
	cancelled bool
}

// Transport dispatches outbound requests/notifications, matches
// responses to pending slots by ID, and delivers unsolicited
// notifications/requests (e.g. `textDocument/publishDiagnostics`) to a
// handler. It is single-threaded: all public methods except the
// internal read loop are expected to be called from the document
// thread, consistent with spec.md §5's scheduling model.
type Transport struct {
	framer  Framer
	timeout time.Duration

	mu      sync.Mutex
	nextID  int
	pending map[int]*pending
	closed  bool

	OnNotification func(method string, params json.RawMessage)
	OnRequest      func(method string, params json.RawMessage) (json.RawMessage, *RPCError)
	OnDisconnect   func(err error)

	log *slog.Logger
}

// New wraps a Framer with pending-request tracking.
func New(f Framer, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Transport{framer: f, timeout: timeout, pending: make(map[int]*pending), log: slog.Default()}
}

// SetLogger replaces the transport's logger.
func (t *Transport) SetLogger(l *slog.Logger) { t.log = l }

// Run drives the read loop until the framer errors or Close is called.
// Per spec.md §5 this runs on its own cooperative task; completed
// messages are dispatched synchronously from within this loop, and
// callers relying on response delivery must not share mutable state
// without their own synchronization.
func (t *Transport) Run() {
	for {
		msg, err := t.framer.ReadMessage()
		if err != nil {
			t.disconnect(err)
			return
		}
		t.dispatch(msg)
	}
}

func (t *Transport) dispatch(msg *Message) {
	if msg.ID != nil && msg.Method == "" {
		t.mu.Lock()
		p, ok := t.pending[*msg.ID]
		if ok {
			delete(t.pending, *msg.ID)
		}
		t.mu.Unlock()
		if !ok || p.cancelled {
			return // unmatched or cancelled response is dropped silently
		}
		p.resultCh <- msg
		return
	}
	if msg.ID != nil && msg.Method != "" {
		if t.OnRequest != nil {
			result, rpcErr := t.OnRequest(msg.Method, msg.Params)
			resp := &Message{JSONRPC: "2.0", ID: msg.ID, Result: result, Error: rpcErr}
			_ = t.framer.WriteMessage(resp)
		}
		return
	}
	if t.OnNotification != nil {
		t.OnNotification(msg.Method, msg.Params)
	}
}

func (t *Transport) disconnect(err error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	slots := t.pending
	t.pending = make(map[int]*pending)
	t.mu.Unlock()

	for _, p := range slots {
		close(p.resultCh)
	}
	if t.log != nil {
		t.log.Warn("transport disconnected", "error", err, "pending_requests", len(slots))
	}
	if t.OnDisconnect != nil {
		t.OnDisconnect(err)
	}
}

// Call sends a request and blocks (cooperatively, via ctx) for its
// response, the caller's own cancellation, or the transport timeout.
func (t *Transport) Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, lspdoc.ErrDisconnected
	}
	id := t.nextID
	t.nextID++
	slot := &pending{resultCh: make(chan *Message, 1)}
	t.pending[id] = slot
	t.mu.Unlock()

	msg := &Message{JSONRPC: "2.0", ID: &id, Method: method, Params: raw}
	if err := t.framer.WriteMessage(msg); err != nil {
		t.removePending(id)
		return nil, err
	}

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	select {
	case resp, ok := <-slot.resultCh:
		if !ok {
			return nil, lspdoc.ErrDisconnected
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-timer.C:
		t.removePending(id)
		if t.log != nil {
			t.log.Warn("request timed out", "method", method, "id", id, "timeout", t.timeout)
		}
		return nil, lspdoc.ErrTimeout
	case <-ctx.Done():
		t.Cancel(id)
		return nil, ctx.Err()
	}
}

// Cancel marks a pending request cancelled and sends `$/cancelRequest`.
// A later response for that ID is dropped silently by dispatch.
// Idempotent per spec.md §5.
func (t *Transport) Cancel(id int) {
	t.mu.Lock()
	p, ok := t.pending[id]
	if ok {
		p.cancelled = true
	}
	t.mu.Unlock()
	if ok {
		_ = t.Notify("$/cancelRequest", map[string]int{"id": id})
	}
}

func (t *Transport) removePending(id int) {
	t.mu.Lock()
	delete(t.pending, id)
	t.mu.Unlock()
}

// Notify sends a one-way notification (no response expected).
func (t *Transport) Notify(method string, params interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return t.framer.WriteMessage(&Message{JSONRPC: "2.0", Method: method, Params: raw})
}

// Close tears down the underlying framer and fails every pending
// request with Disconnected.
func (t *Transport) Close() error {
	t.disconnect(nil)
	return t.framer.Close()
}

// --- Content-Length stream framing (stdio) ---------------------------------

// StreamFramer implements Framer over an `io.ReadWriteCloser` using the
// `Content-Length: N\r\n\r\n<N bytes>` framing LSP uses for stdio.
type StreamFramer struct {
	r      *bufio.Reader
	w      io.Writer
	closer io.Closer
	mu     sync.Mutex
}

// NewStreamFramer wraps a stdio-style pipe.
func NewStreamFramer(rwc io.ReadWriteCloser) *StreamFramer {
	return &StreamFramer{r: bufio.NewReader(rwc), w: rwc, closer: rwc}
}

// ReadMessage reads one Content-Length-prefixed JSON-RPC message.
func (f *StreamFramer) ReadMessage() (*Message, error) {
	contentLength := -1
	for {
		line, err := f.r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length:") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:")))
			if err != nil {
				return nil, err
			}
			contentLength = n
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("transport: missing Content-Length header")
	}
	buf := make([]byte, contentLength)
	if _, err := io.ReadFull(f.r, buf); err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(buf, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// WriteMessage writes one Content-Length-prefixed JSON-RPC message.
func (f *StreamFramer) WriteMessage(msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := fmt.Fprintf(f.w, "Content-Length: %d\r\n\r\n", len(body)); err != nil {
		return err
	}
	_, err = f.w.Write(body)
	return err
}

// Close closes the underlying stream.
func (f *StreamFramer) Close() error { return f.closer.Close() }

// --- WebSocket framing -------------------------------------------------------

// WSFramer implements Framer over a gorilla/websocket connection, one
// JSON-RPC message per WebSocket text frame.
type WSFramer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewWSFramer wraps an established WebSocket connection.
func NewWSFramer(conn *websocket.Conn) *WSFramer {
	return &WSFramer{conn: conn}
}

// DialWS dials an LSP-over-WebSocket endpoint.
func DialWS(ctx context.Context, url string) (*WSFramer, error) {
	dialer := websocket.Dialer{}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return NewWSFramer(conn), nil
}

// ReadMessage reads one JSON-RPC message from a WebSocket frame.
func (f *WSFramer) ReadMessage() (*Message, error) {
	var msg Message
	if err := f.conn.ReadJSON(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// WriteMessage writes one JSON-RPC message as a WebSocket frame.
func (f *WSFramer) WriteMessage(msg *Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conn.WriteJSON(msg)
}

// Close closes the WebSocket connection.
func (f *WSFramer) Close() error { return f.conn.Close() }
