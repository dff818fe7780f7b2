// Package client implements the typed LSP client state machine
// (spec.md §4.8): initialize/shutdown lifecycle, document open/change/
// close, the completion/hover/signatureHelp/codeAction/documentColor/
// inlayHint/semanticTokens/foldingRange/documentHighlight request set,
// and WorkspaceEdit application through the document model's undo
// transaction.
//
// Grounded on the teacher's small pkg/ot client dispatch surface (a
// thin typed wrapper issuing JSON-RPC-shaped calls and applying the
// result to a document), generalized from the teacher's bespoke OT
// message set to the real `textDocument/*` LSP methods, and on
// pkg/concordia's builder for "apply a batch of edits as one undo
// step" — reused here as the shape WorkspaceEdit application takes.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/coreseekdev/loom/pkg/document"
	"github.com/coreseekdev/loom/pkg/fold"
	"github.com/coreseekdev/loom/pkg/highlight"
	"github.com/coreseekdev/loom/pkg/lsp/transport"
	"github.com/coreseekdev/loom/pkg/lspdoc"
)

// State is the client's lifecycle state (spec.md §4.8).
type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
	Reconnecting
	ShuttingDown
	Exited
)

// DebounceWindow is how long didChange flushing waits to coalesce
// contiguous dirty regions (spec.md §4.8).
const DebounceWindow = 100 * time.Millisecond

// Position is a zero-based LSP position whose Character counts UTF-16
// code units within its line; lineCol and offsetOf convert between it
// and the document model's rune-based offsets.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// TextEdit is one replacement against a document's rope offsets.
type TextEdit struct {
	Start, End int
	NewText    string
}

// WorkspaceEdit targets a single URI with a batch of text edits.
type WorkspaceEdit struct {
	URI   string
	Edits []TextEdit
}

// CompletionItem is one completion candidate.
type CompletionItem struct {
	Label           string
	Kind            string
	Detail          string
	InsertText      string
	ImportURI       string
	SortText        string
	AdditionalEdits []TextEdit
}

// HoverResult is a hover response.
type HoverResult struct {
	Markdown   string
	Diagnostic *document.Diagnostic
}

// SignatureParameter is one parameter of a SignatureHelp response.
type SignatureParameter struct {
	LabelStart, LabelEnd int
	Documentation        string
}

// SignatureHelp is a signature-help response.
type SignatureHelp struct {
	Label           string
	Documentation   string
	Parameters      []SignatureParameter
	ActiveParameter int
}

// CodeAction is either an inline edit or a server command.
type CodeAction struct {
	Title   string
	Edit    *WorkspaceEdit
	Command string
}

// Capabilities holds the subset of the server's negotiated
// capabilities the client consults.
type Capabilities struct {
	TextDocumentSyncFull bool
	TokenTypes           []string
	TokenModifiers       []string
}

type docState struct {
	version    int
	hoverCache map[[2]int]HoverResult
}

// Client is the LSP client state machine bound to one transport.
type Client struct {
	t     *transport.Transport
	state State
	caps  Capabilities
	docs  map[string]*docState

	log *slog.Logger
}

// New creates a client in the Uninitialized state.
func New(t *transport.Transport) *Client {
	return &Client{t: t, state: Uninitialized, docs: make(map[string]*docState), log: slog.Default()}
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(l *slog.Logger) { c.log = l }

// State returns the current lifecycle state.
func (c *Client) State() State { return c.state }

func (c *Client) requireReady() error {
	if c.state != Ready {
		return lspdoc.ErrNotReady
	}
	return nil
}

// Initialize performs the initialize/initialized handshake. Only legal
// in Uninitialized (or Reconnecting, to re-establish after a
// disconnect).
func (c *Client) Initialize(ctx context.Context, rootURI string) (Capabilities, error) {
	if c.state != Uninitialized && c.state != Reconnecting {
		return Capabilities{}, lspdoc.ErrNotReady
	}
	c.state = Initializing

	result, err := c.t.Call(ctx, "initialize", map[string]interface{}{
		"processId": nil,
		"rootUri":   rootURI,
		"capabilities": map[string]interface{}{
			"textDocument": map[string]interface{}{
				"synchronization":     map[string]bool{"didSave": true},
				"completion":          map[string]bool{},
				"hover":               map[string]bool{},
				"signatureHelp":       map[string]bool{},
				"codeAction":          map[string]bool{},
				"colorProvider":       true,
				"inlayHint":           map[string]bool{},
				"semanticTokens":      map[string]bool{},
				"foldingRange":        map[string]bool{},
				"documentHighlight":   map[string]bool{},
			},
		},
	})
	if err != nil {
		c.state = Uninitialized
		return Capabilities{}, err
	}

	var raw struct {
		Capabilities struct {
			TextDocumentSync int `json:"textDocumentSync"`
			SemanticTokensProvider struct {
				Legend struct {
					TokenTypes     []string `json:"tokenTypes"`
					TokenModifiers []string `json:"tokenModifiers"`
				} `json:"legend"`
			} `json:"semanticTokensProvider"`
		} `json:"capabilities"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		c.state = Uninitialized
		return Capabilities{}, lspdoc.ErrParseError
	}

	c.caps = Capabilities{
		TextDocumentSyncFull: raw.Capabilities.TextDocumentSync == 1,
		TokenTypes:           raw.Capabilities.SemanticTokensProvider.Legend.TokenTypes,
		TokenModifiers:       raw.Capabilities.SemanticTokensProvider.Legend.TokenModifiers,
	}

	if err := c.t.Notify("initialized", map[string]interface{}{}); err != nil {
		c.state = Uninitialized
		return Capabilities{}, err
	}
	c.state = Ready
	if c.log != nil {
		c.log.Info("lsp client ready", "root_uri", rootURI, "sync_full", c.caps.TextDocumentSyncFull)
	}
	return c.caps, nil
}

// Shutdown transitions Ready -> ShuttingDown and issues `shutdown`.
func (c *Client) Shutdown(ctx context.Context) error {
	if c.state != Ready {
		return lspdoc.ErrNotReady
	}
	c.state = ShuttingDown
	_, err := c.t.Call(ctx, "shutdown", nil)
	return err
}

// Exit issues `exit` and transitions to Exited, closing the transport.
func (c *Client) Exit() error {
	if c.state != ShuttingDown {
		return lspdoc.ErrNotReady
	}
	_ = c.t.Notify("exit", nil)
	c.state = Exited
	return c.t.Close()
}

// --- Document lifecycle -----------------------------------------------------

// OpenFile sends `textDocument/didOpen` and begins tracking the
// document's version and per-position caches.
func (c *Client) OpenFile(doc *document.Document, languageID string) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	c.docs[doc.URI] = &docState{version: 1, hoverCache: make(map[[2]int]HoverResult)}
	return c.t.Notify("textDocument/didOpen", map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri":        doc.URI,
			"languageId": languageID,
			"version":    1,
			"text":       doc.Text(),
		},
	})
}

// CloseFile sends `textDocument/didClose` and stops tracking the
// document.
func (c *Client) CloseFile(uri string) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	delete(c.docs, uri)
	return c.t.Notify("textDocument/didClose", map[string]interface{}{
		"textDocument": map[string]interface{}{"uri": uri},
	})
}

// FlushDidChange sends the document's accumulated dirty region (if any)
// as one `textDocument/didChange`, using incremental sync unless the
// server declared full-document sync, and bumps the per-file version
// counter. Callers are expected to invoke this at most once per
// DebounceWindow.
func (c *Client) FlushDidChange(doc *document.Document) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	ds, ok := c.docs[doc.URI]
	if !ok {
		return fmt.Errorf("client: %s was never opened", doc.URI)
	}
	dirty := doc.FlushDirty()
	if dirty == nil {
		return nil
	}
	ds.version++
	ds.hoverCache = make(map[[2]int]HoverResult) // any edit invalidates hover cache

	var changes []map[string]interface{}
	if c.caps.TextDocumentSyncFull {
		changes = []map[string]interface{}{{"text": doc.Text()}}
	} else {
		startLine, startCol := lineCol(doc, dirty.Start)
		endLine, endCol := lineCol(doc, dirty.EndNew-dirty.InsertedLength)
		changes = []map[string]interface{}{{
			"range": map[string]interface{}{
				"start": map[string]int{"line": startLine, "character": startCol},
				"end":   map[string]int{"line": endLine, "character": endCol},
			},
			"text": doc.Text()[dirty.Start:dirty.EndNew],
		}}
	}

	return c.t.Notify("textDocument/didChange", map[string]interface{}{
		"textDocument":   map[string]interface{}{"uri": doc.URI, "version": ds.version},
		"contentChanges": changes,
	})
}

// lineCol converts a rune offset to an LSP (line, UTF-16 character)
// position. LSP positions are UTF-16 code-unit offsets within their
// line, not rune offsets, so both the line start and the target offset
// are converted through the rope's UTF-16 table before subtracting —
// otherwise a line containing an astral-plane character before offset
// would report the wrong column.
func lineCol(doc *document.Document, offset int) (int, int) {
	r := doc.Rope()
	line := r.LineAtChar(offset)
	lineStartUTF16 := r.CharToUTF16Offset(r.LineStart(line))
	return line, r.CharToUTF16Offset(offset) - lineStartUTF16
}

// offsetOf converts an LSP (line, UTF-16 character) position back to a
// rune offset, the inverse of lineCol.
func offsetOf(doc *document.Document, pos Position) int {
	r := doc.Rope()
	lineStartUTF16 := r.CharToUTF16Offset(r.LineStart(pos.Line))
	return r.UTF16OffsetToChar(lineStartUTF16 + pos.Character)
}

// --- Typed requests ----------------------------------------------------------

// Completion requests completions at position, scoring results locally
// by prefix match against the word immediately preceding the cursor,
// breaking ties by server sortText then label length.
func (c *Client) Completion(ctx context.Context, doc *document.Document, pos Position) ([]CompletionItem, error) {
	if err := c.requireReady(); err != nil {
		return nil, err
	}
	result, err := c.t.Call(ctx, "textDocument/completion", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
		"position":     map[string]int{"line": pos.Line, "character": pos.Character},
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Items []struct {
			Label      string `json:"label"`
			Kind       string `json:"kind"`
			Detail     string `json:"detail"`
			InsertText string `json:"insertText"`
			SortText   string `json:"sortText"`
		} `json:"items"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, lspdoc.ErrParseError
	}

	prefix := wordBeforeCursor(doc, offsetOf(doc, pos))
	items := make([]CompletionItem, 0, len(raw.Items))
	for _, it := range raw.Items {
		if prefix != "" && !hasPrefixFold(it.Label, prefix) {
			continue
		}
		items = append(items, CompletionItem{
			Label: it.Label, Kind: it.Kind, Detail: it.Detail,
			InsertText: it.InsertText, SortText: it.SortText,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortText != items[j].SortText {
			return items[i].SortText < items[j].SortText
		}
		return len(items[i].Label) < len(items[j].Label)
	})
	return items, nil
}

func wordBeforeCursor(doc *document.Document, offset int) string {
	line := doc.Rope().LineAtChar(offset)
	lineStart := doc.Rope().LineStart(line)
	text := doc.Rope().Line(line)
	col := offset - lineStart
	if col > len(text) {
		col = len(text)
	}
	start := col
	for start > 0 && isIdentRune(rune(text[start-1])) {
		start--
	}
	return text[start:col]
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func hasPrefixFold(label, prefix string) bool {
	if len(prefix) > len(label) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := label[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// CompletionResolve sends a previously returned item to
// `completionItem/resolve` and copies the reply's detail into
// item.Detail. Documentation and additional text edits in the reply are
// not read; AdditionalEdits is left as it was.
func (c *Client) CompletionResolve(ctx context.Context, item CompletionItem) (CompletionItem, error) {
	if err := c.requireReady(); err != nil {
		return item, err
	}
	result, err := c.t.Call(ctx, "completionItem/resolve", map[string]interface{}{"label": item.Label})
	if err != nil {
		return item, err
	}
	var raw struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return item, lspdoc.ErrParseError
	}
	item.Detail = raw.Detail
	return item, nil
}

// Hover requests hover text at position, caching per (line, column)
// until the next edit invalidates the cache.
func (c *Client) Hover(ctx context.Context, doc *document.Document, pos Position) (HoverResult, error) {
	if err := c.requireReady(); err != nil {
		return HoverResult{}, err
	}
	ds := c.docs[doc.URI]
	key := [2]int{pos.Line, pos.Character}
	if ds != nil {
		if cached, ok := ds.hoverCache[key]; ok {
			return cached, nil
		}
	}

	result, err := c.t.Call(ctx, "textDocument/hover", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
		"position":     map[string]int{"line": pos.Line, "character": pos.Character},
	})
	if err != nil {
		return HoverResult{}, err
	}
	var raw struct {
		Contents struct {
			Value string `json:"value"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return HoverResult{}, lspdoc.ErrParseError
	}
	hover := HoverResult{Markdown: raw.Contents.Value}
	if ds != nil {
		ds.hoverCache[key] = hover
	}
	return hover, nil
}

// SignatureHelp requests signature help at position. An empty
// parameter list signals the caller to dismiss the popup.
func (c *Client) SignatureHelp(ctx context.Context, doc *document.Document, pos Position) (SignatureHelp, error) {
	if err := c.requireReady(); err != nil {
		return SignatureHelp{}, err
	}
	result, err := c.t.Call(ctx, "textDocument/signatureHelp", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
		"position":     map[string]int{"line": pos.Line, "character": pos.Character},
	})
	if err != nil {
		return SignatureHelp{}, err
	}
	var raw struct {
		Signatures []struct {
			Label      string `json:"label"`
			Parameters []struct {
				Label string `json:"label"`
			} `json:"parameters"`
		} `json:"signatures"`
		ActiveParameter int `json:"activeParameter"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return SignatureHelp{}, lspdoc.ErrParseError
	}
	if len(raw.Signatures) == 0 {
		return SignatureHelp{}, nil
	}
	sig := raw.Signatures[0]
	help := SignatureHelp{Label: sig.Label, ActiveParameter: raw.ActiveParameter}
	for _, p := range sig.Parameters {
		help.Parameters = append(help.Parameters, SignatureParameter{Documentation: p.Label})
	}
	return help, nil
}

// CodeAction requests actions covering the rune range [start, end). No
// diagnostics are sent with the request, and only each action's title
// and command are read from the reply (Edit is always nil).
func (c *Client) CodeAction(ctx context.Context, doc *document.Document, start, end int) ([]CodeAction, error) {
	if err := c.requireReady(); err != nil {
		return nil, err
	}
	startLine, startCol := lineCol(doc, start)
	endLine, endCol := lineCol(doc, end)
	result, err := c.t.Call(ctx, "textDocument/codeAction", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
		"range": map[string]interface{}{
			"start": map[string]int{"line": startLine, "character": startCol},
			"end":   map[string]int{"line": endLine, "character": endCol},
		},
	})
	if err != nil {
		return nil, err
	}
	var raw []struct {
		Title   string `json:"title"`
		Command string `json:"command"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, lspdoc.ErrParseError
	}
	actions := make([]CodeAction, 0, len(raw))
	for _, a := range raw {
		actions = append(actions, CodeAction{Title: a.Title, Command: a.Command})
	}
	return actions, nil
}

// DocumentColor requests color literal ranges in the document.
func (c *Client) DocumentColor(ctx context.Context, doc *document.Document) ([]document.DocumentColor, error) {
	if err := c.requireReady(); err != nil {
		return nil, err
	}
	result, err := c.t.Call(ctx, "textDocument/documentColor", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
	})
	if err != nil {
		return nil, err
	}
	var raw []struct {
		Range struct {
			Start Position `json:"start"`
			End   Position `json:"end"`
		} `json:"range"`
		Color struct{ Red, Green, Blue, Alpha float64 } `json:"color"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, lspdoc.ErrParseError
	}
	colors := make([]document.DocumentColor, 0, len(raw))
	for _, cr := range raw {
		colors = append(colors, document.DocumentColor{
			Start: offsetOf(doc, cr.Range.Start), End: offsetOf(doc, cr.Range.End),
			Red: cr.Color.Red, Green: cr.Color.Green, Blue: cr.Color.Blue, Alpha: cr.Color.Alpha,
		})
	}
	return colors, nil
}

// InlayHint requests inlay hints covering [start, end).
func (c *Client) InlayHint(ctx context.Context, doc *document.Document, start, end int) ([]document.InlayHint, error) {
	if err := c.requireReady(); err != nil {
		return nil, err
	}
	startLine, startCol := lineCol(doc, start)
	endLine, endCol := lineCol(doc, end)
	result, err := c.t.Call(ctx, "textDocument/inlayHint", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
		"range": map[string]interface{}{
			"start": map[string]int{"line": startLine, "character": startCol},
			"end":   map[string]int{"line": endLine, "character": endCol},
		},
	})
	if err != nil {
		return nil, err
	}
	var raw []struct {
		Position     Position `json:"position"`
		Label        string   `json:"label"`
		Kind         int      `json:"kind"`
		PaddingLeft  bool     `json:"paddingLeft"`
		PaddingRight bool     `json:"paddingRight"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, lspdoc.ErrParseError
	}
	hints := make([]document.InlayHint, 0, len(raw))
	for _, h := range raw {
		kind := "Type"
		if h.Kind == 2 {
			kind = "Parameter"
		}
		hints = append(hints, document.InlayHint{
			Position: offsetOf(doc, h.Position), Label: h.Label, Kind: kind,
			PaddingLeft: h.PaddingLeft, PaddingRight: h.PaddingRight,
		})
	}
	return hints, nil
}

// SemanticTokensFull requests the full semantic token set and decodes
// the line-major delta encoding into absolute (line, col, length)
// tokens. The returned tokens carry no version and the version argument
// is not read; the caller supplies a version when handing the tokens to
// highlight.Highlighter.ApplySemanticTokens.
func (c *Client) SemanticTokensFull(ctx context.Context, doc *document.Document, version int) ([]highlight.SemanticToken, error) {
	if err := c.requireReady(); err != nil {
		return nil, err
	}
	result, err := c.t.Call(ctx, "textDocument/semanticTokens/full", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
	})
	if err != nil {
		return nil, err
	}
	var raw struct {
		Data []int `json:"data"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, lspdoc.ErrParseError
	}

	var tokens []highlight.SemanticToken
	line, col := 0, 0
	for i := 0; i+5 <= len(raw.Data); i += 5 {
		lineDelta, charDelta, length, typeIdx := raw.Data[i], raw.Data[i+1], raw.Data[i+2], raw.Data[i+3]
		if lineDelta > 0 {
			line += lineDelta
			col = charDelta
		} else {
			col += charDelta
		}
		tokenType := ""
		if typeIdx >= 0 && typeIdx < len(c.caps.TokenTypes) {
			tokenType = c.caps.TokenTypes[typeIdx]
		}
		tokens = append(tokens, highlight.SemanticToken{Line: line, StartCol: col, Length: length, Type: tokenType})
	}
	return tokens, nil
}

// FoldingRange requests LSP-derived fold ranges for C4.
func (c *Client) FoldingRange(ctx context.Context, doc *document.Document) ([]fold.LSPRange, error) {
	if err := c.requireReady(); err != nil {
		return nil, err
	}
	result, err := c.t.Call(ctx, "textDocument/foldingRange", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
	})
	if err != nil {
		return nil, err
	}
	var raw []struct {
		StartLine int    `json:"startLine"`
		EndLine   int    `json:"endLine"`
		Kind      string `json:"kind"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, lspdoc.ErrParseError
	}
	ranges := make([]fold.LSPRange, 0, len(raw))
	for _, r := range raw {
		ranges = append(ranges, fold.LSPRange{StartLine: r.StartLine, EndLine: r.EndLine, Kind: r.Kind})
	}
	return ranges, nil
}

// DocumentHighlight requests all occurrences of the symbol at position.
func (c *Client) DocumentHighlight(ctx context.Context, doc *document.Document, pos Position) ([]document.Highlight, error) {
	if err := c.requireReady(); err != nil {
		return nil, err
	}
	result, err := c.t.Call(ctx, "textDocument/documentHighlight", map[string]interface{}{
		"textDocument": map[string]string{"uri": doc.URI},
		"position":     map[string]int{"line": pos.Line, "character": pos.Character},
	})
	if err != nil {
		return nil, err
	}
	var raw []struct {
		Range struct {
			Start Position `json:"start"`
			End   Position `json:"end"`
		} `json:"range"`
	}
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, lspdoc.ErrParseError
	}
	highlights := make([]document.Highlight, 0, len(raw))
	for _, h := range raw {
		highlights = append(highlights, document.Highlight{Start: offsetOf(doc, h.Range.Start), End: offsetOf(doc, h.Range.End)})
	}
	return highlights, nil
}

// --- WorkspaceEdit application -----------------------------------------------

// ApplyWorkspaceEdit applies edit to doc as a single undo transaction,
// refusing edits targeting a different file and rolling back every
// edit already applied in the batch if a later one fails.
func ApplyWorkspaceEdit(doc *document.Document, edit WorkspaceEdit) error {
	if edit.URI != doc.URI {
		return lspdoc.ErrCrossFileEditUnsupported
	}

	sorted := make([]TextEdit, len(edit.Edits))
	copy(sorted, edit.Edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	if err := doc.Undo.BeginTransaction(); err != nil {
		return err
	}

	applied := make([]TextEdit, 0, len(sorted))
	for _, e := range sorted {
		removed, err := doc.Rope().Slice(e.Start, e.End)
		if err != nil {
			rollback(doc, applied)
			doc.Undo.AbortTransaction()
			return lspdoc.ErrInvalidRange
		}
		if err := doc.ReplaceRange(e.Start, e.End, e.NewText); err != nil {
			rollback(doc, applied)
			doc.Undo.AbortTransaction()
			return err
		}
		applied = append(applied, TextEdit{Start: e.Start, End: e.Start + len([]rune(e.NewText)), NewText: removed})
	}

	return doc.Undo.CommitTransaction()
}

// rollback re-applies the inverse of each already-applied edit, in
// reverse order, without recording new undo entries.
func rollback(doc *document.Document, applied []TextEdit) {
	doc.Undo.BeginUndo()
	defer doc.Undo.EndOperation()
	for i := len(applied) - 1; i >= 0; i-- {
		e := applied[i]
		_ = doc.ReplaceRange(e.Start, e.End, e.NewText)
	}
}
