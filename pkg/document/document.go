// Package document implements the editor's document model (spec.md §4.6):
// it owns one rope, the selection, the fold table, decorations, ghost
// text, and the collections the LSP client fills in (diagnostics,
// semantic tokens, inlay hints, document colors, document highlights),
// and mediates every edit through a single ReplaceRange mutator.
//
// Grounded on the teacher's pkg/ot.Document / pkg/concordia.Document
// interfaces (both were thin string wrappers; this generalizes the same
// "one authoritative mutator, everything else reduces to it" shape onto
// pkg/rope.Rope) and pkg/rope/selection.go's Range/PositionMapper
// machinery for the selection shift rule.
package document

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coreseekdev/loom/pkg/eventbus"
	"github.com/coreseekdev/loom/pkg/fold"
	"github.com/coreseekdev/loom/pkg/lspdoc"
	"github.com/coreseekdev/loom/pkg/rope"
	"github.com/coreseekdev/loom/pkg/undo"
)

// Selection is a (base, extent) pair in rune (Unicode code point) offsets,
// the unit pkg/rope indexes by, not UTF-16 code units; collapsed when
// Base == Extent.
type Selection struct {
	Base   int
	Extent int
}

// Collapsed reports whether the selection is a cursor.
func (s Selection) Collapsed() bool { return s.Base == s.Extent }

// Range returns the (min, max) ordering of the selection regardless of
// direction.
func (s Selection) Range() (int, int) {
	if s.Base <= s.Extent {
		return s.Base, s.Extent
	}
	return s.Extent, s.Base
}

// DirtyRegion accumulates the span of text mutations since the last LSP
// flush.
type DirtyRegion struct {
	Start          int
	EndNew         int
	InsertedLength int
}

// Diagnostic is a server-reported problem at a range.
type Diagnostic struct {
	Start    int
	End      int
	Severity int
	Message  string
	Source   string
}

// InlayHint is a server-suggested inline annotation.
type InlayHint struct {
	Position    int
	Label       string
	Kind        string // "Type" or "Parameter"
	PaddingLeft bool
	PaddingRight bool
}

// DocumentColor is a color literal's range plus its RGBA value.
type DocumentColor struct {
	Start, End           int
	Red, Green, Blue, Alpha float64
}

// Highlight is one occurrence of a symbol, used for transient
// same-symbol highlighting (`document_highlight`).
type Highlight struct {
	Start, End int
}

// GhostText is a transient, non-authoritative suggestion overlay.
type GhostText struct {
	Anchor  int
	Text    string
	Persist bool
}

// LineDecoration paints an entire line (background / left-border /
// underline / wavy).
type LineDecoration struct {
	ID    string
	Line  int
	Kind  string
	Color string
}

// GutterDecoration paints the gutter (color-bar / icon / dot).
type GutterDecoration struct {
	ID    string
	Line  int
	Kind  string
	Value string
}

// IndentUnit configures indent/unindent: either a literal tab or n spaces.
type IndentUnit struct {
	UseTabs    bool
	SpaceCount int
}

func (u IndentUnit) text() string {
	if u.UseTabs {
		return "\t"
	}
	n := u.SpaceCount
	if n <= 0 {
		n = 4
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

// Document owns the rope and every piece of editor state attached to it.
type Document struct {
	URI  string
	text *rope.Rope

	selection Selection
	version   int
	dirty     *DirtyRegion

	Folds *fold.Table
	Undo  *undo.Log
	Bus   *eventbus.Bus

	diagnostics  []Diagnostic
	inlayHints   []InlayHint
	colors       []DocumentColor
	highlights   []Highlight
	ghost        *GhostText

	lineDecorations   []LineDecoration
	gutterDecorations []GutterDecoration

	indent IndentUnit

	log *slog.Logger
}

// New creates a document from its initial contents (empty string for a
// new, untitled buffer).
func New(uri, text string) *Document {
	return &Document{
		URI:     uri,
		text:    rope.New(text),
		version: 1,
		Folds:   fold.NewTable(),
		Undo:    undo.NewLog(),
		Bus:     eventbus.New(),
		indent:  detectIndentUnit(text),
		log:     slog.Default(),
	}
}

// SetLogger replaces the document's logger, e.g. to attach a
// request-scoped logger carrying the session's URI as an attribute.
func (d *Document) SetLogger(l *slog.Logger) { d.log = l }

func detectIndentUnit(text string) IndentUnit {
	r := rope.New(text)
	for i := 0; i < r.LineCount(); i++ {
		line := r.Line(i)
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '\t':
			return IndentUnit{UseTabs: true}
		case ' ':
			n := 0
			for n < len(line) && line[n] == ' ' {
				n++
			}
			if n > 0 {
				return IndentUnit{SpaceCount: n}
			}
		}
	}
	return IndentUnit{SpaceCount: 4}
}

// Text returns the full document text.
func (d *Document) Text() string { return d.text.String() }

// Rope exposes the underlying rope for read-only inspection by other
// components (the highlighter, the search query).
func (d *Document) Rope() *rope.Rope { return d.text }

// Length returns the document length in runes (Unicode code points), not
// UTF-16 code units.
func (d *Document) Length() int { return d.text.Length() }

// LineText returns line i's text (no trailing newline).
func (d *Document) LineText(i int) string { return d.text.Line(i) }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.text.LineCount() }

// Version returns the document's monotonically increasing version.
func (d *Document) Version() int { return d.version }

// Selection returns the current selection.
func (d *Document) Selection() Selection { return d.selection }

// SetSelection replaces the selection without touching the rope, marking
// an undo boundary (selection-only changes never coalesce with edits)
// and emitting SelectionChanged.
func (d *Document) SetSelection(s Selection) {
	d.selection = s
	d.Undo.MarkBoundary()
	d.Bus.Emit(eventbus.Event{Kind: eventbus.SelectionChanged})
}

func (d *Document) clampSelection(n int) Selection {
	s := d.selection
	if s.Base > n {
		s.Base = n
	}
	if s.Extent > n {
		s.Extent = n
	}
	return s
}

// shiftOffset applies the selection shift rule from spec.md §4.6: offsets
// before a are unchanged, offsets in [a,b) collapse to a+len(inserted),
// offsets at or after b shift by len(inserted)-(b-a).
func shiftOffset(o, a, b, insertedLen int) int {
	switch {
	case o < a:
		return o
	case o < b:
		return a + insertedLen
	default:
		return o + insertedLen - (b - a)
	}
}

// ReplaceRange is the single mutator every higher-level edit reduces to.
// It updates the rope, shifts the selection, advances the version,
// records one undo entry (or coalesces it), appends to the dirty region,
// and emits TextChanged.
func (d *Document) ReplaceRange(a, b int, text string) error {
	if a < 0 || b > d.text.Length() || a > b {
		return lspdoc.ErrInvalidRange
	}

	removed, err := d.text.Slice(a, b)
	if err != nil {
		return lspdoc.ErrInvalidRange
	}

	oldStartLine := d.text.LineAtChar(a)
	oldEndLine := d.text.LineAtChar(b)

	next, err := d.text.Replace(a, b, text)
	if err != nil {
		return lspdoc.ErrInvalidRange
	}

	before := d.selection
	d.text = next
	insertedLen := len([]rune(text))

	d.selection = Selection{
		Base:   shiftOffset(before.Base, a, b, insertedLen),
		Extent: shiftOffset(before.Extent, a, b, insertedLen),
	}

	d.version++

	d.Undo.Record(undo.Edit{
		Position:        a,
		RemovedText:     removed,
		InsertedText:    text,
		SelectionBefore: undo.Selection{Base: before.Base, Extent: before.Extent},
		SelectionAfter:  undo.Selection{Base: d.selection.Base, Extent: d.selection.Extent},
		Timestamp:       time.Now(),
	})

	newEndLine := d.text.LineAtChar(a + insertedLen)
	d.Folds.Adjust(oldStartLine, newEndLine-oldEndLine)

	if d.dirty == nil {
		d.dirty = &DirtyRegion{Start: a, EndNew: a + insertedLen, InsertedLength: insertedLen}
	} else {
		if a < d.dirty.Start {
			d.dirty.Start = a
		}
		if a+insertedLen > d.dirty.EndNew {
			d.dirty.EndNew = a + insertedLen
		}
		d.dirty.InsertedLength += insertedLen
	}

	if d.ghost != nil && !ghostSurvives(d.ghost, a, b, text) {
		d.ghost = nil
	}

	d.Bus.Emit(eventbus.Event{Kind: eventbus.TextChanged, Payload: *d.dirty})

	if d.log != nil {
		d.log.Debug("document edit applied",
			"uri", d.URI, "version", d.version, "start", a, "end", b, "inserted", insertedLen)
	}
	return nil
}

// ghostSurvives reports whether an edit extends the ghost text from its
// anchor (persist=true ghosts always survive text mutation since only
// an explicit ClearGhost removes them).
func ghostSurvives(g *GhostText, a, b int, inserted string) bool {
	if g.Persist {
		return true
	}
	return a == g.Anchor && b == g.Anchor && len([]rune(inserted)) <= len([]rune(g.Text))
}

// Undo reverts the most recent undo record, if any, restoring the
// selection that preceded it. The replay edit is applied without being
// re-appended to the log.
func (d *Document) Undo() error {
	e, ok := d.Undo.Undo()
	if !ok {
		return nil
	}
	d.Undo.BeginUndo()
	defer d.Undo.EndOperation()
	if err := d.ReplaceRange(e.Position, e.Position+len([]rune(e.InsertedText)), e.RemovedText); err != nil {
		return err
	}
	d.selection = Selection{Base: e.SelectionBefore.Base, Extent: e.SelectionBefore.Extent}
	return nil
}

// Redo re-applies the most recently undone record, if any, restoring
// the selection that followed it.
func (d *Document) Redo() error {
	e, ok := d.Undo.Redo()
	if !ok {
		return nil
	}
	d.Undo.BeginRedo()
	defer d.Undo.EndOperation()
	if err := d.ReplaceRange(e.Position, e.Position+len([]rune(e.RemovedText)), e.InsertedText); err != nil {
		return err
	}
	d.selection = Selection{Base: e.SelectionAfter.Base, Extent: e.SelectionAfter.Extent}
	return nil
}

// DirtyRegion returns the accumulated dirty region since the last flush,
// or nil if nothing is pending.
func (d *Document) DirtyRegion() *DirtyRegion { return d.dirty }

// FlushDirty clears the dirty region, returning what was pending.
func (d *Document) FlushDirty() *DirtyRegion {
	r := d.dirty
	d.dirty = nil
	return r
}

// InsertAtCursor inserts text at the selection, replacing any selected
// range. If a non-persistent ghost text is active and the typed text
// matches a prefix of its remaining content, the matching prefix is
// consumed from the ghost rather than clearing it outright; any
// non-matching input clears the ghost (spec.md §4.6).
func (d *Document) InsertAtCursor(text string) error {
	a, b := d.selection.Range()
	if d.ghost != nil && !d.ghost.Persist && a == d.ghost.Anchor && b == d.ghost.Anchor {
		if consumed := consumeGhostPrefix(d.ghost, text); consumed > 0 {
			g := d.ghost
			if err := d.ReplaceRange(a, b, text[:consumed]); err != nil {
				return err
			}
			d.ghost = g
			if consumed < len(text) {
				d.ghost = nil
				return d.ReplaceRange(d.selection.Base, d.selection.Base, text[consumed:])
			}
			return nil
		}
		d.ghost = nil
	}
	return d.ReplaceRange(a, b, text)
}

func consumeGhostPrefix(g *GhostText, typed string) int {
	gr := []rune(g.Text)
	tr := []rune(typed)
	n := 0
	for n < len(gr) && n < len(tr) && gr[n] == tr[n] {
		n++
	}
	if n == 0 {
		return 0
	}
	g.Anchor += n
	g.Text = string(gr[n:])
	return len(string(tr[:n]))
}

// Backspace deletes the character before the cursor, or the selection if
// non-collapsed.
func (d *Document) Backspace() error {
	if !d.selection.Collapsed() {
		a, b := d.selection.Range()
		return d.ReplaceRange(a, b, "")
	}
	pos := d.selection.Base
	if pos == 0 {
		return nil
	}
	return d.ReplaceRange(pos-1, pos, "")
}

// DeleteForward deletes the character after the cursor, or the
// selection if non-collapsed. At document end it is a no-op per
// spec.md's boundary behavior.
func (d *Document) DeleteForward() error {
	if !d.selection.Collapsed() {
		a, b := d.selection.Range()
		return d.ReplaceRange(a, b, "")
	}
	pos := d.selection.Base
	if pos >= d.text.Length() {
		return nil
	}
	return d.ReplaceRange(pos, pos+1, "")
}

// DuplicateLine duplicates the line the cursor is on.
func (d *Document) DuplicateLine() error {
	line := d.text.LineAtChar(d.selection.Base)
	start := d.text.LineStart(line)
	text := d.text.LineWithEnding(line)
	return d.ReplaceRange(start, start, text)
}

// MoveLineUp swaps the cursor's line with the line above it.
func (d *Document) MoveLineUp() error {
	line := d.text.LineAtChar(d.selection.Base)
	if line == 0 {
		return nil
	}
	return d.swapLines(line-1, line)
}

// MoveLineDown swaps the cursor's line with the line below it.
func (d *Document) MoveLineDown() error {
	line := d.text.LineAtChar(d.selection.Base)
	if line >= d.text.LineCount()-1 {
		return nil
	}
	return d.swapLines(line, line+1)
}

func (d *Document) swapLines(first, second int) error {
	start := d.text.LineStart(first)
	end := d.text.LineStart(second) + d.text.LineWithEndingLength(second)
	a := d.text.LineWithEnding(first)
	b := d.text.LineWithEnding(second)
	return d.ReplaceRange(start, end, b+a)
}

// --- Cursor motion -------------------------------------------------------

func (d *Document) moveTo(pos int, extend bool) {
	pos = clampInt(pos, 0, d.text.Length())
	if extend {
		d.SetSelection(Selection{Base: d.selection.Base, Extent: pos})
	} else {
		d.SetSelection(Selection{Base: pos, Extent: pos})
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveLeft/MoveRight move the cursor by one code unit.
func (d *Document) MoveLeft(extend bool)  { d.moveTo(d.selection.Extent-1, extend) }
func (d *Document) MoveRight(extend bool) { d.moveTo(d.selection.Extent+1, extend) }

// MoveUp/MoveDown move the cursor one line up/down, clamping the
// column to the target line's length.
func (d *Document) MoveUp(extend bool) {
	line := d.text.LineAtChar(d.selection.Extent)
	col := d.selection.Extent - d.text.LineStart(line)
	if line == 0 {
		d.moveTo(0, extend)
		return
	}
	target := line - 1
	if n := len([]rune(d.text.Line(target))); col > n {
		col = n
	}
	d.moveTo(d.text.LineStart(target)+col, extend)
}

func (d *Document) MoveDown(extend bool) {
	line := d.text.LineAtChar(d.selection.Extent)
	col := d.selection.Extent - d.text.LineStart(line)
	if line >= d.text.LineCount()-1 {
		d.moveTo(d.text.Length(), extend)
		return
	}
	target := line + 1
	if n := len([]rune(d.text.Line(target))); col > n {
		col = n
	}
	d.moveTo(d.text.LineStart(target)+col, extend)
}

// WordLeft/WordRight move to the previous/next word boundary.
func (d *Document) WordLeft(extend bool) {
	wb := rope.NewWordBoundary(d.text)
	d.moveTo(wb.PrevWordStart(d.selection.Extent), extend)
}

func (d *Document) WordRight(extend bool) {
	wb := rope.NewWordBoundary(d.text)
	d.moveTo(wb.NextWordStart(d.selection.Extent), extend)
}

// Home toggles between column 0 and the first non-whitespace column on
// repeated presses at the same line.
func (d *Document) Home(extend bool) {
	line := d.text.LineAtChar(d.selection.Extent)
	start := d.text.LineStart(line)
	text := d.text.Line(line)
	firstNonWS := start
	for _, r := range text {
		if r != ' ' && r != '\t' {
			break
		}
		firstNonWS++
	}
	if d.selection.Extent == firstNonWS && firstNonWS != start {
		d.moveTo(start, extend)
	} else {
		d.moveTo(firstNonWS, extend)
	}
}

// End moves to the end of the current line.
func (d *Document) End(extend bool) {
	line := d.text.LineAtChar(d.selection.Extent)
	d.moveTo(d.text.LineEnd(line), extend)
}

// DocumentHome moves to offset 0.
func (d *Document) DocumentHome(extend bool) { d.moveTo(0, extend) }

// DocumentEnd moves to the document's final offset.
func (d *Document) DocumentEnd(extend bool) { d.moveTo(d.text.Length(), extend) }

// PageUp/PageDown move by pageSize lines.
func (d *Document) PageUp(extend bool, pageSize int) {
	line := d.text.LineAtChar(d.selection.Extent)
	col := d.selection.Extent - d.text.LineStart(line)
	target := clampInt(line-pageSize, 0, d.text.LineCount()-1)
	d.moveTo(clampInt(d.text.LineStart(target)+col, 0, d.text.Length()), extend)
}

func (d *Document) PageDown(extend bool, pageSize int) {
	line := d.text.LineAtChar(d.selection.Extent)
	col := d.selection.Extent - d.text.LineStart(line)
	target := clampInt(line+pageSize, 0, d.text.LineCount()-1)
	d.moveTo(clampInt(d.text.LineStart(target)+col, 0, d.text.Length()), extend)
}

// --- Indentation ----------------------------------------------------------

// Indent inserts the configured indent unit at the start of every line
// in the selection's line range (for a collapsed cursor, at the start of
// the cursor's line).
func (d *Document) Indent() error {
	a, b := d.selection.Range()
	startLine := d.text.LineAtChar(a)
	endLine := d.text.LineAtChar(b)
	unit := d.indent.text()

	if err := d.Undo.BeginTransaction(); err != nil {
		return err
	}
	for line := endLine; line >= startLine; line-- {
		start := d.text.LineStart(line)
		if err := d.ReplaceRange(start, start, unit); err != nil {
			d.Undo.CommitTransaction()
			return err
		}
	}
	return d.Undo.CommitTransaction()
}

// Unindent removes up to one indent unit from the start of every line in
// the selection's line range.
func (d *Document) Unindent() error {
	a, b := d.selection.Range()
	startLine := d.text.LineAtChar(a)
	endLine := d.text.LineAtChar(b)
	unitLen := len([]rune(d.indent.text()))

	if err := d.Undo.BeginTransaction(); err != nil {
		return err
	}
	for line := endLine; line >= startLine; line-- {
		start := d.text.LineStart(line)
		text := d.text.Line(line)
		n := 0
		for n < unitLen && n < len(text) && (text[n] == ' ' || text[n] == '\t') {
			n++
		}
		if n > 0 {
			if err := d.ReplaceRange(start, start+n, ""); err != nil {
				d.Undo.CommitTransaction()
				return err
			}
		}
	}
	return d.Undo.CommitTransaction()
}

// --- Bracket matching ------------------------------------------------------

var closers = map[rune]rune{'(': ')', '{': '}', '[': ']'}
var openers = map[rune]rune{')': '(', '}': '{', ']': '['}

// BracketMatch inspects the character immediately before and at the
// cursor; if either is a bracket, it scans for the balanced partner.
func (d *Document) BracketMatch() (int, int, bool) {
	pos := d.selection.Extent
	if at, err := d.text.CharAt(pos); err == nil {
		if close, ok := closers[at]; ok {
			if end := d.scanForward(pos, at, close); end >= 0 {
				return pos, end, true
			}
		}
		if open, ok := openers[at]; ok {
			if start := d.scanBackward(pos, open, at); start >= 0 {
				return start, pos, true
			}
		}
	}
	if pos > 0 {
		if before, err := d.text.CharAt(pos - 1); err == nil {
			if close, ok := closers[before]; ok {
				if end := d.scanForward(pos-1, before, close); end >= 0 {
					return pos - 1, end, true
				}
			}
			if open, ok := openers[before]; ok {
				if start := d.scanBackward(pos-1, open, before); start >= 0 {
					return start, pos - 1, true
				}
			}
		}
	}
	return 0, 0, false
}

func (d *Document) scanForward(pos int, open, close rune) int {
	depth := 0
	for i := pos; i < d.text.Length(); i++ {
		c, err := d.text.CharAt(i)
		if err != nil {
			break
		}
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (d *Document) scanBackward(pos int, open, close rune) int {
	depth := 0
	for i := pos; i >= 0; i-- {
		c, err := d.text.CharAt(i)
		if err != nil {
			continue
		}
		switch c {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// --- Ghost text ------------------------------------------------------------

// SetGhost overlays suggestion text at an anchor.
func (d *Document) SetGhost(line, column int, text string, persist bool) {
	anchor := d.text.LineStart(line) + column
	d.ghost = &GhostText{Anchor: anchor, Text: text, Persist: persist}
	d.Bus.Emit(eventbus.Event{Kind: eventbus.GhostTextChanged})
}

// ClearGhost removes any active ghost text overlay.
func (d *Document) ClearGhost() {
	if d.ghost == nil {
		return
	}
	d.ghost = nil
	d.Bus.Emit(eventbus.Event{Kind: eventbus.GhostTextChanged})
}

// Ghost returns the active ghost text overlay, or nil.
func (d *Document) Ghost() *GhostText { return d.ghost }

// --- Decorations ------------------------------------------------------------

// AddLineDecoration registers a line decoration and returns its ID.
func (d *Document) AddLineDecoration(line int, kind, color string) string {
	id := uuid.New().String()
	d.lineDecorations = append(d.lineDecorations, LineDecoration{ID: id, Line: line, Kind: kind, Color: color})
	d.Bus.Emit(eventbus.Event{Kind: eventbus.DecorationsChanged})
	return id
}

// AddGutterDecoration registers a gutter decoration and returns its ID.
func (d *Document) AddGutterDecoration(line int, kind, value string) string {
	id := uuid.New().String()
	d.gutterDecorations = append(d.gutterDecorations, GutterDecoration{ID: id, Line: line, Kind: kind, Value: value})
	d.Bus.Emit(eventbus.Event{Kind: eventbus.DecorationsChanged})
	return id
}

// ClearDecorationsByID removes any line or gutter decoration with the
// given ID.
func (d *Document) ClearDecorationsByID(id string) {
	for i, dec := range d.lineDecorations {
		if dec.ID == id {
			d.lineDecorations = append(d.lineDecorations[:i], d.lineDecorations[i+1:]...)
			d.Bus.Emit(eventbus.Event{Kind: eventbus.DecorationsChanged})
			return
		}
	}
	for i, dec := range d.gutterDecorations {
		if dec.ID == id {
			d.gutterDecorations = append(d.gutterDecorations[:i], d.gutterDecorations[i+1:]...)
			d.Bus.Emit(eventbus.Event{Kind: eventbus.DecorationsChanged})
			return
		}
	}
}

// Decorations returns the current line and gutter decoration lists.
func (d *Document) Decorations() ([]LineDecoration, []GutterDecoration) {
	return d.lineDecorations, d.gutterDecorations
}

// --- LSP-owned collections --------------------------------------------------

// SetDiagnostics replaces the diagnostic set.
func (d *Document) SetDiagnostics(diags []Diagnostic) {
	d.diagnostics = diags
	d.Bus.Emit(eventbus.Event{Kind: eventbus.DiagnosticsChanged})
}

// Diagnostics returns the current diagnostic set.
func (d *Document) Diagnostics() []Diagnostic { return d.diagnostics }

// SetInlayHints replaces the inlay hint set.
func (d *Document) SetInlayHints(hints []InlayHint) {
	d.inlayHints = hints
	d.Bus.Emit(eventbus.Event{Kind: eventbus.InlayHintsChanged})
}

// InlayHints returns the current inlay hint set.
func (d *Document) InlayHints() []InlayHint { return d.inlayHints }

// SetDocumentColors replaces the document color set.
func (d *Document) SetDocumentColors(colors []DocumentColor) {
	d.colors = colors
	d.Bus.Emit(eventbus.Event{Kind: eventbus.DocumentColorsChanged})
}

// DocumentColors returns the current document color set.
func (d *Document) DocumentColors() []DocumentColor { return d.colors }

// SetHighlights replaces the same-symbol highlight set.
func (d *Document) SetHighlights(hl []Highlight) {
	d.highlights = hl
	d.Bus.Emit(eventbus.Event{Kind: eventbus.HighlightsChanged})
}

// Highlights returns the current same-symbol highlight set.
func (d *Document) Highlights() []Highlight { return d.highlights }

// IndentUnit returns the document's configured indent unit.
func (d *Document) IndentUnit() IndentUnit { return d.indent }

// SetIndentUnit overrides the detected/default indent unit.
func (d *Document) SetIndentUnit(u IndentUnit) { d.indent = u }
