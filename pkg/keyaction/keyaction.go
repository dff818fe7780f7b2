// Package keyaction is the declarative action dispatch table the host
// drives from keyboard/gesture input (spec.md §4.6, §6's
// `KeyActionMapper.dispatch(action)`). It maps a closed set of named
// actions onto the document model's methods so the host never calls
// pkg/document directly for keyword operations.
//
// Grounded on the teacher's small pkg/ot client dispatch surface (a
// flat action-name -> method lookup table), generalized here from the
// teacher's handful of OT client ops to the full cursor-motion,
// indentation, line-reordering, and word-deletion action set.
package keyaction

import "github.com/coreseekdev/loom/pkg/document"

// Action names one dispatchable operation.
type Action string

const (
	MoveLeft     Action = "move_left"
	MoveRight    Action = "move_right"
	MoveUp       Action = "move_up"
	MoveDown     Action = "move_down"
	WordLeft     Action = "word_left"
	WordRight    Action = "word_right"
	Home         Action = "home"
	End          Action = "end"
	DocumentHome Action = "document_home"
	DocumentEnd  Action = "document_end"
	PageUp       Action = "page_up"
	PageDown     Action = "page_down"

	Indent         Action = "indent"
	Unindent       Action = "unindent"
	DuplicateLine  Action = "duplicate_line"
	MoveLineUp     Action = "move_line_up"
	MoveLineDown   Action = "move_line_down"
	Backspace      Action = "backspace"
	DeleteForward  Action = "delete_forward"
	DeleteWordLeft Action = "delete_word_left"
	DeleteWordRight Action = "delete_word_right"
	Undo           Action = "undo"
	Redo           Action = "redo"
)

// Options carries the modifiers a dispatch needs: Extend selects the
// shift-held variant of cursor motion, PageSize configures page-up/down.
type Options struct {
	Extend   bool
	PageSize int
}

type handler func(*document.Document, Options) error

// Mapper is the fixed action -> document-method dispatch table.
type Mapper struct {
	table map[Action]handler
}

// New builds the dispatch table once.
func New() *Mapper {
	m := &Mapper{table: make(map[Action]handler)}

	m.table[MoveLeft] = func(d *document.Document, o Options) error { d.MoveLeft(o.Extend); return nil }
	m.table[MoveRight] = func(d *document.Document, o Options) error { d.MoveRight(o.Extend); return nil }
	m.table[MoveUp] = func(d *document.Document, o Options) error { d.MoveUp(o.Extend); return nil }
	m.table[MoveDown] = func(d *document.Document, o Options) error { d.MoveDown(o.Extend); return nil }
	m.table[WordLeft] = func(d *document.Document, o Options) error { d.WordLeft(o.Extend); return nil }
	m.table[WordRight] = func(d *document.Document, o Options) error { d.WordRight(o.Extend); return nil }
	m.table[Home] = func(d *document.Document, o Options) error { d.Home(o.Extend); return nil }
	m.table[End] = func(d *document.Document, o Options) error { d.End(o.Extend); return nil }
	m.table[DocumentHome] = func(d *document.Document, o Options) error { d.DocumentHome(o.Extend); return nil }
	m.table[DocumentEnd] = func(d *document.Document, o Options) error { d.DocumentEnd(o.Extend); return nil }
	m.table[PageUp] = func(d *document.Document, o Options) error { d.PageUp(o.Extend, pageSizeOrDefault(o)); return nil }
	m.table[PageDown] = func(d *document.Document, o Options) error { d.PageDown(o.Extend, pageSizeOrDefault(o)); return nil }

	m.table[Indent] = func(d *document.Document, o Options) error { return d.Indent() }
	m.table[Unindent] = func(d *document.Document, o Options) error { return d.Unindent() }
	m.table[DuplicateLine] = func(d *document.Document, o Options) error { return d.DuplicateLine() }
	m.table[MoveLineUp] = func(d *document.Document, o Options) error { return d.MoveLineUp() }
	m.table[MoveLineDown] = func(d *document.Document, o Options) error { return d.MoveLineDown() }
	m.table[Backspace] = func(d *document.Document, o Options) error { return d.Backspace() }
	m.table[DeleteForward] = func(d *document.Document, o Options) error { return d.DeleteForward() }
	m.table[DeleteWordLeft] = deleteWordLeft
	m.table[DeleteWordRight] = deleteWordRight
	m.table[Undo] = func(d *document.Document, o Options) error { return d.Undo() }
	m.table[Redo] = func(d *document.Document, o Options) error { return d.Redo() }

	return m
}

func pageSizeOrDefault(o Options) int {
	if o.PageSize <= 0 {
		return 20
	}
	return o.PageSize
}

// deleteWordLeft extends the selection one word left of the cursor and
// deletes it, reducing to Document.ReplaceRange like every other edit.
func deleteWordLeft(d *document.Document, o Options) error {
	before := d.Selection()
	d.WordLeft(true)
	sel := d.Selection()
	a, b := sel.Range()
	d.SetSelection(before)
	return d.ReplaceRange(a, b, "")
}

// deleteWordRight extends the selection one word right of the cursor
// and deletes it.
func deleteWordRight(d *document.Document, o Options) error {
	before := d.Selection()
	d.WordRight(true)
	sel := d.Selection()
	a, b := sel.Range()
	d.SetSelection(before)
	return d.ReplaceRange(a, b, "")
}

// Dispatch runs action against doc. An unrecognized action is a no-op
// (the host's action set is closed and validated at the UI layer; a
// stray action here shouldn't crash the editor mid-keystroke).
func (m *Mapper) Dispatch(doc *document.Document, action Action, opts Options) error {
	if h, ok := m.table[action]; ok {
		return h(doc, opts)
	}
	return nil
}
