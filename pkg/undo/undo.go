// Package undo implements the bounded, coalescing edit log described for
// the document model's undo/redo stack. It is grounded on the teacher's
// pkg/ot.UndoManager state-machine shape (Normal/Undoing/Redoing) and on
// pkg/concordia's revision-stack idiom, simplified from a multi-branch
// collaborative history down to a single linear undo/redo pair since this
// module has exactly one writer.
package undo

import (
	"time"

	"github.com/coreseekdev/loom/pkg/lspdoc"
)

// MaxRecords bounds the log; the oldest record is dropped once exceeded.
const MaxRecords = 500

// CoalesceWindow is the maximum gap between two records for them to merge
// into one undo step.
const CoalesceWindow = 500 * time.Millisecond

// Selection is a minimal (base, extent) pair recorded alongside an edit so
// undo/redo can restore the caret, without pkg/undo depending on pkg/rope
// or pkg/document.
type Selection struct {
	Base   int
	Extent int
}

// Edit is one recorded text mutation.
type Edit struct {
	Position        int
	RemovedText     string
	InsertedText    string
	SelectionBefore Selection
	SelectionAfter  Selection
	Timestamp       time.Time
}

func (e Edit) isPureInsert() bool { return e.RemovedText == "" && e.InsertedText != "" }
func (e Edit) isPureDelete() bool { return e.RemovedText != "" && e.InsertedText == "" }

// end returns the position immediately after this edit's inserted text,
// i.e. where a contiguous follow-up edit would begin.
func (e Edit) end() int { return e.Position + len([]rune(e.InsertedText)) }

type state int

const (
	stateNormal state = iota
	stateUndoing
	stateRedoing
)

// Log is the bounded, coalescing, transaction-grouped undo/redo stack.
type Log struct {
	records []Edit
	redo    []Edit
	state   state

	inTransaction bool
	txn           []Edit
	txnCoalesced  bool // a non-text op occurred since the transaction began
}

// NewLog creates an empty undo log.
func NewLog() *Log {
	return &Log{}
}

// CanUndo reports whether there is a record to undo.
func (l *Log) CanUndo() bool { return len(l.records) > 0 }

// CanRedo reports whether there is a record to redo.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// BeginUndo and BeginRedo suspend Record so that the document edit
// issued to replay an undo/redo step isn't itself appended to the log.
// EndOperation restores normal recording.
func (l *Log) BeginUndo() { l.state = stateUndoing }
func (l *Log) BeginRedo() { l.state = stateRedoing }
func (l *Log) EndOperation() { l.state = stateNormal }

// BeginTransaction opens a transaction that groups all Records appended
// until CommitTransaction into a single undo step. Nested transactions are
// illegal and fail loudly per the spec's "fails loudly" requirement.
func (l *Log) BeginTransaction() error {
	if l.inTransaction {
		return lspdoc.ErrIllegalNesting
	}
	l.inTransaction = true
	l.txn = l.txn[:0]
	return nil
}

// CommitTransaction closes the transaction begun by BeginTransaction,
// merging every edit recorded during it into one record's worth of undo
// state. It is a no-op (not an error) if no edits were recorded.
func (l *Log) CommitTransaction() error {
	if !l.inTransaction {
		return lspdoc.ErrIllegalNesting
	}
	l.inTransaction = false
	if len(l.txn) == 0 {
		return nil
	}
	merged := mergeTransaction(l.txn)
	l.txn = nil
	l.pushRecord(merged)
	return nil
}

// AbortTransaction discards whatever was recorded since BeginTransaction
// without pushing an undo record, for callers that need to roll back a
// partially-applied batch (e.g. a failed WorkspaceEdit application) by
// replaying inverse edits themselves.
func (l *Log) AbortTransaction() {
	l.inTransaction = false
	l.txn = nil
}

// mergeTransaction folds a sequence of edits applied within one transaction
// into a single composite Edit: the position and selections of the first
// and last edit are kept, and removed/inserted text is concatenated in
// application order. This is a conservative approximation — it is correct
// whenever the transaction's edits are contiguous, which is the only shape
// pkg/lsp/client produces (sorted WorkspaceEdit application).
func mergeTransaction(edits []Edit) Edit {
	first, last := edits[0], edits[len(edits)-1]
	var removed, inserted string
	for _, e := range edits {
		removed += e.RemovedText
		inserted += e.InsertedText
	}
	return Edit{
		Position:        first.Position,
		RemovedText:     removed,
		InsertedText:    inserted,
		SelectionBefore: first.SelectionBefore,
		SelectionAfter:  last.SelectionAfter,
		Timestamp:       last.Timestamp,
	}
}

// Record appends a new edit to the log, attempting to coalesce it with the
// previous record per the rules in §3: both pure insertions or both pure
// deletions, contiguous positions, within the coalesce window, and no
// non-text operation has intervened (MarkBoundary below models that last
// condition). Recording clears the redo stack.
func (l *Log) Record(e Edit) {
	if l.state != stateNormal {
		// Undo/redo themselves call into the document without recording;
		// a Record arriving mid-undo/redo is a programming error we choose
		// to ignore defensively rather than corrupt the stack.
		return
	}
	if l.inTransaction {
		l.txn = append(l.txn, e)
		return
	}
	l.pushRecord(e)
}

func (l *Log) pushRecord(e Edit) {
	l.redo = l.redo[:0]
	if n := len(l.records); n > 0 && !l.txnCoalesced {
		prev := l.records[n-1]
		if coalesces(prev, e) {
			l.records[n-1] = Edit{
				Position:        prev.Position,
				RemovedText:     prev.RemovedText + e.RemovedText,
				InsertedText:    prev.InsertedText + e.InsertedText,
				SelectionBefore: prev.SelectionBefore,
				SelectionAfter:  e.SelectionAfter,
				Timestamp:       e.Timestamp,
			}
			l.txnCoalesced = false
			return
		}
	}
	l.txnCoalesced = false
	l.records = append(l.records, e)
	if len(l.records) > MaxRecords {
		l.records = l.records[len(l.records)-MaxRecords:]
	}
}

// MarkBoundary records that a non-text operation (fold toggle,
// selection-only change) has occurred, preventing the next Record from
// coalescing with whatever came before it.
func (l *Log) MarkBoundary() {
	l.txnCoalesced = true
}

func coalesces(prev, next Edit) bool {
	if prev.isPureInsert() && next.isPureInsert() {
		if prev.end() != next.Position {
			return false
		}
	} else if prev.isPureDelete() && next.isPureDelete() {
		// Backspace deletes move position backward one char at a time;
		// forward-delete keeps position fixed while removed text grows.
		if next.Position != prev.Position && next.end() != prev.Position {
			return false
		}
	} else {
		return false
	}
	return next.Timestamp.Sub(prev.Timestamp) <= CoalesceWindow
}

// Undo pops the most recent record, pushes it to the redo stack, and
// returns the edit whose inverse the caller must apply (RemovedText is
// what must be re-inserted; InsertedText is what must be deleted).
func (l *Log) Undo() (Edit, bool) {
	if len(l.records) == 0 {
		return Edit{}, false
	}
	n := len(l.records) - 1
	e := l.records[n]
	l.records = l.records[:n]
	l.redo = append(l.redo, e)
	return e, true
}

// Redo pops the most recent undone record and returns it for re-application.
func (l *Log) Redo() (Edit, bool) {
	if len(l.redo) == 0 {
		return Edit{}, false
	}
	n := len(l.redo) - 1
	e := l.redo[n]
	l.redo = l.redo[:n]
	l.records = append(l.records, e)
	return e, true
}

// Len reports the number of undo records currently retained (for tests).
func (l *Log) Len() int { return len(l.records) }
