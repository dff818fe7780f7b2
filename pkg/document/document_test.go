package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreseekdev/loom/pkg/eventbus"
)

func TestReplaceRange_ShiftsSelectionAndBumpsVersion(t *testing.T) {
	d := New("file:///a.go", "hello world")
	d.SetSelection(Selection{Base: 6, Extent: 11}) // "world"
	v0 := d.Version()

	err := d.ReplaceRange(0, 5, "goodbye")
	require.NoError(t, err)

	assert.Equal(t, "goodbye world", d.Text())
	assert.Greater(t, d.Version(), v0)
	// "world" started at 6, now shifted by len("goodbye")-len("hello") = 2
	assert.Equal(t, 8, d.Selection().Base)
	assert.Equal(t, 13, d.Selection().Extent)
}

func TestReplaceRange_SelectionInsideEditCollapsesToInsertEnd(t *testing.T) {
	d := New("file:///a.go", "abcdef")
	d.SetSelection(Selection{Base: 2, Extent: 2})

	require.NoError(t, d.ReplaceRange(0, 4, "XY"))
	assert.Equal(t, "XYef", d.Text())
	assert.Equal(t, 2, d.Selection().Base)
}

func TestInsertAtCursor_ReplacesSelection(t *testing.T) {
	d := New("file:///a.go", "hello world")
	d.SetSelection(Selection{Base: 0, Extent: 5})

	require.NoError(t, d.InsertAtCursor("goodbye"))
	assert.Equal(t, "goodbye world", d.Text())
	assert.True(t, d.Selection().Collapsed())
}

func TestBackspace_DeletesPrecedingChar(t *testing.T) {
	d := New("file:///a.go", "abc")
	d.SetSelection(Selection{Base: 3, Extent: 3})

	require.NoError(t, d.Backspace())
	assert.Equal(t, "ab", d.Text())
}

func TestDeleteForward_NoOpAtDocumentEnd(t *testing.T) {
	d := New("file:///a.go", "abc")
	d.SetSelection(Selection{Base: 3, Extent: 3})

	require.NoError(t, d.DeleteForward())
	assert.Equal(t, "abc", d.Text())
}

func TestDuplicateLine_InsertsCopyAbove(t *testing.T) {
	d := New("file:///a.go", "one\ntwo\nthree")
	d.SetSelection(Selection{Base: 0, Extent: 0})

	require.NoError(t, d.DuplicateLine())
	assert.Equal(t, "one\none\ntwo\nthree", d.Text())
}

func TestMoveLineDown_SwapsAdjacentLines(t *testing.T) {
	d := New("file:///a.go", "one\ntwo\nthree")
	d.SetSelection(Selection{Base: 0, Extent: 0})

	require.NoError(t, d.MoveLineDown())
	assert.Equal(t, "two\none\nthree", d.Text())
}

func TestUndoRedo_RoundTripsThroughDocument(t *testing.T) {
	d := New("file:///a.go", "abc")
	d.SetSelection(Selection{Base: 3, Extent: 3})
	require.NoError(t, d.InsertAtCursor("d"))
	assert.Equal(t, "abcd", d.Text())

	require.NoError(t, d.Undo())
	assert.Equal(t, "abc", d.Text())
	assert.Equal(t, 3, d.Selection().Base)

	require.NoError(t, d.Redo())
	assert.Equal(t, "abcd", d.Text())
}

func TestWordLeftRight_MovesAcrossWordBoundaries(t *testing.T) {
	d := New("file:///a.go", "foo bar baz")
	d.SetSelection(Selection{Base: 0, Extent: 0})

	d.WordRight(false)
	assert.Equal(t, 4, d.Selection().Base)
	d.WordRight(false)
	assert.Equal(t, 8, d.Selection().Base)
	d.WordLeft(false)
	assert.Equal(t, 4, d.Selection().Base)
}

func TestMoveDown_ClampsColumnToShorterLine(t *testing.T) {
	d := New("file:///a.go", "longline\nhi")
	d.SetSelection(Selection{Base: 6, Extent: 6})

	d.MoveDown(false)
	assert.Equal(t, d.Rope().LineStart(1)+2, d.Selection().Base) // clamped to len("hi")
}

func TestHome_TogglesBetweenFirstNonWhitespaceAndColumnZero(t *testing.T) {
	d := New("file:///a.go", "    foo")
	d.SetSelection(Selection{Base: 7, Extent: 7})

	d.Home(false)
	assert.Equal(t, 4, d.Selection().Base)
	d.Home(false)
	assert.Equal(t, 0, d.Selection().Base)
}

func TestIndentUnindent_AffectsEachSelectedLine(t *testing.T) {
	d := New("file:///a.go", "one\ntwo")
	d.SetIndentUnit(IndentUnit{SpaceCount: 2})
	d.SetSelection(Selection{Base: 0, Extent: 7})

	require.NoError(t, d.Indent())
	assert.Equal(t, "  one\n  two", d.Text())

	require.NoError(t, d.Unindent())
	assert.Equal(t, "one\ntwo", d.Text())
}

func TestBracketMatch_FindsBalancedPartner(t *testing.T) {
	d := New("file:///a.go", "f(x, g(y))")
	d.SetSelection(Selection{Base: 1, Extent: 1})

	start, end, ok := d.BracketMatch()
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 9, end)
}

func TestGhostText_MatchingPrefixIsConsumedCharByChar(t *testing.T) {
	d := New("file:///a.go", "")
	d.SetGhost(0, 0, "func", false)

	require.NoError(t, d.InsertAtCursor("fu"))
	assert.Equal(t, "fu", d.Text())
	require.NotNil(t, d.Ghost())
	assert.Equal(t, "nc", d.Ghost().Text)
}

func TestGhostText_NonMatchingInputClearsGhost(t *testing.T) {
	d := New("file:///a.go", "")
	d.SetGhost(0, 0, "func", false)

	require.NoError(t, d.InsertAtCursor("x"))
	assert.Equal(t, "x", d.Text())
	assert.Nil(t, d.Ghost())
}

func TestDirtyRegion_AccumulatesAcrossEditsUntilFlushed(t *testing.T) {
	d := New("file:///a.go", "abc")
	d.SetSelection(Selection{Base: 0, Extent: 0})

	require.NoError(t, d.ReplaceRange(0, 0, "X"))
	require.NoError(t, d.ReplaceRange(4, 4, "Y"))

	dirty := d.DirtyRegion()
	require.NotNil(t, dirty)
	assert.Equal(t, 0, dirty.Start)

	flushed := d.FlushDirty()
	require.NotNil(t, flushed)
	assert.Nil(t, d.DirtyRegion())
}

func TestEventBus_EmitsTextChangedOnEdit(t *testing.T) {
	d := New("file:///a.go", "abc")
	fired := false
	d.Bus.Subscribe(eventbus.TextChanged, func(eventbus.Event) { fired = true })

	require.NoError(t, d.ReplaceRange(0, 0, "X"))
	assert.True(t, fired)
}
