package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLocal_BracketFold(t *testing.T) {
	lines := []string{
		"func main() {",
		"    x := 1",
		"    _ = x",
		"}",
	}
	ranges := ComputeLocal(lines)
	require.Len(t, ranges, 1)
	assert.Equal(t, 0, ranges[0].StartLine)
	assert.Equal(t, 3, ranges[0].EndLine)
}

func TestComputeLocal_IndentFold(t *testing.T) {
	lines := []string{
		"if true:",
		"    do_something()",
		"    do_more()",
		"done()",
	}
	ranges := ComputeLocal(lines)
	require.Len(t, ranges, 1)
	assert.Equal(t, 0, ranges[0].StartLine)
	assert.Equal(t, 2, ranges[0].EndLine)
}

func TestTable_FoldUnfoldNestedChildren(t *testing.T) {
	table := NewTable()
	table.ReplaceFromLSP([]LSPRange{
		{StartLine: 0, EndLine: 10},
		{StartLine: 2, EndLine: 5},
	})
	require.True(t, table.Fold(2))
	require.True(t, table.Fold(0))

	r0, _ := table.Get(0)
	assert.True(t, r0.Folded)
	r2, _ := table.Get(2)
	assert.True(t, r2.Folded)

	table.Unfold(0)
	r2, _ = table.Get(2)
	assert.True(t, r2.Folded, "child fold state should be restored on parent unfold")
}

func TestTable_FoldAllFoldsOnlyTopLevel(t *testing.T) {
	table := NewTable()
	table.ReplaceFromLSP([]LSPRange{
		{StartLine: 0, EndLine: 10},
		{StartLine: 2, EndLine: 5},
	})
	table.FoldAll()
	r0, _ := table.Get(0)
	assert.True(t, r0.Folded)
}

func TestTable_AdjustShiftsAcrossEdit(t *testing.T) {
	table := NewTable()
	table.ReplaceFromLSP([]LSPRange{{StartLine: 2, EndLine: 7}})
	table.Fold(2)

	table.Adjust(5, 1)

	r, ok := table.Get(2)
	require.True(t, ok)
	assert.Equal(t, 8, r.EndLine)
	assert.True(t, r.Folded)
}

func TestTable_ReplaceFromLSPPreservesFoldedWithinFuzzyWindow(t *testing.T) {
	table := NewTable()
	table.ReplaceFromLSP([]LSPRange{{StartLine: 2, EndLine: 7}})
	table.Fold(2)

	// Server's start line shifted by 2 after an edit of similar size.
	table.ReplaceFromLSP([]LSPRange{{StartLine: 4, EndLine: 9}})

	r, ok := table.Get(4)
	require.True(t, ok)
	assert.True(t, r.Folded)
}

func TestTable_IsHidden(t *testing.T) {
	table := NewTable()
	table.ReplaceFromLSP([]LSPRange{{StartLine: 2, EndLine: 7}})
	table.Fold(2)

	assert.False(t, table.IsHidden(2))
	assert.True(t, table.IsHidden(3))
	assert.True(t, table.IsHidden(7))
	assert.False(t, table.IsHidden(8))
}
