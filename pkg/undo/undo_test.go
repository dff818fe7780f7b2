package undo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_CoalescesContiguousInserts(t *testing.T) {
	l := NewLog()
	base := time.Now()

	l.Record(Edit{Position: 0, InsertedText: "a", Timestamp: base})
	l.Record(Edit{Position: 1, InsertedText: "b", Timestamp: base.Add(10 * time.Millisecond)})
	l.Record(Edit{Position: 2, InsertedText: "c", Timestamp: base.Add(20 * time.Millisecond)})

	require.Equal(t, 1, l.Len())

	e, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, "abc", e.InsertedText)
	assert.Equal(t, 0, e.Position)
}

func TestLog_DoesNotCoalesceAcrossWindow(t *testing.T) {
	l := NewLog()
	base := time.Now()

	l.Record(Edit{Position: 0, InsertedText: "a", Timestamp: base})
	l.Record(Edit{Position: 1, InsertedText: "b", Timestamp: base.Add(time.Second)})

	assert.Equal(t, 2, l.Len())
}

func TestLog_RecordClearsRedo(t *testing.T) {
	l := NewLog()
	base := time.Now()

	l.Record(Edit{Position: 0, InsertedText: "a", Timestamp: base})
	_, ok := l.Undo()
	require.True(t, ok)
	require.True(t, l.CanRedo())

	l.Record(Edit{Position: 0, InsertedText: "z", Timestamp: base.Add(2 * time.Second)})
	assert.False(t, l.CanRedo())
}

func TestLog_TransactionMergesIntoOneStep(t *testing.T) {
	l := NewLog()
	base := time.Now()

	require.NoError(t, l.BeginTransaction())
	l.Record(Edit{Position: 0, RemovedText: "foo", Timestamp: base})
	l.Record(Edit{Position: 0, InsertedText: "bar", Timestamp: base})
	require.NoError(t, l.CommitTransaction())

	require.Equal(t, 1, l.Len())
	e, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, "foo", e.RemovedText)
	assert.Equal(t, "bar", e.InsertedText)
}

func TestLog_NestedTransactionFailsLoudly(t *testing.T) {
	l := NewLog()
	require.NoError(t, l.BeginTransaction())
	err := l.BeginTransaction()
	assert.Error(t, err)
	require.NoError(t, l.CommitTransaction())
}

func TestLog_BoundedAt500(t *testing.T) {
	l := NewLog()
	base := time.Now()
	for i := 0; i < MaxRecords+50; i++ {
		// Force no coalescing by spacing edits far apart in time and
		// making positions non-contiguous.
		l.Record(Edit{Position: i * 2, InsertedText: "x", Timestamp: base.Add(time.Duration(i) * time.Second)})
	}
	assert.Equal(t, MaxRecords, l.Len())
}
