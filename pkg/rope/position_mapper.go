package rope

import (
	"sort"
)

// Assoc represents cursor association behavior for operations.
// This determines how a position should be adjusted after edits.
type Assoc int

const (
	// AssocBefore places the position before the inserted/deleted text.
	AssocBefore Assoc = iota

	// AssocAfter places the position after the inserted/deleted text.
	AssocAfter

	// AssocBeforeWord moves the position to the start of the word before it.
	AssocBeforeWord

	// AssocAfterWord moves the position to the start of the word after it.
	AssocAfterWord

	// AssocBeforeSticky keeps the position at the same relative offset in exact-size replacements.
	AssocBeforeSticky

	// AssocAfterSticky keeps the position at the same relative offset in exact-size replacements.
	AssocAfterSticky
)

// String returns the string representation of Assoc.
func (a Assoc) String() string {
	switch a {
	case AssocBefore:
		return "Before"
	case AssocAfter:
		return "After"
	case AssocBeforeWord:
		return "BeforeWord"
	case AssocAfterWord:
		return "AfterWord"
	case AssocBeforeSticky:
		return "BeforeSticky"
	case AssocAfterSticky:
		return "AfterSticky"
	default:
		return "Unknown"
	}
}

// Position represents a position in the document with association information,
// used to track cursors and diagnostics ranges across edits.
type Position struct {
	Pos    int
	Assoc  Assoc
	Offset int // offset from Pos, for sticky positioning
}

// NewPosition creates a new position with the given position and association.
func NewPosition(pos int, assoc Assoc) *Position {
	return &Position{Pos: pos, Assoc: assoc}
}

// NewPositionWithOffset creates a new position with offset for sticky positioning.
func NewPositionWithOffset(pos int, assoc Assoc, offset int) *Position {
	return &Position{Pos: pos, Assoc: assoc, Offset: offset}
}

// PositionMapper maps positions through a ChangeSet. Editors use this to keep
// cursors, selections and LSP diagnostic ranges anchored to the same logical
// place in the document as edits are applied.
type PositionMapper struct {
	changeset    *ChangeSet
	positions    []*Position
	document     *Rope
	wordBoundary *WordBoundary
}

// NewPositionMapper creates a new position mapper for the given changeset.
func NewPositionMapper(cs *ChangeSet) *PositionMapper {
	return &PositionMapper{
		changeset: cs,
		positions: make([]*Position, 0),
	}
}

// NewPositionMapperWithDoc creates a new position mapper with a document
// attached, enabling AssocBeforeWord/AssocAfterWord to snap to word boundaries.
func NewPositionMapperWithDoc(cs *ChangeSet, doc *Rope) *PositionMapper {
	return &PositionMapper{
		changeset:    cs,
		positions:    make([]*Position, 0),
		document:     doc,
		wordBoundary: NewWordBoundary(doc),
	}
}

// AddPosition adds a position to be mapped. Returns the mapper for chaining.
func (pm *PositionMapper) AddPosition(pos int, assoc Assoc) *PositionMapper {
	pm.positions = append(pm.positions, &Position{Pos: pos, Assoc: assoc})
	return pm
}

// AddPositionWithOffset adds a position with offset for sticky positioning.
func (pm *PositionMapper) AddPositionWithOffset(pos int, assoc Assoc, offset int) *PositionMapper {
	pm.positions = append(pm.positions, &Position{Pos: pos, Assoc: assoc, Offset: offset})
	return pm
}

// AddPositions adds multiple positions at once with their associations.
func (pm *PositionMapper) AddPositions(positions []int, assocs []Assoc) *PositionMapper {
	for i, pos := range positions {
		assoc := AssocBefore
		if i < len(assocs) {
			assoc = assocs[i]
		}
		pm.positions = append(pm.positions, &Position{Pos: pos, Assoc: assoc})
	}
	return pm
}

// Map maps all added positions through the changeset and returns the new
// positions in the same order they were added.
func (pm *PositionMapper) Map() []int {
	if len(pm.positions) == 0 {
		return []int{}
	}
	if pm.isSorted() {
		return pm.mapSorted()
	}
	return pm.mapUnsorted()
}

// MapOptimized always takes the O(N+M) path by sorting positions first.
// Returns the same results as Map, just with a guaranteed running time.
func (pm *PositionMapper) MapOptimized() []int {
	if len(pm.positions) == 0 {
		return []int{}
	}
	if !pm.isSorted() {
		pm.sortPositions()
	}
	return pm.mapSorted()
}

func (pm *PositionMapper) sortPositions() {
	sort.SliceStable(pm.positions, func(i, j int) bool {
		return pm.positions[i].Pos < pm.positions[j].Pos
	})
}

func (pm *PositionMapper) isSorted() bool {
	for i := 1; i < len(pm.positions); i++ {
		if pm.positions[i].Pos < pm.positions[i-1].Pos {
			return false
		}
	}
	return true
}

// mapSorted maps positions in a single O(N+M) pass over the changeset.
func (pm *PositionMapper) mapSorted() []int {
	result := make([]int, len(pm.positions))

	for i, position := range pm.positions {
		targetPos := position.Pos
		oldPos := 0
		newPos := 0

		for _, op := range pm.changeset.operations {
			if oldPos > targetPos {
				break
			}
			if oldPos == targetPos && op.OpType != OpInsert {
				break
			}

			switch op.OpType {
			case OpRetain:
				if oldPos+op.Length >= targetPos {
					advance := targetPos - oldPos
					oldPos += advance
					newPos += advance
				} else {
					oldPos += op.Length
					newPos += op.Length
				}

			case OpDelete:
				if oldPos+op.Length > targetPos {
					oldPos = targetPos
				} else {
					oldPos += op.Length
				}

			case OpInsert:
				newPos += len([]rune(op.Text))
			}
		}

		if oldPos < targetPos {
			remaining := targetPos - oldPos
			newPos += remaining
			oldPos += remaining
		}

		result[i] = pm.applyAssociation(position, targetPos, newPos, oldPos)
	}

	return result
}

// mapUnsorted maps positions independently in O(M*N) time.
func (pm *PositionMapper) mapUnsorted() []int {
	result := make([]int, len(pm.positions))
	for i, position := range pm.positions {
		result[i] = pm.mapSinglePosition(position)
	}
	return result
}

func (pm *PositionMapper) mapSinglePosition(position *Position) int {
	pos := 0
	newPos := 0
	oldPos := position.Pos

	for _, op := range pm.changeset.operations {
		switch op.OpType {
		case OpRetain:
			if pos+op.Length >= oldPos {
				newPos += oldPos - pos
				return pm.applyAssociation(position, oldPos, newPos, oldPos)
			}
			pos += op.Length
			newPos += op.Length

		case OpDelete:
			if pos+op.Length >= oldPos {
				return pm.applyAssociation(position, oldPos, newPos, pos)
			}
			pos += op.Length

		case OpInsert:
			if pos >= oldPos {
				return pm.applyAssociation(position, oldPos, newPos, pos)
			}
			newPos += len([]rune(op.Text))
		}

		if pos >= oldPos {
			break
		}
	}

	return newPos
}

// applyAssociation resolves the final mapped position for a Position given
// its association mode.
func (pm *PositionMapper) applyAssociation(position *Position, oldPos, newPos, currentPos int) int {
	switch position.Assoc {
	case AssocBefore, AssocAfter:
		return newPos

	case AssocBeforeWord:
		if pm.wordBoundary != nil {
			return pm.wordBoundary.PrevWordStart(newPos)
		}
		return newPos

	case AssocAfterWord:
		if pm.wordBoundary != nil {
			return pm.wordBoundary.NextWordStart(newPos)
		}
		return newPos

	case AssocBeforeSticky, AssocAfterSticky:
		return newPos + position.Offset

	default:
		return newPos
	}
}

// MapPositions is a convenience function to map positions through a changeset
// using a single association for all of them.
func MapPositions(cs *ChangeSet, positions []int, assoc Assoc) []int {
	mapper := NewPositionMapper(cs)
	for _, pos := range positions {
		mapper.AddPosition(pos, assoc)
	}
	return mapper.Map()
}

// MapPositionsOptimized is a convenience function for batch position mapping
// that always sorts positions first for guaranteed O(N+M) performance.
func MapPositionsOptimized(cs *ChangeSet, positions []int, assocs []Assoc) []int {
	mapper := NewPositionMapper(cs)
	mapper.AddPositions(positions, assocs)
	return mapper.MapOptimized()
}
