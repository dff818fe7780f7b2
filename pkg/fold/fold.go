// Package fold computes and maintains code-fold ranges, either from
// bracket/indent scanning over the document text or from an LSP
// foldingRange reply, and keeps folded state anchored across edits.
//
// Grounded on the teacher's pkg/rope/word_boundary.go char-classification
// idiom (wordChar) and pkg/rope/line_ops.go's line-indexed view of a rope.
// Bracket scanning counts every character, with no regard to word
// boundaries, strings or comments.
package fold

// Range is a single fold range, keyed by its StartLine. EndLine is
// exclusive-safe per spec: lines (StartLine, EndLine] are hidden when
// Folded.
type Range struct {
	StartLine int
	EndLine   int
	Folded    bool
	Kind      string

	// OriginallyFoldedChildren remembers which nested ranges were folded
	// at the moment this range's parent was folded, so unfolding the
	// parent can restore exactly that state.
	OriginallyFoldedChildren []*Range
}

// Table is the set of fold ranges for one document, keyed by start line.
type Table struct {
	byStart map[int]*Range
}

// NewTable creates an empty fold table.
func NewTable() *Table {
	return &Table{byStart: make(map[int]*Range)}
}

// Ranges returns all fold ranges in start-line order.
func (t *Table) Ranges() []*Range {
	out := make([]*Range, 0, len(t.byStart))
	for _, r := range t.byStart {
		out = append(out, r)
	}
	sortRanges(out)
	return out
}

func sortRanges(rs []*Range) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j-1].StartLine > rs[j].StartLine; j-- {
			rs[j-1], rs[j] = rs[j], rs[j-1]
		}
	}
}

// Get returns the range starting at the given line, if any.
func (t *Table) Get(startLine int) (*Range, bool) {
	r, ok := t.byStart[startLine]
	return r, ok
}

// bracketPairs maps an opening bracket to its closer.
var bracketPairs = map[byte]byte{'{': '}', '(': ')', '[': ']'}

// wordChar reports whether b is in the editor's ASCII word class. Bracket
// scanning does not call it: matchBracket treats every character equally,
// per spec.md §4.4.
func wordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// ComputeLocal derives fold ranges from bracket and indent structure alone
// (the fallback used when no LSP folding ranges are available). lines is
// the document split into lines without trailing newlines; indentWidth
// gives each line's indent width in columns (tabs advance to the next
// multiple of 8).
func ComputeLocal(lines []string) []*Range {
	var ranges []*Range
	indents := make([]int, len(lines))
	for i, l := range lines {
		indents[i] = indentWidth(l)
	}

	for i, line := range lines {
		trimmed := trimRight(line)
		if trimmed == "" {
			continue
		}
		last := trimmed[len(trimmed)-1]
		switch last {
		case '{', '(', '[':
			if end := matchBracket(lines, i, last); end > i {
				ranges = append(ranges, &Range{StartLine: i, EndLine: end})
			}
		case ':':
			if end := indentFoldEnd(lines, indents, i); end > i {
				ranges = append(ranges, &Range{StartLine: i, EndLine: end})
			}
		}
	}
	return ranges
}

func trimRight(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\r') {
		end--
	}
	return s[:end]
}

func indentWidth(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 8 - (n % 8)
		default:
			return n
		}
	}
	return n
}

// matchBracket scans forward from startLine looking for the balanced
// closing bracket, tracking depth across the whole remaining document.
func matchBracket(lines []string, startLine int, open byte) int {
	close := bracketPairs[open]
	depth := 0
	for i := startLine; i < len(lines); i++ {
		for j := 0; j < len(lines[i]); j++ {
			c := lines[i][j]
			if i == startLine && j < len(lines[i])-1 {
				// only the trailing bracket on the start line seeded this
				// fold; still count any brackets earlier on that line.
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
	}
	return startLine
}

// indentFoldEnd finds the next line whose indent is <= the starting
// line's indent; the fold ends at the last line strictly more indented.
func indentFoldEnd(lines []string, indents []int, startLine int) int {
	base := indents[startLine]
	last := startLine
	for i := startLine + 1; i < len(lines); i++ {
		if trimRight(lines[i]) == "" {
			continue
		}
		if indents[i] <= base {
			break
		}
		last = i
	}
	return last
}

// LSPRange is a folding range as reported by the language server.
type LSPRange struct {
	StartLine int
	EndLine   int
	Kind      string
}

// ReplaceFromLSP replaces the table's contents with server-reported
// ranges, preserving Folded state from the previous table by matching on
// StartLine exactly or, failing that, on the nearest previous start line
// within ±3 lines (spec.md §4.4). The range counts and edit size are not
// compared.
func (t *Table) ReplaceFromLSP(ranges []LSPRange) {
	old := t.byStart
	next := make(map[int]*Range, len(ranges))

	for _, lr := range ranges {
		r := &Range{StartLine: lr.StartLine, EndLine: lr.EndLine, Kind: lr.Kind}
		if prev, ok := old[lr.StartLine]; ok {
			r.Folded = prev.Folded
			r.OriginallyFoldedChildren = prev.OriginallyFoldedChildren
		} else if prev, shift, ok := nearestWithin3(old, lr.StartLine); ok {
			r.Folded = prev.Folded
			r.OriginallyFoldedChildren = prev.OriginallyFoldedChildren
			_ = shift
		}
		next[lr.StartLine] = r
	}
	t.byStart = next
}

func nearestWithin3(byStart map[int]*Range, target int) (*Range, int, bool) {
	var best *Range
	bestDist := 4
	for start, r := range byStart {
		d := start - target
		if d < 0 {
			d = -d
		}
		if d <= 3 && d < bestDist {
			best, bestDist = r, d
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestDist, true
}

// Adjust shifts fold ranges after an edit at editLine that changed the
// document's line count by lineDelta, per the protocol in spec.md §4.4.
func (t *Table) Adjust(editLine, lineDelta int) {
	if lineDelta == 0 {
		return
	}
	next := make(map[int]*Range, len(t.byStart))
	for start, r := range t.byStart {
		switch {
		case r.EndLine < editLine:
			next[start] = r
		case start <= editLine && r.EndLine >= editLine:
			r.EndLine += lineDelta
			if r.EndLine >= r.StartLine {
				next[start] = r
			}
		case start > editLine:
			r.StartLine += lineDelta
			r.EndLine += lineDelta
			next[r.StartLine] = r
		default:
			next[start] = r
		}
	}
	t.byStart = next
}

// isTopLevel reports whether no other range in ranges strictly contains r.
func isTopLevel(r *Range, ranges []*Range) bool {
	for _, other := range ranges {
		if other == r {
			continue
		}
		if other.StartLine < r.StartLine && other.EndLine >= r.EndLine {
			return false
		}
	}
	return true
}

// children returns ranges strictly contained within parent.
func children(parent *Range, ranges []*Range) []*Range {
	var out []*Range
	for _, r := range ranges {
		if r == parent {
			continue
		}
		if r.StartLine >= parent.StartLine && r.EndLine <= parent.EndLine {
			out = append(out, r)
		}
	}
	return out
}

// Fold folds the range starting at startLine, remembering which of its
// children were already folded so Unfold can restore them.
func (t *Table) Fold(startLine int) bool {
	r, ok := t.byStart[startLine]
	if !ok || r.Folded {
		return false
	}
	all := t.Ranges()
	for _, c := range children(r, all) {
		if c.Folded {
			r.OriginallyFoldedChildren = append(r.OriginallyFoldedChildren, c)
		}
	}
	r.Folded = true
	return true
}

// Unfold unfolds the range starting at startLine, restoring the folded
// state of any remembered children.
func (t *Table) Unfold(startLine int) bool {
	r, ok := t.byStart[startLine]
	if !ok || !r.Folded {
		return false
	}
	r.Folded = false
	for _, c := range r.OriginallyFoldedChildren {
		c.Folded = true
	}
	r.OriginallyFoldedChildren = nil
	return true
}

// FoldAll folds every top-level range (a range not strictly contained by
// any other range).
func (t *Table) FoldAll() {
	all := t.Ranges()
	for _, r := range all {
		if isTopLevel(r, all) {
			t.Fold(r.StartLine)
		}
	}
}

// IsHidden reports whether line is hidden by a folded range, i.e. it lies
// in (StartLine, EndLine] of some folded range.
func (t *Table) IsHidden(line int) bool {
	for _, r := range t.byStart {
		if r.Folded && line > r.StartLine && line <= r.EndLine {
			return true
		}
	}
	return false
}
