package rope

import "golang.org/x/text/unicode/bidi"

// bidiDirection classifies a run of text by its strong Unicode direction.
type bidiDirection int8

const (
	dirUnknown bidiDirection = iota
	dirNeutral
	dirLTR
	dirRTL
	dirMixed
)

// Direction reports the overall text direction of the rope: "ltr", "rtl",
// "neutral" (no strong-direction characters at all), or "mixed" when both
// LTR and RTL runs are present. Computed lazily and cached on the Rope;
// any mutation (including InsertInPlace/DeleteInPlace) invalidates it.
func (r *Rope) Direction() string {
	if r == nil || r.length == 0 {
		return "neutral"
	}
	if r.dirCache == dirUnknown {
		r.dirCache = computeDirection(r.root)
	}
	switch r.dirCache {
	case dirLTR:
		return "ltr"
	case dirRTL:
		return "rtl"
	case dirMixed:
		return "mixed"
	default:
		return "neutral"
	}
}

func computeDirection(n RopeNode) bidiDirection {
	if leaf, ok := n.(*LeafNode); ok {
		return textDirection(leaf.text)
	}
	in := n.(*InternalNode)
	left := computeDirection(in.left)
	right := computeDirection(in.right)
	return mergeDirection(left, right)
}

func mergeDirection(a, b bidiDirection) bidiDirection {
	if a == dirUnknown {
		a = dirNeutral
	}
	if b == dirUnknown {
		b = dirNeutral
	}
	if a == dirNeutral {
		return b
	}
	if b == dirNeutral {
		return a
	}
	if a == b {
		return a
	}
	return dirMixed
}

func textDirection(text string) bidiDirection {
	dir := dirNeutral
	for _, r := range text {
		switch runeDirection(r) {
		case dirLTR:
			dir = mergeDirection(dir, dirLTR)
		case dirRTL:
			dir = mergeDirection(dir, dirRTL)
		}
		if dir == dirMixed {
			return dirMixed
		}
	}
	return dir
}

// runeDirection classifies a single rune as strongly LTR, strongly RTL, or
// neutral, via the Unicode Bidi_Class lookup table in
// golang.org/x/text/unicode/bidi: Class L maps to LTR; R and AL (Hebrew,
// Arabic and related scripts) map to RTL; every other class (numbers,
// punctuation, CJK, emoji, ...) is neutral and takes its effective
// direction from its surrounding run, matching how the Unicode
// Bidirectional Algorithm treats weak/neutral characters.
func runeDirection(r rune) bidiDirection {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.L:
		return dirLTR
	case bidi.R, bidi.AL:
		return dirRTL
	default:
		return dirNeutral
	}
}

// BidiSegment is a maximal run of text sharing one direction.
type BidiSegment struct {
	Start int
	End   int
	Dir   string // "ltr" or "rtl"; neutral runs are merged into a neighbor
}

// BidiSegments splits [start, end) into maximal same-direction runs. Runs
// of neutral characters (digits, punctuation, spaces) are absorbed into
// the preceding strong-direction run, falling back to the direction of the
// following run at the very start of the range.
func (r *Rope) BidiSegments(start, end int) ([]BidiSegment, error) {
	text, err := r.Slice(start, end)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	dirs := make([]bidiDirection, len(runes))
	for i, rn := range runes {
		dirs[i] = runeDirection(rn)
	}

	// Resolve neutrals: look backward for the last strong direction, else
	// forward for the next one.
	resolved := make([]bidiDirection, len(runes))
	last := dirNeutral
	for i, d := range dirs {
		if d != dirNeutral {
			last = d
		}
		resolved[i] = last
	}
	next := dirNeutral
	for i := len(runes) - 1; i >= 0; i-- {
		if resolved[i] == dirNeutral {
			if dirs[i] != dirNeutral {
				next = dirs[i]
			}
			resolved[i] = next
		} else {
			next = resolved[i]
		}
	}

	var segments []BidiSegment
	segStart := 0
	segDir := resolved[0]
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || resolved[i] != segDir {
			segments = append(segments, BidiSegment{
				Start: start + segStart,
				End:   start + i,
				Dir:   dirName(segDir),
			})
			if i < len(runes) {
				segStart = i
				segDir = resolved[i]
			}
		}
	}
	return segments, nil
}

func dirName(d bidiDirection) string {
	if d == dirRTL {
		return "rtl"
	}
	return "ltr"
}

// RTLSegments returns only the right-to-left runs within [start, end).
func (r *Rope) RTLSegments(start, end int) ([]BidiSegment, error) {
	all, err := r.BidiSegments(start, end)
	if err != nil {
		return nil, err
	}
	var rtl []BidiSegment
	for _, seg := range all {
		if seg.Dir == "rtl" {
			rtl = append(rtl, seg)
		}
	}
	return rtl, nil
}
