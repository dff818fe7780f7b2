// Package search implements literal and regex find/replace over a
// document's text, with whole-word matching backed by UAX#29 word
// segmentation (github.com/clipperhouse/uax29/words) and regex mode
// compiled with github.com/dlclark/regexp2, the same libraries
// pkg/highlight uses for its rule engine.
package search

import (
	"strings"

	"github.com/clipperhouse/uax29/words"
	"github.com/dlclark/regexp2"
)

// Options configures one find query.
type Options struct {
	Regex         bool
	CaseSensitive bool
	WholeWord     bool
}

// Match is one located occurrence, in code-unit (rune) offsets.
type Match struct {
	Start int
	End   int
}

// Query holds a compiled search and its current results, supporting
// next/previous cycling and a current-match pointer.
type Query struct {
	pattern string
	opts    Options
	regex   *regexp2.Regexp
	matches []Match
	current int
	stale   bool
}

// isWordRune matches the editor's word-motion class: ASCII word
// characters plus the Arabic, Hebrew and Thaana-adjacent ranges named in
// spec.md §4.5.
func isWordRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x08A0 && r <= 0x08FF: // Arabic Extended-A
		return true
	case r >= 0x0590 && r <= 0x05FF: // Hebrew
		return true
	}
	return false
}

// New compiles a query. For regex mode the pattern is compiled once here;
// for literal mode no compilation is needed.
func New(pattern string, opts Options) (*Query, error) {
	q := &Query{pattern: pattern, opts: opts, stale: true}
	if opts.Regex {
		flags := regexp2.None
		if !opts.CaseSensitive {
			flags = regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(pattern, flags)
		if err != nil {
			return nil, err
		}
		q.regex = re
	}
	return q, nil
}

// Find runs the query against text, storing and returning the match list.
func (q *Query) Find(text string) []Match {
	var matches []Match
	if q.opts.Regex {
		matches = q.findRegex(text)
	} else {
		matches = q.findLiteral(text)
	}
	if q.opts.WholeWord {
		matches = filterWholeWord(matches, text)
	}
	q.matches = matches
	q.current = 0
	q.stale = false
	return matches
}

func (q *Query) findLiteral(text string) []Match {
	haystack, needle := text, q.pattern
	if !q.opts.CaseSensitive {
		haystack, needle = strings.ToLower(text), strings.ToLower(q.pattern)
	}
	if needle == "" {
		return nil
	}
	var matches []Match
	runes := []rune(haystack)
	needleRunes := []rune(needle)
	for i := 0; i+len(needleRunes) <= len(runes); i++ {
		if string(runes[i:i+len(needleRunes)]) == needle {
			matches = append(matches, Match{Start: i, End: i + len(needleRunes)})
		}
	}
	return matches
}

func (q *Query) findRegex(text string) []Match {
	var matches []Match
	m, _ := q.regex.FindStringMatch(text)
	runes := []rune(text)
	byteToRune := byteOffsetsToRuneOffsets(text)
	for m != nil {
		startRune := byteToRune[m.Index]
		endRune := byteToRune[m.Index+m.Length]
		matches = append(matches, Match{Start: startRune, End: endRune})
		m, _ = q.regex.FindNextMatch(m)
	}
	_ = runes
	return matches
}

// byteOffsetsToRuneOffsets builds a lookup from byte offset to rune
// offset so regexp2's byte-indexed matches can be reported in the
// code-unit offsets the rest of the editor uses.
func byteOffsetsToRuneOffsets(s string) map[int]int {
	m := make(map[int]int, len(s)+1)
	runeIdx := 0
	for byteIdx := range s {
		m[byteIdx] = runeIdx
		runeIdx++
	}
	m[len(s)] = runeIdx
	return m
}

// filterWholeWord keeps only matches whose boundaries coincide with a
// UAX#29 word-segment boundary, with both the character before the start
// and after the end failing the word-rune test (or being absent).
func filterWholeWord(matches []Match, text string) []Match {
	runes := []rune(text)
	segStarts := wordSegmentStarts(text)
	var out []Match
	for _, m := range matches {
		if m.Start > 0 && isWordRune(runes[m.Start-1]) && isWordRune(runes[m.Start]) {
			continue
		}
		if m.End < len(runes) && isWordRune(runes[m.End-1]) && isWordRune(runes[m.End]) {
			continue
		}
		if !segStarts[m.Start] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// wordSegmentStarts returns the rune offsets at which a UAX#29 word
// segment begins, used as a cross-check alongside the explicit
// character-class test above.
func wordSegmentStarts(text string) map[int]bool {
	starts := make(map[int]bool)
	pos := 0
	segs := words.SegmentAllString(text)
	for _, seg := range segs {
		starts[pos] = true
		pos += len([]rune(seg))
	}
	return starts
}

// Next advances the current-match pointer, cycling to the start.
func (q *Query) Next() (Match, bool) {
	if len(q.matches) == 0 {
		return Match{}, false
	}
	m := q.matches[q.current]
	q.current = (q.current + 1) % len(q.matches)
	return m, true
}

// Previous moves the current-match pointer backward, cycling to the end.
func (q *Query) Previous() (Match, bool) {
	if len(q.matches) == 0 {
		return Match{}, false
	}
	q.current = (q.current - 1 + len(q.matches)) % len(q.matches)
	return q.matches[q.current], true
}

// Matches returns the full current match list.
func (q *Query) Matches() []Match { return q.matches }

// Stale reports whether the match list must be recomputed before use,
// because a document edit intersected some match's range.
func (q *Query) Stale() bool { return q.stale }

// Invalidate marks the match list stale if editStart/editEnd intersects
// any current match; the caller must re-run Find before next access.
func (q *Query) Invalidate(editStart, editEnd int) {
	for _, m := range q.matches {
		if editStart < m.End && editEnd > m.Start {
			q.stale = true
			return
		}
	}
}
