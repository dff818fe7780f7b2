// Package highlight implements incremental, per-line syntax tokenization
// with a rolling end-state invalidation cascade, plus a semantic-token
// overlay from the LSP client.
//
// The rule engine compiles with github.com/dlclark/regexp2 rather than the
// standard library regexp package: regexp2 supports the backreferences and
// lookaround assertions language-mode rule tables commonly need, which
// RE2-based stdlib regexp cannot express — the teacher already pulls this
// library in transitively (via goja's sourcemap parsing); here it is a
// direct, load-bearing dependency.
package highlight

import (
	"sort"

	"github.com/dlclark/regexp2"
)

// StyleRun is one contiguous run of a single style within a line.
type StyleRun struct {
	Start    int
	End      int
	StyleKey string
}

// Rule is one regex-driven lexical rule. EndState, when non-empty, names
// the tokenizer state this rule transitions into (e.g. entering a block
// comment); StartState restricts the rule to only match in that state
// ("" matches in every state).
type Rule struct {
	Name       string
	Pattern    *regexp2.Regexp
	StyleKey   string
	StartState string
	EndState   string
}

// NewRule compiles a regex-rule pair. pattern uses regexp2 syntax.
func NewRule(name, pattern, styleKey string) (Rule, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Name: name, Pattern: re, StyleKey: styleKey}, nil
}

// Mode is an ordered table of lexical rules for one language.
type Mode struct {
	Rules        []Rule
	DefaultStyle string
}

// SemanticToken is one server-reported semantic classification, already
// reassembled into absolute (line, column) form by pkg/lsp/client.
type SemanticToken struct {
	Line      int
	StartCol  int
	Length    int
	Type      string
	Modifiers []string
}

// lineState is the tokenizer end-state cached per line, used to decide
// whether a downstream line needs re-tokenization.
type lineState struct {
	valid    bool
	endState string
}

// Highlighter maintains rolling per-line tokenizer state plus a
// version-gated semantic-token overlay.
type Highlighter struct {
	mode   *Mode
	states []lineState

	semanticByLine  map[int][]SemanticToken
	semanticVersion int
}

// New creates a Highlighter for the given language mode.
func New(mode *Mode) *Highlighter {
	return &Highlighter{mode: mode, semanticByLine: make(map[int][]SemanticToken)}
}

func (h *Highlighter) ensureCapacity(n int) {
	for len(h.states) < n {
		h.states = append(h.states, lineState{})
	}
}

// HighlightLine tokenizes lineText with the mode's rule table starting
// from the previous line's cached end-state, returning style runs with
// precedence semantic > regex > default. It recomputes line's end-state
// and, if it differs from the previously cached valid one, marks the
// cached state of every later line invalid; those lines are
// re-tokenized as the caller highlights them again.
func (h *Highlighter) HighlightLine(lineIndex int, lineText string) []StyleRun {
	h.ensureCapacity(lineIndex + 1)

	startState := ""
	if lineIndex > 0 && lineIndex-1 < len(h.states) && h.states[lineIndex-1].valid {
		startState = h.states[lineIndex-1].endState
	}

	runs, endState := h.tokenizeLine(lineText, startState)

	prevEnd := h.states[lineIndex].endState
	prevValid := h.states[lineIndex].valid
	h.states[lineIndex] = lineState{valid: true, endState: endState}

	if prevValid && prevEnd != endState {
		h.invalidateFrom(lineIndex + 1)
	}

	return h.overlaySemantic(lineIndex, runs)
}

func (h *Highlighter) invalidateFrom(lineIndex int) {
	for i := lineIndex; i < len(h.states); i++ {
		h.states[i].valid = false
	}
}

func (h *Highlighter) tokenizeLine(lineText, startState string) ([]StyleRun, string) {
	state := startState
	var runs []StyleRun
	pos := 0
	for pos < len(lineText) {
		matchedLen := 0
		var matchedRule *Rule
		for i := range h.mode.Rules {
			rule := &h.mode.Rules[i]
			if rule.StartState != "" && rule.StartState != state {
				continue
			}
			m, err := rule.Pattern.FindStringMatch(lineText[pos:])
			if err != nil || m == nil || m.Index != 0 {
				continue
			}
			if m.Length > matchedLen {
				matchedLen = m.Length
				matchedRule = rule
			}
		}
		if matchedRule == nil || matchedLen == 0 {
			pos++
			continue
		}
		runs = append(runs, StyleRun{Start: pos, End: pos + matchedLen, StyleKey: matchedRule.StyleKey})
		if matchedRule.EndState != "" {
			state = matchedRule.EndState
		}
		pos += matchedLen
	}
	return mergeAdjacent(runs, h.mode.DefaultStyle, len(lineText)), state
}

// mergeAdjacent fills gaps between rule matches with the mode's default
// style, producing a contiguous run list covering [0, lineLen).
func mergeAdjacent(runs []StyleRun, defaultStyle string, lineLen int) []StyleRun {
	sort.Slice(runs, func(i, j int) bool { return runs[i].Start < runs[j].Start })
	var out []StyleRun
	pos := 0
	for _, r := range runs {
		if r.Start > pos {
			out = append(out, StyleRun{Start: pos, End: r.Start, StyleKey: defaultStyle})
		}
		out = append(out, r)
		pos = r.End
	}
	if pos < lineLen {
		out = append(out, StyleRun{Start: pos, End: lineLen, StyleKey: defaultStyle})
	}
	return out
}

// ApplySemanticTokens replaces the semantic overlay iff version is not
// older than the highest version already applied (stale payloads are a
// silent no-op, per spec.md's staleness rule).
func (h *Highlighter) ApplySemanticTokens(tokens []SemanticToken, version int) bool {
	if version < h.semanticVersion {
		return false
	}
	byLine := make(map[int][]SemanticToken)
	for _, tok := range tokens {
		byLine[tok.Line] = append(byLine[tok.Line], tok)
	}
	h.semanticByLine = byLine
	h.semanticVersion = version
	return true
}

// SemanticVersion reports the highest semantic-token version applied.
func (h *Highlighter) SemanticVersion() int { return h.semanticVersion }

// overlaySemantic splits lexical runs wherever a semantic token overrides
// part of the line, giving semantic tokens precedence.
func (h *Highlighter) overlaySemantic(lineIndex int, runs []StyleRun) []StyleRun {
	toks := h.semanticByLine[lineIndex]
	if len(toks) == 0 {
		return runs
	}
	out := make([]StyleRun, 0, len(runs)+len(toks))
	for _, run := range runs {
		cur := run.Start
		for _, tok := range toks {
			ts, te := tok.StartCol, tok.StartCol+tok.Length
			if te <= cur || ts >= run.End {
				continue
			}
			if ts > cur {
				out = append(out, StyleRun{Start: cur, End: ts, StyleKey: run.StyleKey})
			}
			segEnd := te
			if segEnd > run.End {
				segEnd = run.End
			}
			out = append(out, StyleRun{Start: ts, End: segEnd, StyleKey: tok.Type})
			cur = segEnd
		}
		if cur < run.End {
			out = append(out, StyleRun{Start: cur, End: run.End, StyleKey: run.StyleKey})
		}
	}
	return out
}

// ApplyDocumentEdit shifts cached line state after an edit spanning
// [oldStartLine, oldEndLine) that produced newLineCount lines in its
// place, and marks the edit's starting line for re-tokenization.
func (h *Highlighter) ApplyDocumentEdit(oldStartLine, oldEndLine, newLineCount int) {
	delta := newLineCount - (oldEndLine - oldStartLine)
	if delta != 0 {
		if delta > 0 {
			ins := make([]lineState, delta)
			tail := append([]lineState{}, h.states[oldEndLine:]...)
			h.states = append(h.states[:oldEndLine], append(ins, tail...)...)
		} else {
			n := -delta
			if oldEndLine-n >= oldStartLine && oldEndLine <= len(h.states) {
				h.states = append(h.states[:oldEndLine-n], h.states[oldEndLine:]...)
			}
		}
	}
	h.invalidateFrom(oldStartLine)
}
