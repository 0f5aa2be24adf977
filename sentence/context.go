package sentence

import "strings"

// MatchEntity is a named entity captured from a {slot_list} reference.
// Text is the exact original substring consumed from the input to
// produce this capture, not the matched template text.
type MatchEntity struct {
	Name  string
	Value any
	Text  string
}

// MatchSettings are the read-only inputs to match_expression: the
// catalogue's slot lists and expansion rules, and the whitespace policy.
type MatchSettings struct {
	SlotLists        map[string]SlotList
	ExpansionRules   map[string]Sentence
	IgnoreWhitespace bool
}

// MatchContext is an immutable snapshot of matcher progress: remaining
// input, captured entities so far, accumulated intent context, and
// whether the current position is a word boundary. Branching copies
// these logically; appendEntity/mergeContext keep branches from
// aliasing each other's slices/maps.
type MatchContext struct {
	Text          string
	Entities      []MatchEntity
	IntentContext map[string]any
	IsStartOfWord bool
}

// NewMatchContext builds the initial context a recognition attempt starts
// from.
func NewMatchContext(text string, intentContext map[string]any) MatchContext {
	if intentContext == nil {
		intentContext = map[string]any{}
	}
	return MatchContext{
		Text:          text,
		IntentContext: intentContext,
		IsStartOfWord: true,
	}
}

// IsMatch reports whether no text is left that isn't just whitespace or
// punctuation.
func (c MatchContext) IsMatch() bool {
	stripped := punctuationPattern.ReplaceAllString(c.Text, "")
	return strings.TrimSpace(stripped) == ""
}

// appendEntity returns a new slice consisting of base plus e, never
// mutating base's backing array (base may be shared with sibling
// branches produced during enumeration).
func appendEntity(base []MatchEntity, e MatchEntity) []MatchEntity {
	out := make([]MatchEntity, len(base)+1)
	copy(out, base)
	out[len(base)] = e
	return out
}

// mergeContext returns a new map containing base's entries overridden by
// extra's (extra wins on key collision), never mutating base.
func mergeContext(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
