package sentence

// Expression is the sum type over the nodes of a parsed sentence template:
// TextChunk, Sequence (Group or Alternative), ListReference, RuleReference.
type Expression interface {
	isExpression()
}

// TextChunk is a literal span of grammar text. It appears empty only as
// the "nothing" branch appended to an Alternative built from an optional.
type TextChunk struct {
	Text string
}

func (TextChunk) isExpression() {}

// IsEmpty reports whether this chunk carries no literal text.
func (c TextChunk) IsEmpty() bool { return c.Text == "" }

// SequenceKind distinguishes Group (all items must match, in order) from
// Alternative (exactly one item matches).
type SequenceKind int

const (
	SeqGroup SequenceKind = iota
	SeqAlternative
)

// Sequence is a Group or an Alternative over child expressions. An
// Alternative's items are themselves Groups (wrapping happens in the
// parser via ensureAlternative), except for the empty TextChunk branch
// an optional appends. An empty Group matches the empty string.
type Sequence struct {
	Kind  SequenceKind
	Items []Expression
}

func (*Sequence) isExpression() {}

// ListReference is a {list} or {list:slot} reference to a named slot list.
// SlotName defaults to ListName when no ":slot" suffix is present.
type ListReference struct {
	ListName string
	SlotName string
}

func (ListReference) isExpression() {}

// RuleReference is an <rule> reference to a named expansion rule, inlined
// at the reference site during matching.
type RuleReference struct {
	RuleName string
}

func (RuleReference) isExpression() {}

// Sentence is the root expression of a parsed template, plus metadata used
// for diagnostics and for associating the template with its owning intent.
type Sentence struct {
	Expression Expression
	Text       string
	IntentName string
}

// ensureAlternative is the canonical promotion of a Sequence to an
// Alternative: if seq is already an Alternative it is returned unchanged;
// otherwise its current items become the sole branch Group of a new
// Alternative.
func ensureAlternative(seq *Sequence) {
	if seq.Kind == SeqAlternative {
		return
	}
	seq.Kind = SeqAlternative
	seq.Items = []Expression{
		&Sequence{Kind: SeqGroup, Items: seq.Items},
	}
}
