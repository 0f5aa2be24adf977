package sentence

// SlotList is the sum type over named value sources that a {list}
// reference can draw from: TextSlotList or RangeSlotList.
type SlotList interface {
	isSlotList()
}

// TextSlotListValue is one candidate value of a TextSlotList: an
// expression to match against the input, the value to emit when it
// matches, optional intent-context to merge in, and whether TextIn was
// built by re-parsing the input text as a template.
type TextSlotListValue struct {
	TextIn        Expression
	ValueOut      any
	Context       map[string]any
	AllowTemplate bool
}

// TextSlotList is an ordered collection of candidate text values.
type TextSlotList struct {
	Values []TextSlotListValue
}

func (TextSlotList) isSlotList() {}

// NewTextSlotListFromStrings builds a TextSlotList where each string is
// both the matched text and the emitted value. When allowTemplate is
// true (the common case) each string is parsed as a grammar template, so
// e.g. "light[s]" matches both "light" and "lights". When false, the
// string is treated as a literal TextChunk instead.
func NewTextSlotListFromStrings(values []string, allowTemplate bool) (TextSlotList, error) {
	list := TextSlotList{Values: make([]TextSlotListValue, 0, len(values))}
	for _, v := range values {
		textIn, err := textInForValue(v, allowTemplate)
		if err != nil {
			return TextSlotList{}, err
		}
		list.Values = append(list.Values, TextSlotListValue{
			TextIn:        textIn,
			ValueOut:      v,
			AllowTemplate: allowTemplate,
		})
	}
	return list, nil
}

// NewTextSlotList builds a TextSlotList from fully-specified values, for
// callers that need distinct text/value pairs or per-value context (e.g.
// an intent-catalogue loader mapping "kitchen" to an area id).
func NewTextSlotList(values []TextSlotListValue) TextSlotList {
	return TextSlotList{Values: values}
}

func textInForValue(text string, allowTemplate bool) (Expression, error) {
	if !allowTemplate {
		return TextChunk{Text: text}, nil
	}
	sentence, err := ParseSentence(text)
	if err != nil {
		return nil, err
	}
	return sentence.Expression, nil
}

// RangeSlotList matches an integer n such that start <= n <= stop and,
// when step != 1, (n - start) mod step == 0.
type RangeSlotList struct {
	Start int
	Stop  int
	Step  int
}

func (RangeSlotList) isSlotList() {}

// NewRangeSlotList builds a RangeSlotList, defaulting Step to 1 when 0 is
// given (an unspecified step means unit step).
func NewRangeSlotList(start, stop, step int) RangeSlotList {
	if step == 0 {
		step = 1
	}
	return RangeSlotList{Start: start, Stop: stop, Step: step}
}

// Accepts reports whether n falls within the range, per spec.md §3/§8.
func (r RangeSlotList) Accepts(n int) bool {
	if n < r.Start || n > r.Stop {
		return false
	}
	if r.Step == 1 {
		return true
	}
	return (n-r.Start)%r.Step == 0
}
