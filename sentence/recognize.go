package sentence

import (
	"iter"
	"regexp"
	"sort"
	"strings"
)

// MatchOption configures a single IsMatch call.
type MatchOption func(*matchOptions)

type matchOptions struct {
	slotLists        map[string]SlotList
	expansionRules   map[string]Sentence
	skipWords        []string
	intentContext    map[string]any
	ignoreWhitespace bool
}

func WithMatchSlotLists(m map[string]SlotList) MatchOption {
	return func(o *matchOptions) { o.slotLists = m }
}

func WithMatchExpansionRules(m map[string]Sentence) MatchOption {
	return func(o *matchOptions) { o.expansionRules = m }
}

func WithMatchSkipWords(words []string) MatchOption {
	return func(o *matchOptions) { o.skipWords = words }
}

func WithMatchIntentContext(m map[string]any) MatchOption {
	return func(o *matchOptions) { o.intentContext = m }
}

func WithMatchIgnoreWhitespace(v bool) MatchOption {
	return func(o *matchOptions) { o.ignoreWhitespace = v }
}

// IsMatch returns the first matching context of text against sentence,
// or (nil, false) if there is none. err is non-nil only for a
// MissingListError/MissingRuleError configuration gap.
func IsMatch(text string, sentence Sentence, opts ...MatchOption) (*MatchContext, bool, error) {
	var o matchOptions
	for _, opt := range opts {
		opt(&o)
	}

	prepared := strings.TrimSpace(NormalizeText(text))
	if len(o.skipWords) > 0 {
		prepared = removeSkipWords(prepared, o.skipWords)
	}
	if o.ignoreWhitespace {
		prepared = whitespacePattern.ReplaceAllString(prepared, "")
	} else {
		prepared += " "
	}

	settings := MatchSettings{
		SlotLists:        o.slotLists,
		ExpansionRules:   o.expansionRules,
		IgnoreWhitespace: o.ignoreWhitespace,
	}

	var result *MatchContext
	err := withRecover(func() {
		ctx := NewMatchContext(prepared, o.intentContext)
		for mc := range matchExpression(settings, ctx, sentence.Expression) {
			if mc.IsMatch() {
				c := mc
				result = &c
				return
			}
		}
	})
	if err != nil {
		return nil, false, err
	}
	if result == nil {
		return nil, false, nil
	}
	return result, true, nil
}

// RecognizeOption configures a Recognize/RecognizeAll call.
type RecognizeOption func(*recognizeOptions)

type recognizeOptions struct {
	slotLists       map[string]SlotList
	expansionRules  map[string]Sentence
	skipWords       []string
	intentContext   map[string]any
	defaultResponse string
}

func WithSlotLists(m map[string]SlotList) RecognizeOption {
	return func(o *recognizeOptions) { o.slotLists = m }
}

func WithExpansionRules(m map[string]Sentence) RecognizeOption {
	return func(o *recognizeOptions) { o.expansionRules = m }
}

func WithSkipWords(words []string) RecognizeOption {
	return func(o *recognizeOptions) { o.skipWords = words }
}

func WithIntentContext(m map[string]any) RecognizeOption {
	return func(o *recognizeOptions) { o.intentContext = m }
}

func WithDefaultResponse(response string) RecognizeOption {
	return func(o *recognizeOptions) { o.defaultResponse = response }
}

// RecognizeResult is one accepted match: the intent it matched, its
// entities keyed by name (last-wins on duplicates) and as an
// order-preserving list (duplicates kept), and the response key to use.
type RecognizeResult struct {
	Intent       *Intent
	Entities     map[string]MatchEntity
	EntitiesList []MatchEntity
	Response     string
}

// Recognize returns the first accepted match, or (nil, false) if none of
// the catalogue's intents match text. err is non-nil only for a
// MissingListError/MissingRuleError configuration gap.
func Recognize(text string, intents *Intents, opts ...RecognizeOption) (*RecognizeResult, bool, error) {
	for result, err := range RecognizeAll(text, intents, opts...) {
		if err != nil {
			return nil, false, err
		}
		return result, true, nil
	}
	return nil, false, nil
}

// RecognizeAll implements spec.md §4.D: normalize, remove skip words,
// then for each intent/IntentData/sentence in catalogue order, run the
// matcher and apply the excludes/requires-context predicates, yielding
// every accepted RecognizeResult in grammar traversal order.
//
// The returned sequence pairs each item with an error, Go's idiom for a
// fallible iterator (iter.Seq2[V, error]): a non-nil error means a
// {list}/<rule> reference had no catalogue entry, and is the last item
// yielded.
func RecognizeAll(text string, intents *Intents, opts ...RecognizeOption) iter.Seq2[*RecognizeResult, error] {
	var o recognizeOptions
	o.defaultResponse = "default"
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(*RecognizeResult, error) bool) {
		prepared := strings.TrimSpace(NormalizeText(text))

		skipWords := append(append([]string{}, o.skipWords...), intents.SkipWords...)
		if len(skipWords) > 0 {
			prepared = removeSkipWords(prepared, skipWords)
		}

		if intents.Settings.IgnoreWhitespace {
			prepared = whitespacePattern.ReplaceAllString(prepared, "")
		} else {
			prepared += " "
		}

		slotLists := intents.SlotLists
		if o.slotLists != nil {
			slotLists = mergeSlotLists(intents.SlotLists, o.slotLists)
		}

		expansionRules := intents.ExpansionRules
		if o.expansionRules != nil {
			expansionRules = mergeExpansionRules(intents.ExpansionRules, o.expansionRules)
		}

		settings := MatchSettings{
			SlotLists:        slotLists,
			ExpansionRules:   expansionRules,
			IgnoreWhitespace: intents.Settings.IgnoreWhitespace,
		}

		intentContext := o.intentContext
		if intentContext == nil {
			intentContext = map[string]any{}
		}

		err := withRecover(func() {
			for _, intent := range intents.Intents {
				for _, data := range intent.Data {
					for _, sentence := range data.Sentences {
						ctx := NewMatchContext(prepared, intentContext)
						for mc := range matchExpression(settings, ctx, sentence.Expression) {
							if !mc.IsMatch() {
								continue
							}
							if excludedByContext(data, mc) {
								continue
							}
							if !satisfiesRequiredContext(data, mc) {
								continue
							}

							entities := mc.Entities
							for name, value := range data.Slots {
								entities = appendEntity(entities, MatchEntity{Name: name, Value: value, Text: ""})
							}

							response := o.defaultResponse
							if data.Response != nil {
								response = *data.Response
							}

							result := &RecognizeResult{
								Intent:       intent,
								Entities:     entitiesByName(entities),
								EntitiesList: entities,
								Response:     response,
							}

							if !yield(result, nil) {
								panic(stopIteration{})
							}
						}
					}
				}
			}
		})
		if err != nil {
			yield(nil, err)
		}
	}
}

// stopIteration unwinds the nested loops above when the consumer stops
// pulling from RecognizeAll; withRecover swallows it without surfacing an
// error since it isn't a matchFatal.
type stopIteration struct{}

func withRecover(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if mf, ok := r.(matchFatal); ok {
				err = mf.err
				return
			}
			if _, ok := r.(stopIteration); ok {
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

func excludedByContext(data IntentData, mc MatchContext) bool {
	for key, want := range data.ExcludesContext {
		actual := mc.IntentContext[key]
		if contextValueMatches(want, actual) {
			return true
		}
	}
	return false
}

// satisfiesRequiredContext implements spec.md §4.D step 5, including the
// resolved Open Question from §9: a nil context_value with the key
// absent from intent_context is rejected (absent implies "not set to
// anything").
func satisfiesRequiredContext(data IntentData, mc MatchContext) bool {
	for key, want := range data.RequiresContext {
		// Same .get()-style lookup as the original: a key that is absent
		// and a key explicitly set to nil are indistinguishable, both
		// read back as actual == nil.
		actual := mc.IntentContext[key]

		if want != nil && actual == want {
			continue
		}
		if want == nil && actual != nil {
			continue
		}
		if collection, isCollection := asCollection(want); isCollection && containsValue(collection, actual) {
			continue
		}

		return false
	}
	return true
}

func contextValueMatches(want, actual any) bool {
	if want == actual {
		return true
	}
	if collection, isCollection := asCollection(want); isCollection {
		return containsValue(collection, actual)
	}
	return false
}

// asCollection reports whether want is a non-string collection (used by
// requires_context/excludes_context to mean "any of these values"), per
// spec.md §3.
func asCollection(want any) ([]any, bool) {
	switch v := want.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func containsValue(collection []any, actual any) bool {
	for _, v := range collection {
		if v == actual {
			return true
		}
	}
	return false
}

func entitiesByName(entities []MatchEntity) map[string]MatchEntity {
	out := make(map[string]MatchEntity, len(entities))
	for _, e := range entities {
		out[e.Name] = e
	}
	return out
}

func mergeSlotLists(base, extra map[string]SlotList) map[string]SlotList {
	out := make(map[string]SlotList, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func mergeExpansionRules(base, extra map[string]Sentence) map[string]Sentence {
	out := make(map[string]Sentence, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// removeSkipWords deletes whole-word occurrences of each skip word from
// text, longest skip word first since they may share prefixes.
func removeSkipWords(text string, skipWords []string) string {
	words := append([]string{}, skipWords...)
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })

	for _, w := range words {
		w = NormalizeText(w)
		if w == "" {
			continue
		}
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
		text = pattern.ReplaceAllString(text, "")
	}

	return strings.TrimSpace(NormalizeWhitespace(text))
}
