// Package sample draws random concrete utterances from a parsed sentence
// template, for round-trip testing the matcher: generate a phrase, then
// confirm it matches the template it came from.
//
// The branch-picking algorithm is adapted from the teacher's phrase
// generator (compose/Generate in the original grammar package): walk the
// expression tree, and at each Alternative pick one branch at random.
package sample

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"sentencematch/sentence"
)

// Generator draws concrete utterances from sentence.Expression trees.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Utterance composes one concrete phrase matching expr, resolving
// {list} and <rule> references against lists and rules. It returns an
// error if a reference has no entry, mirroring the matcher's own
// MissingListError/MissingRuleError policy.
func (g *Generator) Utterance(expr sentence.Expression, lists map[string]sentence.SlotList, rules map[string]sentence.Sentence) (string, error) {
	parts, err := g.compose(expr, lists, rules)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(joinWords(parts)), nil
}

func (g *Generator) compose(expr sentence.Expression, lists map[string]sentence.SlotList, rules map[string]sentence.Sentence) ([]string, error) {
	switch e := expr.(type) {
	case sentence.TextChunk:
		if e.IsEmpty() {
			return nil, nil
		}
		return []string{e.Text}, nil

	case *sentence.Sequence:
		if e.Kind == sentence.SeqAlternative {
			if len(e.Items) == 0 {
				return nil, nil
			}
			pick := e.Items[g.rnd.Intn(len(e.Items))]
			return g.compose(pick, lists, rules)
		}
		var out []string
		for _, item := range e.Items {
			part, err := g.compose(item, lists, rules)
			if err != nil {
				return nil, err
			}
			out = append(out, part...)
		}
		return out, nil

	case sentence.ListReference:
		list, ok := lists[e.ListName]
		if !ok {
			return nil, &sentence.MissingListError{ListName: e.ListName}
		}
		return g.sampleList(list, lists, rules)

	case sentence.RuleReference:
		rule, ok := rules[e.RuleName]
		if !ok {
			return nil, &sentence.MissingRuleError{RuleName: e.RuleName}
		}
		return g.compose(rule.Expression, lists, rules)

	default:
		return nil, fmt.Errorf("sample: unhandled expression type %T", expr)
	}
}

func (g *Generator) sampleList(list sentence.SlotList, lists map[string]sentence.SlotList, rules map[string]sentence.Sentence) ([]string, error) {
	switch l := list.(type) {
	case sentence.TextSlotList:
		if len(l.Values) == 0 {
			return nil, fmt.Errorf("sample: empty text slot list")
		}
		value := l.Values[g.rnd.Intn(len(l.Values))]
		return g.compose(value.TextIn, lists, rules)

	case sentence.RangeSlotList:
		span := (l.Stop-l.Start)/l.Step + 1
		n := l.Start + g.rnd.Intn(span)*l.Step
		return []string{strconv.Itoa(n)}, nil

	default:
		return nil, fmt.Errorf("sample: unhandled slot list type %T", list)
	}
}

// joinWords concatenates word fragments with a single space, the way the
// tokenizer expects literal runs to be separated.
func joinWords(parts []string) string {
	return strings.Join(parts, " ")
}
