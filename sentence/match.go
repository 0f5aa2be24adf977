package sentence

import (
	"iter"
	"strings"
)

// matchFatal wraps a MissingListError/MissingRuleError so it can unwind
// out of the middle of a lazily-enumerated match tree. It is recovered at
// the public entry points in recognize.go and converted back into a
// returned error — matching spec.md §7's "fatal for the entire
// recognition call" policy for a configuration gap that isn't a
// candidate non-match.
type matchFatal struct{ err error }

func fatalMissingList(name string) { panic(matchFatal{&MissingListError{ListName: name}}) }
func fatalMissingRule(name string) { panic(matchFatal{&MissingRuleError{RuleName: name}}) }

// matchExpression yields every context reachable by consuming zero or
// more characters of ctx.Text through expr. It is lazy: nothing is
// computed until the returned sequence is ranged over, and ranging stops
// as soon as the consumer stops pulling.
func matchExpression(settings MatchSettings, ctx MatchContext, expr Expression) iter.Seq[MatchContext] {
	return func(yield func(MatchContext) bool) {
		matchInto(settings, ctx, expr, yield)
	}
}

// matchInto is the recursive core; it returns false exactly when yield
// asked to stop, so callers composing multiple sub-matches can propagate
// the stop signal upward instead of wastefully continuing to enumerate.
func matchInto(settings MatchSettings, ctx MatchContext, expr Expression, yield func(MatchContext) bool) bool {
	switch e := expr.(type) {
	case TextChunk:
		return matchTextChunk(settings, ctx, e, yield)

	case *Sequence:
		switch e.Kind {
		case SeqAlternative:
			for _, item := range e.Items {
				if !matchInto(settings, ctx, item, yield) {
					return false
				}
			}
			return true
		case SeqGroup:
			return matchGroup(settings, ctx, e.Items, yield)
		default:
			panic(&InvariantError{Reason: "unexpected sequence kind"})
		}

	case ListReference:
		return matchListReference(settings, ctx, e, yield)

	case RuleReference:
		rule, ok := settings.ExpansionRules[e.RuleName]
		if !ok {
			fatalMissingRule(e.RuleName)
		}
		return matchInto(settings, ctx, rule.Expression, yield)

	default:
		panic(&InvariantError{Reason: "unexpected expression type"})
	}
	return true
}

// matchTextChunk implements spec.md §4.C's TextChunk rules, including the
// whitespace-at-word-boundary relaxation and the punctuation-stripping
// retry.
func matchTextChunk(settings MatchSettings, ctx MatchContext, chunk TextChunk, yield func(MatchContext) bool) bool {
	var chunkText, contextText string
	if settings.IgnoreWhitespace {
		chunkText = whitespacePattern.ReplaceAllString(chunk.Text, "")
		contextText = whitespacePattern.ReplaceAllString(ctx.Text, "")
	} else {
		chunkText = chunk.Text
		contextText = ctx.Text
		if ctx.IsStartOfWord {
			chunkText = strings.TrimLeft(chunkText, " \t\r\n\f\v")
			contextText = strings.TrimLeft(contextText, " \t\r\n\f\v")
		}
	}

	switch {
	case chunk.IsEmpty():
		return yield(ctx)

	case strings.HasPrefix(contextText, chunkText):
		remaining := contextText[len(chunkText):]
		return yield(MatchContext{
			Text:          remaining,
			IsStartOfWord: strings.HasSuffix(chunk.Text, " "),
			Entities:      ctx.Entities,
			IntentContext: ctx.IntentContext,
		})

	case isAllWhitespace(chunkText):
		return yield(MatchContext{
			Text:          contextText,
			IsStartOfWord: true,
			Entities:      ctx.Entities,
			IntentContext: ctx.IntentContext,
		})

	default:
		depunctuated := strings.TrimLeft(punctuationPattern.ReplaceAllString(ctx.Text, " "), " \t\r\n\f\v")
		if strings.HasPrefix(depunctuated, chunkText) {
			remaining := depunctuated[len(chunkText):]
			return yield(MatchContext{
				Text:          remaining,
				Entities:      ctx.Entities,
				IntentContext: ctx.IntentContext,
				IsStartOfWord: ctx.IsStartOfWord,
			})
		}
		return true
	}
}

func isAllWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			return false
		}
	}
	return true
}

// matchGroup folds items left to right: the working set of contexts
// after item i becomes the input to item i+1. Folding is eager (matching
// the reference implementation), but the outer sequence stays lazy —
// only the final set is yielded, one context at a time, stoppable by the
// consumer.
func matchGroup(settings MatchSettings, ctx MatchContext, items []Expression, yield func(MatchContext) bool) bool {
	if len(items) == 0 {
		return yield(ctx)
	}

	current := []MatchContext{ctx}
	for _, item := range items {
		var next []MatchContext
		for _, c := range current {
			for mc := range matchExpression(settings, c, item) {
				next = append(next, mc)
			}
		}
		current = next
		if len(current) == 0 {
			break
		}
	}

	for _, c := range current {
		if !yield(c) {
			return false
		}
	}
	return true
}

// matchListReference implements {list} matching for both TextSlotList and
// RangeSlotList, per spec.md §4.C.
func matchListReference(settings MatchSettings, ctx MatchContext, ref ListReference, yield func(MatchContext) bool) bool {
	slotList, ok := settings.SlotLists[ref.ListName]
	if !ok {
		fatalMissingList(ref.ListName)
	}

	switch list := slotList.(type) {
	case TextSlotList:
		if ctx.Text == "" {
			return true
		}
		for _, candidate := range list.Values {
			valueCtx := MatchContext{
				Text:          ctx.Text,
				Entities:      ctx.Entities,
				IntentContext: ctx.IntentContext,
				IsStartOfWord: ctx.IsStartOfWord,
			}
			for vc := range matchExpression(settings, valueCtx, candidate.TextIn) {
				consumedText := ctx.Text
				if vc.Text != "" {
					consumedText = ctx.Text[:len(ctx.Text)-len(vc.Text)]
				}
				entities := appendEntity(ctx.Entities, MatchEntity{
					Name:  ref.SlotName,
					Value: candidate.ValueOut,
					Text:  consumedText,
				})

				var resultCtx MatchContext
				if len(candidate.Context) > 0 {
					resultCtx = MatchContext{
						Entities:      entities,
						IntentContext: mergeContext(ctx.IntentContext, candidate.Context),
						Text:          vc.Text,
						IsStartOfWord: ctx.IsStartOfWord,
					}
				} else {
					resultCtx = MatchContext{
						Entities:      entities,
						Text:          vc.Text,
						IntentContext: vc.IntentContext,
						IsStartOfWord: ctx.IsStartOfWord,
					}
				}

				if !yield(resultCtx) {
					return false
				}
			}
		}
		return true

	case RangeSlotList:
		if ctx.Text == "" {
			return true
		}
		m := numberStartPattern.FindStringSubmatch(ctx.Text)
		if m == nil {
			return true
		}
		numberText := m[1]
		n, err := parseSignedInt(strings.TrimSpace(numberText))
		if err != nil {
			return true
		}
		if !list.Accepts(n) {
			return true
		}

		fields := strings.Fields(ctx.Text)
		capturedText := ""
		if len(fields) > 0 {
			capturedText = fields[0]
		}

		entities := appendEntity(ctx.Entities, MatchEntity{
			Name:  ref.SlotName,
			Value: n,
			Text:  capturedText,
		})

		return yield(MatchContext{
			Text:          ctx.Text[len(numberText):],
			Entities:      entities,
			IntentContext: ctx.IntentContext,
			IsStartOfWord: ctx.IsStartOfWord,
		})

	default:
		panic(&InvariantError{Reason: "unexpected slot list type"})
	}
}

func parseSignedInt(s string) (int, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &InvariantError{Reason: "non-digit in number span"}
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
