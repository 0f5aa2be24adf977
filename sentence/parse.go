package sentence

// ParseSentence parses a single grammar template into its root Expression.
// This is the public entry point named in spec.md §6. The whole template
// is parsed as a Group-or-Alternative body, exactly like the interior of
// a (...) group, since a bare template is implicitly one top-level group.
func ParseSentence(text string) (Sentence, error) {
	return ParseSentenceWithMetadata(text, nil)
}

// ParseSentenceWithMetadata is ParseSentence plus diagnostic metadata
// (originating file, line, and intent name) attached to any ParseError it
// returns, and to the resulting Sentence's IntentName. Intent-catalogue
// loaders should prefer this over ParseSentence so a malformed template
// in a large catalogue can be traced back to its source.
func ParseSentenceWithMetadata(text string, metadata *ParseMetadata) (Sentence, error) {
	return parseSentenceWithMetadata(text, metadata)
}

func trimLeadingASCIISpace(s string) string {
	i := 0
	for i < len(s) && isASCIISpace(s[i]) {
		i++
	}
	return s[i:]
}

// parseExpression maps a single ParseChunk to an Expression, per spec.md
// §4.B.
func parseExpression(chunk ParseChunk, metadata *ParseMetadata) (Expression, error) {
	switch chunk.ParseType {
	case ParseWord:
		return TextChunk{Text: removeEscapes(chunk.Text)}, nil

	case ParseGroup:
		inner := removeDelimiters(chunk.Text, groupStart, groupEnd)
		return parseGroupOrAlt(inner, metadata)

	case ParseOpt:
		inner := removeDelimiters(chunk.Text, optStart, optEnd)
		seq, err := parseGroupOrAlt(inner, metadata)
		if err != nil {
			return nil, err
		}
		ensureAlternative(seq)
		seq.Items = append(seq.Items, TextChunk{Text: ""})
		return seq, nil

	case ParseList:
		inner := removeDelimiters(chunk.Text, listStart, listEnd)
		listName, slotName := inner, inner
		if idx := indexByte(inner, ':'); idx >= 0 {
			listName = inner[:idx]
			slotName = inner[idx+1:]
		}
		return ListReference{ListName: listName, SlotName: slotName}, nil

	case ParseRule:
		inner := removeDelimiters(chunk.Text, ruleStart, ruleEnd)
		return RuleReference{RuleName: inner}, nil

	default:
		return nil, &ParseError{Reason: "unexpected chunk type", Chunk: chunk.Text, Metadata: metadata}
	}
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// parseGroupOrAlt folds a chunk body (delimiters already stripped, or a
// whole top-level template) into a Group-or-Alternative Sequence.
func parseGroupOrAlt(body string, metadata *ParseMetadata) (*Sequence, error) {
	seq := &Sequence{Kind: SeqGroup}
	remaining := trimLeadingASCIISpace(body)
	lastRemaining := remaining

	for remaining != "" {
		chunk, err := nextChunk(remaining)
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			break
		}

		switch chunk.ParseType {
		case ParseWord, ParseGroup, ParseOpt, ParseList, ParseRule:
			item, err := parseExpression(*chunk, metadata)
			if err != nil {
				return nil, err
			}

			if seq.Kind == SeqAlternative {
				if len(seq.Items) == 0 {
					seq.Items = append(seq.Items, &Sequence{Kind: SeqGroup})
				}
				last, ok := seq.Items[len(seq.Items)-1].(*Sequence)
				if !ok {
					return nil, &ParseError{Reason: "alternative branch must be a group", Chunk: chunk.Text, Metadata: metadata}
				}
				last.Items = append(last.Items, item)
			} else {
				seq.Items = append(seq.Items, item)
			}

		case ParseAlt:
			ensureAlternative(seq)
			seq.Items = append(seq.Items, &Sequence{Kind: SeqGroup})

		default:
			return nil, &ParseError{Reason: "unexpected chunk in group", Chunk: chunk.Text, Metadata: metadata}
		}

		remaining = trimLeadingASCIISpace(remaining[chunk.EndIndex:])
		if remaining == lastRemaining {
			return nil, &ParseError{Reason: "parser made no progress", Chunk: remaining, Metadata: metadata}
		}
		lastRemaining = remaining
	}

	return seq, nil
}

// parseSentenceWithMetadata is used by intent-catalogue loading to attach
// file/line/intent diagnostics to parse errors.
func parseSentenceWithMetadata(text string, metadata *ParseMetadata) (Sentence, error) {
	seq, err := parseGroupOrAlt(text, metadata)
	if err != nil {
		if perr, ok := err.(*ParseError); ok && perr.Metadata == nil {
			perr.Metadata = metadata
		}
		return Sentence{}, err
	}

	intentName := ""
	if metadata != nil {
		intentName = metadata.IntentName
	}
	return Sentence{Expression: seq, Text: text, IntentName: intentName}, nil
}
