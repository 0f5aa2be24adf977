package sentence

import "strings"

// ParseType identifies the syntactic category of a ParseChunk.
type ParseType int

const (
	ParseWord ParseType = iota
	ParseGroup
	ParseOpt
	ParseList
	ParseRule
	ParseAlt
)

func (t ParseType) String() string {
	switch t {
	case ParseWord:
		return "WORD"
	case ParseGroup:
		return "GROUP"
	case ParseOpt:
		return "OPT"
	case ParseList:
		return "LIST"
	case ParseRule:
		return "RULE"
	case ParseAlt:
		return "ALT"
	default:
		return "?"
	}
}

const (
	groupStart = '('
	groupEnd   = ')'
	optStart   = '['
	optEnd     = ']'
	listStart  = '{'
	listEnd    = '}'
	ruleStart  = '<'
	ruleEnd    = '>'
	altSep     = '|'
	escapeRune = '\\'
)

// ParseChunk is the next top-level lexeme scanned from grammar source text.
// Text includes the surrounding delimiters for bracketed chunks; the
// parser is responsible for stripping them. EndIndex is the offset into
// the string passed to nextChunk immediately after this chunk (including
// any leading whitespace that was skipped to reach it).
type ParseChunk struct {
	ParseType ParseType
	Text      string
	EndIndex  int
}

func isDelimiter(r byte) bool {
	switch r {
	case groupStart, groupEnd, optStart, optEnd, listStart, listEnd, ruleStart, ruleEnd, altSep:
		return true
	default:
		return false
	}
}

// nextChunk scans one top-level token from s, balancing nested delimiters
// of the same kind and honoring backslash escapes. It returns (nil, nil)
// when s is exhausted. A re-invocation on the same string without
// advancing past EndIndex is how callers detect non-progress.
func nextChunk(s string) (*ParseChunk, error) {
	skipped := 0
	for skipped < len(s) && isASCIISpace(s[skipped]) {
		skipped++
	}
	if skipped == len(s) {
		return nil, nil
	}
	body := s[skipped:]

	switch body[0] {
	case groupStart:
		return scanDelimited(body, skipped, groupStart, groupEnd, ParseGroup)
	case optStart:
		return scanDelimited(body, skipped, optStart, optEnd, ParseOpt)
	case listStart:
		return scanDelimited(body, skipped, listStart, listEnd, ParseList)
	case ruleStart:
		return scanDelimited(body, skipped, ruleStart, ruleEnd, ParseRule)
	case groupEnd, optEnd, listEnd, ruleEnd:
		return nil, &ParseError{Reason: "unbalanced delimiter", Chunk: string(body[0])}
	case altSep:
		return &ParseChunk{ParseType: ParseAlt, Text: "|", EndIndex: skipped + 1}, nil
	default:
		return scanWord(body, skipped)
	}
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// scanDelimited scans a bracketed region opening at body[0] == open,
// balancing nested occurrences of the same open/close pair and skipping
// escaped characters. skipped is the amount of leading whitespace already
// consumed from the original string, folded into EndIndex.
func scanDelimited(body string, skipped int, open, close byte, pt ParseType) (*ParseChunk, error) {
	depth := 0
	i := 0
	for i < len(body) {
		c := body[i]
		if c == escapeRune {
			if i+1 >= len(body) {
				return nil, &ParseError{Reason: "trailing escape", Chunk: body}
			}
			i += 2
			continue
		}
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				text := body[:i+1]
				if strings.TrimSpace(text[1:len(text)-1]) == "" {
					return nil, &ParseError{Reason: "empty closing", Chunk: text}
				}
				return &ParseChunk{ParseType: pt, Text: text, EndIndex: skipped + i + 1}, nil
			}
		}
		i++
	}
	return nil, &ParseError{Reason: "unbalanced delimiter", Chunk: body}
}

// scanWord scans a literal text run up to the next unescaped delimiter or
// alternative separator.
func scanWord(body string, skipped int) (*ParseChunk, error) {
	i := 0
	for i < len(body) {
		c := body[i]
		if c == escapeRune {
			if i+1 >= len(body) {
				return nil, &ParseError{Reason: "trailing escape", Chunk: body}
			}
			i += 2
			continue
		}
		if isDelimiter(c) {
			break
		}
		i++
	}
	return &ParseChunk{ParseType: ParseWord, Text: body[:i], EndIndex: skipped + i}, nil
}

// removeEscapes strips the backslash from any escaped metacharacter,
// turning tokenizer-level escape sequences into their literal characters.
func removeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == escapeRune && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// removeDelimiters strips a single leading open and trailing close byte,
// e.g. turning "(a|b)" into "a|b".
func removeDelimiters(s string, open, close byte) string {
	if len(s) >= 2 && s[0] == open && s[len(s)-1] == close {
		return s[1 : len(s)-1]
	}
	return s
}
