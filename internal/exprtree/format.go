// Package exprtree renders a parsed sentence.Expression as a box-drawing
// tree, the way the teacher's grammar package visualizes its own syntax
// trees with Tree.Format.
package exprtree

import (
	"fmt"
	"strings"

	"sentencematch/sentence"
)

// FormatOption alters Format's output.
type FormatOption int

const (
	// DisplayGroupKind labels each Sequence node "group" or "alternative"
	// instead of the bare "[" (group) and "(|" (alternative) markers.
	DisplayGroupKind FormatOption = iota
)

func hasOption(find FormatOption, in []FormatOption) bool {
	for _, o := range in {
		if o == find {
			return true
		}
	}
	return false
}

// Format renders expr as a multi-line box-drawing tree.
func Format(expr sentence.Expression, options ...FormatOption) string {
	lines := treeLines(describe(expr, "", options), options)
	return strings.Join(lines, "\n")
}

func describe(expr sentence.Expression, prefix string, options []FormatOption) []string {
	label, children := nodeLabel(expr, options)
	lines := []string{prefix + "└─ " + label}
	for _, child := range children {
		lines = append(lines, describe(child, prefix+"   ", options)...)
	}
	return lines
}

func nodeLabel(expr sentence.Expression, options []FormatOption) (string, []sentence.Expression) {
	switch e := expr.(type) {
	case sentence.TextChunk:
		if e.IsEmpty() {
			return "(empty)", nil
		}
		return fmt.Sprintf("%q", e.Text), nil
	case *sentence.Sequence:
		if e.Kind == sentence.SeqAlternative {
			if hasOption(DisplayGroupKind, options) {
				return "alternative", e.Items
			}
			return "(|", e.Items
		}
		if hasOption(DisplayGroupKind, options) {
			return "group", e.Items
		}
		return "[", e.Items
	case sentence.ListReference:
		if e.SlotName != "" && e.SlotName != e.ListName {
			return fmt.Sprintf("{%s:%s}", e.ListName, e.SlotName), nil
		}
		return fmt.Sprintf("{%s}", e.ListName), nil
	case sentence.RuleReference:
		return fmt.Sprintf("<%s>", e.RuleName), nil
	default:
		return "?", nil
	}
}

// treeLines beautifies the raw "└─ "-prefixed lines with proper
// box-drawing corners, adapted from the teacher's treeLines: scan
// bottom-up, column by column, turning a corner into a tee whenever the
// column below it is already connected.
func treeLines(input []string, options []FormatOption) []string {
	n := len(input)
	runes := make([][]rune, n)
	maxWidth := 0
	for i, line := range input {
		runes[i] = []rune(line)
		if len(runes[i]) > maxWidth {
			maxWidth = len(runes[i])
		}
	}

	connected := make([]bool, maxWidth)
	for i := n - 1; i >= 0; i-- {
		rl := runes[i]
		for j := 0; j < maxWidth; j++ {
			if j >= len(rl) {
				connected[j] = false
				continue
			}
			switch {
			case rl[j] != '└' && rl[j] != ' ':
				connected[j] = false
			case rl[j] == '└' && connected[j]:
				rl[j] = '├'
			case rl[j] == ' ' && connected[j]:
				rl[j] = '│'
			case rl[j] == '└':
				connected[j] = true
			}
		}
	}

	out := make([]string, n)
	for i, rl := range runes {
		out[i] = string(rl)
	}
	return out
}
