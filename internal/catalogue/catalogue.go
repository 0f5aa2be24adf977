// Package catalogue loads an intent catalogue from the YAML wire format
// described in the sentencematch documentation (modeled on Home
// Assistant's own intents/<lang>.yaml shape) into a *sentence.Intents the
// core matcher can run against. This loading step is explicitly outside
// the core library's surface; it exists so the CLI has a concrete
// collaborator to demonstrate recognition with.
package catalogue

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"sentencematch/sentence"
)

type document struct {
	Language  string               `yaml:"language"`
	Intents   map[string]intentDoc `yaml:"intents"`
	Settings  settingsDoc          `yaml:"settings"`
	Lists     map[string]listDoc   `yaml:"lists"`
	Rules     map[string]string    `yaml:"expansion_rules"`
	SkipWords []string             `yaml:"skip_words"`
}

type intentDoc struct {
	Data []intentDataDoc `yaml:"data"`
}

type intentDataDoc struct {
	Sentences       []string       `yaml:"sentences"`
	Slots           map[string]any `yaml:"slots"`
	RequiresContext map[string]any `yaml:"requires_context"`
	ExcludesContext map[string]any `yaml:"excludes_context"`
	Response        *string        `yaml:"response"`
}

type settingsDoc struct {
	IgnoreWhitespace bool `yaml:"ignore_whitespace"`
}

type listDoc struct {
	Values []string  `yaml:"values"`
	Range  *rangeDoc `yaml:"range"`
}

type rangeDoc struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
	Step int `yaml:"step"`
}

// Load reads and parses the YAML catalogue at path into a ready-to-use
// *sentence.Intents. Parse errors carry path as diagnostic metadata.
func Load(path string) (*sentence.Intents, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: reading %s: %w", path, err)
	}
	return parse(raw, path)
}

// Parse decodes raw YAML bytes into a *sentence.Intents.
func Parse(raw []byte) (*sentence.Intents, error) {
	return parse(raw, "")
}

func parse(raw []byte, fileName string) (*sentence.Intents, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}

	intents := sentence.NewIntents()
	intents.Settings = sentence.Settings{IgnoreWhitespace: doc.Settings.IgnoreWhitespace}
	intents.SkipWords = doc.SkipWords

	for name, list := range doc.Lists {
		parsed, err := parseList(list)
		if err != nil {
			return nil, fmt.Errorf("catalogue: list %q: %w", name, err)
		}
		intents.SlotLists[name] = parsed
	}

	for name, text := range doc.Rules {
		rule, err := sentence.ParseSentenceWithMetadata(text, &sentence.ParseMetadata{FileName: fileName})
		if err != nil {
			return nil, fmt.Errorf("catalogue: expansion rule %q: %w", name, err)
		}
		intents.ExpansionRules[name] = rule
	}

	// Sort names for deterministic iteration order across runs, since
	// map range order is randomized and spec.md §5 requires catalogue
	// order to be stable.
	names := make([]string, 0, len(doc.Intents))
	for name := range doc.Intents {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := doc.Intents[name]
		intent := &sentence.Intent{Name: name}
		metadata := &sentence.ParseMetadata{FileName: fileName, IntentName: name}
		for _, dataDoc := range entry.Data {
			data := sentence.IntentData{
				Slots:           dataDoc.Slots,
				RequiresContext: dataDoc.RequiresContext,
				ExcludesContext: dataDoc.ExcludesContext,
				Response:        dataDoc.Response,
			}
			for _, text := range dataDoc.Sentences {
				s, err := sentence.ParseSentenceWithMetadata(text, metadata)
				if err != nil {
					return nil, fmt.Errorf("catalogue: intent %q: %w", name, err)
				}
				data.Sentences = append(data.Sentences, s)
			}
			intent.Data = append(intent.Data, data)
		}
		intents.AddIntent(intent)
	}

	return intents, nil
}

func parseList(doc listDoc) (sentence.SlotList, error) {
	if doc.Range != nil {
		return sentence.NewRangeSlotList(doc.Range.From, doc.Range.To, doc.Range.Step), nil
	}
	return sentence.NewTextSlotListFromStrings(doc.Values, true)
}
