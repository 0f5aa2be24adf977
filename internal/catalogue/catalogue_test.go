package catalogue

import "testing"

const sampleYAML = `
language: en
intents:
  HassTurnOn:
    data:
      - sentences:
          - "turn on [the] {area}"
        slots:
          domain: light
settings:
  ignore_whitespace: false
lists:
  area:
    values: ["kitchen", "living room"]
expansion_rules:
  greeting: "hello [there]"
skip_words: ["please"]
`

func TestParseBuildsIntents(t *testing.T) {
	intents, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(intents.Intents) != 1 || intents.Intents[0].Name != "HassTurnOn" {
		t.Fatalf("expected one HassTurnOn intent, got %+v", intents.Intents)
	}
	if _, ok := intents.SlotLists["area"]; !ok {
		t.Fatalf("expected area slot list to be loaded")
	}
	if _, ok := intents.ExpansionRules["greeting"]; !ok {
		t.Fatalf("expected greeting expansion rule to be loaded")
	}
	if len(intents.SkipWords) != 1 || intents.SkipWords[0] != "please" {
		t.Fatalf("expected skip words to be loaded, got %+v", intents.SkipWords)
	}
	data := intents.Intents[0].Data[0]
	if data.Slots["domain"] != "light" {
		t.Fatalf("expected fixed slot domain=light, got %+v", data.Slots)
	}
}

func TestParseRangeList(t *testing.T) {
	const yamlDoc = `
intents:
  HassSetBrightness:
    data:
      - sentences:
          - "set brightness to {level}"
lists:
  level:
    range:
      from: 0
      to: 100
      step: 1
`
	intents, err := Parse([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := intents.SlotLists["level"]; !ok {
		t.Fatalf("expected level range slot list to be loaded")
	}
}

func TestParseInvalidSentenceTemplate(t *testing.T) {
	const yamlDoc = `
intents:
  Broken:
    data:
      - sentences:
          - "turn on (the lights"
`
	if _, err := Parse([]byte(yamlDoc)); err == nil {
		t.Fatalf("expected a parse error to surface from an unbalanced template")
	}
}
