package sentence

import "testing"

func mustSentence(t *testing.T, text string) Sentence {
	t.Helper()
	s, err := ParseSentence(text)
	if err != nil {
		t.Fatalf("ParseSentence(%q): %v", text, err)
	}
	return s
}

func newCatalogue(t *testing.T, name string, text string) *Intents {
	t.Helper()
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: name,
		Data: []IntentData{{Sentences: []Sentence{mustSentence(t, text)}}},
	})
	return intents
}

func TestRecognizeFirstMatchWins(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOn",
		Data: []IntentData{{Sentences: []Sentence{mustSentence(t, "turn on the lights")}}},
	})
	intents.AddIntent(&Intent{
		Name: "HassTurnOff",
		Data: []IntentData{{Sentences: []Sentence{mustSentence(t, "turn off the lights")}}},
	})

	result, ok, err := Recognize("turn on the lights", intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || result.Intent.Name != "HassTurnOn" {
		t.Fatalf("expected HassTurnOn to match, got %+v ok=%v", result, ok)
	}
}

func TestRecognizeNoMatch(t *testing.T) {
	intents := newCatalogue(t, "HassTurnOn", "turn on the lights")
	_, ok, err := Recognize("play some music", intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestRecognizeFixedSlots(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOff",
		Data: []IntentData{{
			Sentences: []Sentence{mustSentence(t, "turn off the lights")},
			Slots:     map[string]any{"domain": "light", "state": "off"},
		}},
	})

	result, ok, err := Recognize("turn off the lights", intents)
	if err != nil || !ok {
		t.Fatalf("expected match, err=%v ok=%v", err, ok)
	}
	if result.Entities["domain"].Value != "light" || result.Entities["state"].Value != "off" {
		t.Fatalf("expected fixed slots injected as entities, got %+v", result.Entities)
	}
}

func TestRecognizeRequiresContextRejectsAbsentKey(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassNextTrack",
		Data: []IntentData{{
			Sentences:       []Sentence{mustSentence(t, "next track")},
			RequiresContext: map[string]any{"domain": nil},
		}},
	})

	_, ok, err := Recognize("next track", intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected rejection: required context key absent from intent_context")
	}
}

func TestRecognizeRequiresContextNilValuePresentIsStillRejected(t *testing.T) {
	// A nil context_value means "any value matches, as long as the key is
	// actually set" (hassil's recognize_all: "context_value is None and
	// actual_value is not None -> continue"). A key present with an
	// explicit nil value is indistinguishable from an absent key, so it
	// is rejected exactly like TestRecognizeRequiresContextRejectsAbsentKey.
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassNextTrack",
		Data: []IntentData{{
			Sentences:       []Sentence{mustSentence(t, "next track")},
			RequiresContext: map[string]any{"domain": nil},
		}},
	})

	_, ok, err := Recognize("next track", intents, WithIntentContext(map[string]any{"domain": nil}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected rejection: context key present but set to nil is indistinguishable from absent")
	}
}

func TestRecognizeRequiresContextNilValueAcceptsAnySetValue(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassNextTrack",
		Data: []IntentData{{
			Sentences:       []Sentence{mustSentence(t, "next track")},
			RequiresContext: map[string]any{"domain": nil},
		}},
	})

	_, ok, err := Recognize("next track", intents, WithIntentContext(map[string]any{"domain": "media_player"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match: a nil requirement is satisfied by any non-nil context value")
	}
}

func TestRecognizeRequiresContextValue(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOn",
		Data: []IntentData{{
			Sentences:       []Sentence{mustSentence(t, "turn it on")},
			RequiresContext: map[string]any{"domain": "light"},
		}},
	})

	_, ok, err := Recognize("turn it on", intents, WithIntentContext(map[string]any{"domain": "switch"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected rejection: domain context value mismatch")
	}

	_, ok, err = Recognize("turn it on", intents, WithIntentContext(map[string]any{"domain": "light"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match: domain context value satisfied")
	}
}

func TestRecognizeRequiresContextCollection(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOn",
		Data: []IntentData{{
			Sentences:       []Sentence{mustSentence(t, "turn it on")},
			RequiresContext: map[string]any{"domain": []any{"light", "switch"}},
		}},
	})

	_, ok, err := Recognize("turn it on", intents, WithIntentContext(map[string]any{"domain": "switch"}))
	if err != nil || !ok {
		t.Fatalf("expected match via collection membership, err=%v ok=%v", err, ok)
	}
}

func TestRecognizeExcludesContext(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOn",
		Data: []IntentData{{
			Sentences:       []Sentence{mustSentence(t, "turn it on")},
			ExcludesContext: map[string]any{"domain": "lock"},
		}},
	})

	_, ok, err := Recognize("turn it on", intents, WithIntentContext(map[string]any{"domain": "lock"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected rejection: excluded domain present")
	}

	_, ok, err = Recognize("turn it on", intents, WithIntentContext(map[string]any{"domain": "light"}))
	if err != nil || !ok {
		t.Fatalf("expected match when excluded domain absent, err=%v ok=%v", err, ok)
	}
}

func TestRecognizeResponseDefaultsAndOverrides(t *testing.T) {
	custom := "turned_on"
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOn",
		Data: []IntentData{
			{Sentences: []Sentence{mustSentence(t, "turn on the lights")}},
			{Sentences: []Sentence{mustSentence(t, "switch on the lights")}, Response: &custom},
		},
	})

	result, ok, err := Recognize("turn on the lights", intents)
	if err != nil || !ok {
		t.Fatalf("expected match, err=%v ok=%v", err, ok)
	}
	if result.Response != "default" {
		t.Fatalf("expected default response key, got %q", result.Response)
	}

	result, ok, err = Recognize("switch on the lights", intents)
	if err != nil || !ok {
		t.Fatalf("expected match, err=%v ok=%v", err, ok)
	}
	if result.Response != custom {
		t.Fatalf("expected overridden response key %q, got %q", custom, result.Response)
	}
}

func TestRecognizeDuplicateEntityNames(t *testing.T) {
	areas, _ := NewTextSlotListFromStrings([]string{"kitchen"}, true)
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassMoveLight",
		Data: []IntentData{{
			Sentences: []Sentence{mustSentence(t, "move the light from {area} to {area}")},
		}},
	})
	intents.SlotLists["area"] = areas

	result, ok, err := Recognize("move the light from kitchen to kitchen", intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
	if len(result.EntitiesList) != 2 {
		t.Fatalf("expected both area entities preserved in order, got %+v", result.EntitiesList)
	}
	if result.Entities["area"].Value != "kitchen" {
		t.Fatalf("expected by-name map to hold the (here, last=only) value, got %+v", result.Entities["area"])
	}
}

func TestRecognizeAllYieldsEveryAcceptedMatch(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOn",
		Data: []IntentData{{
			Sentences: []Sentence{
				mustSentence(t, "turn on [the] lights"),
				mustSentence(t, "lights on"),
			},
		}},
	})

	var names []string
	for result, err := range RecognizeAll("turn on the lights", intents) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names = append(names, result.Intent.Name)
	}
	if len(names) == 0 {
		t.Fatalf("expected at least one accepted match")
	}
}

func TestRecognizeAllStopsEarly(t *testing.T) {
	intents := NewIntents()
	intents.AddIntent(&Intent{
		Name: "HassTurnOn",
		Data: []IntentData{{
			Sentences: []Sentence{mustSentence(t, "turn on [the] lights")},
		}},
	})

	count := 0
	for range RecognizeAll("turn on the lights", intents) {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected early stop after first item, got count=%d", count)
	}
}

func TestRecognizeAllPropagatesMissingList(t *testing.T) {
	intents := newCatalogue(t, "HassSetBrightness", "set brightness to {level}")

	sawError := false
	for _, err := range RecognizeAll("set brightness to 50", intents) {
		if err != nil {
			sawError = true
			if _, ok := err.(*MissingListError); !ok {
				t.Fatalf("expected *MissingListError, got %T", err)
			}
		}
	}
	if !sawError {
		t.Fatalf("expected MissingListError to surface from RecognizeAll")
	}
}

func TestRecognizeSkipWordsFromCatalogueAndOption(t *testing.T) {
	intents := newCatalogue(t, "HassTurnOn", "turn on the lights")
	intents.SkipWords = []string{"please"}

	_, ok, err := Recognize("please turn on the lights", intents)
	if err != nil || !ok {
		t.Fatalf("expected catalogue skip word to apply, err=%v ok=%v", err, ok)
	}

	_, ok, err = Recognize("could you turn on the lights", intents, WithSkipWords([]string{"could", "you"}))
	if err != nil || !ok {
		t.Fatalf("expected option skip words to apply, err=%v ok=%v", err, ok)
	}
}

func TestMergeSlotListsOptionOverridesCatalogue(t *testing.T) {
	catalogueAreas, _ := NewTextSlotListFromStrings([]string{"kitchen"}, true)
	overrideAreas, _ := NewTextSlotListFromStrings([]string{"garage"}, true)

	intents := newCatalogue(t, "HassTurnOff", "turn off {area}")
	intents.SlotLists["area"] = catalogueAreas

	_, ok, err := Recognize("turn off garage", intents, WithSlotLists(map[string]SlotList{"area": overrideAreas}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected per-call slot list override to take effect")
	}
}
