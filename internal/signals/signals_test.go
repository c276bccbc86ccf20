// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signals

import (
	"testing"

	"github.com/pdiddy/identity-engine/pkg/types"
)

func testCfg() types.ScoringConfig {
	return types.DefaultPipelineConfig().Scoring
}

// stubRecognizer returns fixed entities, for isolating Extract from the
// pattern recognizer.
type stubRecognizer struct {
	entities []Entity
}

func (s stubRecognizer) Recognize(string) []Entity { return s.entities }

func TestExtractCoOccurrence(t *testing.T) {
	text := "Corresponding author: Jane Smith, jane.smith@uni.edu, University Hospital."
	rec := stubRecognizer{entities: []Entity{
		{Text: "Jane Smith", Label: LabelPerson, Start: 22, End: 32, Confidence: 0.9},
	}}

	sigs := Extract(text, "jane.smith@uni.edu", rec, testCfg())

	var kinds []types.SignalKind
	for _, s := range sigs {
		kinds = append(kinds, s.Kind)
		if s.Candidate != "Jane Smith" {
			t.Errorf("candidate = %q, want Jane Smith", s.Candidate)
		}
	}
	if len(sigs) != 2 {
		t.Fatalf("signals = %v, want co-occurrence + ner", kinds)
	}
	if sigs[0].Kind != types.SignalCoOccurrence || sigs[1].Kind != types.SignalNERPerson {
		t.Errorf("kinds = %v", kinds)
	}
	// Ownership cue present: co-occurrence carries full weight.
	if sigs[0].Weight != testCfg().CoOccurrenceWeight {
		t.Errorf("co-occurrence weight = %f, want %f", sigs[0].Weight, testCfg().CoOccurrenceWeight)
	}
}

func TestExtractDistanceDecay(t *testing.T) {
	padding := make([]byte, 150)
	for i := range padding {
		padding[i] = 'x'
	}
	text := "Jane Smith " + string(padding) + " jane@uni.edu"
	rec := stubRecognizer{entities: []Entity{
		{Text: "Jane Smith", Label: LabelPerson, Start: 0, End: 10, Confidence: 1.0},
	}}

	sigs := Extract(text, "jane@uni.edu", rec, testCfg())
	if len(sigs) == 0 {
		t.Fatal("no signals extracted")
	}
	co := sigs[0]
	if co.Kind != types.SignalCoOccurrence {
		t.Fatalf("first signal = %s, want co-occurrence", co.Kind)
	}
	// 151 chars away lands in the 200-char tier: factor 0.3.
	want := testCfg().CoOccurrenceWeight * 0.3
	if diff := co.Weight - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("weight = %f, want %f", co.Weight, want)
	}
}

func TestExtractWeakSourceOutsideWindow(t *testing.T) {
	padding := make([]byte, 400)
	for i := range padding {
		padding[i] = 'x'
	}
	text := "John Doe " + string(padding) + " jane@uni.edu mentioned here"
	rec := stubRecognizer{entities: []Entity{
		{Text: "John Doe", Label: LabelPerson, Start: 0, End: 8, Confidence: 0.8},
	}}

	sigs := Extract(text, "jane@uni.edu", rec, testCfg())
	if len(sigs) != 1 {
		t.Fatalf("signals = %d, want 1", len(sigs))
	}
	if sigs[0].Kind != types.SignalWeakSource {
		t.Errorf("kind = %s, want weak-source", sigs[0].Kind)
	}
	if sigs[0].Weight != testCfg().WeakSourceWeight {
		t.Errorf("weight = %f, want %f", sigs[0].Weight, testCfg().WeakSourceWeight)
	}
}

func TestExtractNoEmailInText(t *testing.T) {
	rec := stubRecognizer{entities: []Entity{
		{Text: "Jane Smith", Label: LabelPerson, Start: 0, End: 10, Confidence: 0.9},
	}}
	if sigs := Extract("Jane Smith wrote this page.", "jane@uni.edu", rec, testCfg()); sigs != nil {
		t.Errorf("signals = %v, want none without the email present", sigs)
	}
}

func TestExtractIgnoresNonPersonEntities(t *testing.T) {
	rec := stubRecognizer{entities: []Entity{
		{Text: "Uni Hospital", Label: "ORG", Start: 0, End: 12, Confidence: 0.9},
	}}
	sigs := Extract("Uni Hospital jane@uni.edu", "jane@uni.edu", rec, testCfg())
	if len(sigs) != 0 {
		t.Errorf("signals = %v, want none for ORG entities", sigs)
	}
}

func TestPatternRecognizerFullNames(t *testing.T) {
	text := "Contact Jane Smith or A. B. Jones for details."
	entities := PatternRecognizer{}.Recognize(text)

	found := map[string]bool{}
	for _, e := range entities {
		if e.Label != LabelPerson {
			t.Errorf("label = %q, want PERSON", e.Label)
		}
		found[e.Text] = true
	}
	if !found["Jane Smith"] {
		t.Errorf("entities %v missing Jane Smith", entities)
	}
	if !found["A. B. Jones"] {
		t.Errorf("entities %v missing A. B. Jones", entities)
	}
}

func TestPatternRecognizerBlocksSentenceStarts(t *testing.T) {
	entities := PatternRecognizer{}.Recognize("The University announced new funding. University Department expanded.")
	for _, e := range entities {
		t.Errorf("unexpected entity %q", e.Text)
	}
}

func TestProximityFactorTiers(t *testing.T) {
	tests := []struct {
		distance int
		want     float64
	}{
		{0, 1.0}, {5, 0.9}, {30, 0.7}, {80, 0.5}, {150, 0.3}, {500, 0.1},
	}
	for _, tt := range tests {
		if got := proximityFactor(tt.distance); got != tt.want {
			t.Errorf("proximityFactor(%d) = %f, want %f", tt.distance, got, tt.want)
		}
	}
}
