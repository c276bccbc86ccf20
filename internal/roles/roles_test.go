// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roles

import (
	"testing"

	"github.com/pdiddy/identity-engine/pkg/types"
)

func testCfg() types.MatchConfig {
	return types.MatchConfig{
		TitleMergeThreshold:  0.90,
		YearTolerance:        1,
		AuthorMatchThreshold: 0.85,
	}
}

func TestResolveFirstAuthor(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Smith J", "Doe A", "Lee K"}}
	role := Resolve(record, []string{"Smith J"}, "", testCfg())

	if !role.Resolved {
		t.Fatal("role not resolved")
	}
	if role.Position != 1 || !role.IsFirst || role.IsLast {
		t.Errorf("position=%d first=%v last=%v, want 1/true/false", role.Position, role.IsFirst, role.IsLast)
	}
	if role.ContributionLabel != types.LabelPrimaryInvestigator {
		t.Errorf("label = %s, want primary-investigator", role.ContributionLabel)
	}
}

func TestResolveSoleAuthor(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Smith J"}}
	role := Resolve(record, []string{"Smith J"}, "", testCfg())

	if !role.IsFirst || !role.IsLast {
		t.Errorf("sole author: first=%v last=%v, want both true", role.IsFirst, role.IsLast)
	}
	if role.ContributionLabel != types.LabelPrimaryInvestigator {
		t.Errorf("label = %s, want primary-investigator", role.ContributionLabel)
	}
}

func TestResolveSeniorAuthor(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Doe A", "Lee K", "Smith J"}}
	role := Resolve(record, []string{"Smith J"}, "", testCfg())

	if role.ContributionLabel != types.LabelSeniorAuthor {
		t.Errorf("label = %s, want senior-author", role.ContributionLabel)
	}
	if !role.IsLast {
		t.Error("is_last should be true")
	}
}

func TestLastOfTwoIsCoAuthor(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Doe A", "Smith J"}}
	role := Resolve(record, []string{"Smith J"}, "", testCfg())

	if role.ContributionLabel != types.LabelCoAuthor {
		t.Errorf("label = %s, want co-author (senior requires >2 authors)", role.ContributionLabel)
	}
}

func TestCorrespondingByEmailField(t *testing.T) {
	record := types.MergedRecord{
		Authors:            []string{"Doe A", "Smith J", "Lee K"},
		CorrespondingEmail: "j.smith@uni.edu",
	}
	role := Resolve(record, []string{"Smith J"}, "J.Smith@uni.edu", testCfg())

	if !role.IsCorresponding {
		t.Fatal("corresponding flag not set from email field")
	}
	if role.ContributionLabel != types.LabelCorresponding {
		t.Errorf("label = %s, want corresponding-author", role.ContributionLabel)
	}
}

func TestCorrespondingByTextCue(t *testing.T) {
	record := types.MergedRecord{
		Authors:  []string{"Doe A", "Smith J", "Lee K"},
		Abstract: "Methods and results are reported. Corresponding author: Smith J, University Hospital.",
	}
	role := Resolve(record, []string{"Smith J"}, "", testCfg())

	if !role.IsCorresponding {
		t.Error("corresponding flag not set from text cue")
	}
}

func TestCorrespondingFirstAuthorKeepsFlags(t *testing.T) {
	record := types.MergedRecord{
		Authors:            []string{"Smith J", "Doe A", "Lee K"},
		CorrespondingEmail: "j.smith@uni.edu",
	}
	role := Resolve(record, []string{"Smith J"}, "j.smith@uni.edu", testCfg())

	if !role.IsFirst {
		t.Error("is_first must stay true alongside corresponding")
	}
	if role.ContributionLabel != types.LabelCorresponding {
		t.Errorf("label = %s, corresponding takes display precedence", role.ContributionLabel)
	}
}

func TestUnresolvedBelowThreshold(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Nakamura T", "Garcia M"}}
	role := Resolve(record, []string{"Smith John"}, "", testCfg())

	if role.Resolved {
		t.Errorf("role resolved against unrelated authors: %+v", role)
	}
	if role.TotalAuthors != 2 {
		t.Errorf("total authors = %d, want 2", role.TotalAuthors)
	}
}

func TestFuzzyMatchDiacritics(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Müller Anna", "Doe A"}}
	role := Resolve(record, []string{"Muller Anna"}, "", testCfg())

	if !role.Resolved || role.Position != 1 {
		t.Errorf("diacritic-insensitive match failed: %+v", role)
	}
}

func TestVariantsExpansion(t *testing.T) {
	variants := Variants([]string{"Jane Smith"})

	want := map[string]bool{}
	for _, v := range variants {
		want[v] = true
	}
	for _, expect := range []string{"Jane Smith", "Smith Jane", "Smith J"} {
		if !want[expect] {
			t.Errorf("variants %v missing %q", variants, expect)
		}
	}
}

func TestVariantsMatchInitialedForm(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Smith J", "Doe A"}}
	role := Resolve(record, Variants([]string{"Jane Smith"}), "", testCfg())

	if !role.Resolved || role.Position != 1 {
		t.Errorf("initialed variant did not match: %+v", role)
	}
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cyrillic surname", "Иванов", "Ivanov"},
		{"full name", "Иванов Иван", "Ivanov Ivan"},
		{"latin untouched", "Smith Jane", "Smith Jane"},
		{"digraphs", "Чехов", "Chekhov"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transliterate(tt.in); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCyrillicHintMatchesRomanizedByline(t *testing.T) {
	record := types.MergedRecord{Authors: []string{"Ivanov Ivan", "Doe A"}}
	role := Resolve(record, Variants([]string{"Иванов Иван"}), "", testCfg())

	if !role.Resolved || role.Position != 1 {
		t.Errorf("transliterated variant did not match: %+v", role)
	}
}
