// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a research field, sub-fields, and
// domain-specialty tags to a merged record from its text content.
// Classification is keyword-driven against a fixed taxonomy: no
// randomness, no external calls, identical input text always yields the
// identical result.
package classify

import (
	"strings"

	"github.com/pdiddy/identity-engine/internal/similarity"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// fieldDef is one top-level taxonomy entry. Declaration order breaks
// ties when two fields reach the same match count.
type fieldDef struct {
	Name     string
	Keywords []string
}

// taxonomy is the fixed top-level field set. Keywords are lowercase
// stems matched as substrings of the folded record text.
var taxonomy = []fieldDef{
	{"medicine", []string{
		"medical", "clinical", "patient", "disease", "treatment",
		"hospital", "diagnos", "therapeutic", "syndrome",
	}},
	{"dentistry", []string{
		"dental", "oral", "tooth", "teeth", "periodont", "implant",
		"orthodont", "endodont",
	}},
	{"biology", []string{
		"biolog", "cell", "molecular", "gene", "protein", "genom",
		"organism", "enzyme",
	}},
	{"pharmacology", []string{
		"drug", "pharmac", "dosage", "pharmacokinetic", "inhibitor",
		"compound",
	}},
	{"public-health", []string{
		"public health", "epidemiolog", "prevention", "prevalence",
		"population health", "screening program", "vaccination",
	}},
	{"interdisciplinary", []string{
		"interdisciplinary", "multidisciplinary", "cross-disciplinary",
	}},
}

// specialtyTags are finer-grained domain tags, independent of the
// top-level field choice.
var specialtyTags = []fieldDef{
	{"cardiology", []string{"cardiac", "heart", "cardiovascular", "myocard"}},
	{"oncology", []string{"cancer", "tumor", "tumour", "oncolog", "carcinoma"}},
	{"neurology", []string{"neurolog", "brain", "neural", "cognit"}},
	{"pediatrics", []string{"pediatric", "paediatric", "children", "infant"}},
	{"surgery", []string{"surgical", "surgery", "operative", "resection"}},
	{"diagnostics", []string{"diagnostic", "imaging", "biomarker", "screening"}},
	{"rehabilitation", []string{"rehabilitation", "recovery", "physiotherapy"}},
}

// outcomeVocab marks clinical-trial and patient-outcome language; its
// presence grades relevance "high".
var outcomeVocab = []string{
	"clinical trial", "randomized", "randomised", "patient outcome",
	"survival rate", "efficacy", "treatment outcome", "follow-up",
	"cohort", "placebo",
}

// generalMedicalVocab grades relevance "moderate" when present without
// outcome language.
var generalMedicalVocab = []string{
	"patient", "clinical", "treatment", "therapy", "disease",
	"diagnosis", "hospital",
}

// Record classifies a merged record from its title, abstract, and
// keywords.
func Record(m types.MergedRecord) types.ThematicClassification {
	text := similarity.Fold(strings.Join(append([]string{m.Title, m.Abstract}, m.Keywords...), " "))
	return Text(text)
}

// Text classifies pre-joined, folded record text. Exposed separately so
// determinism is testable on exact input strings.
func Text(text string) types.ThematicClassification {
	c := types.ThematicClassification{
		ResearchField:     types.FieldUndetermined,
		ClinicalRelevance: types.RelevanceUnscored,
	}
	if strings.TrimSpace(text) == "" {
		return c
	}

	bestCount := 0
	for _, f := range taxonomy {
		count := matchCount(text, f.Keywords)
		if count == 0 {
			continue
		}
		c.SubFields = append(c.SubFields, f.Name)
		// Strict > keeps the earliest declared field on ties.
		if count > bestCount {
			bestCount = count
			c.ResearchField = f.Name
		}
	}

	for _, s := range specialtyTags {
		if matchCount(text, s.Keywords) > 0 {
			c.DomainSpecialties = append(c.DomainSpecialties, s.Name)
		}
	}

	c.ClinicalRelevance = relevance(text, c.ResearchField != types.FieldUndetermined)
	return c
}

func matchCount(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}

// relevance grades clinical applicability: high for outcome language,
// moderate for general medical vocabulary without it, low when a field
// matched on tangential keywords only, unscored when nothing matched.
func relevance(text string, fieldMatched bool) types.ClinicalRelevance {
	if !fieldMatched {
		return types.RelevanceUnscored
	}
	if matchCount(text, outcomeVocab) > 0 {
		return types.RelevanceHigh
	}
	if matchCount(text, generalMedicalVocab) > 0 {
		return types.RelevanceModerate
	}
	return types.RelevanceLow
}
