// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roles determines the target identity's position and
// contribution label among a merged record's authors. Matching tries an
// exact (case- and diacritic-insensitive) match first, then falls back
// to fuzzy matching against every known name variant.
package roles

import (
	"strings"

	"github.com/pdiddy/identity-engine/internal/similarity"
	"github.com/pdiddy/identity-engine/pkg/types"
)

// correspondingCue marks textual corresponding-author attribution. The
// cue must appear near the matched name to count.
const correspondingCue = "corresponding author"

// correspondingCueWindow bounds how far (in characters) the cue may sit
// from the author name in the record text.
const correspondingCueWindow = 120

// Resolve matches the target's name variants against the record's author
// list and applies the contribution-label policy. Returns an unresolved
// role when no author clears the fuzzy threshold.
func Resolve(record types.MergedRecord, variants []string, targetEmail string, cfg types.MatchConfig) types.AuthorRole {
	role := types.AuthorRole{TotalAuthors: len(record.Authors)}
	if len(record.Authors) == 0 || len(variants) == 0 {
		return role
	}

	pos, matched := matchPosition(record.Authors, variants, cfg.AuthorMatchThreshold)
	if pos < 0 {
		return role
	}

	role.Resolved = true
	role.Position = pos + 1
	role.MatchedName = matched
	role.IsFirst = pos == 0
	role.IsLast = pos == len(record.Authors)-1
	role.IsCorresponding = isCorresponding(record, matched, targetEmail)
	role.ContributionLabel = label(role)
	return role
}

// matchPosition returns the 0-based index of the first author matching
// any variant, exact matches taking precedence over fuzzy ones.
func matchPosition(authors, variants []string, threshold float64) (int, string) {
	for i, a := range authors {
		for _, v := range variants {
			if similarity.Fold(similarity.NormalizeName(a)) == similarity.Fold(similarity.NormalizeName(v)) {
				return i, a
			}
		}
	}
	bestPos, bestScore := -1, 0.0
	var bestName string
	for i, a := range authors {
		for _, v := range variants {
			if s := similarity.NameRatio(a, v); s >= threshold && s > bestScore {
				bestPos, bestScore, bestName = i, s, a
			}
		}
	}
	return bestPos, bestName
}

// isCorresponding checks the explicit contact-email field first, then
// looks for the textual cue near the matched name in the abstract.
func isCorresponding(record types.MergedRecord, matchedName, targetEmail string) bool {
	if targetEmail != "" && strings.EqualFold(record.CorrespondingEmail, targetEmail) {
		return true
	}
	return cueNearName(record.Abstract, matchedName)
}

func cueNearName(text, name string) bool {
	if text == "" || name == "" {
		return false
	}
	lower := similarity.Fold(text)
	cueIdx := strings.Index(lower, correspondingCue)
	if cueIdx < 0 {
		return false
	}
	// Compare against the folded surname (first token of the normalized
	// name); bylines near the cue rarely repeat the full name form.
	surname := strings.Fields(similarity.Fold(similarity.NormalizeName(name)))
	if len(surname) == 0 {
		return false
	}
	nameIdx := strings.Index(lower, surname[0])
	if nameIdx < 0 {
		return false
	}
	dist := nameIdx - cueIdx
	if dist < 0 {
		dist = -dist
	}
	return dist <= correspondingCueWindow
}

// label applies the contribution policy. A sole author is both first
// and last and reads as primary-investigator. Corresponding authorship
// can co-occur with first/last; when it does, the corresponding-author
// label takes display precedence while the positional flags stay true.
func label(role types.AuthorRole) types.ContributionLabel {
	switch {
	case role.TotalAuthors == 1:
		return types.LabelPrimaryInvestigator
	case role.IsCorresponding:
		return types.LabelCorresponding
	case role.IsFirst:
		return types.LabelPrimaryInvestigator
	case role.IsLast && role.TotalAuthors > 2:
		return types.LabelSeniorAuthor
	default:
		return types.LabelCoAuthor
	}
}

// Variants expands the caller-supplied name hints with transliterated
// and reordered forms so matching survives provider formatting
// differences. The original hints always come first.
func Variants(hints []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := similarity.Fold(similarity.NormalizeName(v))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	}

	for _, h := range hints {
		add(h)
		add(Transliterate(h))
		// "Given Family" → "Family Given" and an initialed form
		// ("Family G"), the shapes PubMed and Scopus return.
		fields := strings.Fields(similarity.NormalizeName(h))
		if len(fields) == 2 {
			add(fields[1] + " " + fields[0])
			add(fields[1] + " " + string([]rune(fields[0])[0]))
			add(fields[0] + " " + string([]rune(fields[1])[0]))
		}
	}
	return out
}
