// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity centralizes the string normalization and fuzzy
// matching used by deduplication and role resolution. The thresholds that
// gate its callers live in types.MatchConfig; everything here is
// deterministic and free of I/O.
package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes to NFD, drops combining marks, and
// recomposes, so "Müller" and "Muller" compare equal.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns s lowercased with diacritics removed.
func Fold(s string) string {
	out, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// NormalizeTitle lowercases, strips punctuation and diacritics, and
// collapses whitespace. Two titles that normalize equal are candidates
// for an exact merge; otherwise Ratio decides.
func NormalizeTitle(title string) string {
	folded := Fold(title)
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// doiPrefixes are resolver and scheme prefixes stripped during DOI
// normalization.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// NormalizeDOI lowercases a DOI and strips resolver prefixes and
// surrounding punctuation. Returns "" for input that carries no DOI
// content.
func NormalizeDOI(doi string) string {
	d := strings.TrimSpace(strings.ToLower(doi))
	for _, p := range doiPrefixes {
		d = strings.TrimPrefix(d, p)
	}
	d = strings.Trim(d, " .,;")
	if !strings.HasPrefix(d, "10.") {
		return ""
	}
	return d
}

// NormalizePMID strips non-digit characters from a PubMed identifier.
func NormalizePMID(pmid string) string {
	var b strings.Builder
	for _, r := range pmid {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// titlePrefixes are honorifics stripped from author-name strings. Listed
// order does not matter; comparison is against the folded first tokens.
var titlePrefixes = []string{
	"dr", "prof", "professor", "md", "phd", "mr", "mrs", "ms",
}

// NormalizeName collapses whitespace in an author-name string and strips
// leading title prefixes. The listed order of authors is never touched
// here; this normalizes one name in place.
func NormalizeName(name string) string {
	fields := strings.Fields(name)
	for len(fields) > 0 {
		head := strings.Trim(Fold(fields[0]), ".")
		stripped := false
		for _, p := range titlePrefixes {
			if head == p {
				fields = fields[1:]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Join(fields, " ")
}

// NameKey folds a name for comparison: lowercase, no diacritics, no
// punctuation, no honorifics, collapsed whitespace. "Dr. Doe, John" and
// "doe john" key equal.
func NameKey(name string) string {
	return NormalizeTitle(NormalizeName(name))
}

// Ratio returns a similarity in [0,1] between two raw strings using
// Levenshtein distance over their folded forms. Identical strings score
// 1; strings sharing no characters score near 0.
func Ratio(a, b string) float64 {
	na, nb := NormalizeTitle(a), NormalizeTitle(b)
	if na == nb {
		if na == "" {
			return 0
		}
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}
	dist := levenshtein([]rune(na), []rune(nb))
	longer := len([]rune(na))
	if l := len([]rune(nb)); l > longer {
		longer = l
	}
	return 1 - float64(dist)/float64(longer)
}

// NameRatio compares two author-name strings after honorific stripping
// and diacritic folding. Token order is ignored: "Smith J" and "J Smith"
// compare equal.
func NameRatio(a, b string) float64 {
	ka, kb := NameKey(a), NameKey(b)
	if ka == "" || kb == "" {
		return 0
	}
	if ka == kb {
		return 1
	}
	if sortedTokens(ka) == sortedTokens(kb) {
		return 1
	}
	direct := Ratio(ka, kb)
	reordered := Ratio(sortedTokens(ka), sortedTokens(kb))
	if reordered > direct {
		return reordered
	}
	return direct
}

func sortedTokens(s string) string {
	fields := strings.Fields(s)
	// Insertion sort; author names have a handful of tokens.
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j] < fields[j-1]; j-- {
			fields[j], fields[j-1] = fields[j-1], fields[j]
		}
	}
	return strings.Join(fields, " ")
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
