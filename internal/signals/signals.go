// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package signals extracts identity evidence from free text: where a
// candidate name appears relative to the target email, whether ownership
// phrasing surrounds it, and which names the NER layer recognizes as
// people. The extractor produces weighted Signal values; aggregation
// into a confidence score happens in the score package.
package signals

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/identity-engine/pkg/types"
)

// Entity is one labeled span returned by the NER layer.
type Entity struct {
	Text       string
	Label      string
	Start      int
	End        int
	Confidence float64
}

// LabelPerson is the entity label the extractor acts on.
const LabelPerson = "PERSON"

// Recognizer is the NER interface the pipeline consumes. Model-backed
// implementations live outside this repository; PatternRecognizer is the
// built-in fallback.
type Recognizer interface {
	Recognize(text string) []Entity
}

// proximityTiers maps character distance between a person entity and the
// email to a weight multiplier. Adjacent names carry full weight; names
// hundreds of characters away carry almost none.
var proximityTiers = []struct {
	MaxDistance int
	Factor      float64
}{
	{0, 1.0},
	{10, 0.9},
	{50, 0.7},
	{100, 0.5},
	{200, 0.3},
}

const farFactor = 0.1

func proximityFactor(distance int) float64 {
	for _, tier := range proximityTiers {
		if distance <= tier.MaxDistance {
			return tier.Factor
		}
	}
	return farFactor
}

// ownershipCues are phrases that, when present in the email's context
// window, mark the nearby name as the stated owner rather than a
// bystander.
var ownershipCues = []string{
	"email:", "e-mail:", "contact:", "contact at", "write to",
	"corresponding author", "author:", "reach out to",
}

// Extract analyzes the query's context text and returns weighted
// signals. Every occurrence of the email is examined with a window of
// cfg.ContextWindow characters on each side. Names inside a window
// produce co-occurrence signals scaled by distance; recognized people
// anywhere produce NER signals; names seen only outside any window
// produce weak-source signals.
func Extract(text, email string, rec Recognizer, cfg types.ScoringConfig) []types.Signal {
	if strings.TrimSpace(text) == "" || email == "" {
		return nil
	}

	lower := strings.ToLower(text)
	email = strings.ToLower(email)

	var windows [][2]int
	for idx := 0; ; {
		pos := strings.Index(lower[idx:], email)
		if pos < 0 {
			break
		}
		pos += idx
		start := pos - cfg.ContextWindow
		if start < 0 {
			start = 0
		}
		end := pos + len(email) + cfg.ContextWindow
		if end > len(text) {
			end = len(text)
		}
		windows = append(windows, [2]int{start, end})
		idx = pos + len(email)
	}
	if len(windows) == 0 {
		return nil
	}

	cueBonus := hasOwnershipCue(lower, windows)

	var out []types.Signal
	for _, e := range rec.Recognize(text) {
		if e.Label != LabelPerson {
			continue
		}
		dist, inWindow := distanceToEmail(e, lower, email, windows)
		if inWindow {
			weight := cfg.CoOccurrenceWeight * proximityFactor(dist)
			detail := fmt.Sprintf("name within %d chars of email", dist)
			if cueBonus {
				// An ownership cue in the window lifts the signal to
				// full strength regardless of distance.
				weight = cfg.CoOccurrenceWeight
				detail = "ownership phrasing near email"
			}
			out = append(out, types.Signal{
				Kind:      types.SignalCoOccurrence,
				Candidate: e.Text,
				Weight:    weight,
				Detail:    detail,
			})
			out = append(out, types.Signal{
				Kind:      types.SignalNERPerson,
				Candidate: e.Text,
				Weight:    cfg.NERPersonWeight * e.Confidence,
				Detail:    "recognized as person entity",
			})
			continue
		}
		out = append(out, types.Signal{
			Kind:      types.SignalWeakSource,
			Candidate: e.Text,
			Weight:    cfg.WeakSourceWeight,
			Detail:    "name in snippet text without structural cue",
		})
	}
	return out
}

func hasOwnershipCue(lower string, windows [][2]int) bool {
	for _, w := range windows {
		segment := lower[w[0]:w[1]]
		for _, cue := range ownershipCues {
			if strings.Contains(segment, cue) {
				return true
			}
		}
	}
	return false
}

// distanceToEmail returns the character gap between the entity span and
// the nearest email occurrence, and whether the entity sits inside any
// context window.
func distanceToEmail(e Entity, lower, email string, windows [][2]int) (int, bool) {
	inWindow := false
	for _, w := range windows {
		if e.End > w[0] && e.Start < w[1] {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return -1, false
	}

	best := -1
	for idx := 0; ; {
		pos := strings.Index(lower[idx:], email)
		if pos < 0 {
			break
		}
		pos += idx
		d := 0
		switch {
		case e.End <= pos:
			d = pos - e.End
		case e.Start >= pos+len(email):
			d = e.Start - (pos + len(email))
		}
		if best < 0 || d < best {
			best = d
		}
		idx = pos + len(email)
	}
	return best, true
}

// PatternRecognizer is a heuristic person recognizer covering the name
// shapes academic pages use: "Jane Smith", "Jane A. Smith", "Smith, J.",
// "J. A. Smith". It stands in when no model-backed NER is wired.
type PatternRecognizer struct{}

// nonNameWords are capitalized words that start sentences or name
// institutions and must not seed or join a person-name run.
var nonNameWords = map[string]bool{
	"The": true, "This": true, "These": true, "Our": true, "New": true,
	"University": true, "Department": true, "Institute": true,
	"Hospital": true, "Journal": true, "Contact": true, "Email": true,
	"Address": true, "Corresponding": true, "Author": true,
}

var wordRe = regexp.MustCompile(`[A-Za-z]+\.?`)

// maxNameTokens bounds a person-name run; real bylines rarely exceed
// four tokens.
const maxNameTokens = 4

type nameToken struct {
	text       string
	start, end int
	capWord    bool
	initial    bool
}

// Recognize scans for runs of capitalized words and initials separated
// by at most a comma and a space. A run of two to four tokens with at
// least one full capitalized word is reported as a person.
func (PatternRecognizer) Recognize(text string) []Entity {
	var tokens []nameToken
	for _, loc := range wordRe.FindAllStringIndex(text, -1) {
		w := text[loc[0]:loc[1]]
		tok := nameToken{text: w, start: loc[0], end: loc[1]}
		bare := strings.TrimSuffix(w, ".")
		switch {
		case nonNameWords[bare]:
			// stays non-name
		case len(bare) == 1 && bare[0] >= 'A' && bare[0] <= 'Z':
			tok.initial = true
		case len(bare) > 1 && bare[0] >= 'A' && bare[0] <= 'Z' && strings.ToLower(bare[1:]) == bare[1:]:
			tok.capWord = true
		}
		tokens = append(tokens, tok)
	}

	var out []Entity
	for i := 0; i < len(tokens); i++ {
		if !tokens[i].capWord && !tokens[i].initial {
			continue
		}
		j := i
		capWords := 0
		for j < len(tokens) && j-i < maxNameTokens {
			t := tokens[j]
			if !t.capWord && !t.initial {
				break
			}
			if j > i && !adjacent(text, tokens[j-1].end, t.start) {
				break
			}
			if t.capWord {
				capWords++
			}
			j++
		}
		if j-i >= 2 && capWords >= 1 {
			out = append(out, Entity{
				Text:       text[tokens[i].start:tokens[j-1].end],
				Label:      LabelPerson,
				Start:      tokens[i].start,
				End:        tokens[j-1].end,
				Confidence: nameConfidence(capWords),
			})
		}
		if j > i {
			i = j - 1
		}
	}
	return out
}

// adjacent reports whether the gap between two tokens is only a space,
// optionally preceded by a comma ("Smith, J.").
func adjacent(text string, end, start int) bool {
	gap := text[end:start]
	return gap == " " || gap == ", "
}

func nameConfidence(capWords int) float64 {
	if capWords >= 2 {
		return 0.9
	}
	return 0.7
}
