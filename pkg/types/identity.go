// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// IdentityQuery is the pipeline entry input: the email whose owner is
// sought, plus optional hints gathered by the caller.
type IdentityQuery struct {
	// Email is the address under investigation. Normalized to lowercase
	// before use as a cache key or comparison target.
	Email string `json:"email" yaml:"email"`

	// NameHints are candidate owner names supplied by the caller (e.g.
	// from a directory page). Each hint seeds a candidate; the scorer may
	// discover further candidates from context signals.
	NameHints []string `json:"name_hints,omitempty" yaml:"name_hints,omitempty"`

	// ContextText is free text surrounding the email in the wild (search
	// snippets, page extracts). Feeds the signal extractor; may be empty.
	ContextText string `json:"context_text,omitempty" yaml:"context_text,omitempty"`
}

// SignalKind names one class of identity evidence.
type SignalKind string

const (
	// SignalCoOccurrence: the exact email and the candidate name appear
	// within a bounded character window of each other.
	SignalCoOccurrence SignalKind = "co-occurrence"

	// SignalNERPerson: the candidate name was recognized as a PERSON
	// entity by the NER layer.
	SignalNERPerson SignalKind = "ner-person"

	// SignalAuthorship: the candidate is first or corresponding author
	// on a merged record whose contact email matches the target.
	SignalAuthorship SignalKind = "authorship"

	// SignalWeakSource: the candidate was found only in weak material
	// (search snippet text with no structural cue).
	SignalWeakSource SignalKind = "weak-source"
)

// Signal is one weighted piece of evidence tying a candidate name to the
// email. Weight is the raw (pre-clamp) contribution.
type Signal struct {
	Kind      SignalKind `json:"kind" yaml:"kind"`
	Candidate string     `json:"candidate" yaml:"candidate"`
	Weight    float64    `json:"weight" yaml:"weight"`

	// Detail describes the evidence (matched pattern, record title,
	// entity span) for the breakdown report.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// CandidateScore is the scored result for one (email, candidate-name)
// pair: a clamped confidence in [0,1] plus its contributing signals.
type CandidateScore struct {
	Name       string   `json:"name" yaml:"name"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Signals    []Signal `json:"signals" yaml:"signals"`
}

// ResultState classifies the outcome of an identity run.
type ResultState string

const (
	// StateResolved: one candidate cleared the confidence gate.
	StateResolved ResultState = "resolved"

	// StateAmbiguous: the top candidates scored within the ambiguity
	// margin of each other. Analysis proceeds on the top candidate and
	// all contenders are reported.
	StateAmbiguous ResultState = "ambiguous"

	// StateUndetermined: no candidate cleared the gate. Downstream
	// stages are skipped entirely, not run-and-discarded.
	StateUndetermined ResultState = "undetermined"
)

// IdentityConfidence aggregates candidate scores for one email.
// Within a run a candidate's confidence is monotonically non-decreasing
// as corroborating signals arrive; never negative; capped at 1.0.
type IdentityConfidence struct {
	State ResultState `json:"state" yaml:"state"`

	// Best is the top-scoring candidate, zero-valued when undetermined.
	Best CandidateScore `json:"best" yaml:"best"`

	// Margin is Best.Confidence minus the runner-up's confidence,
	// preserved for downstream reporting. Equals Best.Confidence when
	// there is a single candidate.
	Margin float64 `json:"margin" yaml:"margin"`

	// Candidates lists every scored candidate, highest first.
	Candidates []CandidateScore `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// Diagnostics reports drops and failures accumulated during a run so the
// caller can assess completeness. Record-level errors never abort the
// run.
type Diagnostics struct {
	// MalformedRecords counts provider entries dropped at the normalizer
	// boundary.
	MalformedRecords int `json:"malformed_records" yaml:"malformed_records"`

	// UnavailableSources lists providers that failed or timed out and so
	// contributed zero records.
	UnavailableSources []Source `json:"unavailable_sources,omitempty" yaml:"unavailable_sources,omitempty"`

	// ClusteringConflicts counts record pairs that matched on one key
	// but disagreed on another (e.g. same DOI, years far apart).
	ClusteringConflicts int `json:"clustering_conflicts" yaml:"clustering_conflicts"`

	// Notes carries human-readable drop explanations.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Profile is the full pipeline output for one identity query.
type Profile struct {
	Email      string             `json:"email" yaml:"email"`
	Confidence IdentityConfidence `json:"confidence" yaml:"confidence"`

	// Records is empty when the run is undetermined.
	Records []AnalyzedRecord `json:"records,omitempty" yaml:"records,omitempty"`

	Analytics   AnalyticsSnapshot `json:"analytics" yaml:"analytics"`
	Diagnostics Diagnostics       `json:"diagnostics" yaml:"diagnostics"`
}
