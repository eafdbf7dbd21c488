// Package services defines the public interfaces of the resolution engine
// and the result types they exchange. The api package consumes these;
// internal/resolver and internal/loader implement them.
package services

import (
	"context"

	"github.com/medadhere/drugresolver/model"
)

// MatchKind tags how a record came to be part of a result set.
type MatchKind string

const (
	MatchKindExact     MatchKind = "exact"     // case-insensitive name equality
	MatchKindPrefix    MatchKind = "prefix"    // name starts with the query
	MatchKindSubstring MatchKind = "substring" // query occurs inside the name
	MatchKindIndex     MatchKind = "index"     // token/prefix index hit only
	MatchKindAlias     MatchKind = "alias"     // alias-table rewrite hit
	MatchKindPhonetic  MatchKind = "phonetic"  // sound-code collision
	MatchKindFuzzy     MatchKind = "fuzzy"     // bounded edit-distance match
)

// Match is one scored candidate record. Matches are ephemeral: produced per
// query, never stored. Display carries the record's UI-facing name (brand
// when present, generic otherwise) so suggestion consumers need no
// client-side fallback logic.
type Match struct {
	Record  model.Record `json:"record"`
	Display string       `json:"display"`
	Score   int          `json:"score"`
	Kind    MatchKind    `json:"kind"`
}

// SearchResult is the ordered outcome of a search or fuzzy-search query.
type SearchResult struct {
	Hits    []Match `json:"hits"`
	Total   int     `json:"total"`
	Took    int64   `json:"took"` // milliseconds
	QueryID string  `json:"query_id"`
}

// Correction is the outcome of a name-correction request. Confidence 0 with
// Corrected == Original is the "no correction found" signal, not an error.
type Correction struct {
	Corrected  string `json:"corrected"`
	Confidence int    `json:"confidence"`
	Original   string `json:"original"`
}

// Resolver is the public query surface of the engine. All operations are
// stateless across calls and safe for concurrent use; they block until the
// one-time index build completes (or ctx is done).
type Resolver interface {
	// Search performs exact/prefix/substring search over the token index.
	// Queries shorter than two characters after trimming yield an empty
	// result.
	Search(ctx context.Context, query string, limit int) (SearchResult, error)

	// FuzzySearch runs the tiered pipeline: alias, indexed search,
	// phonetic fallback, bounded edit-distance scan.
	FuzzySearch(ctx context.Context, query string, limit, maxEditDistance int) (SearchResult, error)

	// CorrectName resolves a likely-mistranscribed name to its canonical
	// form. The only possible error is ctx expiring before the index is
	// ready; "nothing better found" is Confidence 0.
	CorrectName(ctx context.Context, query string) (Correction, error)

	// FindExact returns the record whose generic or brand name equals
	// name case-insensitively, or nil when there is none.
	FindExact(ctx context.Context, name string) (*model.Record, error)
}

// EngineStatus describes the loader's lifecycle position for health
// reporting.
type EngineStatus struct {
	Ready       bool `json:"ready"`
	Degraded    bool `json:"degraded"` // readiness signaled after a failed load
	RecordCount int  `json:"record_count"`
}

// StatusReporter exposes the loader's readiness state.
type StatusReporter interface {
	Status() EngineStatus
}
