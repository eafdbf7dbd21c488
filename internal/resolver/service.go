// Package resolver implements the public query surface of the engine:
// exact/prefix/substring search over the token index, the tiered fuzzy
// pipeline, and the name-correction helper used by the speech-to-text
// post-processing path.
package resolver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medadhere/drugresolver/config"
	"github.com/medadhere/drugresolver/internal/alias"
	"github.com/medadhere/drugresolver/internal/loader"
	"github.com/medadhere/drugresolver/internal/metrics"
	"github.com/medadhere/drugresolver/internal/tokenizer"
	"github.com/medadhere/drugresolver/model"
	"github.com/medadhere/drugresolver/services"
)

// Service implements services.Resolver on top of the loader's record store
// and indexes. It holds no per-query state; all cross-call state lives in
// the loader's one-time readiness transition, so a single Service is safe
// for any number of concurrent callers.
type Service struct {
	loader   *loader.Coordinator
	aliases  *alias.Table
	settings config.EngineSettings
	metrics  *metrics.Metrics // nil disables instrumentation
}

var _ services.Resolver = (*Service)(nil)

// NewService creates a resolver Service. The metrics argument may be nil.
func NewService(coordinator *loader.Coordinator, aliases *alias.Table, settings config.EngineSettings, m *metrics.Metrics) (*Service, error) {
	if coordinator == nil {
		return nil, fmt.Errorf("loader coordinator cannot be nil")
	}
	if aliases == nil {
		return nil, fmt.Errorf("alias table cannot be nil")
	}
	return &Service{
		loader:   coordinator,
		aliases:  aliases,
		settings: settings,
		metrics:  m,
	}, nil
}

// Search performs exact/prefix/substring search based on the token index.
//
// Queries shorter than two characters after trimming return an empty result:
// too ambiguous to be useful and too expensive to scan broadly. A query
// whose token-index union is empty also returns empty immediately — the
// primary path never falls back to a full scan.
func (s *Service) Search(ctx context.Context, query string, limit int) (services.SearchResult, error) {
	start := time.Now()
	result := services.SearchResult{Hits: []services.Match{}, QueryID: uuid.New().String()}
	defer func() {
		result.Took = time.Since(start).Milliseconds()
		if s.metrics != nil {
			s.metrics.ObserveQuery("search", time.Since(start).Seconds(), len(result.Hits))
		}
	}()

	if limit <= 0 {
		limit = s.settings.DefaultLimit
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if len(normalized) < tokenizer.MinTokenLength {
		return result, nil
	}
	if canonical, ok := s.aliases.Lookup(normalized); ok {
		normalized = strings.ToLower(canonical)
	}

	// Await index readiness; never answer from a partially built index.
	if _, err := s.loader.EnsureLoaded(ctx); err != nil {
		return result, err
	}

	result.Hits = s.indexedSearch(normalized, limit)
	result.Total = len(result.Hits)
	return result, nil
}

// FindExact returns the record whose generic or brand name equals name
// case-insensitively, or nil when there is none.
func (s *Service) FindExact(ctx context.Context, name string) (*model.Record, error) {
	if _, err := s.loader.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	rec, ok := s.loader.Store().FindExact(name)
	if s.metrics != nil {
		found := 0
		if ok {
			found = 1
		}
		s.metrics.ObserveQuery("find_exact", 0, found)
	}
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// candidateHit pairs a scored match with its record position so the fuzzy
// pipeline can deduplicate across tiers.
type candidateHit struct {
	pos   uint32
	score int
	kind  services.MatchKind
	rec   model.Record
}

// newMatch builds a Match for rec, filling the UI-facing display name.
func newMatch(rec model.Record, score int, kind services.MatchKind) services.Match {
	return services.Match{Record: rec, Display: rec.DisplayName(), Score: score, Kind: kind}
}

// indexedSearch generates candidates from the token index and scores them.
// The returned matches are sorted by descending score (stable by candidate
// encounter order) and truncated to limit.
func (s *Service) indexedSearch(query string, limit int) []services.Match {
	hits := s.scanCandidates(query, limit)
	matches := make([]services.Match, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, newMatch(h.rec, h.score, h.kind))
	}
	return matches
}

// scanCandidates is the position-aware core of indexedSearch.
func (s *Service) scanCandidates(query string, limit int) []candidateHit {
	tokenIdx := s.loader.TokenIndex()
	recStore := s.loader.Store()

	// Candidate generation: union of posting lists for every query word,
	// preserving first-encounter order for stable tie-breaks.
	seen := make(map[uint32]struct{})
	var candidates []uint32
	for _, token := range tokenizer.Tokenize(query) {
		for _, pos := range tokenIdx.Lookup(token) {
			if _, dup := seen[pos]; dup {
				continue
			}
			seen[pos] = struct{}{}
			candidates = append(candidates, pos)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	scored := make([]candidateHit, 0, len(candidates))
	haveStrong := false
	for _, pos := range candidates {
		rec, ok := recStore.Get(pos)
		if !ok {
			continue
		}
		score, kind := scoreCandidate(rec, query)
		scored = append(scored, candidateHit{pos: pos, score: score, kind: kind, rec: rec})
		if score >= scorePrefixMatch {
			haveStrong = true
		}
		// High-confidence matches are already present; stop scanning the
		// rest of a large union.
		if len(scored) >= limit*earlyStopFactor && haveStrong {
			break
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// scoreCandidate ranks the textual relationship between a candidate record
// and the (lower-cased) query.
func scoreCandidate(rec model.Record, query string) (int, services.MatchKind) {
	generic := strings.ToLower(rec.GenericName)
	brand := strings.ToLower(rec.BrandName)

	if generic == query || (brand != "" && brand == query) {
		return scoreExactMatch, services.MatchKindExact
	}
	if strings.HasPrefix(generic, query) || (brand != "" && strings.HasPrefix(brand, query)) {
		return scorePrefixMatch, services.MatchKindPrefix
	}
	if strings.Contains(generic, query) || (brand != "" && strings.Contains(brand, query)) {
		return scoreSubstringMatch, services.MatchKindSubstring
	}
	return scoreIndexHit, services.MatchKindIndex
}
