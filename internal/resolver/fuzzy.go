package resolver

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/antzucaro/matchr"
	"github.com/google/uuid"

	"github.com/medadhere/drugresolver/internal/phonetic"
	"github.com/medadhere/drugresolver/internal/tokenizer"
	"github.com/medadhere/drugresolver/model"
	"github.com/medadhere/drugresolver/services"
)

// FuzzySearch runs the tiered resolution pipeline in strict priority order,
// stopping as soon as limit results are collected:
//
//  1. alias-table exact match
//  2. standard indexed search on the (possibly alias-rewritten) query
//  3. phonetic-code fallback
//  4. bounded edit-distance scan
//
// The edit-distance tier scans at most the configured FuzzyScanCap leading
// records; a full-dataset distance scan is the one operation this engine
// expressly avoids.
func (s *Service) FuzzySearch(ctx context.Context, query string, limit, maxEditDistance int) (services.SearchResult, error) {
	start := time.Now()
	result := services.SearchResult{Hits: []services.Match{}, QueryID: uuid.New().String()}
	defer func() {
		result.Took = time.Since(start).Milliseconds()
		if s.metrics != nil {
			s.metrics.ObserveQuery("fuzzy_search", time.Since(start).Seconds(), len(result.Hits))
		}
	}()

	if limit <= 0 {
		limit = s.settings.DefaultLimit
	}
	if maxEditDistance <= 0 {
		maxEditDistance = s.settings.MaxEditDistance
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if len(normalized) < tokenizer.MinTokenLength {
		return result, nil
	}

	if _, err := s.loader.EnsureLoaded(ctx); err != nil {
		return result, err
	}
	recStore := s.loader.Store()

	var matches []services.Match
	matched := make(map[uint32]struct{}) // positions already claimed by a higher tier

	// Tier 1: alias exact match. The canonical term also replaces the
	// query for every later tier.
	if canonical, ok := s.aliases.Lookup(normalized); ok {
		normalized = strings.ToLower(canonical)
		if pos, found := recStore.FindExactPosition(canonical); found {
			rec, _ := recStore.Get(pos)
			matches = append(matches, newMatch(rec, scoreAliasTier, services.MatchKindAlias))
			matched[pos] = struct{}{}
		}
	}

	// Tier 2: standard indexed search. When this tier alone satisfies the
	// limit the pipeline returns without touching the fallback tiers.
	indexed := s.scanCandidates(normalized, limit)
	for _, hit := range indexed {
		if alreadyMatched(matched, hit.pos) {
			continue
		}
		matched[hit.pos] = struct{}{}
		matches = append(matches, newMatch(hit.rec, scoreIndexTier, services.MatchKindIndex))
	}
	if len(indexed) >= limit {
		sortAndTruncate(&result, matches, limit)
		return result, nil
	}

	// Tier 3: phonetic fallback — same encoding the index was built with.
	if code := phonetic.Encode(normalized); code != "" {
		for _, pos := range s.loader.PhoneticIndex().Lookup(code) {
			if alreadyMatched(matched, pos) {
				continue
			}
			rec, ok := recStore.Get(pos)
			if !ok {
				continue
			}
			matched[pos] = struct{}{}
			matches = append(matches, newMatch(rec, scorePhoneticTier, services.MatchKindPhonetic))
			if len(matches) >= limit {
				break
			}
		}
	}

	// Tier 4: bounded edit-distance scan.
	if len(matches) < limit {
		matches = s.editDistanceScan(normalized, maxEditDistance, limit, matches, matched)
	}

	sortAndTruncate(&result, matches, limit)
	return result, nil
}

// editDistanceScan compares the query against the generic and brand names
// of at most FuzzyScanCap leading records. The acceptance threshold is
// max(maxEditDistance, len(query)/3): short queries get a strict absolute
// cap, long queries a proportionally looser one.
func (s *Service) editDistanceScan(query string, maxEditDistance, limit int, matches []services.Match, matched map[uint32]struct{}) []services.Match {
	recStore := s.loader.Store()

	threshold := maxEditDistance
	if proportional := len([]rune(query)) / 3; proportional > threshold {
		threshold = proportional
	}

	scanCap := s.settings.FuzzyScanCap
	if scanCap <= 0 || scanCap > recStore.Len() {
		scanCap = recStore.Len()
	}

	for pos := uint32(0); int(pos) < scanCap && len(matches) < limit; pos++ {
		if alreadyMatched(matched, pos) {
			continue
		}
		rec, ok := recStore.Get(pos)
		if !ok {
			break
		}
		dist := nameDistance(rec, query)
		if dist > threshold {
			continue
		}
		score := fuzzyBaseScore - dist*fuzzyDistancePenalty
		if score < fuzzyFloorScore {
			score = fuzzyFloorScore
		}
		matched[pos] = struct{}{}
		matches = append(matches, newMatch(rec, score, services.MatchKindFuzzy))
	}
	return matches
}

// nameDistance returns the minimum Levenshtein distance between query and
// the record's generic and brand names (case-insensitive).
func nameDistance(rec model.Record, query string) int {
	dist := matchr.Levenshtein(strings.ToLower(rec.GenericName), query)
	if rec.BrandName != "" {
		if bd := matchr.Levenshtein(strings.ToLower(rec.BrandName), query); bd < dist {
			dist = bd
		}
	}
	return dist
}

func alreadyMatched(matched map[uint32]struct{}, pos uint32) bool {
	_, ok := matched[pos]
	return ok
}

// sortAndTruncate orders matches by descending score (stable within equal
// scores) and installs the top limit entries into result.
func sortAndTruncate(result *services.SearchResult, matches []services.Match, limit int) {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	if matches == nil {
		matches = []services.Match{}
	}
	result.Hits = matches
	result.Total = len(matches)
}
