package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/antzucaro/matchr"

	"github.com/medadhere/drugresolver/model"
	"github.com/medadhere/drugresolver/services"
)

// CorrectName resolves a likely-mistranscribed drug name to its canonical
// form. It is a thin wrapper over the fuzzy pipeline with a confidence
// threshold semantics: confidence 0 with an unchanged string is the
// "no correction found" signal — this operation never fails on a bad name.
//
// Resolution order: alias table (confidence 95), exact record match
// (confidence 100), top fuzzy-search hit (confidence = its score).
func (s *Service) CorrectName(ctx context.Context, query string) (services.Correction, error) {
	start := time.Now()
	correction := services.Correction{Corrected: query, Original: query}
	defer func() {
		if s.metrics != nil {
			found := 0
			if correction.Confidence > 0 {
				found = 1
			}
			s.metrics.ObserveQuery("correct_name", time.Since(start).Seconds(), found)
		}
	}()

	normalized := strings.ToLower(strings.TrimSpace(query))
	if len(normalized) < 2 {
		return correction, nil
	}

	if canonical, ok := s.aliases.Lookup(normalized); ok {
		correction.Corrected = canonical
		correction.Confidence = confidenceAlias
		return correction, nil
	}

	if _, err := s.loader.EnsureLoaded(ctx); err != nil {
		return correction, err
	}

	if rec, ok := s.loader.Store().FindExact(normalized); ok {
		correction.Corrected = matchingName(rec, normalized)
		correction.Confidence = confidenceExact
		return correction, nil
	}

	fuzzy, err := s.FuzzySearch(ctx, normalized, 1, s.settings.MaxEditDistance)
	if err != nil {
		return correction, err
	}
	if len(fuzzy.Hits) > 0 {
		top := fuzzy.Hits[0]
		correction.Corrected = closestName(top.Record, normalized)
		correction.Confidence = top.Score
	}
	return correction, nil
}

// matchingName returns the record name (in its stored casing) that equals
// the normalized query.
func matchingName(rec model.Record, normalized string) string {
	if strings.EqualFold(rec.BrandName, normalized) {
		return rec.BrandName
	}
	return rec.GenericName
}

// closestName returns whichever of the record's names is nearer to the
// query by edit distance; the generic name wins ties.
func closestName(rec model.Record, normalized string) string {
	if rec.BrandName == "" {
		return rec.GenericName
	}
	genericDist := matchr.Levenshtein(strings.ToLower(rec.GenericName), normalized)
	brandDist := matchr.Levenshtein(strings.ToLower(rec.BrandName), normalized)
	if brandDist < genericDist {
		return rec.BrandName
	}
	return rec.GenericName
}
