// Package index derives the two inverted indexes — token and phonetic —
// from the record store. Both are built exactly once per load and are
// read-only afterwards, so lookups need no locking.
package index

import (
	"sort"

	"github.com/medadhere/drugresolver/internal/tokenizer"
	"github.com/medadhere/drugresolver/model"
)

// DefaultPrefixCap bounds the longest word-prefix indexed by the token
// index. Longer queries still resolve through the full-word key, so the cap
// trades index memory for nothing the caller can observe on typical names.
const DefaultPrefixCap = 12

// TokenIndex maps a lower-cased word, or word-prefix of length >= 2, to the
// sorted positions of records whose generic or brand name contains a word
// matching it. Every indexed prefix's position set is a superset of the
// position set of any longer prefix of the same word.
type TokenIndex struct {
	postings map[string][]uint32
}

// BuildTokenIndex constructs the token index over records. prefixCap limits
// the indexed prefix length; <= 0 applies DefaultPrefixCap.
func BuildTokenIndex(records []model.Record, prefixCap int) *TokenIndex {
	if prefixCap <= 0 {
		prefixCap = DefaultPrefixCap
	}

	// Collect position sets first; flatten to sorted slices once complete.
	sets := make(map[string]map[uint32]struct{})
	add := func(term string, pos uint32) {
		set, ok := sets[term]
		if !ok {
			set = make(map[uint32]struct{})
			sets[term] = set
		}
		set[pos] = struct{}{}
	}

	for pos, rec := range records {
		p := uint32(pos)
		for _, token := range tokenizer.Tokenize(rec.GenericName + " " + rec.BrandName) {
			add(token, p)
			for _, ngram := range tokenizer.PrefixNGrams(token, prefixCap) {
				add(ngram, p)
			}
		}
	}

	idx := &TokenIndex{postings: make(map[string][]uint32, len(sets))}
	for term, set := range sets {
		positions := make([]uint32, 0, len(set))
		for p := range set {
			positions = append(positions, p)
		}
		sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
		idx.postings[term] = positions
	}
	return idx
}

// Lookup returns the positions indexed under term, or nil when the term is
// unknown. The returned slice is shared and must be treated as read-only.
func (idx *TokenIndex) Lookup(term string) []uint32 {
	return idx.postings[term]
}

// TermCount returns the number of distinct words and prefixes indexed.
func (idx *TokenIndex) TermCount() int { return len(idx.postings) }
