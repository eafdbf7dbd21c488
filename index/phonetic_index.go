package index

import (
	"sort"

	"github.com/medadhere/drugresolver/internal/phonetic"
	"github.com/medadhere/drugresolver/model"
)

// PhoneticIndex maps a fixed-length sound code (see the phonetic package)
// to the sorted positions of records whose generic or brand name encodes to
// that code. Names that sound alike collide here even when spelled very
// differently, which is what makes it useful as a fallback tier for
// voice-transcription noise.
type PhoneticIndex struct {
	postings map[string][]uint32
}

// BuildPhoneticIndex constructs the phonetic index over records. Both the
// generic and the brand name are encoded; when the two codes differ, both
// are indexed for the record.
func BuildPhoneticIndex(records []model.Record) *PhoneticIndex {
	sets := make(map[string]map[uint32]struct{})
	add := func(code string, pos uint32) {
		if code == "" {
			return
		}
		set, ok := sets[code]
		if !ok {
			set = make(map[uint32]struct{})
			sets[code] = set
		}
		set[pos] = struct{}{}
	}

	for pos, rec := range records {
		p := uint32(pos)
		generic := phonetic.Encode(rec.GenericName)
		add(generic, p)
		if brand := phonetic.Encode(rec.BrandName); brand != generic {
			add(brand, p)
		}
	}

	idx := &PhoneticIndex{postings: make(map[string][]uint32, len(sets))}
	for code, set := range sets {
		positions := make([]uint32, 0, len(set))
		for p := range set {
			positions = append(positions, p)
		}
		sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
		idx.postings[code] = positions
	}
	return idx
}

// Lookup returns the positions indexed under code, or nil for an unknown
// code. The returned slice is shared and must be treated as read-only.
func (idx *PhoneticIndex) Lookup(code string) []uint32 {
	return idx.postings[code]
}

// CodeCount returns the number of distinct sound codes indexed.
func (idx *PhoneticIndex) CodeCount() int { return len(idx.postings) }
