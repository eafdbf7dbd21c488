// Package alias provides the static rewrite table for well-known drug name
// mistranscriptions and misspellings. The table is consulted before any
// indexed lookup; it is a direct key match only — near-misses fall through
// to the fuzzy pipeline.
package alias

import "strings"

// builtin maps a known misheard or misspelled form (lower-cased) to the
// canonical search term. Sources: recurring speech-to-text output errors and
// the misspellings most often seen in free-text medication entry.
var builtin = map[string]string{
	// speech-to-text mishearings
	"metaflorin":      "metformin",
	"met forman":      "metformin",
	"metforman":       "metformin",
	"amoxyciline":     "amoxicillin",
	"amoksisilin":     "amoxicillin",
	"siprofloksasin":  "ciprofloxacin",
	"klopidogrel":     "clopidogrel",
	"parasetamol":     "paracetamol",
	"omeprazol":       "omeprazole",
	"amlodipin":       "amlodipine",
	"sertralin":       "sertraline",
	"prednisolon":     "prednisolone",
	"levothyroxin":    "levothyroxine",
	"kodein":          "codeine",

	// frequent typed misspellings
	"ibruprofen":      "ibuprofen",
	"ibuprofin":       "ibuprofen",
	"asprin":          "aspirin",
	"paracetamole":    "paracetamol",
	"omiprazole":      "omeprazole",
	"atorvastatine":   "atorvastatin",
	"simvastatine":    "simvastatin",
	"metropolol":      "metoprolol",
	"warfrin":         "warfarin",
	"gabapenten":      "gabapentin",
	"cetrizine":       "cetirizine",

	// shorthand
	"hctz": "hydrochlorothiazide",
	"asa":  "aspirin",
}

// Table is a read-only alias lookup. Construct it once with New and share
// it freely; it is never mutated afterwards.
type Table struct {
	entries map[string]string
}

// New builds a Table from the built-in entries merged with extra. Keys in
// extra are lower-cased and trimmed; an extra entry overrides a built-in one
// with the same key.
func New(extra map[string]string) *Table {
	entries := make(map[string]string, len(builtin)+len(extra))
	for k, v := range builtin {
		entries[k] = v
	}
	for k, v := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		entries[k] = v
	}
	return &Table{entries: entries}
}

// Lookup returns the canonical term for query and whether the (lower-cased,
// trimmed) query is a known alias.
func (t *Table) Lookup(query string) (string, bool) {
	canonical, ok := t.entries[strings.ToLower(strings.TrimSpace(query))]
	return canonical, ok
}

// Len returns the number of alias entries.
func (t *Table) Len() int { return len(t.entries) }
