// Package store holds the parsed reference dataset in memory.
package store

import (
	"strings"

	"github.com/medadhere/drugresolver/model"
)

// RecordStore is the dense, ordered sequence of reference records. A
// record's position in the sequence is its internal handle; both indexes
// refer to positions instead of duplicating string data.
//
// A RecordStore is built once by the loader and never mutated afterwards,
// so concurrent reads need no synchronization. Publication to readers
// happens through the loader's readiness signal.
type RecordStore struct {
	records []model.Record

	// exactByName maps the lower-cased generic and brand names to the
	// position of the first record carrying that name.
	exactByName map[string]uint32
}

// NewRecordStore builds a store over records. The slice is retained as-is;
// callers must not modify it after handing it over.
func NewRecordStore(records []model.Record) *RecordStore {
	s := &RecordStore{
		records:     records,
		exactByName: make(map[string]uint32, len(records)*2),
	}
	for pos, rec := range records {
		for _, name := range []string{rec.GenericName, rec.BrandName} {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				continue
			}
			if _, taken := s.exactByName[key]; !taken {
				s.exactByName[key] = uint32(pos)
			}
		}
	}
	return s
}

// Len returns the number of records in the store.
func (s *RecordStore) Len() int { return len(s.records) }

// Get returns the record at pos and whether pos is in range.
func (s *RecordStore) Get(pos uint32) (model.Record, bool) {
	if int(pos) >= len(s.records) {
		return model.Record{}, false
	}
	return s.records[pos], true
}

// All returns the underlying record slice. Callers must treat it as
// read-only.
func (s *RecordStore) All() []model.Record { return s.records }

// FindExact returns the record whose generic or brand name equals name
// case-insensitively, and whether one exists.
func (s *RecordStore) FindExact(name string) (model.Record, bool) {
	pos, ok := s.exactByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Record{}, false
	}
	return s.records[pos], true
}

// FindExactPosition is FindExact returning the internal position handle.
func (s *RecordStore) FindExactPosition(name string) (uint32, bool) {
	pos, ok := s.exactByName[strings.ToLower(strings.TrimSpace(name))]
	return pos, ok
}
