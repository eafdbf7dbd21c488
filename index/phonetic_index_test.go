package index

import (
	"testing"

	"github.com/medadhere/drugresolver/internal/phonetic"
	"github.com/medadhere/drugresolver/model"
)

func TestPhoneticIndexLookup(t *testing.T) {
	records := []model.Record{
		{RegistrationID: "REG-001", GenericName: "Metformin", BrandName: "Glucophage"},
		{RegistrationID: "REG-002", GenericName: "Metaphormin"}, // encodes like metformin
		{RegistrationID: "REG-003", GenericName: "Paracetamol", BrandName: "Panadol"},
	}
	idx := BuildPhoneticIndex(records)

	got := idx.Lookup(phonetic.Encode("metformin"))
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Lookup(metformin code) = %v, want [0 1]", got)
	}

	// Brand names get their own code when it differs from the generic's.
	if got := idx.Lookup(phonetic.Encode("glucophage")); len(got) != 1 || got[0] != 0 {
		t.Errorf("Lookup(glucophage code) = %v, want [0]", got)
	}
	if got := idx.Lookup(phonetic.Encode("panadol")); len(got) != 1 || got[0] != 2 {
		t.Errorf("Lookup(panadol code) = %v, want [2]", got)
	}

	if got := idx.Lookup("Z99999"); got != nil {
		t.Errorf("Lookup(unknown code) = %v, want nil", got)
	}
	if got := idx.Lookup(""); got != nil {
		t.Errorf("Lookup(empty code) = %v, want nil", got)
	}
}

func TestPhoneticIndexSkipsBlankNames(t *testing.T) {
	records := []model.Record{
		{RegistrationID: "REG-001", GenericName: "Ibuprofen", BrandName: ""},
	}
	idx := BuildPhoneticIndex(records)

	if idx.CodeCount() != 1 {
		t.Errorf("CodeCount() = %d, want 1", idx.CodeCount())
	}
}
