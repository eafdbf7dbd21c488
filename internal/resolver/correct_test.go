package resolver

import (
	"context"
	"testing"
)

func TestCorrectNameAlias(t *testing.T) {
	svc := newTestService(t)

	correction, err := svc.CorrectName(context.Background(), "metaflorin")
	if err != nil {
		t.Fatalf("CorrectName() error: %v", err)
	}
	if correction.Corrected != "metformin" || correction.Confidence != confidenceAlias {
		t.Errorf("CorrectName(metaflorin) = (%q, %d), want (metformin, %d)", correction.Corrected, correction.Confidence, confidenceAlias)
	}
	if correction.Original != "metaflorin" {
		t.Errorf("Original = %q, want the input echoed back", correction.Original)
	}
}

func TestCorrectNameExactMatch(t *testing.T) {
	svc := newTestService(t)

	// A name already in the dataset needs no correction; it comes back in
	// stored casing with full confidence.
	correction, err := svc.CorrectName(context.Background(), "glucophage")
	if err != nil {
		t.Fatalf("CorrectName() error: %v", err)
	}
	if correction.Corrected != "Glucophage" || correction.Confidence != confidenceExact {
		t.Errorf("CorrectName(glucophage) = (%q, %d), want (Glucophage, %d)", correction.Corrected, correction.Confidence, confidenceExact)
	}
}

func TestCorrectNameFuzzy(t *testing.T) {
	svc := newTestService(t)

	correction, err := svc.CorrectName(context.Background(), "netformin")
	if err != nil {
		t.Fatalf("CorrectName() error: %v", err)
	}
	if correction.Corrected != "Metformin" {
		t.Errorf("CorrectName(netformin) = %q, want Metformin", correction.Corrected)
	}
	if want := fuzzyBaseScore - fuzzyDistancePenalty; correction.Confidence != want {
		t.Errorf("Confidence = %d, want %d (top fuzzy score)", correction.Confidence, want)
	}
}

func TestCorrectNamePhonetic(t *testing.T) {
	svc := newTestService(t)

	correction, err := svc.CorrectName(context.Background(), "metaphormin")
	if err != nil {
		t.Fatalf("CorrectName() error: %v", err)
	}
	if correction.Corrected != "Metformin" || correction.Confidence != scorePhoneticTier {
		t.Errorf("CorrectName(metaphormin) = (%q, %d), want (Metformin, %d)", correction.Corrected, correction.Confidence, scorePhoneticTier)
	}
}

func TestCorrectNameNoMatch(t *testing.T) {
	svc := newTestService(t)

	correction, err := svc.CorrectName(context.Background(), "qqqqwwww")
	if err != nil {
		t.Fatalf("CorrectName() error: %v", err)
	}
	if correction.Corrected != "qqqqwwww" || correction.Confidence != 0 {
		t.Errorf("CorrectName(gibberish) = (%q, %d), want unchanged with confidence 0", correction.Corrected, correction.Confidence)
	}
}

func TestCorrectNameShortInput(t *testing.T) {
	svc := newTestService(t)

	for _, query := range []string{"", "m", " "} {
		correction, err := svc.CorrectName(context.Background(), query)
		if err != nil {
			t.Fatalf("CorrectName(%q) error: %v", query, err)
		}
		if correction.Corrected != query || correction.Confidence != 0 {
			t.Errorf("CorrectName(%q) = (%q, %d), want unchanged with confidence 0", query, correction.Corrected, correction.Confidence)
		}
	}
}
