package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple name", "Metformin", []string{"metformin"}},
		{"brand with strength", "Glucophage XR 500", []string{"glucophage", "xr", "500"}},
		{"hyphenated", "Co-Amoxiclav", []string{"co", "amoxiclav"}},
		{"slash combination", "Amoxicillin/Clavulanate", []string{"amoxicillin", "clavulanate"}},
		{"single chars dropped", "a b vitamin c", []string{"vitamin"}},
		{"empty", "", []string{}},
		{"punctuation only", "-- / ++", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrefixNGrams(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		maxLen int
		want   []string
	}{
		{"uncapped", "aspirin", 0, []string{"as", "asp", "aspi", "aspir", "aspiri"}},
		{"capped", "ciprofloxacin", 4, []string{"ci", "cip", "cipr"}},
		{"cap beyond length", "ibu", 10, []string{"ib"}},
		{"too short for prefixes", "ab", 0, nil},
		{"one char", "a", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrefixNGrams(tt.token, tt.maxLen)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PrefixNGrams(%q, %d) = %v, want %v", tt.token, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPrefixNGramsExcludeFullToken(t *testing.T) {
	for _, ngram := range PrefixNGrams("warfarin", 0) {
		if ngram == "warfarin" {
			t.Error("PrefixNGrams must not include the full token; it is indexed under its own key")
		}
	}
}
