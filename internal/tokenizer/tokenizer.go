package tokenizer

import (
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
// Drug names use hyphens, slashes and plus signs freely ("co-amoxiclav",
// "amoxicillin/clavulanate"); all of them act as word separators.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// MinTokenLength is the shortest word the token index will accept. Single
// characters are too ambiguous to index or query.
const MinTokenLength = 2

// Tokenize converts a string into a slice of lower-cased word tokens.
// Tokens shorter than MinTokenLength are dropped.
func Tokenize(text string) []string {
	split := nonAlphanumericRegex.Split(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(split))
	for _, s := range split {
		if len(s) >= MinTokenLength {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// PrefixNGrams returns the indexable prefixes of a token: every prefix of
// length MinTokenLength up to len(token)-1, capped at maxLen. The full token
// is not included; callers index it separately under its own key.
//
// A maxLen <= 0 means no cap.
func PrefixNGrams(token string, maxLen int) []string {
	last := len(token) - 1
	if maxLen > 0 && maxLen < last {
		last = maxLen
	}
	if last < MinTokenLength {
		return nil
	}

	ngrams := make([]string, 0, last-MinTokenLength+1)
	for i := MinTokenLength; i <= last; i++ {
		ngrams = append(ngrams, token[:i])
	}
	return ngrams
}
