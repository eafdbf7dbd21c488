// Package phonetic implements the fixed-length sound code used by the
// phonetic index.
//
// The encoding is Soundex-style but tuned for voice-transcribed drug names:
// transcription tends to preserve the opening sound and the rough consonant
// shape of a word even when the exact letters are wrong ("metaflorin" vs
// "metformin"). The code keeps the first letter, maps the remaining
// consonants to six phonetic classes, and pads or truncates to a fixed
// length so codes are directly comparable map keys.
package phonetic

import "strings"

// CodeLength is the fixed length of every code produced by Encode.
const CodeLength = 6

// classOf maps a lower-case consonant to its phonetic class digit.
// Vowels and h/w/y are absent: they are skipped during encoding and reset
// the duplicate-collapse tracker.
var classOf = map[byte]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// Encode returns the CodeLength-character sound code for name, or "" when
// name contains no letter to anchor the code.
//
// Rules, in order:
//   - the first letter of the name becomes the uppercased head of the code;
//   - each following consonant appends its class digit unless that digit
//     equals the immediately preceding appended digit;
//   - vowels and h/w/y append nothing and reset the previous-digit tracker,
//     so the same class reappearing after a vowel is kept;
//   - the result is right-padded with '0' or truncated to CodeLength.
func Encode(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// Find the first letter; leading digits and punctuation carry no sound.
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	var code strings.Builder
	code.Grow(CodeLength)
	code.WriteByte(s[start] - 'a' + 'A')

	var prev byte
	if d, ok := classOf[s[start]]; ok {
		// The head letter participates in duplicate collapse: "tt" must
		// not emit a digit for the second t.
		prev = d
	}

	for i := start + 1; i < len(s) && code.Len() < CodeLength; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			continue
		}
		d, consonant := classOf[c]
		if !consonant {
			// Vowel or h/w/y: contributes no digit and breaks adjacency.
			prev = 0
			continue
		}
		if d == prev {
			continue
		}
		code.WriteByte(d)
		prev = d
	}

	for code.Len() < CodeLength {
		code.WriteByte('0')
	}
	return code.String()
}
