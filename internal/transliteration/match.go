package transliteration

import (
	"iter"
	"unicode"
)

// TokenKind classifies one step of the matcher.
type TokenKind int

const (
	// TokenUnit is a recognized Unit.
	TokenUnit TokenKind = iota
	// TokenPassthrough is a single code point with no unit.
	TokenPassthrough
	// TokenElongation stands for a Romaji length diacritic (ā, â, ...)
	// split off the vowel it was written on.
	TokenElongation
)

func (k TokenKind) String() string {
	switch k {
	case TokenUnit:
		return "unit"
	case TokenPassthrough:
		return "passthrough"
	case TokenElongation:
		return "elongation"
	}
	return "unknown"
}

// Token is one matched span of the input. Start and End are rune offsets.
type Token struct {
	Kind  TokenKind
	Unit  *Unit
	Text  string
	Start int
	End   int

	// Set by the rule engine when the output depends on context.
	out      string
	resolved bool
}

func (t *Token) render(s string) {
	t.out = s
	t.resolved = true
}

// Output returns what the token writes in the target script.
func (t *Token) Output(to Script, c Convention) string {
	if t.resolved {
		return t.out
	}
	if t.Unit == nil {
		return t.Text
	}
	if to == Romaji {
		return t.Unit.Spelling(c)
	}
	return t.Unit.Kana(to)
}

// length-marked vowels accepted in Romaji input, mapped to their base vowel.
var lengthMarked = map[rune]rune{
	'ā': 'a', 'ī': 'i', 'ū': 'u', 'ē': 'e', 'ō': 'o',
	'â': 'a', 'î': 'i', 'û': 'u', 'ê': 'e', 'ô': 'o',
}

// Match scans input left to right, emitting the longest unit at each
// position or a single passthrough code point when nothing matches.
// Romaji views match case-insensitively and split length-marked vowels
// into the vowel plus a TokenElongation.
func (v *View) Match(input []rune) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		keys := input
		var long []bool
		if v.romaji {
			keys, long = foldRomaji(input)
		}

		for i := 0; i < len(keys); {
			c, ok := v.longest(keys[i:])
			if !ok {
				if !yield(Token{Kind: TokenPassthrough, Text: string(input[i]), Start: i, End: i + 1}) {
					return
				}
				i++
				continue
			}

			end := i + len(c.key)
			if !yield(Token{Kind: TokenUnit, Unit: c.unit, Text: string(input[i:end]), Start: i, End: end}) {
				return
			}
			if long != nil && long[end-1] {
				if !yield(Token{Kind: TokenElongation, Start: end - 1, End: end}) {
					return
				}
			}
			i = end
		}
	}
}

// foldRomaji lower-cases input rune by rune and strips length marks,
// recording where they were. Offsets stay aligned with input.
func foldRomaji(input []rune) ([]rune, []bool) {
	keys := make([]rune, len(input))
	long := make([]bool, len(input))
	for i, r := range input {
		r = unicode.ToLower(r)
		if base, ok := lengthMarked[r]; ok {
			long[i] = true
			r = base
		}
		keys[i] = r
	}
	return keys, long
}
