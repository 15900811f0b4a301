package transliteration

import (
	"strings"
	"unicode"
)

var (
	macrons      = map[byte]string{'a': "ā", 'i': "ī", 'u': "ū", 'e': "ē", 'o': "ō"}
	circumflexes = map[byte]string{'a': "â", 'i': "î", 'u': "û", 'e': "ê", 'o': "ô"}
)

// Resolve applies the orthographic rules for cfg's direction to tokens in
// place and returns them. It never fails: tokens no rule covers keep their
// plain rendering.
func (t *Table) Resolve(tokens []Token, cfg Config) []Token {
	switch {
	case cfg.To == Romaji:
		t.resolveToRomaji(tokens, cfg)
	case cfg.From == Romaji:
		t.resolveFromRomaji(tokens, cfg)
	}
	return tokens
}

func (t *Table) resolveToRomaji(tokens []Token, cfg Config) {
	conv := cfg.Convention
	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind != TokenUnit {
			continue
		}
		next := unitAt(tokens, i+1)
		switch {
		case tok.Unit.IsSmallTsu():
			if next != nil && geminates(next, conv) {
				tok.render(geminate(next.Spelling(conv), conv))
			} else {
				// Nothing to double: keep the glyph rather than lose it.
				tok.render(tok.Text)
			}
		case tok.Unit.IsNasal():
			tok.render(nasal(next, conv, cfg.Apostrophe))
		case tok.Unit.IsLongMark():
			elongate(tokens, i, cfg)
		}
	}
}

func (t *Table) resolveFromRomaji(tokens []Token, cfg Config) {
	// carry is the final vowel of the last mora written, used to fold
	// repeated vowels into the katakana long mark.
	var carry byte
	for i := range tokens {
		tok := &tokens[i]
		switch tok.Kind {
		case TokenPassthrough:
			carry = 0
			r := unicode.ToLower([]rune(tok.Text)[0])
			next := textAt(tokens, i+1)
			switch {
			case r == 'm' && next != "" && strings.IndexByte("bpm", next[0]) >= 0:
				tok.Kind, tok.Unit = TokenUnit, t.nasal
			case r != 'n' && isConsonant(r) && next != "" && rune(next[0]) == r:
				tok.Kind, tok.Unit = TokenUnit, t.smallTsu
			case r == 't' && strings.HasPrefix(next, "ch"):
				tok.Kind, tok.Unit = TokenUnit, t.smallTsu
			case r == '\'' && unitAt(tokens, i-1) == t.nasal:
				tok.render("")
			}

		case TokenElongation:
			switch {
			case carry == 0:
				tok.render("")
			case cfg.To == Katakana:
				tok.Unit = t.longMark
			default:
				tok.Unit = t.vowels[carry]
			}

		case TokenUnit:
			v := tok.Unit.finalVowel()
			if cfg.To == Katakana && carry != 0 && v == carry && t.vowels[v] == tok.Unit {
				tok.Unit = t.longMark
				continue
			}
			carry = v
		}
	}
}

// geminates reports whether a small tsu before u doubles u's first letter.
func geminates(u *Unit, c Convention) bool {
	if !u.isMora() || u.IsSmall() {
		return false
	}
	first := rune(u.Spelling(c)[0])
	return first != 'n' && isConsonant(first)
}

func geminate(spelling string, c Convention) string {
	if c.tchGemination() && strings.HasPrefix(spelling, "ch") {
		return "t"
	}
	return spelling[:1]
}

func nasal(next *Unit, c Convention, apostrophe bool) string {
	if next == nil || !next.isMora() {
		return "n"
	}
	first := next.Spelling(c)[0]
	switch {
	case c.labialNasal() && (first == 'b' || first == 'p' || first == 'm'):
		return "m"
	case apostrophe && (isVowel(first) || first == 'y'):
		return "n'"
	}
	return "n"
}

// elongate renders the long mark at tokens[i] against the token before it.
func elongate(tokens []Token, i int, cfg Config) {
	if cfg.LongVowel == LongVowelHyphen || i == 0 {
		return
	}
	prev := &tokens[i-1]
	if prev.Kind != TokenUnit {
		return
	}
	out := prev.Output(Romaji, cfg.Convention)
	if out == "" || !isVowel(out[len(out)-1]) {
		return
	}
	v := out[len(out)-1]
	switch cfg.LongVowel {
	case LongVowelDouble:
		tokens[i].render(string(v))
	case LongVowelMark:
		marks := circumflexes
		if cfg.Convention == Hepburn {
			marks = macrons
		}
		prev.render(out[:len(out)-1] + marks[v])
		tokens[i].render("")
	}
}

func unitAt(tokens []Token, i int) *Unit {
	if i < 0 || i >= len(tokens) || tokens[i].Kind != TokenUnit {
		return nil
	}
	return tokens[i].Unit
}

// textAt returns the lower-cased source text of a matched unit, or "".
func textAt(tokens []Token, i int) string {
	if unitAt(tokens, i) == nil {
		return ""
	}
	return strings.ToLower(tokens[i].Text)
}

func isConsonant(r rune) bool {
	return r >= 'a' && r <= 'z' && !isVowel(byte(r))
}
