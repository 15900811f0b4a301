package transliteration

// Kind is the broad class of a single character.
type Kind int

const (
	KindNone Kind = iota
	KindHiragana
	KindKatakana
	KindKatakanaHalfWidth
	// KindLongMark is the prolonged sound mark, full or half width.
	KindLongMark
	KindJapanesePunctuation
	// KindJapaneseMark covers iteration and voicing marks (ゝ, ゞ, 々, ゛ ...).
	KindJapaneseMark
	KindRomanFullWidth
	// KindRomaji is an ASCII letter or digit, or a vowel with a length mark.
	KindRomaji
	KindPunctuationASCII
)

var kindNames = []string{
	"none", "hiragana", "katakana", "katakana-halfwidth", "long-mark",
	"japanese-punctuation", "japanese-mark", "roman-fullwidth", "romaji",
	"ascii-punctuation",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

type runeRange struct{ lo, hi rune }

func in(r rune, ranges ...runeRange) bool {
	for _, rg := range ranges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

var (
	hiraganaRanges = []runeRange{{0x3041, 0x3096}, {0x309F, 0x309F}, {0x1B001, 0x1B001}}
	katakanaRanges = []runeRange{{0x30A1, 0x30FA}, {0x30FF, 0x30FF}, {0x31F0, 0x31FF}}
	// Half-width katakana, skipping the half-width long mark at U+FF70.
	katakanaHalfRanges = []runeRange{{0xFF66, 0xFF6F}, {0xFF71, 0xFF9D}}
	romanFullRanges    = []runeRange{
		{'０', '９'}, {'Ａ', 'Ｚ'}, {'ａ', 'ｚ'},
		{'！', '／'}, {'：', '＠'}, {'［', '｀'}, {'｛', '～'},
	}
	japanesePunctRanges = []runeRange{{'｟', '･'}}
)

const (
	japanesePunctuation = "　、。〃〈〉《》「」『』【】〔〕〖〗〘〙〚〛〜〝〞〟〰〽゠・"
	japaneseMarks       = "々〆〱〲〳〴〵〻〼゛゜ゝゞヽヾ"
	asciiPunctuation    = " `~!@#$%^&*()-_=+[]{};:<>,./?'\"|\\"
)

func containsRune(set string, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}

// KindOf classifies r. Kanji and anything else unrecognized is KindNone.
func KindOf(r rune) Kind {
	switch {
	case r == 'ー' || r == 'ｰ':
		return KindLongMark
	case in(r, hiraganaRanges...):
		return KindHiragana
	case in(r, katakanaRanges...):
		return KindKatakana
	case in(r, katakanaHalfRanges...):
		return KindKatakanaHalfWidth
	case containsRune(japanesePunctuation, r) || in(r, japanesePunctRanges...):
		return KindJapanesePunctuation
	case containsRune(japaneseMarks, r):
		return KindJapaneseMark
	case in(r, romanFullRanges...):
		return KindRomanFullWidth
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return KindRomaji
	case lengthMarked[toLowerMarked(r)] != 0:
		return KindRomaji
	case containsRune(asciiPunctuation, r):
		return KindPunctuationASCII
	}
	return KindNone
}

// toLowerMarked lower-cases the upper-case length-marked vowels.
func toLowerMarked(r rune) rune {
	switch r {
	case 'Ā', 'Ī', 'Ū', 'Ē', 'Ō':
		// Latin Extended-A pairs upper and lower case on adjacent code points.
		return r + 1
	case 'Â', 'Î', 'Û', 'Ê', 'Ô':
		return r + 0x20
	}
	return r
}

func IsHiragana(r rune) bool {
	return KindOf(r) == KindHiragana
}

// IsKatakana reports full- and half-width katakana letters.
func IsKatakana(r rune) bool {
	k := KindOf(r)
	return k == KindKatakana || k == KindKatakanaHalfWidth
}

// IsKana reports hiragana, katakana and the long mark.
func IsKana(r rune) bool {
	switch KindOf(r) {
	case KindHiragana, KindKatakana, KindKatakanaHalfWidth, KindLongMark:
		return true
	}
	return false
}

func IsJapanesePunctuation(r rune) bool {
	return KindOf(r) == KindJapanesePunctuation
}

// All reports whether s is non-empty and every rune in it satisfies pred.
func All(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}
