package transliteration

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Converter runs the scan, resolve and render pipeline against one table.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	table *Table
}

func NewConverter(t *Table) *Converter {
	return &Converter{table: t}
}

var defaultConverter = sync.OnceValue(func() *Converter {
	return NewConverter(Default())
})

// Tokens returns the resolved token stream for text. Most callers want
// Convert; this is exposed for tooling that shows how input was split.
func (c *Converter) Tokens(text string, cfg Config) ([]Token, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Normalize {
		text = normalize(text)
	}
	v := c.table.view(cfg.From, cfg.Convention)
	tokens := slices.Collect(v.Match([]rune(text)))
	return c.table.Resolve(tokens, cfg), nil
}

// Convert transliterates text according to cfg. Code points that belong to
// no unit are copied through unchanged, so the only errors are
// configuration errors.
func (c *Converter) Convert(text string, cfg Config) (string, error) {
	tokens, err := c.Tokens(text, cfg)
	if err != nil {
		return "", err
	}

	upper := cfg.To == Romaji && cfg.Case == CaseUpper
	var caser cases.Caser
	if upper {
		// Casers carry state, so each call gets its own.
		caser = cases.Upper(language.Und)
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := range tokens {
		out := tokens[i].Output(cfg.To, cfg.Convention)
		if upper && tokens[i].Kind != TokenPassthrough {
			out = caser.String(out)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// Convert transliterates text with the default table.
func Convert(text string, cfg Config) (string, error) {
	return defaultConverter().Convert(text, cfg)
}

// ToHiragana converts any Katakana and Romaji in text to Hiragana using
// the default options.
func ToHiragana(text string) string {
	return convertSteps(text, Katakana, Hiragana, Romaji, Hiragana)
}

// ToKatakana converts any Hiragana and Romaji in text to Katakana.
func ToKatakana(text string) string {
	return convertSteps(text, Hiragana, Katakana, Romaji, Katakana)
}

// ToRomaji converts any kana in text to Hepburn Romaji. Katakana goes
// through Hiragana first so that a long mark between the two scripts still
// sees the vowel before it.
func ToRomaji(text string) string {
	return convertSteps(text, Katakana, Hiragana, Hiragana, Romaji)
}

// convertSteps runs one default conversion per (from, to) pair.
func convertSteps(text string, pairs ...Script) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		if out, err := Convert(text, DefaultConfig(pairs[i], pairs[i+1])); err == nil {
			text = out
		}
	}
	return text
}

// Transliterate romanizes the kana in text. It returns "" when text holds
// no kana at all, so callers can tell "nothing to do" from a result.
func Transliterate(text string) string {
	switch detectScript(text) {
	case Hiragana, Katakana:
		return ToRomaji(text)
	default:
		return ""
	}
}

// detectScript reports the first kana script found in text, or Romaji.
func detectScript(text string) Script {
	for _, r := range text {
		switch {
		case IsHiragana(r):
			return Hiragana
		case IsKatakana(r):
			return Katakana
		}
	}
	return Romaji
}

// normalize folds half-width katakana and full-width ASCII to their
// canonical widths, then composes combining voicing marks.
func normalize(s string) string {
	out, _, err := transform.String(transform.Chain(width.Fold, norm.NFC), s)
	if err != nil {
		return s
	}
	return out
}
