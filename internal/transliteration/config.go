package transliteration

import (
	"strings"
)

// Script identifies one of the three writing systems the converter understands.
type Script int

const (
	Hiragana Script = iota
	Katakana
	Romaji
)

var scriptNames = []string{"hiragana", "katakana", "romaji"}

func (s Script) String() string {
	if s < 0 || int(s) >= len(scriptNames) {
		return "unknown"
	}
	return scriptNames[s]
}

func (s Script) valid() bool {
	return s >= Hiragana && s <= Romaji
}

// ParseScript accepts the lower-case script name, or a short alias
// ("hira", "kata", "roma").
func ParseScript(name string) (Script, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hiragana", "hira":
		return Hiragana, nil
	case "katakana", "kata":
		return Katakana, nil
	case "romaji", "roma", "latin":
		return Romaji, nil
	}
	return 0, &ConfigError{Field: "script", Value: name, Err: ErrUnsupportedScript}
}

// Convention selects which romanization system Romaji is read and written in.
type Convention int

const (
	Hepburn Convention = iota
	Kunrei
	NihonShiki

	numConventions
)

var conventionNames = []string{"hepburn", "kunrei", "nihon-shiki"}

func (c Convention) String() string {
	if c < 0 || c >= numConventions {
		return "unknown"
	}
	return conventionNames[c]
}

func (c Convention) valid() bool {
	return c >= Hepburn && c < numConventions
}

// labialNasal reports whether the moraic nasal is written "m" before b, p and m.
func (c Convention) labialNasal() bool {
	return c == Hepburn
}

// tchGemination reports whether a geminated "ch" is written "tch".
func (c Convention) tchGemination() bool {
	return c == Hepburn
}

// ParseConvention accepts "hepburn", "kunrei" (or "kunrei-shiki") and
// "nihon-shiki" (or "nihonshiki", "nippon-shiki").
func ParseConvention(name string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hepburn":
		return Hepburn, nil
	case "kunrei", "kunrei-shiki", "kunreishiki":
		return Kunrei, nil
	case "nihon-shiki", "nihonshiki", "nippon-shiki", "nipponshiki", "nihon":
		return NihonShiki, nil
	}
	return 0, &ConfigError{Field: "convention", Value: name, Err: ErrUnsupportedConvention}
}

// LongVowelStyle controls how the prolonged sound mark "ー" is written in Romaji.
type LongVowelStyle int

const (
	// LongVowelMark writes a length diacritic on the vowel: a macron for
	// Hepburn, a circumflex for Kunrei and Nihon-shiki.
	LongVowelMark LongVowelStyle = iota
	// LongVowelDouble repeats the vowel letter.
	LongVowelDouble
	// LongVowelHyphen keeps the mark as "-".
	LongVowelHyphen
)

var longVowelNames = []string{"mark", "double", "hyphen"}

func (s LongVowelStyle) String() string {
	if s < 0 || int(s) >= len(longVowelNames) {
		return "unknown"
	}
	return longVowelNames[s]
}

func ParseLongVowelStyle(name string) (LongVowelStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mark", "macron", "circumflex", "diacritic":
		return LongVowelMark, nil
	case "double", "repeat":
		return LongVowelDouble, nil
	case "hyphen", "dash":
		return LongVowelHyphen, nil
	}
	return 0, &ConfigError{Field: "long vowel style", Value: name, Err: ErrUnsupportedOption}
}

// CaseStyle controls the letter case of Romaji produced from kana.
type CaseStyle int

const (
	CaseLower CaseStyle = iota
	CaseUpper
)

var caseNames = []string{"lower", "upper"}

func (s CaseStyle) String() string {
	if s < 0 || int(s) >= len(caseNames) {
		return "unknown"
	}
	return caseNames[s]
}

func ParseCaseStyle(name string) (CaseStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lower", "lowercase":
		return CaseLower, nil
	case "upper", "uppercase":
		return CaseUpper, nil
	}
	return 0, &ConfigError{Field: "case", Value: name, Err: ErrUnsupportedOption}
}

// Config describes a single conversion. It is passed by value and never
// modified by the converter.
type Config struct {
	From       Script
	To         Script
	Convention Convention
	LongVowel  LongVowelStyle
	// Apostrophe writes "n'" when the moraic nasal precedes a vowel or y,
	// so that the Romaji reads back to the same kana.
	Apostrophe bool
	Case       CaseStyle
	// Normalize folds width variants (half-width katakana, full-width
	// Latin) and composes combining marks before scanning.
	Normalize bool
}

// DefaultConfig returns the Hepburn configuration used by the convenience
// helpers: length marks, apostrophes on, lower case.
func DefaultConfig(from, to Script) Config {
	return Config{
		From:       from,
		To:         to,
		Convention: Hepburn,
		LongVowel:  LongVowelMark,
		Apostrophe: true,
		Case:       CaseLower,
	}
}

// Validate reports the first unsupported setting in c.
func (c Config) Validate() error {
	if !c.From.valid() {
		return &ConfigError{Field: "source script", Value: c.From.String(), Err: ErrUnsupportedScript}
	}
	if !c.To.valid() {
		return &ConfigError{Field: "target script", Value: c.To.String(), Err: ErrUnsupportedScript}
	}
	if c.From == c.To {
		return &ConfigError{Field: "direction", Value: c.From.String() + "->" + c.To.String(), Err: ErrUnsupportedDirection}
	}
	if !c.Convention.valid() {
		return &ConfigError{Field: "convention", Value: c.Convention.String(), Err: ErrUnsupportedConvention}
	}
	if c.LongVowel < LongVowelMark || c.LongVowel > LongVowelHyphen {
		return &ConfigError{Field: "long vowel style", Value: c.LongVowel.String(), Err: ErrUnsupportedOption}
	}
	if c.Case < CaseLower || c.Case > CaseUpper {
		return &ConfigError{Field: "case", Value: c.Case.String(), Err: ErrUnsupportedOption}
	}
	return nil
}
