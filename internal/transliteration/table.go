package transliteration

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/samber/lo"
)

const (
	hiraganaStart = 0x3041
	// Last hiragana with a katakana counterpart at a fixed offset (ゖ).
	hiraganaOffsetEnd = 0x3096
	katakanaOffset    = 0x30A1 - 0x3041
)

// Unit is an atomic kana grapheme (a single mora, a digraph, the long
// vowel mark or a punctuation mark) together with its Romaji spellings.
// Units are created by NewTable and never change afterwards.
type Unit struct {
	hiragana  string
	katakana  string
	spellings [numConventions]string
	flags     unitFlag
}

// Kana returns the unit in the given kana script. It returns "" for Romaji.
func (u *Unit) Kana(s Script) string {
	switch s {
	case Hiragana:
		return u.hiragana
	case Katakana:
		return u.katakana
	}
	return ""
}

// Spelling returns the canonical Romaji spelling under convention c.
func (u *Unit) Spelling(c Convention) string {
	return u.spellings[c]
}

func (u *Unit) IsSmall() bool       { return u.flags&flagSmall != 0 }
func (u *Unit) IsSmallTsu() bool    { return u.flags&flagSmallTsu != 0 }
func (u *Unit) IsNasal() bool       { return u.flags&flagNasal != 0 }
func (u *Unit) IsLongMark() bool    { return u.flags&flagLongMark != 0 }
func (u *Unit) IsPunctuation() bool { return u.flags&flagPunctuation != 0 }

// isMora reports whether the unit is an ordinary syllable: not punctuation
// and not one of the context-dependent special moras.
func (u *Unit) isMora() bool {
	return u.flags&(flagSmallTsu|flagNasal|flagLongMark|flagPunctuation) == 0
}

// finalVowel returns the vowel letter the unit's Romaji ends with, or 0.
func (u *Unit) finalVowel() byte {
	if !u.isMora() {
		return 0
	}
	s := u.spellings[Hepburn]
	if v := s[len(s)-1]; isVowel(v) {
		return v
	}
	return 0
}

func (u *Unit) String() string {
	return u.hiragana
}

type candidate struct {
	key  []rune
	unit *Unit
}

// View is the scanning side of the table for one source script (and, for
// Romaji, one convention): every accepted key, longest first.
type View struct {
	name       string
	romaji     bool
	candidates []candidate
	byFirst    map[rune][]candidate
	maxLen     int
}

// Keys returns the accepted keys in match-precedence order.
func (v *View) Keys() []string {
	return lo.Map(v.candidates, func(c candidate, _ int) string { return string(c.key) })
}

// longest returns the longest candidate that prefixes rest.
func (v *View) longest(rest []rune) (candidate, bool) {
	for _, c := range v.byFirst[rest[0]] {
		if len(c.key) <= len(rest) && slices.Equal(c.key, rest[:len(c.key)]) {
			return c, true
		}
	}
	return candidate{}, false
}

// Table holds every Unit and the scanning views derived from them.
type Table struct {
	units    []*Unit
	romaji   [numConventions]*View
	kana     [2]*View
	nasal    *Unit
	smallTsu *Unit
	longMark *Unit
	vowels   map[byte]*Unit
}

// Default returns the process-wide table built from the static data. The
// data is compiled in, so a build failure panics.
var Default = sync.OnceValue(func() *Table {
	t, err := NewTable()
	if err != nil {
		panic(err)
	}
	return t
})

// NewTable builds and validates the symbol table.
func NewTable() (*Table, error) {
	t := &Table{vowels: make(map[byte]*Unit)}
	byKana := make(map[string]*Unit, len(entries))

	for _, e := range entries {
		u := &Unit{
			hiragana:  e.kana,
			katakana:  e.katakana,
			spellings: e.spell,
			flags:     e.flags,
		}
		if u.katakana == "" {
			u.katakana = toKatakana(e.kana)
		}
		for c, s := range u.spellings {
			if s == "" {
				return nil, &TableError{View: Convention(c).String(), Key: e.kana, Reason: "missing spelling"}
			}
		}
		if prev, ok := byKana[e.kana]; ok {
			return nil, &TableError{View: "kana", Key: e.kana, Reason: fmt.Sprintf("defined twice (%s)", prev.spellings[Hepburn])}
		}
		byKana[e.kana] = u
		t.units = append(t.units, u)

		switch {
		case u.IsNasal():
			t.nasal = u
		case u.IsSmallTsu():
			t.smallTsu = u
		case u.IsLongMark():
			t.longMark = u
		}
		if s := u.spellings[Hepburn]; len(s) == 1 && isVowel(s[0]) {
			t.vowels[s[0]] = u
		}
	}
	if t.nasal == nil || t.smallTsu == nil || t.longMark == nil || len(t.vowels) != 5 {
		return nil, &TableError{View: "kana", Reason: "special units missing"}
	}

	for c := Hepburn; c < numConventions; c++ {
		v, err := t.buildRomajiView(c, entries, byKana)
		if err != nil {
			return nil, err
		}
		t.romaji[c] = v
	}

	for _, s := range []Script{Hiragana, Katakana} {
		keys := make([]keyed, 0, len(t.units)+len(katakanaAliases))
		for _, u := range t.units {
			keys = append(keys, keyed{u.Kana(s), u})
		}
		if s == Katakana {
			for alias, target := range katakanaAliases {
				u, ok := byKana[target]
				if !ok {
					return nil, &TableError{View: s.String(), Key: alias, Reason: "alias of unknown unit " + target}
				}
				keys = append(keys, keyed{alias, u})
			}
		}
		v, err := newView(s.String(), false, keys)
		if err != nil {
			return nil, err
		}
		t.kana[s] = v
	}

	return t, nil
}

type keyed struct {
	key  string
	unit *Unit
}

// buildRomajiView accepts, in order: the convention's own spellings, the
// other conventions' spellings and the input-only aliases. A key may only
// ever name one unit.
func (t *Table) buildRomajiView(c Convention, entries []entry, byKana map[string]*Unit) (*View, error) {
	var keys []keyed
	add := func(key string, u *Unit) {
		keys = append(keys, keyed{key, u})
	}
	for _, e := range entries {
		u := byKana[e.kana]
		if u.flags&flagOneWay != 0 {
			continue
		}
		add(u.spellings[c], u)
	}
	for _, e := range entries {
		u := byKana[e.kana]
		if u.flags&flagOneWay != 0 {
			continue
		}
		for other, s := range u.spellings {
			if Convention(other) != c && s != u.spellings[c] {
				add(s, u)
			}
		}
		for _, a := range e.aliases {
			add(strings.ToLower(a), u)
		}
	}

	// The same unit reachable through two sources is fine; two units on one
	// key is not.
	seen := make(map[string]*Unit, len(keys))
	unique := keys[:0]
	for _, k := range keys {
		if prev, ok := seen[k.key]; ok {
			if prev != k.unit {
				return nil, &TableError{
					View:   "romaji/" + c.String(),
					Key:    k.key,
					Reason: fmt.Sprintf("spells both %s and %s", prev.hiragana, k.unit.hiragana),
				}
			}
			continue
		}
		seen[k.key] = k.unit
		unique = append(unique, k)
	}
	return newView("romaji/"+c.String(), true, unique)
}

func newView(name string, romaji bool, keys []keyed) (*View, error) {
	v := &View{name: name, romaji: romaji}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k.key == "" {
			return nil, &TableError{View: name, Key: k.unit.hiragana, Reason: "empty key"}
		}
		if !utf8.ValidString(k.key) {
			return nil, &TableError{View: name, Key: k.key, Reason: "invalid UTF-8"}
		}
		if seen[k.key] {
			return nil, &TableError{View: name, Key: k.key, Reason: "duplicate key"}
		}
		seen[k.key] = true
		v.candidates = append(v.candidates, candidate{key: []rune(k.key), unit: k.unit})
	}

	slices.SortStableFunc(v.candidates, func(a, b candidate) int {
		if n := cmp.Compare(len(b.key), len(a.key)); n != 0 {
			return n
		}
		return slices.Compare(a.key, b.key)
	})
	v.byFirst = lo.GroupBy(v.candidates, func(c candidate) rune { return c.key[0] })
	if len(v.candidates) > 0 {
		v.maxLen = len(v.candidates[0].key)
	}
	return v, nil
}

// view expects a validated script and convention.
func (t *Table) view(s Script, c Convention) *View {
	if s == Romaji {
		return t.romaji[c]
	}
	return t.kana[s]
}

// Romaji returns the scanning view for Romaji written under c. Spellings
// of the other conventions and the input aliases are accepted too.
func (t *Table) Romaji(c Convention) *View {
	if !c.valid() {
		return nil
	}
	return t.romaji[c]
}

// Kana returns the scanning view for Hiragana or Katakana, nil otherwise.
func (t *Table) Kana(s Script) *View {
	if s != Hiragana && s != Katakana {
		return nil
	}
	return t.kana[s]
}

// Units returns every unit in table order.
func (t *Table) Units() []*Unit {
	return slices.Clone(t.units)
}

// Lookup finds the unit written as kana in the given script.
func (t *Table) Lookup(s Script, kana string) (*Unit, bool) {
	if s == Romaji {
		return nil, false
	}
	key := []rune(kana)
	if len(key) == 0 {
		return nil, false
	}
	c, ok := t.kana[s].longest(key)
	if !ok || len(c.key) != len(key) {
		return nil, false
	}
	return c.unit, true
}

func toKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= hiraganaStart && r <= hiraganaOffsetEnd {
			return r + katakanaOffset
		}
		return r
	}, s)
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}
