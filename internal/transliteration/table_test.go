package transliteration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable()
	require.NoError(t, err)
	assert.NotEmpty(t, table.Units())
	assert.Same(t, Default(), Default(), "default table is built once")
}

func TestLookup(t *testing.T) {
	table := Default()

	u, ok := table.Lookup(Hiragana, "きゃ")
	require.True(t, ok)
	assert.Equal(t, "kya", u.Spelling(Hepburn))
	assert.Equal(t, "キャ", u.Kana(Katakana))

	u, ok = table.Lookup(Katakana, "ヷ")
	require.True(t, ok, "katakana-only glyph reads as an existing unit")
	assert.Equal(t, "ゔぁ", u.Kana(Hiragana))

	_, ok = table.Lookup(Hiragana, "きゃく")
	assert.False(t, ok, "lookup wants a single unit")
	_, ok = table.Lookup(Romaji, "ka")
	assert.False(t, ok)
}

func TestConventionSpellings(t *testing.T) {
	tests := []struct {
		kana    string
		hepburn string
		kunrei  string
		nihon   string
	}{
		{"し", "shi", "si", "si"},
		{"ち", "chi", "ti", "ti"},
		{"つ", "tsu", "tu", "tu"},
		{"ふ", "fu", "hu", "hu"},
		{"じ", "ji", "zi", "zi"},
		{"しゃ", "sha", "sya", "sya"},
		{"ぢ", "di", "di", "di"},
		{"を", "wo", "wo", "wo"},
		{"か", "ka", "ka", "ka"},
	}
	for _, tt := range tests {
		u, ok := Default().Lookup(Hiragana, tt.kana)
		require.True(t, ok, tt.kana)
		assert.Equal(t, tt.hepburn, u.Spelling(Hepburn), tt.kana)
		assert.Equal(t, tt.kunrei, u.Spelling(Kunrei), tt.kana)
		assert.Equal(t, tt.nihon, u.Spelling(NihonShiki), tt.kana)
	}
}

func TestSpellingsAreUnique(t *testing.T) {
	for c := Hepburn; c < numConventions; c++ {
		seen := map[string]string{}
		for _, u := range Default().Units() {
			s := u.Spelling(c)
			if prev, ok := seen[s]; ok {
				t.Errorf("%s: %q spells both %s and %s", c, s, prev, u)
			}
			seen[s] = u.hiragana
		}
	}
}

func TestViewOrder(t *testing.T) {
	views := []*View{
		Default().Romaji(Hepburn),
		Default().Romaji(Kunrei),
		Default().Kana(Hiragana),
		Default().Kana(Katakana),
	}
	for _, v := range views {
		require.NotNil(t, v)
		keys := v.Keys()
		require.NotEmpty(t, keys)
		for i := 1; i < len(keys); i++ {
			prev, cur := []rune(keys[i-1]), []rune(keys[i])
			require.GreaterOrEqual(t, len(prev), len(cur), "%s: %q before %q", v.name, keys[i-1], keys[i])
			if len(prev) == len(cur) {
				require.Less(t, keys[i-1], keys[i], "%s: equal-length keys sort lexicographically", v.name)
			}
		}
	}

	assert.Nil(t, Default().Romaji(Convention(9)))
	assert.Nil(t, Default().Kana(Romaji))
}

func TestNewViewRejectsBadKeys(t *testing.T) {
	a := &Unit{hiragana: "あ"}
	b := &Unit{hiragana: "い"}

	tests := []struct {
		name   string
		keys   []keyed
		reason string
	}{
		{"duplicate", []keyed{{"a", a}, {"a", b}}, "duplicate key"},
		{"empty", []keyed{{"", a}}, "empty key"},
		{"invalid utf8", []keyed{{"\xff", a}}, "invalid UTF-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newView("test", true, tt.keys)
			var te *TableError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.reason, te.Reason)
			assert.Contains(t, err.Error(), "symbol table test")
		})
	}
}

func TestRomajiViewRejectsSharedKey(t *testing.T) {
	data := []entry{
		same("あ", "a"),
		same("い", "i", "a"),
	}
	table := &Table{}
	byKana := map[string]*Unit{}
	for _, e := range data {
		byKana[e.kana] = &Unit{hiragana: e.kana, spellings: e.spell}
	}

	_, err := table.buildRomajiView(Hepburn, data, byKana)
	var te *TableError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "a", te.Key)
}

func TestKatakanaDerivation(t *testing.T) {
	assert.Equal(t, "カタカナ", toKatakana("かたかな"))
	assert.Equal(t, "ヴ", toKatakana("ゔ"))
	assert.Equal(t, "ヶ", toKatakana("ゖ"))
	assert.Equal(t, "ー。", toKatakana("ー。"), "non-letters are kept")
}
