package transliteration

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConvert(t *testing.T, text string, cfg Config) string {
	t.Helper()
	out, err := Convert(text, cfg)
	require.NoError(t, err)
	return out
}

func TestKanaToRomaji(t *testing.T) {
	hepburn := DefaultConfig(Hiragana, Romaji)
	kunrei := hepburn
	kunrei.Convention = Kunrei
	nihon := hepburn
	nihon.Convention = NihonShiki
	noApostrophe := hepburn
	noApostrophe.Apostrophe = false

	tests := []struct {
		name  string
		input string
		cfg   Config
		want  string
	}{
		{"plain", "ひらがな", hepburn, "hiragana"},
		{"digraph", "きょうと", hepburn, "kyouto"},
		{"gemination", "けっこう", hepburn, "kekkou"},
		{"gemination shi", "ざっし", hepburn, "zasshi"},
		{"gemination shi kunrei", "ざっし", kunrei, "zassi"},
		{"gemination ch hepburn", "まっちゃ", hepburn, "matcha"},
		{"gemination ch kunrei", "まっちゃ", kunrei, "mattya"},
		{"gemination p", "にっぽん", hepburn, "nippon"},
		{"trailing small tsu", "あっ", hepburn, "aっ"},
		{"small tsu before vowel", "っあ", hepburn, "っa"},
		{"small tsu before nasal", "っん", hepburn, "っn"},
		{"nasal before vowel", "きんえん", hepburn, "kin'en"},
		{"nasal before y", "こんや", hepburn, "kon'ya"},
		{"nasal apostrophe off", "こんや", noApostrophe, "konya"},
		{"nasal before n", "こんにちは", hepburn, "konnichiha"},
		{"nasal before b", "しんぶん", hepburn, "shimbun"},
		{"nasal before p", "さんぽ", hepburn, "sampo"},
		{"nasal before m", "さんま", hepburn, "samma"},
		{"nasal before b kunrei", "しんぶん", kunrei, "sinbun"},
		{"nasal before b nihon-shiki", "しんぶん", nihon, "sinbun"},
		{"convention shi", "し", hepburn, "shi"},
		{"convention si", "し", kunrei, "si"},
		{"convention tya", "ちゃ", nihon, "tya"},
		{"convention di", "ぢ", hepburn, "di"},
		{"small kana alone", "ぁ", hepburn, "xa"},
		{"vu", "ゔぁ", hepburn, "va"},
		{"punctuation", "はい。「あ」", hepburn, "hai.‘a’"},
		{"ideographic space", "あ　い", hepburn, "a i"},
		{"passthrough", "abc漢字123", hepburn, "abc漢字123"},
		{"empty", "", hepburn, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustConvert(t, tt.input, tt.cfg))
		})
	}
}

func TestLongVowelMark(t *testing.T) {
	cfg := DefaultConfig(Katakana, Romaji)

	tests := []struct {
		convention Convention
		style      LongVowelStyle
		want       string
	}{
		{Hepburn, LongVowelMark, "rāmen kōhī"},
		{Kunrei, LongVowelMark, "râmen kôhî"},
		{NihonShiki, LongVowelMark, "râmen kôhî"},
		{Hepburn, LongVowelDouble, "raamen koohii"},
		{Hepburn, LongVowelHyphen, "ra-men ko-hi-"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.convention, tt.style), func(t *testing.T) {
			cfg.Convention = tt.convention
			cfg.LongVowel = tt.style
			assert.Equal(t, tt.want, mustConvert(t, "ラーメン コーヒー", cfg))
		})
	}

	assert.Equal(t, "-", mustConvert(t, "ー", cfg), "mark with nothing before it")
	assert.Equal(t, "n-", mustConvert(t, "ンー", cfg), "mark after the nasal")
}

func TestRomajiToKana(t *testing.T) {
	hira := DefaultConfig(Romaji, Hiragana)
	kata := DefaultConfig(Romaji, Katakana)
	kunrei := hira
	kunrei.Convention = Kunrei

	tests := []struct {
		name  string
		input string
		cfg   Config
		want  string
	}{
		{"plain", "hiragana", hira, "ひらがな"},
		{"upper case input", "KONNICHIHA", hira, "こんにちは"},
		{"gemination", "kekkou", hira, "けっこう"},
		{"gemination tch", "matcha", hira, "まっちゃ"},
		{"gemination cch", "maccha", hira, "まっちゃ"},
		{"gemination ss", "zasshi", hira, "ざっし"},
		{"nasal n before b", "shinbun", hira, "しんぶん"},
		{"nasal m before b", "shimbun", hira, "しんぶん"},
		{"nasal m before m", "samma", hira, "さんま"},
		{"apostrophe", "kin'en", hira, "きんえん"},
		{"apostrophe before y", "kon'ya", hira, "こんや"},
		{"no apostrophe", "konya", hira, "こにゃ"},
		{"n then vowel", "n'a", hira, "んあ"},
		{"kunrei spellings", "sinbun", kunrei, "しんぶん"},
		{"hepburn spellings under kunrei", "shinbun", kunrei, "しんぶん"},
		{"alias", "la", hira, "ら"},
		{"small tsu alias", "xtsu", hira, "っ"},
		{"wo", "wo", hira, "を"},
		{"punctuation", "hai.", hira, "はい。"},
		{"macron hiragana", "tōkyō", hira, "とおきょお"},
		{"macron katakana", "tōkyō", kata, "トーキョー"},
		{"circumflex katakana", "TÔKYÔ", kata, "トーキョー"},
		{"double vowel katakana", "koohii", kata, "コーヒー"},
		{"double vowel hiragana", "okaasan", hira, "おかあさん"},
		{"different vowel katakana", "kou", kata, "コウ"},
		{"hyphen katakana", "ra-men", kata, "ラーメン"},
		{"passthrough", "x y", hira, "x y"},
		{"kana passthrough", "かka", hira, "かか"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustConvert(t, tt.input, tt.cfg))
		})
	}
}

func TestKanaToKana(t *testing.T) {
	toKata := DefaultConfig(Hiragana, Katakana)
	toHira := DefaultConfig(Katakana, Hiragana)

	assert.Equal(t, "ヒラガナ", mustConvert(t, "ひらがな", toKata))
	assert.Equal(t, "ヴァ・ヴ", mustConvert(t, "ゔぁ・ゔ", toKata))
	assert.Equal(t, "かたかな", mustConvert(t, "カタカナ", toHira))
	assert.Equal(t, "らーめん", mustConvert(t, "ラーメン", toHira))
	assert.Equal(t, "ゔぁ", mustConvert(t, "ヷ", toHira))
	assert.Equal(t, "漢字とabc", mustConvert(t, "漢字とabc", toHira))
}

func TestUpperCase(t *testing.T) {
	cfg := DefaultConfig(Katakana, Romaji)
	cfg.Case = CaseUpper

	assert.Equal(t, "RĀMEN", mustConvert(t, "ラーメン", cfg))
	assert.Equal(t, "KIN'EN", mustConvert(t, "キンエン", cfg))

	cfg.LongVowel = LongVowelDouble
	assert.Equal(t, "RAAMEN", mustConvert(t, "ラーメン", cfg), "the doubled vowel follows the case")
	assert.Equal(t, "ッ漢", mustConvert(t, "ッ漢", cfg), "glyphs are left alone")
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig(Katakana, Hiragana)
	assert.Equal(t, "ｶﾀｶﾅ", mustConvert(t, "ｶﾀｶﾅ", cfg), "half-width is passthrough by default")

	cfg.Normalize = true
	assert.Equal(t, "かたかな", mustConvert(t, "ｶﾀｶﾅ", cfg))

	romaji := DefaultConfig(Romaji, Katakana)
	romaji.Normalize = true
	assert.Equal(t, "カ", mustConvert(t, "ｋａ", romaji))
	assert.Equal(t, "トーキョー", mustConvert(t, "to\u0304kyo\u0304", romaji), "combining macron")
}

func TestRoundTrips(t *testing.T) {
	for _, u := range Default().Units() {
		if u.flags&flagOneWay != 0 {
			continue
		}
		hira := u.Kana(Hiragana)

		kata := mustConvert(t, hira, DefaultConfig(Hiragana, Katakana))
		assert.Equal(t, hira, mustConvert(t, kata, DefaultConfig(Katakana, Hiragana)))

		for c := Hepburn; c < numConventions; c++ {
			cfg := DefaultConfig(Hiragana, Romaji)
			cfg.Convention = c
			romaji := mustConvert(t, hira, cfg)
			if !u.IsSmallTsu() {
				assert.Equal(t, u.Spelling(c), romaji, "%s under %s", hira, c)
			}

			back := DefaultConfig(Romaji, Hiragana)
			back.Convention = c
			assert.Equal(t, hira, mustConvert(t, u.Spelling(c), back), "%s under %s", u.Spelling(c), c)
		}
	}
}

func TestWordRoundTrips(t *testing.T) {
	words := []string{"けっこう", "きんえん", "こんや", "しんぶん", "まっちゃ", "ざっし", "がっこう", "ふじさん"}
	for c := Hepburn; c < numConventions; c++ {
		for _, w := range words {
			out := DefaultConfig(Hiragana, Romaji)
			out.Convention = c
			back := DefaultConfig(Romaji, Hiragana)
			back.Convention = c
			assert.Equal(t, w, mustConvert(t, mustConvert(t, w, out), back), "%s under %s", w, c)
		}
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
		want  error
	}{
		{"same script", Config{From: Hiragana, To: Hiragana}, "direction", ErrUnsupportedDirection},
		{"bad source", Config{From: Script(7), To: Romaji}, "source script", ErrUnsupportedScript},
		{"bad target", Config{From: Romaji, To: Script(-1)}, "target script", ErrUnsupportedScript},
		{"bad convention", Config{From: Romaji, To: Hiragana, Convention: Convention(9)}, "convention", ErrUnsupportedConvention},
		{"bad long vowel", Config{From: Katakana, To: Romaji, LongVowel: LongVowelStyle(5)}, "long vowel style", ErrUnsupportedOption},
		{"bad case", Config{From: Katakana, To: Romaji, Case: CaseStyle(3)}, "case", ErrUnsupportedOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert("かな", tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestParseOptions(t *testing.T) {
	s, err := ParseScript(" Kata ")
	require.NoError(t, err)
	assert.Equal(t, Katakana, s)

	c, err := ParseConvention("nippon-shiki")
	require.NoError(t, err)
	assert.Equal(t, NihonShiki, c)

	lv, err := ParseLongVowelStyle("macron")
	require.NoError(t, err)
	assert.Equal(t, LongVowelMark, lv)

	cs, err := ParseCaseStyle("UPPER")
	require.NoError(t, err)
	assert.Equal(t, CaseUpper, cs)

	_, err = ParseScript("cyrillic")
	assert.ErrorIs(t, err, ErrUnsupportedScript)
	_, err = ParseConvention("wade-giles")
	assert.ErrorIs(t, err, ErrUnsupportedConvention)
	_, err = ParseLongVowelStyle("tilde")
	assert.ErrorIs(t, err, ErrUnsupportedOption)
	_, err = ParseCaseStyle("title")
	assert.ErrorIs(t, err, ErrUnsupportedOption)

	assert.Equal(t, "nihon-shiki", NihonShiki.String())
	assert.Equal(t, "unknown", Script(9).String())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "かたかなとすし", ToHiragana("カタカナとsushi"))
	assert.Equal(t, "ヒラガナトスシ", ToKatakana("ひらがなとsushi"))
	assert.Equal(t, "rāmen to sushi", ToRomaji("ラーメン to すし"))
	assert.Equal(t, "hiraganatokatakana", ToRomaji("ひらがなとカタカナ"))

	assert.Equal(t, "sakura", Transliterate("さくら"))
	assert.Equal(t, "", Transliterate("Faker"))
	assert.Equal(t, "", Transliterate("漢字"))
}

func TestTokens(t *testing.T) {
	c := NewConverter(Default())
	tokens, err := c.Tokens("しんぶん", DefaultConfig(Hiragana, Romaji))
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "m", tokens[1].Output(Romaji, Hepburn))

	_, err = c.Tokens("x", Config{From: Romaji, To: Romaji})
	assert.ErrorIs(t, err, ErrUnsupportedDirection)
}

func TestConcurrentConvert(t *testing.T) {
	c := NewConverter(Default())
	cfg := DefaultConfig(Hiragana, Romaji)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				out, err := c.Convert("けっこうです、しんぶん。", cfg)
				assert.NoError(t, err)
				assert.Equal(t, "kekkoudesu,shimbun.", out)
			}
		}()
	}
	wg.Wait()
}
