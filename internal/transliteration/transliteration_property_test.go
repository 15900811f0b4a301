//go:build property
// +build property

package transliteration

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genKanaWord builds hiragana words from ordinary moras so that every
// generated word has exactly one reading.
func genKanaWord() gopter.Gen {
	var moras []string
	for _, u := range Default().Units() {
		if u.isMora() && !u.IsSmall() && u.flags&flagOneWay == 0 {
			moras = append(moras, u.Kana(Hiragana))
		}
	}
	return gen.SliceOfN(6, gen.OneConstOf(toAny(moras)...)).Map(func(parts []any) string {
		var b strings.Builder
		for _, p := range parts {
			b.WriteString(p.(string))
		}
		return b.String()
	})
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func TestTransliterationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: Hiragana -> Katakana -> Hiragana is the identity
	properties.Property("kana round trip", prop.ForAll(
		func(word string) bool {
			kata, err := Convert(word, DefaultConfig(Hiragana, Katakana))
			if err != nil {
				return false
			}
			back, err := Convert(kata, DefaultConfig(Katakana, Hiragana))
			return err == nil && back == word
		},
		genKanaWord(),
	))

	// Property: text with no kana and no Romaji letters comes back unchanged
	properties.Property("passthrough idempotence", prop.ForAll(
		func(text string) bool {
			for _, to := range []Script{Katakana, Romaji} {
				out, err := Convert(text, DefaultConfig(Hiragana, to))
				if err != nil || out != text {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`^[0-9#@$%&*+=<> 漢字中文]*$`),
	))

	// Property: conversion is deterministic
	properties.Property("deterministic", prop.ForAll(
		func(word string) bool {
			cfg := DefaultConfig(Hiragana, Romaji)
			a, _ := Convert(word, cfg)
			b, _ := Convert(word, cfg)
			return a == b
		},
		genKanaWord(),
	))

	// Property: the small tsu doubles the following consonant, or survives as a glyph
	properties.Property("small tsu never vanishes", prop.ForAll(
		func(word string) bool {
			out, err := Convert("っ"+word, DefaultConfig(Hiragana, Romaji))
			if err != nil || out == "" {
				return false
			}
			return strings.HasPrefix(out, "っ") || out[0] == out[1] || strings.HasPrefix(out, "tch")
		},
		genKanaWord().SuchThat(func(w string) bool { return w != "" }),
	))

	properties.TestingRun(t)
}
