package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/samber/lo"
)

type classifyResponse struct {
	Text       string         `json:"text"`
	Kinds      map[string]int `json:"kinds"`
	IsHiragana bool           `json:"is_hiragana"`
	IsKatakana bool           `json:"is_katakana"`
	IsKana     bool           `json:"is_kana"`
	Hiragana   string         `json:"hiragana"`
	Katakana   string         `json:"katakana"`
	Romaji     string         `json:"romaji,omitempty"`
}

// Classify reports what kinds of characters a text is made of, along with
// its default renderings in each script.
func Classify(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if utf8.RuneCountInString(text) > maxTextRunes {
		writeError(w, http.StatusRequestEntityTooLarge, "text is too long")
		return
	}

	kinds := lo.CountValuesBy([]rune(text), func(r rune) string {
		return transliteration.KindOf(r).String()
	})

	writeJSON(w, http.StatusOK, classifyResponse{
		Text:       text,
		Kinds:      kinds,
		IsHiragana: transliteration.All(text, transliteration.IsHiragana),
		IsKatakana: transliteration.All(text, transliteration.IsKatakana),
		IsKana:     transliteration.All(text, transliteration.IsKana),
		Hiragana:   transliteration.ToHiragana(text),
		Katakana:   transliteration.ToKatakana(text),
		Romaji:     transliteration.Transliterate(text),
	})
}
