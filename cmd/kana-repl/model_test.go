package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jusunglee/kanaconv/internal/db/sqlite"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() model {
	return newModel(transliteration.NewConverter(transliteration.Default()), nil)
}

func typeLine(t *testing.T, m model, line string) model {
	t.Helper()
	m.textInput.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model)
}

func TestSubmitRendersAllScripts(t *testing.T) {
	m := typeLine(t, newTestModel(), "shinbun")

	require.Len(t, m.entries, 1)
	assert.Equal(t, entry{input: "shinbun", hiragana: "しんぶん", katakana: "シンブン", romaji: "shimbun"}, m.entries[0])
	assert.Empty(t, m.textInput.Value())
	assert.Contains(t, m.View(), "シンブン")
}

func TestTabCyclesConvention(t *testing.T) {
	m := typeLine(t, newTestModel(), "しゃ")
	assert.Equal(t, "sha", m.entries[0].romaji)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	assert.Equal(t, "sya", m.entries[0].romaji, "existing entries are re-rendered")
	assert.Equal(t, "convention: kunrei", m.status)
}

func TestHistoryBrowsing(t *testing.T) {
	m := newTestModel()
	m = typeLine(t, m, "ka")
	m = typeLine(t, m, "ki")
	m = typeLine(t, m, "ki")
	assert.Equal(t, []string{"ka", "ki"}, m.history, "repeats are not stored twice")

	up := func(m model) model { next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp}); return next.(model) }
	down := func(m model) model { next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown}); return next.(model) }

	m = up(m)
	assert.Equal(t, "ki", m.textInput.Value())
	m = up(m)
	m = up(m)
	assert.Equal(t, "ka", m.textInput.Value(), "stops at the oldest entry")
	m = down(m)
	m = down(m)
	assert.Empty(t, m.textInput.Value())
}

func TestEntriesAreCapped(t *testing.T) {
	m := newTestModel()
	for range maxShown + 3 {
		m = typeLine(t, m, "a")
	}
	assert.Len(t, m.entries, maxShown)
}

func TestPersistentHistory(t *testing.T) {
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	m := newModel(transliteration.NewConverter(transliteration.Default()), repo)
	m.textInput.SetValue("kana")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, recordedMsg{}, msg)
	next, _ = next.Update(msg)
	assert.Contains(t, next.(model).status, "saved #")

	loaded := loadHistory(repo)()
	require.IsType(t, historyLoadedMsg{}, loaded)
	assert.Equal(t, []string{"kana"}, loaded.(historyLoadedMsg).inputs)
}
