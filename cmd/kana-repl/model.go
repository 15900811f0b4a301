package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/samber/lo"
)

const maxShown = 8

var conventions = []transliteration.Convention{
	transliteration.Hepburn,
	transliteration.Kunrei,
	transliteration.NihonShiki,
}

// entry is one converted line.
type entry struct {
	input    string
	hiragana string
	katakana string
	romaji   string
}

type model struct {
	textInput  textinput.Model
	conv       *transliteration.Converter
	convention int
	entries    []entry

	// history holds past inputs, oldest first; cursor == len(history)
	// means the prompt is not browsing.
	history []string
	cursor  int

	repo   db.Repository // optional
	status string
	err    error
}

type historyLoadedMsg struct{ inputs []string }
type recordedMsg struct{ id int64 }
type errMsg struct{ err error }

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Width(10)

	inputStyle = lipgloss.NewStyle().
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

func newModel(conv *transliteration.Converter, repo db.Repository) model {
	ti := textinput.New()
	ti.Placeholder = "kana or romaji"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	return model{textInput: ti, conv: conv, repo: repo}
}

func (m model) Init() tea.Cmd {
	if m.repo == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadHistory(m.repo))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			return m.browse(-1), nil
		case tea.KeyDown:
			return m.browse(1), nil
		case tea.KeyTab:
			m.convention = (m.convention + 1) % len(conventions)
			m.entries = lo.Map(m.entries, func(e entry, _ int) entry { return m.render(e.input) })
			m.status = "convention: " + conventions[m.convention].String()
			return m, nil
		}

	case historyLoadedMsg:
		m.history = append(msg.inputs, m.history...)
		m.cursor = len(m.history)
		m.status = fmt.Sprintf("loaded %d history entries", len(msg.inputs))
		return m, nil

	case recordedMsg:
		m.status = fmt.Sprintf("saved #%d", msg.id)
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.textInput.Value())
	m.textInput.SetValue("")
	if line == "" {
		return m, nil
	}

	e := m.render(line)
	m.entries = append(m.entries, e)
	if len(m.entries) > maxShown {
		m.entries = m.entries[len(m.entries)-maxShown:]
	}
	if len(m.history) == 0 || m.history[len(m.history)-1] != line {
		m.history = append(m.history, line)
	}
	m.cursor = len(m.history)
	m.err = nil

	if m.repo == nil {
		return m, nil
	}
	return m, record(m.repo, e, conventions[m.convention])
}

// browse moves through past inputs like a shell prompt.
func (m model) browse(delta int) model {
	if len(m.history) == 0 {
		return m
	}
	m.cursor = max(0, min(len(m.history), m.cursor+delta))
	if m.cursor == len(m.history) {
		m.textInput.SetValue("")
	} else {
		m.textInput.SetValue(m.history[m.cursor])
	}
	m.textInput.CursorEnd()
	return m
}

func (m model) render(line string) entry {
	hira := transliteration.ToHiragana(line)
	cfg := transliteration.DefaultConfig(transliteration.Hiragana, transliteration.Romaji)
	cfg.Convention = conventions[m.convention]
	romaji, err := m.conv.Convert(hira, cfg)
	if err != nil {
		romaji = err.Error()
	}
	return entry{
		input:    line,
		hiragana: hira,
		katakana: transliteration.ToKatakana(line),
		romaji:   romaji,
	}
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("kana"))
	s.WriteString("\n")

	for _, e := range m.entries {
		s.WriteString(inputStyle.Render("> " + e.input))
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("hiragana") + e.hiragana + "\n")
		s.WriteString(labelStyle.Render("katakana") + e.katakana + "\n")
		s.WriteString(labelStyle.Render("romaji") + e.romaji + "\n\n")
	}

	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	} else if m.status != "" {
		s.WriteString(subtleStyle.Render(m.status))
		s.WriteString("\n")
	}

	s.WriteString(subtleStyle.Render(fmt.Sprintf("enter=convert • ↑/↓=history • tab=%s • esc/ctrl+c=quit",
		conventions[m.convention])))

	return boxStyle.Render(s.String())
}

func loadHistory(repo db.Repository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		recent, err := repo.ListRecentConversions(ctx, 100)
		if err != nil {
			return errMsg{fmt.Errorf("loading history: %w", err)}
		}
		inputs := lo.Map(recent, func(c db.Conversion, _ int) string { return c.Input })
		slices.Reverse(inputs)
		return historyLoadedMsg{inputs: inputs}
	}
}

func record(repo db.Repository, e entry, c transliteration.Convention) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		conv, err := repo.RecordConversion(ctx, db.RecordConversionParams{
			Input:      e.input,
			Output:     e.romaji,
			FromScript: "auto",
			ToScript:   transliteration.Romaji.String(),
			Convention: c.String(),
		})
		if err != nil {
			return errMsg{fmt.Errorf("saving history: %w", err)}
		}
		return recordedMsg{id: conv.ID}
	}
}
