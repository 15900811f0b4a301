// Command kana-repl is an interactive prompt that shows every line typed
// in Hiragana, Katakana and Romaji.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/jusunglee/kanaconv/internal/db/store"
	"github.com/jusunglee/kanaconv/internal/logger"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("kana-repl")
	historyDB := fs.StringLong("history-db", "", "SQLite file (or postgres:// URL) to keep history in")

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("KANA")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	// The terminal belongs to bubbletea, so logs go to stderr.
	slog.SetDefault(logger.New(os.Stderr))

	var repo db.Repository
	if *historyDB != "" {
		var err error
		repo, err = store.Open(context.Background(), *historyDB)
		if err != nil {
			return err
		}
		defer repo.Close()
	}

	conv := transliteration.NewConverter(transliteration.Default())
	p := tea.NewProgram(newModel(conv, repo))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running repl: %w", err)
	}
	return nil
}
