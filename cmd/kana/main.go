// Command kana transliterates text between Hiragana, Katakana and Romaji.
// It converts its arguments, or standard input line by line when there are
// none.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kanaconv/internal/logger"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE(args []string, stdin io.Reader, stdout io.Writer) error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("kana")

	var (
		from       = fs.StringEnumLong("from", "Source script", "hiragana", "katakana", "romaji")
		to         = fs.StringEnumLong("to", "Target script", "romaji", "hiragana", "katakana")
		convention = fs.StringLong("convention", "hepburn", "Romanization: hepburn, kunrei or nihon-shiki")
		longVowel  = fs.StringLong("long-vowel", "mark", "How ー is romanized: mark, double or hyphen")
		apostrophe = fs.BoolLong("no-apostrophe", "Do not write n' before vowels and y")
		caseStyle  = fs.StringLong("case", "lower", "Romaji letter case: lower or upper")
		normalize  = fs.BoolLong("normalize", "Fold half-width kana and full-width Latin first")
		tokens     = fs.BoolLong("tokens", "Print the token stream instead of the conversion")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("KANA")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.Init()

	cfg, err := buildConfig(*from, *to, *convention, *longVowel, *caseStyle, !*apostrophe, *normalize)
	if err != nil {
		return err
	}
	log.Debug("converting", "from", cfg.From, "to", cfg.To, "convention", cfg.Convention)

	conv := transliteration.NewConverter(transliteration.Default())
	emit := func(text string) error {
		if *tokens {
			return printTokens(stdout, conv, text, cfg)
		}
		out, err := conv.Convert(text, cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, out)
		return err
	}

	if rest := fs.GetArgs(); len(rest) > 0 {
		return emit(strings.Join(rest, " "))
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := emit(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func buildConfig(from, to, convention, longVowel, caseStyle string, apostrophe, normalize bool) (transliteration.Config, error) {
	src, err := transliteration.ParseScript(from)
	if err != nil {
		return transliteration.Config{}, err
	}
	dst, err := transliteration.ParseScript(to)
	if err != nil {
		return transliteration.Config{}, err
	}
	if src == dst {
		return transliteration.Config{}, errors.New("--from and --to must differ")
	}

	cfg := transliteration.DefaultConfig(src, dst)
	if cfg.Convention, err = transliteration.ParseConvention(convention); err != nil {
		return cfg, err
	}
	if cfg.LongVowel, err = transliteration.ParseLongVowelStyle(longVowel); err != nil {
		return cfg, err
	}
	if cfg.Case, err = transliteration.ParseCaseStyle(caseStyle); err != nil {
		return cfg, err
	}
	cfg.Apostrophe = apostrophe
	cfg.Normalize = normalize
	return cfg, cfg.Validate()
}

func printTokens(w io.Writer, conv *transliteration.Converter, text string, cfg transliteration.Config) error {
	toks, err := conv.Tokens(text, cfg)
	if err != nil {
		return err
	}
	for _, t := range toks {
		fmt.Fprintf(w, "%d-%d\t%s\t%q\t%q\n", t.Start, t.End, t.Kind, t.Text, t.Output(cfg.To, cfg.Convention))
	}
	return nil
}
