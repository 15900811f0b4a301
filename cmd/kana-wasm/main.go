//go:build js && wasm

// Command kana-wasm exposes the converter to JavaScript. Build with
// GOOS=js GOARCH=wasm and load next to wasm_exec.js.
package main

import (
	"syscall/js"

	"github.com/jusunglee/kanaconv/internal/transliteration"
)

func main() {
	js.Global().Set("kanaConvert", js.FuncOf(convert))
	js.Global().Set("kanaToHiragana", stringFunc(transliteration.ToHiragana))
	js.Global().Set("kanaToKatakana", stringFunc(transliteration.ToKatakana))
	js.Global().Set("kanaToRomaji", stringFunc(transliteration.ToRomaji))
	js.Global().Set("kanaIsKana", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return false
		}
		return transliteration.All(args[0].String(), transliteration.IsKana)
	}))

	select {}
}

func stringFunc(fn func(string) string) js.Func {
	return js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return ""
		}
		return fn(args[0].String())
	})
}

// convert(text, {from, to, convention, longVowel, apostrophe, case, normalize})
// returns {output} or {error}.
func convert(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return map[string]any{"error": "kanaConvert(text, options) needs two arguments"}
	}
	cfg, err := config(args[1])
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	out, err := transliteration.Convert(args[0].String(), cfg)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"output": out}
}

func config(opts js.Value) (transliteration.Config, error) {
	from, err := transliteration.ParseScript(opts.Get("from").String())
	if err != nil {
		return transliteration.Config{}, err
	}
	to, err := transliteration.ParseScript(opts.Get("to").String())
	if err != nil {
		return transliteration.Config{}, err
	}
	cfg := transliteration.DefaultConfig(from, to)

	if v := opts.Get("convention"); v.Type() == js.TypeString {
		if cfg.Convention, err = transliteration.ParseConvention(v.String()); err != nil {
			return cfg, err
		}
	}
	if v := opts.Get("longVowel"); v.Type() == js.TypeString {
		if cfg.LongVowel, err = transliteration.ParseLongVowelStyle(v.String()); err != nil {
			return cfg, err
		}
	}
	if v := opts.Get("case"); v.Type() == js.TypeString {
		if cfg.Case, err = transliteration.ParseCaseStyle(v.String()); err != nil {
			return cfg, err
		}
	}
	if v := opts.Get("apostrophe"); v.Type() == js.TypeBoolean {
		cfg.Apostrophe = v.Bool()
	}
	if v := opts.Get("normalize"); v.Type() == js.TypeBoolean {
		cfg.Normalize = v.Bool()
	}
	return cfg, cfg.Validate()
}
