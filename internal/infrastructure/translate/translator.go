// Package translate localizes model vocabulary into regional languages via
// static lookup tables. Translation is total: unknown keys and the "en"
// language return the input unchanged.
package translate

import (
	"strings"
	"unicode"
)

type StaticTranslator struct{}

func NewStaticTranslator() *StaticTranslator {
	return &StaticTranslator{}
}

func (t *StaticTranslator) Translate(text, lang string) string {
	if text == "" || lang == "en" {
		return text
	}

	table, ok := tables[lang]
	if !ok {
		return text
	}

	key := strings.ToLower(strings.TrimSpace(text))
	if translated, ok := table[key]; ok {
		return translated
	}

	// Compound keys like "Tomato_Bacterial_spot" or "rice-wheat" translate
	// component-wise and recombine with spaces, capitalized.
	if strings.ContainsAny(key, "_-") {
		parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
		for i, p := range parts {
			parts[i] = t.Translate(p, lang)
		}
		return capitalize(strings.Join(parts, " "))
	}

	return text
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
