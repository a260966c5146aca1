// Package langdetect guesses the language of a driver question from script,
// diacritics and a handful of signal words.
package langdetect

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/textnorm"
)

const (
	minSignalHits   = 3
	minSignalMargin = 1
)

var arabicRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

const (
	romanianLetters   = "ăâîșşțţ"
	portugueseLetters = "ãõç"
)

// lowercase, accented as typed
var portugueseWords = []string{
	"você", "vocês", "obrigado", "obrigada", "não", "faço", "fiz", "estou", "também",
	"tá", "tô", "estão", "pra",
}

// normalized, diacritic-free
var (
	romanianSignals = []string{
		"care", "este", "numarul", "maxim", "ore", "conducere", "saptamanal", "dupa",
		"cat", "timp", "obligatoriu", "pauza", "minute", "sofer", "conducator",
	}
	portugueseSignals = []string{
		"qual", "quais", "quanto", "tempo", "obrigatorio", "pausa", "minutos", "conducao",
		"motorista", "camiao", "caminhao",
	}
)

// Detect returns forced when it is a supported language, otherwise the detected language.
// Detection never fails; Spanish is the fallback.
func Detect(question string, forced domain.Lang) domain.Lang {
	if forced.IsValid() {
		return forced
	}

	primary := detectScript(question)
	if primary != domain.LangES {
		return primary
	}

	normalized := textnorm.Normalize(question)
	ro := textnorm.CountHits(normalized, romanianSignals)
	pt := textnorm.CountHits(normalized, portugueseSignals)
	switch {
	case ro >= minSignalHits && ro >= pt+minSignalMargin:
		return domain.LangRO
	case pt >= minSignalHits && pt >= ro+minSignalMargin:
		return domain.LangPT
	}
	return domain.LangES
}

// ContainsArabic reports whether s has any code point in the Arabic blocks.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(arabicRanges, r) {
			return true
		}
	}
	return false
}

func detectScript(question string) domain.Lang {
	if ContainsArabic(question) {
		return domain.LangAR
	}

	lower := strings.ToLower(norm.NFC.String(question))
	if strings.ContainsAny(lower, romanianLetters) {
		return domain.LangRO
	}
	if strings.ContainsAny(lower, portugueseLetters) || hasAnyWord(lower, portugueseWords) {
		return domain.LangPT
	}
	return domain.LangES
}

// hasAnyWord matches words bounded by non-letters, keeping diacritics intact.
func hasAnyWord(lower string, words []string) bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
