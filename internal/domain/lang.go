package domain

import (
	"fmt"
	"strings"
)

// Lang is a supported question language.
type Lang string

// Supported languages. Spanish is the pivot language of the knowledge base.
const (
	LangES Lang = "es"
	LangPT Lang = "pt"
	LangRO Lang = "ro"
	LangAR Lang = "ar"
)

// Langs lists the supported languages.
var Langs = []Lang{LangES, LangPT, LangRO, LangAR}

// IsValid reports whether l is a supported language.
func (l Lang) IsValid() bool {
	switch l {
	case LangES, LangPT, LangRO, LangAR:
		return true
	}
	return false
}

// IsRTL reports right-to-left scripts.
func (l Lang) IsRTL() bool { return l == LangAR }

// Name returns the endonym.
func (l Lang) Name() string {
	switch l {
	case LangPT:
		return "Português"
	case LangRO:
		return "Română"
	case LangAR:
		return "العربية"
	default:
		return "Español"
	}
}

// EnglishName is used inside collaborator instructions.
func (l Lang) EnglishName() string {
	switch l {
	case LangPT:
		return "Portuguese"
	case LangRO:
		return "Romanian"
	case LangAR:
		return "Arabic"
	default:
		return "Spanish"
	}
}

// ParseLang parses a language code. Empty input yields "" with no error.
func ParseLang(s string) (Lang, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	l := Lang(s)
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}
	return l, nil
}

// Route is the knowledge domain a question is dispatched to.
type Route string

// Routes.
const (
	RouteManual      Route = "manual"
	RouteGasStations Route = "gasolineras"
	RouteAmbiguous   Route = "ambiguous"
)

// CompletionRequest is a single-turn request to a language model.
type CompletionRequest struct {
	Op          string // translate, answer
	System      string
	User        string
	Temperature float32
}
