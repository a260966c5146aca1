package manualindex

import "strings"

// Weights are the scoring constants. Token presence is a substring test.
type Weights struct {
	Haystack   int `yaml:"haystack"`    // per token found in the enriched text
	Title      int `yaml:"title"`       // per token found in module or section title
	FullQuery  int `yaml:"full_query"`  // whole normalized query found in the enriched text
	RestBonus  int `yaml:"rest_bonus"`  // driving-time question on a section about rest
	Procedure  int `yaml:"procedure"`   // fine question, section mentions procedure
	Contact    int `yaml:"contact"`     // fine question, section mentions contacting
	Authority  int `yaml:"authority"`   // fine question, section mentions operator or traffic desk
	Payment    int `yaml:"payment"`     // fine question, section mentions payment
	FinesTitle int `yaml:"fines_title"` // fine question, title mentions fines
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{
		Haystack:   2,
		Title:      6,
		FullQuery:  8,
		RestBonus:  4,
		Procedure:  4,
		Contact:    3,
		Authority:  3,
		Payment:    2,
		FinesTitle: 10,
	}
}

type query struct {
	tokens  []string
	norm    string
	driving bool // conducir or conduccion
	hours   bool // horas or tiempos
	fine    bool
}

func newQuery(tokens []string, norm string, fines map[string]struct{}) query {
	q := query{tokens: tokens, norm: norm}
	for _, t := range tokens {
		switch t {
		case "conducir", "conduccion":
			q.driving = true
		case "horas", "tiempos":
			q.hours = true
		}
		if _, ok := fines[t]; ok {
			q.fine = true
		}
	}
	return q
}

func (w Weights) score(r *row, q query) int {
	score := 0
	for _, t := range q.tokens {
		if strings.Contains(r.haystack, t) {
			score += w.Haystack
		}
		if strings.Contains(r.titleStack, t) {
			score += w.Title
		}
	}
	if q.norm != "" && strings.Contains(r.haystack, q.norm) {
		score += w.FullQuery
	}

	if q.driving && q.hours && strings.Contains(r.haystack, "descanso") {
		score += w.RestBonus
	}

	if q.fine {
		if strings.Contains(r.haystack, "procedimiento") {
			score += w.Procedure
		}
		if strings.Contains(r.haystack, "contactar") {
			score += w.Contact
		}
		if strings.Contains(r.haystack, "operador") || strings.Contains(r.haystack, "trafico") {
			score += w.Authority
		}
		if strings.Contains(r.haystack, "pago") || strings.Contains(r.haystack, "pagar") {
			score += w.Payment
		}
		if strings.Contains(r.titleStack, "multas") {
			score += w.FinesTitle
		}
	}
	return score
}
