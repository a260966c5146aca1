// Package router decides which knowledge domain answers a question.
package router

import (
	"github.com/kailas-cloud/roadbook/internal/alias"
	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/lexicon"
	"github.com/kailas-cloud/roadbook/internal/textnorm"
)

// Decision is the outcome of routing one question.
type Decision struct {
	Route      domain.Route  `json:"route"`
	Normalized string        `json:"normalized"`
	Expanded   string        `json:"expanded"`
	Matched    []alias.Match `json:"matched"`

	FuelHits     int `json:"fuel_hits"`
	ManualHits   int `json:"manual_hits"`
	LocationHits int `json:"location_hits"`
}

// Router is stateless and safe for concurrent use.
type Router struct {
	expander *alias.Expander
	terms    lexicon.RouterTerms
}

// New creates a Router over lex.
func New(lex *lexicon.Lexicon) *Router {
	return &Router{expander: alias.New(lex), terms: lex.Router}
}

// Route classifies question. Location intent together with any fuel term routes
// to stations; fuel and manual signals together are ambiguous; otherwise the
// higher weighted score wins and ties go to the manual.
func (r *Router) Route(question string) Decision {
	normalized := textnorm.Normalize(question)
	expanded, matched := r.expander.ExpandAliases(normalized)

	d := Decision{
		Normalized:   normalized,
		Expanded:     expanded,
		Matched:      matched,
		FuelHits:     textnorm.CountHits(expanded, r.terms.Fuel),
		ManualHits:   textnorm.CountHits(expanded, r.terms.Manual),
		LocationHits: textnorm.CountHits(expanded, r.terms.Location),
	}

	switch {
	case d.LocationHits > 0 && d.FuelHits > 0:
		d.Route = domain.RouteGasStations
	case d.FuelHits > 0 && d.ManualHits > 0:
		d.Route = domain.RouteAmbiguous
	case d.FuelHits*2+d.LocationHits > d.ManualHits*2:
		d.Route = domain.RouteGasStations
	default:
		d.Route = domain.RouteManual
	}
	return d
}
