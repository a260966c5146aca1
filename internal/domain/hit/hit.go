// Package hit defines the evidence returned alongside an answer.
package hit

import (
	"github.com/kailas-cloud/roadbook/internal/domain/manual"
	"github.com/kailas-cloud/roadbook/internal/domain/station"
)

// Kind tags the variant carried by a Hit.
type Kind string

// Kinds.
const (
	KindManual  Kind = "manual"
	KindStation Kind = "station"
	KindVector  Kind = "vector"
)

// Vector is a match returned by the external vector index.
type Vector struct {
	ID      string
	Score   float64
	Title   string
	Section string
	Text    string
}

// Hit is a tagged variant: exactly one of Manual, Station, Vector is set, per Kind.
type Hit struct {
	Kind    Kind
	Manual  *manual.Hit
	Station *station.Hit
	Vector  *Vector
}

// FromManual wraps manual hits.
func FromManual(hs []manual.Hit) []Hit {
	out := make([]Hit, len(hs))
	for i := range hs {
		h := hs[i]
		out[i] = Hit{Kind: KindManual, Manual: &h}
	}
	return out
}

// FromStations wraps stations. Unscored stations carry Score 0.
func FromStations(hs []station.Hit) []Hit {
	out := make([]Hit, len(hs))
	for i := range hs {
		h := hs[i]
		out[i] = Hit{Kind: KindStation, Station: &h}
	}
	return out
}

// FromVectors wraps vector index matches.
func FromVectors(vs []Vector) []Hit {
	out := make([]Hit, len(vs))
	for i := range vs {
		v := vs[i]
		out[i] = Hit{Kind: KindVector, Vector: &v}
	}
	return out
}
