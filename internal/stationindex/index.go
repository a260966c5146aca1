// Package stationindex filters and ranks the authorised fuel station list.
package stationindex

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/station"
	"github.com/kailas-cloud/roadbook/internal/lexicon"
	"github.com/kailas-cloud/roadbook/internal/textnorm"
)

// DefaultTopK caps the score path.
const DefaultTopK = 50

// Weights are the scoring constants of the score path.
type Weights struct {
	Combined  int `yaml:"combined"`   // per token in country, network, name or instructions
	Network   int `yaml:"network"`    // per token in network
	Name      int `yaml:"name"`       // per token in name
	FullQuery int `yaml:"full_query"` // whole normalized query in the combined text
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{Combined: 2, Network: 4, Name: 3, FullQuery: 8}
}

type entry struct {
	station  station.Station
	country  string
	network  string
	name     string
	combined string // country network name instructions
	freeText string // name instructions
}

// Index is immutable after New and safe for concurrent use.
type Index struct {
	entries []entry
	vocab   lexicon.Stations
	stop    map[string]struct{}
	weights Weights
}

// New indexes stations. Ids must be unique and non-empty.
func New(stations []station.Station, lex *lexicon.Lexicon, w Weights) (*Index, error) {
	idx := &Index{
		entries: make([]entry, 0, len(stations)),
		vocab:   lex.Stations,
		stop:    make(map[string]struct{}),
		weights: w,
	}

	seen := make(map[string]struct{}, len(stations))
	for _, s := range stations {
		if strings.TrimSpace(s.ID) == "" {
			return nil, domain.NewIntegrityError("station index", "", "empty id")
		}
		if _, dup := seen[s.ID]; dup {
			return nil, domain.NewIntegrityError("station index", s.ID, "duplicate id")
		}
		if s.Name == "" || s.Country == "" {
			return nil, domain.NewIntegrityError("station index", s.ID, "name and country are required")
		}
		seen[s.ID] = struct{}{}

		idx.entries = append(idx.entries, entry{
			station:  s,
			country:  textnorm.Normalize(s.Country),
			network:  textnorm.Normalize(s.Network),
			name:     textnorm.Normalize(s.Name),
			combined: textnorm.Normalize(s.Country + " " + s.Network + " " + s.Name + " " + s.Instructions),
			freeText: textnorm.Normalize(s.Name + " " + s.Instructions),
		})
	}

	for _, w := range lex.Stations.Stopwords {
		idx.stop[w] = struct{}{}
	}
	for k := range lex.Stations.Countries {
		idx.stop[k] = struct{}{}
	}
	for k := range lex.Stations.Networks {
		idx.stop[k] = struct{}{}
	}
	return idx, nil
}

// Len returns the number of stations.
func (x *Index) Len() int { return len(x.entries) }

// All returns every station in dataset order.
func (x *Index) All() []station.Station {
	out := make([]station.Station, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.station
	}
	return out
}

// ParseFilters extracts at most one country, one status and one network from
// question; the remaining non-stopword tokens become free text.
func (x *Index) ParseFilters(question string) station.Filters {
	norm := textnorm.Normalize(question)
	tokens := textnorm.Tokenize(question)

	var f station.Filters
	for _, t := range tokens {
		if c, ok := x.vocab.Countries[t]; ok {
			f.Country = c
			break
		}
	}

	switch {
	case containsAny(norm, x.vocab.StatusOK):
		f.Status = station.StatusOK
	case containsAny(norm, x.vocab.StatusConditioned):
		f.Status = station.StatusConditioned
	}

	for _, t := range tokens {
		if n, ok := x.vocab.Networks[t]; ok {
			f.Network = n
			break
		}
	}

	var free []string
	for _, t := range tokens {
		if _, stop := x.stop[t]; !stop {
			free = append(free, t)
		}
	}
	f.FreeText = strings.Join(free, " ")
	return f
}

// Filter returns the stations matching every set filter, in dataset order.
// Country and network compare normalized text; a network also matches a
// station whose name contains it; free text must occur in name or instructions.
func (x *Index) Filter(f station.Filters) []station.Station {
	country := textnorm.Normalize(f.Country)
	network := textnorm.Normalize(f.Network)
	free := textnorm.Normalize(f.FreeText)

	var out []station.Station
	for _, e := range x.entries {
		if country != "" && e.country != country {
			continue
		}
		if f.Status != "" && e.station.Status != f.Status {
			continue
		}
		if network != "" && e.network != network && !strings.Contains(e.name, network) {
			continue
		}
		if free != "" && !strings.Contains(e.freeText, free) {
			continue
		}
		out = append(out, e.station)
	}
	return out
}

// Search scores every station against query and returns the top k positive hits.
func (x *Index) Search(query string, k int) []station.Hit {
	if k <= 0 {
		k = DefaultTopK
	}
	qNorm := textnorm.Normalize(query)
	tokens := textnorm.Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	var hits []station.Hit
	for _, e := range x.entries {
		if s := x.weights.score(e, tokens, qNorm); s > 0 {
			hits = append(hits, station.Hit{Station: e.station, Score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func (w Weights) score(e entry, tokens []string, qNorm string) int {
	score := 0
	for _, t := range tokens {
		if strings.Contains(e.combined, t) {
			score += w.Combined
		}
		if strings.Contains(e.network, t) {
			score += w.Network
		}
		if strings.Contains(e.name, t) {
			score += w.Name
		}
	}
	if qNorm != "" && strings.Contains(e.combined, qNorm) {
		score += w.FullQuery
	}
	return score
}

// SortForDisplay orders stations mandatory first, then by country, network and
// name using Spanish collation. The input slice is sorted in place.
func SortForDisplay(stations []station.Station) {
	c := collate.New(language.Spanish)
	sort.SliceStable(stations, func(i, j int) bool {
		a, b := stations[i], stations[j]
		if a.Status != b.Status {
			return a.Status == station.StatusOK
		}
		if n := c.CompareString(a.Country, b.Country); n != 0 {
			return n < 0
		}
		if n := c.CompareString(a.Network, b.Network); n != 0 {
			return n < 0
		}
		return c.CompareString(a.Name, b.Name) < 0
	})
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
