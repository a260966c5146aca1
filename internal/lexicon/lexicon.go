// Package lexicon loads the declarative vocabulary tables used by the router
// and the retrieval indices.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/roadbook/internal/textnorm"
)

//go:embed lexicon.yaml
var defaultYAML []byte

// AliasRule maps a colloquial or misspelt term to canonical vocabulary.
type AliasRule struct {
	Alias string `yaml:"alias"`
	Canon string `yaml:"canon"`
}

// ExpansionRule adds related tokens when any trigger token is present.
type ExpansionRule struct {
	Triggers []string `yaml:"triggers"`
	Add      []string `yaml:"add"`
}

// EnrichmentRule rewrites indexed text to inject synonyms.
type EnrichmentRule struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`

	re *regexp.Regexp
}

// Apply returns text with every match of the rule replaced.
func (r EnrichmentRule) Apply(text string) string {
	if r.re == nil {
		return text
	}
	return r.re.ReplaceAllLiteralString(text, r.Replace)
}

// RouterTerms holds the three routing term lists.
type RouterTerms struct {
	Fuel     []string `yaml:"fuel"`
	Manual   []string `yaml:"manual"`
	Location []string `yaml:"location"`
}

// Fines holds the fine/penalty vocabulary.
type Fines struct {
	Intent              []string `yaml:"intent"`
	Scoring             []string `yaml:"scoring"`
	RescueVocabulary    string   `yaml:"rescue_vocabulary"`
	RescueSections      []string `yaml:"rescue_sections"`
	RescueSectionsLoose []string `yaml:"rescue_sections_loose"`
}

// Stations holds the station query vocabulary. Map keys are normalized tokens,
// values are dataset spellings.
type Stations struct {
	Countries         map[string]string `yaml:"countries"`
	Networks          map[string]string `yaml:"networks"`
	StatusOK          []string          `yaml:"status_ok"`
	StatusConditioned []string          `yaml:"status_conditioned"`
	Stopwords         []string          `yaml:"stopwords"`
}

// Lexicon is the full vocabulary. It is read-only after Load.
type Lexicon struct {
	Aliases    []AliasRule      `yaml:"aliases"`
	Router     RouterTerms      `yaml:"router"`
	Expansion  []ExpansionRule  `yaml:"expansion"`
	Enrichment []EnrichmentRule `yaml:"enrichment"`
	Fines      Fines            `yaml:"fines"`
	Stations   Stations         `yaml:"stations"`
}

// Default returns the embedded lexicon.
func Default() *Lexicon {
	lex, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return lex
}

// Load reads a lexicon from path, or returns the embedded one when path is empty.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Parse decodes and validates a YAML lexicon.
func Parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.compile(); err != nil {
		return nil, err
	}
	return &lex, nil
}

func (l *Lexicon) compile() error {
	for i := range l.Enrichment {
		re, err := regexp.Compile(l.Enrichment[i].Pattern)
		if err != nil {
			return fmt.Errorf("enrichment[%d]: %w", i, err)
		}
		l.Enrichment[i].re = re
	}

	check := func(section string, terms ...string) error {
		for _, t := range terms {
			if t == "" || textnorm.Normalize(t) != t {
				return fmt.Errorf("%s: term %q is not normalized", section, t)
			}
		}
		return nil
	}
	for i, a := range l.Aliases {
		if err := check(fmt.Sprintf("aliases[%d]", i), a.Alias, a.Canon); err != nil {
			return err
		}
	}
	for i, r := range l.Expansion {
		if len(r.Triggers) == 0 {
			return fmt.Errorf("expansion[%d]: no triggers", i)
		}
		if err := check(fmt.Sprintf("expansion[%d].triggers", i), r.Triggers...); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("expansion[%d].add", i), r.Add...); err != nil {
			return err
		}
	}
	lists := map[string][]string{
		"router.fuel":                 l.Router.Fuel,
		"router.manual":               l.Router.Manual,
		"router.location":             l.Router.Location,
		"fines.intent":                l.Fines.Intent,
		"fines.scoring":               l.Fines.Scoring,
		"stations.stopwords":          l.Stations.Stopwords,
		"stations.status_ok":          l.Stations.StatusOK,
		"stations.status_conditioned": l.Stations.StatusConditioned,
	}
	for name, terms := range lists {
		if err := check(name, terms...); err != nil {
			return err
		}
	}
	for k := range l.Stations.Countries {
		if err := check("stations.countries", k); err != nil {
			return err
		}
	}
	for k := range l.Stations.Networks {
		if err := check("stations.networks", k); err != nil {
			return err
		}
	}
	return nil
}
