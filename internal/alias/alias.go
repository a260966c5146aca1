// Package alias rewrites queries towards canonical domain vocabulary.
package alias

import (
	"github.com/kailas-cloud/roadbook/internal/lexicon"
	"github.com/kailas-cloud/roadbook/internal/textnorm"
)

// Match records an alias that fired.
type Match struct {
	Alias string `json:"alias"`
	Canon string `json:"canon"`
}

// Expander applies alias and token expansion tables.
type Expander struct {
	aliases   []lexicon.AliasRule
	expansion []lexicon.ExpansionRule
}

// New creates an Expander over lex.
func New(lex *lexicon.Lexicon) *Expander {
	return &Expander{aliases: lex.Aliases, expansion: lex.Expansion}
}

// ExpandAliases appends the canonical term of every alias found as a whole word
// in normalized. Matches are unique by (alias, canon) and keep rule order.
func (e *Expander) ExpandAliases(normalized string) (string, []Match) {
	out := normalized
	var matched []Match
	seen := make(map[Match]struct{})

	for _, r := range e.aliases {
		if !textnorm.HasWord(out, r.Alias) {
			continue
		}
		m := Match{Alias: r.Alias, Canon: r.Canon}
		if _, ok := seen[m]; !ok {
			seen[m] = struct{}{}
			matched = append(matched, m)
		}
		if !textnorm.HasWord(out, r.Canon) {
			if out == "" {
				out = r.Canon
			} else {
				out += " " + r.Canon
			}
		}
	}
	return out, matched
}

// ExpandQueryTokens inflates tokens with the related terms of every rule whose
// trigger is among the input tokens. Added tokens never trigger further rules.
// The result keeps input order, then additions in rule order, without duplicates.
func (e *Expander) ExpandQueryTokens(tokens []string) []string {
	present := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := present[t]; ok {
			continue
		}
		present[t] = struct{}{}
		out = append(out, t)
	}

	original := make(map[string]struct{}, len(present))
	for t := range present {
		original[t] = struct{}{}
	}

	for _, r := range e.expansion {
		if !anyIn(original, r.Triggers) {
			continue
		}
		for _, a := range r.Add {
			if _, ok := present[a]; ok {
				continue
			}
			present[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

func anyIn(set map[string]struct{}, terms []string) bool {
	for _, t := range terms {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
