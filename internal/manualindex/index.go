// Package manualindex ranks operations manual sections against a question
// with a hand-tuned lexical score.
package manualindex

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/roadbook/internal/alias"
	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/manual"
	"github.com/kailas-cloud/roadbook/internal/lexicon"
	"github.com/kailas-cloud/roadbook/internal/textnorm"
)

// DefaultTopK is the number of sections returned when the caller does not ask.
const DefaultTopK = 6

// Mode selects whether query tokens are inflated before scoring.
type Mode string

// Modes.
const (
	ModeBase     Mode = "base"
	ModeExpanded Mode = "expanded"
)

// SearchOptions tunes a single query.
type SearchOptions struct {
	Mode Mode
	TopK int
	// RestrictSectionIncludes keeps only sections whose normalized title
	// contains every fragment.
	RestrictSectionIncludes []string
}

type row struct {
	entry      manual.Entry
	haystack   string
	titleStack string
	sectionKey string
}

// Index is immutable after Build and safe for concurrent use.
type Index struct {
	rows     []row
	weights  Weights
	expander *alias.Expander
	fines    map[string]struct{}
}

// Build indexes every section of modules.
func Build(modules []manual.Module, lex *lexicon.Lexicon, w Weights) (*Index, error) {
	seen := make(map[string]struct{}, len(modules))
	for i, m := range modules {
		if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.Title) == "" {
			return nil, domain.NewIntegrityError("manual index", m.ID, "module id and title are required")
		}
		if _, dup := seen[m.ID]; dup {
			return nil, domain.NewIntegrityError("manual index", m.ID, "duplicate module id")
		}
		seen[m.ID] = struct{}{}
		for _, s := range m.Sections {
			if strings.TrimSpace(s.Title) == "" {
				return nil, domain.NewIntegrityError("manual index", modules[i].ID, "section without title")
			}
		}
	}

	entries := manual.Entries(modules)
	idx := &Index{
		rows:     make([]row, 0, len(entries)),
		weights:  w,
		expander: alias.New(lex),
		fines:    make(map[string]struct{}, len(lex.Fines.Scoring)),
	}
	for _, t := range lex.Fines.Scoring {
		idx.fines[t] = struct{}{}
	}
	for _, e := range entries {
		idx.rows = append(idx.rows, buildRow(e, lex.Enrichment))
	}
	return idx, nil
}

func buildRow(e manual.Entry, enrichment []lexicon.EnrichmentRule) row {
	title := textnorm.Normalize(e.ModuleTitle)
	section := textnorm.Normalize(e.SectionTitle)
	body := textnorm.Normalize(e.Text)

	parts := []string{title, section, body}
	for _, r := range enrichment {
		parts = append(parts, r.Apply(body))
	}

	return row{
		entry:      e,
		haystack:   collapse(strings.Join(parts, " ")),
		titleStack: collapse(title + " " + section),
		sectionKey: section,
	}
}

func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }

// Len returns the number of indexed sections.
func (x *Index) Len() int { return len(x.rows) }

// Entries returns every indexed entry in corpus order.
func (x *Index) Entries() []manual.Entry {
	out := make([]manual.Entry, len(x.rows))
	for i, r := range x.rows {
		out[i] = r.entry
	}
	return out
}

// Search scores every candidate section, drops non-positive scores, sorts by
// score descending and keeps the best hit per (module, section title).
func (x *Index) Search(query string, opts SearchOptions) []manual.Hit {
	k := opts.TopK
	if k <= 0 {
		k = DefaultTopK
	}

	qNorm := textnorm.Normalize(query)
	tokens := textnorm.Tokenize(query)
	if opts.Mode != ModeBase {
		tokens = x.expander.ExpandQueryTokens(tokens)
	}
	if len(tokens) == 0 {
		return nil
	}

	var restrict []string
	for _, f := range opts.RestrictSectionIncludes {
		if n := textnorm.Normalize(f); n != "" {
			restrict = append(restrict, n)
		}
	}

	q := newQuery(tokens, qNorm, x.fines)
	var scored []scoredRow
	for i := range x.rows {
		r := &x.rows[i]
		if !containsAll(r.sectionKey, restrict) {
			continue
		}
		if s := x.weights.score(r, q); s > 0 {
			scored = append(scored, scoredRow{row: r, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	seen := make(map[string]struct{})
	var out []manual.Hit
	for _, s := range scored {
		key := s.row.entry.ModuleID + "::" + s.row.sectionKey
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, manual.Hit{Entry: s.row.entry, Score: s.score})
		if len(out) >= k {
			break
		}
	}
	return out
}

type scoredRow struct {
	row   *row
	score int
}

func containsAll(s string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(s, f) {
			return false
		}
	}
	return true
}
