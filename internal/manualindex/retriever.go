package manualindex

import (
	"github.com/kailas-cloud/roadbook/internal/domain/manual"
	"github.com/kailas-cloud/roadbook/internal/lexicon"
	"github.com/kailas-cloud/roadbook/internal/textnorm"
)

// DefaultWeakThreshold is the top score below which a result is weak.
const DefaultWeakThreshold = 10

// Pass names the retrieval pass that produced a result.
type Pass string

// Passes, in the order they are attempted.
const (
	PassBase        Pass = "base"
	PassExpanded    Pass = "expanded"
	PassRescue      Pass = "rescue"
	PassRescueLoose Pass = "rescue_loose"
)

// Result is the outcome of the retrieval policy.
type Result struct {
	Hits       []manual.Hit
	Pass       Pass
	FineIntent bool
}

// Retriever runs the multi-pass retrieval policy over an Index.
type Retriever struct {
	index         *Index
	topK          int
	weakThreshold int
	fines         lexicon.Fines
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithTopK overrides DefaultTopK.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithWeakThreshold overrides DefaultWeakThreshold.
func WithWeakThreshold(t int) RetrieverOption {
	return func(r *Retriever) {
		if t > 0 {
			r.weakThreshold = t
		}
	}
}

// NewRetriever creates a Retriever.
func NewRetriever(index *Index, lex *lexicon.Lexicon, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		index:         index,
		topK:          DefaultTopK,
		weakThreshold: DefaultWeakThreshold,
		fines:         lex.Fines,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Retrieve runs a base pass, then an expanded pass when the base is weak, and
// for fine or penalty questions that are still weak a rescue pass restricted to
// the fines section.
func (r *Retriever) Retrieve(query string) Result {
	res := Result{
		Hits:       r.index.Search(query, SearchOptions{Mode: ModeBase, TopK: r.topK}),
		Pass:       PassBase,
		FineIntent: r.IsFineIntent(query),
	}

	if r.isWeak(res.Hits) {
		expanded := r.index.Search(query, SearchOptions{Mode: ModeExpanded, TopK: r.topK})
		s1, s2 := topScore(res.Hits), topScore(expanded)
		if s2 > s1 || (s2 == s1 && len(expanded) > len(res.Hits)) {
			res.Hits, res.Pass = expanded, PassExpanded
		}
	}

	if !res.FineIntent || !r.isWeak(res.Hits) {
		return res
	}

	rescue := query + " " + r.fines.RescueVocabulary
	if hits := r.index.Search(rescue, SearchOptions{
		Mode:                    ModeExpanded,
		TopK:                    r.topK,
		RestrictSectionIncludes: r.fines.RescueSections,
	}); len(hits) > 0 {
		res.Hits, res.Pass = hits, PassRescue
		return res
	}
	if hits := r.index.Search(rescue, SearchOptions{
		Mode:                    ModeExpanded,
		TopK:                    r.topK,
		RestrictSectionIncludes: r.fines.RescueSectionsLoose,
	}); len(hits) > 0 {
		res.Hits, res.Pass = hits, PassRescueLoose
	}
	return res
}

// IsFineIntent reports whether the question is about a fine or penalty.
func (r *Retriever) IsFineIntent(query string) bool {
	return textnorm.CountHits(textnorm.Normalize(query), r.fines.Intent) > 0
}

func (r *Retriever) isWeak(hits []manual.Hit) bool {
	return len(hits) == 0 || topScore(hits) < r.weakThreshold
}

func topScore(hits []manual.Hit) int {
	if len(hits) == 0 {
		return 0
	}
	return hits[0].Score
}
