// Package vector stores manual sections and stations as embeddings in the
// external FT index and answers KNN queries over them.
package vector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/roadbook/internal/db"
	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
)

// Index layout.
const (
	IndexName = "roadbook:vec"
	KeyPrefix = "roadbook:vec:"

	FieldKind    = "kind"
	FieldTitle   = "title"
	FieldSection = "section"
	FieldText    = "text"
	FieldVector  = "vector"
)

var returnFields = []string{FieldKind, FieldTitle, FieldSection, FieldText}

// store is the consumer interface for the vector index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements answer.VectorRepository and ingest.Repository.
type Repo struct {
	store store
	dim   int
}

// New creates a vector repository for embeddings of the given dimension.
func New(s store, dim int) *Repo {
	return &Repo{store: s, dim: dim}
}

// Definition returns the FT index schema.
func (r *Repo) Definition() (*db.IndexDefinition, error) {
	return db.NewIndex(IndexName).
		Prefix(KeyPrefix).
		Tag(FieldKind).
		Text(FieldTitle).
		Text(FieldSection).
		Text(FieldText).
		Vector(FieldVector, db.VectorSpec{
			Algorithm:      db.VectorHNSW,
			Dim:            r.dim,
			Distance:       db.DistanceCosine,
			M:              16,
			EFConstruction: 200,
		}).
		Build()
}

// EnsureIndex creates the index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrVectorIndex, err)
	}
	if exists {
		return nil
	}

	def, err := r.Definition()
	if err != nil {
		return fmt.Errorf("index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("%w: %w", domain.ErrVectorIndex, err)
	}
	return nil
}

// Reset drops the index and every stored record. A missing index is fine.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, IndexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("%w: reset: %w", domain.ErrVectorIndex, err)
	}
	return nil
}

// Upsert writes items in one pipelined round-trip. Vectors must match the
// configured dimension.
func (r *Repo) Upsert(ctx context.Context, items []hit.Record) error {
	if len(items) == 0 {
		return nil
	}

	batch := make([]db.HashSetItem, len(items))
	for i, it := range items {
		if len(it.Vector) != r.dim {
			return fmt.Errorf("%w: item %s has dimension %d, want %d",
				domain.ErrVectorIndex, it.ID, len(it.Vector), r.dim)
		}
		batch[i] = db.HashSetItem{
			Key: KeyPrefix + it.ID,
			Fields: map[string]string{
				FieldKind:    string(it.Kind),
				FieldTitle:   it.Title,
				FieldSection: it.Section,
				FieldText:    it.Text,
				FieldVector:  string(db.EncodeVector(it.Vector)),
			},
		}
	}

	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("%w: upsert: %w", domain.ErrVectorIndex, err)
	}
	return nil
}

// SearchKNN returns the topK records of the given kind nearest to vector.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, kind hit.Kind, topK int) ([]hit.Vector, error) {
	q := &db.KNNQuery{
		IndexName:    IndexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	}
	if kind != "" {
		q.Filters = []db.TagFilter{{Field: FieldKind, Value: string(kind)}}
	}

	res, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", domain.ErrVectorIndex, err)
	}

	out := make([]hit.Vector, 0, len(res.Entries))
	for _, e := range res.Entries {
		out = append(out, hit.Vector{
			ID:      strings.TrimPrefix(e.Key, KeyPrefix),
			Score:   e.Score,
			Title:   e.Fields[FieldTitle],
			Section: e.Fields[FieldSection],
			Text:    e.Fields[FieldText],
		})
	}
	return out, nil
}
