package ingest

import (
	"context"

	"github.com/kailas-cloud/roadbook/internal/domain/hit"
)

// Repository is the vector index the records are written to.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, records []hit.Record) error
}
