package answer

import (
	"context"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
)

// Completer generates answers with a language model.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Translator moves text between languages.
type Translator interface {
	Translate(ctx context.Context, text string, source, target domain.Lang) (string, error)
}

// Embedder vectorizes the search query for the vector fallback.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorRepository runs KNN over the external vector index.
type VectorRepository interface {
	SearchKNN(ctx context.Context, vector []float32, kind hit.Kind, topK int) ([]hit.Vector, error)
}
