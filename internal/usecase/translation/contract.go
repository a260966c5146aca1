package translation

import (
	"context"
	"time"

	"github.com/kailas-cloud/roadbook/internal/domain"
)

// Completer is the language model collaborator.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Clock returns the current time.
type Clock func() time.Time
