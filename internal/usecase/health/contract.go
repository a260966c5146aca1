package health

import "context"

// LLMChecker checks language model availability.
type LLMChecker interface {
	HealthCheck(ctx context.Context) error
}

// VectorPinger checks the external vector index.
type VectorPinger interface {
	Ping(ctx context.Context) error
}
