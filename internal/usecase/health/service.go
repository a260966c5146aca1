// Package health aggregates collaborator checks for the health endpoint.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status is the aggregated health.
type Status string

const (
	Healthy   Status = "ok"
	Degraded  Status = "degraded"
	Unhealthy Status = "error" // every check failed
)

// CheckResult is the outcome of one check.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckLLM         = "llm"
	CheckVectorIndex = "vector_index"
)

// DefaultCheckTimeout bounds each individual check.
const DefaultCheckTimeout = 5 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service runs the collaborator checks. The static indices live in memory and
// are not checked.
type Service struct {
	checks  map[string]func(context.Context) error
	timeout time.Duration
}

// New creates a Service. Nil checkers are skipped, so a deployment without the
// vector index reports on the LLM alone.
func New(llm LLMChecker, vectors VectorPinger) *Service {
	s := &Service{checks: make(map[string]func(context.Context) error), timeout: DefaultCheckTimeout}
	if llm != nil {
		s.checks[CheckLLM] = llm.HealthCheck
	}
	if vectors != nil {
		s.checks[CheckVectorIndex] = vectors.Ping
	}
	return s
}

// WithTimeout overrides the per-check deadline.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs every configured check concurrently.
func (s *Service) Check(ctx context.Context) Report {
	var (
		mu      sync.Mutex
		results = make(map[string]CheckResult, len(s.checks))
		g       errgroup.Group
	)
	for name, check := range s.checks {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			res := CheckOK
			if err := check(cctx); err != nil {
				res = CheckError
			}
			mu.Lock()
			results[name] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(results):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}
	return Report{Status: status, Checks: results}
}
