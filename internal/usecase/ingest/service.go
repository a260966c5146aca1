// Package ingest loads the knowledge corpus into the vector fallback index.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
	"github.com/kailas-cloud/roadbook/internal/domain/manual"
	"github.com/kailas-cloud/roadbook/internal/domain/station"
	"github.com/kailas-cloud/roadbook/internal/logger"
)

// DefaultBatchSize is the number of texts per embedding request.
const DefaultBatchSize = 64

// namespace seeds the deterministic record ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://roadbook/vector"))

// Result reports one ingest window.
type Result struct {
	Processed  int  `json:"processed"`
	NextOffset int  `json:"next_offset"`
	Total      int  `json:"total"`
	Finished   bool `json:"finished"`
}

// Service embeds manual sections and stations and upserts them.
type Service struct {
	repo      Repository
	embed     domain.Embedder
	batchSize int
	progress  ProgressFunc
}

// ProgressFunc is told how many records of the window are stored so far.
type ProgressFunc func(done, window int)

// New creates an ingest service.
func New(repo Repository, embed domain.Embedder) *Service {
	return &Service{repo: repo, embed: embed, batchSize: DefaultBatchSize}
}

// WithBatchSize configures the embedding batch size.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// WithProgress registers a callback invoked after every stored batch.
func (s *Service) WithProgress(fn ProgressFunc) *Service {
	s.progress = fn
	return s
}

// Run ingests records [offset, offset+limit) of the corpus. limit <= 0 means
// everything from offset on. Ids are stable, so re-running a window overwrites it.
func (s *Service) Run(
	ctx context.Context, modules []manual.Module, stations []station.Station, offset, limit int,
) (Result, error) {
	records := Records(modules, stations)
	total := len(records)

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return Result{NextOffset: total, Total: total, Finished: true}, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	if err := s.repo.EnsureIndex(ctx); err != nil {
		return Result{}, fmt.Errorf("ensure index: %w", err)
	}

	log := logger.FromContext(ctx)
	window := records[offset:end]
	for start := 0; start < len(window); start += s.batchSize {
		batch := window[start:min(start+s.batchSize, len(window))]

		texts := make([]string, len(batch))
		for i, r := range batch {
			texts[i] = embeddingText(r)
		}
		res, err := domain.EmbedAll(ctx, s.embed, texts)
		if err != nil {
			return Result{}, fmt.Errorf("embed records %d-%d: %w", offset+start, offset+start+len(batch), err)
		}
		if len(res.Embeddings) != len(batch) {
			return Result{}, domain.NewCollaboratorError("embed", 0,
				fmt.Sprintf("got %d embeddings for %d texts", len(res.Embeddings), len(batch)))
		}
		for i := range batch {
			batch[i].Vector = res.Embeddings[i]
		}

		if err := s.repo.Upsert(ctx, batch); err != nil {
			return Result{}, fmt.Errorf("upsert records: %w", err)
		}
		log.Debug("ingest batch stored",
			zap.Int("from", offset+start),
			zap.Int("count", len(batch)),
			zap.Int("tokens", res.TotalTokens),
		)
		if s.progress != nil {
			s.progress(start+len(batch), len(window))
		}
	}

	return Result{
		Processed:  len(window),
		NextOffset: end,
		Total:      total,
		Finished:   end == total,
	}, nil
}

// Records flattens the corpus in a stable order: manual sections first, then stations.
func Records(modules []manual.Module, stations []station.Station) []hit.Record {
	entries := manual.Entries(modules)
	out := make([]hit.Record, 0, len(entries)+len(stations))

	for _, e := range entries {
		out = append(out, hit.Record{
			ID:      recordID(hit.KindManual, e.ModuleID, e.SectionTitle),
			Kind:    hit.KindManual,
			Title:   e.ModuleTitle,
			Section: e.SectionTitle,
			Text:    e.Text,
		})
	}
	for _, st := range stations {
		out = append(out, hit.Record{
			ID:      recordID(hit.KindStation, st.ID),
			Kind:    hit.KindStation,
			Title:   st.Name,
			Section: strings.Join([]string{st.Network, st.Country, string(st.Status)}, " · "),
			Text:    st.Instructions,
		})
	}
	return out
}

func recordID(kind hit.Kind, parts ...string) string {
	name := string(kind) + "\x00" + strings.Join(parts, "\x00")
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

func embeddingText(r hit.Record) string {
	return strings.Join([]string{r.Title, r.Section, r.Text}, "\n")
}
