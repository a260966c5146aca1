package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roadbook/internal/domain"
	logpkg "github.com/kailas-cloud/roadbook/internal/logger"
	"github.com/kailas-cloud/roadbook/internal/usecase/ingest"
)

func newIngestCmd() *cobra.Command {
	var (
		offset    int
		limit     int
		batchSize int
		reset     bool
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Embed the manual and station list into the vector index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, envName)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.vectors == nil {
				return domain.ErrVectorIndexDisabled
			}

			ctx = logpkg.ContextWithLogger(ctx, a.logger)
			if reset {
				if err := a.vectors.Reset(ctx); err != nil {
					return err
				}
				a.logger.Info("Vector index dropped")
			}

			var bar *progressbar.ProgressBar
			svc := ingest.New(a.vectors, a.llm).
				WithBatchSize(batchSize).
				WithProgress(func(done, window int) {
					if bar == nil {
						bar = newIngestBar(window)
					}
					_ = bar.Set(done)
				})
			res, err := svc.Run(ctx, a.corpus.Modules, a.corpus.Stations, offset, limit)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			a.logger.Info("Ingest window stored",
				zap.Int("processed", res.Processed),
				zap.Int("next_offset", res.NextOffset),
				zap.Int("total", res.Total),
				zap.Bool("finished", res.Finished),
			)
			fprintln(cmd.OutOrStdout(), successColor, fmt.Sprintf("processed=%d next_offset=%d total=%d finished=%t",
				res.Processed, res.NextOffset, res.Total, res.Finished))
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "first record of the window")
	cmd.Flags().IntVar(&limit, "limit", 0, "records in the window (0 = all remaining)")
	cmd.Flags().IntVar(&batchSize, "batch-size", ingest.DefaultBatchSize, "texts per embedding request")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop the index and its records before ingesting")
	return cmd
}
