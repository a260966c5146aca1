package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
	logpkg "github.com/kailas-cloud/roadbook/internal/logger"
	"github.com/kailas-cloud/roadbook/internal/usecase/answer"
)

func newAskCmd() *cobra.Command {
	var (
		lang  string
		debug bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question and print the evidence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, envName)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx = logpkg.ContextWithLogger(ctx, a.logger)

			resp, err := a.answers.Ask(ctx, answer.Request{
				Question:   strings.Join(args, " "),
				ForcedLang: domain.Lang(lang),
				Debug:      debug,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fprintln(out, routeColor(resp.Route), fmt.Sprintf("[%s · %s]", resp.Route, resp.Lang))
			fmt.Fprintf(out, "\n%s\n", resp.Answer)
			if len(resp.Hits) > 0 {
				fmt.Fprintln(out)
				fprintln(out, sectionColor, "Evidence:")
				for _, h := range resp.Hits {
					fmt.Fprintln(out, "  "+describeHit(h))
				}
			}
			if resp.Debug != nil {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				fmt.Fprintln(out)
				fprintln(out, sectionColor, "Debug:")
				if err := enc.Encode(resp.Debug); err != nil {
					return fmt.Errorf("encode debug: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "force the answer language (es, pt, ro, ar)")
	cmd.Flags().BoolVar(&debug, "debug", false, "print routing and retrieval details")
	return cmd
}

func describeHit(h hit.Hit) string {
	switch h.Kind {
	case hit.KindManual:
		return fmt.Sprintf("manual  %s · %s · %s (score %d)", h.Manual.ModuleID, h.Manual.ModuleTitle, h.Manual.SectionTitle, h.Manual.Score)
	case hit.KindStation:
		return fmt.Sprintf("station %s · %s · %s", h.Station.ID, h.Station.Name, h.Station.Status)
	case hit.KindVector:
		return fmt.Sprintf("vector  %s · %s (score %.3f)", h.Vector.Title, h.Vector.Section, h.Vector.Score)
	}
	return string(h.Kind)
}
