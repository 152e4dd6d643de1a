package handlers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/llm"
	"scribe/internal/render"
	"scribe/internal/research"
)

const kindMoments = "moments"

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "analyze <fixture-id>",
		Short: "Run a single research analysis on a fixture",
		Long: fmt.Sprintf(`Run one research prompt against a fixture and print the findings.

Kinds: %s, %s`, strings.Join(research.Kinds, ", "), kindMoments),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Get()

			api, err := newFootballClient(config.GetFootball())
			if err != nil {
				return err
			}
			client, err := newLLMClient(ctx, config.GetAI())
			if err != nil {
				return err
			}
			defer client.Close()

			raw, err := api.FetchFixture(ctx, args[0])
			if err != nil {
				return fmt.Errorf("fetch fixture %s: %w", args[0], err)
			}
			if len(raw.Response) == 0 {
				return fmt.Errorf("no data available for fixture %s", args[0])
			}

			r := research.NewResearcher(client, llm.Researcher.WithModel(pipelineConfig(cfg).Model))

			if kind == kindMoments {
				m := r.BestAndWorstMoments(ctx, raw)
				return write(cmd.OutOrStdout(), m, func() string {
					return render.Field("Best", m.BestMoment) + "\n" + render.Field("Worst", m.WorstMoment) + "\n"
				})
			}

			items, err := r.Run(ctx, kind, raw)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), items, func() string { return render.List(kind, items) })
		},
	}

	cmd.Flags().StringVar(&kind, "kind", research.KindStorylines, "analysis kind")

	return cmd
}
