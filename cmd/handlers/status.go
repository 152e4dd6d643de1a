package handlers

import (
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/enrich"
	"scribe/internal/logger"
	"scribe/internal/llm"
	"scribe/internal/pipeline"
	"scribe/internal/render"
	"scribe/internal/research"
	"scribe/internal/writer"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline readiness and model configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closeFn := statusPipeline(cmd)
			defer closeFn()

			status := p.Status()
			return write(cmd.OutOrStdout(), status, func() string { return render.StatusText(status) })
		},
	}
}

// statusPipeline wires whatever capabilities the configuration allows.
// Missing keys leave the matching stages unavailable instead of failing.
func statusPipeline(cmd *cobra.Command) (*pipeline.Pipeline, func()) {
	cfg := config.Get()
	closeFn := func() {}

	var (
		source     pipeline.FixtureSource
		enricher   pipeline.Enricher
		researcher pipeline.Researcher
		articles   pipeline.ArticleWriter
	)

	if api, err := newFootballClient(config.GetFootball()); err != nil {
		logger.Warn("Data collector unavailable", "error", err.Error())
	} else {
		source = api
		enricher = enrich.NewCollector(api)
	}

	if client, err := newLLMClient(cmd.Context(), config.GetAI()); err != nil {
		logger.Warn("Model client unavailable", "error", err.Error())
	} else {
		closeFn = func() { client.Close() }
		model := pipelineConfig(cfg).Model
		researcher = research.NewResearcher(client, llm.Researcher.WithModel(model))
		articles = writer.New(client, llm.Writer.WithModel(model))
	}

	return pipeline.NewPipeline(source, enricher, researcher, articles, pipelineConfig(cfg)), closeFn
}
