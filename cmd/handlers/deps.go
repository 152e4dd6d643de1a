package handlers

import (
	"context"
	"fmt"
	"io"

	"scribe/internal/config"
	"scribe/internal/football"
	"scribe/internal/llm"
	"scribe/internal/pipeline"
	"scribe/internal/render"
)

func newFootballClient(cfg config.Football) (*football.Client, error) {
	client, err := football.NewClient(football.Options{
		APIKey:            cfg.APIKey,
		Host:              cfg.Host,
		BaseURL:           cfg.BaseURL,
		Timeout:           config.Duration(cfg.Timeout, 0),
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		return nil, fmt.Errorf("%w. Set RAPIDAPI_KEY environment variable or football.api_key in config file", err)
	}
	return client, nil
}

func newLLMClient(ctx context.Context, cfg config.AI) (*llm.Client, error) {
	return llm.NewClient(ctx, llm.Options{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: config.Duration(cfg.Gemini.Timeout, 0),
	})
}

func pipelineConfig(cfg *config.Config) *pipeline.Config {
	pc := pipeline.DefaultConfig()
	if cfg.Pipeline.ArticleType != "" {
		pc.ArticleType = cfg.Pipeline.ArticleType
	}
	if len(cfg.Pipeline.DataSources) > 0 {
		pc.DataSources = cfg.Pipeline.DataSources
	}
	if cfg.AI.Gemini.Model != "" {
		pc.Model = cfg.AI.Gemini.Model
	}
	if cfg.AI.Gemini.Temperature > 0 {
		pc.Temperature = cfg.AI.Gemini.Temperature
	}
	if cfg.AI.Gemini.MaxTokens > 0 {
		pc.MaxTokens = cfg.AI.Gemini.MaxTokens
	}
	return pc
}

// buildPipeline wires both capabilities. The returned closer releases the
// model client.
func buildPipeline(ctx context.Context, cfg *config.Config, traced bool) (*pipeline.Pipeline, func(), error) {
	api, err := newFootballClient(cfg.Football)
	if err != nil {
		return nil, nil, err
	}
	client, err := newLLMClient(ctx, cfg.AI)
	if err != nil {
		return nil, nil, err
	}

	b := pipeline.NewBuilder().
		WithFootballAPI(api).
		WithRunner(client).
		WithConfig(pipelineConfig(cfg))
	if traced {
		b = b.WithTracing()
	}

	p, err := b.Build()
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return p, func() { client.Close() }, nil
}

// write prints v in the selected structured format, or calls text for
// the text format.
func write(w io.Writer, v any, text func() string) error {
	if output == render.FormatText {
		_, err := fmt.Fprint(w, text())
		return err
	}
	return render.Encode(w, output, v)
}
