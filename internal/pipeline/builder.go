package pipeline

import (
	"fmt"

	"scribe/internal/enrich"
	"scribe/internal/llm"
	"scribe/internal/research"
	"scribe/internal/writer"
)

// Builder helps construct a fully configured Pipeline
type Builder struct {
	football FootballAPI
	runner   llm.Runner
	config   *Config
	traced   bool
}

// NewBuilder creates a new pipeline builder with default settings
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithFootballAPI sets the data capability used for fixtures and enrichment
func (b *Builder) WithFootballAPI(api FootballAPI) *Builder {
	b.football = api
	return b
}

// WithRunner sets the text-generation capability shared by research and writing
func (b *Builder) WithRunner(runner llm.Runner) *Builder {
	b.runner = runner
	return b
}

// WithConfig sets the pipeline configuration
func (b *Builder) WithConfig(config *Config) *Builder {
	b.config = config
	return b
}

// WithTracing logs latency and token estimates for every model call
func (b *Builder) WithTracing() *Builder {
	b.traced = true
	return b
}

// Build constructs a fully configured Pipeline
func (b *Builder) Build() (*Pipeline, error) {
	// Validate required components
	if b.football == nil {
		return nil, fmt.Errorf("football API is required")
	}
	if b.runner == nil {
		return nil, fmt.Errorf("LLM runner is required")
	}
	if b.config == nil {
		b.config = DefaultConfig()
	}

	runner := b.runner
	if b.traced {
		runner = llm.NewTracedRunner(runner)
	}

	model := b.config.Model
	collector := enrich.NewCollector(b.football)
	researcher := research.NewResearcher(runner, llm.Researcher.WithModel(model))
	articleWriter := writer.New(runner, llm.Writer.WithModel(model))

	return NewPipeline(b.football, collector, researcher, articleWriter, b.config), nil
}
