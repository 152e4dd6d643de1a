package llm

import (
	"context"
	"time"

	"scribe/internal/cost"
	"scribe/internal/logger"
)

// TracedRunner wraps a Runner and logs latency, estimated token usage and
// estimated cost for every call.
type TracedRunner struct {
	runner Runner
}

// NewTracedRunner wraps runner.
func NewTracedRunner(runner Runner) *TracedRunner {
	return &TracedRunner{runner: runner}
}

// Run delegates to the wrapped runner.
func (tr *TracedRunner) Run(ctx context.Context, profile Profile, prompt string) (string, error) {
	start := time.Now()
	result, err := tr.runner.Run(ctx, profile, prompt)
	latencyMs := time.Since(start).Milliseconds()

	if err != nil {
		logger.Error("LLM call failed", err,
			"profile", profile.Name,
			"latency_ms", latencyMs)
		return result, err
	}

	est := cost.EstimateCall(profile.Model, prompt, result)
	logger.Debug("LLM call completed",
		"profile", profile.Name,
		"model", profile.Model,
		"latency_ms", latencyMs,
		"input_tokens", est.InputTokens,
		"output_tokens", est.OutputTokens,
		"estimated_cost_usd", est.TotalCost)
	return result, nil
}
