package mocks

import (
	"context"
	"sync"

	"scribe/internal/llm"
)

// RunnerCall records one call made to MockRunner
type RunnerCall struct {
	Profile llm.Profile
	Prompt  string
}

// MockRunner provides a mock implementation of llm.Runner
type MockRunner struct {
	RunFunc func(ctx context.Context, profile llm.Profile, prompt string) (string, error)

	mu    sync.Mutex
	calls []RunnerCall
}

func (m *MockRunner) Run(ctx context.Context, profile llm.Profile, prompt string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, RunnerCall{Profile: profile, Prompt: prompt})
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, profile, prompt)
	}
	return `["Mock analysis"]`, nil
}

// Calls returns a copy of the recorded calls
func (m *MockRunner) Calls() []RunnerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RunnerCall, len(m.calls))
	copy(out, m.calls)
	return out
}
