package server

import (
	"context"
	"sync"

	"scribe/internal/pipeline"
)

// mockRecapService provides a mock implementation of RecapService
type mockRecapService struct {
	GenerateRecapFunc func(ctx context.Context, gameID string) *pipeline.Result
	StatusFunc        func() pipeline.StatusReport

	mu      sync.Mutex
	GameIDs []string
}

func (m *mockRecapService) GenerateRecap(ctx context.Context, gameID string) *pipeline.Result {
	m.mu.Lock()
	m.GameIDs = append(m.GameIDs, gameID)
	m.mu.Unlock()

	if m.GenerateRecapFunc != nil {
		return m.GenerateRecapFunc(ctx, gameID)
	}
	return &pipeline.Result{Success: true, GameID: gameID, ArticleType: "game_recap", Content: "Mock recap"}
}

func (m *mockRecapService) Status() pipeline.StatusReport {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return pipeline.StatusReport{PipelineStatus: "operational"}
}
