package pipeline

import (
	"encoding/json"
	"time"

	"scribe/internal/article"
	"scribe/internal/research"
)

// Stage names reported in metadata
const (
	StageDataCollection    = "data_collection"
	StageTeamExtraction    = "team_extraction"
	StagePlayerExtraction  = "player_extraction"
	StageTeamEnrichment    = "team_enrichment"
	StagePlayerEnrichment  = "player_enrichment"
	StageResearch          = "research"
	StageArticleWriting    = "article_writing"
	stageStatusOK          = "ok"
	stageStatusError       = "error"
	defaultArticleType     = "game_recap"
	defaultDataSource      = "rapidapi_football"
	dataFlowDescription    = "Data Collector → Research → Writer"
	agentStatusInitialized = "initialized"
	agentStatusUnavailable = "unavailable"
)

// StageResult is the outcome of one stage: a value or the error that
// replaced it. It encodes as the value, or as {"error": reason}.
type StageResult[T any] struct {
	Value T
	Err   error
}

// OK wraps a successful stage value.
func OK[T any](v T) StageResult[T] {
	return StageResult[T]{Value: v}
}

// Failed wraps a stage error.
func Failed[T any](err error) StageResult[T] {
	return StageResult[T]{Err: err}
}

// Succeeded reports whether the stage produced a value.
func (r StageResult[T]) Succeeded() bool {
	return r.Err == nil
}

// MarshalJSON encodes the value or the error record.
func (r StageResult[T]) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(map[string]string{"error": r.Err.Error()})
	}
	return json.Marshal(r.Value)
}

// StageReport is the per-stage entry in result metadata.
type StageReport struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Metadata describes one pipeline run.
type Metadata struct {
	RunID            string        `json:"run_id"`
	GeneratedAt      time.Time     `json:"generated_at"`
	PipelineDuration float64       `json:"pipeline_duration"`
	DataSources      []string      `json:"data_sources"`
	ModelUsed        string        `json:"model_used"`
	Stages           []StageReport `json:"stages"`
	ErrorOccurred    bool          `json:"error_occurred,omitempty"`
	ErrorStep        string        `json:"error_step,omitempty"`
}

// ResearchPlaceholder is the all-null research record of a failed run.
type ResearchPlaceholder struct {
	GameAnalysis      []string `json:"game_analysis"`
	HistoricalContext []string `json:"historical_context"`
	PlayerPerformance []string `json:"player_performance"`
	Storylines        []string `json:"storylines"`
	TeamInfo          any      `json:"team_info"`
	PlayerInfo        any      `json:"player_info"`
}

// Result is the envelope returned by GenerateRecap. Success carries the
// article content; failure carries the error and a research placeholder.
type Result struct {
	Success      bool                 `json:"success"`
	GameID       string               `json:"game_id"`
	ArticleType  string               `json:"article_type,omitempty"`
	Content      string               `json:"content,omitempty"`
	Error        string               `json:"error,omitempty"`
	ResearchData *ResearchPlaceholder `json:"research_data,omitempty"`
	Article      *article.Metadata    `json:"article,omitempty"`
	Metadata     Metadata             `json:"metadata"`

	// Research is the bundle handed to the writer; not part of the envelope.
	Research *research.Bundle `json:"-"`
}

// StatusReport is the introspection view returned by Status.
type StatusReport struct {
	PipelineStatus string       `json:"pipeline_status"`
	Agents         AgentStatus  `json:"agents"`
	Configuration  StatusConfig `json:"configuration"`
	DataFlow       string       `json:"data_flow"`
	Timestamp      time.Time    `json:"timestamp"`
}

// AgentStatus reports which stages are wired.
type AgentStatus struct {
	DataCollector string `json:"data_collector"`
	Researcher    string `json:"researcher"`
	Writer        string `json:"writer"`
}

// StatusConfig echoes the model settings.
type StatusConfig struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int32   `json:"max_tokens"`
}
