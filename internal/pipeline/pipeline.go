package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/article"
	"scribe/internal/enrich"
	"scribe/internal/fixture"
	"scribe/internal/football"
	"scribe/internal/logger"
)

var (
	// ErrNoFixtureData is returned when the fixture payload has no records
	ErrNoFixtureData = errors.New("No data available")

	// ErrCollectFailed marks a transport failure while fetching the fixture
	ErrCollectFailed = errors.New("Failed to collect game data")
)

// Pipeline runs data collection, extraction, enrichment, research and
// writing for one fixture at a time. It holds no per-run state, so one
// Pipeline may serve concurrent callers.
type Pipeline struct {
	source     FixtureSource
	enricher   Enricher
	researcher Researcher
	writer     ArticleWriter

	config *Config
}

// Config holds pipeline configuration
type Config struct {
	ArticleType string
	DataSources []string

	// Echoed by Status and recorded in result metadata
	Model       string
	Temperature float32
	MaxTokens   int32
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		ArticleType: defaultArticleType,
		DataSources: []string{defaultDataSource},
		Model:       "gemini-2.0-flash",
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

// NewPipeline creates a new pipeline with all dependencies
func NewPipeline(source FixtureSource, enricher Enricher, researcher Researcher, writer ArticleWriter, config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	c := *config
	c.DataSources = append([]string(nil), config.DataSources...)
	if c.ArticleType == "" {
		c.ArticleType = defaultArticleType
	}
	if len(c.DataSources) == 0 {
		c.DataSources = []string{defaultDataSource}
	}

	return &Pipeline{
		source:     source,
		enricher:   enricher,
		researcher: researcher,
		writer:     writer,
		config:     &c,
	}
}

// run carries the bookkeeping of one GenerateRecap call.
type run struct {
	id     string
	gameID string
	start  time.Time
	stages []StageReport
}

func (r *run) record(name string, start time.Time, err error) {
	report := StageReport{
		Name:       name,
		Status:     stageStatusOK,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		report.Status = stageStatusError
		report.Error = err.Error()
	}
	r.stages = append(r.stages, report)
}

// GenerateRecap produces a recap article for gameID. It always returns a
// well-formed envelope. Only an empty fixture payload or a writer failure
// ends the run early; extraction and enrichment failures are carried as
// error records into research.
func (p *Pipeline) GenerateRecap(ctx context.Context, gameID string) *Result {
	r := &run{id: uuid.NewString(), gameID: gameID, start: time.Now()}
	log := []any{"run_id", r.id, "game_id", logger.Sanitize(gameID)}
	logger.Info("Starting game recap generation", log...)

	// Step 1: collect
	stepStart := time.Now()
	raw := p.collect(ctx, gameID)
	if len(raw.Response) == 0 {
		err := fmt.Errorf("%w for game %s: %s", ErrNoFixtureData, gameID, formatErrors(raw.Errors))
		r.record(StageDataCollection, stepStart, err)
		return p.fail(r, StageDataCollection, err)
	}
	if len(raw.Errors) > 0 {
		logger.Warn("Fixture payload has non-fatal errors", append(log, "errors", formatErrors(raw.Errors))...)
	}
	r.record(StageDataCollection, stepStart, nil)

	// Step 2: extract
	stepStart = time.Now()
	team := stage(fixture.ExtractTeamInfo(raw))
	r.record(StageTeamExtraction, stepStart, team.Err)

	stepStart = time.Now()
	players := stage(fixture.ExtractPlayerInfo(raw))
	r.record(StagePlayerExtraction, stepStart, players.Err)

	// Step 3: enrich
	stepStart = time.Now()
	var enhancedTeam StageResult[enrich.EnhancedTeamData]
	if team.Succeeded() {
		enhancedTeam = OK(p.enricher.CollectTeamData(ctx, team.Value))
	} else {
		enhancedTeam = Failed[enrich.EnhancedTeamData](fmt.Errorf("team info unavailable: %w", team.Err))
	}
	r.record(StageTeamEnrichment, stepStart, enhancedTeam.Err)

	stepStart = time.Now()
	season := fixture.Season(raw)
	if season == nil {
		logger.Warn("Season missing from fixture payload, player enrichment disabled", log...)
	}
	var enhancedPlayers StageResult[enrich.EnhancedPlayerData]
	if players.Succeeded() {
		enhancedPlayers = stage(p.enricher.CollectPlayerData(ctx, players.Value, season))
	} else {
		enhancedPlayers = Failed[enrich.EnhancedPlayerData](fmt.Errorf("player info unavailable: %w", players.Err))
	}
	r.record(StagePlayerEnrichment, stepStart, enhancedPlayers.Err)

	// Step 4: research, one prompt at a time
	stepStart = time.Now()
	bundle := p.researcher.Bundle(ctx, raw, enhancedTeam, enhancedPlayers)
	r.record(StageResearch, stepStart, nil)
	logger.Info("Research completed", append(log,
		"game_analysis", len(bundle.GameAnalysis),
		"historical_context", len(bundle.HistoricalContext),
		"player_performance", len(bundle.PlayerPerformance))...)

	// Step 5: write
	stepStart = time.Now()
	content, err := p.writer.WriteRecap(ctx, raw, bundle)
	r.record(StageArticleWriting, stepStart, err)
	if err != nil {
		return p.fail(r, StageArticleWriting, err)
	}

	md := article.Inspect(content)
	result := &Result{
		Success:     true,
		GameID:      gameID,
		ArticleType: p.config.ArticleType,
		Content:     content,
		Article:     &md,
		Metadata:    p.metadata(r),
		Research:    &bundle,
	}
	logger.Info("Game recap generation completed", append(log,
		"duration_s", result.Metadata.PipelineDuration,
		"words", md.WordCount)...)
	return result
}

// Status reports readiness and configuration. It has no side effects.
func (p *Pipeline) Status() StatusReport {
	return StatusReport{
		PipelineStatus: "operational",
		Agents: AgentStatus{
			DataCollector: readiness(p.source != nil && p.enricher != nil),
			Researcher:    readiness(p.researcher != nil),
			Writer:        readiness(p.writer != nil),
		},
		Configuration: StatusConfig{
			Model:       p.config.Model,
			Temperature: p.config.Temperature,
			MaxTokens:   p.config.MaxTokens,
		},
		DataFlow:  dataFlowDescription,
		Timestamp: time.Now().UTC(),
	}
}

// collect fetches the fixture. A transport failure becomes an empty
// payload carrying the failure in its errors list.
func (p *Pipeline) collect(ctx context.Context, gameID string) *football.FixturePayload {
	raw, err := p.source.FetchFixture(ctx, gameID)
	if err == nil && raw != nil {
		return raw
	}
	if err == nil {
		err = errors.New("empty payload")
	}

	logger.Error("Failed to collect game data", err, "game_id", logger.Sanitize(gameID))
	return &football.FixturePayload{
		Get:        fmt.Sprintf("game data for fixture %s", gameID),
		Parameters: map[string]any{"fixture_id": gameID},
		Errors:     football.Errors{fmt.Sprintf("%s: %v", ErrCollectFailed, err)},
		Results:    0,
		Paging:     football.Paging{Current: 1, Total: 1},
		Response:   []football.Fixture{},
	}
}

func (p *Pipeline) fail(r *run, step string, err error) *Result {
	md := p.metadata(r)
	md.ErrorOccurred = true
	md.ErrorStep = step

	logger.Error("Game recap generation failed", err,
		"run_id", r.id,
		"game_id", logger.Sanitize(r.gameID),
		"step", step,
		"duration_s", md.PipelineDuration)

	return &Result{
		Success: false,
		GameID:  r.gameID,
		Error:   err.Error(),
		ResearchData: &ResearchPlaceholder{
			Storylines: []string{},
		},
		Metadata: md,
	}
}

func (p *Pipeline) metadata(r *run) Metadata {
	return Metadata{
		RunID:            r.id,
		GeneratedAt:      time.Now().UTC(),
		PipelineDuration: time.Since(r.start).Seconds(),
		DataSources:      append([]string(nil), p.config.DataSources...),
		ModelUsed:        p.config.Model,
		Stages:           r.stages,
	}
}

func stage[T any](v T, err error) StageResult[T] {
	if err != nil {
		return Failed[T](err)
	}
	return OK(v)
}

func readiness(ok bool) string {
	if ok {
		return agentStatusInitialized
	}
	return agentStatusUnavailable
}

func formatErrors(errs football.Errors) string {
	return "[" + strings.Join(errs, ", ") + "]"
}
