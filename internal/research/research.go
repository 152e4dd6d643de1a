// Package research turns fixture data into short analysis lists through the
// LLM capability. No operation here returns an error: a failed model call
// degrades to a one-line fallback and a blank answer to an empty list.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"scribe/internal/football"
	"scribe/internal/llm"
	"scribe/internal/logger"
)

const (
	// FallbackAnalysis is returned when the model call fails
	FallbackAnalysis = "Analysis based on available data"
	// Unavailable fills a moment the model did not provide
	Unavailable = "Unavailable"
)

// ErrUnknownKind is returned by Run for an unsupported analysis kind
var ErrUnknownKind = errors.New("unknown analysis kind")

// Analysis kinds that only need the raw fixture payload.
const (
	KindStorylines    = "storylines"
	KindTurningPoints = "turning-points"
	KindTimeline      = "timeline"
	KindStats         = "stats"
	KindMissedChances = "missed-chances"
	KindFormations    = "formations"
)

// Kinds lists the kinds accepted by Run.
var Kinds = []string{
	KindStorylines, KindTurningPoints, KindTimeline,
	KindStats, KindMissedChances, KindFormations,
}

// Bundle is the research handed to the writer. The three lists are
// produced by separate prompts and never merged.
type Bundle struct {
	GameAnalysis      []string `json:"game_analysis"`
	HistoricalContext []string `json:"historical_context"`
	PlayerPerformance []string `json:"player_performance"`
}

// Moments is the best and worst moment of a match.
type Moments struct {
	BestMoment  string `json:"best_moment"`
	WorstMoment string `json:"worst_moment"`
}

// Researcher runs analysis prompts under one instruction profile.
type Researcher struct {
	runner  llm.Runner
	profile llm.Profile
}

// NewResearcher creates a researcher.
func NewResearcher(runner llm.Runner, profile llm.Profile) *Researcher {
	return &Researcher{runner: runner, profile: profile}
}

// GameAnalysis extracts storylines from the current match only.
func (r *Researcher) GameAnalysis(ctx context.Context, raw *football.FixturePayload) []string {
	logger.Info("Generating storylines from game data")
	prompt := "Extract 3-5 factual storylines from this match only. Do not include anything not explicitly present in the data.\n" +
		encode(raw)
	return r.run(ctx, KindStorylines, prompt)
}

// HistoricalContext extracts background facts from team data only.
func (r *Researcher) HistoricalContext(ctx context.Context, teamData any) []string {
	logger.Info("Analyzing historical context from team data")
	prompt := "Extract 3-5 background facts about the teams using only this data:\n" + encode(teamData)
	return r.run(ctx, "history", prompt)
}

// PlayerPerformance analyzes what players did in this match.
func (r *Researcher) PlayerPerformance(ctx context.Context, playerData any, raw *football.FixturePayload) []string {
	logger.Info("Analyzing player performance from game data")
	prompt := "Analyze what players actually did in this match using the following:\nGame Data:\n" +
		encode(raw) + "\nPlayer Data:\n" + encode(playerData)
	return r.run(ctx, "players", prompt)
}

// Bundle runs the three writer-facing analyses in sequence.
func (r *Researcher) Bundle(ctx context.Context, raw *football.FixturePayload, teamData, playerData any) Bundle {
	return Bundle{
		GameAnalysis:      r.GameAnalysis(ctx, raw),
		HistoricalContext: r.HistoricalContext(ctx, teamData),
		PlayerPerformance: r.PlayerPerformance(ctx, playerData, raw),
	}
}

// TurningPoints identifies game-changing events.
func (r *Researcher) TurningPoints(ctx context.Context, raw *football.FixturePayload) []string {
	prompt := "Identify 2-3 key turning points in this match based on game-changing events (e.g., red cards, late goals).\n" +
		"Use only what's present in this data:\n" + encode(raw)
	return r.run(ctx, KindTurningPoints, prompt)
}

// EventTimeline builds a chronological list of match events.
func (r *Researcher) EventTimeline(ctx context.Context, raw *football.FixturePayload) []string {
	prompt := "Create a chronological timeline of match events with timestamps.\n" +
		"Use only the following game data:\n" + encode(events(raw))
	return r.run(ctx, KindTimeline, prompt)
}

// StatSummary summarizes numeric match statistics.
func (r *Researcher) StatSummary(ctx context.Context, raw *football.FixturePayload) []string {
	prompt := "Summarize numeric match stats (possession, shots, cards, corners, etc.) using only this data:\n" +
		encode(stats(raw))
	return r.run(ctx, KindStats, prompt)
}

// MissedChances lists missed chances and penalties that affected the match.
func (r *Researcher) MissedChances(ctx context.Context, raw *football.FixturePayload) []string {
	prompt := "List all missed chances or penalties that had potential impact on the match based on the following data:\n" +
		encode(raw)
	return r.run(ctx, KindMissedChances, prompt)
}

// Formations reports both teams' formations from the lineups.
func (r *Researcher) Formations(ctx context.Context, raw *football.FixturePayload) []string {
	prompt := "Identify and return team formations (e.g., 4-3-3, 3-5-2) for both teams based on this lineup data:\n" +
		encode(lineups(raw))
	return r.run(ctx, KindFormations, prompt)
}

// BestAndWorstMoments asks for a JSON object with the match's best and
// worst moment. Missing or unparseable answers become Unavailable.
func (r *Researcher) BestAndWorstMoments(ctx context.Context, raw *football.FixturePayload) Moments {
	prompt := "From this match data, provide:\n" +
		"- best_moment (e.g. a decisive goal)\n" +
		"- worst_moment (e.g. a missed penalty)\n" +
		"Output JSON with 'best_moment' and 'worst_moment' keys.\n" + encode(raw)

	out := Moments{BestMoment: Unavailable, WorstMoment: Unavailable}
	text, err := r.runner.Run(ctx, r.profile, prompt)
	if err != nil {
		logger.Error("Error generating best/worst moments", err)
		return out
	}

	var parsed Moments
	if err := json.Unmarshal([]byte(stripFence(text)), &parsed); err != nil {
		logger.Warn("Best/worst moments answer is not JSON", "error", err.Error())
		return out
	}
	if s := strings.TrimSpace(parsed.BestMoment); s != "" {
		out.BestMoment = s
	}
	if s := strings.TrimSpace(parsed.WorstMoment); s != "" {
		out.WorstMoment = s
	}
	return out
}

// Run dispatches one of Kinds.
func (r *Researcher) Run(ctx context.Context, kind string, raw *football.FixturePayload) ([]string, error) {
	switch kind {
	case KindStorylines:
		return r.GameAnalysis(ctx, raw), nil
	case KindTurningPoints:
		return r.TurningPoints(ctx, raw), nil
	case KindTimeline:
		return r.EventTimeline(ctx, raw), nil
	case KindStats:
		return r.StatSummary(ctx, raw), nil
	case KindMissedChances:
		return r.MissedChances(ctx, raw), nil
	case KindFormations:
		return r.Formations(ctx, raw), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKind, kind, strings.Join(Kinds, ", "))
	}
}

func (r *Researcher) run(ctx context.Context, analysis, prompt string) []string {
	text, err := r.runner.Run(ctx, r.profile, prompt)
	if errors.Is(err, llm.ErrEmptyResponse) {
		logger.Warn("Research prompt returned no text", "analysis", analysis)
		return []string{}
	}
	if err != nil {
		logger.Error("Research prompt failed", err, "analysis", analysis)
		return []string{FallbackAnalysis}
	}
	items := Normalize(text)
	logger.Debug("Research prompt completed", "analysis", analysis, "items", len(items))
	return items
}

// encode renders prompt data as indented JSON.
func encode(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func first(raw *football.FixturePayload) *football.Fixture {
	if raw == nil || len(raw.Response) == 0 {
		return nil
	}
	return &raw.Response[0]
}

func events(raw *football.FixturePayload) []football.Event {
	if f := first(raw); f != nil {
		return f.Events
	}
	return nil
}

func lineups(raw *football.FixturePayload) []football.Lineup {
	if f := first(raw); f != nil {
		return f.Lineups
	}
	return nil
}

func stats(raw *football.FixturePayload) map[string]any {
	f := first(raw)
	if f == nil {
		return map[string]any{}
	}
	return map[string]any{
		"goals":      f.Goals,
		"score":      f.Score,
		"statistics": f.Statistics,
	}
}
