// Package writer produces the recap article from the fixture payload and
// the research bundle. Unlike research, failures here are returned.
package writer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"scribe/internal/football"
	"scribe/internal/llm"
	"scribe/internal/logger"
	"scribe/internal/research"
)

// ErrEmptyArticle is returned when the model produced no article text
var ErrEmptyArticle = errors.New("writer returned an empty article")

// Writer generates articles with one instruction profile.
type Writer struct {
	runner  llm.Runner
	profile llm.Profile
}

// New creates a writer.
func New(runner llm.Runner, profile llm.Profile) *Writer {
	return &Writer{runner: runner, profile: profile}
}

// WriteRecap returns the model's article text unchanged.
func (w *Writer) WriteRecap(ctx context.Context, raw *football.FixturePayload, bundle research.Bundle) (string, error) {
	logger.Info("Generating game recap article")

	prompt := BuildRecapPrompt(raw, bundle)
	text, err := w.runner.Run(ctx, w.profile, prompt)
	if err != nil {
		return "", fmt.Errorf("generate recap: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyArticle
	}

	logger.Info("Game recap article generated", "length", len(text))
	return text, nil
}

// BuildRecapPrompt assembles the writer prompt. Each research list keeps its
// own section so background facts are never presented as match events.
func BuildRecapPrompt(raw *football.FixturePayload, bundle research.Bundle) string {
	var b strings.Builder

	b.WriteString("Generate an engaging game recap article based on the following match data and research.\n\n")

	b.WriteString("Match Summary:\n")
	b.WriteString(matchSummary(raw))
	b.WriteString("\n")

	section(&b, "Storylines (this match only)", bundle.GameAnalysis)
	section(&b, "Historical Context (background only, not events of this match)", bundle.HistoricalContext)
	section(&b, "Player Performances (this match only)", bundle.PlayerPerformance)

	b.WriteString("Match Data:\n")
	data, err := json.Marshal(raw)
	if err != nil {
		data = []byte("{}")
	}
	b.Write(data)
	b.WriteString("\n\n")

	b.WriteString(`Requirements:
- Write in an engaging, professional sports journalism style
- Include specific details from the data provided
- Incorporate the key storylines naturally
- Use historical context only as background
- Use active voice and dynamic language
- Include relevant statistics and facts
- Target length: 800-1200 words
- Include a compelling headline

Article:`)
	return b.String()
}

func section(b *strings.Builder, title string, items []string) {
	b.WriteString(title)
	b.WriteString(":\n")
	if len(items) == 0 {
		b.WriteString("- None available\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func matchSummary(raw *football.FixturePayload) string {
	if raw == nil || len(raw.Response) == 0 {
		return "No detailed data available\n"
	}
	f := raw.Response[0]

	home, away := "Home", "Away"
	if f.Teams.Home != nil && f.Teams.Home.Name != nil {
		home = *f.Teams.Home.Name
	}
	if f.Teams.Away != nil && f.Teams.Away.Name != nil {
		away = *f.Teams.Away.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Match: %s vs %s\n", home, away)
	fmt.Fprintf(&b, "Score: %s - %s\n", goals(f.Goals.Home), goals(f.Goals.Away))
	fmt.Fprintf(&b, "Date: %s\n", orUnknown(f.Fixture.Date))
	if f.Fixture.Venue != nil {
		fmt.Fprintf(&b, "Venue: %s\n", orUnknown(f.Fixture.Venue.Name))
	}
	if f.League != nil {
		fmt.Fprintf(&b, "Competition: %s (%s)\n", orUnknown(f.League.Name), orUnknown(f.League.Round))
	}
	return b.String()
}

func goals(g *int) string {
	if g == nil {
		return "?"
	}
	return fmt.Sprint(*g)
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return "Unknown"
	}
	return *s
}
