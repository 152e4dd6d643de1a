// Package render formats pipeline output for the terminal and for files.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"scribe/internal/pipeline"
)

// Output formats accepted by Encode
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ErrUnknownFormat is returned for an unsupported output format
var ErrUnknownFormat = errors.New("unknown output format")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Encode writes v as JSON or YAML. YAML keys follow the JSON field names.
func Encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Title renders a styled heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Field renders a "label: value" line.
func Field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

// List renders a titled bullet list; an empty list renders as "(none)".
func List(title string, items []string) string {
	var b strings.Builder
	b.WriteString(Title(title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}
	for _, item := range items {
		b.WriteString("  - ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// RecapText renders a result for a terminal.
func RecapText(result *pipeline.Result) string {
	var b strings.Builder

	if !result.Success {
		b.WriteString(errStyle.Render("Recap failed"))
		b.WriteString("\n")
		b.WriteString(Field("Game", result.GameID) + "\n")
		b.WriteString(Field("Step", result.Metadata.ErrorStep) + "\n")
		b.WriteString(Field("Error", result.Error) + "\n")
		return b.String()
	}

	b.WriteString(okStyle.Render("Recap generated"))
	b.WriteString("\n")
	b.WriteString(Field("Game", result.GameID) + "\n")
	if result.Article != nil {
		b.WriteString(Field("Headline", result.Article.Headline) + "\n")
		b.WriteString(Field("Words", fmt.Sprintf("%d", result.Article.WordCount)) + "\n")
	}
	b.WriteString(Field("Model", result.Metadata.ModelUsed) + "\n")
	b.WriteString(Field("Duration", fmt.Sprintf("%.2fs", result.Metadata.PipelineDuration)) + "\n\n")

	if result.Research != nil {
		b.WriteString(List("Storylines", result.Research.GameAnalysis))
		b.WriteString(List("Historical context", result.Research.HistoricalContext))
		b.WriteString(List("Player performances", result.Research.PlayerPerformance))
		b.WriteString("\n")
	}

	b.WriteString(result.Content)
	if !strings.HasSuffix(result.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// StatusText renders a status report for a terminal.
func StatusText(status pipeline.StatusReport) string {
	rows := [][]string{
		{"data_collector", status.Agents.DataCollector},
		{"researcher", status.Agents.Researcher},
		{"writer", status.Agents.Writer},
	}

	var b strings.Builder
	b.WriteString(Title("Pipeline "+status.PipelineStatus) + "\n")
	b.WriteString(Table([]string{"Agent", "State"}, rows))
	b.WriteString(Field("Model", status.Configuration.Model) + "\n")
	b.WriteString(Field("Temperature", fmt.Sprintf("%.1f", status.Configuration.Temperature)) + "\n")
	b.WriteString(Field("Max tokens", fmt.Sprintf("%d", status.Configuration.MaxTokens)) + "\n")
	b.WriteString(Field("Data flow", status.DataFlow) + "\n")
	return b.String()
}

// RecapFilename names the saved article for a game.
func RecapFilename(gameID string, at time.Time) string {
	return fmt.Sprintf("recap_%s_%s.md", gameID, at.UTC().Format("2006-01-02"))
}

// WriteRecapToFile writes the provided content to a file in the specified directory
func WriteRecapToFile(content, outputDir, filename string) (string, error) {
	if outputDir == "" {
		outputDir = "recaps" // Default output directory
	}

	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)

	err = os.WriteFile(filePath, []byte(content), 0644)
	if err != nil {
		return "", fmt.Errorf("failed to write recap file %s: %w", filePath, err)
	}

	return filePath, nil
}
