package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/football"
	"scribe/internal/render"
)

// NewFixturesCmd creates the fixtures command
func NewFixturesCmd() *cobra.Command {
	var (
		league int
		date   string
	)

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "List fixtures for a league on a given day",
		Long: `List fixtures so you can find a fixture id to recap.

Examples:
  scribe fixtures --league 39 --date 2024-05-19
  scribe fixtures --league 140`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newFootballClient(config.GetFootball())
			if err != nil {
				return err
			}

			payload, err := api.FetchFixtures(cmd.Context(), league, date)
			if err != nil {
				return fmt.Errorf("list fixtures: %w", err)
			}

			summaries := payload.Summaries()
			return write(cmd.OutOrStdout(), summaries, func() string { return fixturesText(summaries) })
		},
	}

	cmd.Flags().IntVar(&league, "league", 39, "API-Football league id")
	cmd.Flags().StringVar(&date, "date", time.Now().UTC().Format("2006-01-02"), "match day (YYYY-MM-DD)")

	return cmd
}

func fixturesText(summaries []football.FixtureSummary) string {
	if len(summaries) == 0 {
		return "No fixtures found.\n"
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Date,
			orDash(s.Status),
			orDash(s.HomeTeam),
			score(s.Home, s.Away),
			orDash(s.AwayTeam),
		})
	}
	return render.Table([]string{"ID", "Kickoff", "Status", "Home", "Score", "Away"}, rows)
}

func score(home, away *int) string {
	if home == nil || away == nil {
		return "-"
	}
	return fmt.Sprintf("%d-%d", *home, *away)
}
