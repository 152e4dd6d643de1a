package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/fixture"
	"scribe/internal/football"
	"scribe/internal/render"
)

// inspection is the structured output of the inspect command
type inspection struct {
	TeamInfo   fixture.TeamInfo   `json:"team_info"`
	PlayerInfo fixture.PlayerInfo `json:"player_info"`
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <fixture-id>",
		Short: "Preview team and key-player extraction for a fixture",
		Long: `Fetch a fixture and show what the extractor finds: teams, league,
season, lineups and the key players with their qualifying events. No model
calls are made.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newFootballClient(config.GetFootball())
			if err != nil {
				return err
			}

			raw, err := api.FetchFixture(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch fixture %s: %w", args[0], err)
			}

			teams, err := fixture.ExtractTeamInfo(raw)
			if err != nil {
				return fmt.Errorf("fixture %s: %w", args[0], err)
			}
			players, err := fixture.ExtractPlayerInfo(raw)
			if err != nil {
				return fmt.Errorf("fixture %s: %w", args[0], err)
			}

			view := inspection{TeamInfo: teams, PlayerInfo: players}
			return write(cmd.OutOrStdout(), view, func() string { return inspectText(view) })
		},
	}
}

func inspectText(v inspection) string {
	var b strings.Builder

	home := football.StringValue(v.TeamInfo.HomeTeam.Name)
	away := football.StringValue(v.TeamInfo.AwayTeam.Name)
	b.WriteString(render.Title(fmt.Sprintf("%s vs %s", orDash(home), orDash(away))) + "\n")
	b.WriteString(render.Field("League", orDash(football.StringValue(v.TeamInfo.League.Name))) + "\n")
	b.WriteString(render.Field("Season", intOrDash(v.TeamInfo.Season)) + "\n")
	if l := v.TeamInfo.HomeLineup; l != nil {
		b.WriteString(render.Field("Home", fmt.Sprintf("%s, coach %s", orDash(football.StringValue(l.Formation)), orDash(football.StringValue(l.Coach)))) + "\n")
	}
	if l := v.TeamInfo.AwayLineup; l != nil {
		b.WriteString(render.Field("Away", fmt.Sprintf("%s, coach %s", orDash(football.StringValue(l.Formation)), orDash(football.StringValue(l.Coach)))) + "\n")
	}
	b.WriteString(render.Field("Squads", fmt.Sprintf("%d home, %d away, %d total",
		v.PlayerInfo.HomePlayers.Len(), v.PlayerInfo.AwayPlayers.Len(), v.PlayerInfo.AllPlayers.Len())) + "\n\n")

	b.WriteString(render.Title("Key players") + "\n")
	if len(v.PlayerInfo.KeyPlayers) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}

	rows := make([][]string, 0, len(v.PlayerInfo.KeyPlayers))
	for _, kp := range v.PlayerInfo.KeyPlayers {
		rows = append(rows, []string{
			intOrDash(kp.KeyAchievement.Time),
			orDash(football.StringValue(kp.Name)),
			orDash(football.StringValue(kp.Team)),
			orDash(football.StringValue(kp.KeyAchievement.Type)),
			orDash(football.StringValue(kp.KeyAchievement.Detail)),
		})
	}
	b.WriteString(render.Table([]string{"Min", "Player", "Team", "Event", "Detail"}, rows))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
