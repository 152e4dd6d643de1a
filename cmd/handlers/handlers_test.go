package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"scribe/internal/config"
	"scribe/internal/fixture"
	"scribe/internal/football"
	"scribe/internal/render"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"recap", "status", "inspect", "fixtures", "analyze", "serve"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_RejectsUnknownOutput(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"status", "--output", "xml"})
	t.Cleanup(func() { output = render.FormatText })

	err := root.Execute()
	if !errors.Is(err, render.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestPipelineConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.AI.Gemini.Model = "gemini-1.5-pro"
	cfg.AI.Gemini.MaxTokens = 4000
	cfg.Pipeline.ArticleType = "game_recap"

	pc := pipelineConfig(cfg)

	if pc.Model != "gemini-1.5-pro" || pc.MaxTokens != 4000 {
		t.Errorf("config = %+v", pc)
	}
	if pc.Temperature != 0.7 {
		t.Errorf("temperature = %v, want default 0.7", pc.Temperature)
	}
	if len(pc.DataSources) != 1 || pc.DataSources[0] != "rapidapi_football" {
		t.Errorf("data sources = %v", pc.DataSources)
	}
}

func TestFixturesText(t *testing.T) {
	two, one := 2, 1
	out := fixturesText([]football.FixtureSummary{
		{ID: 1035037, Date: "2024-05-19T15:00:00+00:00", Status: "FT", HomeTeam: "Arsenal", AwayTeam: "Everton", Home: &two, Away: &one},
		{ID: 1035038, Date: "2024-05-19T15:00:00+00:00", HomeTeam: "Brentford", AwayTeam: "Newcastle"},
	})

	for _, want := range []string{"1035037", "2-1", "Everton", "| -"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if got := fixturesText(nil); got != "No fixtures found.\n" {
		t.Errorf("empty = %q", got)
	}
}

func TestInspectText(t *testing.T) {
	var raw football.FixturePayload
	payload := `{"response": [{
	  "league": {"name": "Premier League", "season": 2023},
	  "teams": {"home": {"id": 10, "name": "Arsenal"}, "away": {"id": 20, "name": "Everton"}},
	  "events": [{"time": {"elapsed": 89}, "team": {"id": 10}, "player": {"id": 3, "name": "Havertz"}, "type": "Goal", "detail": "Normal Goal"}],
	  "lineups": [
	    {"team": {"id": 10}, "formation": "4-3-3", "coach": {"name": "Arteta"},
	     "startXI": [], "substitutes": [{"player": {"id": 3, "name": "Havertz", "number": 29, "pos": "F"}}]}
	  ]
	}]}`
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	teams, err := fixture.ExtractTeamInfo(&raw)
	if err != nil {
		t.Fatal(err)
	}
	players, err := fixture.ExtractPlayerInfo(&raw)
	if err != nil {
		t.Fatal(err)
	}

	out := inspectText(inspection{TeamInfo: teams, PlayerInfo: players})

	for _, want := range []string{"Arsenal vs Everton", "2023", "4-3-3, coach Arteta", "1 home, 0 away, 1 total", "| 89", "Havertz", "Normal Goal"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScore(t *testing.T) {
	three := 3
	if got := score(&three, nil); got != "-" {
		t.Errorf("score = %q", got)
	}
}
