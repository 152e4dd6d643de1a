package fixture

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"scribe/internal/football"
)

const matchJSON = `{
  "results": 1,
  "errors": [],
  "response": [{
    "fixture": {"id": 1001},
    "league": {"id": 39, "name": "Premier League", "season": 2023, "round": "Regular Season - 5"},
    "teams": {
      "home": {"id": 10, "name": "Arsenal", "logo": "a.png", "winner": true},
      "away": {"id": 20, "name": "Chelsea", "logo": "c.png", "winner": false}
    },
    "events": [
      {"time": {"elapsed": 12}, "team": {"id": 10, "name": "Arsenal"}, "player": {"id": 1, "name": "Saka"}, "assist": {"id": 2, "name": "Odegaard"}, "type": "Goal", "detail": "Normal Goal"},
      {"time": {"elapsed": 30}, "team": {"id": 20, "name": "Chelsea"}, "player": {"id": 5, "name": "Enzo"}, "assist": {"id": null, "name": null}, "type": "Card", "detail": "Yellow Card"},
      {"time": {"elapsed": 55}, "team": {"id": 10, "name": "Arsenal"}, "player": {"id": 1, "name": "Saka"}, "assist": null, "type": "Goal", "detail": "Penalty"},
      {"time": {"elapsed": 60}, "team": {"id": 10, "name": "Arsenal"}, "player": {"id": 2, "name": "Odegaard"}, "assist": {"id": 3, "name": "Trossard"}, "type": "subst", "detail": "Substitution 1"},
      {"time": {"elapsed": 70}, "team": {"id": 20, "name": "Chelsea"}, "player": {"id": 99, "name": "Unlisted"}, "type": "Goal", "detail": "Normal Goal"},
      {"time": {"elapsed": 80}, "team": {"id": 20, "name": "Chelsea"}, "player": {"id": 6, "name": null}, "type": "Card", "detail": "Red Card"}
    ],
    "lineups": [
      {
        "team": {"id": 10, "name": "Arsenal"},
        "formation": "4-3-3",
        "coach": {"id": 7, "name": "Arteta"},
        "startXI": [
          {"player": {"id": 1, "name": "Saka", "number": 7, "pos": "F", "grid": "4:3"}},
          {"player": {"id": 2, "name": "Odegaard", "number": 8, "pos": "M", "grid": "3:2"}}
        ],
        "substitutes": [
          {"player": {"id": 3, "name": "Trossard", "number": 19, "pos": "F", "grid": null}}
        ]
      },
      {
        "team": {"id": 20, "name": "Chelsea"},
        "formation": "4-2-3-1",
        "coach": {"id": 8, "name": "Pochettino"},
        "startXI": [
          {"player": {"id": 5, "name": "Enzo", "number": 8, "pos": "M", "grid": "2:1"}},
          {"player": {"id": 6, "name": "Caicedo", "number": 25, "pos": "M", "grid": "2:2"}}
        ],
        "substitutes": []
      },
      {
        "team": {"id": 30, "name": "Someone Else"},
        "formation": "5-4-1",
        "startXI": [{"player": {"id": 40, "name": "Stray", "number": 1, "pos": "G", "grid": "1:1"}}],
        "substitutes": []
      }
    ]
  }]
}`

func decode(t *testing.T, s string) *football.FixturePayload {
	t.Helper()
	var p football.FixturePayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return &p
}

func TestExtract_EmptyResponse(t *testing.T) {
	payloads := map[string]*football.FixturePayload{
		"nil":            nil,
		"empty response": {Response: []football.Fixture{}},
		"with errors":    {Errors: football.Errors{"rate limited"}, Results: 0},
	}
	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			if _, err := ExtractTeamInfo(p); !errors.Is(err, ErrNoResponseData) {
				t.Errorf("ExtractTeamInfo err = %v", err)
			}
			if _, err := ExtractPlayerInfo(p); !errors.Is(err, ErrNoResponseData) {
				t.Errorf("ExtractPlayerInfo err = %v", err)
			}
		})
	}
	if ErrNoResponseData.Error() != "No response data available" {
		t.Errorf("unexpected message %q", ErrNoResponseData)
	}
}

func TestExtractTeamInfo(t *testing.T) {
	info, err := ExtractTeamInfo(decode(t, matchJSON))
	if err != nil {
		t.Fatalf("ExtractTeamInfo: %v", err)
	}

	if football.StringValue(info.HomeTeam.Name) != "Arsenal" || football.StringValue(info.AwayTeam.Name) != "Chelsea" {
		t.Errorf("unexpected teams %+v / %+v", info.HomeTeam, info.AwayTeam)
	}
	if info.Season == nil || *info.Season != 2023 {
		t.Errorf("season = %v", info.Season)
	}
	if football.StringValue(info.League.Round) != "Regular Season - 5" {
		t.Errorf("round = %v", info.League.Round)
	}
	if info.HomeLineup == nil || football.StringValue(info.HomeLineup.Coach) != "Arteta" {
		t.Fatalf("home lineup = %+v", info.HomeLineup)
	}
	if football.StringValue(info.AwayLineup.Formation) != "4-2-3-1" {
		t.Errorf("away formation = %v", info.AwayLineup.Formation)
	}
	if len(info.HomeLineup.StartXI) != 2 || len(info.HomeLineup.Substitutes) != 1 {
		t.Errorf("home lineup sizes %d/%d", len(info.HomeLineup.StartXI), len(info.HomeLineup.Substitutes))
	}
}

func TestExtractTeamInfo_MissingFields(t *testing.T) {
	info, err := ExtractTeamInfo(decode(t, `{"response": [{"fixture": {}}]}`))
	if err != nil {
		t.Fatalf("ExtractTeamInfo: %v", err)
	}
	if info.HomeTeam.ID != nil || info.AwayTeam.Name != nil || info.Season != nil {
		t.Errorf("expected null fields, got %+v", info)
	}
	if info.HomeLineup != nil || info.AwayLineup != nil {
		t.Errorf("expected no lineups")
	}

	b, err := json.Marshal(info)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"home_lineup":null`) || !strings.Contains(string(b), `"season":null`) {
		t.Errorf("unexpected JSON %s", b)
	}
}

func TestExtractTeamInfo_RepeatedLineupKeepsLast(t *testing.T) {
	raw := decode(t, `{"response": [{
		"teams": {"home": {"id": 1}, "away": {"id": 2}},
		"lineups": [
			{"team": {"id": 1}, "formation": "4-4-2"},
			{"team": {"id": 1}, "formation": "3-5-2"}
		]
	}]}`)
	info, err := ExtractTeamInfo(raw)
	if err != nil {
		t.Fatal(err)
	}
	if football.StringValue(info.HomeLineup.Formation) != "3-5-2" {
		t.Errorf("formation = %v", info.HomeLineup.Formation)
	}
	if info.AwayLineup != nil {
		t.Errorf("away lineup should be nil")
	}
	if info.HomeLineup.StartXI == nil || info.HomeLineup.Coach != nil {
		t.Errorf("unexpected lineup defaults %+v", info.HomeLineup)
	}
}

func TestExtractPlayerInfo(t *testing.T) {
	info, err := ExtractPlayerInfo(decode(t, matchJSON))
	if err != nil {
		t.Fatalf("ExtractPlayerInfo: %v", err)
	}

	if info.AllPlayers.Len() != 6 {
		t.Errorf("all players = %d, want 6", info.AllPlayers.Len())
	}
	if info.HomePlayers.Len() != 3 || info.AwayPlayers.Len() != 2 {
		t.Errorf("home/away = %d/%d", info.HomePlayers.Len(), info.AwayPlayers.Len())
	}

	// The stray lineup player stays in the roster but in neither partition.
	if _, ok := info.AllPlayers.Get(40); !ok {
		t.Error("stray player missing from all_players")
	}
	if _, ok := info.HomePlayers.Get(40); ok {
		t.Error("stray player in home partition")
	}

	// Event-only players are dropped.
	if _, ok := info.AllPlayers.Get(99); ok {
		t.Error("event-only player added to roster")
	}

	saka, _ := info.AllPlayers.Get(1)
	if saka.Status != StatusStarted || football.StringValue(saka.FormationPosition) != "4:3" {
		t.Errorf("saka = %+v", saka)
	}
	if len(saka.MatchEvents) != 2 || football.StringValue(saka.MatchEvents[0].Assist) != "Odegaard" || saka.MatchEvents[1].Assist != nil {
		t.Errorf("saka events = %+v", saka.MatchEvents)
	}

	trossard, _ := info.AllPlayers.Get(3)
	if trossard.Status != StatusSubstitute || trossard.FormationPosition != nil {
		t.Errorf("trossard = %+v", trossard)
	}
	if trossard.MatchEvents == nil || len(trossard.MatchEvents) != 0 {
		t.Errorf("trossard events should be empty, got %v", trossard.MatchEvents)
	}

	// Caicedo's card event has no player name so it is not grouped.
	caicedo, _ := info.AllPlayers.Get(6)
	if len(caicedo.MatchEvents) != 0 {
		t.Errorf("caicedo events = %+v", caicedo.MatchEvents)
	}
}

func TestKeyPlayers_OnePerQualifyingEvent(t *testing.T) {
	info, err := ExtractPlayerInfo(decode(t, matchJSON))
	if err != nil {
		t.Fatal(err)
	}

	// Saka goal, Enzo card, Saka goal, Caicedo card. The subst and the
	// unlisted scorer do not qualify.
	want := []struct {
		id     int
		detail string
	}{
		{1, "Normal Goal"},
		{5, "Yellow Card"},
		{1, "Penalty"},
		{6, "Red Card"},
	}
	if len(info.KeyPlayers) != len(want) {
		t.Fatalf("key players = %d, want %d", len(info.KeyPlayers), len(want))
	}
	for i, w := range want {
		kp := info.KeyPlayers[i]
		if kp.ID != w.id || football.StringValue(kp.KeyAchievement.Detail) != w.detail {
			t.Errorf("key player %d = %d/%s, want %d/%s", i, kp.ID,
				football.StringValue(kp.KeyAchievement.Detail), w.id, w.detail)
		}
	}
}

func TestKeyPlayers_AreCopies(t *testing.T) {
	info, err := ExtractPlayerInfo(decode(t, matchJSON))
	if err != nil {
		t.Fatal(err)
	}
	info.KeyPlayers[0].MatchEvents[0].Detail = nil
	info.KeyPlayers[0].Status = "changed"

	saka, _ := info.AllPlayers.Get(1)
	if saka.Status != StatusStarted || saka.MatchEvents[0].Detail == nil {
		t.Error("mutating a key player changed the roster entry")
	}
}

func TestExtractPlayerInfo_DuplicateIDLastWriteWins(t *testing.T) {
	raw := decode(t, `{"response": [{
		"teams": {"home": {"id": 1}, "away": {"id": 2}},
		"lineups": [
			{"team": {"id": 1, "name": "Home"}, "startXI": [], "substitutes": [
				{"player": {"id": 9, "name": "First", "number": 12, "pos": "D"}}
			]},
			{"team": {"id": 2, "name": "Away"}, "startXI": [], "substitutes": [
				{"player": {"id": 9, "name": "Second", "number": 21, "pos": "M"}}
			]}
		]
	}]}`)
	info, err := ExtractPlayerInfo(raw)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := info.AllPlayers.Get(9)
	if !ok {
		t.Fatal("player 9 missing")
	}
	if football.StringValue(p.Name) != "Second" || football.IntValue(p.Number) != 21 ||
		football.StringValue(p.Team) != "Away" || p.Status != StatusSubstitute {
		t.Errorf("expected later lineup to win, got %+v", p)
	}
	if info.HomePlayers.Len() != 0 || info.AwayPlayers.Len() != 1 {
		t.Errorf("home/away = %d/%d", info.HomePlayers.Len(), info.AwayPlayers.Len())
	}
}

func TestSeason(t *testing.T) {
	if s := Season(decode(t, matchJSON)); s == nil || *s != 2023 {
		t.Errorf("season = %v", s)
	}
	if s := Season(decode(t, `{"response": [{"league": {"id": 1}}]}`)); s != nil {
		t.Errorf("season should be nil, got %v", *s)
	}
	if s := Season(decode(t, `{"response": [{}]}`)); s != nil {
		t.Errorf("season should be nil without league")
	}
	if s := Season(nil); s != nil {
		t.Errorf("season should be nil for nil payload")
	}
}

func TestSameID(t *testing.T) {
	one, other := 1, 1
	two := 2
	tests := []struct {
		a, b *int
		want bool
	}{
		{nil, nil, true},
		{&one, nil, false},
		{nil, &one, false},
		{&one, &other, true},
		{&one, &two, false},
	}
	for _, tt := range tests {
		if got := sameID(tt.a, tt.b); got != tt.want {
			t.Errorf("sameID(%v, %v) = %v", tt.a, tt.b, got)
		}
	}
}
