package football

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FixturePayload is the untouched /fixtures response envelope.
// An empty Response means no usable data, independent of Errors.
type FixturePayload struct {
	Get        string         `json:"get"`
	Parameters map[string]any `json:"parameters"`
	Errors     Errors         `json:"errors"`
	Results    int            `json:"results"`
	Paging     Paging         `json:"paging"`
	Response   []Fixture      `json:"response"`
}

// Paging is the API-Football pagination block.
type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Errors holds API-level error messages. API-Football sends either a list
// or an object keyed by field name; both decode to an ordered list.
type Errors []string

// UnmarshalJSON accepts [], ["msg"], {} and {"field": "msg"}.
func (e *Errors) UnmarshalJSON(data []byte) error {
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(Errors, 0, len(list))
		for _, v := range list {
			out = append(out, fmt.Sprint(v))
		}
		*e = out
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		if string(data) == "null" {
			*e = nil
			return nil
		}
		return fmt.Errorf("errors field is neither list nor object: %w", err)
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Errors, 0, len(obj))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %v", k, obj[k]))
	}
	*e = out
	return nil
}

// Fixture is one match record. Every nested field is optional.
type Fixture struct {
	Fixture    FixtureDetail   `json:"fixture"`
	League     *League         `json:"league"`
	Teams      Teams           `json:"teams"`
	Goals      Goals           `json:"goals"`
	Score      json.RawMessage `json:"score,omitempty"`
	Events     []Event         `json:"events"`
	Lineups    []Lineup        `json:"lineups"`
	Statistics json.RawMessage `json:"statistics,omitempty"`
	Players    json.RawMessage `json:"players,omitempty"`
}

// FixtureDetail is the "fixture" block of a fixture record.
type FixtureDetail struct {
	ID        *int    `json:"id"`
	Referee   *string `json:"referee"`
	Timezone  *string `json:"timezone"`
	Date      *string `json:"date"`
	Timestamp *int64  `json:"timestamp"`
	Venue     *Venue  `json:"venue"`
	Status    *Status `json:"status"`
}

// Venue is where the fixture is played.
type Venue struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
	City *string `json:"city"`
}

// Status is the fixture state, e.g. "Match Finished" / "FT".
type Status struct {
	Long    *string `json:"long"`
	Short   *string `json:"short"`
	Elapsed *int    `json:"elapsed"`
}

// League identifies the competition and season.
type League struct {
	ID      *int    `json:"id"`
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Logo    *string `json:"logo"`
	Flag    *string `json:"flag"`
	Season  *int    `json:"season"`
	Round   *string `json:"round"`
}

// Teams holds the home and away sides.
type Teams struct {
	Home *Team `json:"home"`
	Away *Team `json:"away"`
}

// Team is a side as it appears in teams.home / teams.away.
type Team struct {
	ID     *int    `json:"id"`
	Name   *string `json:"name"`
	Logo   *string `json:"logo"`
	Winner *bool   `json:"winner"`
}

// Goals is the final score.
type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Event is one timeline entry (Goal, Card, subst, Var).
type Event struct {
	Time     EventTime `json:"time"`
	Team     Ref       `json:"team"`
	Player   Ref       `json:"player"`
	Assist   *Ref      `json:"assist"`
	Type     *string   `json:"type"`
	Detail   *string   `json:"detail"`
	Comments *string   `json:"comments"`
}

// EventTime is the minute an event happened.
type EventTime struct {
	Elapsed *int `json:"elapsed"`
	Extra   *int `json:"extra"`
}

// Ref is an {id, name} reference used for teams and players inside events.
type Ref struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// Lineup is a team's starting eleven and bench for a fixture.
type Lineup struct {
	Team        LineupTeam    `json:"team"`
	Formation   *string       `json:"formation"`
	Coach       *Coach        `json:"coach"`
	StartXI     []LineupEntry `json:"startXI"`
	Substitutes []LineupEntry `json:"substitutes"`
}

// LineupTeam identifies the team a lineup belongs to.
type LineupTeam struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
	Logo *string `json:"logo"`
}

// Coach is the lineup's manager.
type Coach struct {
	ID    *int    `json:"id"`
	Name  *string `json:"name"`
	Photo *string `json:"photo"`
}

// LineupEntry wraps one listed player.
type LineupEntry struct {
	Player LineupPlayer `json:"player"`
}

// LineupPlayer is a player as listed in a lineup.
type LineupPlayer struct {
	ID     *int    `json:"id"`
	Name   *string `json:"name"`
	Number *int    `json:"number"`
	Pos    *string `json:"pos"`
	Grid   *string `json:"grid"`
}

// FixtureSummary is a compact row of a /fixtures listing.
type FixtureSummary struct {
	ID       int
	Date     string
	Status   string
	HomeTeam string
	AwayTeam string
	Home     *int
	Away     *int
}

// Summaries condenses a listing payload for display.
func (p *FixturePayload) Summaries() []FixtureSummary {
	out := make([]FixtureSummary, 0, len(p.Response))
	for _, f := range p.Response {
		s := FixtureSummary{
			ID:   IntValue(f.Fixture.ID),
			Date: StringValue(f.Fixture.Date),
			Home: f.Goals.Home,
			Away: f.Goals.Away,
		}
		if f.Fixture.Status != nil {
			s.Status = StringValue(f.Fixture.Status.Short)
		}
		if f.Teams.Home != nil {
			s.HomeTeam = StringValue(f.Teams.Home.Name)
		}
		if f.Teams.Away != nil {
			s.AwayTeam = StringValue(f.Teams.Away.Name)
		}
		out = append(out, s)
	}
	return out
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IntValue dereferences i, returning 0 for nil.
func IntValue(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
