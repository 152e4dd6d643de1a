// Package fixture normalizes a raw API-Football fixture payload into team,
// lineup and player structures for the research step.
package fixture

import (
	"errors"

	"scribe/internal/football"
)

// ErrNoResponseData is returned when the payload carries no fixture record
var ErrNoResponseData = errors.New("No response data available")

// Player status values
const (
	StatusStarted    = "started"
	StatusSubstitute = "substitute"
)

// Event types that mark a key player
const (
	EventGoal = "Goal"
	EventCard = "Card"
)

// TeamInfo is the team/league/lineup view of a fixture.
type TeamInfo struct {
	HomeTeam   football.Team   `json:"home_team"`
	AwayTeam   football.Team   `json:"away_team"`
	League     football.League `json:"league"`
	Season     *int            `json:"season"`
	HomeLineup *Lineup         `json:"home_lineup"`
	AwayLineup *Lineup         `json:"away_lineup"`
}

// Lineup is a team's formation, coach name and listed players.
type Lineup struct {
	Formation   *string                `json:"formation"`
	Coach       *string                `json:"coach"`
	StartXI     []football.LineupEntry `json:"startXI"`
	Substitutes []football.LineupEntry `json:"substitutes"`
}

// MatchEvent is one event attributed to a player.
type MatchEvent struct {
	Type   *string `json:"type"`
	Detail *string `json:"detail"`
	Time   *int    `json:"time"`
	Assist *string `json:"assist"`
}

// Player is a lineup entry merged with the player's match events.
type Player struct {
	ID                int          `json:"id"`
	Name              *string      `json:"name"`
	Number            *int         `json:"number"`
	Position          *string      `json:"position"`
	Team              *string      `json:"team"`
	TeamID            *int         `json:"team_id"`
	Status            string       `json:"status"`
	FormationPosition *string      `json:"formation_position"`
	MatchEvents       []MatchEvent `json:"match_events"`
}

// Clone returns a copy that shares no slices with p.
func (p Player) Clone() Player {
	out := p
	out.MatchEvents = make([]MatchEvent, len(p.MatchEvents))
	copy(out.MatchEvents, p.MatchEvents)
	return out
}

// Achievement is the event that made a player notable.
type Achievement struct {
	Type   *string `json:"type"`
	Detail *string `json:"detail"`
	Time   *int    `json:"time"`
}

// KeyPlayer is a copy of a roster player annotated with one achievement.
type KeyPlayer struct {
	Player
	KeyAchievement Achievement `json:"key_achievement"`
}

// PlayerInfo is the player view of a fixture.
type PlayerInfo struct {
	HomePlayers *Roster     `json:"home_players"`
	AwayPlayers *Roster     `json:"away_players"`
	AllPlayers  *Roster     `json:"all_players"`
	KeyPlayers  []KeyPlayer `json:"key_players"`
}
