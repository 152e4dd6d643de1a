// Package enrich adds team and player season detail to the extracted
// fixture views. Every lookup is isolated: a failed call only marks its own
// slot.
package enrich

import (
	"context"
	"encoding/json"
	"errors"

	"scribe/internal/fixture"
	"scribe/internal/football"
	"scribe/internal/logger"
)

const (
	keyPlayerLimit       = 5
	samplePlayersPerTeam = 2
)

// ErrSeasonUnavailable is returned when player enrichment has no season to query
var ErrSeasonUnavailable = errors.New("Season not available in raw game data")

// DataSource is the subset of the API-Football client used for enrichment.
type DataSource interface {
	FetchTeam(ctx context.Context, teamID int) (json.RawMessage, error)
	FetchPlayer(ctx context.Context, playerID, season int) (json.RawMessage, error)
}

// Detail is one enrichment slot: the looked-up payload or the reason it is missing.
type Detail struct {
	Payload json.RawMessage
	Err     string
}

// Failed reports whether the lookup behind d failed.
func (d Detail) Failed() bool { return d.Err != "" }

// MarshalJSON encodes the payload, or {"error": reason} for a failed lookup.
func (d Detail) MarshalJSON() ([]byte, error) {
	if d.Err != "" {
		return json.Marshal(map[string]string{"error": d.Err})
	}
	if len(d.Payload) == 0 {
		return []byte("null"), nil
	}
	return d.Payload, nil
}

// TeamDetails holds the per-side team lookups. A nil slot was not attempted.
type TeamDetails struct {
	HomeTeamDetailed *Detail `json:"home_team_detailed,omitempty"`
	AwayTeamDetailed *Detail `json:"away_team_detailed,omitempty"`
}

// EnhancedTeamData is TeamInfo plus team detail lookups.
type EnhancedTeamData struct {
	HomeTeam     football.Team   `json:"home_team"`
	AwayTeam     football.Team   `json:"away_team"`
	League       football.League `json:"league"`
	HomeLineup   *fixture.Lineup `json:"home_lineup"`
	AwayLineup   *fixture.Lineup `json:"away_lineup"`
	EnhancedData TeamDetails     `json:"enhanced_data"`
}

// EnrichedKeyPlayer is a key player copy with its season detail.
type EnrichedKeyPlayer struct {
	fixture.KeyPlayer
	DetailedData Detail `json:"detailed_data"`
}

// EnrichedPlayer is a roster player copy with its season detail.
type EnrichedPlayer struct {
	fixture.Player
	DetailedData Detail `json:"detailed_data"`
}

// EnhancedPlayerData is PlayerInfo plus player detail lookups.
type EnhancedPlayerData struct {
	HomePlayers           *fixture.Roster     `json:"home_players"`
	AwayPlayers           *fixture.Roster     `json:"away_players"`
	AllPlayers            *fixture.Roster     `json:"all_players"`
	KeyPlayers            []fixture.KeyPlayer `json:"key_players"`
	EnhancedKeyPlayers    []EnrichedKeyPlayer `json:"enhanced_key_players"`
	SamplePlayersDetailed []EnrichedPlayer    `json:"sample_players_detailed"`
}

// Collector performs enrichment lookups against a DataSource.
type Collector struct {
	source DataSource
}

// NewCollector creates a collector.
func NewCollector(source DataSource) *Collector {
	return &Collector{source: source}
}

// CollectTeamData looks up home then away team detail. A side without an id
// is skipped; a failed lookup fills only that side with an error.
func (c *Collector) CollectTeamData(ctx context.Context, info fixture.TeamInfo) EnhancedTeamData {
	out := EnhancedTeamData{
		HomeTeam:   info.HomeTeam,
		AwayTeam:   info.AwayTeam,
		League:     info.League,
		HomeLineup: info.HomeLineup,
		AwayLineup: info.AwayLineup,
	}
	out.EnhancedData.HomeTeamDetailed = c.teamDetail(ctx, "home", info.HomeTeam.ID)
	out.EnhancedData.AwayTeamDetailed = c.teamDetail(ctx, "away", info.AwayTeam.ID)
	return out
}

func (c *Collector) teamDetail(ctx context.Context, side string, id *int) *Detail {
	teamID := football.IntValue(id)
	if teamID == 0 {
		return nil
	}
	logger.Info("Collecting team detail", "side", side, "team_id", teamID)
	payload, err := c.source.FetchTeam(ctx, teamID)
	if err != nil {
		logger.Warn("Team detail lookup failed", "side", side, "team_id", teamID, "error", err.Error())
		return &Detail{Err: err.Error()}
	}
	return &Detail{Payload: payload}
}

// CollectPlayerData looks up season detail for the first key players and a
// small sample from each side. It fails with ErrSeasonUnavailable when
// season is nil. A failed key player lookup is kept with an error detail; a
// failed sample lookup drops that sample.
func (c *Collector) CollectPlayerData(ctx context.Context, info fixture.PlayerInfo, season *int) (EnhancedPlayerData, error) {
	if season == nil || *season == 0 {
		logger.Warn("Season not found, skipping player enrichment")
		return EnhancedPlayerData{}, ErrSeasonUnavailable
	}

	out := EnhancedPlayerData{
		HomePlayers:           info.HomePlayers,
		AwayPlayers:           info.AwayPlayers,
		AllPlayers:            info.AllPlayers,
		KeyPlayers:            info.KeyPlayers,
		EnhancedKeyPlayers:    []EnrichedKeyPlayer{},
		SamplePlayersDetailed: []EnrichedPlayer{},
	}

	keyPlayers := info.KeyPlayers
	if len(keyPlayers) > keyPlayerLimit {
		keyPlayers = keyPlayers[:keyPlayerLimit]
	}
	for _, kp := range keyPlayers {
		enriched := EnrichedKeyPlayer{KeyPlayer: kp}
		enriched.Player = kp.Player.Clone()

		payload, err := c.source.FetchPlayer(ctx, kp.ID, *season)
		if err != nil {
			logger.Warn("Key player lookup failed", "player_id", kp.ID, "error", err.Error())
			enriched.DetailedData = Detail{Err: err.Error()}
		} else {
			enriched.DetailedData = Detail{Payload: payload}
		}
		out.EnhancedKeyPlayers = append(out.EnhancedKeyPlayers, enriched)
	}

	for side, roster := range [...]*fixture.Roster{info.HomePlayers, info.AwayPlayers} {
		players := roster.Players()
		if len(players) > samplePlayersPerTeam {
			players = players[:samplePlayersPerTeam]
		}
		for _, p := range players {
			payload, err := c.source.FetchPlayer(ctx, p.ID, *season)
			if err != nil {
				logger.Warn("Sample player lookup failed",
					"side", sideName(side), "player_id", p.ID, "error", err.Error())
				continue
			}
			out.SamplePlayersDetailed = append(out.SamplePlayersDetailed, EnrichedPlayer{
				Player:       p.Clone(),
				DetailedData: Detail{Payload: payload},
			})
		}
	}

	logger.Info("Player enrichment completed",
		"key_players", len(out.EnhancedKeyPlayers),
		"sample_players", len(out.SamplePlayersDetailed))
	return out, nil
}

func sideName(i int) string {
	if i == 0 {
		return "home"
	}
	return "away"
}
