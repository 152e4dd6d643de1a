package fixture

import (
	"scribe/internal/football"
	"scribe/internal/logger"
)

// ExtractTeamInfo builds the team view of the first fixture in raw. Missing
// nested fields stay nil. Lineups are assigned by team id; a lineup that
// matches neither side is dropped and a repeated id keeps the last lineup.
func ExtractTeamInfo(raw *football.FixturePayload) (TeamInfo, error) {
	f, ok := first(raw)
	if !ok {
		logger.Warn("No response data found in fixture payload")
		return TeamInfo{}, ErrNoResponseData
	}

	info := TeamInfo{
		HomeTeam: teamOf(f.Teams.Home),
		AwayTeam: teamOf(f.Teams.Away),
	}
	if f.League != nil {
		info.League = *f.League
	}
	info.Season = info.League.Season

	for _, l := range f.Lineups {
		switch {
		case sameID(l.Team.ID, info.HomeTeam.ID):
			info.HomeLineup = lineupOf(l)
		case sameID(l.Team.ID, info.AwayTeam.ID):
			info.AwayLineup = lineupOf(l)
		}
	}

	logger.Info("Extracted team info",
		"home", football.StringValue(info.HomeTeam.Name),
		"away", football.StringValue(info.AwayTeam.Name))
	return info, nil
}

// ExtractPlayerInfo builds the player view of the first fixture in raw.
// Every lineup's starting eleven and substitutes are registered by player
// id (later entries overwrite earlier ones), events are merged per player,
// and the roster is partitioned by the fixture's home and away team ids.
// Players that only appear in events are not added to the roster.
func ExtractPlayerInfo(raw *football.FixturePayload) (PlayerInfo, error) {
	f, ok := first(raw)
	if !ok {
		logger.Warn("No response data found in fixture payload")
		return PlayerInfo{}, ErrNoResponseData
	}

	events := groupEvents(f.Events)

	all := NewRoster()
	for _, l := range f.Lineups {
		for _, e := range l.StartXI {
			if p, ok := playerOf(e.Player, l.Team, StatusStarted); ok {
				p.FormationPosition = e.Player.Grid
				all.Put(p)
			}
		}
		for _, e := range l.Substitutes {
			if p, ok := playerOf(e.Player, l.Team, StatusSubstitute); ok {
				all.Put(p)
			}
		}
	}

	for _, p := range all.Players() {
		p.MatchEvents = events[p.ID]
		if p.MatchEvents == nil {
			p.MatchEvents = []MatchEvent{}
		}
		all.Put(p)
	}

	var homeID, awayID *int
	if f.Teams.Home != nil {
		homeID = f.Teams.Home.ID
	}
	if f.Teams.Away != nil {
		awayID = f.Teams.Away.ID
	}

	info := PlayerInfo{
		HomePlayers: all.Filter(func(p Player) bool { return sameID(p.TeamID, homeID) }),
		AwayPlayers: all.Filter(func(p Player) bool { return sameID(p.TeamID, awayID) }),
		AllPlayers:  all,
		KeyPlayers:  IdentifyKeyPlayers(all, f.Events),
	}

	logger.Info("Extracted player info",
		"players", all.Len(),
		"key_players", len(info.KeyPlayers))
	return info, nil
}

// IdentifyKeyPlayers returns one annotated copy of a roster player per Goal
// or Card event attributed to them, in event order.
func IdentifyKeyPlayers(roster *Roster, events []football.Event) []KeyPlayer {
	out := []KeyPlayer{}
	for _, e := range events {
		t := football.StringValue(e.Type)
		if t != EventGoal && t != EventCard {
			continue
		}
		id := football.IntValue(e.Player.ID)
		if id == 0 {
			continue
		}
		p, ok := roster.Get(id)
		if !ok {
			continue
		}
		out = append(out, KeyPlayer{
			Player: p.Clone(),
			KeyAchievement: Achievement{
				Type:   e.Type,
				Detail: e.Detail,
				Time:   e.Time.Elapsed,
			},
		})
	}
	return out
}

// Season returns response[0].league.season, or nil when any part is missing.
func Season(raw *football.FixturePayload) *int {
	f, ok := first(raw)
	if !ok || f.League == nil {
		return nil
	}
	return f.League.Season
}

func first(raw *football.FixturePayload) (football.Fixture, bool) {
	if raw == nil || len(raw.Response) == 0 {
		return football.Fixture{}, false
	}
	return raw.Response[0], true
}

func teamOf(t *football.Team) football.Team {
	if t == nil {
		return football.Team{}
	}
	return football.Team{ID: t.ID, Name: t.Name, Logo: t.Logo, Winner: t.Winner}
}

func lineupOf(l football.Lineup) *Lineup {
	out := &Lineup{
		Formation:   l.Formation,
		StartXI:     l.StartXI,
		Substitutes: l.Substitutes,
	}
	if l.Coach != nil {
		out.Coach = l.Coach.Name
	}
	if out.StartXI == nil {
		out.StartXI = []football.LineupEntry{}
	}
	if out.Substitutes == nil {
		out.Substitutes = []football.LineupEntry{}
	}
	return out
}

func playerOf(lp football.LineupPlayer, team football.LineupTeam, status string) (Player, bool) {
	id := football.IntValue(lp.ID)
	if id == 0 {
		return Player{}, false
	}
	return Player{
		ID:       id,
		Name:     lp.Name,
		Number:   lp.Number,
		Position: lp.Pos,
		Team:     team.Name,
		TeamID:   team.ID,
		Status:   status,
	}, true
}

// groupEvents collects events per player id. Events without both a player
// id and a player name are ignored.
func groupEvents(events []football.Event) map[int][]MatchEvent {
	out := make(map[int][]MatchEvent)
	for _, e := range events {
		id := football.IntValue(e.Player.ID)
		if id == 0 || football.StringValue(e.Player.Name) == "" {
			continue
		}
		me := MatchEvent{
			Type:   e.Type,
			Detail: e.Detail,
			Time:   e.Time.Elapsed,
		}
		if e.Assist != nil {
			me.Assist = e.Assist.Name
		}
		out[id] = append(out[id], me)
	}
	return out
}

// sameID compares optional ids; two missing ids are equal.
func sameID(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
