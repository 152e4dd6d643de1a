package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"scribe/internal/football"
)

// MockFootballAPI provides a mock implementation of the API-Football client
type MockFootballAPI struct {
	FetchFixtureFunc  func(ctx context.Context, fixtureID string) (*football.FixturePayload, error)
	FetchFixturesFunc func(ctx context.Context, leagueID int, date string) (*football.FixturePayload, error)
	FetchTeamFunc     func(ctx context.Context, teamID int) (json.RawMessage, error)
	FetchPlayerFunc   func(ctx context.Context, playerID, season int) (json.RawMessage, error)

	mu          sync.Mutex
	TeamCalls   []int
	PlayerCalls []int
}

func (m *MockFootballAPI) FetchFixture(ctx context.Context, fixtureID string) (*football.FixturePayload, error) {
	if m.FetchFixtureFunc != nil {
		return m.FetchFixtureFunc(ctx, fixtureID)
	}
	return &football.FixturePayload{
		Get:        "fixtures",
		Parameters: map[string]any{"id": fixtureID},
		Errors:     football.Errors{},
		Response:   []football.Fixture{},
	}, nil
}

func (m *MockFootballAPI) FetchFixtures(ctx context.Context, leagueID int, date string) (*football.FixturePayload, error) {
	if m.FetchFixturesFunc != nil {
		return m.FetchFixturesFunc(ctx, leagueID, date)
	}
	return &football.FixturePayload{Get: "fixtures", Response: []football.Fixture{}}, nil
}

func (m *MockFootballAPI) FetchTeam(ctx context.Context, teamID int) (json.RawMessage, error) {
	m.mu.Lock()
	m.TeamCalls = append(m.TeamCalls, teamID)
	m.mu.Unlock()

	if m.FetchTeamFunc != nil {
		return m.FetchTeamFunc(ctx, teamID)
	}
	return json.RawMessage(fmt.Sprintf(`{"response":[{"team":{"id":%d,"name":"Mock Team"}}]}`, teamID)), nil
}

func (m *MockFootballAPI) FetchPlayer(ctx context.Context, playerID, season int) (json.RawMessage, error) {
	m.mu.Lock()
	m.PlayerCalls = append(m.PlayerCalls, playerID)
	m.mu.Unlock()

	if m.FetchPlayerFunc != nil {
		return m.FetchPlayerFunc(ctx, playerID, season)
	}
	return json.RawMessage(fmt.Sprintf(`{"response":[{"player":{"id":%d},"season":%d}]}`, playerID, season)), nil
}
