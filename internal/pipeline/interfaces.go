package pipeline

import (
	"context"

	"scribe/internal/enrich"
	"scribe/internal/fixture"
	"scribe/internal/football"
	"scribe/internal/research"
)

// FixtureSource fetches the raw fixture payload
type FixtureSource interface {
	// FetchFixture returns the /fixtures payload for one fixture id
	FetchFixture(ctx context.Context, fixtureID string) (*football.FixturePayload, error)
}

// FootballAPI is everything the pipeline needs from the data capability
type FootballAPI interface {
	FixtureSource
	enrich.DataSource
}

// Enricher adds team and player detail to the extracted views
type Enricher interface {
	// CollectTeamData never fails as a whole; failed lookups are marked per slot
	CollectTeamData(ctx context.Context, info fixture.TeamInfo) enrich.EnhancedTeamData

	// CollectPlayerData fails when season is nil
	CollectPlayerData(ctx context.Context, info fixture.PlayerInfo, season *int) (enrich.EnhancedPlayerData, error)
}

// Researcher produces the three analysis lists for the writer.
// Implementations absorb model failures and always return a list.
type Researcher interface {
	// Bundle runs game analysis, historical context and player performance
	// in that order. teamData and playerData may be error records.
	Bundle(ctx context.Context, raw *football.FixturePayload, teamData, playerData any) research.Bundle
}

// ArticleWriter turns fixture data and research into article text
type ArticleWriter interface {
	// WriteRecap returns an error on any failure, including an empty article
	WriteRecap(ctx context.Context, raw *football.FixturePayload, bundle research.Bundle) (string, error)
}
