package usecase

import "context"

// FaceitGateway is the read-only surface of the Faceit open data API that
// the resolver and the aggregator depend on. Every method resolves to a
// value or a typed absence; expected upstream failure modes (404, rate
// limit, timeout) never surface as errors here.
type FaceitGateway interface {
	// SearchPlayers queries the player search endpoint with an exact
	// nickname. An empty slice means no candidates.
	SearchPlayers(ctx context.Context, nickname string, limit int) ([]ExternalPlayer, error)
	// SearchPlayersBroad queries the wider fuzzy search endpoint.
	SearchPlayersBroad(ctx context.Context, nickname string, limit int) ([]ExternalPlayer, error)
	// GetPlayer fetches the full player detail. Nil when absent.
	GetPlayer(ctx context.Context, playerID string) (*ExternalPlayer, error)
	// LifetimeStats returns the lifetime totals payload, nil when absent.
	LifetimeStats(ctx context.Context, playerID string) (*ExternalLifetimeStats, error)
	// MatchHistory lists the most recent matches, newest first.
	MatchHistory(ctx context.Context, playerID string, limit, offset int) ([]ExternalMatchRef, error)
	// MatchStats fetches one match and extracts the given player's line.
	// Nil when the match or the player's line is absent.
	MatchStats(ctx context.Context, matchID, playerID string) (*ExternalMatchStats, error)
	// PlayerRanking returns the player's ladder position for a region,
	// optionally filtered by country. Nil when no entry exists.
	PlayerRanking(ctx context.Context, playerID, region, country string) (*int, error)
}

// SteamGateway is the Steam Web API surface used for cross-platform
// enrichment and reverse lookups.
type SteamGateway interface {
	// ResolveVanityURL translates a vanity path segment into a SteamID64.
	// Empty string when the vanity does not resolve.
	ResolveVanityURL(ctx context.Context, vanity string) (string, error)
	// GetPlayerSummary fetches the public profile. Nil when absent.
	GetPlayerSummary(ctx context.Context, steamID64 string) (*ExternalSteamProfile, error)
}

// ExternalPlayer is one Faceit player as returned by search or detail
// endpoints. SkillLevel and Elo are zero when the payload omits them.
type ExternalPlayer struct {
	PlayerID   string
	Nickname   string
	Country    string
	Region     string
	AvatarURL  string
	SteamID64  string
	SkillLevel int
	Elo        int
}

// ExternalLifetimeStats carries the coerced lifetime totals plus the raw
// labeled fields for anything the typed view does not cover.
type ExternalLifetimeStats struct {
	Matches       int
	Wins          int
	Losses        int
	WinRatePct    float64
	KDRatio       float64
	AvgKills      float64
	AvgDeaths     float64
	AvgAssists    float64
	LongestWin    int
	CurrentWin    int
	LongestLoss   int
	TripleKills   int
	QuadroKills   int
	PentaKills    int
	RecentResults []string
}

// ExternalMatchRef is one entry from the match history feed.
type ExternalMatchRef struct {
	MatchID    string
	FinishedAt int64
	Won        bool
	// KnownResult is false when the winner sentinel was missing; the
	// outcome then needs the match-stats fetch or stays unknown.
	KnownResult bool
}

// ExternalMatchStats is a single player's line from match detail stats.
type ExternalMatchStats struct {
	MatchID string
	Map     string
	Kills   int
	Deaths  int
	Assists int
	Won     bool
}

// ExternalSteamProfile is a Steam player summary.
type ExternalSteamProfile struct {
	SteamID64   string
	PersonaName string
	ProfileURL  string
	AvatarURL   string
	CountryCode string
}
