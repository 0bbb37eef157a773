package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/domain/search"
	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
)

type fakeFaceitGateway struct {
	calls []string

	searchFn  func(nickname string, limit int) []ExternalPlayer
	broadFn   func(nickname string, limit int) []ExternalPlayer
	detailFn  func(playerID string) *ExternalPlayer
	lifetime  *ExternalLifetimeStats
	history   []ExternalMatchRef
	matchFn   func(matchID, playerID string) *ExternalMatchStats
	rankingFn func(playerID, region, country string) *int
}

func (f *fakeFaceitGateway) SearchPlayers(_ context.Context, nickname string, limit int) ([]ExternalPlayer, error) {
	f.calls = append(f.calls, "search:"+nickname)
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(nickname, limit), nil
}

func (f *fakeFaceitGateway) SearchPlayersBroad(_ context.Context, nickname string, limit int) ([]ExternalPlayer, error) {
	f.calls = append(f.calls, "broad:"+nickname)
	if f.broadFn == nil {
		return nil, nil
	}
	return f.broadFn(nickname, limit), nil
}

func (f *fakeFaceitGateway) GetPlayer(_ context.Context, playerID string) (*ExternalPlayer, error) {
	f.calls = append(f.calls, "detail:"+playerID)
	if f.detailFn == nil {
		return nil, nil
	}
	return f.detailFn(playerID), nil
}

func (f *fakeFaceitGateway) LifetimeStats(_ context.Context, playerID string) (*ExternalLifetimeStats, error) {
	f.calls = append(f.calls, "lifetime:"+playerID)
	return f.lifetime, nil
}

func (f *fakeFaceitGateway) MatchHistory(_ context.Context, playerID string, limit, offset int) ([]ExternalMatchRef, error) {
	f.calls = append(f.calls, "history:"+playerID)
	return f.history, nil
}

func (f *fakeFaceitGateway) MatchStats(_ context.Context, matchID, playerID string) (*ExternalMatchStats, error) {
	f.calls = append(f.calls, "match:"+matchID)
	if f.matchFn == nil {
		return nil, nil
	}
	return f.matchFn(matchID, playerID), nil
}

func (f *fakeFaceitGateway) PlayerRanking(_ context.Context, playerID, region, country string) (*int, error) {
	f.calls = append(f.calls, "ranking:"+region+":"+country)
	if f.rankingFn == nil {
		return nil, nil
	}
	return f.rankingFn(playerID, region, country), nil
}

type fakeSteamGateway struct {
	vanityFn  func(vanity string) string
	summaryFn func(steamID string) *ExternalSteamProfile
}

func (f *fakeSteamGateway) ResolveVanityURL(_ context.Context, vanity string) (string, error) {
	if f.vanityFn == nil {
		return "", nil
	}
	return f.vanityFn(vanity), nil
}

func (f *fakeSteamGateway) GetPlayerSummary(_ context.Context, steamID string) (*ExternalSteamProfile, error) {
	if f.summaryFn == nil {
		return nil, nil
	}
	return f.summaryFn(steamID), nil
}

type recordingRepo struct {
	upserts []identity.Profile
}

func (r *recordingRepo) Upsert(_ context.Context, profile identity.Profile) error {
	r.upserts = append(r.upserts, profile)
	return nil
}

func (r *recordingRepo) GetByFaceitID(_ context.Context, faceitID string) (identity.Profile, error) {
	return identity.Profile{}, errors.New("not implemented")
}

func (r *recordingRepo) List(_ context.Context, limit int) ([]identity.Profile, error) {
	return nil, nil
}

func externalPlayer(id, nickname string) ExternalPlayer {
	return ExternalPlayer{PlayerID: id, Nickname: nickname}
}

func TestResolvePrefersExactCaseInsensitiveMatch(t *testing.T) {
	gateway := &fakeFaceitGateway{
		searchFn: func(nickname string, _ int) []ExternalPlayer {
			return []ExternalPlayer{
				externalPlayer("p-other", "examplePlayerX"),
				externalPlayer("p-exact", "EXAMPLEplayer"),
			}
		},
	}
	svc := NewResolverService(gateway, nil, nil, logging.NewNop())

	profile, err := svc.Resolve(context.Background(), search.Normalize("examplePlayer"))

	require.NoError(t, err)
	assert.Equal(t, "p-exact", profile.FaceitID)
	assert.True(t, profile.Authoritative)
}

func TestResolveSanitizedRetryStopsLadder(t *testing.T) {
	// Strategy 1 misses on the decorated handle, strategy 2 hits on the
	// sanitized one, and the broad endpoint must never be consulted.
	gateway := &fakeFaceitGateway{
		searchFn: func(nickname string, _ int) []ExternalPlayer {
			if nickname == "NiKo" {
				return []ExternalPlayer{externalPlayer("p-niko", "NiKo")}
			}
			return nil
		},
	}
	svc := NewResolverService(gateway, nil, nil, logging.NewNop())

	profile, err := svc.Resolve(context.Background(), search.Normalize("-NiKo-"))

	require.NoError(t, err)
	assert.Equal(t, "NiKo", profile.Nickname)
	assert.Equal(t, []string{"search:-NiKo-", "search:NiKo", "detail:p-niko"}, gateway.calls)
}

func TestResolveBroadSearchTakesFirstItem(t *testing.T) {
	gateway := &fakeFaceitGateway{
		broadFn: func(nickname string, _ int) []ExternalPlayer {
			return []ExternalPlayer{
				externalPlayer("p-first", "donk666"),
				externalPlayer("p-second", "donk667"),
			}
		},
	}
	svc := NewResolverService(gateway, nil, nil, logging.NewNop())

	profile, err := svc.Resolve(context.Background(), search.Normalize("donk666"))

	require.NoError(t, err)
	assert.Equal(t, "p-first", profile.FaceitID)
}

func TestResolveSteamReverseHop(t *testing.T) {
	gateway := &fakeFaceitGateway{
		searchFn: func(nickname string, _ int) []ExternalPlayer {
			if nickname == "examplePlayer" {
				return []ExternalPlayer{externalPlayer("p-1", "examplePlayer")}
			}
			return nil
		},
	}
	steam := &fakeSteamGateway{
		summaryFn: func(steamID string) *ExternalSteamProfile {
			if steamID != "76561197960287930" {
				return nil
			}
			return &ExternalSteamProfile{SteamID64: steamID, PersonaName: "examplePlayer"}
		},
	}
	svc := NewResolverService(gateway, steam, nil, logging.NewNop())

	profile, err := svc.Resolve(context.Background(), search.Normalize("76561197960287930"))

	require.NoError(t, err)
	assert.Equal(t, "p-1", profile.FaceitID)
	assert.Equal(t, "76561197960287930", profile.SteamID64)
}

func TestResolveExhaustionReturnsNotFound(t *testing.T) {
	gateway := &fakeFaceitGateway{}
	svc := NewResolverService(gateway, nil, nil, logging.NewNop())

	_, err := svc.Resolve(context.Background(), search.Normalize("ghost-player"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveRecordsProfileHistory(t *testing.T) {
	gateway := &fakeFaceitGateway{
		searchFn: func(nickname string, _ int) []ExternalPlayer {
			return []ExternalPlayer{externalPlayer("p-1", "s1mple")}
		},
		detailFn: func(playerID string) *ExternalPlayer {
			return &ExternalPlayer{
				PlayerID:   playerID,
				Nickname:   "s1mple",
				Country:    "ua",
				Region:     "EU",
				Elo:        3512,
				SkillLevel: 10,
				SteamID64:  "76561198034202275",
			}
		},
	}
	repo := &recordingRepo{}
	svc := NewResolverService(gateway, nil, repo, logging.NewNop())

	profile, err := svc.Resolve(context.Background(), search.Normalize("s1mple"))

	require.NoError(t, err)
	require.NotNil(t, profile.Elo)
	assert.Equal(t, 3512, *profile.Elo)
	assert.Equal(t, "EU", profile.Region)
	require.Len(t, repo.upserts, 1)
	assert.Equal(t, "p-1", repo.upserts[0].FaceitID)
}

func TestResolveIdempotentForStableUpstream(t *testing.T) {
	gateway := &fakeFaceitGateway{
		searchFn: func(nickname string, _ int) []ExternalPlayer {
			return []ExternalPlayer{{PlayerID: "p-1", Nickname: "ZywOo", Country: "fr"}}
		},
	}
	svc := NewResolverService(gateway, nil, nil, logging.NewNop())

	first, err := svc.Resolve(context.Background(), search.Normalize("ZywOo"))
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), search.Normalize("ZywOo"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDemoModeServesKnownPlayersOnly(t *testing.T) {
	svc := NewResolverService(nil, nil, nil, logging.NewNop())
	require.True(t, svc.DemoMode())

	profile, err := svc.Resolve(context.Background(), search.Normalize("S1MPLE"))
	require.NoError(t, err)
	assert.Equal(t, "s1mple", profile.Nickname)
	assert.False(t, profile.Authoritative)

	_, err = svc.Resolve(context.Background(), search.Normalize("totally-unknown"))
	assert.ErrorIs(t, err, ErrNotFound)
}
