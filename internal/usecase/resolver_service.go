package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/domain/search"
	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
)

const (
	defaultSearchLimit = 5
	broadSearchLimit   = 20
)

// resolutionStrategy is one rung of the fallback ladder. A nil profile
// with a nil error means "no hit here, try the next rung"; errors are
// reserved for configuration-level failures that should stop the ladder.
type resolutionStrategy interface {
	name() string
	tryResolve(ctx context.Context, q search.Query) (*identity.Profile, error)
}

// ResolverService converges free-form queries onto a single Faceit
// profile by walking an ordered list of lookup strategies.
type ResolverService struct {
	faceit FaceitGateway
	steam  SteamGateway
	repo   identity.Repository
	logger *logging.Logger
	demo   *demoCatalog
}

// NewResolverService wires the ladder. A nil faceit gateway means no API
// credential is configured; the service then serves only the clearly
// flagged demo catalog.
func NewResolverService(faceit FaceitGateway, steam SteamGateway, repo identity.Repository, logger *logging.Logger) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &ResolverService{
		faceit: faceit,
		steam:  steam,
		repo:   repo,
		logger: logger,
	}
	if faceit == nil {
		s.demo = newDemoCatalog()
		logger.Warn("faceit api key missing, resolver running in demo mode",
			"mode", "placeholder",
		)
	}
	return s
}

// DemoMode reports whether the service answers from the placeholder
// catalog instead of the live API.
func (s *ResolverService) DemoMode() bool {
	return s.demo != nil
}

// Resolve walks the strategy ladder in order; the first non-empty result
// wins and no merging happens across rungs. Total exhaustion maps to
// ErrNotFound, never to a fabricated profile.
func (s *ResolverService) Resolve(ctx context.Context, q search.Query) (identity.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.Resolve")
	defer span.End()

	if strings.TrimSpace(q.Key) == "" {
		return identity.Profile{}, fmt.Errorf("%w: search key is required", ErrInvalidInput)
	}

	for _, strategy := range s.ladder() {
		profile, err := strategy.tryResolve(ctx, q)
		if err != nil {
			return identity.Profile{}, fmt.Errorf("strategy %s: %w", strategy.name(), err)
		}
		if profile == nil {
			s.logger.DebugContext(ctx, "resolution strategy missed",
				"strategy", strategy.name(),
				"key", q.Key,
			)
			continue
		}

		s.logger.InfoContext(ctx, "identity resolved",
			"strategy", strategy.name(),
			"faceit_id", profile.FaceitID,
			"nickname", profile.Nickname,
			"authoritative", profile.Authoritative,
		)
		resolved := s.enrich(ctx, *profile)
		s.record(ctx, resolved)
		return resolved, nil
	}

	return identity.Profile{}, fmt.Errorf("%w: no profile for %q", ErrNotFound, q.Key)
}

func (s *ResolverService) ladder() []resolutionStrategy {
	if s.faceit == nil {
		return []resolutionStrategy{&demoStrategy{catalog: s.demo}}
	}
	return []resolutionStrategy{
		&directSearchStrategy{svc: s},
		&sanitizedSearchStrategy{svc: s},
		&broadSearchStrategy{svc: s},
		&steamReverseStrategy{svc: s},
	}
}

// resolveByNickname runs only the forward search rungs. The steam
// reverse strategy recurses through this, which structurally limits the
// pipeline to a single reverse hop.
func (s *ResolverService) resolveByNickname(ctx context.Context, nickname string) (*identity.Profile, error) {
	q := search.Query{Raw: nickname, Kind: search.KindNickname, Key: nickname}
	forward := []resolutionStrategy{
		&directSearchStrategy{svc: s},
		&sanitizedSearchStrategy{svc: s},
		&broadSearchStrategy{svc: s},
	}
	for _, strategy := range forward {
		profile, err := strategy.tryResolve(ctx, q)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			return profile, nil
		}
	}
	return nil, nil
}

// enrich fetches the player detail opportunistically. Missing enrichment
// never downgrades a resolution to failure.
func (s *ResolverService) enrich(ctx context.Context, profile identity.Profile) identity.Profile {
	if s.faceit == nil || !profile.Authoritative {
		return profile
	}

	detail, err := s.faceit.GetPlayer(ctx, profile.FaceitID)
	if err != nil || detail == nil {
		if err != nil {
			s.logger.WarnContext(ctx, "profile detail enrichment failed",
				"faceit_id", profile.FaceitID,
				"error", err,
			)
		}
		return profile
	}

	if profile.SteamID64 == "" {
		profile.SteamID64 = detail.SteamID64
	}
	if profile.Country == "" {
		profile.Country = detail.Country
	}
	if profile.Region == "" {
		profile.Region = detail.Region
	}
	if profile.AvatarURL == "" {
		profile.AvatarURL = detail.AvatarURL
	}
	if profile.Elo == nil && detail.Elo > 0 {
		elo := detail.Elo
		profile.Elo = &elo
	}
	if profile.SkillLevel == nil && detail.SkillLevel > 0 {
		level := detail.SkillLevel
		profile.SkillLevel = &level
	}
	return profile
}

// record upserts the resolved profile as history. Storage trouble is
// logged, never surfaced; the resolution already succeeded.
func (s *ResolverService) record(ctx context.Context, profile identity.Profile) {
	if s.repo == nil || !profile.Authoritative {
		return
	}
	if err := profile.Validate(); err != nil {
		s.logger.WarnContext(ctx, "skip recording invalid profile", "error", err)
		return
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		s.logger.WarnContext(ctx, "record resolved profile failed",
			"faceit_id", profile.FaceitID,
			"error", err,
		)
	}
}

// Suggestions returns nearest-name candidates for a key that failed to
// resolve. Convenience only; an empty slice is a valid answer.
func (s *ResolverService) Suggestions(ctx context.Context, key string, limit int) []string {
	if s.faceit == nil {
		return nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	candidates, err := s.faceit.SearchPlayersBroad(ctx, key, limit)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Nickname != "" {
			names = append(names, candidate.Nickname)
		}
	}
	return names
}

type directSearchStrategy struct {
	svc *ResolverService
}

func (st *directSearchStrategy) name() string { return "direct_nickname" }

func (st *directSearchStrategy) tryResolve(ctx context.Context, q search.Query) (*identity.Profile, error) {
	if q.Kind == search.KindSteamID {
		return nil, nil
	}
	return st.svc.searchExact(ctx, q.Key)
}

type sanitizedSearchStrategy struct {
	svc *ResolverService
}

func (st *sanitizedSearchStrategy) name() string { return "sanitized_nickname" }

func (st *sanitizedSearchStrategy) tryResolve(ctx context.Context, q search.Query) (*identity.Profile, error) {
	if q.Kind == search.KindSteamID {
		return nil, nil
	}
	sanitized := search.SanitizeKey(q.Key)
	if sanitized == "" || sanitized == q.Key {
		return nil, nil
	}
	return st.svc.searchExact(ctx, sanitized)
}

type broadSearchStrategy struct {
	svc *ResolverService
}

func (st *broadSearchStrategy) name() string { return "broad_search" }

func (st *broadSearchStrategy) tryResolve(ctx context.Context, q search.Query) (*identity.Profile, error) {
	if q.Kind == search.KindSteamID {
		return nil, nil
	}
	candidates, err := st.svc.faceit.SearchPlayersBroad(ctx, q.Key, broadSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	// The endpoint orders by relevance; trust it.
	profile := mapExternalProfile(candidates[0])
	return &profile, nil
}

type steamReverseStrategy struct {
	svc *ResolverService
}

func (st *steamReverseStrategy) name() string { return "steam_reverse" }

func (st *steamReverseStrategy) tryResolve(ctx context.Context, q search.Query) (*identity.Profile, error) {
	if st.svc.steam == nil {
		return nil, nil
	}

	steamID := ""
	switch {
	case q.Kind == search.KindSteamID:
		steamID = q.Key
	case q.SteamVanity != "":
		resolved, err := st.svc.steam.ResolveVanityURL(ctx, q.SteamVanity)
		if err != nil {
			return nil, err
		}
		steamID = resolved
	}
	if steamID == "" {
		return nil, nil
	}

	summary, err := st.svc.steam.GetPlayerSummary(ctx, steamID)
	if err != nil {
		return nil, err
	}
	if summary == nil || summary.PersonaName == "" {
		return nil, nil
	}

	profile, err := st.svc.resolveByNickname(ctx, summary.PersonaName)
	if err != nil || profile == nil {
		return nil, err
	}
	if profile.SteamID64 == "" {
		profile.SteamID64 = steamID
	}
	return profile, nil
}

// searchExact runs the direct lookup and applies the candidate
// preference: exact case-insensitive nickname first, else the first
// candidate in API order.
func (s *ResolverService) searchExact(ctx context.Context, key string) (*identity.Profile, error) {
	candidates, err := s.faceit.SearchPlayers(ctx, key, defaultSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	chosen := candidates[0]
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.Nickname, key) {
			chosen = candidate
			break
		}
	}
	profile := mapExternalProfile(chosen)
	return &profile, nil
}

func mapExternalProfile(player ExternalPlayer) identity.Profile {
	profile := identity.Profile{
		FaceitID:      player.PlayerID,
		Nickname:      player.Nickname,
		SteamID64:     player.SteamID64,
		Country:       player.Country,
		Region:        player.Region,
		AvatarURL:     player.AvatarURL,
		Authoritative: true,
	}
	if player.Elo > 0 {
		elo := player.Elo
		profile.Elo = &elo
	}
	if player.SkillLevel > 0 {
		level := player.SkillLevel
		profile.SkillLevel = &level
	}
	return profile
}
