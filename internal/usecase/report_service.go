package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/domain/search"
	"github.com/riskibarqy/faceit-scope/internal/domain/stats"
	"github.com/riskibarqy/faceit-scope/internal/platform/id"
	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
)

// Report is the assembled answer for one search: resolved identity,
// cross-platform enrichment, and the normalized summary. Optional
// identity fields stay empty/nil rather than carrying invented values.
type Report struct {
	ReportID    string
	Query       search.Query
	Profile     identity.Profile
	Steam       *ExternalSteamProfile
	Stats       stats.Summary
	IsRealData  bool
	GeneratedAt time.Time
}

// NotFoundSuggestions decorates an ErrNotFound outcome with nearest-name
// candidates so the caller can offer alternatives.
type NotFoundSuggestions struct {
	Key         string
	Suggestions []string
}

func (e *NotFoundSuggestions) Error() string {
	return fmt.Sprintf("%v: no profile for %q", ErrNotFound, e.Key)
}

func (e *NotFoundSuggestions) Unwrap() error { return ErrNotFound }

// ReportService runs the whole pipeline: normalize, resolve, aggregate,
// enrich, merge. The merge itself is pure; all I/O happens before it.
type ReportService struct {
	resolver *ResolverService
	stats    *StatsService
	steam    SteamGateway
	idGen    id.Generator
	logger   *logging.Logger
}

func NewReportService(resolver *ResolverService, statsSvc *StatsService, steam SteamGateway, idGen id.Generator, logger *logging.Logger) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	return &ReportService{
		resolver: resolver,
		stats:    statsSvc,
		steam:    steam,
		idGen:    idGen,
		logger:   logger,
	}
}

// Build resolves rawInput end to end. Stats aggregation and Steam
// enrichment are independent once the identity is known, so they run in
// parallel; the identity resolved beforehand stays the single source of
// truth when merging.
func (s *ReportService) Build(ctx context.Context, rawInput string) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Build")
	defer span.End()

	if strings.TrimSpace(rawInput) == "" {
		return Report{}, fmt.Errorf("%w: search input is required", ErrInvalidInput)
	}

	query := search.Normalize(rawInput)
	profile, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Report{}, &NotFoundSuggestions{
				Key:         query.Key,
				Suggestions: s.resolver.Suggestions(ctx, query.Key, defaultSearchLimit),
			}
		}
		return Report{}, err
	}

	var (
		summary      stats.Summary
		statsErr     error
		steamProfile *ExternalSteamProfile
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		summary, statsErr = s.stats.Aggregate(ctx, profile)
	})
	if s.steam != nil && profile.SteamID64 != "" {
		steamID := profile.SteamID64
		wg.Go(func() {
			enriched, err := s.steam.GetPlayerSummary(ctx, steamID)
			if err != nil {
				s.logger.WarnContext(ctx, "steam enrichment failed", "steam_id", steamID, "error", err)
				return
			}
			steamProfile = enriched
		})
	}
	wg.Wait()

	if statsErr != nil {
		return Report{}, statsErr
	}

	return s.assemble(query, profile, steamProfile, summary), nil
}

// assemble is the pure merge. Identity fields win over enrichment;
// enrichment only fills gaps.
func (s *ReportService) assemble(query search.Query, profile identity.Profile, steamProfile *ExternalSteamProfile, summary stats.Summary) Report {
	if steamProfile != nil {
		if profile.AvatarURL == "" {
			profile.AvatarURL = steamProfile.AvatarURL
		}
		if profile.Country == "" {
			profile.Country = strings.ToLower(steamProfile.CountryCode)
		}
	}

	reportID, err := s.idGen.NewID()
	if err != nil {
		reportID = ""
	}

	return Report{
		ReportID:    reportID,
		Query:       query,
		Profile:     profile,
		Steam:       steamProfile,
		Stats:       summary,
		IsRealData:  profile.Authoritative && summary.Real,
		GeneratedAt: time.Now().UTC(),
	}
}
