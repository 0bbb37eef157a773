package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/domain/stats"
	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
)

const (
	defaultHistoryLimit    = 20
	defaultHydrationWorker = 4
)

// StatsService derives the normalized statistics summary for a resolved
// profile. Data availability, not caller intent, picks the computation
// path: recent match batch first, lifetime totals second, and the fixed
// placeholder set when neither yields anything.
type StatsService struct {
	faceit       FaceitGateway
	logger       *logging.Logger
	historyLimit int
	workers      int
}

func NewStatsService(faceit FaceitGateway, historyLimit, workers int, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	if workers <= 0 {
		workers = defaultHydrationWorker
	}
	return &StatsService{
		faceit:       faceit,
		logger:       logger,
		historyLimit: historyLimit,
		workers:      workers,
	}
}

// Aggregate always returns a complete, internally consistent summary.
// Upstream failure modes degrade through the paths instead of erroring;
// Summary.Real tells placeholder output apart from measured output.
func (s *StatsService) Aggregate(ctx context.Context, profile identity.Profile) (stats.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Aggregate")
	defer span.End()

	if strings.TrimSpace(profile.FaceitID) == "" {
		return stats.Summary{}, fmt.Errorf("%w: faceit id is required", ErrInvalidInput)
	}
	if s.faceit == nil || !profile.Authoritative {
		return stats.Placeholder(), nil
	}

	if summary, ok := s.fromMatchBatch(ctx, profile.FaceitID); ok {
		s.attachRankings(ctx, profile, &summary)
		return summary, nil
	}
	if summary, ok := s.fromLifetime(ctx, profile.FaceitID); ok {
		s.attachRankings(ctx, profile, &summary)
		return summary, nil
	}

	s.logger.WarnContext(ctx, "no upstream stats available, serving placeholder summary",
		"faceit_id", profile.FaceitID,
	)
	return stats.Placeholder(), nil
}

// fromMatchBatch hydrates the recent match feed into records and
// aggregates them. Match-detail fetches run on a bounded worker pool;
// a missing detail line degrades that record to zeros plus whatever the
// history feed knew, never the whole batch.
func (s *StatsService) fromMatchBatch(ctx context.Context, faceitID string) (stats.Summary, bool) {
	refs, err := s.faceit.MatchHistory(ctx, faceitID, s.historyLimit, 0)
	if err != nil {
		s.logger.WarnContext(ctx, "match history fetch failed", "faceit_id", faceitID, "error", err)
		return stats.Summary{}, false
	}
	if len(refs) == 0 {
		return stats.Summary{}, false
	}

	records := make([]stats.MatchRecord, len(refs))
	for i, ref := range refs {
		records[i] = stats.MatchRecord{
			MatchID: ref.MatchID,
			Result:  stats.ResultUnknown,
		}
		if ref.FinishedAt > 0 {
			finished := time.Unix(ref.FinishedAt, 0).UTC()
			records[i].FinishedAt = &finished
		}
		if ref.KnownResult {
			records[i].Result = matchResult(ref.Won)
		}
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		s.logger.WarnContext(ctx, "create hydration pool failed", "error", err)
		return stats.Summary{}, false
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, ref := range refs {
		i, ref := i, ref
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			line, err := s.faceit.MatchStats(ctx, ref.MatchID, faceitID)
			if err != nil || line == nil {
				if err != nil {
					s.logger.WarnContext(ctx, "match stats fetch failed",
						"match_id", ref.MatchID,
						"error", err,
					)
				}
				return
			}
			records[i].Map = line.Map
			records[i].Kills = line.Kills
			records[i].Deaths = line.Deaths
			records[i].Assists = line.Assists
			if records[i].Result == stats.ResultUnknown {
				records[i].Result = matchResult(line.Won)
			}
		}); err != nil {
			workers.Done()
			s.logger.WarnContext(ctx, "submit hydration task failed", "error", err)
		}
	}
	workers.Wait()

	return stats.Summarize(records), true
}

// fromLifetime maps the labeled lifetime totals through the defensive
// parse policy and the K/D sanity correction.
func (s *StatsService) fromLifetime(ctx context.Context, faceitID string) (stats.Summary, bool) {
	lifetime, err := s.faceit.LifetimeStats(ctx, faceitID)
	if err != nil {
		s.logger.WarnContext(ctx, "lifetime stats fetch failed", "faceit_id", faceitID, "error", err)
		return stats.Summary{}, false
	}
	if lifetime == nil || lifetime.Matches <= 0 {
		return stats.Summary{}, false
	}

	summary := stats.Summary{
		TotalMatches: lifetime.Matches,
		Wins:         lifetime.Wins,
		Losses:       lifetime.Losses,
		KDRatio:      stats.CorrectKD(lifetime.KDRatio, lifetime.AvgKills, lifetime.AvgDeaths),
		WinRatePct:   lifetime.WinRatePct,
		AvgKills:     lifetime.AvgKills,
		AvgDeaths:    lifetime.AvgDeaths,
		AvgAssists:   lifetime.AvgAssists,
		Streaks: stats.Streaks{
			CurrentWin:  lifetime.CurrentWin,
			LongestWin:  lifetime.LongestWin,
			LongestLoss: lifetime.LongestLoss,
		},
		MultiKills: stats.MultiKills{
			Triple: lifetime.TripleKills,
			Quadro: lifetime.QuadroKills,
			Penta:  lifetime.PentaKills,
		},
		RecentResults: lifetime.RecentResults,
		Real:          true,
	}

	if summary.WinRatePct <= 0 && summary.Wins > 0 && summary.TotalMatches > 0 {
		summary.WinRatePct = float64(summary.Wins) / float64(summary.TotalMatches) * 100
	}
	return summary, true
}

// attachRankings adds the nullable ladder positions. A missing entry
// stays nil; unknown is not zero.
func (s *StatsService) attachRankings(ctx context.Context, profile identity.Profile, summary *stats.Summary) {
	if profile.Region == "" {
		return
	}

	regionRank, err := s.faceit.PlayerRanking(ctx, profile.FaceitID, profile.Region, "")
	if err != nil {
		s.logger.WarnContext(ctx, "region ranking fetch failed", "faceit_id", profile.FaceitID, "error", err)
	} else {
		summary.RegionRank = regionRank
	}

	if profile.Country == "" {
		return
	}
	countryRank, err := s.faceit.PlayerRanking(ctx, profile.FaceitID, profile.Region, profile.Country)
	if err != nil {
		s.logger.WarnContext(ctx, "country ranking fetch failed", "faceit_id", profile.FaceitID, "error", err)
	} else {
		summary.CountryRank = countryRank
	}
}

func matchResult(won bool) stats.Result {
	if won {
		return stats.ResultWin
	}
	return stats.ResultLoss
}
