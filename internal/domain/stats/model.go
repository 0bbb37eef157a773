// Package stats holds the normalized performance model and the pure
// aggregation rules applied to raw match batches.
package stats

import (
	"math"
	"time"
)

// Result is the outcome of one match. Upstream exposes a winner sentinel
// whose full semantics are undocumented; any non-win sentinel is treated
// as a loss, which is a known simplification.
type Result string

const (
	ResultWin     Result = "W"
	ResultLoss    Result = "L"
	ResultUnknown Result = "-"
)

// MatchRecord is one match from the history feed after defensive
// coercion. Derived, read-only, never persisted.
type MatchRecord struct {
	MatchID    string
	Map        string
	FinishedAt *time.Time
	Kills      int
	Deaths     int
	Assists    int
	Result     Result
}

type Streaks struct {
	CurrentWin  int
	LongestWin  int
	LongestLoss int
}

type MultiKills struct {
	Triple int
	Quadro int
	Penta  int
}

// Summary is the normalized statistics record returned per request.
// Computed fresh every time, never cached.
type Summary struct {
	TotalMatches int
	Wins         int
	Losses       int
	KDRatio      float64
	WinRatePct   float64
	AvgKills     float64
	AvgDeaths    float64
	AvgAssists   float64
	Streaks      Streaks
	MultiKills   MultiKills
	// RegionRank and CountryRank stay nil when the ranking feed has no
	// entry; nil means unknown, not zero.
	RegionRank  *int
	CountryRank *int
	// RecentResults is a newest-first W/L strip for the last matches,
	// "-" where the outcome could not be determined.
	RecentResults []string
	// Real is false when the summary was built from placeholder
	// constants instead of upstream data.
	Real bool
}

// Neutral fallbacks for ratio-class fields. Zero would misreport an
// unknown player as a zero-fragger, so unknown ratios land here instead.
const (
	NeutralKD         = 1.43
	MaxPlausibleKD    = 10.0
	placeholderWinPct = 55.0
)

// Summarize aggregates a match batch into a Summary. The streak scan runs
// in the order the records arrived; the feed is newest-first and is not
// re-sorted, so CurrentWin is the run length at the head of the batch.
func Summarize(records []MatchRecord) Summary {
	var (
		kills, deaths, assists int
		wins, losses           int
	)

	streaks := Streaks{}
	run := 0
	headRun := true
	results := make([]string, 0, len(records))

	for _, rec := range records {
		kills += rec.Kills
		deaths += rec.Deaths
		assists += rec.Assists
		results = append(results, string(rec.Result))

		switch rec.Result {
		case ResultWin:
			wins++
			run++
			if run > streaks.LongestWin {
				streaks.LongestWin = run
			}
			if headRun {
				streaks.CurrentWin = run
			}
		default:
			losses++
			headRun = false
			run = 0
		}
	}

	lossRun := 0
	for _, rec := range records {
		if rec.Result == ResultWin {
			lossRun = 0
			continue
		}
		lossRun++
		if lossRun > streaks.LongestLoss {
			streaks.LongestLoss = lossRun
		}
	}

	total := len(records)
	summary := Summary{
		TotalMatches:  total,
		Wins:          wins,
		Losses:        losses,
		KDRatio:       round2(float64(kills) / math.Max(float64(deaths), 1)),
		Streaks:       streaks,
		RecentResults: results,
		Real:          true,
	}
	if total > 0 {
		summary.WinRatePct = round1(float64(wins) / float64(total) * 100)
		summary.AvgKills = round1(float64(kills) / float64(total))
		summary.AvgDeaths = round1(float64(deaths) / float64(total))
		summary.AvgAssists = round1(float64(assists) / float64(total))
	}

	return summary
}

// CorrectKD applies the sanity rule for lifetime-feed ratios: a
// non-positive or implausibly large K/D is recomputed from the averages
// when both are positive, else replaced with the neutral default.
func CorrectKD(kd, avgKills, avgDeaths float64) float64 {
	if kd > 0 && kd <= MaxPlausibleKD {
		return kd
	}
	if avgKills > 0 && avgDeaths > 0 {
		return round2(avgKills / avgDeaths)
	}
	return NeutralKD
}

// Placeholder returns the fixed substitute summary used when no upstream
// data is obtainable. Internally consistent and clearly flagged via Real.
func Placeholder() Summary {
	return Summary{
		TotalMatches: 20,
		Wins:         11,
		Losses:       9,
		KDRatio:      1.25,
		WinRatePct:   placeholderWinPct,
		AvgKills:     16.0,
		AvgDeaths:    12.8,
		AvgAssists:   3.4,
		Streaks:      Streaks{CurrentWin: 2, LongestWin: 5, LongestLoss: 3},
		MultiKills:   MultiKills{Triple: 2, Quadro: 1},
		RecentResults: []string{
			string(ResultWin), string(ResultWin), string(ResultLoss),
			string(ResultWin), string(ResultLoss),
		},
		Real: false,
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
