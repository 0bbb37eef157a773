package httpapi

import (
	"time"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/domain/stats"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

// Optional numeric fields stay pointers so an unknown value serializes
// as null instead of a misleading zero.

type profileDTO struct {
	FaceitID   string `json:"faceit_id"`
	Nickname   string `json:"nickname"`
	SteamID64  string `json:"steam_id_64,omitempty"`
	Country    string `json:"country,omitempty"`
	Region     string `json:"region,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	SkillLevel *int   `json:"skill_level"`
	Elo        *int   `json:"elo"`
}

type steamProfileDTO struct {
	SteamID64   string `json:"steam_id_64"`
	PersonaName string `json:"persona_name"`
	ProfileURL  string `json:"profile_url,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Country     string `json:"country,omitempty"`
}

type streaksDTO struct {
	CurrentWin  int `json:"current_win"`
	LongestWin  int `json:"longest_win"`
	LongestLoss int `json:"longest_loss"`
}

type multiKillsDTO struct {
	Triple int `json:"triple"`
	Quadro int `json:"quadro"`
	Penta  int `json:"penta"`
}

type statsDTO struct {
	TotalMatches  int           `json:"total_matches"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	KDRatio       float64       `json:"kd_ratio"`
	WinRatePct    float64       `json:"win_rate_pct"`
	AvgKills      float64       `json:"avg_kills"`
	AvgDeaths     float64       `json:"avg_deaths"`
	AvgAssists    float64       `json:"avg_assists"`
	Streaks       streaksDTO    `json:"streaks"`
	MultiKills    multiKillsDTO `json:"multi_kill_counts"`
	RegionRank    *int          `json:"region_rank"`
	CountryRank   *int          `json:"country_rank"`
	RecentResults []string      `json:"recent_results"`
}

type reportDTO struct {
	ReportID    string           `json:"report_id,omitempty"`
	Query       string           `json:"query"`
	QueryKind   string           `json:"query_kind"`
	Profile     profileDTO       `json:"profile"`
	Steam       *steamProfileDTO `json:"steam"`
	Stats       statsDTO         `json:"stats"`
	IsRealData  bool             `json:"is_real_data"`
	GeneratedAt time.Time        `json:"generated_at"`
}

func profileToDTO(profile identity.Profile) profileDTO {
	return profileDTO{
		FaceitID:   profile.FaceitID,
		Nickname:   profile.Nickname,
		SteamID64:  profile.SteamID64,
		Country:    profile.Country,
		Region:     profile.Region,
		AvatarURL:  profile.AvatarURL,
		SkillLevel: profile.SkillLevel,
		Elo:        profile.Elo,
	}
}

func statsToDTO(summary stats.Summary) statsDTO {
	recent := summary.RecentResults
	if recent == nil {
		recent = []string{}
	}
	return statsDTO{
		TotalMatches: summary.TotalMatches,
		Wins:         summary.Wins,
		Losses:       summary.Losses,
		KDRatio:      summary.KDRatio,
		WinRatePct:   summary.WinRatePct,
		AvgKills:     summary.AvgKills,
		AvgDeaths:    summary.AvgDeaths,
		AvgAssists:   summary.AvgAssists,
		Streaks: streaksDTO{
			CurrentWin:  summary.Streaks.CurrentWin,
			LongestWin:  summary.Streaks.LongestWin,
			LongestLoss: summary.Streaks.LongestLoss,
		},
		MultiKills: multiKillsDTO{
			Triple: summary.MultiKills.Triple,
			Quadro: summary.MultiKills.Quadro,
			Penta:  summary.MultiKills.Penta,
		},
		RegionRank:    summary.RegionRank,
		CountryRank:   summary.CountryRank,
		RecentResults: recent,
	}
}

func reportToDTO(report usecase.Report) reportDTO {
	dto := reportDTO{
		ReportID:    report.ReportID,
		Query:       report.Query.Raw,
		QueryKind:   string(report.Query.Kind),
		Profile:     profileToDTO(report.Profile),
		Stats:       statsToDTO(report.Stats),
		IsRealData:  report.IsRealData,
		GeneratedAt: report.GeneratedAt,
	}
	if report.Steam != nil {
		dto.Steam = &steamProfileDTO{
			SteamID64:   report.Steam.SteamID64,
			PersonaName: report.Steam.PersonaName,
			ProfileURL:  report.Steam.ProfileURL,
			AvatarURL:   report.Steam.AvatarURL,
			Country:     report.Steam.CountryCode,
		}
	}
	return dto
}
