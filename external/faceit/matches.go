package faceit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/faceit-scope/internal/platform/parseutil"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

// MatchHistory lists the player's most recent matches, newest first, in
// the order the feed returns them.
func (c *Client) MatchHistory(ctx context.Context, playerID string, limit, offset int) ([]usecase.ExternalMatchRef, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	for _, game := range []string{c.gameID, c.fallbackGameID} {
		var payload map[string]any
		path := fmt.Sprintf("/players/%s/history", url.PathEscape(playerID))
		found, err := c.getJSON(ctx, path, map[string]string{
			"game":   game,
			"limit":  strconv.Itoa(limit),
			"offset": strconv.Itoa(offset),
		}, &payload)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		items, _ := payload["items"].([]any)
		if len(items) == 0 {
			continue
		}
		return mapMatchRefs(items, playerID), nil
	}

	return nil, nil
}

// MatchStats fetches one match's detail stats and extracts the given
// player's line.
func (c *Client) MatchStats(ctx context.Context, matchID, playerID string) (*usecase.ExternalMatchStats, error) {
	matchID = strings.TrimSpace(matchID)
	playerID = strings.TrimSpace(playerID)
	if matchID == "" || playerID == "" {
		return nil, nil
	}

	var payload map[string]any
	path := fmt.Sprintf("/matches/%s/stats", url.PathEscape(matchID))
	found, err := c.getJSON(ctx, path, nil, &payload)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	rounds, _ := payload["rounds"].([]any)
	if len(rounds) == 0 {
		return nil, nil
	}
	round, ok := rounds[0].(map[string]any)
	if !ok {
		return nil, nil
	}

	roundStats, _ := round["round_stats"].(map[string]any)
	teams, _ := round["teams"].([]any)
	for _, rawTeam := range teams {
		team, ok := rawTeam.(map[string]any)
		if !ok {
			continue
		}
		teamStats, _ := team["team_stats"].(map[string]any)
		teamWon := parseutil.MapInt(teamStats, "Team Win", 0) == 1

		players, _ := team["players"].([]any)
		for _, rawPlayer := range players {
			line, ok := rawPlayer.(map[string]any)
			if !ok {
				continue
			}
			if parseutil.MapString(line, "player_id") != playerID {
				continue
			}
			playerStats, _ := line["player_stats"].(map[string]any)
			return &usecase.ExternalMatchStats{
				MatchID: matchID,
				Map:     parseutil.MapString(roundStats, "Map"),
				Kills:   parseutil.MapInt(playerStats, "Kills", 0),
				Deaths:  parseutil.MapInt(playerStats, "Deaths", 0),
				Assists: parseutil.MapInt(playerStats, "Assists", 0),
				Won:     teamWon,
			}, nil
		}
	}

	return nil, nil
}

func mapMatchRefs(items []any, playerID string) []usecase.ExternalMatchRef {
	out := make([]usecase.ExternalMatchRef, 0, len(items))
	for _, raw := range items {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		matchID := parseutil.MapString(obj, "match_id")
		if matchID == "" {
			continue
		}

		ref := usecase.ExternalMatchRef{
			MatchID:    matchID,
			FinishedAt: parseutil.Int64(obj["finished_at"], 0),
		}

		faction := playerFaction(obj, playerID)
		winner := parseutil.MapString(parseutil.MapObject(obj["results"]), "winner")
		if faction != "" && winner != "" {
			ref.Won = winner == faction
			ref.KnownResult = true
		}
		out = append(out, ref)
	}
	return out
}

// playerFaction scans the roster blocks for the player's side.
func playerFaction(obj map[string]any, playerID string) string {
	teams, ok := obj["teams"].(map[string]any)
	if !ok {
		return ""
	}
	for faction, rawTeam := range teams {
		team, ok := rawTeam.(map[string]any)
		if !ok {
			continue
		}
		players, _ := team["players"].([]any)
		for _, rawPlayer := range players {
			line, ok := rawPlayer.(map[string]any)
			if !ok {
				continue
			}
			if parseutil.MapString(line, "player_id") == playerID {
				return faction
			}
		}
	}
	return ""
}
