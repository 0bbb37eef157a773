package faceit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/riskibarqy/faceit-scope/internal/platform/parseutil"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

// SearchPlayers hits the player lookup endpoint with an exact nickname.
// The endpoint answers with either a candidate list or a single player
// object depending on match quality; both shapes map to a slice.
func (c *Client) SearchPlayers(ctx context.Context, nickname string, limit int) ([]usecase.ExternalPlayer, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, nil
	}

	var payload map[string]any
	found, err := c.getJSON(ctx, "/players", map[string]string{
		"nickname": nickname,
		"limit":    limitParam(limit),
	}, &payload)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	if items, ok := payload["items"].([]any); ok {
		return mapPlayerItems(items), nil
	}
	if parseutil.MapString(payload, "player_id") != "" {
		return []usecase.ExternalPlayer{mapPlayerPayload(payload)}, nil
	}
	return nil, nil
}

// SearchPlayersBroad queries the fuzzy search endpoint with a wider
// result window.
func (c *Client) SearchPlayersBroad(ctx context.Context, nickname string, limit int) ([]usecase.ExternalPlayer, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, nil
	}

	var payload map[string]any
	found, err := c.getJSON(ctx, "/search/players", map[string]string{
		"nickname": nickname,
		"game":     c.gameID,
		"limit":    limitParam(limit),
	}, &payload)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	items, _ := payload["items"].([]any)
	return mapPlayerItems(items), nil
}

// GetPlayer fetches the full player detail record.
func (c *Client) GetPlayer(ctx context.Context, playerID string) (*usecase.ExternalPlayer, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, nil
	}

	var payload map[string]any
	found, err := c.getJSON(ctx, "/players/"+url.PathEscape(playerID), nil, &payload)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	player := mapPlayerPayload(payload)
	if player.PlayerID == "" {
		return nil, nil
	}
	return &player, nil
}

// LifetimeStats fetches the lifetime totals, trying the primary game id
// first and the legacy one when the player has no block for it.
func (c *Client) LifetimeStats(ctx context.Context, playerID string) (*usecase.ExternalLifetimeStats, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, nil
	}

	for _, game := range []string{c.gameID, c.fallbackGameID} {
		var payload map[string]any
		path := fmt.Sprintf("/players/%s/stats/%s", url.PathEscape(playerID), url.PathEscape(game))
		found, err := c.getJSON(ctx, path, nil, &payload)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		lifetime, ok := payload["lifetime"].(map[string]any)
		if !ok || len(lifetime) == 0 {
			continue
		}
		stats := mapLifetimeStats(lifetime)
		return &stats, nil
	}

	return nil, nil
}

// PlayerRanking reads the player's ladder position for a region. A
// country code narrows the ladder to that country.
func (c *Client) PlayerRanking(ctx context.Context, playerID, region, country string) (*int, error) {
	playerID = strings.TrimSpace(playerID)
	region = strings.TrimSpace(region)
	if playerID == "" || region == "" {
		return nil, nil
	}

	query := map[string]string{"limit": "1"}
	if country != "" {
		query["country"] = strings.ToLower(strings.TrimSpace(country))
	}

	var payload map[string]any
	path := fmt.Sprintf("/rankings/games/%s/regions/%s/players/%s",
		url.PathEscape(c.gameID), url.PathEscape(region), url.PathEscape(playerID))
	found, err := c.getJSON(ctx, path, query, &payload)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	position := parseutil.MapInt(payload, "position", 0)
	if position <= 0 {
		return nil, nil
	}
	return &position, nil
}

func mapPlayerItems(items []any) []usecase.ExternalPlayer {
	out := make([]usecase.ExternalPlayer, 0, len(items))
	for _, raw := range items {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		player := mapPlayerPayload(obj)
		if player.PlayerID == "" {
			continue
		}
		out = append(out, player)
	}
	return out
}

// mapPlayerPayload tolerates both payload dialects: the detail endpoint
// keys game blocks by game id, the search endpoint lists them.
func mapPlayerPayload(obj map[string]any) usecase.ExternalPlayer {
	player := usecase.ExternalPlayer{
		PlayerID:  parseutil.MapString(obj, "player_id"),
		Nickname:  parseutil.MapString(obj, "nickname"),
		Country:   parseutil.MapString(obj, "country"),
		AvatarURL: parseutil.MapString(obj, "avatar"),
		SteamID64: parseutil.FirstNonEmpty(
			parseutil.MapString(obj, "steam_id_64"),
			parseutil.MapString(obj, "game_player_id"),
		),
	}

	switch games := obj["games"].(type) {
	case map[string]any:
		for _, game := range []string{defaultGameID, defaultFallbackGameID} {
			block := parseutil.MapObject(games[game])
			if block == nil {
				continue
			}
			player.Elo = parseutil.MapInt(block, "faceit_elo", player.Elo)
			player.SkillLevel = parseutil.MapInt(block, "skill_level", player.SkillLevel)
			player.Region = parseutil.FirstNonEmpty(player.Region, parseutil.MapString(block, "region"))
			player.SteamID64 = parseutil.FirstNonEmpty(player.SteamID64, parseutil.MapString(block, "game_player_id"))
			if player.Elo > 0 {
				break
			}
		}
	case []any:
		for _, raw := range games {
			block, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name := parseutil.MapString(block, "name")
			if name != defaultGameID && name != defaultFallbackGameID {
				continue
			}
			player.SkillLevel = parseutil.MapInt(block, "skill_level", player.SkillLevel)
			player.Region = parseutil.FirstNonEmpty(player.Region, parseutil.MapString(block, "region"))
		}
	}

	return player
}

func mapLifetimeStats(lifetime map[string]any) usecase.ExternalLifetimeStats {
	matches := parseutil.MapInt(lifetime, "Matches", 0)
	wins := parseutil.MapInt(lifetime, "Wins", 0)
	losses := parseutil.MapInt(lifetime, "Lost", 0)
	if losses == 0 && matches > wins {
		losses = matches - wins
	}

	stats := usecase.ExternalLifetimeStats{
		Matches:     matches,
		Wins:        wins,
		Losses:      losses,
		WinRatePct:  parseutil.MapFloat(lifetime, "Win Rate %", 0),
		KDRatio:     parseutil.MapFloat(lifetime, "K/D Ratio", parseutil.MapFloat(lifetime, "Average K/D Ratio", 0)),
		AvgKills:    parseutil.MapFloat(lifetime, "Average Kills", 0),
		AvgDeaths:   parseutil.MapFloat(lifetime, "Average Deaths", 0),
		AvgAssists:  parseutil.MapFloat(lifetime, "Average Assists", 0),
		LongestWin:  parseutil.MapInt(lifetime, "Longest Win Streak", 0),
		CurrentWin:  parseutil.MapInt(lifetime, "Current Win Streak", 0),
		LongestLoss: parseutil.MapInt(lifetime, "Longest Lose Streak", 0),
		TripleKills: parseutil.MapInt(lifetime, "Triple Kills", 0),
		QuadroKills: parseutil.MapInt(lifetime, "Quadro Kills", 0),
		PentaKills:  parseutil.MapInt(lifetime, "Penta Kills", 0),
	}

	if recent, ok := lifetime["Recent Results"].([]any); ok {
		stats.RecentResults = make([]string, 0, len(recent))
		for _, raw := range recent {
			if parseutil.Int(raw, 0) == 1 {
				stats.RecentResults = append(stats.RecentResults, "W")
			} else {
				stats.RecentResults = append(stats.RecentResults, "L")
			}
		}
	}

	return stats
}
