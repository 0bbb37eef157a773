// Package search turns free-form user input into a canonical lookup query.
package search

import (
	"regexp"
	"strings"
)

// Kind classifies what the extracted key represents.
type Kind string

const (
	// KindNickname is a bare handle searched against the Faceit API.
	// Faceit profile URLs also degrade to this kind because their path
	// segment is a handle, not a player id.
	KindNickname Kind = "nickname"
	// KindSteamID is a 17-digit SteamID64.
	KindSteamID Kind = "steam_id"
)

// Query is the canonical form of one user search. It is built once per
// request and never mutated afterwards.
type Query struct {
	Raw  string
	Kind Kind
	Key  string
	// SteamVanity holds a steamcommunity vanity path segment that still
	// needs a vanity-to-id resolution before it can drive a reverse lookup.
	SteamVanity string
}

var (
	steamID64Pattern   = regexp.MustCompile(`^\d{17}$`)
	steamProfilePath   = regexp.MustCompile(`steamcommunity\.com/profiles/(\d{17})`)
	steamVanityPath    = regexp.MustCompile(`steamcommunity\.com/id/([^/\s?&#]+)`)
	faceitProfilePath  = regexp.MustCompile(`faceit\.com/(?:[a-z]{2}/)?(?:players?/)?([^/\s?&#]+)`)
	reservedFaceitSegs = map[string]struct{}{
		"en": {}, "ru": {}, "players": {}, "player": {}, "stats": {},
	}
)

// Normalize applies the classification ladder, first match wins. It never
// fails: input that matches nothing degrades to a nickname search so the
// caller reports "not found" instead of "invalid input".
func Normalize(raw string) Query {
	trimmed := strings.TrimSpace(raw)

	if steamID64Pattern.MatchString(trimmed) {
		return Query{Raw: raw, Kind: KindSteamID, Key: trimmed}
	}

	if strings.Contains(trimmed, "steamcommunity.com") {
		if m := steamProfilePath.FindStringSubmatch(trimmed); m != nil {
			return Query{Raw: raw, Kind: KindSteamID, Key: m[1]}
		}
		if m := steamVanityPath.FindStringSubmatch(trimmed); m != nil {
			vanity := stripQuerySuffix(m[1])
			return Query{Raw: raw, Kind: KindNickname, Key: vanity, SteamVanity: vanity}
		}
	}

	if strings.Contains(trimmed, "faceit.com") {
		if key := extractFaceitHandle(trimmed); key != "" {
			return Query{Raw: raw, Kind: KindNickname, Key: key}
		}
	}

	return Query{Raw: raw, Kind: KindNickname, Key: trimmed}
}

func extractFaceitHandle(input string) string {
	m := faceitProfilePath.FindStringSubmatch(input)
	if m == nil {
		return ""
	}
	segment := stripQuerySuffix(m[1])
	if segment == "" {
		return ""
	}
	if _, reserved := reservedFaceitSegs[strings.ToLower(segment)]; reserved {
		// The regex caught a locale or section segment with no handle
		// behind it.
		return ""
	}
	return segment
}

func stripQuerySuffix(segment string) string {
	if idx := strings.IndexByte(segment, '?'); idx >= 0 {
		segment = segment[:idx]
	}
	return strings.TrimSpace(segment)
}

// SanitizeKey strips every non-alphanumeric rune from key. Recovers handles
// copy-pasted with zero-width or decorative characters.
func SanitizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
