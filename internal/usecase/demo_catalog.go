package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/domain/search"
)

// demoCatalog serves fixed well-known profiles when no API credential is
// configured. Entries are never authoritative and unknown names still
// resolve to nothing; demo mode does not invent identities.
type demoCatalog struct {
	byNickname map[string]identity.Profile
}

func newDemoCatalog() *demoCatalog {
	entries := []identity.Profile{
		demoProfile("demo-donk666", "donk666", "ru", 3801, 10),
		demoProfile("demo-s1mple", "s1mple", "ua", 3512, 10),
		demoProfile("demo-niko", "NiKo", "ba", 3305, 10),
		demoProfile("demo-zywoo", "ZywOo", "fr", 3647, 10),
		demoProfile("demo-daniil-finch", "Daniil Finch", "ru", 2104, 9),
	}

	byNickname := make(map[string]identity.Profile, len(entries))
	for _, entry := range entries {
		byNickname[strings.ToLower(entry.Nickname)] = entry
	}
	return &demoCatalog{byNickname: byNickname}
}

func (c *demoCatalog) lookup(key string) *identity.Profile {
	if c == nil {
		return nil
	}
	entry, ok := c.byNickname[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil
	}
	return &entry
}

func demoProfile(id, nickname, country string, elo, level int) identity.Profile {
	return identity.Profile{
		FaceitID:   id,
		Nickname:   nickname,
		Country:    country,
		Elo:        &elo,
		SkillLevel: &level,
	}
}

type demoStrategy struct {
	catalog *demoCatalog
}

func (st *demoStrategy) name() string { return "demo_catalog" }

func (st *demoStrategy) tryResolve(_ context.Context, q search.Query) (*identity.Profile, error) {
	if profile := st.catalog.lookup(q.Key); profile != nil {
		return profile, nil
	}
	if sanitized := search.SanitizeKey(q.Key); sanitized != q.Key {
		return st.catalog.lookup(sanitized), nil
	}
	return nil, nil
}
