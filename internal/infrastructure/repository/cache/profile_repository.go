package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	basecache "github.com/riskibarqy/faceit-scope/internal/platform/cache"
)

// ProfileRepository wraps a profile store with a read-through TTL cache.
// Upserts invalidate both the single-profile key and the listings so a
// fresh resolution is visible on the next read.
type ProfileRepository struct {
	next  identity.Repository
	cache *basecache.Store
}

func NewProfileRepository(next identity.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile identity.Profile) error {
	if err := r.next.Upsert(ctx, profile); err != nil {
		return err
	}

	r.cache.Delete(ctx, "profile:id:"+profile.FaceitID)
	r.cache.DeletePrefix(ctx, "profile:list:")
	return nil
}

func (r *ProfileRepository) GetByFaceitID(ctx context.Context, faceitID string) (identity.Profile, error) {
	key := "profile:id:" + faceitID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.GetByFaceitID(ctx, faceitID)
	})
	if err != nil {
		return identity.Profile{}, err
	}

	profile, _ := v.(identity.Profile)
	return profile, nil
}

func (r *ProfileRepository) List(ctx context.Context, limit int) ([]identity.Profile, error) {
	key := "profile:list:" + strconv.Itoa(limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, limit)
		if err != nil {
			return nil, err
		}
		return append([]identity.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]identity.Profile)
	return append([]identity.Profile(nil), items...), nil
}
