package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

// ProfileRepository keeps the resolution history in process memory.
// Used when no database is configured.
type ProfileRepository struct {
	mu        sync.RWMutex
	byID      map[string]identity.Profile
	updatedAt map[string]time.Time
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		byID:      make(map[string]identity.Profile),
		updatedAt: make(map[string]time.Time),
	}
}

func (r *ProfileRepository) Upsert(_ context.Context, profile identity.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[profile.FaceitID] = profile
	r.updatedAt[profile.FaceitID] = time.Now().UTC()
	return nil
}

func (r *ProfileRepository) GetByFaceitID(_ context.Context, faceitID string) (identity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byID[faceitID]
	if !ok {
		return identity.Profile{}, fmt.Errorf("%w: profile=%s", usecase.ErrNotFound, faceitID)
	}
	return profile, nil
}

func (r *ProfileRepository) List(_ context.Context, limit int) ([]identity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]identity.Profile, 0, len(r.byID))
	for _, profile := range r.byID {
		out = append(out, profile)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return r.updatedAt[out[i].FaceitID].After(r.updatedAt[out[j].FaceitID])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
