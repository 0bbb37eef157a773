package identity

import "context"

// Repository records resolved profiles as a lookup history. Resolutions
// always hit the upstream APIs fresh; stored rows are never read back to
// answer a search.
type Repository interface {
	Upsert(ctx context.Context, profile Profile) error
	GetByFaceitID(ctx context.Context, faceitID string) (Profile, error)
	List(ctx context.Context, limit int) ([]Profile, error)
}
