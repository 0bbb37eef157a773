package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	qb "github.com/riskibarqy/faceit-scope/internal/platform/querybuilder"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

type ProfileRepository struct {
	db *sqlx.DB
}

var profileSelectColumns = []string{
	"id",
	"faceit_id",
	"nickname",
	"steam_id_64",
	"country",
	"region",
	"avatar_url",
	"skill_level",
	"elo",
	"created_at",
	"updated_at",
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert is last-write-wins keyed by faceit_id; concurrent resolutions
// of the same identity are safe at the row level.
func (r *ProfileRepository) Upsert(ctx context.Context, profile identity.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertInto("profiles").
		Columns("faceit_id", "nickname", "steam_id_64", "country", "region", "avatar_url", "skill_level", "elo").
		Values(
			profile.FaceitID,
			profile.Nickname,
			profile.SteamID64,
			profile.Country,
			profile.Region,
			profile.AvatarURL,
			nullIntFromPtr(profile.SkillLevel),
			nullIntFromPtr(profile.Elo),
		).
		Suffix(`ON CONFLICT (faceit_id) DO UPDATE SET
			nickname = EXCLUDED.nickname,
			steam_id_64 = EXCLUDED.steam_id_64,
			country = EXCLUDED.country,
			region = EXCLUDED.region,
			avatar_url = EXCLUDED.avatar_url,
			skill_level = EXCLUDED.skill_level,
			elo = EXCLUDED.elo,
			updated_at = now()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByFaceitID(ctx context.Context, faceitID string) (identity.Profile, error) {
	query, args, err := qb.Select(profileSelectColumns...).From("profiles").
		Where(qb.Eq("faceit_id", faceitID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return identity.Profile{}, fmt.Errorf("build select profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return identity.Profile{}, fmt.Errorf("%w: profile=%s", usecase.ErrNotFound, faceitID)
		}
		return identity.Profile{}, fmt.Errorf("select profile: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ProfileRepository) List(ctx context.Context, limit int) ([]identity.Profile, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := qb.Select(profileSelectColumns...).From("profiles").
		OrderBy("updated_at DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]identity.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
