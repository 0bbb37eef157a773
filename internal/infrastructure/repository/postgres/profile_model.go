package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
)

type profileTableModel struct {
	ID         int64         `db:"id"`
	FaceitID   string        `db:"faceit_id"`
	Nickname   string        `db:"nickname"`
	SteamID64  string        `db:"steam_id_64"`
	Country    string        `db:"country"`
	Region     string        `db:"region"`
	AvatarURL  string        `db:"avatar_url"`
	SkillLevel sql.NullInt64 `db:"skill_level"`
	Elo        sql.NullInt64 `db:"elo"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

func (m profileTableModel) toDomain() identity.Profile {
	profile := identity.Profile{
		FaceitID:      m.FaceitID,
		Nickname:      m.Nickname,
		SteamID64:     m.SteamID64,
		Country:       m.Country,
		Region:        m.Region,
		AvatarURL:     m.AvatarURL,
		Authoritative: true,
	}
	if m.SkillLevel.Valid {
		level := int(m.SkillLevel.Int64)
		profile.SkillLevel = &level
	}
	if m.Elo.Valid {
		elo := int(m.Elo.Int64)
		profile.Elo = &elo
	}
	return profile
}

func nullIntFromPtr(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
