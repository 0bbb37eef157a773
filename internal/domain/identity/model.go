package identity

import "fmt"

// Profile is one resolved cross-platform identity. FaceitID is the only
// field guaranteed after a successful resolution; the rest is best-effort
// enrichment and stays empty or nil when upstream data is missing.
type Profile struct {
	FaceitID   string
	Nickname   string
	SteamID64  string
	Country    string
	Region     string
	AvatarURL  string
	SkillLevel *int
	Elo        *int
	// Authoritative is false for placeholder records served without an
	// API credential.
	Authoritative bool
}

func (p Profile) Validate() error {
	if p.FaceitID == "" {
		return fmt.Errorf("profile faceit id is required")
	}
	if p.Nickname == "" {
		return fmt.Errorf("profile nickname is required")
	}

	return nil
}
