package models

// Player is a row in the players table. Skill is the player's current scalar
// rating on the ladder scale; StartingSkill is the value they were seeded with
// when first imported, kept so rating deltas can be reported later.
type Player struct {
	SteamID   string `json:"steam_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`

	Skill         float64 `json:"skill"`
	StartingSkill float64 `json:"starting_skill"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
}

// RosterPlayer is the frozen identity snapshot stored on a synthetic team.
// It deliberately excludes skill values: rosters must not drift when a
// player's rating changes after the round is created.
type RosterPlayer struct {
	SteamID   string `json:"steam_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
