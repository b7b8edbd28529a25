package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Shuffle match lifecycle statuses.
const (
	MatchPending   = "pending"
	MatchLive      = "live"
	MatchCompleted = "completed"
	MatchCancelled = "cancelled"
)

// SyntheticTeam is a team that exists only for one round of a shuffle
// tournament. Its ID is deterministic ("shuffle-r{round}-m{match}-team{1|2}")
// and its roster is a snapshot frozen at creation time.
type SyntheticTeam struct {
	ID           string         `json:"id"`
	TournamentID uuid.UUID      `json:"tournament_id"`
	Round        int            `json:"round"`
	Name         string         `json:"name"`
	Roster       []RosterPlayer `json:"roster"`
}

// ShuffleMatch is a single match within a shuffle round. There is no stored
// round entity: the round is identified by the Round field on its matches.
type ShuffleMatch struct {
	ID           uuid.UUID `json:"id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	Round        int       `json:"round"`
	MatchNumber  int       `json:"match_number"`

	Team1ID string `json:"team1_id"`
	Team2ID string `json:"team2_id"`
	MapName string `json:"map_name"`

	Config json.RawMessage `json:"config,omitempty"`
	Status string          `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

// PlayerMatchStat is one player's persisted result line for one match.
// These rows are written by the game-server results webhook; the shuffle
// core only reads them. ADR is nil when the server never reported it.
type PlayerMatchStat struct {
	MatchID uuid.UUID `json:"match_id"`
	SteamID string    `json:"steam_id"`
	Won     bool      `json:"won"`
	ADR     *float64  `json:"adr,omitempty"`
}
