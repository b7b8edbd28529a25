package models

import (
	"time"

	"github.com/google/uuid"
)

// Shuffle tournament lifecycle statuses. Transitions are forward-only:
// setup -> in_progress -> completed.
const (
	StatusSetup      = "setup"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Round-limit policies for shuffle matches.
const (
	PolicyFirstTo13 = "first_to_13"
	PolicyMaxRounds = "max_rounds"
)

// ShuffleTournament is a multi-round pickup competition where teams are
// re-formed from the registered player pool every round. The map sequence
// doubles as the round count: round r plays MapSequence[r-1].
type ShuffleTournament struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`

	MapSequence []string `json:"map_sequence"`
	TeamSize    int      `json:"team_size"`

	RoundPolicy string `json:"round_policy"`
	MaxRounds   int    `json:"max_rounds,omitempty"`
	Overtime    bool   `json:"overtime"`

	RatingTemplate *string `json:"rating_template,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TotalRounds returns the number of rounds the tournament runs for.
func (t *ShuffleTournament) TotalRounds() int {
	return len(t.MapSequence)
}

// Registration ties a player to a shuffle tournament. Unique per
// (tournament, player); mutable only while the tournament is in setup.
type Registration struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	SteamID      string    `json:"steam_id"`
	RegisteredAt time.Time `json:"registered_at"`
}
