package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/openfrag/fraghouse/internal/models"
)

// StatsStore reads per-player match results. The rows are written by the
// game-server results webhook; the shuffle core treats them as read-only.
// It satisfies shuffle.StatsStore.
type StatsStore struct{}

// ForTournament returns every result line recorded for the tournament's
// matches. ADR scans as nil when the server never reported it.
func (StatsStore) ForTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.PlayerMatchStat, error) {
	q := `
	SELECT s.match_id, s.steam_id, s.won, s.adr
	FROM player_match_stats s
	JOIN shuffle_matches m ON m.id = s.match_id
	WHERE m.tournament_id = $1
	ORDER BY s.match_id, s.steam_id
	`
	rows, err := DB.Query(ctx, q, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.PlayerMatchStat
	for rows.Next() {
		var st models.PlayerMatchStat
		if err := rows.Scan(&st.MatchID, &st.SteamID, &st.Won, &st.ADR); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
