package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openfrag/fraghouse/internal/models"
)

// MatchStore persists synthetic teams and shuffle matches. It satisfies
// shuffle.MatchStore.
type MatchStore struct{}

// CreateRound inserts a round's teams and matches inside one transaction, so
// a failure partway through leaves no partial round visible to readers.
func (MatchStore) CreateRound(ctx context.Context, teams []models.SyntheticTeam, matches []models.ShuffleMatch) error {
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		teamQ := `
		INSERT INTO shuffle_teams (id, tournament_id, round, name, roster)
		VALUES ($1, $2, $3, $4, $5)
		`
		for _, team := range teams {
			roster, err := json.Marshal(team.Roster)
			if err != nil {
				return fmt.Errorf("marshal roster for %s: %w", team.ID, err)
			}
			if _, err := tx.Exec(ctx, teamQ, team.ID, team.TournamentID, team.Round, team.Name, roster); err != nil {
				return err
			}
		}

		matchQ := `
		INSERT INTO shuffle_matches (
			id, tournament_id, round, match_number,
			team1_id, team2_id, map_name, config, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		for _, m := range matches {
			_, err := tx.Exec(ctx, matchQ,
				m.ID, m.TournamentID, m.Round, m.MatchNumber,
				m.Team1ID, m.Team2ID, m.MapName, m.Config, m.Status, m.CreatedAt,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// MatchesForRound returns the round's matches ordered by match number.
func (MatchStore) MatchesForRound(ctx context.Context, tournamentID uuid.UUID, round int) ([]models.ShuffleMatch, error) {
	q := `
	SELECT id, tournament_id, round, match_number,
	       team1_id, team2_id, map_name, config, status, created_at
	FROM shuffle_matches
	WHERE tournament_id = $1 AND round = $2
	ORDER BY match_number
	`
	rows, err := DB.Query(ctx, q, tournamentID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.ShuffleMatch
	for rows.Next() {
		var m models.ShuffleMatch
		err := rows.Scan(
			&m.ID, &m.TournamentID, &m.Round, &m.MatchNumber,
			&m.Team1ID, &m.Team2ID, &m.MapName, &m.Config, &m.Status, &m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// HighestRound returns the largest round number with any matches, 0 if the
// tournament has none yet. The current round is always derived this way;
// there is no separate round counter to drift.
func (MatchStore) HighestRound(ctx context.Context, tournamentID uuid.UUID) (int, error) {
	var round int
	q := `SELECT COALESCE(MAX(round), 0) FROM shuffle_matches WHERE tournament_id = $1`
	if err := DB.QueryRow(ctx, q, tournamentID).Scan(&round); err != nil {
		return 0, err
	}
	return round, nil
}

// RoundPlayerIDs returns the steam ids frozen on the round's team rosters.
func (MatchStore) RoundPlayerIDs(ctx context.Context, tournamentID uuid.UUID, round int) ([]string, error) {
	q := `SELECT roster FROM shuffle_teams WHERE tournament_id = $1 AND round = $2`
	rows, err := DB.Query(ctx, q, tournamentID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var roster []models.RosterPlayer
		if err := json.Unmarshal(blob, &roster); err != nil {
			return nil, fmt.Errorf("unmarshal roster: %w", err)
		}
		for _, p := range roster {
			ids = append(ids, p.SteamID)
		}
	}
	return ids, rows.Err()
}

// SetMatchStatus updates one match's lifecycle status. Used by the results
// webhook handler when the game server reports progress.
func (MatchStore) SetMatchStatus(ctx context.Context, matchID uuid.UUID, status string) error {
	q := `UPDATE shuffle_matches SET status = $1 WHERE id = $2`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, status, matchID)
		return err
	})
}
