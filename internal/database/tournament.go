package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openfrag/fraghouse/internal/models"
)

// TournamentStore persists shuffle tournament rows. It satisfies
// shuffle.TournamentStore.
type TournamentStore struct{}

// Create inserts a new shuffle tournament. Only one shuffle tournament
// exists per deployment: the prior record and all of its children are
// deleted in the same transaction.
func (TournamentStore) Create(ctx context.Context, t *models.ShuffleTournament) error {
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		wipe := []string{
			`DELETE FROM player_match_stats WHERE match_id IN (SELECT id FROM shuffle_matches)`,
			`DELETE FROM shuffle_matches`,
			`DELETE FROM shuffle_teams`,
			`DELETE FROM shuffle_registrations`,
			`DELETE FROM shuffle_tournaments`,
		}
		for _, q := range wipe {
			if _, err := tx.Exec(ctx, q); err != nil {
				return err
			}
		}

		q := `
		INSERT INTO shuffle_tournaments (
			id, name, status, map_sequence, team_size,
			round_policy, max_rounds, overtime, rating_template, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.Exec(ctx, q,
			t.ID, t.Name, t.Status, t.MapSequence, t.TeamSize,
			t.RoundPolicy, t.MaxRounds, t.Overtime, t.RatingTemplate, t.CreatedAt,
		)
		return err
	})
}

// Get fetches a shuffle tournament by id.
func (TournamentStore) Get(ctx context.Context, id uuid.UUID) (*models.ShuffleTournament, error) {
	var t models.ShuffleTournament
	q := `
	SELECT id, name, status, map_sequence, team_size,
	       round_policy, max_rounds, overtime, rating_template,
	       created_at, started_at, completed_at
	FROM shuffle_tournaments
	WHERE id = $1
	`
	err := DB.QueryRow(ctx, q, id).Scan(
		&t.ID, &t.Name, &t.Status, &t.MapSequence, &t.TeamSize,
		&t.RoundPolicy, &t.MaxRounds, &t.Overtime, &t.RatingTemplate,
		&t.CreatedAt, &t.StartedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Latest returns the current shuffle tournament, or pgx.ErrNoRows when none
// has been created yet.
func (TournamentStore) Latest(ctx context.Context) (*models.ShuffleTournament, error) {
	var t models.ShuffleTournament
	q := `
	SELECT id, name, status, map_sequence, team_size,
	       round_policy, max_rounds, overtime, rating_template,
	       created_at, started_at, completed_at
	FROM shuffle_tournaments
	ORDER BY created_at DESC
	LIMIT 1
	`
	err := DB.QueryRow(ctx, q).Scan(
		&t.ID, &t.Name, &t.Status, &t.MapSequence, &t.TeamSize,
		&t.RoundPolicy, &t.MaxRounds, &t.Overtime, &t.RatingTemplate,
		&t.CreatedAt, &t.StartedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetStatus advances the tournament's lifecycle status, recording the
// matching timestamp for in_progress and completed transitions.
func (TournamentStore) SetStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		switch status {
		case models.StatusInProgress:
			_, err = tx.Exec(ctx,
				`UPDATE shuffle_tournaments SET status = $1, started_at = $2 WHERE id = $3`,
				status, at, id)
		case models.StatusCompleted:
			_, err = tx.Exec(ctx,
				`UPDATE shuffle_tournaments SET status = $1, completed_at = $2 WHERE id = $3`,
				status, at, id)
		default:
			_, err = tx.Exec(ctx,
				`UPDATE shuffle_tournaments SET status = $1 WHERE id = $2`,
				status, id)
		}
		return err
	})
}
