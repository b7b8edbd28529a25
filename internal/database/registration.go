package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openfrag/fraghouse/internal/models"
)

// RegistrationStore persists tournament membership rows. It satisfies
// shuffle.RegistrationStore.
type RegistrationStore struct{}

// Insert adds one registration. The (tournament_id, steam_id) unique
// constraint is the last line of defense against double registration.
func (RegistrationStore) Insert(ctx context.Context, reg *models.Registration) error {
	q := `
	INSERT INTO shuffle_registrations (tournament_id, steam_id, registered_at)
	VALUES ($1, $2, $3)
	`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, reg.TournamentID, reg.SteamID, reg.RegisteredAt)
		return err
	})
}

// Delete removes one registration.
func (RegistrationStore) Delete(ctx context.Context, tournamentID uuid.UUID, steamID string) error {
	q := `DELETE FROM shuffle_registrations WHERE tournament_id = $1 AND steam_id = $2`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, tournamentID, steamID)
		return err
	})
}

// RegisteredIDs returns the steam ids registered for the tournament, in
// registration order.
func (RegistrationStore) RegisteredIDs(ctx context.Context, tournamentID uuid.UUID) ([]string, error) {
	q := `
	SELECT steam_id FROM shuffle_registrations
	WHERE tournament_id = $1
	ORDER BY registered_at, steam_id
	`
	rows, err := DB.Query(ctx, q, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
