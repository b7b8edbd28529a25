package database

import (
	"context"

	"github.com/openfrag/fraghouse/internal/models"
)

// PlayerStore reads player identity and skill rows. It satisfies
// shuffle.PlayerDirectory. Player writes belong to the separate player CRUD
// surface; the shuffle core never mutates these rows.
type PlayerStore struct{}

// GetByIDs fetches the players whose steam ids are in steamIDs. Unknown ids
// are simply absent from the result.
func (PlayerStore) GetByIDs(ctx context.Context, steamIDs []string) ([]models.Player, error) {
	q := `
	SELECT steam_id, name, avatar_url, skill, starting_skill,
	       matches_played, wins, losses
	FROM players
	WHERE steam_id = ANY($1)
	ORDER BY steam_id
	`
	rows, err := DB.Query(ctx, q, steamIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		err := rows.Scan(
			&p.SteamID, &p.Name, &p.AvatarURL, &p.Skill, &p.StartingSkill,
			&p.MatchesPlayed, &p.Wins, &p.Losses,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
