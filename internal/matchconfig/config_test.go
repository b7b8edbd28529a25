package matchconfig

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfrag/fraghouse/internal/models"
)

func fixtureTeams() (*models.SyntheticTeam, *models.SyntheticTeam) {
	team1 := &models.SyntheticTeam{
		ID:   "shuffle-r1-m1-team1",
		Name: "Round 1 Match 1 Team 1",
		Roster: []models.RosterPlayer{
			{SteamID: "76561190001", Name: "ada"},
			{SteamID: "76561190002", Name: "ben"},
		},
	}
	team2 := &models.SyntheticTeam{
		ID:   "shuffle-r1-m1-team2",
		Name: "Round 1 Match 1 Team 2",
		Roster: []models.RosterPlayer{
			{SteamID: "76561190003", Name: "cam"},
			{SteamID: "76561190004", Name: "dia"},
		},
	}
	return team1, team2
}

func TestGenerateRosterMapping(t *testing.T) {
	tournament := &models.ShuffleTournament{
		ID:          uuid.New(),
		MapSequence: []string{"de_mirage", "de_nuke"},
		TeamSize:    2,
		RoundPolicy: models.PolicyFirstTo13,
	}
	team1, team2 := fixtureTeams()

	cfg := NewGenerator().Generate(tournament, team1, team2, "shuffle-r1-m1")

	assert.Equal(t, "shuffle-r1-m1", cfg.MatchID)
	assert.Equal(t, 2, cfg.PlayersPerTeam)
	assert.Equal(t, 2, cfg.MinPlayersToReady)
	assert.Equal(t, "Round 1 Match 1 Team 1", cfg.Team1.Name)
	assert.Equal(t, map[string]string{
		"76561190001": "ada",
		"76561190002": "ben",
	}, cfg.Team1.Players)
	assert.Equal(t, map[string]string{
		"76561190003": "cam",
		"76561190004": "dia",
	}, cfg.Team2.Players)
}

func TestGenerateCvarsByPolicy(t *testing.T) {
	team1, team2 := fixtureTeams()

	cases := []struct {
		name      string
		policy    string
		maxRounds int
		overtime  bool
		rounds    string
		otEnable  string
	}{
		{"first to 13 defaults", models.PolicyFirstTo13, 0, false, "24", "0"},
		{"first to 13 with overtime", models.PolicyFirstTo13, 0, true, "24", "1"},
		{"capped rounds", models.PolicyMaxRounds, 16, false, "16", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tournament := &models.ShuffleTournament{
				ID:          uuid.New(),
				MapSequence: []string{"de_mirage"},
				TeamSize:    2,
				RoundPolicy: tc.policy,
				MaxRounds:   tc.maxRounds,
				Overtime:    tc.overtime,
			}
			cfg := NewGenerator().Generate(tournament, team1, team2, "m")
			require.NotNil(t, cfg.Cvars)
			assert.Equal(t, tc.rounds, cfg.Cvars["mp_maxrounds"])
			assert.Equal(t, tc.otEnable, cfg.Cvars["mp_overtime_enable"])
		})
	}
}
