package shuffle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfrag/fraghouse/internal/models"
)

func TestCreateTournamentValidation(t *testing.T) {
	svc, _, _ := newTestService(nil, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		cfg  CreateConfig
	}{
		{"missing name", CreateConfig{MapSequence: []string{"de_mirage"}, TeamSize: 5}},
		{"empty map sequence", CreateConfig{Name: "mix", TeamSize: 5}},
		{"zero team size", CreateConfig{Name: "mix", MapSequence: []string{"de_mirage"}}},
		{"unknown policy", CreateConfig{Name: "mix", MapSequence: []string{"de_mirage"}, TeamSize: 5, RoundPolicy: "best_of_3"}},
		{"max_rounds policy without cap", CreateConfig{Name: "mix", MapSequence: []string{"de_mirage"}, TeamSize: 5, RoundPolicy: models.PolicyMaxRounds}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTournament(ctx, tc.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestCreateTournamentDefaultsAndRounds(t *testing.T) {
	svc, store, _ := newTestService(nil, nil)

	created, err := svc.CreateTournament(context.Background(), CreateConfig{
		Name:        "friday mix",
		MapSequence: []string{"de_mirage", "de_inferno", "de_nuke"},
		TeamSize:    5,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusSetup, created.Status)
	assert.Equal(t, models.PolicyFirstTo13, created.RoundPolicy, "policy defaults to first_to_13")
	assert.Equal(t, 3, created.TotalRounds(), "one round per map")
	assert.Equal(t, created.ID, store.tournament.ID, "persisted")
}

func TestRegisterPlayersPerItemOutcomes(t *testing.T) {
	tournament := testTournament(5, "de_mirage")
	tournament.Status = models.StatusSetup
	svc, store, _ := newTestService(tournament, []models.Player{
		testPlayer("known1", 1000, 0),
		testPlayer("known2", 1000, 0),
	})
	store.regs = []string{"known2"} // already on the roster
	ctx := context.Background()

	report, err := svc.RegisterPlayers(ctx, store.tournament.ID, []string{"known1", "known2", "ghost"})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Outcomes, 3)

	assert.True(t, report.Outcomes[0].OK)
	assert.False(t, report.Outcomes[1].OK)
	assert.Equal(t, "already registered", report.Outcomes[1].Error)
	assert.False(t, report.Outcomes[2].OK)
	assert.Equal(t, "unknown player", report.Outcomes[2].Error)

	assert.ElementsMatch(t, []string{"known1", "known2"}, store.regs)
}

func TestRegisterPlayersRejectedOutsideSetup(t *testing.T) {
	svc, store, _ := newTestService(testTournament(5, "de_mirage"), []models.Player{testPlayer("p", 1000, 0)})
	store.regs = nil // in_progress tournament, empty roster

	_, err := svc.RegisterPlayers(context.Background(), store.tournament.ID, []string{"p"})
	assert.ErrorIs(t, err, ErrWrongStatus)

	_, err = svc.SetRegisteredPlayers(context.Background(), store.tournament.ID, []string{"p"})
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestSetRegisteredPlayersReplacesRoster(t *testing.T) {
	tournament := testTournament(5, "de_mirage")
	tournament.Status = models.StatusSetup
	svc, store, _ := newTestService(tournament, []models.Player{
		testPlayer("stay", 1000, 0),
		testPlayer("leave", 1000, 0),
		testPlayer("join", 1000, 0),
	})
	store.regs = []string{"stay", "leave"}

	report, err := svc.SetRegisteredPlayers(context.Background(), store.tournament.ID, []string{"stay", "join"})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded, "one removal plus one addition")
	assert.Equal(t, 0, report.Failed)
	assert.ElementsMatch(t, []string{"stay", "join"}, store.regs)
}
