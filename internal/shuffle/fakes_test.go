package shuffle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/openfrag/fraghouse/internal/matchconfig"
	"github.com/openfrag/fraghouse/internal/models"
)

// fakeStore is an in-memory stand-in for every persistence interface the
// core consumes, so these tests run without Postgres. CreateRound mimics
// the real store's transactional behavior: on simulated failure nothing is
// persisted.
type fakeStore struct {
	tournament *models.ShuffleTournament
	players    map[string]models.Player
	regs       []string

	teams   []models.SyntheticTeam
	matches []models.ShuffleMatch
	stats   []models.PlayerMatchStat

	failCreateRound bool
}

func (f *fakeStore) GetByIDs(_ context.Context, ids []string) ([]models.Player, error) {
	var out []models.Player
	for _, id := range ids {
		if p, ok := f.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id uuid.UUID) (*models.ShuffleTournament, error) {
	if f.tournament == nil || f.tournament.ID != id {
		return nil, ErrNotFound
	}
	copied := *f.tournament
	return &copied, nil
}

func (f *fakeStore) Create(_ context.Context, t *models.ShuffleTournament) error {
	f.tournament = t
	f.regs = nil
	f.teams = nil
	f.matches = nil
	f.stats = nil
	return nil
}

func (f *fakeStore) SetStatus(_ context.Context, id uuid.UUID, status string, at time.Time) error {
	if f.tournament == nil || f.tournament.ID != id {
		return ErrNotFound
	}
	f.tournament.Status = status
	switch status {
	case models.StatusInProgress:
		f.tournament.StartedAt = &at
	case models.StatusCompleted:
		f.tournament.CompletedAt = &at
	}
	return nil
}

func (f *fakeStore) RegisteredIDs(_ context.Context, _ uuid.UUID) ([]string, error) {
	return append([]string(nil), f.regs...), nil
}

func (f *fakeStore) Insert(_ context.Context, reg *models.Registration) error {
	f.regs = append(f.regs, reg.SteamID)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ uuid.UUID, steamID string) error {
	for i, id := range f.regs {
		if id == steamID {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) CreateRound(_ context.Context, teams []models.SyntheticTeam, matches []models.ShuffleMatch) error {
	if f.failCreateRound {
		return errors.New("simulated mid-sequence persistence failure")
	}
	f.teams = append(f.teams, teams...)
	f.matches = append(f.matches, matches...)
	return nil
}

func (f *fakeStore) MatchesForRound(_ context.Context, _ uuid.UUID, round int) ([]models.ShuffleMatch, error) {
	var out []models.ShuffleMatch
	for _, m := range f.matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) HighestRound(_ context.Context, _ uuid.UUID) (int, error) {
	highest := 0
	for _, m := range f.matches {
		if m.Round > highest {
			highest = m.Round
		}
	}
	return highest, nil
}

func (f *fakeStore) RoundPlayerIDs(_ context.Context, _ uuid.UUID, round int) ([]string, error) {
	var ids []string
	for _, team := range f.teams {
		if team.Round != round {
			continue
		}
		for _, p := range team.Roster {
			ids = append(ids, p.SteamID)
		}
	}
	return ids, nil
}

func (f *fakeStore) ForTournament(_ context.Context, _ uuid.UUID) ([]models.PlayerMatchStat, error) {
	return append([]models.PlayerMatchStat(nil), f.stats...), nil
}

// completeRound marks every match in the round completed.
func (f *fakeStore) completeRound(round int) {
	for i := range f.matches {
		if f.matches[i].Round == round {
			f.matches[i].Status = models.MatchCompleted
		}
	}
}

// testPlayer builds a player with the given skill and lifetime match count.
func testPlayer(id string, skill float64, matches int) models.Player {
	return models.Player{
		SteamID:       id,
		Name:          "player-" + id,
		Skill:         skill,
		StartingSkill: skill,
		MatchesPlayed: matches,
	}
}

// newTestService wires a Service around a fakeStore holding the given
// tournament and players, all of them registered. The returned hook captures
// log output for warning assertions.
func newTestService(t *models.ShuffleTournament, players []models.Player) (*Service, *fakeStore, *test.Hook) {
	store := &fakeStore{
		tournament: t,
		players:    make(map[string]models.Player, len(players)),
	}
	for _, p := range players {
		store.players[p.SteamID] = p
		store.regs = append(store.regs, p.SteamID)
	}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	svc := NewService(store, store, store, store, store, matchconfig.NewGenerator(), logger)
	return svc, store, hook
}

// testTournament builds an in_progress tournament with one map per round.
func testTournament(teamSize int, maps ...string) *models.ShuffleTournament {
	return &models.ShuffleTournament{
		ID:          uuid.New(),
		Name:        "friday mix",
		Status:      models.StatusInProgress,
		MapSequence: maps,
		TeamSize:    teamSize,
		RoundPolicy: models.PolicyFirstTo13,
		CreatedAt:   time.Now().UTC(),
	}
}
