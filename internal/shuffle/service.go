// internal/shuffle/service.go
package shuffle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openfrag/fraghouse/internal/matchconfig"
	"github.com/openfrag/fraghouse/internal/models"
)

// PlayerDirectory resolves player identity and skill inputs. Owned by the
// player CRUD surface; the shuffle core only reads from it.
type PlayerDirectory interface {
	GetByIDs(ctx context.Context, steamIDs []string) ([]models.Player, error)
}

// TournamentStore persists shuffle tournament records.
type TournamentStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ShuffleTournament, error)
	// Create inserts a new tournament, deleting any prior shuffle tournament
	// and its children first. Only one shuffle tournament exists at a time.
	Create(ctx context.Context, t *models.ShuffleTournament) error
	SetStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error
}

// RegistrationStore persists tournament membership rows.
type RegistrationStore interface {
	RegisteredIDs(ctx context.Context, tournamentID uuid.UUID) ([]string, error)
	Insert(ctx context.Context, reg *models.Registration) error
	Delete(ctx context.Context, tournamentID uuid.UUID, steamID string) error
}

// MatchStore persists synthetic teams and per-round matches.
type MatchStore interface {
	// CreateRound persists a round's teams and matches atomically: a failure
	// partway through must leave no partial round visible to readers.
	CreateRound(ctx context.Context, teams []models.SyntheticTeam, matches []models.ShuffleMatch) error
	MatchesForRound(ctx context.Context, tournamentID uuid.UUID, round int) ([]models.ShuffleMatch, error)
	// HighestRound returns the largest round number with any matches, 0 if none.
	HighestRound(ctx context.Context, tournamentID uuid.UUID) (int, error)
	// RoundPlayerIDs returns the steam ids frozen on the round's team rosters.
	RoundPlayerIDs(ctx context.Context, tournamentID uuid.UUID, round int) ([]string, error)
}

// StatsStore reads per-player match results written by the results webhook.
type StatsStore interface {
	ForTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.PlayerMatchStat, error)
}

// ConfigGenerator builds the match config blob for a pairing.
type ConfigGenerator interface {
	Generate(t *models.ShuffleTournament, team1, team2 *models.SyntheticTeam, slug string) *matchconfig.Config
}

// Service is the shuffle tournament core: round orchestration, balancing,
// advancement, and standings. All methods are synchronous; callers are
// responsible for serializing round generation per tournament.
type Service struct {
	Players       PlayerDirectory
	Tournaments   TournamentStore
	Registrations RegistrationStore
	Matches       MatchStore
	Stats         StatsStore
	Configs       ConfigGenerator

	Log *logrus.Logger
}

// NewService wires a shuffle Service from its collaborators.
func NewService(
	players PlayerDirectory,
	tournaments TournamentStore,
	registrations RegistrationStore,
	matches MatchStore,
	stats StatsStore,
	configs ConfigGenerator,
	log *logrus.Logger,
) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		Players:       players,
		Tournaments:   tournaments,
		Registrations: registrations,
		Matches:       matches,
		Stats:         stats,
		Configs:       configs,
		Log:           log,
	}
}
