// internal/shuffle/advancement.go
package shuffle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openfrag/fraghouse/internal/models"
)

// AdvanceResult reports what AdvanceToNextRound did. Finished means the
// tournament was marked completed and no further round exists; otherwise
// NewRound holds the freshly generated round.
type AdvanceResult struct {
	Finished bool         `json:"finished"`
	NewRound *RoundResult `json:"new_round,omitempty"`
}

// CheckRoundCompletion returns true iff round r has at least one match and
// every one of them is completed. A round with zero matches is not complete:
// "never generated" must not be mistaken for "finished", so that case logs a
// distinct warning.
func (s *Service) CheckRoundCompletion(ctx context.Context, tournamentID uuid.UUID, round int) (bool, error) {
	matches, err := s.Matches.MatchesForRound(ctx, tournamentID, round)
	if err != nil {
		return false, fmt.Errorf("load round %d matches: %w", round, err)
	}
	if len(matches) == 0 {
		s.Log.WithFields(map[string]interface{}{
			"tournament": tournamentID,
			"round":      round,
		}).Warn("round completion check on a round with no matches")
		return false, nil
	}
	for _, m := range matches {
		if m.Status != models.MatchCompleted {
			return false, nil
		}
	}
	return true, nil
}

// AdvanceToNextRound inspects the current round and progresses the
// tournament: it bootstraps round one from setup, generates the next round
// when the current one is complete, and marks the tournament completed after
// the final round. It returns nil (with no side effects) while the current
// round is still in progress, so it is safe to call from a poll loop any
// number of times.
func (s *Service) AdvanceToNextRound(ctx context.Context, tournamentID uuid.UUID) (*AdvanceResult, error) {
	t, err := s.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	if t.Status == models.StatusCompleted {
		return &AdvanceResult{Finished: true}, nil
	}

	highest, err := s.Matches.HighestRound(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("find current round: %w", err)
	}
	if highest > 0 {
		done, err := s.CheckRoundCompletion(ctx, tournamentID, highest)
		if err != nil {
			return nil, err
		}
		if !done {
			return nil, nil
		}
	}

	next := highest + 1
	if next > t.TotalRounds() {
		if err := s.Tournaments.SetStatus(ctx, tournamentID, models.StatusCompleted, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("mark tournament completed: %w", err)
		}
		s.Log.WithField("tournament", tournamentID).Info("shuffle tournament completed")
		return &AdvanceResult{Finished: true}, nil
	}

	if highest == 0 && t.Status == models.StatusSetup {
		if err := s.Tournaments.SetStatus(ctx, tournamentID, models.StatusInProgress, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("start tournament: %w", err)
		}
	}

	result, err := s.GenerateRound(ctx, tournamentID, next)
	if err != nil {
		return nil, err
	}
	return &AdvanceResult{NewRound: result}, nil
}
