// internal/shuffle/scheduler.go
package shuffle

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/openfrag/fraghouse/internal/matchconfig"
	"github.com/openfrag/fraghouse/internal/models"
)

// RoundResult is what GenerateRound hands back to the caller for display:
// the created matches, the synthetic teams behind them, who sat out, and how
// balanced the partition came out.
type RoundResult struct {
	Round   int                    `json:"round"`
	MapName string                 `json:"map_name"`
	Matches []models.ShuffleMatch  `json:"matches"`
	Teams   []models.SyntheticTeam `json:"teams"`
	SitOuts []Player               `json:"sit_outs,omitempty"`
	Quality BalanceQuality         `json:"quality"`
}

// GenerateRound balances the registered pool into teams, applies the
// rotation-fairness policy, and persists the round's synthetic teams and
// pending matches in one transaction.
//
// Preconditions: 1 <= round <= total rounds, and at least two full teams'
// worth of registered players.
func (s *Service) GenerateRound(ctx context.Context, tournamentID uuid.UUID, round int) (*RoundResult, error) {
	t, err := s.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	if round < 1 || round > t.TotalRounds() {
		return nil, fmt.Errorf("%w: round %d is outside 1..%d", ErrInvalidRound, round, t.TotalRounds())
	}

	ids, err := s.Registrations.RegisteredIDs(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}
	minPlayers := 2 * t.TeamSize
	if len(ids) < minPlayers {
		return nil, fmt.Errorf("%w: need %d more registered players (%d registered, minimum %d for one match)",
			ErrInsufficientPlayers, minPlayers-len(ids), len(ids), minPlayers)
	}

	records, err := s.Players.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve players: %w", err)
	}
	pool := make([]Player, len(records))
	for i, p := range records {
		pool[i] = Player{
			SteamID:       p.SteamID,
			Name:          p.Name,
			AvatarURL:     p.AvatarURL,
			Skill:         p.Skill,
			MatchesPlayed: p.MatchesPlayed,
		}
	}

	balance, err := BalanceTeams(pool, t.TeamSize)
	if err != nil {
		return nil, err
	}

	teams := balance.Teams
	pairCount := len(teams) / 2
	formed := teams[:pairCount*2]
	sitOuts := append([]Player(nil), balance.Leftover...)

	// Odd team count leaves the last-indexed team unmatched. From round two
	// onwards the rotation policy tries to swap in a leftover member who sat
	// out the previous round.
	if len(teams)%2 == 1 {
		leftoverTeam := teams[len(teams)-1]
		if round > 1 {
			lastIDs, err := s.Matches.RoundPlayerIDs(ctx, tournamentID, round-1)
			if err != nil {
				return nil, fmt.Errorf("load previous round players: %w", err)
			}
			lastRound := make(map[string]bool, len(lastIDs))
			for _, id := range lastIDs {
				lastRound[id] = true
			}
			if swap := decideRotationSwap(lastRound, leftoverTeam, formed); swap != nil {
				formed[swap.TeamIndex][swap.PlayerIndex] = swap.In
				for i, p := range leftoverTeam {
					if p.SteamID == swap.In.SteamID {
						leftoverTeam[i] = swap.Out
						break
					}
				}
				s.Log.WithFields(map[string]interface{}{
					"round":    round,
					"benched":  swap.Out.SteamID,
					"rotated":  swap.In.SteamID,
					"team_idx": swap.TeamIndex,
				}).Info("rotation swap applied for sit-out fairness")
			} else {
				s.Log.WithFields(map[string]interface{}{
					"round":   round,
					"sitting": len(leftoverTeam),
				}).Warn("no eligible rotation swap, leftover team sits out")
			}
		}
		sitOuts = append(sitOuts, leftoverTeam...)
	}
	if len(sitOuts) > 0 {
		names := make([]string, len(sitOuts))
		for i, p := range sitOuts {
			names[i] = p.SteamID
		}
		s.Log.WithFields(map[string]interface{}{
			"round":   round,
			"players": names,
		}).Warn("players sitting out this round")
	}

	mapName := t.MapSequence[round-1]
	syntheticTeams := make([]models.SyntheticTeam, 0, pairCount*2)
	matches := make([]models.ShuffleMatch, 0, pairCount)
	now := time.Now().UTC()

	for m := 1; m <= pairCount; m++ {
		team1 := models.SyntheticTeam{
			ID:           fmt.Sprintf("shuffle-r%d-m%d-team1", round, m),
			TournamentID: tournamentID,
			Round:        round,
			Name:         fmt.Sprintf("Round %d Match %d Team 1", round, m),
			Roster:       Roster(formed[2*m-2]),
		}
		team2 := models.SyntheticTeam{
			ID:           fmt.Sprintf("shuffle-r%d-m%d-team2", round, m),
			TournamentID: tournamentID,
			Round:        round,
			Name:         fmt.Sprintf("Round %d Match %d Team 2", round, m),
			Roster:       Roster(formed[2*m-1]),
		}

		slug := fmt.Sprintf("shuffle-r%d-m%d", round, m)
		cfg := s.Configs.Generate(t, &team1, &team2, slug)
		// Shuffle rounds play one pre-selected map: no veto, random sides.
		cfg.SkipVeto = true
		cfg.NumMaps = 1
		cfg.Maplist = []string{mapName}
		if rand.Intn(2) == 0 {
			cfg.MapSides = []string{matchconfig.SideTeam1CT}
		} else {
			cfg.MapSides = []string{matchconfig.SideTeam2CT}
		}
		blob, err := json.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshal match config: %w", err)
		}

		syntheticTeams = append(syntheticTeams, team1, team2)
		matches = append(matches, models.ShuffleMatch{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Round:        round,
			MatchNumber:  m,
			Team1ID:      team1.ID,
			Team2ID:      team2.ID,
			MapName:      mapName,
			Config:       blob,
			Status:       models.MatchPending,
			CreatedAt:    now,
		})
	}

	if err := s.Matches.CreateRound(ctx, syntheticTeams, matches); err != nil {
		return nil, fmt.Errorf("persist round %d: %w", round, err)
	}

	s.Log.WithFields(map[string]interface{}{
		"tournament": tournamentID,
		"round":      round,
		"map":        mapName,
		"matches":    len(matches),
		"sit_outs":   len(sitOuts),
	}).Info("shuffle round generated")

	return &RoundResult{
		Round:   round,
		MapName: mapName,
		Matches: matches,
		Teams:   syntheticTeams,
		SitOuts: sitOuts,
		Quality: balance.Quality,
	}, nil
}
