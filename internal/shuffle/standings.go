// internal/shuffle/standings.go
package shuffle

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/openfrag/fraghouse/internal/models"
)

// LeaderboardEntry is one player's aggregated line on the leaderboard.
// AvgADR stays nil when no match recorded ADR for the player; it is never
// fabricated as zero.
type LeaderboardEntry struct {
	SteamID   string `json:"steam_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`

	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`

	Rating      float64  `json:"rating"`
	RatingDelta float64  `json:"rating_delta"`
	AvgADR      *float64 `json:"avg_adr,omitempty"`
}

// RoundProgress summarizes the active round's match counts.
type RoundProgress struct {
	Round            int  `json:"round"`
	TotalMatches     int  `json:"total_matches"`
	CompletedMatches int  `json:"completed_matches"`
	PendingMatches   int  `json:"pending_matches"`
	Complete         bool `json:"complete"`
}

// Standings is the full tournament standings view: the ranked leaderboard
// plus current round progress. Progress is nil before any round exists.
type Standings struct {
	Tournament  *models.ShuffleTournament `json:"tournament"`
	Progress    *RoundProgress            `json:"progress,omitempty"`
	Leaderboard []LeaderboardEntry        `json:"leaderboard"`
}

// PlayerLeaderboard aggregates persisted match results into a ranked
// leaderboard over every currently registered player. Ordering: wins
// descending, then current rating, then average ADR (missing ADR compares
// as zero but is reported as absent). The result is deterministic for fixed
// input data.
func (s *Service) PlayerLeaderboard(ctx context.Context, tournamentID uuid.UUID) ([]LeaderboardEntry, error) {
	ids, err := s.Registrations.RegisteredIDs(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}
	players, err := s.Players.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve players: %w", err)
	}
	stats, err := s.Stats.ForTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load match stats: %w", err)
	}

	type agg struct {
		wins, losses int
		adrSum       float64
		adrCount     int
	}
	byPlayer := make(map[string]*agg, len(players))
	for _, st := range stats {
		a := byPlayer[st.SteamID]
		if a == nil {
			a = &agg{}
			byPlayer[st.SteamID] = a
		}
		if st.Won {
			a.wins++
		} else {
			a.losses++
		}
		// Matches without a recorded ADR are excluded from the average.
		if st.ADR != nil {
			a.adrSum += *st.ADR
			a.adrCount++
		}
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		e := LeaderboardEntry{
			SteamID:     p.SteamID,
			Name:        p.Name,
			AvatarURL:   p.AvatarURL,
			Rating:      p.Skill,
			RatingDelta: p.Skill - p.StartingSkill,
		}
		if a := byPlayer[p.SteamID]; a != nil {
			e.Wins = a.wins
			e.Losses = a.losses
			if total := a.wins + a.losses; total > 0 {
				e.WinRate = float64(a.wins) / float64(total)
			}
			if a.adrCount > 0 {
				avg := a.adrSum / float64(a.adrCount)
				e.AvgADR = &avg
			}
		}
		entries = append(entries, e)
	}

	// Fix the pre-sort order so repeated calls rank ties identically
	// regardless of how the store returned the rows.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SteamID < entries[j].SteamID
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return adrForCompare(entries[i]) > adrForCompare(entries[j])
	})
	return entries, nil
}

func adrForCompare(e LeaderboardEntry) float64 {
	if e.AvgADR == nil {
		return 0
	}
	return *e.AvgADR
}

// TournamentStandings returns the leaderboard together with the active
// round's progress. The current round is derived as the highest round with
// any matches, never stored separately.
func (s *Service) TournamentStandings(ctx context.Context, tournamentID uuid.UUID) (*Standings, error) {
	t, err := s.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	leaderboard, err := s.PlayerLeaderboard(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	standings := &Standings{
		Tournament:  t,
		Leaderboard: leaderboard,
	}

	highest, err := s.Matches.HighestRound(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("find current round: %w", err)
	}
	if highest > 0 {
		matches, err := s.Matches.MatchesForRound(ctx, tournamentID, highest)
		if err != nil {
			return nil, fmt.Errorf("load round %d matches: %w", highest, err)
		}
		progress := &RoundProgress{
			Round:        highest,
			TotalMatches: len(matches),
		}
		for _, m := range matches {
			switch m.Status {
			case models.MatchCompleted:
				progress.CompletedMatches++
			case models.MatchPending, models.MatchLive:
				progress.PendingMatches++
			}
		}
		progress.Complete = progress.TotalMatches > 0 && progress.CompletedMatches == progress.TotalMatches
		standings.Progress = progress
	}
	return standings, nil
}
