// internal/shuffle/balancer.go
package shuffle

import (
	"fmt"
	"math"
	"sort"

	"github.com/openfrag/fraghouse/internal/models"
	"github.com/openfrag/fraghouse/internal/rating"
)

// maxOptimizationPasses bounds the local-search swap phase. Each pass scans
// every cross-team player pair; in practice the search converges in one or
// two passes for pools under a hundred players.
const maxOptimizationPasses = 10

// Player is the balancer's view of a registered player: identity plus the
// inputs the rating model needs.
type Player struct {
	SteamID       string
	Name          string
	AvatarURL     string
	Skill         float64
	MatchesPlayed int
}

// Roster converts a balanced team into the frozen snapshot stored on a
// synthetic team.
func Roster(team []Player) []models.RosterPlayer {
	roster := make([]models.RosterPlayer, len(team))
	for i, p := range team {
		roster[i] = models.RosterPlayer{
			SteamID:   p.SteamID,
			Name:      p.Name,
			AvatarURL: p.AvatarURL,
		}
	}
	return roster
}

// BalanceQuality reports how even the produced teams are. Variances are
// population variances over per-team averages; spreads are the largest
// pairwise difference between two team averages.
type BalanceQuality struct {
	SkillVariance    float64 `json:"skill_variance"`
	OrdinalVariance  float64 `json:"ordinal_variance"`
	MaxSkillSpread   float64 `json:"max_skill_spread"`
	MaxOrdinalSpread float64 `json:"max_ordinal_spread"`

	// PreOptimizationVariance is the ordinal variance after greedy seeding,
	// before the swap search ran. Never less than OrdinalVariance.
	PreOptimizationVariance float64 `json:"pre_optimization_variance"`
	SwapsApplied            int     `json:"swaps_applied"`
}

// BalanceResult is the outcome of one balancing run. Leftover holds the
// n mod k lowest-ranked players who did not fit into a full team; how they
// are handled (excluded, or rescued by the rotation policy) is the caller's
// decision.
type BalanceResult struct {
	Teams    [][]Player
	Leftover []Player
	Quality  BalanceQuality
}

type ratedPlayer struct {
	Player
	ordinal float64
}

// BalanceTeams partitions players into floor(n/teamSize) teams of exactly
// teamSize members, minimizing the spread of per-team average ordinals.
//
// The assignment is greedy seeding followed by a bounded local search: it
// finds a good partition quickly but is a heuristic, not a guaranteed global
// optimum.
func BalanceTeams(players []Player, teamSize int) (*BalanceResult, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if teamSize < 1 {
		return nil, fmt.Errorf("%w: team size must be at least 1, got %d", ErrInvalidConfig, teamSize)
	}
	if len(players) < teamSize {
		return nil, fmt.Errorf("%w: need at least %d players for one team, got %d",
			ErrInsufficientPlayers, teamSize, len(players))
	}

	rated := make([]ratedPlayer, len(players))
	for i, p := range players {
		rated[i] = ratedPlayer{
			Player:  p,
			ordinal: rating.OrdinalForSkill(p.Skill, p.MatchesPlayed),
		}
	}
	// Descending by ordinal; stable so equal-rated players keep input order.
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].ordinal > rated[j].ordinal
	})

	numTeams := len(rated) / teamSize
	teams := make([][]ratedPlayer, numTeams)

	// Greedy seeding: strongest remaining player goes to the weakest
	// non-full team. Empty teams count as weakest, first one wins.
	for _, p := range rated[:numTeams*teamSize] {
		target := -1
		for i, team := range teams {
			if len(team) >= teamSize {
				continue
			}
			if len(team) == 0 {
				target = i
				break
			}
			if target == -1 || avgOrdinal(team) < avgOrdinal(teams[target]) {
				target = i
			}
		}
		teams[target] = append(teams[target], p)
	}

	preVariance := ordinalVariance(teams)
	swaps := 0
	if numTeams >= 2 {
		swaps = optimizeSwaps(teams)
	}

	result := &BalanceResult{
		Teams:   make([][]Player, numTeams),
		Quality: measureQuality(teams),
	}
	result.Quality.PreOptimizationVariance = preVariance
	result.Quality.SwapsApplied = swaps
	for i, team := range teams {
		result.Teams[i] = make([]Player, len(team))
		for j, p := range team {
			result.Teams[i][j] = p.Player
		}
	}
	for _, p := range rated[numTeams*teamSize:] {
		result.Leftover = append(result.Leftover, p.Player)
	}
	return result, nil
}

// optimizeSwaps runs the local search: scan every cross-team player pair,
// apply the first swap that strictly reduces the variance of per-team
// average ordinals, restart after every applied swap. Returns the number of
// swaps applied.
func optimizeSwaps(teams [][]ratedPlayer) int {
	swaps := 0
	for pass := 0; pass < maxOptimizationPasses; pass++ {
		improved := false
	scan:
		for a := 0; a < len(teams); a++ {
			for b := a + 1; b < len(teams); b++ {
				for i := range teams[a] {
					for j := range teams[b] {
						before := ordinalVariance(teams)
						teams[a][i], teams[b][j] = teams[b][j], teams[a][i]
						if ordinalVariance(teams) < before {
							swaps++
							improved = true
							break scan
						}
						// revert
						teams[a][i], teams[b][j] = teams[b][j], teams[a][i]
					}
				}
			}
		}
		if !improved {
			break
		}
	}
	return swaps
}

func avgOrdinal(team []ratedPlayer) float64 {
	sum := 0.0
	for _, p := range team {
		sum += p.ordinal
	}
	return sum / float64(len(team))
}

func avgSkill(team []ratedPlayer) float64 {
	sum := 0.0
	for _, p := range team {
		sum += p.Skill
	}
	return sum / float64(len(team))
}

func ordinalVariance(teams [][]ratedPlayer) float64 {
	avgs := make([]float64, len(teams))
	for i, team := range teams {
		avgs[i] = avgOrdinal(team)
	}
	return variance(avgs)
}

// variance is the population variance of xs.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	v := 0.0
	for _, x := range xs {
		d := x - mean
		v += d * d
	}
	return v / float64(len(xs))
}

func maxSpread(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return hi - lo
}

func measureQuality(teams [][]ratedPlayer) BalanceQuality {
	skillAvgs := make([]float64, len(teams))
	ordinalAvgs := make([]float64, len(teams))
	for i, team := range teams {
		skillAvgs[i] = avgSkill(team)
		ordinalAvgs[i] = avgOrdinal(team)
	}
	return BalanceQuality{
		SkillVariance:    variance(skillAvgs),
		OrdinalVariance:  variance(ordinalAvgs),
		MaxSkillSpread:   maxSpread(skillAvgs),
		MaxOrdinalSpread: maxSpread(ordinalAvgs),
	}
}
