// internal/shuffle/rotation.go
package shuffle

import "sort"

// SwapDecision describes a one-for-one rotation-fairness swap: Out leaves a
// formed team and sits out, In (a leftover-team member who sat out the
// previous round) takes the vacated slot.
type SwapDecision struct {
	TeamIndex   int
	PlayerIndex int
	Out         Player
	In          Player
}

// decideRotationSwap implements the rotation-fairness policy for rounds with
// an unmatched leftover team. It is pure: no persistence, no logging.
//
// lastRound is the set of steam ids that played the previous round. If some
// leftover-team member sat out last round, the swap benches the first formed
// player who did play, in favor of the leftover candidate with the fewest
// lifetime matches. Returns nil when no eligible swap exists; the caller
// then lets the whole leftover team sit out. Best effort only, not a strict
// round-robin guarantee.
func decideRotationSwap(lastRound map[string]bool, leftoverTeam []Player, formedTeams [][]Player) *SwapDecision {
	var candidates []Player
	for _, p := range leftoverTeam {
		if !lastRound[p.SteamID] {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	// Fewest lifetime matches first; stable, so ties keep presentation order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchesPlayed < candidates[j].MatchesPlayed
	})

	for ti, team := range formedTeams {
		for pi, p := range team {
			if lastRound[p.SteamID] {
				return &SwapDecision{
					TeamIndex:   ti,
					PlayerIndex: pi,
					Out:         p,
					In:          candidates[0],
				}
			}
		}
	}
	return nil
}
