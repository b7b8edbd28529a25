// internal/rating/rating.go
package rating

import (
	"github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"
)

const (
	// DefaultZ is the openskill z factor (ordinal = mu - z*sigma).
	DefaultZ = 3
	// SkillPerMu maps the stored ladder-scale skill score onto openskill's mu
	// scale, so a 1500-rated player lands at mu = 25.
	SkillPerMu = 60.0
	// sigmaDecayMatches controls how quickly rating confidence tightens as a
	// player accumulates matches: sigma halves after this many matches.
	sigmaDecayMatches = 10.0
)

// ToRating converts a scalar skill score into a two-parameter openskill
// rating. Sigma starts at mu/z for an unknown player and shrinks as their
// lifetime match count grows, so established players balance on a tighter
// estimate than fresh imports.
func ToRating(skill float64, matchesPlayed int) types.Rating {
	mu := skill / SkillPerMu
	sigma := mu / float64(DefaultZ)
	if matchesPlayed > 0 {
		sigma /= 1.0 + float64(matchesPlayed)/sigmaDecayMatches
	}
	return types.Rating{
		Mu:    mu,
		Sigma: sigma,
		Z:     DefaultZ,
	}
}

// Ordinal collapses a rating into a single comparable scalar. It is a
// conservative estimate (mu - z*sigma): uncertain players rank below
// established players with the same mean.
func Ordinal(r types.Rating) float64 {
	return rating.Ordinal(r)
}

// OrdinalForSkill is the common one-shot path: skill score in, comparable
// ordinal out.
func OrdinalForSkill(skill float64, matchesPlayed int) float64 {
	return Ordinal(ToRating(skill, matchesPlayed))
}
