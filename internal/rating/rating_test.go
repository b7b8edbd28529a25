package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinalIncreasesWithSkill(t *testing.T) {
	low := OrdinalForSkill(1200, 20)
	high := OrdinalForSkill(1800, 20)
	assert.Greater(t, high, low, "a higher skill score must produce a higher ordinal")
}

func TestSigmaShrinksWithMatches(t *testing.T) {
	fresh := ToRating(1500, 0)
	veteran := ToRating(1500, 50)
	assert.Equal(t, fresh.Mu, veteran.Mu)
	assert.Less(t, veteran.Sigma, fresh.Sigma, "confidence should tighten with matches played")

	// Same mean, tighter sigma: the veteran's conservative estimate is higher.
	assert.Greater(t, Ordinal(veteran), Ordinal(fresh))
}

func TestOrdinalIsConservative(t *testing.T) {
	r := ToRating(1500, 0)
	assert.Less(t, Ordinal(r), r.Mu, "ordinal must sit below the mean estimate")
}
