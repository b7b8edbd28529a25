package shuffle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationSwapPrefersFewestMatches(t *testing.T) {
	lastRound := map[string]bool{"p1": true, "p2": true, "p3": true, "p4": true}
	leftover := []Player{
		{SteamID: "sat1", MatchesPlayed: 12},
		{SteamID: "sat2", MatchesPlayed: 3},
		{SteamID: "p4", MatchesPlayed: 8}, // played last round, not a candidate
	}
	formed := [][]Player{
		{{SteamID: "p1", MatchesPlayed: 10}, {SteamID: "p2", MatchesPlayed: 9}},
		{{SteamID: "p3", MatchesPlayed: 7}},
	}

	swap := decideRotationSwap(lastRound, leftover, formed)
	require.NotNil(t, swap)
	assert.Equal(t, "sat2", swap.In.SteamID, "candidate with fewest lifetime matches wins")
	assert.Equal(t, "p1", swap.Out.SteamID, "first formed player who played last round is benched")
	assert.Equal(t, 0, swap.TeamIndex)
	assert.Equal(t, 0, swap.PlayerIndex)
}

func TestRotationSwapNoCandidates(t *testing.T) {
	// Every leftover member already played last round: nothing to rotate.
	lastRound := map[string]bool{"a": true, "b": true}
	leftover := []Player{{SteamID: "a"}, {SteamID: "b"}}
	formed := [][]Player{{{SteamID: "c"}}}

	assert.Nil(t, decideRotationSwap(lastRound, leftover, formed))
}

func TestRotationSwapNoBenchableOpponent(t *testing.T) {
	// Nobody in the formed teams played last round, so benching anyone would
	// be unfair in the other direction: no swap.
	lastRound := map[string]bool{"x": true}
	leftover := []Player{{SteamID: "sat", MatchesPlayed: 0}}
	formed := [][]Player{{{SteamID: "fresh1"}}, {{SteamID: "fresh2"}}}

	assert.Nil(t, decideRotationSwap(lastRound, leftover, formed))
}

func TestRotationSwapTieKeepsPresentationOrder(t *testing.T) {
	lastRound := map[string]bool{"vet": true}
	leftover := []Player{
		{SteamID: "first", MatchesPlayed: 5},
		{SteamID: "second", MatchesPlayed: 5},
	}
	formed := [][]Player{{{SteamID: "vet", MatchesPlayed: 20}}}

	swap := decideRotationSwap(lastRound, leftover, formed)
	require.NotNil(t, swap)
	assert.Equal(t, "first", swap.In.SteamID)
}
