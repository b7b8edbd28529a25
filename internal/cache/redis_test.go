package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLeaderboardKeyIsPerTournament(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.NotEqual(t, leaderboardKey(a), leaderboardKey(b))
	assert.Equal(t, "fraghouse:leaderboard:"+a.String(), leaderboardKey(a))
}

func TestCacheDegradesWithoutRedis(t *testing.T) {
	// With no connected client every operation is a no-op: reads miss,
	// writes and invalidations succeed silently.
	Rdb = nil
	ctx := context.Background()
	id := uuid.New()

	_, ok := GetLeaderboard(ctx, id)
	assert.False(t, ok)
	assert.NoError(t, SetLeaderboard(ctx, id, []byte(`[]`)))
	assert.NoError(t, InvalidateLeaderboard(ctx, id))
}
