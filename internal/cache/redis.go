// internal/cache/redis.go
package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// LeaderboardTTL bounds how stale a cached leaderboard may get between
// explicit invalidations.
var LeaderboardTTL = 30 * time.Second

// ConnectRedis initializes the global Redis client with environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

func leaderboardKey(tournamentID uuid.UUID) string {
	return "fraghouse:leaderboard:" + tournamentID.String()
}

// GetLeaderboard returns the cached leaderboard JSON for the tournament, or
// ("", false) on a miss. Redis errors count as misses: the caller recomputes
// from the database either way.
func GetLeaderboard(ctx context.Context, tournamentID uuid.UUID) (string, bool) {
	if Rdb == nil {
		return "", false
	}
	val, err := Rdb.Get(ctx, leaderboardKey(tournamentID)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetLeaderboard stores the serialized leaderboard with the configured TTL.
func SetLeaderboard(ctx context.Context, tournamentID uuid.UUID, payload []byte) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, leaderboardKey(tournamentID), payload, LeaderboardTTL).Err()
}

// InvalidateLeaderboard drops the cached leaderboard, e.g. after a round
// advances or new results land.
func InvalidateLeaderboard(ctx context.Context, tournamentID uuid.UUID) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Del(ctx, leaderboardKey(tournamentID)).Err()
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
