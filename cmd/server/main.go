// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/openfrag/fraghouse/internal/auth"
	"github.com/openfrag/fraghouse/internal/cache"
	"github.com/openfrag/fraghouse/internal/database"
	"github.com/openfrag/fraghouse/internal/handlers"
	"github.com/openfrag/fraghouse/internal/matchconfig"
	"github.com/openfrag/fraghouse/internal/middleware"
	"github.com/openfrag/fraghouse/internal/shuffle"
)

func main() {
	auth.Init()
	database.ConnectDB()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := cache.ConnectRedis(); err != nil {
		logger.Warnf("redis unavailable, leaderboard cache disabled: %v", err)
	}

	svc := shuffle.NewService(
		database.PlayerStore{},
		database.TournamentStore{},
		database.RegistrationStore{},
		database.MatchStore{},
		database.StatsStore{},
		matchconfig.NewGenerator(),
		logger,
	)

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", handlers.LoginHandler)

	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.LogMiddleware(logger)(middleware.AuthMiddleware(h))
	}

	// shuffle tournament endpoints
	mux.Handle("/shuffle/create", admin(handlers.CreateShuffleTournamentHandler(svc)))
	mux.Handle("/shuffle/tournament", admin(handlers.GetShuffleTournamentHandler()))
	mux.Handle("/shuffle/register", admin(handlers.RegisterPlayersHandler(svc)))
	mux.Handle("/shuffle/roster", admin(handlers.SetRegisteredPlayersHandler(svc)))
	mux.Handle("/shuffle/round/generate", admin(handlers.GenerateRoundHandler(svc)))
	mux.Handle("/shuffle/round/complete", admin(handlers.CheckRoundCompletionHandler(svc)))
	mux.Handle("/shuffle/advance", admin(handlers.AdvanceHandler(svc)))
	mux.Handle("/shuffle/match/status", admin(handlers.SetMatchStatusHandler()))
	mux.Handle("/shuffle/leaderboard", admin(handlers.LeaderboardHandler(svc)))
	mux.Handle("/shuffle/standings", admin(handlers.StandingsHandler(svc)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
