// internal/handlers/shuffle.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/openfrag/fraghouse/internal/cache"
	"github.com/openfrag/fraghouse/internal/database"
	"github.com/openfrag/fraghouse/internal/models"
	"github.com/openfrag/fraghouse/internal/shuffle"
)

// CreateShuffleTournamentHandler creates a new shuffle tournament, replacing
// any prior one.
func CreateShuffleTournamentHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg shuffle.CreateConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "bad tournament payload", http.StatusBadRequest)
			return
		}
		t, err := s.CreateTournament(r.Context(), cfg)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

// GetShuffleTournamentHandler returns the current shuffle tournament.
func GetShuffleTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := database.TournamentStore{}.Latest(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

type rosterRequest struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	SteamIDs     []string  `json:"steam_ids"`
}

// RegisterPlayersHandler adds players to the roster; per-item outcomes are
// returned, one bad id never fails the batch.
func RegisterPlayersHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rosterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad register payload", http.StatusBadRequest)
			return
		}
		report, err := s.RegisterPlayers(r.Context(), req.TournamentID, req.SteamIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// SetRegisteredPlayersHandler replaces the roster with exactly the given set.
func SetRegisteredPlayersHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rosterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad roster payload", http.StatusBadRequest)
			return
		}
		report, err := s.SetRegisteredPlayers(r.Context(), req.TournamentID, req.SteamIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// GenerateRoundHandler creates matches for an explicit round number.
func GenerateRoundHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TournamentID uuid.UUID `json:"tournament_id"`
			Round        int       `json:"round"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad round payload", http.StatusBadRequest)
			return
		}
		result, err := s.GenerateRound(r.Context(), req.TournamentID, req.Round)
		if err != nil {
			writeError(w, err)
			return
		}
		cache.InvalidateLeaderboard(r.Context(), req.TournamentID)
		writeJSON(w, http.StatusCreated, result)
	}
}

// CheckRoundCompletionHandler reports whether a round's matches all finished.
func CheckRoundCompletionHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentIDFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		round, err := strconv.Atoi(r.URL.Query().Get("round"))
		if err != nil || round < 1 {
			http.Error(w, "round query parameter must be a positive integer", http.StatusBadRequest)
			return
		}
		done, err := s.CheckRoundCompletion(r.Context(), id, round)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"round": round, "complete": done})
	}
}

// AdvanceHandler drives the advancement state machine. Safe to call from a
// poll loop: it returns 200 with advanced=false while the round is still in
// progress.
func AdvanceHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TournamentID uuid.UUID `json:"tournament_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad advance payload", http.StatusBadRequest)
			return
		}
		result, err := s.AdvanceToNextRound(r.Context(), req.TournamentID)
		if err != nil {
			writeError(w, err)
			return
		}
		if result == nil {
			writeJSON(w, http.StatusOK, map[string]bool{"advanced": false})
			return
		}
		cache.InvalidateLeaderboard(r.Context(), req.TournamentID)
		writeJSON(w, http.StatusOK, map[string]interface{}{"advanced": true, "result": result})
	}
}

// LeaderboardHandler serves the ranked leaderboard, with a short-TTL Redis
// cache in front of the aggregation query.
func LeaderboardHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentIDFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if cached, ok := cache.GetLeaderboard(r.Context(), id); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
		entries, err := s.PlayerLeaderboard(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		payload, err := json.Marshal(entries)
		if err != nil {
			writeError(w, err)
			return
		}
		cache.SetLeaderboard(r.Context(), id, payload)
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}
}

// StandingsHandler serves the standings view: leaderboard plus the active
// round's progress.
func StandingsHandler(s *shuffle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentIDFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		standings, err := s.TournamentStandings(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

// SetMatchStatusHandler lets an operator move a match through its lifecycle
// when the game server cannot report it itself.
func SetMatchStatusHandler() http.HandlerFunc {
	valid := map[string]bool{
		models.MatchPending:   true,
		models.MatchLive:      true,
		models.MatchCompleted: true,
		models.MatchCancelled: true,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TournamentID uuid.UUID `json:"tournament_id"`
			MatchID      uuid.UUID `json:"match_id"`
			Status       string    `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad status payload", http.StatusBadRequest)
			return
		}
		if !valid[req.Status] {
			http.Error(w, "invalid match status", http.StatusBadRequest)
			return
		}
		if err := (database.MatchStore{}).SetMatchStatus(r.Context(), req.MatchID, req.Status); err != nil {
			writeError(w, err)
			return
		}
		cache.InvalidateLeaderboard(r.Context(), req.TournamentID)
		writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
	}
}
