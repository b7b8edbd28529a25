package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openfrag/fraghouse/internal/shuffle"
)

// writeJSON serializes v to the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps core errors onto HTTP status codes: validation failures
// are the operator's to fix (400), missing rows are 404, everything else is
// a server fault.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shuffle.ErrInvalidConfig),
		errors.Is(err, shuffle.ErrInvalidRound),
		errors.Is(err, shuffle.ErrWrongStatus),
		errors.Is(err, shuffle.ErrNoPlayers),
		errors.Is(err, shuffle.ErrInsufficientPlayers):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, shuffle.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// tournamentIDFromQuery parses the tournament_id query parameter.
func tournamentIDFromQuery(r *http.Request) (uuid.UUID, error) {
	raw := r.URL.Query().Get("tournament_id")
	if raw == "" {
		return uuid.Nil, errors.New("tournament_id query parameter is required")
	}
	return uuid.Parse(raw)
}
