// internal/shuffle/tournament.go
package shuffle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openfrag/fraghouse/internal/models"
)

// CreateConfig carries the operator's settings for a new shuffle tournament.
type CreateConfig struct {
	Name        string   `json:"name"`
	MapSequence []string `json:"map_sequence"`
	TeamSize    int      `json:"team_size"`
	RoundPolicy string   `json:"round_policy"`
	MaxRounds   int      `json:"max_rounds"`
	Overtime    bool     `json:"overtime"`

	RatingTemplate *string `json:"rating_template,omitempty"`
}

// CreateTournament validates the config and persists a new shuffle
// tournament in setup status. Any prior shuffle tournament is deleted by the
// store: only one exists per deployment.
func (s *Service) CreateTournament(ctx context.Context, cfg CreateConfig) (*models.ShuffleTournament, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: a tournament name is required", ErrInvalidConfig)
	}
	if len(cfg.MapSequence) == 0 {
		return nil, fmt.Errorf("%w: the map sequence must contain at least one map (one per round)", ErrInvalidConfig)
	}
	if cfg.TeamSize < 1 {
		return nil, fmt.Errorf("%w: team size must be at least 1, got %d", ErrInvalidConfig, cfg.TeamSize)
	}
	policy := cfg.RoundPolicy
	if policy == "" {
		policy = models.PolicyFirstTo13
	}
	switch policy {
	case models.PolicyFirstTo13:
	case models.PolicyMaxRounds:
		if cfg.MaxRounds < 1 {
			return nil, fmt.Errorf("%w: max_rounds must be positive when using the max_rounds policy, got %d",
				ErrInvalidConfig, cfg.MaxRounds)
		}
	default:
		return nil, fmt.Errorf("%w: unknown round policy %q", ErrInvalidConfig, cfg.RoundPolicy)
	}

	t := &models.ShuffleTournament{
		ID:             uuid.New(),
		Name:           cfg.Name,
		Status:         models.StatusSetup,
		MapSequence:    append([]string(nil), cfg.MapSequence...),
		TeamSize:       cfg.TeamSize,
		RoundPolicy:    policy,
		MaxRounds:      cfg.MaxRounds,
		Overtime:       cfg.Overtime,
		RatingTemplate: cfg.RatingTemplate,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Tournaments.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create shuffle tournament: %w", err)
	}
	s.Log.WithFields(map[string]interface{}{
		"tournament": t.ID,
		"rounds":     t.TotalRounds(),
		"team_size":  t.TeamSize,
	}).Info("shuffle tournament created")
	return t, nil
}

// RegistrationOutcome is the per-player result of a bulk registration call.
// Bulk operations never abort on a single bad item.
type RegistrationOutcome struct {
	SteamID string `json:"steam_id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// RegistrationReport summarizes a bulk registration mutation.
type RegistrationReport struct {
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Outcomes  []RegistrationOutcome `json:"outcomes"`
}

// RegisterPlayers adds players to the tournament roster. Each id is handled
// independently; unknown players and duplicates fail their own item only.
// Registrations are mutable only while the tournament is in setup.
func (s *Service) RegisterPlayers(ctx context.Context, tournamentID uuid.UUID, steamIDs []string) (*RegistrationReport, error) {
	t, err := s.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	if t.Status != models.StatusSetup {
		return nil, fmt.Errorf("%w: registrations are only mutable in setup, status is %q", ErrWrongStatus, t.Status)
	}

	known, err := s.Players.GetByIDs(ctx, steamIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve players: %w", err)
	}
	knownSet := make(map[string]bool, len(known))
	for _, p := range known {
		knownSet[p.SteamID] = true
	}

	registered, err := s.Registrations.RegisteredIDs(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}
	registeredSet := make(map[string]bool, len(registered))
	for _, id := range registered {
		registeredSet[id] = true
	}

	report := &RegistrationReport{}
	for _, id := range steamIDs {
		outcome := RegistrationOutcome{SteamID: id, OK: true}
		switch {
		case !knownSet[id]:
			outcome.OK = false
			outcome.Error = "unknown player"
		case registeredSet[id]:
			outcome.OK = false
			outcome.Error = "already registered"
		default:
			err := s.Registrations.Insert(ctx, &models.Registration{
				TournamentID: tournamentID,
				SteamID:      id,
				RegisteredAt: time.Now().UTC(),
			})
			if err != nil {
				outcome.OK = false
				outcome.Error = err.Error()
			} else {
				registeredSet[id] = true
			}
		}
		if outcome.OK {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report, nil
}

// SetRegisteredPlayers replaces the tournament roster with exactly the given
// set: missing players are registered, extras are unregistered. Per-item
// failures are reported, not fatal.
func (s *Service) SetRegisteredPlayers(ctx context.Context, tournamentID uuid.UUID, steamIDs []string) (*RegistrationReport, error) {
	t, err := s.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	if t.Status != models.StatusSetup {
		return nil, fmt.Errorf("%w: registrations are only mutable in setup, status is %q", ErrWrongStatus, t.Status)
	}

	current, err := s.Registrations.RegisteredIDs(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}
	wanted := make(map[string]bool, len(steamIDs))
	for _, id := range steamIDs {
		wanted[id] = true
	}

	report := &RegistrationReport{}
	for _, id := range current {
		if wanted[id] {
			continue
		}
		outcome := RegistrationOutcome{SteamID: id, OK: true}
		if err := s.Registrations.Delete(ctx, tournamentID, id); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
			report.Failed++
		} else {
			report.Succeeded++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	currentSet := make(map[string]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	var toAdd []string
	for _, id := range steamIDs {
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	if len(toAdd) > 0 {
		added, err := s.RegisterPlayers(ctx, tournamentID, toAdd)
		if err != nil {
			return nil, err
		}
		report.Succeeded += added.Succeeded
		report.Failed += added.Failed
		report.Outcomes = append(report.Outcomes, added.Outcomes...)
	}
	return report, nil
}
