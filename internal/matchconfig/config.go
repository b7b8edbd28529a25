// internal/matchconfig/config.go
package matchconfig

import (
	"fmt"

	"github.com/openfrag/fraghouse/internal/models"
)

// Side assignments recognized by the game server config format.
const (
	SideTeam1CT = "team1_ct"
	SideTeam2CT = "team2_ct"
)

// TeamConfig names one side of a match and lists its roster, keyed by steam id.
type TeamConfig struct {
	Name    string            `json:"name"`
	Players map[string]string `json:"players"`
}

// Config is the match configuration blob handed to the game server, in the
// get5 config shape. The shuffle scheduler mutates SkipVeto, Maplist, and
// MapSides after generation; everything else is fixed at generation time.
type Config struct {
	MatchID string `json:"matchid"`

	NumMaps  int      `json:"num_maps"`
	Maplist  []string `json:"maplist"`
	SkipVeto bool     `json:"skip_veto"`
	MapSides []string `json:"map_sides,omitempty"`

	PlayersPerTeam    int `json:"players_per_team"`
	MinPlayersToReady int `json:"min_players_to_ready"`

	Team1 TeamConfig `json:"team1"`
	Team2 TeamConfig `json:"team2"`

	Cvars map[string]string `json:"cvars,omitempty"`
}

// Generator builds match configs from tournament settings.
type Generator struct{}

// NewGenerator returns a config Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces a match config for one pairing. The returned config has
// the full map sequence and veto enabled; shuffle rounds override both.
func (g *Generator) Generate(t *models.ShuffleTournament, team1, team2 *models.SyntheticTeam, slug string) *Config {
	cfg := &Config{
		MatchID:           slug,
		NumMaps:           1,
		Maplist:           append([]string(nil), t.MapSequence...),
		PlayersPerTeam:    t.TeamSize,
		MinPlayersToReady: t.TeamSize,
		Team1:             teamConfig(team1),
		Team2:             teamConfig(team2),
		Cvars:             map[string]string{},
	}

	switch t.RoundPolicy {
	case models.PolicyMaxRounds:
		cfg.Cvars["mp_maxrounds"] = fmt.Sprintf("%d", t.MaxRounds)
	default:
		// first_to_13 is the server default round cap
		cfg.Cvars["mp_maxrounds"] = "24"
	}
	if t.Overtime {
		cfg.Cvars["mp_overtime_enable"] = "1"
	} else {
		cfg.Cvars["mp_overtime_enable"] = "0"
	}
	return cfg
}

func teamConfig(team *models.SyntheticTeam) TeamConfig {
	players := make(map[string]string, len(team.Roster))
	for _, p := range team.Roster {
		players[p.SteamID] = p.Name
	}
	return TeamConfig{
		Name:    team.Name,
		Players: players,
	}
}
