package engine

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidRules = errors.New("invalid tournament rules")

// Rules is the tournament shape. Round k (1-based) holds AdvancingTeams>>k
// matches.
type Rules struct {
	TotalTeams        int `json:"total_teams" mapstructure:"total_teams"`
	Groups            int `json:"groups" mapstructure:"groups"`
	TeamsPerGroup     int `json:"teams_per_group" mapstructure:"teams_per_group"`
	AdvancingPerGroup int `json:"advancing_per_group" mapstructure:"advancing_per_group"`
	Wildcards         int `json:"wildcards" mapstructure:"wildcards"`
	AdvancingTeams    int `json:"advancing_teams" mapstructure:"advancing_teams"`
	Rounds            int `json:"rounds" mapstructure:"rounds"`
}

func DefaultRules() Rules {
	return Rules{
		TotalTeams:        64,
		Groups:            12,
		TeamsPerGroup:     4,
		AdvancingPerGroup: 2,
		Wildcards:         8,
		AdvancingTeams:    32,
		Rounds:            5,
	}
}

func (r Rules) Validate() error {
	switch {
	case r.TotalTeams <= 0, r.Groups <= 0, r.TeamsPerGroup <= 0, r.AdvancingPerGroup <= 0, r.Rounds <= 0:
		return fmt.Errorf("%w: all counts must be positive", ErrInvalidRules)
	case r.Groups*r.TeamsPerGroup > r.TotalTeams:
		return fmt.Errorf("%w: %d groups of %d exceed %d teams", ErrInvalidRules, r.Groups, r.TeamsPerGroup, r.TotalTeams)
	case r.AdvancingPerGroup != 2:
		return fmt.Errorf("%w: group selections carry a first and second only", ErrInvalidRules)
	case r.AdvancingPerGroup >= r.TeamsPerGroup:
		return fmt.Errorf("%w: %d advance from groups of %d", ErrInvalidRules, r.AdvancingPerGroup, r.TeamsPerGroup)
	case r.Wildcards < 0 || r.Wildcards > r.Groups:
		return fmt.Errorf("%w: %d wildcards from %d groups", ErrInvalidRules, r.Wildcards, r.Groups)
	case r.Groups*r.AdvancingPerGroup+r.Wildcards != r.AdvancingTeams:
		return fmt.Errorf("%w: %d*%d+%d != %d advancing", ErrInvalidRules, r.Groups, r.AdvancingPerGroup, r.Wildcards, r.AdvancingTeams)
	case r.AdvancingTeams != 1<<r.Rounds:
		return fmt.Errorf("%w: %d advancing teams cannot fill %d rounds", ErrInvalidRules, r.AdvancingTeams, r.Rounds)
	}
	return nil
}

func (r Rules) MatchesInRound(round int) int {
	if round < 1 || round > r.Rounds {
		return 0
	}
	return r.AdvancingTeams >> round
}

// MatchesPerRound maps 1-based round number to match count.
func (r Rules) MatchesPerRound() map[int]int {
	m := make(map[int]int, r.Rounds)
	for k := 1; k <= r.Rounds; k++ {
		m[k] = r.MatchesInRound(k)
	}
	return m
}

// RoundName names a round by how many matches it has.
func RoundName(matches int) string {
	switch matches {
	case 1:
		return "Final"
	case 2:
		return "Semi Finals"
	case 4:
		return "Quarter Finals"
	default:
		return "Round of " + strconv.Itoa(matches*2)
	}
}

func matchID(matches, number int) string {
	switch matches {
	case 1:
		return "final"
	case 2:
		return "sf-" + strconv.Itoa(number)
	case 4:
		return "qf-" + strconv.Itoa(number)
	default:
		return "r" + strconv.Itoa(matches*2) + "-" + strconv.Itoa(number)
	}
}
