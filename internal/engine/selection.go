package engine

import (
	"github.com/DoyleJ11/bracket-backend/internal/catalog"
)

// GroupSelection is the user's call for one group. Third is a wildcard and
// is only meaningful while First and Second are both set.
type GroupSelection struct {
	First  *catalog.Team `json:"first"`
	Second *catalog.Team `json:"second"`
	Third  *catalog.Team `json:"third"`
}

func (g GroupSelection) Decided() bool { return g.First != nil && g.Second != nil }

func same(t *catalog.Team, id int) bool { return t != nil && t.ID == id }

// Place toggles team into position 1 or 2: picking the team already in the
// slot clears it, picking the team from the other slot swaps it over.
// Position 3 toggles the wildcard.
func (g GroupSelection) Place(team catalog.Team, position int) (GroupSelection, error) {
	t := &team
	switch position {
	case 1:
		switch {
		case same(g.First, team.ID):
			g.First = nil
		case same(g.Second, team.ID):
			g.First, g.Second = t, nil
		default:
			g.First = t
		}
	case 2:
		switch {
		case same(g.Second, team.ID):
			g.Second = nil
		case same(g.First, team.ID):
			g.First, g.Second = nil, t
		default:
			g.Second = t
		}
	case 3:
		if same(g.Third, team.ID) {
			g.Third = nil
			return g, nil
		}
		if !g.Decided() || same(g.First, team.ID) || same(g.Second, team.ID) {
			return g, ErrIllegalPlacement
		}
		g.Third = t
		return g, nil
	default:
		return g, ErrIllegalPlacement
	}
	if g.Third != nil && (!g.Decided() || same(g.First, g.Third.ID) || same(g.Second, g.Third.ID)) {
		g.Third = nil
	}
	return g, nil
}

func countWildcards(selections map[string]GroupSelection) int {
	n := 0
	for _, sel := range selections {
		if sel.Third != nil {
			n++
		}
	}
	return n
}

func findGroup(groups []catalog.Group, id string) (catalog.Group, int, bool) {
	for i, g := range groups {
		if g.ID == id {
			return g, i, true
		}
	}
	return catalog.Group{}, -1, false
}

// PlaceTeam applies GroupSelection.Place to one group, capping wildcards at
// Rules.Wildcards.
func PlaceTeam(s State, groupID string, teamID, position int) (State, error) {
	if s.CurrentRound != 0 {
		return s, ErrGroupStageComplete
	}
	g, _, ok := findGroup(s.Groups, groupID)
	if !ok {
		return s, ErrUnknownGroup
	}
	var team catalog.Team
	found := false
	for _, t := range g.Teams {
		if t.ID == teamID {
			team, found = t, true
			break
		}
	}
	if !found {
		return s, ErrUnknownTeam
	}

	current := s.Selections[groupID]
	if position == 3 && current.Third == nil && countWildcards(s.Selections) >= s.Rules.Wildcards {
		return s, ErrIllegalPlacement
	}
	next, err := current.Place(team, position)
	if err != nil {
		return s, err
	}
	newState := s.Clone()
	newState.Selections[groupID] = next
	return newState, nil
}

// SetStanding moves one team's standing position within its group.
func SetStanding(s State, groupID string, teamID, position int) (State, error) {
	g, i, ok := findGroup(s.Groups, groupID)
	if !ok {
		return s, ErrUnknownGroup
	}
	if !g.Has(teamID) {
		return s, ErrUnknownTeam
	}
	if position < 1 || position > len(g.Teams) {
		return s, ErrIllegalPlacement
	}
	newState := s.Clone()
	newState.Groups[i] = catalog.UpdateStanding(g, teamID, position, s.Rules.AdvancingPerGroup)
	return newState, nil
}

// AdvancingTeams orders the qualified teams for CompleteGroupStage: first and
// second of every group in group order, then the wildcards in group order.
func AdvancingTeams(groups []catalog.Group, selections map[string]GroupSelection, rules Rules) ([]catalog.Team, error) {
	teams := make([]catalog.Team, 0, rules.AdvancingTeams)
	var thirds []catalog.Team
	for _, g := range groups {
		sel := selections[g.ID]
		if !sel.Decided() {
			return nil, ErrGroupStageIncomplete
		}
		teams = append(teams, *sel.First, *sel.Second)
		if sel.Third != nil {
			thirds = append(thirds, *sel.Third)
		}
	}
	if len(thirds) != rules.Wildcards {
		return nil, ErrGroupStageIncomplete
	}
	return append(teams, thirds...), nil
}
