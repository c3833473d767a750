package engine

import (
	"github.com/DoyleJ11/bracket-backend/internal/catalog"
)

// NewState builds the pre-group-stage tournament: fresh groups and every
// bracket round shaped with empty slots.
func NewState(rules Rules, cat *catalog.Catalog) (State, error) {
	if err := rules.Validate(); err != nil {
		return State{}, err
	}
	if cat == nil {
		cat = catalog.Default()
	}
	groups, err := cat.CreateGroups(rules.Groups, rules.TeamsPerGroup)
	if err != nil {
		return State{}, err
	}
	selections := make(map[string]GroupSelection, len(groups))
	for _, g := range groups {
		selections[g.ID] = GroupSelection{}
	}
	s := State{
		CurrentRound: 0,
		Rounds:       newRounds(rules),
		Groups:       groups,
		Selections:   selections,
		Rules:        rules,
	}
	return s.withPhase(), nil
}

func newRounds(rules Rules) []Round {
	rounds := make([]Round, 0, rules.Rounds)
	for k := 1; k <= rules.Rounds; k++ {
		n := rules.MatchesInRound(k)
		matches := make([]Match, n)
		for i := range matches {
			matches[i] = Match{ID: matchID(n, i+1), Round: k, MatchNumber: i + 1}
		}
		rounds = append(rounds, Round{Round: k, Name: RoundName(n), Matches: matches})
	}
	return rounds
}

// Clone deep-copies everything a transition may write to. Teams are shared.
func (s State) Clone() State {
	out := s
	out.Rounds = cloneRounds(s.Rounds)
	out.Groups = make([]catalog.Group, len(s.Groups))
	for i, g := range s.Groups {
		out.Groups[i] = g.Clone()
	}
	out.Selections = make(map[string]GroupSelection, len(s.Selections))
	for k, v := range s.Selections {
		out.Selections[k] = v
	}
	return out
}

func cloneRounds(rounds []Round) []Round {
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		r.Matches = append([]Match(nil), r.Matches...)
		out[i] = r
	}
	return out
}

func (s State) withPhase() State {
	s.Phase = DerivePhase(s.CurrentRound, len(s.Rounds))
	return s
}

// Champion is the final's winner once the last round has been advanced.
func (s State) Champion() *catalog.Team {
	if len(s.Rounds) == 0 || s.CurrentRound <= len(s.Rounds) {
		return nil
	}
	final := s.Rounds[len(s.Rounds)-1]
	if len(final.Matches) == 0 {
		return nil
	}
	return final.Matches[0].Winner
}

type Status struct {
	Progress string `json:"progress"` // "group_stage" | "in_progress" | "complete"
	Round    string `json:"round,omitempty"`
}

func (s State) Status() Status {
	switch {
	case s.CurrentRound < 1:
		return Status{Progress: "group_stage"}
	case s.CurrentRound > len(s.Rounds):
		return Status{Progress: "complete"}
	default:
		return Status{Progress: "in_progress", Round: s.Rounds[s.CurrentRound-1].Name}
	}
}

// ActiveRound is nil outside the bracket.
func (s State) ActiveRound() *Round {
	if s.CurrentRound < 1 || s.CurrentRound > len(s.Rounds) {
		return nil
	}
	return &s.Rounds[s.CurrentRound-1]
}

// CompleteGroupStage seeds the first bracket round pairwise from teams:
// match i gets teams[2i] and teams[2i+1]. Group provenance is the caller's
// responsibility.
func CompleteGroupStage(s State, teams []catalog.Team) (State, error) {
	if s.CurrentRound != 0 {
		return s, ErrGroupStageComplete
	}
	if len(s.Rounds) == 0 || len(teams) != 2*len(s.Rounds[0].Matches) {
		return s, ErrWrongTeamCount
	}
	seen := make(map[int]bool, len(teams))
	for _, t := range teams {
		if seen[t.ID] {
			return s, ErrDuplicateTeam
		}
		seen[t.ID] = true
	}

	newState := s.Clone()
	first := newState.Rounds[0].Matches
	for i := range first {
		t1, t2 := teams[2*i], teams[2*i+1]
		first[i].Team1 = &t1
		first[i].Team2 = &t2
	}
	newState.IsPlayInComplete = true
	newState.CurrentRound = 1
	return newState.withPhase(), nil
}

// SelectWinner records team as the winner of an active-round match and
// moves it into the next round: even matches feed team1, odd feed team2 of
// match matchIndex/2.
func SelectWinner(s State, roundIndex, matchIndex int, team catalog.Team) (State, error) {
	if err := checkBracket(s); err != nil {
		return s, err
	}
	if roundIndex < 0 || roundIndex >= len(s.Rounds) {
		return s, ErrBadIndex
	}
	if roundIndex != s.CurrentRound-1 {
		return s, ErrRoundNotActive
	}
	matches := s.Rounds[roundIndex].Matches
	if matchIndex < 0 || matchIndex >= len(matches) {
		return s, ErrBadIndex
	}
	m := matches[matchIndex]
	if !m.Ready() {
		return s, ErrMatchNotReady
	}
	if !m.Has(team.ID) {
		return s, ErrTeamNotInMatch
	}

	newState := s.Clone()
	round := &newState.Rounds[roundIndex]
	winner := team
	round.Matches[matchIndex].Winner = &winner

	if roundIndex < len(newState.Rounds)-1 {
		placeWinner(newState.Rounds[roundIndex+1].Matches, matchIndex, &winner)
	}
	round.IsComplete = allDecided(round.Matches)
	return newState, nil
}

func placeWinner(next []Match, matchIndex int, winner *catalog.Team) {
	slot := matchIndex / 2
	if slot >= len(next) {
		return
	}
	if matchIndex%2 == 0 {
		next[slot].Team1 = winner
	} else {
		next[slot].Team2 = winner
	}
}

func allDecided(matches []Match) bool {
	for _, m := range matches {
		if m.Winner == nil {
			return false
		}
	}
	return true
}

// CanAdvance reports whether every match of the 1-based currentRound has a
// winner.
func CanAdvance(rounds []Round, currentRound int) bool {
	if currentRound < 1 || currentRound > len(rounds) {
		return false
	}
	return allDecided(rounds[currentRound-1].Matches)
}

// AdvanceRound marks currentRound complete and rebuilds the next round's
// slots from its winners. Rounds come back untouched when CanAdvance is
// false. Slots are always recomputed from the current winners, so repeating
// the call with the same winners yields the same rounds.
func AdvanceRound(rounds []Round, currentRound int) []Round {
	if !CanAdvance(rounds, currentRound) {
		return rounds
	}
	out := cloneRounds(rounds)
	out[currentRound-1].IsComplete = true
	propagate(out, currentRound)
	return out
}

// propagate fills round currentRound+1 from currentRound's winners, in
// order, skipping undecided matches.
func propagate(rounds []Round, currentRound int) {
	if currentRound < 1 || currentRound >= len(rounds) {
		return
	}
	var winners []*catalog.Team
	for _, m := range rounds[currentRound-1].Matches {
		if m.Winner != nil {
			winners = append(winners, m.Winner)
		}
	}
	next := rounds[currentRound].Matches
	for i := range next {
		if 2*i < len(winners) {
			next[i].Team1 = winners[2*i]
		}
		if 2*i+1 < len(winners) {
			next[i].Team2 = winners[2*i+1]
		}
	}
}
