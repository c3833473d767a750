package engine

import (
	"errors"

	"github.com/DoyleJ11/bracket-backend/internal/catalog"
)

var ErrGroupStageIncomplete = errors.New("group stage incomplete")
var ErrGroupStageComplete = errors.New("group stage already completed")
var ErrWrongTeamCount = errors.New("wrong number of advancing teams")
var ErrDuplicateTeam = errors.New("team listed twice")
var ErrUnknownTeam = errors.New("unknown team")
var ErrUnknownGroup = errors.New("unknown group")
var ErrIllegalPlacement = errors.New("illegal group placement")
var ErrBadIndex = errors.New("round or match index out of range")
var ErrRoundNotActive = errors.New("round not active")
var ErrMatchNotReady = errors.New("match teams not set")
var ErrTeamNotInMatch = errors.New("team not in match")
var ErrRoundIncomplete = errors.New("round has undecided matches")
var ErrTournamentComplete = errors.New("tournament already completed")
var ErrNoRandomSource = errors.New("no random source")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Phase string

const (
	PhaseGroupStage Phase = "group_stage"
	PhaseBracket    Phase = "bracket"
	PhaseDone       Phase = "done"
)

type Match struct {
	ID          string        `json:"id"`
	Team1       *catalog.Team `json:"team1"`
	Team2       *catalog.Team `json:"team2"`
	Winner      *catalog.Team `json:"winner"`
	Round       int           `json:"round"`
	MatchNumber int           `json:"match_number"`
	IsPlayIn    bool          `json:"is_play_in,omitempty"`
	Team1Score  *int          `json:"team1_score,omitempty"`
	Team2Score  *int          `json:"team2_score,omitempty"`
}

func (m Match) Ready() bool { return m.Team1 != nil && m.Team2 != nil }

// Has reports whether teamID occupies either slot.
func (m Match) Has(teamID int) bool {
	return (m.Team1 != nil && m.Team1.ID == teamID) || (m.Team2 != nil && m.Team2.ID == teamID)
}

type Round struct {
	Round      int     `json:"round"`
	Name       string  `json:"name"`
	Matches    []Match `json:"matches"`
	IsComplete bool    `json:"is_complete"`
}

// State is the whole tournament. CurrentRound is 0 during the group stage,
// 1..Rules.Rounds while the bracket is played, and past the last round once
// a champion exists.
type State struct {
	Phase            Phase                     `json:"phase"`
	CurrentRound     int                       `json:"current_round"`
	Rounds           []Round                   `json:"rounds"`
	Groups           []catalog.Group           `json:"groups"`
	Selections       map[string]GroupSelection `json:"selections"`
	IsPlayInComplete bool                      `json:"is_play_in_complete"`
	Rules            Rules                     `json:"rules"`
}

// Rand is the injectable random source for the auto helpers.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Deps are the collaborators a transition may consult. Neither is mutated.
type Deps struct {
	Catalog *catalog.Catalog
	Rand    Rand
}

type CommandType string

const (
	CmdCompleteGroupStage CommandType = "CompleteGroupStage"
	CmdPlaceTeam          CommandType = "PlaceTeam"
	CmdSetStanding        CommandType = "SetStanding"
	CmdSubmitGroupStage   CommandType = "SubmitGroupStage"
	CmdSelectWinner       CommandType = "SelectWinner"
	CmdAdvanceRound       CommandType = "AdvanceRound"
	CmdReset              CommandType = "Reset"
	CmdAutoPickGroupStage CommandType = "AutoPickGroupStage"
	CmdAutoAdvanceBracket CommandType = "AutoAdvanceBracket"
)

/*
	CmdCompleteGroupStage -> EvtGroupStageCompleted
	CmdPlaceTeam          -> EvtTeamPlaced
	CmdSubmitGroupStage   -> EvtGroupStageCompleted
	CmdSelectWinner       -> EvtWinnerSelected -> EvtTeamAdvanced? -> EvtRoundCompleted?
	CmdAdvanceRound       -> EvtRoundCompleted -> EvtTeamAdvanced* -> EvtRoundAdvanced | EvtTournamentCompleted
	CmdAutoPickGroupStage -> EvtTeamPlaced* -> EvtGroupStageCompleted
	CmdAutoAdvanceBracket -> EvtWinnerSelected* -> EvtRoundCompleted -> EvtTeamAdvanced* -> EvtRoundAdvanced | EvtTournamentCompleted
	CmdReset              -> EvtTournamentReset
*/

type Command struct {
	Type       CommandType `json:"type"`
	RoundIndex int         `json:"round_index,omitempty"`
	MatchIndex int         `json:"match_index,omitempty"`
	TeamID     int         `json:"team_id,omitempty"`
	TeamIDs    []int       `json:"team_ids,omitempty"`
	GroupID    string      `json:"group_id,omitempty"`
	Position   int         `json:"position,omitempty"`
}

type EventType string

const (
	EvtTeamPlaced          EventType = "TeamPlaced"
	EvtStandingUpdated     EventType = "StandingUpdated"
	EvtGroupStageCompleted EventType = "GroupStageCompleted"
	EvtWinnerSelected      EventType = "WinnerSelected"
	EvtTeamAdvanced        EventType = "TeamAdvanced"
	EvtRoundCompleted      EventType = "RoundCompleted"
	EvtRoundAdvanced       EventType = "RoundAdvanced"
	EvtTournamentCompleted EventType = "TournamentCompleted"
	EvtTournamentReset     EventType = "TournamentReset"
)

// Event.Round is 1-based; Match and Slot are 0-based / 1-2.
type Event struct {
	Type     EventType `json:"type"`
	Round    int       `json:"round,omitempty"`
	Match    int       `json:"match,omitempty"`
	Slot     int       `json:"slot,omitempty"`
	TeamID   int       `json:"team_id,omitempty"`
	GroupID  string    `json:"group_id,omitempty"`
	Position int       `json:"position,omitempty"`
}

// Apply runs one transition. On error the returned state is s itself and
// nothing has been modified.
func Apply(s State, cmd Command, d Deps) ([]Event, State, error) {
	switch cmd.Type {
	case CmdReset:
		fresh, err := NewState(s.Rules, d.Catalog)
		if err != nil {
			return nil, s, err
		}
		return []Event{{Type: EvtTournamentReset}}, fresh, nil

	case CmdCompleteGroupStage:
		teams := make([]catalog.Team, 0, len(cmd.TeamIDs))
		for _, id := range cmd.TeamIDs {
			t, ok := lookup(d, id)
			if !ok {
				return nil, s, ErrUnknownTeam
			}
			teams = append(teams, t)
		}
		newState, err := CompleteGroupStage(s, teams)
		if err != nil {
			return nil, s, err
		}
		return []Event{{Type: EvtGroupStageCompleted}}, newState, nil

	case CmdPlaceTeam:
		newState, err := PlaceTeam(s, cmd.GroupID, cmd.TeamID, cmd.Position)
		if err != nil {
			return nil, s, err
		}
		events := []Event{{Type: EvtTeamPlaced, GroupID: cmd.GroupID, TeamID: cmd.TeamID, Position: cmd.Position}}
		return events, newState, nil

	case CmdSetStanding:
		newState, err := SetStanding(s, cmd.GroupID, cmd.TeamID, cmd.Position)
		if err != nil {
			return nil, s, err
		}
		events := []Event{{Type: EvtStandingUpdated, GroupID: cmd.GroupID, TeamID: cmd.TeamID, Position: cmd.Position}}
		return events, newState, nil

	case CmdSubmitGroupStage:
		if s.CurrentRound != 0 {
			return nil, s, ErrGroupStageComplete
		}
		teams, err := AdvancingTeams(s.Groups, s.Selections, s.Rules)
		if err != nil {
			return nil, s, err
		}
		newState, err := CompleteGroupStage(s, teams)
		if err != nil {
			return nil, s, err
		}
		return []Event{{Type: EvtGroupStageCompleted}}, newState, nil

	case CmdSelectWinner:
		team, ok := lookup(d, cmd.TeamID)
		if !ok {
			return nil, s, ErrUnknownTeam
		}
		newState, err := SelectWinner(s, cmd.RoundIndex, cmd.MatchIndex, team)
		if err != nil {
			return nil, s, err
		}
		events := []Event{{Type: EvtWinnerSelected, Round: cmd.RoundIndex + 1, Match: cmd.MatchIndex, TeamID: team.ID}}
		if cmd.RoundIndex < len(newState.Rounds)-1 {
			events = append(events, Event{
				Type:   EvtTeamAdvanced,
				Round:  cmd.RoundIndex + 2,
				Match:  cmd.MatchIndex / 2,
				Slot:   cmd.MatchIndex%2 + 1,
				TeamID: team.ID,
			})
		}
		if newState.Rounds[cmd.RoundIndex].IsComplete {
			events = append(events, Event{Type: EvtRoundCompleted, Round: cmd.RoundIndex + 1})
		}
		return events, newState, nil

	case CmdAdvanceRound:
		if err := checkBracket(s); err != nil {
			return nil, s, err
		}
		if !CanAdvance(s.Rounds, s.CurrentRound) {
			return nil, s, ErrRoundIncomplete
		}
		newState := s.Clone()
		newState.Rounds = AdvanceRound(s.Rounds, s.CurrentRound)
		events := []Event{{Type: EvtRoundCompleted, Round: s.CurrentRound}}
		events = append(events, advancedEvents(newState.Rounds, s.CurrentRound)...)
		newState.CurrentRound++
		return append(events, roundEvent(newState)), newState.withPhase(), nil

	case CmdAutoPickGroupStage:
		if s.CurrentRound != 0 {
			return nil, s, ErrGroupStageComplete
		}
		if d.Rand == nil {
			return nil, s, ErrNoRandomSource
		}
		picks := AutoPickGroupWinners(s.Groups, d.Rand)
		picks, err := AutoPickWildcards(s.Groups, picks, s.Rules.Wildcards, d.Rand)
		if err != nil {
			return nil, s, err
		}
		teams, err := AdvancingTeams(s.Groups, picks, s.Rules)
		if err != nil {
			return nil, s, err
		}
		withPicks := s.Clone()
		withPicks.Selections = picks
		newState, err := CompleteGroupStage(withPicks, teams)
		if err != nil {
			return nil, s, err
		}
		var events []Event
		for _, g := range s.Groups {
			sel := picks[g.ID]
			for pos, t := range []*catalog.Team{sel.First, sel.Second, sel.Third} {
				if t != nil {
					events = append(events, Event{Type: EvtTeamPlaced, GroupID: g.ID, TeamID: t.ID, Position: pos + 1})
				}
			}
		}
		return append(events, Event{Type: EvtGroupStageCompleted}), newState, nil

	case CmdAutoAdvanceBracket:
		if err := checkBracket(s); err != nil {
			return nil, s, err
		}
		if d.Rand == nil {
			return nil, s, ErrNoRandomSource
		}
		newState := s.Clone()
		newState.Rounds = AutoAdvanceBracket(s.Rounds, s.CurrentRound, d.Rand)
		var events []Event
		before := s.Rounds[s.CurrentRound-1].Matches
		for i, m := range newState.Rounds[s.CurrentRound-1].Matches {
			if m.Winner != nil && before[i].Winner == nil {
				events = append(events, Event{Type: EvtWinnerSelected, Round: s.CurrentRound, Match: i, TeamID: m.Winner.ID})
			}
		}
		events = append(events, Event{Type: EvtRoundCompleted, Round: s.CurrentRound})
		events = append(events, advancedEvents(newState.Rounds, s.CurrentRound)...)
		newState.CurrentRound++
		return append(events, roundEvent(newState)), newState.withPhase(), nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func lookup(d Deps, id int) (catalog.Team, bool) {
	if d.Catalog == nil {
		return catalog.Team{}, false
	}
	return d.Catalog.TeamByID(id)
}

func checkBracket(s State) error {
	if s.CurrentRound < 1 {
		return ErrGroupStageIncomplete
	}
	if s.CurrentRound > len(s.Rounds) {
		return ErrTournamentComplete
	}
	return nil
}

func roundEvent(s State) Event {
	if s.CurrentRound > len(s.Rounds) {
		ev := Event{Type: EvtTournamentCompleted}
		if c := s.Champion(); c != nil {
			ev.TeamID = c.ID
		}
		return ev
	}
	return Event{Type: EvtRoundAdvanced, Round: s.CurrentRound}
}

// advancedEvents reports the slots of the round after `round` that are filled.
func advancedEvents(rounds []Round, round int) []Event {
	if round >= len(rounds) {
		return nil
	}
	var events []Event
	for i, m := range rounds[round].Matches {
		for slot, t := range []*catalog.Team{m.Team1, m.Team2} {
			if t != nil {
				events = append(events, Event{Type: EvtTeamAdvanced, Round: round + 1, Match: i, Slot: slot + 1, TeamID: t.ID})
			}
		}
	}
	return events
}
