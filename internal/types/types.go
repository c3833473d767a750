package types

import (
	"errors"

	"github.com/DoyleJ11/bracket-backend/internal/engine"
)

var ErrUnknownType = errors.New("unknown message type")

// ClientMessage is one command sent over the socket or posted to
// /brackets/{code}/commands.
type ClientMessage struct {
	Type       string `json:"type"`
	RoundIndex int    `json:"round_index,omitempty"`
	MatchIndex int    `json:"match_index,omitempty"`
	TeamID     int    `json:"team_id,omitempty"`
	TeamIDs    []int  `json:"team_ids,omitempty"`
	GroupID    string `json:"group_id,omitempty"`
	Position   int    `json:"position,omitempty"`
}

type ServerMessage struct {
	Type    string         `json:"type"` // "StateSnapshot" | "Error"
	Version int            `json:"version,omitempty"`
	State   *engine.State  `json:"state,omitempty"`
	Events  []engine.Event `json:"events,omitempty"`
	Error   string         `json:"error,omitempty"`
}

const (
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)

var commandTypes = map[string]engine.CommandType{
	string(engine.CmdCompleteGroupStage): engine.CmdCompleteGroupStage,
	string(engine.CmdPlaceTeam):          engine.CmdPlaceTeam,
	string(engine.CmdSetStanding):        engine.CmdSetStanding,
	string(engine.CmdSubmitGroupStage):   engine.CmdSubmitGroupStage,
	string(engine.CmdSelectWinner):       engine.CmdSelectWinner,
	string(engine.CmdAdvanceRound):       engine.CmdAdvanceRound,
	string(engine.CmdReset):              engine.CmdReset,
	string(engine.CmdAutoPickGroupStage): engine.CmdAutoPickGroupStage,
	string(engine.CmdAutoAdvanceBracket): engine.CmdAutoAdvanceBracket,
}

func (m ClientMessage) ToCommand() (engine.Command, error) {
	t, ok := commandTypes[m.Type]
	if !ok {
		return engine.Command{}, ErrUnknownType
	}
	return engine.Command{
		Type:       t,
		RoundIndex: m.RoundIndex,
		MatchIndex: m.MatchIndex,
		TeamID:     m.TeamID,
		TeamIDs:    m.TeamIDs,
		GroupID:    m.GroupID,
		Position:   m.Position,
	}, nil
}

func Snapshot(version int, state engine.State, events []engine.Event) ServerMessage {
	return ServerMessage{Type: MsgStateSnapshot, Version: version, State: &state, Events: events}
}

func Error(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Error: err.Error()}
}
