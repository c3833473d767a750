// Package types is the JSON wire format shared by the websocket and the
// REST command endpoint.
//
// Client -> Server (ClientMessage, one command per message)
//
//	CompleteGroupStage:  team_ids: number[]   (2 x first-round matches, pairwise)
//	PlaceTeam:           group_id, team_id, position: 1 | 2 | 3   (toggles)
//	SetStanding:         group_id, team_id, position
//	SubmitGroupStage:    {}   (seeds the bracket from the placed teams)
//	SelectWinner:        round_index (0-based), match_index, team_id
//	AdvanceRound:        {}
//	AutoPickGroupStage:  {}
//	AutoAdvanceBracket:  {}
//	Reset:               {}
//
// Server -> Client (ServerMessage)
//
//	StateSnapshot:
//	  version: number   (+1 per accepted command)
//	  state:
//	    phase: "group_stage" | "bracket" | "done"
//	    current_round: number   (0 in the group stage, rounds+1 once done)
//	    groups, selections, rounds, rules
//	Error:
//	  error: string   (the rejected command changed nothing)
package types
