package engine

import (
	"errors"
	"testing"
)

func TestGroupSelection_Place(t *testing.T) {
	s := NewDefaultState()
	g := s.Groups[0]
	a, b, c := g.Teams[0], g.Teams[1], g.Teams[2]

	cases := []struct {
		name       string
		setup      GroupSelection
		team       int
		position   int
		wantFirst  int
		wantSecond int
		wantThird  int
		wantErr    error
	}{
		{name: "set first", setup: GroupSelection{}, team: 0, position: 1, wantFirst: a.ID},
		{name: "toggle first off", setup: GroupSelection{First: &a}, team: 0, position: 1},
		{name: "move second to first", setup: GroupSelection{Second: &a}, team: 0, position: 1, wantFirst: a.ID},
		{name: "move first to second", setup: GroupSelection{First: &a, Second: &b}, team: 0, position: 2, wantSecond: a.ID},
		{name: "third needs first and second", setup: GroupSelection{First: &a}, team: 2, position: 3, wantFirst: a.ID, wantErr: ErrIllegalPlacement},
		{name: "third set", setup: GroupSelection{First: &a, Second: &b}, team: 2, position: 3, wantFirst: a.ID, wantSecond: b.ID, wantThird: c.ID},
		{name: "third cannot be a qualifier", setup: GroupSelection{First: &a, Second: &b}, team: 0, position: 3, wantFirst: a.ID, wantSecond: b.ID, wantErr: ErrIllegalPlacement},
		{name: "clearing second drops third", setup: GroupSelection{First: &a, Second: &b, Third: &c}, team: 1, position: 2, wantFirst: a.ID},
		{name: "promoting the third drops it", setup: GroupSelection{First: &a, Second: &b, Third: &c}, team: 2, position: 1, wantFirst: c.ID, wantSecond: b.ID},
		{name: "bad position", setup: GroupSelection{}, team: 0, position: 4, wantErr: ErrIllegalPlacement},
	}

	id := func(sel GroupSelection, pos int) int {
		switch pos {
		case 1:
			if sel.First != nil {
				return sel.First.ID
			}
		case 2:
			if sel.Second != nil {
				return sel.Second.ID
			}
		case 3:
			if sel.Third != nil {
				return sel.Third.ID
			}
		}
		return 0
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.setup.Place(g.Teams[tc.team], tc.position)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want err %v, got %v", tc.wantErr, err)
			}
			if id(got, 1) != tc.wantFirst || id(got, 2) != tc.wantSecond || id(got, 3) != tc.wantThird {
				t.Fatalf("got first=%d second=%d third=%d", id(got, 1), id(got, 2), id(got, 3))
			}
		})
	}
}

func TestSubmitGroupStage(t *testing.T) {
	d := testDeps(1)
	s := NewDefaultState()

	_, _, err := Apply(s, Command{Type: CmdSubmitGroupStage}, d)
	if !errors.Is(err, ErrGroupStageIncomplete) {
		t.Fatalf("want ErrGroupStageIncomplete, got %v", err)
	}

	for i, g := range s.Groups {
		_, s = mustApply(t, s, Command{Type: CmdPlaceTeam, GroupID: g.ID, TeamID: g.Teams[0].ID, Position: 1}, d)
		_, s = mustApply(t, s, Command{Type: CmdPlaceTeam, GroupID: g.ID, TeamID: g.Teams[1].ID, Position: 2}, d)
		if i < 8 {
			_, s = mustApply(t, s, Command{Type: CmdPlaceTeam, GroupID: g.ID, TeamID: g.Teams[2].ID, Position: 3}, d)
		}
	}

	ninth := s.Groups[8]
	_, _, err = Apply(s, Command{Type: CmdPlaceTeam, GroupID: ninth.ID, TeamID: ninth.Teams[2].ID, Position: 3}, d)
	if !errors.Is(err, ErrIllegalPlacement) {
		t.Fatalf("ninth wildcard: want ErrIllegalPlacement, got %v", err)
	}

	_, s = mustApply(t, s, Command{Type: CmdSubmitGroupStage}, d)
	first := s.Rounds[0].Matches
	if first[0].Team1.ID != 1 || first[0].Team2.ID != 2 {
		t.Fatalf("match 0: want A1 vs A2, got %d vs %d", first[0].Team1.ID, first[0].Team2.ID)
	}
	// wildcards fill the last four matches: group A..H third (ids 3, 7, ... 31)
	if first[12].Team1.ID != 3 || first[15].Team2.ID != 31 {
		t.Fatalf("wildcards misplaced: %d .. %d", first[12].Team1.ID, first[15].Team2.ID)
	}
}

func TestPlaceTeam_Rejections(t *testing.T) {
	s := NewDefaultState()
	d := testDeps(1)
	cases := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{name: "unknown group", cmd: Command{Type: CmdPlaceTeam, GroupID: "group-Z", TeamID: 1, Position: 1}, wantErr: ErrUnknownGroup},
		{name: "team from another group", cmd: Command{Type: CmdPlaceTeam, GroupID: "group-A", TeamID: 5, Position: 1}, wantErr: ErrUnknownTeam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Apply(s, tc.cmd, d)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSetStanding(t *testing.T) {
	d := testDeps(1)
	s := NewDefaultState()
	events, next := mustApply(t, s, Command{Type: CmdSetStanding, GroupID: "group-A", TeamID: 4, Position: 1}, d)
	if !ContainsEvent(events, EvtStandingUpdated) {
		t.Fatalf("expected EvtStandingUpdated")
	}
	if next.Groups[0].Standings[3].Position != 1 {
		t.Fatalf("standing not updated")
	}
	if s.Groups[0].Standings[3].Position != 4 {
		t.Fatalf("input state was mutated")
	}
}

func TestRules_Validate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules: %v", err)
	}
	small := Rules{TotalTeams: 16, Groups: 4, TeamsPerGroup: 4, AdvancingPerGroup: 2, Wildcards: 0, AdvancingTeams: 8, Rounds: 3}
	if err := small.Validate(); err != nil {
		t.Fatalf("small rules: %v", err)
	}
	if got := small.MatchesPerRound(); got[1] != 4 || got[3] != 1 {
		t.Fatalf("unexpected matches per round %v", got)
	}
	bad := DefaultRules()
	bad.Wildcards = 7
	if err := bad.Validate(); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("want ErrInvalidRules, got %v", err)
	}
}
