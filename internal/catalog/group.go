package catalog

type TeamStanding struct {
	Team         Team `json:"team"`
	Points       int  `json:"points"`
	Wins         int  `json:"wins"`
	Draws        int  `json:"draws"`
	Losses       int  `json:"losses"`
	GoalsFor     int  `json:"goals_for"`
	GoalsAgainst int  `json:"goals_against"`
	Position     int  `json:"position"`
}

type Group struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Teams      []Team         `json:"teams"`
	Standings  []TeamStanding `json:"standings"`
	IsComplete bool           `json:"is_complete"`
}

func (g Group) Has(teamID int) bool {
	for _, t := range g.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

func (g Group) Clone() Group {
	g.Teams = append([]Team(nil), g.Teams...)
	g.Standings = append([]TeamStanding(nil), g.Standings...)
	return g
}

// UpdateStanding returns a copy of g with teamID's position replaced. The
// group is complete once every position is within the advancing threshold.
func UpdateStanding(g Group, teamID, position, advancing int) Group {
	out := g.Clone()
	complete := true
	for i := range out.Standings {
		if out.Standings[i].Team.ID == teamID {
			out.Standings[i].Position = position
		}
		if out.Standings[i].Position > advancing {
			complete = false
		}
	}
	out.IsComplete = complete
	return out
}
