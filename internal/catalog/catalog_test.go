package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_SeedOrderAndLookup(t *testing.T) {
	c := Default()
	all := c.All()
	require.Len(t, all, 64)
	for i, team := range all {
		assert.Equal(t, i+1, team.Seed)
	}

	brazil, ok := c.TeamByID(1)
	require.True(t, ok)
	assert.Equal(t, "BRA", brazil.Code)

	_, ok = c.TeamByID(999)
	assert.False(t, ok, "unknown id must report not found")
}

func TestCreateGroups_ContiguousPartition(t *testing.T) {
	groups, err := Default().CreateGroups(12, 4)
	require.NoError(t, err)
	require.Len(t, groups, 12)

	seen := map[int]bool{}
	for _, g := range groups {
		require.Len(t, g.Teams, 4)
		require.Len(t, g.Standings, 4)
		for _, team := range g.Teams {
			assert.False(t, seen[team.ID], "team %d appears twice", team.ID)
			seen[team.ID] = true
		}
	}
	for id := 1; id <= 48; id++ {
		assert.True(t, seen[id], "team %d missing", id)
	}
	assert.Len(t, seen, 48)

	ids := func(g Group) []int {
		var out []int
		for _, team := range g.Teams {
			out = append(out, team.ID)
		}
		return out
	}
	assert.Equal(t, "group-A", groups[0].ID)
	assert.Equal(t, "Group A", groups[0].Name)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(groups[0]))
	assert.Equal(t, "Group L", groups[11].Name)
	assert.Equal(t, []int{45, 46, 47, 48}, ids(groups[11]))
}

func TestCreateGroups_TooManyTeamsRequested(t *testing.T) {
	_, err := Default().CreateGroups(17, 4)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Team{
		{ID: 1, Name: "A", Seed: 1, Region: RegionUEFA},
		{ID: 1, Name: "B", Seed: 2, Region: RegionUEFA},
	})
	assert.ErrorIs(t, err, ErrDuplicateTeam)
}

func TestUpdateStanding(t *testing.T) {
	groups, err := Default().CreateGroups(1, 4)
	require.NoError(t, err)
	g := groups[0]

	g2 := UpdateStanding(g, 3, 1, 2)
	assert.Equal(t, 1, g2.Standings[2].Position)
	assert.Equal(t, 3, g.Standings[2].Position, "input group must not change")
	assert.False(t, g2.IsComplete)

	g3 := UpdateStanding(UpdateStanding(g2, 4, 2, 2), 3, 2, 2)
	assert.True(t, g3.IsComplete)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.yaml")
	doc := `teams:
  - {id: 7, name: Second, code: SEC, seed: 2, region: UEFA, fifa_rank: 9}
  - {id: 3, name: First, code: FIR, seed: 1, region: CAF, fifa_rank: 4}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, 3, all[0].ID)
	assert.Len(t, c.TeamsByRegion(RegionUEFA), 1)
}
