package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrDuplicateTeam = errors.New("duplicate team id")
var ErrInvalidTeam = errors.New("invalid team")
var ErrNotEnoughTeams = errors.New("not enough teams for groups")

// Catalog is the read-only roster. All returns teams in seed order.
type Catalog struct {
	teams []Team
	byID  map[int]Team
}

func New(teams []Team) (*Catalog, error) {
	c := &Catalog{
		teams: slices.Clone(teams),
		byID:  make(map[int]Team, len(teams)),
	}
	for _, t := range c.teams {
		if t.ID <= 0 || t.Name == "" || !t.Region.Valid() {
			return nil, fmt.Errorf("%w: %+v", ErrInvalidTeam, t)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTeam, t.ID)
		}
		c.byID[t.ID] = t
	}
	slices.SortStableFunc(c.teams, func(a, b Team) int { return a.Seed - b.Seed })
	return c, nil
}

// Default returns the built-in 64 team roster.
func Default() *Catalog {
	c, err := New(defaultTeams)
	if err != nil {
		panic(err) // static data
	}
	return c
}

type catalogFile struct {
	Teams []Team `yaml:"teams"`
}

// LoadFile reads a roster from a YAML document of the form `teams: [...]`.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Teams)
}

func (c *Catalog) All() []Team { return slices.Clone(c.teams) }

func (c *Catalog) Len() int { return len(c.teams) }

// TeamByID never fails loudly; ok is false for unknown ids.
func (c *Catalog) TeamByID(id int) (Team, bool) {
	t, ok := c.byID[id]
	return t, ok
}

func (c *Catalog) TeamsByRegion(r Region) []Team {
	var out []Team
	for _, t := range c.teams {
		if t.Region == r {
			out = append(out, t)
		}
	}
	return out
}

// CreateGroups slices the seed-ordered roster into count groups of size
// teams each: group i holds teams[i*size : (i+1)*size].
func (c *Catalog) CreateGroups(count, size int) ([]Group, error) {
	if count <= 0 || size <= 0 || count*size > len(c.teams) {
		return nil, fmt.Errorf("%w: %d groups of %d from %d teams", ErrNotEnoughTeams, count, size, len(c.teams))
	}
	groups := make([]Group, 0, count)
	for i := 0; i < count; i++ {
		members := slices.Clone(c.teams[i*size : (i+1)*size])
		standings := make([]TeamStanding, len(members))
		for j, t := range members {
			standings[j] = TeamStanding{Team: t, Position: j + 1}
		}
		label := GroupLabel(i)
		groups = append(groups, Group{
			ID:        "group-" + label,
			Name:      "Group " + label,
			Teams:     members,
			Standings: standings,
		})
	}
	return groups, nil
}

// GroupLabel is A..Z, then numeric past 26 groups.
func GroupLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}
