package engine

import (
	"github.com/DoyleJ11/bracket-backend/internal/catalog"
)

// shuffled returns a random permutation of 0..n-1 (Fisher-Yates).
func shuffled(n int, rng Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

// AutoPickGroupWinners draws two distinct teams per group as first and
// second.
func AutoPickGroupWinners(groups []catalog.Group, rng Rand) map[string]GroupSelection {
	out := make(map[string]GroupSelection, len(groups))
	for _, g := range groups {
		if len(g.Teams) < 2 {
			out[g.ID] = GroupSelection{}
			continue
		}
		order := shuffled(len(g.Teams), rng)
		first, second := g.Teams[order[0]], g.Teams[order[1]]
		out[g.ID] = GroupSelection{First: &first, Second: &second}
	}
	return out
}

// AutoPickWildcards chooses count decided groups at random and gives each a
// random third from its remaining teams. The input map is not modified.
func AutoPickWildcards(groups []catalog.Group, selections map[string]GroupSelection, count int, rng Rand) (map[string]GroupSelection, error) {
	out := make(map[string]GroupSelection, len(selections))
	for k, v := range selections {
		v.Third = nil
		out[k] = v
	}

	var eligible []catalog.Group
	for _, g := range groups {
		if out[g.ID].Decided() && len(g.Teams) > 2 {
			eligible = append(eligible, g)
		}
	}
	if count > len(eligible) {
		return nil, ErrGroupStageIncomplete
	}

	for _, gi := range shuffled(len(eligible), rng)[:count] {
		g := eligible[gi]
		sel := out[g.ID]
		var rest []catalog.Team
		for _, t := range g.Teams {
			if !same(sel.First, t.ID) && !same(sel.Second, t.ID) {
				rest = append(rest, t)
			}
		}
		third := rest[rng.IntN(len(rest))]
		sel.Third = &third
		out[g.ID] = sel
	}
	return out, nil
}

// AutoAdvanceBracket decides every ready match of currentRound at random,
// marks the round complete and propagates winners to the next round. The
// caller moves currentRound on.
func AutoAdvanceBracket(rounds []Round, currentRound int, rng Rand) []Round {
	if currentRound < 1 || currentRound > len(rounds) {
		return rounds
	}
	out := cloneRounds(rounds)
	round := &out[currentRound-1]
	for i, m := range round.Matches {
		if !m.Ready() {
			continue
		}
		if rng.IntN(2) == 0 {
			round.Matches[i].Winner = m.Team1
		} else {
			round.Matches[i].Winner = m.Team2
		}
	}
	round.IsComplete = true
	propagate(out, currentRound)
	return out
}
