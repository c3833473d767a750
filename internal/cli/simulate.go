package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/bracket-backend/internal/catalog"
	"github.com/DoyleJ11/bracket-backend/internal/engine"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a whole tournament with random picks",
	Long: `Auto-picks every group and wildcard, then auto-advances the bracket
round by round until a champion is crowned. The same seed always
produces the same tournament.`,
	RunE: runSimulate,
}

var (
	simSeed uint64
	simJSON bool
)

func init() {
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "random seed (default from config, then clock)")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "print the final state as JSON")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	seed := simSeed
	if seed == 0 {
		seed = cfg.Random.Seed
	}

	final, err := Simulate(cfg.Tournament, cat, randFactory(seed)())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if simJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(final)
	}
	printTournament(out, final)
	return nil
}

// Simulate runs a tournament to completion with rng making every pick.
func Simulate(rules engine.Rules, cat *catalog.Catalog, rng engine.Rand) (engine.State, error) {
	s, err := engine.NewState(rules, cat)
	if err != nil {
		return engine.State{}, err
	}
	deps := engine.Deps{Catalog: cat, Rand: rng}

	if _, s, err = engine.Apply(s, engine.Command{Type: engine.CmdAutoPickGroupStage}, deps); err != nil {
		return engine.State{}, fmt.Errorf("auto-pick groups: %w", err)
	}
	for s.Phase != engine.PhaseDone {
		if _, s, err = engine.Apply(s, engine.Command{Type: engine.CmdAutoAdvanceBracket}, deps); err != nil {
			return engine.State{}, fmt.Errorf("auto-advance round %d: %w", s.CurrentRound, err)
		}
	}
	return s, nil
}

func printTournament(w io.Writer, s engine.State) {
	for _, g := range s.Groups {
		sel := s.Selections[g.ID]
		line := fmt.Sprintf("%-8s 1. %s  2. %s", g.Name, teamName(sel.First), teamName(sel.Second))
		if sel.Third != nil {
			line += "  3. " + teamName(sel.Third)
		}
		fmt.Fprintln(w, line)
	}
	for _, r := range s.Rounds {
		winners := make([]string, 0, len(r.Matches))
		for _, m := range r.Matches {
			winners = append(winners, teamName(m.Winner))
		}
		fmt.Fprintf(w, "\n%s\n  %s\n", r.Name, strings.Join(winners, ", "))
	}
	fmt.Fprintf(w, "\nChampion: %s\n", teamName(s.Champion()))
}

func teamName(t *catalog.Team) string {
	if t == nil {
		return "-"
	}
	return t.Flag + " " + t.Name
}
