package cli

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/bracket-backend/internal/catalog"
	"github.com/DoyleJ11/bracket-backend/internal/engine"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "bracket-server" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "bracket-server")
	}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range []string{"serve", "simulate"} {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	cat := catalog.Default()
	a, err := Simulate(engine.DefaultRules(), cat, rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)
	b, err := Simulate(engine.DefaultRules(), cat, rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)

	assert.Equal(t, engine.PhaseDone, a.Phase)
	require.NotNil(t, a.Champion())
	assert.Equal(t, a.Champion().ID, b.Champion().ID)
	for i := range a.Rounds {
		assert.True(t, a.Rounds[i].IsComplete, "round %d", i+1)
	}
}

func TestSimulateCommand(t *testing.T) {
	t.Cleanup(func() { simSeed, simJSON = 0, false })

	out, err := executeCommand(rootCmd, "simulate", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Group A")
	assert.Contains(t, out, "Round of 32")
	assert.Contains(t, out, "Final")
	assert.True(t, strings.Contains(out, "Champion: ") && !strings.Contains(out, "Champion: -"))

	again, err := executeCommand(rootCmd, "simulate", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestSimulateCommand_JSON(t *testing.T) {
	t.Cleanup(func() { simSeed, simJSON = 0, false })

	out, err := executeCommand(rootCmd, "simulate", "--seed", "3", "--json")
	require.NoError(t, err)

	var s engine.State
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, engine.PhaseDone, s.Phase)
	assert.Equal(t, len(s.Rounds)+1, s.CurrentRound)
}
