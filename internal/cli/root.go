// Package cli holds the bracket-server commands.
package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-backend/internal/catalog"
	"github.com/DoyleJ11/bracket-backend/internal/config"
	"github.com/DoyleJ11/bracket-backend/internal/engine"
	"github.com/DoyleJ11/bracket-backend/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bracket-server",
	Short: "World Cup bracket predictor backend",
	Long: `bracket-server hosts live tournament brackets: a group stage where
qualifiers and third-place wildcards are picked, followed by a knockout
bracket whose winners move forward round by round.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
}

func loadConfig() (*config.Config, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}
	return config.Load(v)
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.File == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// randFactory hands every bracket its own source. A non-zero seed makes
// every bracket replay the same picks.
func randFactory(seed uint64) func() engine.Rand {
	return func() engine.Rand {
		if seed != 0 {
			return rand.New(rand.NewPCG(seed, seed))
		}
		return rand.New(rand.NewPCG(rand.Uint64(), uint64(time.Now().UnixNano())))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}
