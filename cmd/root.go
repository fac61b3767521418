package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchside/playerfacts/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "playerfacts",
	Short: "Biographical fact resolution for rostered players",
	Long:  "Resolves high school, birthdate, birthplace, and citizenship facts for rostered players from club sites, recruiting profiles, encyclopedias, and stats sites, with full source provenance.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
