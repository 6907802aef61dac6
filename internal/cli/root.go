package cli

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "chess-scripts",
		Short: "Fetch, engine-annotate, and audit chess.com games",
		Long: `chess-scripts retrieves a player's games from chess.com, runs them
through a UCI engine to judge every move, classifies openings against an ECO
table, and computes average centipawn loss per side. It can also audit a
player's past opponents for fair-play closures.`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./chess-scripts.yaml)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(fairplayCmd)
}
