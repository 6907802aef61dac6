package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyleboon/chess-scripts/internal/chesscom"
	"github.com/kyleboon/chess-scripts/internal/config"
	"github.com/kyleboon/chess-scripts/internal/fairplay"
)

var fairplayUser string

var fairplayCmd = &cobra.Command{
	Use:   "fairplay",
	Short: "Count past opponents closed for fair-play violations",
	Long: `Walks the player's entire archive since their account joined, collects
every distinct opponent, and checks each opponent's profile status. Reports
how many accounts were closed for fair-play violations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if fairplayUser == "" {
			fairplayUser = cfg.Username
		}
		if fairplayUser == "" {
			return fmt.Errorf("no username: pass --user or set username in the config")
		}

		client := chesscom.New("", cfg.UserAgent)
		report, err := fairplay.New(client).Audit(cmd.Context(), fairplayUser)
		if err != nil {
			return err
		}

		fmt.Printf("%d accounts closed for fair play violations out of %d opponents\n",
			report.Violations, report.Opponents)
		return nil
	},
}

func init() {
	fairplayCmd.Flags().StringVarP(&fairplayUser, "user", "u", "", "chess.com username")
}
