package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kyleboon/chess-scripts/internal/chesscom"
	"github.com/kyleboon/chess-scripts/internal/config"
	"github.com/kyleboon/chess-scripts/internal/output"
)

var (
	fetchUser       string
	fetchYear       int
	fetchMonths     int
	fetchTimeClass  string
	fetchOut        string
	fetchMinSeconds int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a player's monthly game archives to a PGN file",
	Long: `Downloads the player's games from chess.com month by month, keeps the
requested time class, and writes them to a single PGN file. With
--min-seconds set, games at or above that base clock are also written to a
second "-classical" file.`,
	Example: `  # First three months of 2022, rapid games
  chess-scripts fetch --user kyle_b81 --year 2022 --months 3

  # Also split out games with at least a 45-minute clock
  chess-scripts fetch --user kyle_b81 --year 2022 --months 8 --min-seconds 2700`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if fetchUser == "" {
			fetchUser = cfg.Username
		}
		if fetchUser == "" {
			return fmt.Errorf("no username: pass --user or set username in the config")
		}
		if fetchTimeClass == "" {
			fetchTimeClass = cfg.TimeClass
		}
		if fetchOut == "" {
			fetchOut = fmt.Sprintf("%d.pgn", fetchYear)
		}

		client := chesscom.New("", cfg.UserAgent)
		return runFetch(cmd.Context(), client)
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchUser, "user", "u", "", "chess.com username")
	fetchCmd.Flags().IntVar(&fetchYear, "year", time.Now().Year(), "archive year")
	fetchCmd.Flags().IntVar(&fetchMonths, "months", 1, "number of months, starting at January")
	fetchCmd.Flags().StringVar(&fetchTimeClass, "time-class", "", "time class to keep (overrides config)")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "output PGN file (default <year>.pgn)")
	fetchCmd.Flags().IntVar(&fetchMinSeconds, "min-seconds", 0, "also write games with at least this base clock to <out>-classical.pgn")
}

func runFetch(ctx context.Context, client *chesscom.Client) error {
	out, err := os.Create(fetchOut)
	if err != nil {
		return err
	}
	defer out.Close()

	var classical *os.File
	if fetchMinSeconds > 0 {
		name := strings.TrimSuffix(fetchOut, ".pgn") + "-classical.pgn"
		classical, err = os.Create(name)
		if err != nil {
			return err
		}
		defer classical.Close()
	}

	kept := 0
	for m := 1; m <= fetchMonths; m++ {
		games, err := client.MonthlyGames(ctx, fetchUser, fetchYear, time.Month(m))
		if err != nil {
			var se *chesscom.StatusError
			if errors.As(err, &se) {
				output.Logger.Warn("skipping month", "year", fetchYear, "month", m, "status", se.Code)
				continue
			}
			return err
		}

		for _, g := range games {
			if g.TimeClass != fetchTimeClass {
				continue
			}
			if _, err := fmt.Fprintf(out, "%s\n\n", g.PGN); err != nil {
				return err
			}
			kept++
			if classical != nil && g.BaseTimeSeconds() >= fetchMinSeconds {
				if _, err := fmt.Fprintf(classical, "%s\n\n", g.PGN); err != nil {
					return err
				}
			}
		}
	}

	output.Logger.Info("fetched games", "user", fetchUser, "year", fetchYear, "months", fetchMonths, "kept", kept, "file", fetchOut)
	return nil
}
