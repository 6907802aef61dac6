package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kyleboon/chess-scripts/internal/annotate"
	"github.com/kyleboon/chess-scripts/internal/config"
	"github.com/kyleboon/chess-scripts/internal/eco"
	"github.com/kyleboon/chess-scripts/internal/game"
	"github.com/kyleboon/chess-scripts/internal/output"
	"github.com/kyleboon/chess-scripts/internal/uci"
)

var (
	analyzePGN         string
	analyzeEngine      string
	analyzeEco         string
	analyzeUser        string
	analyzeTermination string
	analyzeOut         string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Annotate every game in a PGN file with engine judgments and ACPL",
	Long: `Reads games from a PGN file, judges every move with a UCI engine at fixed
depth, classifies openings against the ECO table, and writes the annotated
PGN plus CSV and JSON summary rows. Games with parse errors are skipped with
a logged warning; an engine failure aborts the whole batch.`,
	Example: `  # Annotate a month of games with stockfish
  chess-scripts analyze --pgn january2022.pgn --engine stockfish

  # Only games the player won, printing their ACPL per game
  chess-scripts analyze --pgn 2022.pgn --user kyle_b81 --termination "kyle_b81 won"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if analyzeEngine != "" {
			cfg.EnginePath = analyzeEngine
		}
		if analyzeEco != "" {
			cfg.EcoPath = analyzeEco
		}
		if analyzeOut != "" {
			cfg.OutputDir = analyzeOut
		}

		db, err := eco.Load(cfg.EcoPath)
		if err != nil {
			return err
		}

		in, err := os.Open(analyzePGN)
		if err != nil {
			return err
		}
		defer in.Close()

		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return err
		}

		engine, err := uci.New(cfg.EnginePath)
		if err != nil {
			return fmt.Errorf("open engine: %w", err)
		}
		defer engine.Close()

		return runAnalysis(in, db, engine, cfg.OutputDir)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePGN, "pgn", "", "PGN file to analyze (required)")
	analyzeCmd.Flags().StringVar(&analyzeEngine, "engine", "", "UCI engine binary (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeEco, "eco", "", "ECO opening table (overrides config)")
	analyzeCmd.Flags().StringVarP(&analyzeUser, "user", "u", "", "print this player's ACPL per game")
	analyzeCmd.Flags().StringVar(&analyzeTermination, "termination", "", "only analyze games whose Termination tag starts with this")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "output directory (overrides config)")
	analyzeCmd.MarkFlagRequired("pgn")
}

func runAnalysis(in io.Reader, db *eco.DB, engine annotate.Engine, outDir string) error {
	csvWriter, err := output.NewCSVWriter(filepath.Join(outDir, "results.csv"))
	if err != nil {
		return err
	}
	defer csvWriter.Close()

	jsonWriter, err := output.NewJSONWriter(filepath.Join(outDir, "results.jsonl"))
	if err != nil {
		return err
	}
	defer jsonWriter.Close()

	annotated, err := os.Create(filepath.Join(outDir, "annotated.pgn"))
	if err != nil {
		return err
	}
	defer annotated.Close()

	scanner := game.NewScanner(in)
	for {
		g, err := scanner.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if analyzeTermination != "" && !strings.HasPrefix(g.Tags["Termination"], analyzeTermination) {
			continue
		}

		result, err := annotate.AnalyzeGame(g, db, engine)
		if err != nil {
			var illegal *annotate.IllegalMoveError
			switch {
			case errors.Is(err, annotate.ErrInvalidGame):
				output.Logger.Warn("skipping invalid game", "link", g.Tags["Link"], "error", err)
				continue
			case errors.As(err, &illegal):
				output.Logger.Error("engine produced an illegal PV move", "link", g.Tags["Link"], "error", err)
				continue
			default:
				// Engine-communication failure: fatal to the batch.
				return err
			}
		}

		row := resultRow(result)
		if err := csvWriter.Write(row); err != nil {
			return err
		}
		if err := jsonWriter.Write(row); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(annotated, "%s\n", result.Encode()); err != nil {
			return err
		}

		if analyzeUser != "" {
			acpl := result.Tags["BlackACPL"]
			if strings.EqualFold(result.Tags["White"], analyzeUser) {
				acpl = result.Tags["WhiteACPL"]
			}
			fmt.Printf("%s\t%s\n", acpl, result.Tags["Link"])
		}
	}
}

func resultRow(g *game.Game) output.GameResult {
	moves, _ := strconv.Atoi(g.Tags["Moves"])
	whiteACPL, _ := strconv.Atoi(g.Tags["WhiteACPL"])
	blackACPL, _ := strconv.Atoi(g.Tags["BlackACPL"])
	link := g.Tags["Link"]
	if link == "" {
		link = g.Tags["Site"]
	}
	return output.GameResult{
		White:     g.Tags["White"],
		Black:     g.Tags["Black"],
		ECO:       g.Tags["ECO"],
		Opening:   g.Tags["Opening"],
		Moves:     moves,
		WhiteACPL: whiteACPL,
		BlackACPL: blackACPL,
		Outcome:   g.Tags["Result"],
		Link:      link,
	}
}
