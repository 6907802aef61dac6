// Package annotate runs a parsed game through a chess engine: it validates
// and strips the game, classifies the opening against an ECO table, judges
// every remaining move, and writes average-centipawn-loss tags per side.
package annotate

import (
	"errors"
	"fmt"

	"github.com/kyleboon/chess-scripts/internal/eco"
	"github.com/kyleboon/chess-scripts/internal/game"
	"github.com/kyleboon/chess-scripts/internal/uci"
)

const (
	// SearchDepth is the fixed per-query search depth in plies.
	SearchDepth = 22
	// MaxScore is the bounded numeric stand-in for a forced mate.
	MaxScore = 10000
	// MaxCPL caps a single move's centipawn loss so one blunder does not
	// dominate the average.
	MaxCPL = 2000
	// ShortPVLen is the length a non-terminal principal variation is cut to.
	ShortPVLen = 10
)

// Loss thresholds for the played-move comment.
const (
	blunderLoss = 300
	mistakeLoss = 150
	dubiousLoss = 75
)

// ErrInvalidGame marks a game that must not be analyzed: it carries parse
// errors, or its end position does not reach back to the root.
var ErrInvalidGame = errors.New("invalid game")

// IllegalMoveError reports a principal-variation move that is illegal where
// it would be played. The engine should never produce one; seeing it means
// engine or board state is corrupt.
type IllegalMoveError struct {
	Move string
	FEN  string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s in position %q", e.Move, e.FEN)
}

// Engine is the analysis collaborator: one synchronous query per position at
// a bounded depth. *uci.Engine satisfies it.
type Engine interface {
	Analyze(fen string, depth int) (*uci.Analysis, error)
}

// Validate fails fast on games not worth engine time.
func Validate(g *game.Game) error {
	if len(g.Errors) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidGame, g.Errors[0])
	}
	if g.Root == nil || g.End == nil {
		return fmt.Errorf("%w: game has no positions", ErrInvalidGame)
	}
	for n := g.End; n != nil; n = n.Parent {
		if n == g.Root {
			return nil
		}
	}
	return fmt.Errorf("%w: end position unreachable from root", ErrInvalidGame)
}

// Strip removes every comment, judgment, and side line, leaving a single
// linear path from root to end. Tags are untouched. Idempotent.
func Strip(g *game.Game) {
	for node := g.End; node != nil; node = node.Parent {
		node.Comment = ""
		node.Judgment = nil
		if len(node.Children) > 1 {
			node.Children = node.Children[:1]
		}
		if node == g.Root {
			break
		}
	}
}

// ClassifyOpening walks from the end of the game toward the root looking for
// the deepest position present in the reference table. On a match it records
// ECO and Opening tags, comments the matched node, and returns that node as
// the classified root; moves at or before it are book moves and are not
// judged. Without a match the true root comes back. The ply count walked is
// always written to the Moves tag.
func ClassifyOpening(g *game.Game, db *eco.DB) (*game.Node, int) {
	root := g.Root
	plyCount := 0

	for node := g.End; node != g.Root; node = node.Parent {
		opening, ok := db.Find(eco.Key(node.Pos))
		if ok {
			g.Tags["ECO"] = opening.Code
			g.Tags["Opening"] = opening.Name
			node.Comment = opening.Code + " " + opening.Name
			root = node
			break
		}
		plyCount++
	}

	g.Tags["Moves"] = fmt.Sprintf("%d", plyCount)
	return root, plyCount
}

// JudgeGame judges every move after the classified root, attaching one
// judgment per node. An engine failure aborts the game immediately.
func JudgeGame(g *game.Game, root *game.Node, engine Engine) error {
	for node := g.End; node != root; node = node.Parent {
		j, err := JudgeMove(node.Parent.Pos, node.Move, engine)
		if err != nil {
			return err
		}
		node.Judgment = j
	}
	return nil
}

// AnalyzeGame is the whole pipeline for one game: validate, strip, classify,
// judge, aggregate. The annotated game is returned with ECO, Opening, Moves,
// WhiteACPL, and BlackACPL tags set.
func AnalyzeGame(g *game.Game, db *eco.DB, engine Engine) (*game.Game, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}

	Strip(g)

	root, _ := ClassifyOpening(g, db)

	if err := JudgeGame(g, root, engine); err != nil {
		return nil, err
	}

	AddACPL(g, root)
	return g, nil
}
