package annotate

import (
	"math"
	"strconv"

	"github.com/notnil/chess"

	"github.com/kyleboon/chess-scripts/internal/game"
)

// cpl clamps a single move's centipawn loss to [0, MaxCPL]. The floor absorbs
// engine noise on near-best moves; the ceiling keeps one blunder from
// dominating the average.
func cpl(delta int) int {
	if delta < 0 {
		return 0
	}
	if delta > MaxCPL {
		return MaxCPL
	}
	return delta
}

// acpl is the arithmetic mean of a loss list. An empty list averages to zero
// rather than dividing by it.
func acpl(losses []int) float64 {
	if len(losses) == 0 {
		return 0
	}
	sum := 0
	for _, l := range losses {
		sum += l
	}
	return float64(sum) / float64(len(losses))
}

// AddACPL folds the judged moves between the end of the game and the
// classified root into per-side average centipawn loss, written to the
// WhiteACPL and BlackACPL tags. Each loss belongs to the side that moved into
// the node: the opposite of the side to move after the move.
func AddACPL(g *game.Game, root *game.Node) {
	var whiteCPL, blackCPL []int

	for node := g.End; node != root; node = node.Parent {
		j := node.Judgment
		if j == nil {
			continue
		}
		loss := cpl(j.BestEval - j.PlayedEval)
		if node.Pos.Turn() == chess.White {
			blackCPL = append(blackCPL, loss)
		} else {
			whiteCPL = append(whiteCPL, loss)
		}
	}

	g.Tags["WhiteACPL"] = strconv.Itoa(int(math.Round(acpl(whiteCPL))))
	g.Tags["BlackACPL"] = strconv.Itoa(int(math.Round(acpl(blackCPL))))
}
