package annotate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/kyleboon/chess-scripts/internal/game"
	"github.com/kyleboon/chess-scripts/internal/uci"
)

// evalNumeric maps an engine score onto a single centipawn scale, relative to
// the side to move. A forced mate saturates at ±MaxScore so it compares
// consistently with ordinary material scores.
func evalNumeric(s uci.Score) int {
	if s.IsMate {
		if s.Mate > 0 {
			return MaxScore
		}
		return -MaxScore
	}
	return s.CP
}

// Absolute converts a side-to-move-relative evaluation to a White-relative
// one.
func Absolute(eval int, turn chess.Color) int {
	if turn == chess.White {
		return eval
	}
	return -eval
}

// JudgeMove compares the played move against the engine's best move in the
// position before it. Both evaluations in the returned judgment are relative
// to the mover. When the played move is the engine's best move, the second
// engine query is skipped and the evaluations are identical. Otherwise the
// move is applied to a scratch position (positions are immutable, so the
// caller's board is untouched) and the reply score, which is from the
// opponent's perspective, is negated back to the mover's.
func JudgeMove(pos *chess.Position, played *chess.Move, engine Engine) (*game.Judgment, error) {
	a, err := engine.Analyze(pos.String(), SearchDepth)
	if err != nil {
		return nil, err
	}

	pv, err := TruncatePV(pos, a.PV)
	if err != nil {
		return nil, err
	}

	j := &game.Judgment{
		BestMove: a.BestMove,
		BestEval: evalNumeric(a.Score),
		PV:       pv,
		Depth:    a.Depth,
		Nodes:    a.Nodes,
	}
	j.BestComment = fmt.Sprintf("%s/%d", game.EvalText(j.BestEval), SearchDepth)

	if played.String() == a.BestMove {
		j.PlayedEval = j.BestEval
		return j, nil
	}

	reply, err := engine.Analyze(pos.Update(played).String(), SearchDepth)
	if err != nil {
		return nil, err
	}
	j.PlayedEval = -evalNumeric(reply.Score)
	j.PlayedComment = playedComment(pos, a.BestMove, j.BestEval-j.PlayedEval)

	return j, nil
}

// playedComment grades the loss and names the better move.
func playedComment(pos *chess.Position, bestUCI string, loss int) string {
	var grade string
	switch {
	case loss >= blunderLoss:
		grade = "Blunder."
	case loss >= mistakeLoss:
		grade = "Mistake."
	case loss >= dubiousLoss:
		grade = "Dubious."
	default:
		return ""
	}
	return grade + " " + sanOf(pos, bestUCI) + " was best."
}

func sanOf(pos *chess.Position, uciMove string) string {
	mv, err := chess.UCINotation{}.Decode(pos, uciMove)
	if err != nil {
		return uciMove
	}
	return chess.AlgebraicNotation{}.Encode(pos, mv)
}

// TruncatePV applies the principal variation to a scratch position. A PV that
// ends the game (checkmate, stalemate, bare-material draw, or a claimable
// draw by repetition or the fifty-move rule) is returned whole; any other PV
// is cut to ShortPVLen half-moves. An illegal move fails with
// IllegalMoveError: the engine must never produce one.
func TruncatePV(pos *chess.Position, pv []string) ([]string, error) {
	cur := pos
	seen := map[string]int{repetitionKey(cur): 1}
	threefold := false

	for _, ms := range pv {
		mv := findLegal(cur, ms)
		if mv == nil {
			return nil, &IllegalMoveError{Move: ms, FEN: cur.String()}
		}
		cur = cur.Update(mv)
		seen[repetitionKey(cur)]++
		if seen[repetitionKey(cur)] >= 3 {
			threefold = true
		}
	}

	if gameOver(cur, threefold) {
		return pv, nil
	}
	if len(pv) > ShortPVLen {
		return pv[:ShortPVLen], nil
	}
	return pv, nil
}

func findLegal(pos *chess.Position, uciMove string) *chess.Move {
	for _, mv := range pos.ValidMoves() {
		if mv.String() == uciMove {
			return mv
		}
	}
	return nil
}

func gameOver(pos *chess.Position, threefold bool) bool {
	if threefold {
		return true
	}
	if len(pos.ValidMoves()) == 0 {
		return true
	}
	if halfMoveClock(pos) >= 100 {
		return true
	}
	return insufficientMaterial(pos)
}

// halfMoveClock reads the fifty-move counter out of the FEN.
func halfMoveClock(pos *chess.Position) int {
	fields := strings.Fields(pos.String())
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return n
}

// repetitionKey is the position identity used for the threefold check: board,
// side to move, castling rights, en passant square.
func repetitionKey(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return pos.String()
	}
	return strings.Join(fields[:4], " ")
}

// insufficientMaterial reports the dead positions that end a game outright:
// king versus king, with at most one minor piece on the board.
func insufficientMaterial(pos *chess.Position) bool {
	minors := 0
	for _, p := range pos.Board().SquareMap() {
		switch p.Type() {
		case chess.King:
		case chess.Knight, chess.Bishop:
			minors++
		default:
			return false
		}
	}
	return minors <= 1
}
