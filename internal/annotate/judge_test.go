package annotate

import (
	"errors"
	"testing"

	"github.com/notnil/chess"

	"github.com/kyleboon/chess-scripts/internal/uci"
)

func findMove(t *testing.T, pos *chess.Position, uciMove string) *chess.Move {
	t.Helper()
	for _, mv := range pos.ValidMoves() {
		if mv.String() == uciMove {
			return mv
		}
	}
	t.Fatalf("move %s not legal in %s", uciMove, pos.String())
	return nil
}

func startPos(t *testing.T) *chess.Position {
	t.Helper()
	return chess.NewGame().Position()
}

func posFromFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	fn, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad FEN %q: %v", fen, err)
	}
	return chess.NewGame(fn).Position()
}

func TestEvalNumeric(t *testing.T) {
	tests := []struct {
		score uci.Score
		want  int
	}{
		{uci.Score{CP: 35}, 35},
		{uci.Score{CP: -120}, -120},
		{uci.Score{Mate: 3, IsMate: true}, MaxScore},
		{uci.Score{Mate: -2, IsMate: true}, -MaxScore},
	}
	for _, tt := range tests {
		if got := evalNumeric(tt.score); got != tt.want {
			t.Errorf("evalNumeric(%+v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestAbsolute(t *testing.T) {
	if got := Absolute(MaxScore, chess.White); got != MaxScore {
		t.Errorf("Absolute(white) = %d, want %d", got, MaxScore)
	}
	// A mate for Black as the side to move is a disaster on the
	// White-relative scale.
	if got := Absolute(MaxScore, chess.Black); got != -MaxScore {
		t.Errorf("Absolute(black) = %d, want %d", got, -MaxScore)
	}
}

func TestJudgeMoveBestMoveShortcut(t *testing.T) {
	pos := startPos(t)
	played := findMove(t, pos, "e2e4")

	engine := &stubEngine{responses: map[string]*uci.Analysis{
		pos.String(): {BestMove: "e2e4", PV: []string{"e2e4"}, Score: uci.Score{CP: 31}, Depth: 22, Nodes: 4000},
	}}

	j, err := JudgeMove(pos, played, engine)
	if err != nil {
		t.Fatalf("JudgeMove: %v", err)
	}
	if j.PlayedEval != j.BestEval {
		t.Errorf("played == best must give equal evals: %d vs %d", j.PlayedEval, j.BestEval)
	}
	if j.BestEval != 31 {
		t.Errorf("BestEval = %d, want 31", j.BestEval)
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, the second query must be skipped", engine.calls)
	}
	if j.PlayedComment != "" {
		t.Errorf("best move should get no criticism, got %q", j.PlayedComment)
	}
	if j.Depth != 22 || j.Nodes != 4000 {
		t.Errorf("depth/nodes not carried: %d/%d", j.Depth, j.Nodes)
	}
}

func TestJudgeMoveWorseMove(t *testing.T) {
	pos := startPos(t)
	played := findMove(t, pos, "a2a3")
	after := pos.Update(played)

	engine := &stubEngine{responses: map[string]*uci.Analysis{
		pos.String(): {BestMove: "e2e4", PV: []string{"e2e4"}, Score: uci.Score{CP: 31}, Depth: 22},
		// The reply score is from Black's perspective: +45 for Black.
		after.String(): {BestMove: "e7e5", PV: []string{"e7e5"}, Score: uci.Score{CP: 45}, Depth: 22},
	}}

	j, err := JudgeMove(pos, played, engine)
	if err != nil {
		t.Fatalf("JudgeMove: %v", err)
	}
	if engine.calls != 2 {
		t.Errorf("engine calls = %d, want 2", engine.calls)
	}
	if j.PlayedEval != -45 {
		t.Errorf("PlayedEval = %d, want -45 (sign flipped back to the mover)", j.PlayedEval)
	}
	if loss := j.BestEval - j.PlayedEval; loss != 76 {
		t.Errorf("loss = %d, want 76", loss)
	}
	if j.PlayedComment != "Dubious. e4 was best." {
		t.Errorf("PlayedComment = %q", j.PlayedComment)
	}
}

func TestJudgeMoveMateForMover(t *testing.T) {
	pos := startPos(t)
	played := findMove(t, pos, "e2e4")

	engine := &stubEngine{responses: map[string]*uci.Analysis{
		pos.String(): {BestMove: "e2e4", PV: []string{"e2e4"}, Score: uci.Score{Mate: 5, IsMate: true}, Depth: 22},
	}}

	j, err := JudgeMove(pos, played, engine)
	if err != nil {
		t.Fatalf("JudgeMove: %v", err)
	}
	if j.BestEval != MaxScore {
		t.Errorf("forced mate must saturate to %d, got %d", MaxScore, j.BestEval)
	}
}

func TestTruncatePVQuietLine(t *testing.T) {
	pv := []string{
		"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5", "b1c3", "g8f6",
		"d2d3", "d7d6", "c1g5", "c8g4", "a2a3", "a7a6", "h2h3", "g4f3",
		"d1f3", "c6d4", "f3d1", "h7h6",
	}
	got, err := TruncatePV(startPos(t), pv)
	if err != nil {
		t.Fatalf("TruncatePV: %v", err)
	}
	if len(got) != ShortPVLen {
		t.Fatalf("len = %d, want %d", len(got), ShortPVLen)
	}
	for i := range got {
		if got[i] != pv[i] {
			t.Errorf("truncated PV differs at %d: %s vs %s", i, got[i], pv[i])
		}
	}
}

func TestTruncatePVMatingLineKeptWhole(t *testing.T) {
	pv := []string{"f2f3", "e7e5", "g2g4", "d8h4"} // fool's mate
	got, err := TruncatePV(startPos(t), pv)
	if err != nil {
		t.Fatalf("TruncatePV: %v", err)
	}
	if len(got) != len(pv) {
		t.Errorf("mating PV truncated to %d moves", len(got))
	}
}

func TestTruncatePVFiftyMoveClaimKeptWhole(t *testing.T) {
	// One quiet move from here pushes the half-move clock to 100.
	pos := posFromFEN(t, "8/8/8/4k3/8/4K3/4R3/8 w - - 99 80")
	pv := []string{
		"e2e1", "e5d5", "e1f1", "d5e5", "f1e1", "e5d5",
		"e1f1", "d5e5", "f1e1", "e5d5", "e1f1", "d5e5",
	}
	got, err := TruncatePV(pos, pv)
	if err != nil {
		t.Fatalf("TruncatePV: %v", err)
	}
	if len(got) != len(pv) {
		t.Errorf("claimable-draw PV truncated to %d of %d moves", len(got), len(pv))
	}
}

func TestTruncatePVThreefoldKeptWhole(t *testing.T) {
	// Three rook/king shuttle cycles revisit the starting position a third
	// time at ply 8, so the line is a claimable draw and must not be cut.
	pos := posFromFEN(t, "8/8/8/4k3/8/4K3/4R3/8 w - - 0 1")
	pv := []string{
		"e2e1", "e5d5", "e1e2", "d5e5",
		"e2e1", "e5d5", "e1e2", "d5e5",
		"e2e1", "e5d5", "e1e2", "d5e5",
	}
	got, err := TruncatePV(pos, pv)
	if err != nil {
		t.Fatalf("TruncatePV: %v", err)
	}
	if len(got) != len(pv) {
		t.Errorf("repetition PV truncated to %d of %d moves", len(got), len(pv))
	}
}

func TestPlayedCommentGrades(t *testing.T) {
	pos := startPos(t)
	tests := []struct {
		loss int
		want string
	}{
		{500, "Blunder. Nf3 was best."},
		{300, "Blunder. Nf3 was best."},
		{200, "Mistake. Nf3 was best."},
		{150, "Mistake. Nf3 was best."},
		{76, "Dubious. Nf3 was best."},
		{75, "Dubious. Nf3 was best."},
		{74, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := playedComment(pos, "g1f3", tt.loss); got != tt.want {
			t.Errorf("playedComment(loss=%d) = %q, want %q", tt.loss, got, tt.want)
		}
	}
}

func TestTruncatePVIllegalMove(t *testing.T) {
	_, err := TruncatePV(startPos(t), []string{"e2e4", "e7e5", "e4e6"})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatalf("got %v, want IllegalMoveError", err)
	}
	if illegal.Move != "e4e6" {
		t.Errorf("offending move = %q, want e4e6", illegal.Move)
	}
}

func TestTruncatePVShortLineUntouched(t *testing.T) {
	pv := []string{"e2e4", "e7e5"}
	got, err := TruncatePV(startPos(t), pv)
	if err != nil {
		t.Fatalf("TruncatePV: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("short PV should come back whole, got %d moves", len(got))
	}
}
