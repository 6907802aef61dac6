package uci

import (
	"reflect"
	"testing"
)

func TestParseInfo(t *testing.T) {
	var a Analysis
	parseInfo("info depth 22 seldepth 31 multipv 1 score cp 35 nodes 4184519 nps 1201872 tbhits 0 time 3482 pv e2e4 e7e5 g1f3", &a)

	if a.Depth != 22 {
		t.Errorf("Depth = %d, want 22", a.Depth)
	}
	if a.Nodes != 4184519 {
		t.Errorf("Nodes = %d, want 4184519", a.Nodes)
	}
	if a.Score.IsMate || a.Score.CP != 35 {
		t.Errorf("Score = %+v, want cp 35", a.Score)
	}
	if want := []string{"e2e4", "e7e5", "g1f3"}; !reflect.DeepEqual(a.PV, want) {
		t.Errorf("PV = %v, want %v", a.PV, want)
	}
}

func TestParseInfoMate(t *testing.T) {
	var a Analysis
	parseInfo("info depth 18 score mate 3 nodes 99 pv d1h5 g8f6 h5f7", &a)

	if !a.Score.IsMate || a.Score.Mate != 3 {
		t.Errorf("Score = %+v, want mate 3", a.Score)
	}

	parseInfo("info depth 18 score mate -2 nodes 120 pv e8f8", &a)
	if !a.Score.IsMate || a.Score.Mate != -2 {
		t.Errorf("Score = %+v, want mate -2", a.Score)
	}
}

func TestParseInfoDeepestLineWins(t *testing.T) {
	var a Analysis
	parseInfo("info depth 10 score cp 12 nodes 1000 pv d2d4", &a)
	parseInfo("info depth 22 score cp 35 nodes 50000 pv e2e4 e7e5", &a)

	if a.Depth != 22 || a.Score.CP != 35 {
		t.Errorf("later info line should win: %+v", a)
	}
	if want := []string{"e2e4", "e7e5"}; !reflect.DeepEqual(a.PV, want) {
		t.Errorf("PV = %v, want %v", a.PV, want)
	}
}

func TestParseInfoIgnoresNonScoreLines(t *testing.T) {
	var a Analysis
	parseInfo("info depth 5 currmove e2e4 currmovenumber 1", &a)
	if a.Score.IsMate || a.Score.CP != 0 || a.PV != nil {
		t.Errorf("currmove line should not set score or pv: %+v", a)
	}
	if a.Depth != 5 {
		t.Errorf("Depth = %d, want 5", a.Depth)
	}
}
