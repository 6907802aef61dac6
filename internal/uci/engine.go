// Package uci drives a UCI chess engine over its standard pipes. One Engine
// is a single engine process, reused for every query in a batch and shut down
// with Close.
package uci

import (
	"bufio"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Score is an engine evaluation, relative to the side to move in the queried
// position. Forced mates are flagged distinctly; mapping them onto the
// centipawn scale is the caller's business.
type Score struct {
	CP     int
	Mate   int
	IsMate bool
}

// Analysis is the engine's reply for one position.
type Analysis struct {
	BestMove string
	PV       []string
	Score    Score
	Depth    int
	Nodes    int64
}

// Engine wraps a running UCI engine process.
type Engine struct {
	cmd    *exec.Cmd
	stdin  *bufio.Writer
	stdout *bufio.Scanner
}

// New starts the engine binary and performs the UCI handshake. A missing or
// non-executable binary surfaces here, before any position is queried.
func New(path string) (*Engine, error) {
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start engine %s: %w", path, err)
	}

	e := &Engine{
		cmd:    cmd,
		stdin:  bufio.NewWriter(stdin),
		stdout: bufio.NewScanner(stdout),
	}

	e.send("uci")
	if !e.waitFor("uciok") {
		e.cmd.Process.Kill()
		return nil, fmt.Errorf("engine %s: no uciok before stream closed", path)
	}
	e.send("isready")
	if !e.waitFor("readyok") {
		e.cmd.Process.Kill()
		return nil, fmt.Errorf("engine %s: no readyok before stream closed", path)
	}

	return e, nil
}

func (e *Engine) send(cmd string) {
	e.stdin.WriteString(cmd + "\n")
	e.stdin.Flush()
}

func (e *Engine) waitFor(token string) bool {
	for e.stdout.Scan() {
		if strings.Contains(e.stdout.Text(), token) {
			return true
		}
	}
	return false
}

// Analyze runs a fixed-depth search of the given position. The returned
// analysis carries the deepest info line the engine printed before bestmove.
func (e *Engine) Analyze(fen string, depth int) (*Analysis, error) {
	e.send("position fen " + fen)
	e.send(fmt.Sprintf("go depth %d", depth))

	a := &Analysis{}
	for e.stdout.Scan() {
		line := e.stdout.Text()
		if strings.HasPrefix(line, "info ") {
			parseInfo(line, a)
			continue
		}
		if strings.HasPrefix(line, "bestmove") {
			fields := strings.Fields(line)
			if len(fields) > 1 {
				a.BestMove = fields[1]
			}
			if a.BestMove == "" || a.BestMove == "(none)" {
				return nil, fmt.Errorf("engine returned no best move for %q", fen)
			}
			return a, nil
		}
	}
	return nil, fmt.Errorf("engine stream closed during analysis of %q", fen)
}

// parseInfo folds one "info ..." line into a. Later lines overwrite earlier
// ones, so the deepest line wins.
func parseInfo(line string, a *Analysis) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if v, err := strconv.Atoi(fields[i+1]); err == nil {
					a.Depth = v
				}
			}
		case "nodes":
			if i+1 < len(fields) {
				if v, err := strconv.ParseInt(fields[i+1], 10, 64); err == nil {
					a.Nodes = v
				}
			}
		case "score":
			if i+2 < len(fields) {
				v, err := strconv.Atoi(fields[i+2])
				if err != nil {
					break
				}
				switch fields[i+1] {
				case "cp":
					a.Score = Score{CP: v}
				case "mate":
					a.Score = Score{Mate: v, IsMate: true}
				}
			}
		case "pv":
			// The principal variation runs to the end of the line.
			if i+1 < len(fields) {
				a.PV = append([]string(nil), fields[i+1:]...)
			}
			return
		}
	}
}

// Close asks the engine to quit and reaps the process.
func (e *Engine) Close() error {
	e.send("quit")
	return e.cmd.Wait()
}
