// Package game holds the game tree that the annotator works on: an ordered
// sequence of positions reached by played moves, plus the PGN tag mapping.
package game

import (
	"strings"

	"github.com/notnil/chess"
)

// Judgment records the engine's verdict on a single played move. Evaluations
// are relative to the side that was to move at the judged position.
type Judgment struct {
	BestMove      string
	BestEval      int
	BestComment   string
	PV            []string
	PlayedEval    int
	PlayedComment string
	Depth         int
	Nodes         int64
}

// Node is one ply in the game tree: the move that reached it, the resulting
// position, and any continuations. Children[0] is the main line.
type Node struct {
	Parent   *Node
	Children []*Node
	Move     *chess.Move
	Pos      *chess.Position
	Comment  string
	Judgment *Judgment
}

// MainChild returns the main-line continuation, or nil at the end of the game.
func (n *Node) MainChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Game is a parsed game. Root holds the starting position (Move is nil there)
// and End is the final position of the recorded main line. Parse problems are
// recorded in Errors instead of failing the load, so callers can apply their
// own validation policy before spending engine time.
type Game struct {
	Tags   map[string]string
	Root   *Node
	End    *Node
	Errors []error
}

// Decode parses a single PGN game. It never fails outright; a game that could
// not be parsed comes back with Errors set and no tree.
func Decode(pgn string) *Game {
	g := &Game{Tags: make(map[string]string)}

	fn, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		g.Errors = append(g.Errors, err)
		return g
	}

	src := chess.NewGame(fn)
	for _, tp := range src.TagPairs() {
		g.Tags[tp.Key] = tp.Value
	}

	positions := src.Positions()
	moves := src.Moves()
	comments := src.Comments()

	if len(positions) == 0 {
		return g
	}

	g.Root = &Node{Pos: positions[0]}
	node := g.Root
	for i, mv := range moves {
		child := &Node{
			Parent: node,
			Move:   mv,
			Pos:    positions[i+1],
		}
		if i < len(comments) {
			child.Comment = strings.Join(comments[i], " ")
		}
		node.Children = append(node.Children, child)
		node = child
	}
	g.End = node

	return g
}

// PlyCount returns the number of half-moves on the main line, counted by
// walking from End back to Root.
func (g *Game) PlyCount() int {
	n := 0
	for node := g.End; node != nil && node != g.Root; node = node.Parent {
		n++
	}
	return n
}
