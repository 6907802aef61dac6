package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// Seven-tag roster order, emitted first; remaining tags follow alphabetically.
var rosterTags = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// Encode renders the game back to PGN, including annotation comments.
func (g *Game) Encode() string {
	var b strings.Builder

	emitted := make(map[string]bool)
	for _, k := range rosterTags {
		if v, ok := g.Tags[k]; ok {
			fmt.Fprintf(&b, "[%s %q]\n", k, v)
			emitted[k] = true
		}
	}
	rest := make([]string, 0, len(g.Tags))
	for k := range g.Tags {
		if !emitted[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		fmt.Fprintf(&b, "[%s %q]\n", k, g.Tags[k])
	}
	b.WriteString("\n")

	var tokens []string
	for node := g.Root; node != nil; node = node.MainChild() {
		child := node.MainChild()
		if child == nil {
			break
		}
		san := chess.AlgebraicNotation{}.Encode(node.Pos, child.Move)
		if node.Pos.Turn() == chess.White {
			tokens = append(tokens, fullMoveNumber(node.Pos)+".", san)
		} else if node == g.Root {
			tokens = append(tokens, fullMoveNumber(node.Pos)+"...", san)
		} else {
			tokens = append(tokens, san)
		}
		if c := child.annotationText(); c != "" {
			tokens = append(tokens, "{"+c+"}")
		}
	}

	result := g.Tags["Result"]
	if result == "" {
		result = "*"
	}
	tokens = append(tokens, result)

	b.WriteString(wrap(tokens, 80))
	b.WriteString("\n")
	return b.String()
}

func (n *Node) annotationText() string {
	parts := make([]string, 0, 2)
	if n.Comment != "" {
		parts = append(parts, n.Comment)
	}
	if j := n.Judgment; j != nil {
		if t := j.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Text renders the judgment as a human-readable comment.
func (j *Judgment) Text() string {
	s := fmt.Sprintf("%s/%d", EvalText(j.PlayedEval), j.Depth)
	if j.PlayedComment != "" {
		s = j.PlayedComment + " " + s
	}
	return s
}

// EvalText formats a centipawn evaluation in pawn units.
func EvalText(cp int) string {
	return fmt.Sprintf("%+.2f", float64(cp)/100)
}

// fullMoveNumber reads the move counter straight out of the FEN.
func fullMoveNumber(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) == 6 {
		if _, err := strconv.Atoi(fields[5]); err == nil {
			return fields[5]
		}
	}
	return "1"
}

func wrap(tokens []string, width int) string {
	var b strings.Builder
	line := 0
	for i, tok := range tokens {
		if i > 0 {
			if line+1+len(tok) > width {
				b.WriteString("\n")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(tok)
		line += len(tok)
	}
	return b.String()
}
