package game

import (
	"bufio"
	"io"
	"strings"
)

// Scanner reads games one at a time from a PGN stream that may contain many
// games separated by blank lines, the way the chess.com archives deliver them.
type Scanner struct {
	r       *bufio.Scanner
	pending string
	hasPend bool
	err     error
}

// NewScanner returns a Scanner over r.
func NewScanner(r io.Reader) *Scanner {
	br := bufio.NewScanner(r)
	br.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Scanner{r: br}
}

// Next returns the next game in the stream, or io.EOF when the stream is
// exhausted. Games that fail to parse are still returned, with their Errors
// set, so the caller decides whether to skip them.
func (s *Scanner) Next() (*Game, error) {
	if s.err != nil {
		return nil, s.err
	}

	var b strings.Builder
	seenMoves := false
	for {
		line, ok := s.readLine()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && seenMoves {
			// Tag section of the following game.
			s.pending = line
			s.hasPend = true
			break
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "[") {
			seenMoves = true
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := s.r.Err(); err != nil {
		s.err = err
		return nil, err
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		s.err = io.EOF
		return nil, io.EOF
	}
	return Decode(text), nil
}

func (s *Scanner) readLine() (string, bool) {
	if s.hasPend {
		s.hasPend = false
		return s.pending, true
	}
	if !s.r.Scan() {
		return "", false
	}
	return s.r.Text(), true
}
