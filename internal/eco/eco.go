// Package eco matches positions against an Encyclopedia of Chess Openings
// reference table keyed by truncated FEN.
package eco

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/notnil/chess"
)

// Opening is one reference record. FEN is the table's position key:
// piece placement, side to move, and castling rights only.
type Opening struct {
	Code  string `json:"eco"`
	Name  string `json:"name"`
	Moves string `json:"moves"`
	FEN   string `json:"fen"`
}

// DB is the loaded reference table, indexed by position key.
type DB struct {
	byKey map[string]Opening
}

// New builds a DB from a list of openings. Duplicate keys keep the first
// record, matching a linear scan over the source file.
func New(openings []Opening) *DB {
	db := &DB{byKey: make(map[string]Opening, len(openings))}
	for _, o := range openings {
		if _, ok := db.byKey[o.FEN]; !ok {
			db.byKey[o.FEN] = o
		}
	}
	return db
}

// Load reads a JSON opening table from disk.
func Load(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read opening table: %w", err)
	}
	var openings []Opening
	if err := json.Unmarshal(data, &openings); err != nil {
		return nil, fmt.Errorf("parse opening table %s: %w", path, err)
	}
	return New(openings), nil
}

// Find returns the opening recorded for the given position key.
func (db *DB) Find(key string) (Opening, bool) {
	o, ok := db.byKey[key]
	return o, ok
}

// Len reports the number of distinct positions in the table.
func (db *DB) Len() int {
	return len(db.byKey)
}

// Key converts a position to the table's key convention: the first three FEN
// fields. En passant square and move counters are deliberately excluded so
// transpositions with different counters still match.
func Key(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) < 3 {
		return pos.String()
	}
	return strings.Join(fields[:3], " ")
}
