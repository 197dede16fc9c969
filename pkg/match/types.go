// Package match persists backgammon games and exports their ledgers.
// It reads and writes the BOARD/HISTORY save format and exports a game to
// the Jellyfish MAT and SGF notations.
package match

import (
	"github.com/yourusername/bgrules/pkg/engine"
)

// Match is a finished or running game prepared for export.
type Match struct {
	White  string // Name of the White player
	Red    string // Name of the Red player
	Date   string // Game date (YYYY-MM-DD format)
	Event  string // Event name
	Place  string // Location
	Turns  []engine.TurnEntry
	Winner engine.Color // NoColor while the game runs
}

// NewMatch collects the ledger and result of g.
func NewMatch(white, red string, g *engine.Game) *Match {
	return &Match{
		White:  white,
		Red:    red,
		Turns:  g.Turns(),
		Winner: g.Winner(),
	}
}

// PlayerOf returns the color that played turn i. The first turn goes to the
// player chosen by the opening roll and turns alternate from there.
func (m *Match) PlayerOf(i int) engine.Color {
	if len(m.Turns) == 0 {
		return engine.NoColor
	}
	first := engine.StartingPlayer(m.Turns[0].Dice1, m.Turns[0].Dice2)
	if i%2 == 1 {
		return first.Opposite()
	}
	return first
}

// NameOf returns the player name for color c.
func (m *Match) NameOf(c engine.Color) string {
	if c == engine.Red {
		return m.Red
	}
	return m.White
}

// pointNumber converts a board index to the point number seen by c, 24 being
// the farthest point from home.
func pointNumber(c engine.Color, index int) int {
	if c == engine.White {
		return engine.NumPoints - index
	}
	return index + 1
}
