// Package stats summarizes a game ledger per player.
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/bgrules/pkg/engine"
)

// PlayerStats holds the figures of one color.
type PlayerStats struct {
	Color      engine.Color
	Turns      int
	Doublets   int
	Dances     int // turns that ended without a play
	Hits       int
	Entries    int
	BearOffs   int
	PipsRolled int
	PipsPlayed int
	PipCount   int // pips still to travel on the current board

	// Per turn pips played.
	MeanPips   float64
	StdDevPips float64
	// PipsPlayed / PipsRolled, 0 before the first roll.
	Efficiency float64
}

// Summary is the pair of player figures for a game.
type Summary struct {
	White PlayerStats
	Red   PlayerStats
}

// Player returns the figures of color c.
func (s *Summary) Player(c engine.Color) *PlayerStats {
	if c == engine.Red {
		return &s.Red
	}
	return &s.White
}

// rolledPips is the pip total a roll grants: doublets play four times.
func rolledPips(t engine.TurnEntry) int {
	if t.Dice1 == t.Dice2 {
		return engine.MaxDoubletUses * t.Dice1
	}
	return t.Dice1 + t.Dice2
}

// Compute walks the ledger of g. Turns alternate from the player chosen by
// the opening roll.
func Compute(g *engine.Game) Summary {
	return FromTurns(g.Turns(), g.Board())
}

// FromTurns summarizes turns played on the way to board. A trailing turn
// without plays is the one still open and is left out.
func FromTurns(turns []engine.TurnEntry, board engine.Board) Summary {
	s := Summary{
		White: PlayerStats{Color: engine.White, PipCount: board.PipCount(engine.White)},
		Red:   PlayerStats{Color: engine.Red, PipCount: board.PipCount(engine.Red)},
	}
	if len(turns) == 0 {
		return s
	}
	first := engine.StartingPlayer(turns[0].Dice1, turns[0].Dice2)
	if len(turns[len(turns)-1].Moves) == 0 {
		turns = turns[:len(turns)-1]
	}

	var rolled, played [2][]float64
	c := first
	for _, t := range turns {
		ps := s.Player(c)
		side := sideOf(c)

		ps.Turns++
		if t.Dice1 == t.Dice2 {
			ps.Doublets++
		}
		if len(t.Moves) == 0 {
			ps.Dances++
		}

		pips := 0
		for _, m := range t.Moves {
			pips += m.By
			if m.Hit {
				ps.Hits++
			}
			if m.From.IsBar() {
				ps.Entries++
			}
			if m.Dest(c).IsOff() {
				ps.BearOffs++
			}
		}
		rolled[side] = append(rolled[side], float64(rolledPips(t)))
		played[side] = append(played[side], float64(pips))

		c = c.Opposite()
	}

	for _, c := range []engine.Color{engine.White, engine.Red} {
		ps := s.Player(c)
		side := sideOf(c)
		if len(played[side]) == 0 {
			continue
		}
		ps.PipsRolled = int(floats.Sum(rolled[side]))
		ps.PipsPlayed = int(floats.Sum(played[side]))
		ps.MeanPips, ps.StdDevPips = stat.MeanStdDev(played[side], nil)
		if len(played[side]) < 2 {
			ps.StdDevPips = 0
		}
		if ps.PipsRolled > 0 {
			ps.Efficiency = float64(ps.PipsPlayed) / float64(ps.PipsRolled)
		}
	}
	return s
}

func sideOf(c engine.Color) int {
	if c == engine.Red {
		return 1
	}
	return 0
}
