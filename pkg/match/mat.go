package match

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yourusername/bgrules/pkg/engine"
)

// MAT format is the Jellyfish/gnubg match format. A single game is written as
// a one point match, White in the first column and Red in the second:
//
//	 ; [Player 1 "white"]
//	 ; [Player 2 "red"]
//	 1 point match
//
//	 Game 1
//	 white : 0                          red : 0
//	  1) 65: 24/18 18/13                31: 8/5 6/5
//	  2) 43: 13/9 13/10                 ...

// matColumn is the width of the White half of a move line.
const matColumn = 32

// ExportMAT writes the game ledger of m in MAT format.
func ExportMAT(w io.Writer, m *Match) error {
	bw := bufio.NewWriter(w)

	if m.Place != "" {
		fmt.Fprintf(bw, " ; [Site \"%s\"]\n", m.Place)
	}
	if m.Event != "" {
		fmt.Fprintf(bw, " ; [Event \"%s\"]\n", m.Event)
	}
	if m.Date != "" {
		fmt.Fprintf(bw, " ; [Date \"%s\"]\n", m.Date)
	}
	fmt.Fprintf(bw, " ; [Player 1 \"%s\"]\n", m.White)
	fmt.Fprintf(bw, " ; [Player 2 \"%s\"]\n", m.Red)
	fmt.Fprintf(bw, " 1 point match\n\n")

	fmt.Fprintf(bw, " Game 1\n")
	fmt.Fprintf(bw, " %s : 0                          %s : 0\n", m.White, m.Red)

	row := 0
	open := false
	for i, t := range m.Turns {
		cell := formatTurnMAT(m.PlayerOf(i), t)
		if m.PlayerOf(i) == engine.White {
			row++
			fmt.Fprintf(bw, "%3d) %s", row, padMAT(cell))
			open = true
			continue
		}
		if !open {
			row++
			fmt.Fprintf(bw, "%3d) %s", row, padMAT(""))
		}
		fmt.Fprintf(bw, "%s\n", cell)
		open = false
	}
	if open {
		fmt.Fprintf(bw, "\n")
	}

	switch m.Winner {
	case engine.White:
		fmt.Fprintf(bw, "     Wins 1 point\n")
	case engine.Red:
		fmt.Fprintf(bw, "     %sWins 1 point\n", padMAT(""))
	}
	fmt.Fprintf(bw, "\n")

	return bw.Flush()
}

// padMAT pads a White half so that at least three spaces separate it from
// the Red half.
func padMAT(s string) string {
	return s + strings.Repeat(" ", max(3, matColumn-len(s)))
}

// formatTurnMAT formats one turn as "65: 24/18 18/13".
func formatTurnMAT(c engine.Color, t engine.TurnEntry) string {
	parts := make([]string, 0, len(t.Moves))
	for _, mv := range t.Moves {
		from := formatPositionMAT(c, mv.From)
		to := formatPositionMAT(c, mv.Dest(c))
		if mv.Hit {
			to += "*"
		}
		parts = append(parts, from+"/"+to)
	}

	roll := fmt.Sprintf("%d%d:", t.Dice1, t.Dice2)
	if len(parts) == 0 {
		return roll
	}
	return roll + " " + strings.Join(parts, " ")
}

// formatPositionMAT names a position from the point of view of c.
func formatPositionMAT(c engine.Color, p engine.Position) string {
	switch {
	case p.IsBar():
		return "bar"
	case p.IsOff():
		return "off"
	default:
		return strconv.Itoa(pointNumber(c, p.Index()))
	}
}
