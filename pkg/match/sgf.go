package match

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/bgrules/pkg/engine"
)

// SGF (Smart Game Format) is a standard format for recording games.
// See: https://www.red-bean.com/sgf/backgammon.html
//
// White is written as W and Red as B. Each turn is one node holding the roll
// followed by from/to letter pairs, a=1 to x=24 counted from the mover's
// home, y for the bar and z for borne off:
//
//	(;FF[4]GM[6]AP[bgrules:1.0]
//	 PW[white]PB[red]
//	 ;W[65xrrm]
//	 ;B[31hefe])

// ExportSGF writes the game ledger of m in SGF format.
func ExportSGF(w io.Writer, m *Match) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "(;FF[4]GM[6]AP[bgrules:1.0]\n")
	fmt.Fprintf(bw, "PW[%s]PB[%s]\n", escapeSGF(m.White), escapeSGF(m.Red))
	fmt.Fprintf(bw, "MI[length:1][game:0][ws:0][bs:0]\n")

	if m.Date != "" {
		fmt.Fprintf(bw, "DT[%s]\n", escapeSGF(m.Date))
	}
	if m.Event != "" {
		fmt.Fprintf(bw, "EV[%s]\n", escapeSGF(m.Event))
	}
	if m.Place != "" {
		fmt.Fprintf(bw, "PC[%s]\n", escapeSGF(m.Place))
	}
	switch m.Winner {
	case engine.White:
		fmt.Fprintf(bw, "RE[W+1]\n")
	case engine.Red:
		fmt.Fprintf(bw, "RE[B+1]\n")
	}

	for i, t := range m.Turns {
		c := m.PlayerOf(i)
		fmt.Fprintf(bw, ";%s[%d%d%s]\n", sgfPlayer(c), t.Dice1, t.Dice2, formatMovesSGF(c, t.Moves))
	}

	fmt.Fprintf(bw, ")\n")
	return bw.Flush()
}

func sgfPlayer(c engine.Color) string {
	if c == engine.Red {
		return "B"
	}
	return "W"
}

// formatMovesSGF encodes the plays of one turn as letter pairs.
func formatMovesSGF(c engine.Color, moves []engine.MoveEntry) string {
	var result strings.Builder
	for _, mv := range moves {
		result.WriteByte(positionToSGF(c, mv.From))
		result.WriteByte(positionToSGF(c, mv.Dest(c)))
	}
	return result.String()
}

// positionToSGF converts a position to its SGF letter as seen by c.
func positionToSGF(c engine.Color, p engine.Position) byte {
	switch {
	case p.IsBar():
		return 'y'
	case p.IsOff():
		return 'z'
	default:
		return byte('a' + pointNumber(c, p.Index()) - 1)
	}
}

// escapeSGF escapes the characters SGF reserves inside property values.
func escapeSGF(s string) string {
	return strings.NewReplacer(`\`, `\\`, `]`, `\]`).Replace(s)
}
