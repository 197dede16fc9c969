package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/yourusername/bgrules/pkg/engine"
)

// stackRows is the number of checkers drawn per point before the column
// switches to a count.
const stackRows = 5

type palette struct {
	white *color.Color
	red   *color.Color
	dim   *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		white: color.New(color.FgHiWhite, color.Bold),
		red:   color.New(color.FgRed, color.Bold),
		dim:   color.New(color.Faint),
	}
	if !enabled {
		p.white.DisableColor()
		p.red.DisableColor()
		p.dim.DisableColor()
	}
	return p
}

func (p *palette) of(c engine.Color) *color.Color {
	if c == engine.Red {
		return p.red
	}
	return p.white
}

// cell draws row r (0 nearest the edge) of the stack on point i.
func (p *palette) cell(b engine.Board, i, r int) string {
	pt := b.Point(i)
	switch {
	case pt.Count() <= r:
		return p.dim.Sprint(" . ")
	case r == stackRows-1 && pt.Count() > stackRows:
		return p.of(pt.Color()).Sprintf("%2d ", pt.Count())
	default:
		return p.of(pt.Color()).Sprintf(" %c ", pt.Color().Char())
	}
}

// renderBoard prints b with point 01 on the upper right and 24 on the lower
// right. White travels from 01 to 24 and Red the other way.
//
// Labels are point indices plus one; move -from takes the same numbers.
func renderBoard(w io.Writer, b engine.Board, p *palette) {
	var sb strings.Builder

	top := func(i int) string { return fmt.Sprintf("%02d ", i+1) }
	sb.WriteString(" ")
	for i := 11; i >= 6; i-- {
		sb.WriteString(top(i))
	}
	sb.WriteString("|   | ")
	for i := 5; i >= 0; i-- {
		sb.WriteString(top(i))
	}
	sb.WriteString("\n")

	for r := 0; r < stackRows; r++ {
		sb.WriteString(" ")
		for i := 11; i >= 6; i-- {
			sb.WriteString(p.cell(b, i, r))
		}
		sb.WriteString("|   | ")
		for i := 5; i >= 0; i-- {
			sb.WriteString(p.cell(b, i, r))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(" ------------------|BAR|------------------ HOME\n")

	for r := stackRows - 1; r >= 0; r-- {
		sb.WriteString(" ")
		for i := 12; i < 18; i++ {
			sb.WriteString(p.cell(b, i, r))
		}
		sb.WriteString("|   | ")
		for i := 18; i < 24; i++ {
			sb.WriteString(p.cell(b, i, r))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(" ")
	for i := 12; i < 18; i++ {
		sb.WriteString(top(i))
	}
	sb.WriteString("|   | ")
	for i := 18; i < 24; i++ {
		sb.WriteString(top(i))
	}
	sb.WriteString("\n\n")

	for _, c := range []engine.Color{engine.White, engine.Red} {
		sb.WriteString(p.of(c).Sprintf(" %-5s", c))
		fmt.Fprintf(&sb, " bar: %02d  out: %02d  pips: %3d\n",
			b.BarCount(c), b.OffCount(c), b.PipCount(c))
	}

	fmt.Fprint(w, sb.String())
}

// formatRoll shows the roll with "_" in place of the values already played.
func formatRoll(d engine.DiceRoll) string {
	v1, v2 := d.Values()
	if d.IsDoublet() {
		vals := make([]string, engine.MaxDoubletUses)
		for i := range vals {
			if i < d.DoubletUses() {
				vals[i] = "_"
			} else {
				vals[i] = fmt.Sprint(v1)
			}
		}
		return strings.Join(vals, " ")
	}

	die := func(v int, used bool) string {
		if used {
			return "_"
		}
		return fmt.Sprint(v)
	}
	return die(v1, d.Used1()) + " " + die(v2, d.Used2())
}

// renderTurn prints who is on roll and what the engine requires of them.
func renderTurn(w io.Writer, g *engine.Game, p *palette) {
	if winner := g.Winner(); winner != engine.NoColor {
		fmt.Fprintf(w, "\n %s wins\n", p.of(winner).Sprint(winner))
		return
	}

	c := g.Player()
	fmt.Fprintf(w, "\n %s to play, roll: %s\n", p.of(c).Sprint(c), formatRoll(g.Dice()))

	switch {
	case g.Board().BarCount(c) > 0:
		fmt.Fprintf(w, " Enter %d checker(s) from the bar\n", g.LegalEntersCount())
		if i, ok := g.ForcedHitEnterPoint(); ok {
			fmt.Fprintf(w, " You have to hit on %02d\n", i+1)
		}
	case g.TurnOver():
		fmt.Fprintln(w, " No legal play")
	default:
		if i, ok := g.ForcedHitPoint(); ok {
			fmt.Fprintf(w, " You have to hit on %02d\n", i+1)
		}
		if g.CanBearOff() {
			fmt.Fprintln(w, " Bearing off")
		}
	}
}
