package engine

import (
	"fmt"
)

// Point is the content of a single board point. A point is either empty or
// holds count > 0 checkers of one color; the mutators keep that form.
type Point struct {
	color Color
	count int
}

// Empty reports whether no checker is on the point.
func (p Point) Empty() bool { return p.count == 0 }

// Color returns the occupying color, NoColor when empty.
func (p Point) Color() Color { return p.color }

// Count returns the number of checkers on the point.
func (p Point) Count() int { return p.count }

// IsBlotOf reports whether the point holds exactly one checker of color c.
func (p Point) IsBlotOf(c Color) bool { return p.count == 1 && p.color == c }

func (p *Point) add(c Color, delta int) {
	p.count += delta
	if p.count <= 0 {
		*p = Point{}
		return
	}
	p.color = c
}

// Board holds the checkers of both players: 24 points, one bar per color and
// one off tray per color. Board is a value type; copies are independent.
type Board struct {
	points [NumPoints]Point
	bar    [2]int
	off    [2]int
}

// EmptyBoard returns a board with no checkers.
func EmptyBoard() Board {
	return Board{}
}

// DefaultBoard returns the standard starting position: for each color 2
// checkers on its 24-point, 5 on its 13-point, 3 on its 8-point and 5 on its
// 6-point.
func DefaultBoard() Board {
	b := EmptyBoard()
	layout := []struct{ index, count int }{
		{0, 2},  // 24-point
		{11, 5}, // 13-point
		{16, 3}, // 8-point
		{18, 5}, // 6-point
	}
	for _, l := range layout {
		b.SetPoint(l.index, White, l.count)
		b.SetPoint(NumPoints-1-l.index, Red, l.count)
	}
	return b
}

// Point returns the content of point i. Out of range indices read as empty.
func (b Board) Point(i int) Point {
	if i < 0 || i >= NumPoints {
		return Point{}
	}
	return b.points[i]
}

// SetPoint overwrites point i with count checkers of color c.
func (b *Board) SetPoint(i int, c Color, count int) {
	if count <= 0 || c == NoColor {
		b.points[i] = Point{}
		return
	}
	b.points[i] = Point{color: c, count: count}
}

// AddToPoint adjusts the checker count of point i by delta. A count reaching
// zero empties the point; otherwise the point takes color c.
func (b *Board) AddToPoint(i int, c Color, delta int) {
	b.points[i].add(c, delta)
}

// AddToBar adjusts the bar count of color c.
func (b *Board) AddToBar(c Color, delta int) {
	if c == NoColor {
		return
	}
	b.bar[c.side()] += delta
}

// AddToOff adjusts the borne-off count of color c.
func (b *Board) AddToOff(c Color, delta int) {
	if c == NoColor {
		return
	}
	b.off[c.side()] += delta
}

// BarCount returns the number of checkers of color c on the bar.
func (b Board) BarCount(c Color) int {
	if c == NoColor {
		return 0
	}
	return b.bar[c.side()]
}

// OffCount returns the number of checkers of color c borne off.
func (b Board) OffCount(c Color) int {
	if c == NoColor {
		return 0
	}
	return b.off[c.side()]
}

// ColorAt resolves the color found at pos. Bar and off positions belong to
// their owner regardless of count; points report their occupant.
func (b Board) ColorAt(pos Position) Color {
	if pos.IsPoint() {
		return b.points[pos.Index()].color
	}
	return pos.Owner()
}

// Checkers counts every checker of color c: points, bar and off tray.
func (b Board) Checkers(c Color) int {
	n := b.BarCount(c) + b.OffCount(c)
	for _, p := range b.points {
		if p.color == c {
			n += p.count
		}
	}
	return n
}

// PipCount returns the total number of pips color c needs to bear off every
// remaining checker. A checker on the bar counts 25 pips.
func (b Board) PipCount(c Color) int {
	pips := 25 * b.BarCount(c)
	for i, p := range b.points {
		if p.color != c {
			continue
		}
		pips += p.count * pipsToOff(c, i)
	}
	return pips
}

// pipsToOff is the distance from point i to the off tray of color c.
func pipsToOff(c Color, i int) int {
	if c == White {
		return NumPoints - i
	}
	return i + 1
}

// inHome reports whether point i lies in the home quadrant of color c.
func inHome(c Color, i int) bool {
	return pipsToOff(c, i) <= HomeSize
}

// Validate checks that each color owns exactly 15 checkers and that no count
// is negative.
func (b Board) Validate() error {
	for _, c := range []Color{White, Red} {
		if b.BarCount(c) < 0 || b.OffCount(c) < 0 {
			return fmt.Errorf("negative bar or off count for %s", c)
		}
		if n := b.Checkers(c); n != CheckersPerSide {
			return fmt.Errorf("%s has %d checkers, want %d", c, n, CheckersPerSide)
		}
	}
	return nil
}
