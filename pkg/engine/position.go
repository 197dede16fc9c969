package engine

import (
	"fmt"
)

// Board geometry.
const (
	NumPoints       = 24 // Points on the board
	CheckersPerSide = 15 // Checkers owned by each player
	HomeSize        = 6  // Points in a home quadrant
)

// Legacy integer codes for the bar and off positions. Point positions use
// their index 0-23. These values are part of the save file format.
const (
	WhiteBarCode = -8
	RedBarCode   = -7
	WhiteOffCode = NumPoints // Any code >= 24 is White's off tray
	RedOffCode   = -1        // Codes -6..-1 are Red's off tray
)

type posKind uint8

const (
	noPosition posKind = iota
	pointPos
	barPos
	offPos
)

// Position is a place a checker can occupy: one of the 24 points, a player's
// bar, or a player's off tray. The zero value is not a valid position.
type Position struct {
	kind  posKind
	index int   // point index for pointPos
	color Color // owner for barPos and offPos
}

// OnPoint returns the position of board point i (0-23).
func OnPoint(i int) Position {
	if i < 0 || i >= NumPoints {
		return Position{}
	}
	return Position{kind: pointPos, index: i}
}

// OnBar returns the bar position of color c.
func OnBar(c Color) Position {
	if c == NoColor {
		return Position{}
	}
	return Position{kind: barPos, color: c}
}

// BorneOff returns the off tray of color c.
func BorneOff(c Color) Position {
	if c == NoColor {
		return Position{}
	}
	return Position{kind: offPos, color: c}
}

// IsValid reports whether p addresses a real place.
func (p Position) IsValid() bool { return p.kind != noPosition }

// IsPoint reports whether p is one of the 24 board points.
func (p Position) IsPoint() bool { return p.kind == pointPos }

// IsBar reports whether p is a bar position.
func (p Position) IsBar() bool { return p.kind == barPos }

// IsOff reports whether p is an off tray.
func (p Position) IsOff() bool { return p.kind == offPos }

// Index returns the point index, or -1 when p is not a point.
func (p Position) Index() int {
	if p.kind != pointPos {
		return -1
	}
	return p.index
}

// Owner returns the color owning a bar or off position. Points have no
// fixed owner and return NoColor.
func (p Position) Owner() Color {
	if p.kind == barPos || p.kind == offPos {
		return p.color
	}
	return NoColor
}

// Advance moves a checker of color mover forward by pips from p.
// From the bar the checker enters the opponent's home quadrant; moving past
// the mover's home edge yields the mover's off tray. Off trays cannot advance.
func (p Position) Advance(mover Color, pips int) Position {
	dir := mover.Direction()
	if dir == 0 || pips <= 0 {
		return Position{}
	}

	var dest int
	switch p.kind {
	case pointPos:
		dest = p.index + pips*dir
	case barPos:
		if p.color != mover {
			return Position{}
		}
		dest = entryEdge(mover) + pips*dir
	default:
		return Position{}
	}

	if dest >= 0 && dest < NumPoints {
		return OnPoint(dest)
	}
	return BorneOff(mover)
}

// entryEdge is the virtual index just behind a color's first point.
func entryEdge(c Color) int {
	if c == Red {
		return NumPoints
	}
	return -1
}

// EnterPoint returns the point index a checker of color c reaches when
// entering from the bar with the given die value.
func EnterPoint(c Color, by int) int {
	return OnBar(c).Advance(c, by).Index()
}

// Code returns the legacy integer encoding of p.
func (p Position) Code() int {
	switch p.kind {
	case pointPos:
		return p.index
	case barPos:
		if p.color == White {
			return WhiteBarCode
		}
		return RedBarCode
	case offPos:
		if p.color == White {
			return WhiteOffCode
		}
		return RedOffCode
	}
	return WhiteBarCode - 1
}

// PositionFromCode decodes a legacy integer position.
func PositionFromCode(code int) (Position, error) {
	switch {
	case code >= 0 && code < NumPoints:
		return OnPoint(code), nil
	case code >= NumPoints:
		return BorneOff(White), nil
	case code == WhiteBarCode:
		return OnBar(White), nil
	case code == RedBarCode:
		return OnBar(Red), nil
	case code > RedBarCode && code <= RedOffCode:
		return BorneOff(Red), nil
	}
	return Position{}, fmt.Errorf("invalid position code %d", code)
}

func (p Position) String() string {
	switch p.kind {
	case pointPos:
		return fmt.Sprintf("#%d", p.index+1)
	case barPos:
		return p.color.String() + " bar"
	case offPos:
		return p.color.String() + " off"
	}
	return "invalid"
}
