// Package engine implements the rules of two-player backgammon and the turn
// ledger used to replay a game in both directions.
//
// The board is addressed from White's point of view: point index 0 is White's
// 24-point and index 23 is White's 1-point. White moves towards higher
// indices, Red towards lower ones.
package engine

// Color identifies the owner of a checker.
type Color uint8

const (
	// NoColor marks the absence of a checker. It never owns a bar or an off tray.
	NoColor Color = iota
	White
	Red
)

// Checker characters used by the save format and text renderers.
const (
	WhiteChar = 'W'
	RedChar   = 'R'
)

// Opposite returns the other player's color. NoColor stays NoColor.
func (c Color) Opposite() Color {
	switch c {
	case White:
		return Red
	case Red:
		return White
	}
	return NoColor
}

// Direction is the sign of index movement for the color: +1 for White,
// -1 for Red, 0 for NoColor.
func (c Color) Direction() int {
	switch c {
	case White:
		return 1
	case Red:
		return -1
	}
	return 0
}

// Char returns 'W' or 'R', or '-' for NoColor.
func (c Color) Char() byte {
	switch c {
	case White:
		return WhiteChar
	case Red:
		return RedChar
	}
	return '-'
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Red:
		return "Red"
	}
	return "None"
}

// ColorFromChar is the inverse of Char. Unknown characters map to NoColor.
func ColorFromChar(ch byte) Color {
	switch ch {
	case WhiteChar:
		return White
	case RedChar:
		return Red
	}
	return NoColor
}

// side maps a player color to an array slot (White 0, Red 1).
func (c Color) side() int {
	if c == Red {
		return 1
	}
	return 0
}
