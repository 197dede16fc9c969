// Package positionid computes GNU Backgammon position IDs for engine boards.
//
// A position ID is a 14-character base64 string packing an 80-bit key. The
// key lists, for the player not on roll and then the player on roll, every
// point from that player's 1-point to its bar as a run of 1-bits (one per
// checker) closed by a 0-bit.
package positionid

import (
	"errors"
	"fmt"

	"github.com/yourusername/bgrules/pkg/engine"
)

// PositionIDLength is the length of a position ID string.
const PositionIDLength = 14

// barIndex is the slot of the bar in a Board half.
const barIndex = 24

// Base64 alphabet used for position ID encoding
const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ErrInvalidPositionID is returned when a position ID is invalid.
var ErrInvalidPositionID = errors.New("invalid position ID")

// Board is the gnubg view of a position: [side][point], side 1 on roll,
// points 0..23 counted from that side's 1-point and 24 its bar.
type Board [2][25]uint8

// key is the 80-bit packed form of a Board.
type key [10]uint8

// FromEngine converts b to the gnubg view with onRoll as side 1.
func FromEngine(b engine.Board, onRoll engine.Color) Board {
	var out Board
	for _, c := range []engine.Color{engine.White, engine.Red} {
		side := 0
		if c == onRoll {
			side = 1
		}
		for i := 0; i < engine.NumPoints; i++ {
			p := b.Point(i)
			if p.Color() == c {
				out[side][ownIndex(c, i)] = uint8(p.Count())
			}
		}
		out[side][barIndex] = uint8(b.BarCount(c))
	}
	return out
}

// ToEngine converts a gnubg view back to an engine board. Checkers missing
// from a side are counted as borne off.
func ToEngine(pb Board, onRoll engine.Color) (engine.Board, error) {
	b := engine.EmptyBoard()
	if !CheckPosition(pb) {
		return b, ErrInvalidPositionID
	}
	for _, c := range []engine.Color{engine.White, engine.Red} {
		side := 0
		if c == onRoll {
			side = 1
		}
		for i := 0; i < engine.NumPoints; i++ {
			if n := int(pb[side][ownIndex(c, i)]); n > 0 {
				b.SetPoint(i, c, n)
			}
		}
		b.AddToBar(c, int(pb[side][barIndex]))
		b.AddToOff(c, engine.CheckersPerSide-b.Checkers(c))
	}
	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("%w: %w", ErrInvalidPositionID, err)
	}
	return b, nil
}

// ownIndex maps an engine point index to c's own 0-based point number.
func ownIndex(c engine.Color, i int) int {
	if c == engine.White {
		return engine.NumPoints - 1 - i
	}
	return i
}

// ForGame returns the position ID of g with the player on roll as side 1.
func ForGame(g *engine.Game) string {
	return PositionID(FromEngine(g.Board(), g.Player()))
}

// setBits sets nBits 1-bits of k starting at bitPos.
func setBits(k *key, bitPos, nBits uint32) {
	i := bitPos / 8
	r := bitPos & 0x7
	b := ((uint32(1) << nBits) - 1) << r

	k[i] |= uint8(b)
	if i < 8 {
		k[i+1] |= uint8(b >> 8)
		k[i+2] |= uint8(b >> 16)
	} else if i == 8 {
		k[i+1] |= uint8(b >> 8)
	}
}

func makeKey(board Board) key {
	var k key
	var bitPos uint32

	for side := 0; side < 2; side++ {
		for j := 0; j < 25; j++ {
			nc := uint32(board[side][j])
			if nc > 0 {
				setBits(&k, bitPos, nc)
				bitPos += nc + 1
			} else {
				bitPos++
			}
		}
	}
	return k
}

func boardFromKey(k key) Board {
	var board Board
	side, j := 0, 0

	for _, cur := range k {
		for bit := 0; bit < 8; bit++ {
			if cur&0x1 != 0 {
				if side >= 2 || j >= 25 {
					return board
				}
				board[side][j]++
			} else {
				j++
				if j == 25 {
					side++
					j = 0
				}
			}
			cur >>= 1
		}
	}
	return board
}

// PositionID returns the base64 position ID of board.
func PositionID(board Board) string {
	k := makeKey(board)
	result := make([]byte, PositionIDLength)
	p := k[:]

	for i := 0; i < 3; i++ {
		result[i*4] = base64Chars[p[0]>>2]
		result[i*4+1] = base64Chars[((p[0]&0x03)<<4)|(p[1]>>4)]
		result[i*4+2] = base64Chars[((p[1]&0x0F)<<2)|(p[2]>>6)]
		result[i*4+3] = base64Chars[p[2]&0x3F]
		p = p[3:]
	}
	result[12] = base64Chars[p[0]>>2]
	result[13] = base64Chars[(p[0]&0x03)<<4]

	return string(result)
}

func base64Decode(ch byte) (uint8, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return ch - 'A', true
	case ch >= 'a' && ch <= 'z':
		return ch - 'a' + 26, true
	case ch >= '0' && ch <= '9':
		return ch - '0' + 52, true
	case ch == '+':
		return 62, true
	case ch == '/':
		return 63, true
	}
	return 0, false
}

// BoardFromPositionID decodes a base64 position ID.
func BoardFromPositionID(posID string) (Board, error) {
	var board Board
	if len(posID) < PositionIDLength {
		return board, ErrInvalidPositionID
	}

	var ach [PositionIDLength]uint8
	for i := range ach {
		v, ok := base64Decode(posID[i])
		if !ok {
			return board, ErrInvalidPositionID
		}
		ach[i] = v
	}

	var k key
	p := ach[:]
	for i := 0; i < 3; i++ {
		k[i*3] = (p[0] << 2) | (p[1] >> 4)
		k[i*3+1] = (p[1] << 4) | (p[2] >> 2)
		k[i*3+2] = (p[2] << 6) | p[3]
		p = p[4:]
	}
	k[9] = (p[0] << 2) | (p[1] >> 4)

	board = boardFromKey(k)
	if !CheckPosition(board) {
		return board, ErrInvalidPositionID
	}
	return board, nil
}

// CheckPosition reports whether board is a legal position: no side holds
// more than 15 checkers, no point is shared and both sides are not stuck
// on the bar against closed boards.
func CheckPosition(board Board) bool {
	var ac [2]uint32
	for i := 0; i < 25; i++ {
		ac[0] += uint32(board[0][i])
		ac[1] += uint32(board[1][i])
		if ac[0] > engine.CheckersPerSide || ac[1] > engine.CheckersPerSide {
			return false
		}
	}

	for i := 0; i < 24; i++ {
		if board[0][i] > 0 && board[1][23-i] > 0 {
			return false
		}
	}

	for i := 0; i < engine.HomeSize; i++ {
		if board[0][i] < 2 || board[1][i] < 2 {
			return true
		}
	}
	return board[0][barIndex] == 0 || board[1][barIndex] == 0
}

// SwapSides returns board seen by the other player.
func SwapSides(board Board) Board {
	return Board{board[1], board[0]}
}
