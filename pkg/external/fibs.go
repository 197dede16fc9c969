// Package external converts games to and from the FIBS board line used by
// First Internet Backgammon Server clients.
package external

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/bgrules/pkg/engine"
)

// FIBSBoard represents a parsed FIBS board string, always seen from "you".
// See: http://www.fibs.com/fibs_interface.html#board_state
//
// Board[1..24] holds your own point numbers, your checkers positive and the
// opponent's negative. Board[0] is the opponent's bar and Board[25] yours.
type FIBSBoard struct {
	Player1      string  // Your name
	Player2      string  // Opponent's name
	MatchLength  int     // Match length (0 = unlimited)
	Score1       int     // Your score
	Score2       int     // Opponent's score
	Board        [26]int // Board positions (-n = opponent, +n = you)
	Turn         int     // Whose turn (1 = you, -1 = opponent)
	Dice         [2]int  // Your dice (0,0 if not rolled)
	OppDice      [2]int  // Opponent's dice
	Cube         int     // Cube value
	CanDouble    bool    // Can you double?
	OppCanDouble bool    // Can opponent double?
	Doubled      bool    // Has opponent doubled?
	Color        int     // Your color (1 or -1)
	Direction    int     // Your direction (1 or -1)
	Home         int     // Index of your home
	Bar          int     // Index of your bar
	OnHome       int     // Your checkers borne off
	OppOnHome    int     // Opponent's checkers borne off
	OnBar        int     // Your checkers on the bar
	OppOnBar     int     // Opponent's checkers on the bar
	CanMove      int     // Plays left for the player on roll
}

const (
	fibsHome = 0
	fibsBar  = 25
)

// fibsFields is the number of fields after the "board:" prefix.
const fibsFields = 52

// ErrInvalidFIBSBoard is returned when a FIBS board line cannot be used.
var ErrInvalidFIBSBoard = errors.New("invalid FIBS board")

// NewFIBSBoard describes g as seen by the player of color you. Cube fields
// are fixed since single games are played without a doubling cube.
func NewFIBSBoard(g *engine.Game, you engine.Color, yourName, oppName string) *FIBSBoard {
	b := g.Board()
	opp := you.Opposite()

	fb := &FIBSBoard{
		Player1:      yourName,
		Player2:      oppName,
		MatchLength:  1,
		Cube:         1,
		CanDouble:    false,
		OppCanDouble: false,
		Color:        -1,
		Direction:    -1,
		Home:         fibsHome,
		Bar:          fibsBar,
		OnHome:       b.OffCount(you),
		OppOnHome:    b.OffCount(opp),
		OnBar:        b.BarCount(you),
		OppOnBar:     b.BarCount(opp),
	}

	for n := 1; n <= engine.NumPoints; n++ {
		p := b.Point(engineIndex(you, n))
		switch p.Color() {
		case you:
			fb.Board[n] = p.Count()
		case opp:
			fb.Board[n] = -p.Count()
		}
	}
	fb.Board[fibsBar] = b.BarCount(you)
	fb.Board[fibsHome] = -b.BarCount(opp)

	v1, v2 := g.Dice().Values()
	if g.Player() == you {
		fb.Turn = 1
		fb.Dice = [2]int{v1, v2}
	} else {
		fb.Turn = -1
		fb.OppDice = [2]int{v1, v2}
	}
	fb.CanMove = g.Dice().RemainingUses()

	return fb
}

// engineIndex maps your point number n (1..24) to the engine board index.
func engineIndex(you engine.Color, n int) int {
	if you == engine.White {
		return engine.NumPoints - n
	}
	return n - 1
}

// String formats the board line, "board:" prefix included.
func (fb *FIBSBoard) String() string {
	fields := make([]string, 0, fibsFields+1)
	fields = append(fields,
		"board",
		fb.Player1,
		fb.Player2,
		strconv.Itoa(fb.MatchLength),
		strconv.Itoa(fb.Score1),
		strconv.Itoa(fb.Score2),
	)
	for _, n := range fb.Board {
		fields = append(fields, strconv.Itoa(n))
	}
	fields = append(fields,
		strconv.Itoa(fb.Turn),
		strconv.Itoa(fb.Dice[0]), strconv.Itoa(fb.Dice[1]),
		strconv.Itoa(fb.OppDice[0]), strconv.Itoa(fb.OppDice[1]),
		strconv.Itoa(fb.Cube),
		flag(fb.CanDouble), flag(fb.OppCanDouble), flag(fb.Doubled),
		strconv.Itoa(fb.Color), strconv.Itoa(fb.Direction),
		strconv.Itoa(fb.Home), strconv.Itoa(fb.Bar),
		strconv.Itoa(fb.OnHome), strconv.Itoa(fb.OppOnHome),
		strconv.Itoa(fb.OnBar), strconv.Itoa(fb.OppOnBar),
		strconv.Itoa(fb.CanMove),
		"0", "0", "0", // forced move, did Crawford, redoubles
	)
	return strings.Join(fields, ":")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ParseFIBSBoard parses a FIBS board string.
// Format: board:player1:player2:matchlen:score1:score2:board[26]:turn:dice[4]:cube:...
func ParseFIBSBoard(s string) (*FIBSBoard, error) {
	s = strings.TrimPrefix(s, "board:")

	parts := strings.Split(s, ":")
	if len(parts) < 32 {
		return nil, fmt.Errorf("%w: expected at least 32 fields, got %d", ErrInvalidFIBSBoard, len(parts))
	}

	fb := &FIBSBoard{}
	fb.Player1 = parts[0]
	fb.Player2 = parts[1]

	// Every field after the names is numeric.
	nums := make([]int, len(parts))
	for i := 2; i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %q is not a number", ErrInvalidFIBSBoard, i, parts[i])
		}
		nums[i] = n
	}
	field := func(i int) int {
		if i < len(nums) {
			return nums[i]
		}
		return 0
	}

	fb.MatchLength = field(2)
	fb.Score1 = field(3)
	fb.Score2 = field(4)
	for i := 0; i < 26; i++ {
		fb.Board[i] = field(5 + i)
	}
	fb.Turn = field(31)
	fb.Dice = [2]int{field(32), field(33)}
	fb.OppDice = [2]int{field(34), field(35)}
	fb.Cube = field(36)
	fb.CanDouble = field(37) == 1
	fb.OppCanDouble = field(38) == 1
	fb.Doubled = field(39) == 1
	fb.Color = field(40)
	fb.Direction = field(41)
	fb.Home = field(42)
	fb.Bar = field(43)
	fb.OnHome = field(44)
	fb.OppOnHome = field(45)
	fb.OnBar = field(46)
	fb.OppOnBar = field(47)
	fb.CanMove = field(48)

	return fb, nil
}

// ToEngineBoard rebuilds the engine board with you playing color you.
// Checkers not on the board or the bars are counted as borne off.
func (fb *FIBSBoard) ToEngineBoard(you engine.Color) (engine.Board, error) {
	b := engine.EmptyBoard()
	opp := you.Opposite()

	for n := 1; n <= engine.NumPoints; n++ {
		switch v := fb.Board[n]; {
		case v > 0:
			b.SetPoint(engineIndex(you, n), you, v)
		case v < 0:
			b.SetPoint(engineIndex(you, n), opp, -v)
		}
	}
	b.AddToBar(you, abs(fb.Board[fibsBar]))
	b.AddToBar(opp, abs(fb.Board[fibsHome]))
	for _, c := range []engine.Color{you, opp} {
		b.AddToOff(c, engine.CheckersPerSide-b.Checkers(c))
	}

	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("%w: %w", ErrInvalidFIBSBoard, err)
	}
	return b, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
