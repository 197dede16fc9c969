package engine

import (
	"errors"
	"time"
)

// Game is the state machine of one backgammon game: the board, the player on
// roll, the current roll and the ledger of every turn played so far.
//
// A turn goes through these calls: LegalEntersCount and Enter while the
// player has checkers on the bar, Move while AnyMoveLegal holds, then
// EndTurn. Illegal requests return an error and leave the game untouched.
// Game is not safe for concurrent use.
type Game struct {
	board  Board
	player Color
	dice   DiceRoll
	log    *TurnLog
	roller Roller
}

// NewGame sets up the starting position and rolls for the first turn.
// Doublets are re-rolled; White starts when its die (the first) is higher.
// The first turn is opened in the ledger.
func NewGame(r Roller) *Game {
	dice := RandomRoll(r)
	for dice.IsDoublet() {
		dice = RandomRoll(r)
	}

	g := &Game{
		board:  DefaultBoard(),
		player: StartingPlayer(dice.Values()),
		dice:   dice,
		log:    NewTurnLog(0),
		roller: r,
	}
	g.beginTurn()
	return g
}

// StartingPlayer applies the opening rule to the first roll: Red starts when
// its die (the second) is higher.
func StartingPlayer(v1, v2 int) Color {
	if v1 < v2 {
		return Red
	}
	return White
}

// Restore rebuilds a game from saved parts. A nil log is replaced by an empty
// one and a nil roller by a time-seeded RandRoller.
func Restore(board Board, player Color, dice DiceRoll, log *TurnLog, r Roller) (*Game, error) {
	if err := board.Validate(); err != nil {
		return nil, err
	}
	if player != White && player != Red {
		return nil, errors.New("player on roll must be White or Red")
	}
	if log == nil {
		log = NewTurnLog(0)
	}
	if r == nil {
		r = NewRandRoller(uint64(time.Now().UnixNano()))
	}
	return &Game{board: board, player: player, dice: dice, log: log, roller: r}, nil
}

// Board returns a copy of the board.
func (g *Game) Board() Board { return g.board }

// Player returns the color on roll.
func (g *Game) Player() Color { return g.player }

// Dice returns the current roll and its usage.
func (g *Game) Dice() DiceRoll { return g.dice }

// Turns returns a copy of the ledger.
func (g *Game) Turns() []TurnEntry { return g.log.Turns() }

// Cursor returns the replay cursor of the ledger.
func (g *Game) Cursor() (turn, move int) { return g.log.Cursor() }

// beginTurn opens a ledger entry for the current roll.
func (g *Game) beginTurn() {
	g.log.Push(NewTurnEntry(g.dice))
}

// recordMove appends a play to the open turn.
func (g *Game) recordMove(m MoveEntry) {
	if g.log.Len() == 0 {
		g.beginTurn()
	}
	g.log.Last().AddMove(m)
}

// EndTurn passes the dice: the other player rolls and a new turn is opened.
func (g *Game) EndTurn() {
	g.player = g.player.Opposite()
	g.dice = RandomRoll(g.roller)
	g.beginTurn()
}

// CheckEndTurn reports why the player on roll may not pass the dice yet, or
// nil once no enter or move is left.
func (g *Game) CheckEndTurn() error {
	if !g.TurnOver() {
		return ErrTurnNotOver
	}
	return nil
}

// TurnOver reports whether the player on roll has nothing left to play.
func (g *Game) TurnOver() bool {
	return g.LegalEntersCount() == 0 && !g.AnyMoveLegal()
}

// Winner returns the color that has borne off all of its checkers, or NoColor.
func (g *Game) Winner() Color {
	if g.board.OffCount(White) >= CheckersPerSide {
		return White
	}
	if g.board.OffCount(Red) >= CheckersPerSide {
		return Red
	}
	return NoColor
}

// Clone returns an independent copy sharing only the roller.
func (g *Game) Clone() *Game {
	return &Game{
		board:  g.board,
		player: g.player,
		dice:   g.dice,
		log:    g.log.clone(),
		roller: g.roller,
	}
}
