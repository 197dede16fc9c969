package engine

import (
	"fmt"
)

// MaxMovesPerTurn is the most checker plays a turn can hold (a doublet).
const MaxMovesPerTurn = MaxDoubletUses

// MoveEntry records one checker play: where the checker started, the die
// value it used and whether it hit an enemy blot.
type MoveEntry struct {
	From Position
	By   int
	Hit  bool
}

// Dest returns the position the move reached when played by mover.
func (m MoveEntry) Dest(mover Color) Position {
	return m.From.Advance(mover, m.By)
}

// TurnEntry records the roll that started a turn and the plays made with it.
type TurnEntry struct {
	Dice1, Dice2 int
	Moves        []MoveEntry
}

// NewTurnEntry starts an empty turn for roll d.
func NewTurnEntry(d DiceRoll) TurnEntry {
	v1, v2 := d.Values()
	return TurnEntry{Dice1: v1, Dice2: v2}
}

// AddMove appends a play. More than four plays in a turn cannot happen in a
// legal game; it panics since the ledger would no longer replay.
func (t *TurnEntry) AddMove(m MoveEntry) {
	if len(t.Moves) >= MaxMovesPerTurn {
		panic(fmt.Sprintf("engine: turn already holds %d moves", MaxMovesPerTurn))
	}
	t.Moves = append(t.Moves, m)
}

func (t TurnEntry) clone() TurnEntry {
	t.Moves = append([]MoveEntry(nil), t.Moves...)
	return t
}

// Step tells what a cursor movement crossed.
type Step int

const (
	NoStep   Step = iota // Cursor did not move
	MoveStep             // Cursor moved onto (or back from) a move
	TurnStep             // Cursor crossed a turn boundary
)

// TurnLog is the append-only list of turns of a game plus a traversal cursor
// used by replay. The cursor (turn, move) addresses the move just applied;
// move -1 means no move of that turn has been applied yet.
type TurnLog struct {
	turns  []TurnEntry
	turnID int
	moveID int
}

// NewTurnLog returns an empty log with room for capacity turns.
func NewTurnLog(capacity int) *TurnLog {
	if capacity < 0 {
		capacity = 0
	}
	return &TurnLog{turns: make([]TurnEntry, 0, capacity), moveID: -1}
}

// Push appends a turn.
func (l *TurnLog) Push(t TurnEntry) {
	l.turns = append(l.turns, t)
}

// Len returns the number of turns.
func (l *TurnLog) Len() int { return len(l.turns) }

// Turn returns turn i, or nil when out of range.
func (l *TurnLog) Turn(i int) *TurnEntry {
	if i < 0 || i >= len(l.turns) {
		return nil
	}
	return &l.turns[i]
}

// Last returns the most recent turn, or nil for an empty log.
func (l *TurnLog) Last() *TurnEntry {
	return l.Turn(len(l.turns) - 1)
}

// Turns returns a deep copy of every turn.
func (l *TurnLog) Turns() []TurnEntry {
	out := make([]TurnEntry, len(l.turns))
	for i, t := range l.turns {
		out[i] = t.clone()
	}
	return out
}

// Cursor returns the traversal position.
func (l *TurnLog) Cursor() (turn, move int) {
	return l.turnID, l.moveID
}

// OnStart reports whether the cursor is before the first move.
func (l *TurnLog) OnStart() bool {
	return l.turnID == 0 && l.moveID <= -1
}

// OnEnd reports whether the last move of the last turn has been applied.
func (l *TurnLog) OnEnd() bool {
	cur := l.Turn(l.turnID)
	if cur == nil {
		return true
	}
	return l.turnID+1 >= len(l.turns) && l.moveID+1 >= len(cur.Moves)
}

// OnNewTurn reports whether the cursor sits at the start of a turn.
func (l *TurnLog) OnNewTurn() bool {
	return l.moveID == -1
}

// Next advances the cursor by one move. Running past the last move of a turn
// moves to the start of the following turn instead.
func (l *TurnLog) Next() Step {
	if l.OnEnd() {
		return NoStep
	}
	l.moveID++
	if l.moveID >= len(l.turns[l.turnID].Moves) {
		l.turnID++
		l.moveID = -1
		return TurnStep
	}
	return MoveStep
}

// Prev moves the cursor back by one move. Stepping back from the start of a
// turn lands on the last move of the previous turn.
func (l *TurnLog) Prev() Step {
	if l.OnStart() {
		return NoStep
	}
	l.moveID--
	if l.moveID == -2 {
		l.turnID--
		l.moveID = len(l.turns[l.turnID].Moves) - 1
		return TurnStep
	}
	return MoveStep
}

// CurrentMove returns the move under the cursor.
func (l *TurnLog) CurrentMove() (MoveEntry, bool) {
	cur := l.Turn(l.turnID)
	if cur == nil || l.moveID < 0 || l.moveID >= len(cur.Moves) {
		return MoveEntry{}, false
	}
	return cur.Moves[l.moveID], true
}

// GotoStart puts the cursor before the first move.
func (l *TurnLog) GotoStart() {
	l.turnID = 0
	l.moveID = -1
}

// GotoEnd puts the cursor on the last move of the last turn.
func (l *TurnLog) GotoEnd() {
	if len(l.turns) == 0 {
		l.GotoStart()
		return
	}
	l.turnID = len(l.turns) - 1
	l.moveID = len(l.turns[l.turnID].Moves) - 1
}

// DeleteAfterCursor drops every turn and move recorded after the cursor.
func (l *TurnLog) DeleteAfterCursor() {
	if len(l.turns) == 0 {
		return
	}
	l.turns = l.turns[:l.turnID+1:l.turnID+1]
	cur := &l.turns[l.turnID]
	cur.Moves = append([]MoveEntry(nil), cur.Moves[:l.moveID+1]...)
}

func (l *TurnLog) clone() *TurnLog {
	out := &TurnLog{turns: l.Turns(), turnID: l.turnID, moveID: l.moveID}
	return out
}
