package engine

// Replay ("watch") walks the ledger one play at a time in either direction.
// Crossing a turn boundary is fused into the same step: the dice pass to the
// other player together with the roll recorded for that turn.

// WatchNext applies the play after the cursor. It returns false at the end
// of the ledger.
func (g *Game) WatchNext() bool {
	switch g.log.Next() {
	case NoStep:
		return false
	case TurnStep:
		turn, _ := g.log.Cursor()
		g.ApplyTurnEntry(g.log.Turn(turn))
	default:
		m, _ := g.log.CurrentMove()
		g.ApplyMoveEntry(m, false)
	}
	return true
}

// WatchPrev undoes the play under the cursor. Stepping back over a turn
// boundary restores the previous player with its roll fully played. It
// returns false at the start of the ledger.
func (g *Game) WatchPrev() bool {
	if g.log.OnStart() {
		return false
	}
	if !g.log.OnNewTurn() {
		m, _ := g.log.CurrentMove()
		g.ApplyMoveEntry(m, true)
		g.log.Prev()
		return true
	}

	g.log.Prev()
	turn, _ := g.log.Cursor()
	prev := g.log.Turn(turn)
	g.ApplyTurnEntry(prev)
	for _, m := range prev.Moves {
		g.dice.Use(m.By)
	}
	return true
}

// WatchStart resets the game to the opening position with the first turn's
// roll and starting player, cursor before the first play.
func (g *Game) WatchStart() {
	g.log.GotoStart()
	g.board = DefaultBoard()

	first := g.log.Turn(0)
	if first == nil {
		return
	}
	g.ApplyTurnEntry(first)
	g.player = StartingPlayer(g.dice.Values())
}

// WatchEnd jumps to the final state. end must be a game holding the same
// ledger fully applied, typically a Clone taken right after loading.
func (g *Game) WatchEnd(end *Game) {
	g.board = end.board
	g.player = end.player
	g.dice = end.dice
	g.log.GotoEnd()
}

// ReplayToEnd steps forward until the ledger is exhausted and returns the
// number of steps taken.
func (g *Game) ReplayToEnd() int {
	n := 0
	for g.WatchNext() {
		n++
	}
	return n
}

// ResumeHere discards every turn and play after the cursor so live play can
// continue from the position being watched.
func (g *Game) ResumeHere() {
	g.log.DeleteAfterCursor()
	if g.log.Len() == 0 {
		g.beginTurn()
	}
}
