package engine

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is wrapped by every rejection of Move and Enter.
var ErrIllegalMove = errors.New("illegal move")

// Reasons a play is rejected. All of them match ErrIllegalMove with errors.Is.
var (
	ErrDieUnavailable = fmt.Errorf("%w: die value not available", ErrIllegalMove)
	ErrNotYourChecker = fmt.Errorf("%w: no checker of the player on roll there", ErrIllegalMove)
	ErrPointBlocked   = fmt.Errorf("%w: destination is blocked", ErrIllegalMove)
	ErrCannotBearOff  = fmt.Errorf("%w: not all checkers are home", ErrIllegalMove)
	ErrMustEnter      = fmt.Errorf("%w: checkers on the bar must enter first", ErrIllegalMove)
	ErrNothingToEnter = fmt.Errorf("%w: no checker on the bar", ErrIllegalMove)
	ErrMustHit        = fmt.Errorf("%w: a blot must be hit", ErrIllegalMove)
	ErrMustBearOff    = fmt.Errorf("%w: you have to bear off", ErrIllegalMove)
	ErrTurnNotOver    = fmt.Errorf("%w: plays remain on this roll", ErrIllegalMove)
)

// ForcedHitError names the point that has to be hit.
type ForcedHitError struct {
	Point int // point index of the blot
}

func (e *ForcedHitError) Error() string {
	return fmt.Sprintf("you have to hit #%d pos", e.Point+1)
}

// Unwrap lets errors.Is match ErrMustHit and ErrIllegalMove.
func (e *ForcedHitError) Unwrap() error { return ErrMustHit }

// canMoveTo reports whether the player on roll may land on point i: the
// point is empty, already theirs, or an enemy blot.
func (g *Game) canMoveTo(i int) bool {
	p := g.board.Point(i)
	return p.color == g.player || p.count <= 1
}

// CanBearOff reports whether every remaining checker of the player on roll
// is in its home quadrant.
func (g *Game) CanBearOff() bool {
	c := g.player
	if c == NoColor {
		return false
	}
	n := g.board.OffCount(c)
	for i, p := range g.board.points {
		if p.color == c && inHome(c, i) {
			n += p.count
		}
	}
	return n == CheckersPerSide
}

// checkMoveBasic validates a move from a point without the forced-play rules.
func (g *Game) checkMoveBasic(from Position, by int) error {
	if !from.IsPoint() {
		return ErrIllegalMove
	}
	if !validDie(by) || !g.dice.CanUse(by) {
		return ErrDieUnavailable
	}
	if g.board.ColorAt(from) != g.player {
		return ErrNotYourChecker
	}

	dest := from.Advance(g.player, by)
	if dest.IsOff() {
		if !g.CanBearOff() {
			return ErrCannotBearOff
		}
		return nil
	}
	if !g.canMoveTo(dest.Index()) {
		return ErrPointBlocked
	}
	return nil
}

// ForcedHitPoint returns the enemy blot the player on roll is obliged to hit,
// scanning from the player's entry edge towards its home. A blot qualifies
// when a checker of the player sits one usable die value behind it.
func (g *Game) ForcedHitPoint() (int, bool) {
	c := g.player
	dir := c.Direction()
	if dir == 0 {
		return -1, false
	}

	start, end := 0, NumPoints
	if c == Red {
		start, end = NumPoints-1, -1
	}
	for i := start; i != end; i += dir {
		if !g.board.points[i].IsBlotOf(c.Opposite()) {
			continue
		}
		for _, v := range g.dice.usableValues() {
			src := i - v*dir
			if src >= 0 && src < NumPoints && g.board.points[src].color == c {
				return i, true
			}
		}
	}
	return -1, false
}

// ForcedHitEnterPoint returns the enemy blot that an entering checker is
// obliged to hit, trying the first die before the second.
func (g *Game) ForcedHitEnterPoint() (int, bool) {
	for _, v := range g.dice.usableValues() {
		i := EnterPoint(g.player, v)
		if i >= 0 && g.board.points[i].IsBlotOf(g.player.Opposite()) {
			return i, true
		}
	}
	return -1, false
}

// bearOffAvailable reports whether some checker can be borne off with a
// usable die right now.
func (g *Game) bearOffAvailable() bool {
	if !g.CanBearOff() {
		return false
	}
	for i, p := range g.board.points {
		if p.color != g.player {
			continue
		}
		for _, v := range g.dice.usableValues() {
			if OnPoint(i).Advance(g.player, v).IsOff() {
				return true
			}
		}
	}
	return false
}

// checkForced applies the forced hit and forced bear-off rules to a
// destination that already passed the basic checks.
func (g *Game) checkForced(dest Position) error {
	fpos, mustHit := g.ForcedHitPoint()
	if (mustHit && dest.Index() == fpos) || dest.IsOff() {
		return nil
	}
	if mustHit {
		return &ForcedHitError{Point: fpos}
	}
	if g.bearOffAvailable() {
		return ErrMustBearOff
	}
	return nil
}

// CheckMove reports why moving the checker at from by the given die value
// is illegal, or nil when Move would accept it.
func (g *Game) CheckMove(from Position, by int) error {
	if g.board.BarCount(g.player) > 0 {
		return ErrMustEnter
	}
	if err := g.checkMoveBasic(from, by); err != nil {
		return err
	}
	return g.checkForced(from.Advance(g.player, by))
}

// CheckEnter reports why entering a checker from the bar with the given die
// value is illegal, or nil when Enter would accept it.
func (g *Game) CheckEnter(by int) error {
	if g.board.BarCount(g.player) == 0 {
		return ErrNothingToEnter
	}
	if !validDie(by) || !g.dice.CanUse(by) {
		return ErrDieUnavailable
	}
	dest := EnterPoint(g.player, by)
	if !g.canMoveTo(dest) {
		return ErrPointBlocked
	}
	if fpos, ok := g.ForcedHitEnterPoint(); ok && fpos != dest {
		return &ForcedHitError{Point: fpos}
	}
	return nil
}

// Move plays the checker at from forward by the die value by.
func (g *Game) Move(from Position, by int) error {
	if err := g.CheckMove(from, by); err != nil {
		return err
	}
	g.play(from, by)
	return nil
}

// Enter brings a checker in from the bar using the die value by.
func (g *Game) Enter(by int) error {
	if err := g.CheckEnter(by); err != nil {
		return err
	}
	g.play(OnBar(g.player), by)
	return nil
}

// play applies an already validated play, records it and consumes the die.
func (g *Game) play(from Position, by int) {
	hit := g.moveCheckHit(from, by)
	g.recordMove(MoveEntry{From: from, By: by, Hit: hit})
	g.dice.Use(by)
}

// moveCheckHit moves a checker of the player on roll, sending an enemy blot
// on the destination to its bar first. It reports whether a hit happened.
func (g *Game) moveCheckHit(from Position, by int) bool {
	dest := from.Advance(g.player, by)
	enemy := g.player.Opposite()

	hit := false
	if dest.IsPoint() && g.board.ColorAt(dest) == enemy {
		g.moveChecker(dest, OnBar(enemy), false)
		hit = true
	}
	g.moveChecker(from, dest, false)
	return hit
}

// moveChecker transfers one checker between any two positions. With reverse
// set the transfer runs from dest back to from.
func (g *Game) moveChecker(from, dest Position, reverse bool) {
	if reverse {
		from, dest = dest, from
	}
	c := g.board.ColorAt(from)

	switch {
	case from.IsBar():
		g.board.AddToBar(c, -1)
	case from.IsOff():
		g.board.AddToOff(c, -1)
	default:
		g.board.AddToPoint(from.Index(), c, -1)
	}

	switch {
	case dest.IsBar():
		g.board.AddToBar(c, 1)
	case dest.IsOff():
		g.board.AddToOff(c, 1)
	default:
		g.board.AddToPoint(dest.Index(), c, 1)
	}
}

// LegalEntersCount returns how many checkers the player on roll must enter
// from the bar before moving: bounded by the bar count, the plays left on
// the dice and the open entry points.
func (g *Game) LegalEntersCount() int {
	bar := g.board.BarCount(g.player)
	if g.player == NoColor || bar == 0 {
		return 0
	}

	count := 0
	if g.dice.IsDoublet() {
		v, _ := g.dice.Values()
		if g.dice.CanUse(v) && g.canMoveTo(EnterPoint(g.player, v)) {
			count = g.dice.RemainingUses()
		}
	} else {
		for _, v := range g.dice.usableValues() {
			if g.canMoveTo(EnterPoint(g.player, v)) {
				count++
			}
		}
	}
	return min(count, bar)
}

// AnyMoveLegal reports whether the player on roll has a move from a point.
// It is false while checkers wait on the bar.
func (g *Game) AnyMoveLegal() bool {
	if g.player == NoColor || g.dice.IsExhausted() || g.board.BarCount(g.player) > 0 {
		return false
	}
	for i, p := range g.board.points {
		if p.color != g.player {
			continue
		}
		for _, v := range g.dice.usableValues() {
			if g.checkMoveBasic(OnPoint(i), v) == nil {
				return true
			}
		}
	}
	return false
}

// ApplyMoveEntry replays a recorded play forwards, or undoes it when reverse
// is set. The die value is consumed or handed back accordingly.
func (g *Game) ApplyMoveEntry(m MoveEntry, reverse bool) {
	dest := m.Dest(g.player)
	enemyBar := OnBar(g.player.Opposite())

	if reverse {
		g.moveChecker(m.From, dest, true)
		g.dice.ReverseUse(m.By)
		if m.Hit {
			g.moveChecker(dest, enemyBar, true)
		}
		return
	}

	if m.Hit {
		g.moveChecker(dest, enemyBar, false)
	}
	g.moveChecker(m.From, dest, false)
	g.dice.Use(m.By)
}

// ApplyTurnEntry hands the dice to the other player with the roll that
// started turn t.
func (g *Game) ApplyTurnEntry(t *TurnEntry) {
	g.player = g.player.Opposite()
	g.dice = NewDiceRoll(t.Dice1, t.Dice2)
}
