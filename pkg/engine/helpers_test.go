package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// seqRoller returns the given values in order, then repeats the last one.
func seqRoller(vals ...int) Roller {
	i := 0
	return RollerFunc(func() int {
		v := vals[min(i, len(vals)-1)]
		i++
		return v
	})
}

// layout places checkers: index -> count.
type layout map[int]int

// customGame builds a game with the given points and bars. Checkers not
// placed are put in the owner's off tray so both sides keep 15.
func customGame(t *testing.T, player Color, v1, v2 int, white, red layout, whiteBar, redBar int) *Game {
	t.Helper()

	b := EmptyBoard()
	for i, n := range white {
		b.SetPoint(i, White, n)
	}
	for i, n := range red {
		b.SetPoint(i, Red, n)
	}
	b.AddToBar(White, whiteBar)
	b.AddToBar(Red, redBar)
	b.AddToOff(White, CheckersPerSide-b.Checkers(White))
	b.AddToOff(Red, CheckersPerSide-b.Checkers(Red))

	g, err := Restore(b, player, NewDiceRoll(v1, v2), nil, seqRoller(1, 2))
	require.NoError(t, err)
	g.beginTurn()
	return g
}

// requireConserved checks the 15-checkers-per-side invariant.
func requireConserved(t *testing.T, g *Game) {
	t.Helper()
	b := g.Board()
	require.Equal(t, CheckersPerSide, b.Checkers(White), "white checkers")
	require.Equal(t, CheckersPerSide, b.Checkers(Red), "red checkers")
}

type play struct {
	from  Position
	by    int
	enter bool
}

// legalPlays lists every play the game would accept right now.
func legalPlays(g *Game) []play {
	var plays []play
	v1, v2 := g.Dice().Values()
	vals := []int{v1}
	if v2 != v1 {
		vals = append(vals, v2)
	}
	if g.LegalEntersCount() > 0 {
		for _, v := range vals {
			if g.CheckEnter(v) == nil {
				plays = append(plays, play{from: OnBar(g.Player()), by: v, enter: true})
			}
		}
		return plays
	}
	for i := 0; i < NumPoints; i++ {
		for _, v := range vals {
			if g.CheckMove(OnPoint(i), v) == nil {
				plays = append(plays, play{from: OnPoint(i), by: v})
			}
		}
	}
	return plays
}

// playTurn plays one full turn choosing plays with pick, then ends it unless
// the game is won. It returns false once the game has a winner.
func playTurn(t *testing.T, g *Game, pick func(n int) int) bool {
	t.Helper()

	enters := g.LegalEntersCount()
	for i := 0; i < enters; i++ {
		plays := legalPlays(g)
		require.NotEmpty(t, plays, "LegalEntersCount promised an entry")
		p := plays[pick(len(plays))]
		require.NoError(t, g.Enter(p.by))
		requireConserved(t, g)
	}

	for g.AnyMoveLegal() {
		plays := legalPlays(g)
		require.NotEmpty(t, plays, "AnyMoveLegal promised a move")
		p := plays[pick(len(plays))]
		require.NoError(t, g.Move(p.from, p.by))
		requireConserved(t, g)
		if g.Winner() != NoColor {
			return false
		}
	}

	g.EndTurn()
	return true
}

// playRandomGame plays up to maxTurns turns with a seeded roller and
// seeded choices.
func playRandomGame(t *testing.T, seed uint64, maxTurns int) *Game {
	t.Helper()

	g := NewGame(NewRandRoller(seed))
	choice := NewRandRoller(seed + 1)
	pick := func(n int) int { return choice.rng.IntN(n) }

	for i := 0; i < maxTurns; i++ {
		if !playTurn(t, g, pick) {
			break
		}
	}
	return g
}

type snapshot struct {
	board  Board
	player Color
	dice   DiceRoll
}

func snap(g *Game) snapshot {
	return snapshot{board: g.Board(), player: g.Player(), dice: g.Dice()}
}
