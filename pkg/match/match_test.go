package match

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bgrules/pkg/engine"
)

// fixedRoller returns vals in order and then repeats the last one.
func fixedRoller(vals ...int) engine.Roller {
	i := 0
	return engine.RollerFunc(func() int {
		v := vals[min(i, len(vals)-1)]
		i++
		return v
	})
}

// openingGame plays White 65: 24/18 18/13 then Red 31: 8/5 6/5.
func openingGame(t *testing.T) *engine.Game {
	t.Helper()
	g := engine.NewGame(fixedRoller(6, 5, 3, 1))
	require.Equal(t, engine.White, g.Player())
	require.NoError(t, g.Move(engine.OnPoint(0), 6))
	require.NoError(t, g.Move(engine.OnPoint(6), 5))
	g.EndTurn()
	require.Equal(t, engine.Red, g.Player())
	require.NoError(t, g.Move(engine.OnPoint(7), 3))
	require.NoError(t, g.Move(engine.OnPoint(5), 1))
	return g
}

func TestNewMatch(t *testing.T) {
	g := openingGame(t)
	m := NewMatch("Alice", "Bob", g)

	assert.Equal(t, "Alice", m.White)
	assert.Equal(t, "Bob", m.Red)
	assert.Len(t, m.Turns, 2)
	assert.Equal(t, engine.NoColor, m.Winner)
	assert.Equal(t, "Bob", m.NameOf(engine.Red))
}

func TestPlayerOf(t *testing.T) {
	tests := []struct {
		name   string
		first  engine.TurnEntry
		expect []engine.Color
	}{
		{"white opens", engine.TurnEntry{Dice1: 6, Dice2: 1}, []engine.Color{engine.White, engine.Red, engine.White}},
		{"red opens", engine.TurnEntry{Dice1: 2, Dice2: 4}, []engine.Color{engine.Red, engine.White, engine.Red}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{Turns: []engine.TurnEntry{tt.first, {Dice1: 1, Dice2: 1}, {Dice1: 2, Dice2: 3}}}
			for i, want := range tt.expect {
				assert.Equal(t, want, m.PlayerOf(i), "turn %d", i)
			}
		})
	}

	assert.Equal(t, engine.NoColor, (&Match{}).PlayerOf(0))
}

func TestExportMAT(t *testing.T) {
	m := NewMatch("Alice", "Bob", openingGame(t))
	m.Event = "Club night"

	var buf bytes.Buffer
	require.NoError(t, ExportMAT(&buf, m))
	out := buf.String()

	assert.Contains(t, out, " ; [Event \"Club night\"]\n")
	assert.Contains(t, out, " ; [Player 1 \"Alice\"]\n")
	assert.Contains(t, out, " ; [Player 2 \"Bob\"]\n")
	assert.Contains(t, out, " 1 point match\n")
	assert.Contains(t, out, "  1) 65: 24/18 18/13"+strings.Repeat(" ", 17)+"31: 8/5 6/5\n")
}

func TestExportMATRedOpens(t *testing.T) {
	m := &Match{
		White: "Alice",
		Red:   "Bob",
		Turns: []engine.TurnEntry{
			{Dice1: 1, Dice2: 3, Moves: []engine.MoveEntry{{From: engine.OnPoint(7), By: 3}, {From: engine.OnPoint(5), By: 1}}},
			{Dice1: 4, Dice2: 4},
		},
		Winner: engine.Red,
	}

	var buf bytes.Buffer
	require.NoError(t, ExportMAT(&buf, m))
	out := buf.String()

	assert.Contains(t, out, "  1) "+strings.Repeat(" ", matColumn)+"13: 8/5 6/5\n")
	assert.Contains(t, out, "  2) 44:")
	assert.Contains(t, out, "Wins 1 point")
}

func TestFormatTurnMAT(t *testing.T) {
	tests := []struct {
		name  string
		color engine.Color
		turn  engine.TurnEntry
		want  string
	}{
		{
			name:  "enter with hit",
			color: engine.White,
			turn:  engine.TurnEntry{Dice1: 3, Dice2: 2, Moves: []engine.MoveEntry{{From: engine.OnBar(engine.White), By: 3, Hit: true}}},
			want:  "32: bar/22*",
		},
		{
			name:  "white bears off",
			color: engine.White,
			turn:  engine.TurnEntry{Dice1: 6, Dice2: 1, Moves: []engine.MoveEntry{{From: engine.OnPoint(20), By: 6}}},
			want:  "61: 4/off",
		},
		{
			name:  "red bears off",
			color: engine.Red,
			turn:  engine.TurnEntry{Dice1: 5, Dice2: 2, Moves: []engine.MoveEntry{{From: engine.OnPoint(1), By: 5}}},
			want:  "52: 2/off",
		},
		{
			name:  "no play",
			color: engine.Red,
			turn:  engine.TurnEntry{Dice1: 6, Dice2: 6},
			want:  "66:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTurnMAT(tt.color, tt.turn))
		})
	}
}

func TestExportSGF(t *testing.T) {
	m := NewMatch("Alice", "Bob", openingGame(t))
	m.Date = "2024-01-15"

	var buf bytes.Buffer
	require.NoError(t, ExportSGF(&buf, m))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "(;FF[4]GM[6]"))
	assert.Contains(t, out, "PW[Alice]PB[Bob]\n")
	assert.Contains(t, out, "DT[2024-01-15]\n")
	assert.Contains(t, out, ";W[65xrrm]\n")
	assert.Contains(t, out, ";B[31hefe]\n")
	assert.NotContains(t, out, "RE[")
	assert.True(t, strings.HasSuffix(out, ")\n"))
}

func TestPositionToSGF(t *testing.T) {
	assert.Equal(t, byte('y'), positionToSGF(engine.White, engine.OnBar(engine.White)))
	assert.Equal(t, byte('z'), positionToSGF(engine.Red, engine.BorneOff(engine.Red)))
	assert.Equal(t, byte('a'), positionToSGF(engine.White, engine.OnPoint(23)))
	assert.Equal(t, byte('a'), positionToSGF(engine.Red, engine.OnPoint(0)))
	assert.Equal(t, `a\]b`, escapeSGF("a]b"))
}
