package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiceRollUseAndReverse(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 int
		plays  []int
	}{
		{"distinct", 6, 5, []int{6, 5}},
		{"distinct reversed order", 3, 1, []int{1, 3}},
		{"doublet", 4, 4, []int{4, 4, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiceRoll(tt.v1, tt.v2)
			states := []DiceRoll{d}

			for _, v := range tt.plays {
				require.True(t, d.CanUse(v), "value %d should be usable", v)
				d.Use(v)
				states = append(states, d)
			}
			assert.True(t, d.IsExhausted())
			assert.Equal(t, 0, d.RemainingUses())

			for i := len(tt.plays) - 1; i >= 0; i-- {
				d.ReverseUse(tt.plays[i])
				assert.Equal(t, states[i], d, "reverse of play %d", i)
			}
		})
	}
}

func TestDiceRollCanUse(t *testing.T) {
	d := NewDiceRoll(6, 5)
	assert.False(t, d.CanUse(4))
	assert.False(t, d.CanUse(0))

	d.Use(6)
	assert.False(t, d.CanUse(6))
	assert.True(t, d.CanUse(5))
	assert.False(t, d.IsExhausted())
	assert.Equal(t, 1, d.RemainingUses())

	dbl := NewDiceRoll(2, 2)
	for i := 0; i < MaxDoubletUses; i++ {
		require.True(t, dbl.CanUse(2))
		dbl.Use(2)
	}
	assert.False(t, dbl.CanUse(2))
	assert.Equal(t, MaxDoubletUses, dbl.DoubletUses())
}

func TestRestoreDiceRoll(t *testing.T) {
	d, err := RestoreDiceRoll(3, 3, false, false, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, d.RemainingUses())

	_, err = RestoreDiceRoll(0, 3, false, false, 0)
	assert.Error(t, err)
	_, err = RestoreDiceRoll(3, 7, false, false, 0)
	assert.Error(t, err)
	_, err = RestoreDiceRoll(3, 3, false, false, 5)
	assert.Error(t, err)
}

func TestRandRollerDeterministic(t *testing.T) {
	a := NewRandRoller(42)
	b := NewRandRoller(42)
	for i := 0; i < 1000; i++ {
		va, vb := a.Roll(), b.Roll()
		require.Equal(t, va, vb)
		require.GreaterOrEqual(t, va, 1)
		require.LessOrEqual(t, va, 6)
	}
}
