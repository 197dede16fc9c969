package engine

import (
	"fmt"
	"math/rand/v2"
)

// MaxDoubletUses is the number of plays granted by a doublet.
const MaxDoubletUses = 4

// Roller produces die values uniformly in [1, 6].
type Roller interface {
	Roll() int
}

// RollerFunc adapts a function to the Roller interface.
type RollerFunc func() int

// Roll calls f.
func (f RollerFunc) Roll() int { return f() }

// RandRoller is a Roller backed by its own seeded PRNG.
type RandRoller struct {
	rng *rand.Rand
}

// NewRandRoller creates a roller whose sequence is fully determined by seed.
func NewRandRoller(seed uint64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Roll returns a value in [1, 6].
func (r *RandRoller) Roll() int {
	return r.rng.IntN(6) + 1
}

// DiceRoll is one roll of two dice together with the record of which values
// have been played. For a doublet the per-die flags are ignored and a use
// counter allows four plays.
type DiceRoll struct {
	v1, v2       int
	used1, used2 bool
	doubletUses  int
}

// NewDiceRoll returns an unused roll of v1 and v2.
func NewDiceRoll(v1, v2 int) DiceRoll {
	return DiceRoll{v1: v1, v2: v2}
}

// RandomRoll rolls two independent dice with r.
func RandomRoll(r Roller) DiceRoll {
	return NewDiceRoll(r.Roll(), r.Roll())
}

// RestoreDiceRoll rebuilds a partially used roll, validating every field.
func RestoreDiceRoll(v1, v2 int, used1, used2 bool, doubletUses int) (DiceRoll, error) {
	if !validDie(v1) || !validDie(v2) {
		return DiceRoll{}, fmt.Errorf("dice values %d,%d out of range", v1, v2)
	}
	if doubletUses < 0 || doubletUses > MaxDoubletUses {
		return DiceRoll{}, fmt.Errorf("doublet uses %d out of range", doubletUses)
	}
	return DiceRoll{v1: v1, v2: v2, used1: used1, used2: used2, doubletUses: doubletUses}, nil
}

func validDie(v int) bool { return v >= 1 && v <= 6 }

// Values returns both die values.
func (d DiceRoll) Values() (int, int) { return d.v1, d.v2 }

// Used1 reports whether the first die was played (non-doublets only).
func (d DiceRoll) Used1() bool { return d.used1 }

// Used2 reports whether the second die was played (non-doublets only).
func (d DiceRoll) Used2() bool { return d.used2 }

// DoubletUses returns how many plays of a doublet were made.
func (d DiceRoll) DoubletUses() int { return d.doubletUses }

// IsDoublet reports whether both dice show the same value.
func (d DiceRoll) IsDoublet() bool { return d.v1 == d.v2 }

// CanUse reports whether val can still be played.
func (d DiceRoll) CanUse(val int) bool {
	if d.IsDoublet() {
		return val == d.v1 && d.doubletUses < MaxDoubletUses
	}
	switch val {
	case d.v1:
		return !d.used1
	case d.v2:
		return !d.used2
	}
	return false
}

// Use marks val as played.
func (d *DiceRoll) Use(val int) {
	if d.IsDoublet() {
		if val == d.v1 {
			d.doubletUses++
		}
		return
	}
	if val == d.v1 {
		d.used1 = true
	}
	if val == d.v2 {
		d.used2 = true
	}
}

// ReverseUse undoes a previous Use of val.
func (d *DiceRoll) ReverseUse(val int) {
	if d.IsDoublet() {
		if val == d.v1 && d.doubletUses > 0 {
			d.doubletUses--
		}
		return
	}
	if val == d.v1 {
		d.used1 = false
	}
	if val == d.v2 {
		d.used2 = false
	}
}

// IsExhausted reports whether every play of the roll has been made.
func (d DiceRoll) IsExhausted() bool {
	if d.IsDoublet() {
		return d.doubletUses >= MaxDoubletUses
	}
	return d.used1 && d.used2
}

// RemainingUses returns how many plays are left.
func (d DiceRoll) RemainingUses() int {
	if d.IsDoublet() {
		return MaxDoubletUses - d.doubletUses
	}
	n := 0
	if !d.used1 {
		n++
	}
	if !d.used2 {
		n++
	}
	return n
}

// usableValues lists the distinct die values still playable.
func (d DiceRoll) usableValues() []int {
	var vals []int
	if d.CanUse(d.v1) {
		vals = append(vals, d.v1)
	}
	if !d.IsDoublet() && d.CanUse(d.v2) {
		vals = append(vals, d.v2)
	}
	return vals
}

func (d DiceRoll) String() string {
	return fmt.Sprintf("%d-%d", d.v1, d.v2)
}
