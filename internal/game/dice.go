package game

import "math/rand"

// Die sizes used by movement and combat rolls.
const (
	dieSixSides  = 6
	dieFourSides = 4
)

// DiceRoller supplies die rolls. Tests inject a scripted implementation;
// production uses the session's seeded source.
type DiceRoller interface {
	// Roll returns a value in [1, sides].
	Roll(sides int) int
}

type randRoller struct {
	rng *rand.Rand
}

// NewRandRoller returns a DiceRoller backed by the given source.
func NewRandRoller(rng *rand.Rand) DiceRoller {
	return &randRoller{rng: rng}
}

func (r *randRoller) Roll(sides int) int {
	return r.rng.Intn(sides) + 1
}
