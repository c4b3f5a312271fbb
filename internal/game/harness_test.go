package game

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

// scriptRoller feeds a fixed sequence of die results and fails the test if
// the script runs dry.
type scriptRoller struct {
	t     *testing.T
	rolls []int
	next  int
}

func newScriptRoller(t *testing.T, rolls ...int) *scriptRoller {
	return &scriptRoller{t: t, rolls: rolls}
}

func (r *scriptRoller) Roll(sides int) int {
	if r.next >= len(r.rolls) {
		r.t.Fatalf("dice script exhausted after %d rolls", r.next)
	}
	value := r.rolls[r.next]
	r.next++
	if value < 1 || value > sides {
		r.t.Fatalf("scripted roll %d out of range for d%d", value, sides)
	}
	return value
}

// push appends more scripted rolls mid-test.
func (r *scriptRoller) push(rolls ...int) {
	r.rolls = append(r.rolls, rolls...)
}

// newTestSession builds a session with a pinned roster, a fixed seed and an
// optional dice script. Players are named P0..Pn and placed in zone 0 so
// everyone is initially a legal attack target.
func newTestSession(t *testing.T, roster []CharacterID, rolls ...int) (*Session, *scriptRoller) {
	t.Helper()

	specs := make([]PlayerSpec, len(roster))
	for i := range roster {
		specs[i] = PlayerSpec{Name: playerName(i)}
	}

	roller := newScriptRoller(t, rolls...)
	opts := []SessionOption{
		WithSeed(42),
		WithRoster(roster),
		WithDiceRoller(roller),
	}

	session, err := NewSession(zaptest.NewLogger(t), specs, opts...)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	for _, p := range session.Players() {
		p.Position = 0
	}
	return session, roller
}

func playerName(i int) string {
	return string(rune('A' + i))
}
