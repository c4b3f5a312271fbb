package game

import (
	"fmt"

	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
)

// Phase is the cyclic per-player turn phase.
type Phase int

const (
	PhaseMovement Phase = iota
	PhaseAction
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseMovement: "MOVEMENT",
	PhaseAction:   "ACTION",
	PhaseEnd:      "END",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// AdvancePhase moves MOVEMENT to ACTION, ACTION to END, and END to the next
// living player's MOVEMENT. The turn counter increments once per wraparound
// past the last seat. With nobody alive it returns ErrNoLivingPlayers
// instead of spinning.
func (s *Session) AdvancePhase() error {
	if s.gameOver {
		return ErrGameOver
	}
	switch s.phase {
	case PhaseMovement:
		s.phase = PhaseAction
	case PhaseAction:
		s.phase = PhaseEnd
	case PhaseEnd:
		if err := s.advanceTurn(); err != nil {
			return err
		}
	}
	evt := rules.NewEvent(rules.EventPhaseChanged, s.players[s.currentIdx].ID, -1)
	evt.Data = s.phase.String()
	s.publish(evt)
	return nil
}

// EndTurn passes the remainder of the active player's turn and hands play to
// the next living player. Legal in any phase.
func (s *Session) EndTurn() error {
	if s.gameOver {
		return ErrGameOver
	}
	s.phase = PhaseEnd
	return s.AdvancePhase()
}

func (s *Session) advanceTurn() error {
	if s.livingCount("") == 0 {
		return ErrNoLivingPlayers
	}

	n := len(s.players)
	for offset := 1; offset <= n; offset++ {
		idx := (s.currentIdx + offset) % n
		if !s.players[idx].Alive {
			continue
		}
		if s.currentIdx+offset >= n {
			s.turn++
		}
		s.currentIdx = idx
		s.phase = PhaseMovement
		s.beginTurn(s.players[idx])
		return nil
	}
	return ErrNoLivingPlayers
}

// beginTurn clears the new active player's per-turn flags and raises the
// turn-started event, which fires their on_turn_start passive.
func (s *Session) beginTurn(player *Player) {
	player.ResetTurnFlags()
	evt := rules.NewEventWithAmount(rules.EventTurnStarted, player.ID, -1, s.turn)
	s.publish(evt)
}

// BeginFirstTurn starts play with seat zero. Call once after setup.
func (s *Session) BeginFirstTurn() {
	s.currentIdx = 0
	s.phase = PhaseMovement
	s.beginTurn(s.players[0])
}
