package game

import "fmt"

// ActionKind identifies a player-requested action.
type ActionKind string

const (
	ActionRollMovement ActionKind = "roll_movement"
	ActionDrawCard     ActionKind = "draw_card"
	ActionAttack       ActionKind = "attack"
	ActionMove         ActionKind = "move"
	ActionEndTurn      ActionKind = "end_turn"
)

// Verdict is a validity ruling with a human-readable reason on failure.
// Verdicts are values; validation never mutates state.
type Verdict struct {
	OK     bool
	Reason string
}

func allow() Verdict { return Verdict{OK: true} }

func deny(reason string) Verdict { return Verdict{Reason: reason} }

// ValidateAction rules on whether the player may take the given action in
// the current phase. Safe to call repeatedly; it reads but never writes.
func (s *Session) ValidateAction(playerID int, action ActionKind) Verdict {
	player, ok := s.byID[playerID]
	if !ok {
		return deny("player not found")
	}
	if s.gameOver {
		return deny("game is over")
	}
	if !player.Alive {
		return deny("player is dead")
	}
	if s.players[s.currentIdx].ID != playerID {
		return deny("not your turn")
	}

	switch action {
	case ActionRollMovement:
		if s.phase != PhaseMovement {
			return deny("movement roll only in movement phase")
		}
		if player.Rolled {
			return deny("already rolled this turn")
		}
		return allow()

	case ActionDrawCard:
		if s.phase != PhaseAction {
			return deny("drawing only in action phase")
		}
		if player.Drawn {
			return deny("already drawn this turn")
		}
		kind, ok := s.board.DeckAt(player.Position)
		if !ok {
			return deny("no deck in this zone")
		}
		deck, ok := s.decks[kind]
		if !ok || deck.Remaining() == 0 {
			return deny("deck is exhausted")
		}
		return allow()

	case ActionAttack:
		if s.phase != PhaseAction {
			return deny("attacking only in action phase")
		}
		if len(s.LegalTargets(playerID)) == 0 {
			return deny("no legal targets")
		}
		return allow()

	case ActionMove:
		if s.phase != PhaseMovement {
			return deny("moving only in movement phase")
		}
		if !player.Rolled {
			return deny("roll movement dice first")
		}
		return allow()

	case ActionEndTurn:
		// Passing is unconditionally legal.
		return allow()

	default:
		return deny(fmt.Sprintf("unknown action %q", action))
	}
}

// ValidateMove rules on a move to a specific destination.
func (s *Session) ValidateMove(playerID int, dest ZoneID) Verdict {
	if v := s.ValidateAction(playerID, ActionMove); !v.OK {
		return v
	}
	player := s.byID[playerID]
	if !s.board.Reachable(player.Position, dest, player.RollTotal) {
		return deny("destination out of range")
	}
	return allow()
}

// ValidateAttackTarget rules on attacking one specific target.
func (s *Session) ValidateAttackTarget(playerID, targetID int) Verdict {
	if v := s.ValidateAction(playerID, ActionAttack); !v.OK {
		return v
	}
	for _, id := range s.LegalTargets(playerID) {
		if id == targetID {
			return allow()
		}
	}
	return deny("target out of reach")
}

// LegalTargets lists the players the attacker may strike: living opponents
// in the same or an adjacent zone.
func (s *Session) LegalTargets(attackerID int) []int {
	attacker, ok := s.byID[attackerID]
	if !ok {
		return nil
	}
	var targets []int
	for _, p := range s.players {
		if p.ID == attackerID || !p.Alive {
			continue
		}
		if s.board.Distance(attacker.Position, p.Position) <= 1 {
			targets = append(targets, p.ID)
		}
	}
	return targets
}
