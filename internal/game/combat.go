package game

import (
	"fmt"

	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// RollOutcome is the result of one attack roll.
type RollOutcome struct {
	AttackerID int
	TargetID   int
	SixDie     int
	FourDie    int
	Miss       bool
	Damage     int
}

// RollAttack rolls the attack dice for attacker against target and returns
// the outcome without applying damage. Use ResolveAttack for the full
// roll-and-apply cycle.
func (s *Session) RollAttack(attackerID, targetID int) (RollOutcome, error) {
	attacker, ok := s.byID[attackerID]
	if !ok {
		return RollOutcome{}, fmt.Errorf("attacker %d: %w", attackerID, ErrPlayerNotFound)
	}
	target, ok := s.byID[targetID]
	if !ok {
		return RollOutcome{}, fmt.Errorf("target %d: %w", targetID, ErrPlayerNotFound)
	}
	return s.rollAttack(attacker, target), nil
}

// ResolveAttack rolls and, on a hit, applies the damage.
func (s *Session) ResolveAttack(attackerID, targetID int) (RollOutcome, error) {
	outcome, err := s.RollAttack(attackerID, targetID)
	if err != nil {
		return outcome, err
	}
	if !outcome.Miss && outcome.Damage > 0 {
		s.applyDamage(s.byID[attackerID], s.byID[targetID], outcome.Damage)
	}
	return outcome, nil
}

func (s *Session) rollAttack(attacker, target *Player) RollOutcome {
	outcome := RollOutcome{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		SixDie:     s.dice.Roll(dieSixSides),
		FourDie:    s.dice.Roll(dieFourSides),
	}

	if !target.Alive {
		outcome.Miss = true
		return outcome
	}

	base := outcome.SixDie - outcome.FourDie
	if base < 0 {
		base = -base
	}

	if s.noMissAttacker(attacker) {
		// The 4-die alone is the damage; equal dice are not a miss.
		base = outcome.FourDie
	} else if outcome.SixDie == outcome.FourDie {
		outcome.Miss = true
		evt := rules.NewEvent(rules.EventAttackMissed, target.ID, attacker.ID)
		s.publish(evt)
		return outcome
	}

	damage := base + attacker.AttackBonus() - target.DefenseBonus()
	if damage < 1 {
		damage = 1
	}
	outcome.Damage = damage

	evt := rules.NewEventWithAmount(rules.EventAttackRolled, target.ID, attacker.ID, damage)
	s.publish(evt)
	return outcome
}

// noMissAttacker reports whether the attacker rolls the 4-die alone: the
// Reaper's revealed trait, or a forced single-die equipment card.
func (s *Session) noMissAttacker(attacker *Player) bool {
	if attacker.Character == CharReaper && attacker.Revealed && !attacker.AbilityDisabled {
		return true
	}
	if card, ok := attacker.HasEquipment(EffectSingleDie); ok {
		return attacker.effectApplies(card.Effect)
	}
	return false
}

// ApplyDamage reduces target HP by amount, honoring one-shot shields and
// immunity, and processes death when HP reaches zero. attackerID may be -1
// for sourceless damage.
func (s *Session) ApplyDamage(attackerID, targetID, amount int) error {
	target, ok := s.byID[targetID]
	if !ok {
		return fmt.Errorf("target %d: %w", targetID, ErrPlayerNotFound)
	}
	var attacker *Player
	if attackerID >= 0 {
		if attacker, ok = s.byID[attackerID]; !ok {
			return fmt.Errorf("attacker %d: %w", attackerID, ErrPlayerNotFound)
		}
	}
	s.applyDamage(attacker, target, amount)
	return nil
}

func (s *Session) applyDamage(attacker, target *Player, amount int) {
	if amount <= 0 || !target.Alive {
		return
	}

	attackerID := -1
	if attacker != nil {
		attackerID = attacker.ID
	}

	if target.Status.DamageImmune {
		s.publish(rules.NewEventWithAmount(rules.EventDamagePrevented, target.ID, attackerID, amount))
		return
	}
	if target.Status.Shielded {
		target.Status.Shielded = false
		s.publish(rules.NewEventWithAmount(rules.EventDamagePrevented, target.ID, attackerID, amount))
		return
	}

	target.HP -= amount
	if target.HP < 0 {
		target.HP = 0
	}

	s.logger.Debug("damage dealt",
		zap.Int("attacker_id", attackerID),
		zap.Int("target_id", target.ID),
		zap.Int("amount", amount),
		zap.Int("target_hp", target.HP),
	)

	s.publish(rules.NewEventWithAmount(rules.EventDamageDealt, target.ID, attackerID, amount))

	if target.HP <= 0 && target.Alive {
		s.processDeath(target, attacker)
	}
}

// ProcessDeath marks the victim dead and runs death resolution. A second
// call on an already-dead victim is a no-op.
func (s *Session) ProcessDeath(victimID, killerID int) error {
	victim, ok := s.byID[victimID]
	if !ok {
		return fmt.Errorf("victim %d: %w", victimID, ErrPlayerNotFound)
	}
	var killer *Player
	if killerID >= 0 {
		if killer, ok = s.byID[killerID]; !ok {
			return fmt.Errorf("killer %d: %w", killerID, ErrPlayerNotFound)
		}
	}
	s.processDeath(victim, killer)
	return nil
}

func (s *Session) processDeath(victim, killer *Player) {
	if !victim.Alive {
		return
	}
	victim.Alive = false
	victim.HP = 0

	killerID := -1
	if killer != nil {
		killerID = killer.ID
	}

	s.logger.Info("player died",
		zap.Int("victim_id", victim.ID),
		zap.String("character", string(victim.Character)),
		zap.Int("killer_id", killerID),
	)

	// Death always reveals.
	if !victim.Revealed {
		s.RevealCharacter(victim.ID, false)
	}

	// Equipment theft happens before listeners observe the death.
	if killer != nil && killer.Alive {
		if card, ok := killer.HasEquipment(EffectStealOnKill); ok && killer.effectApplies(card.Effect) {
			s.transferEquipment(victim, killer)
		}
	}

	s.tracker.RegisterKill(killerID, victim.ID, victim.MaxHP, s.turn)

	s.publish(rules.NewEvent(rules.EventPlayerDied, victim.ID, killerID))

	s.CheckWinConditions(WinContext{
		Event:    ContextKill,
		KillerID: killerID,
		VictimID: victim.ID,
	})
}

// transferEquipment moves all of the victim's equipment to the killer.
func (s *Session) transferEquipment(victim, killer *Player) {
	if len(victim.Equipment) == 0 {
		return
	}
	moved := len(victim.Equipment)
	killer.Equipment = append(killer.Equipment, victim.Equipment...)
	victim.Equipment = nil
	s.publish(rules.NewEventWithAmount(rules.EventEquipmentStolen, victim.ID, killer.ID, moved))
}

// RevealCharacter makes a player's secret identity public. voluntary marks
// player-initiated reveals; forced reveals come from death and character
// effects.
func (s *Session) RevealCharacter(playerID int, voluntary bool) {
	player, ok := s.byID[playerID]
	if !ok {
		s.logger.Warn("reveal for missing player", zap.Int("player_id", playerID))
		return
	}
	if player.Revealed {
		return
	}
	player.Revealed = true

	evt := rules.NewEvent(rules.EventCharacterRevealed, player.ID, player.ID)
	evt.Data = string(player.Character)
	if voluntary {
		evt.Amount = 1
	}
	s.publish(evt)
}
