package game

import (
	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// TriggerContext carries the event data a passive effect reacts to.
type TriggerContext struct {
	Trigger  rules.TriggerKey
	ActorID  int // attacker or killer; -1 if none
	VictimID int // damaged or dead player; -1 if none
	Amount   int
}

// wireTriggers subscribes the ability trigger handlers to the session bus.
// Within one player-died resolution the ordering contract is: the victim's
// on_death fires first, then the victim is unregistered, then the killer's
// on_kill, then the on_character_death broadcast. Later listeners must not
// see the victim as still registered.
func (s *Session) wireTriggers() {
	s.bus.SubscribeTyped(rules.EventDamageDealt, func(evt rules.Event) {
		ctx := TriggerContext{ActorID: evt.ActorID, VictimID: evt.PlayerID, Amount: evt.Amount}
		ctx.Trigger = rules.TriggerOnAttacked
		s.firePassive(evt.PlayerID, ctx)
		ctx.Trigger = rules.TriggerOnAttack
		s.firePassive(evt.ActorID, ctx)
	})

	s.bus.SubscribeTyped(rules.EventTurnStarted, func(evt rules.Event) {
		s.firePassive(evt.PlayerID, TriggerContext{
			Trigger: rules.TriggerOnTurnStart,
			ActorID: evt.PlayerID,
		})
	})

	s.bus.SubscribeTyped(rules.EventPlayerDied, func(evt rules.Event) {
		victimID, killerID := evt.PlayerID, evt.ActorID
		ctx := TriggerContext{ActorID: killerID, VictimID: victimID}

		ctx.Trigger = rules.TriggerOnDeath
		s.firePassive(victimID, ctx)

		s.registry.Unregister(victimID)

		ctx.Trigger = rules.TriggerOnKill
		s.firePassive(killerID, ctx)

		ctx.Trigger = rules.TriggerOnCharacterDeath
		for _, id := range s.registry.PassivesFor(rules.TriggerOnCharacterDeath) {
			if id == victimID {
				continue
			}
			s.firePassive(id, ctx)
		}
	})

	s.bus.SubscribeTyped(rules.EventCharacterRevealed, func(evt rules.Event) {
		s.firePassive(evt.PlayerID, TriggerContext{
			Trigger: rules.TriggerOnReveal,
			ActorID: evt.PlayerID,
		})
	})
}

// firePassive dispatches one player's passive ability if it is registered
// for the context's trigger and not disabled.
func (s *Session) firePassive(playerID int, ctx TriggerContext) {
	if playerID < 0 {
		return
	}
	reg, ok := s.registry.Lookup(playerID)
	if !ok || reg.Kind != rules.AbilityPassive || reg.Trigger != ctx.Trigger {
		return
	}
	player, ok := s.byID[playerID]
	if !ok {
		s.logger.Warn("passive fired for missing player", zap.Int("player_id", playerID))
		return
	}
	if player.AbilityDisabled {
		return
	}
	if reg.Usage == rules.UsageOnce {
		if reg.Used {
			return
		}
		s.registry.MarkUsed(playerID)
	}
	s.Execute(player, ctx)
}

// Execute runs the per-character passive effect for the given context and
// emits an ability-triggered notification. Unknown character IDs are a
// logged no-op.
func (s *Session) Execute(player *Player, ctx TriggerContext) {
	triggered := true
	switch player.Character {
	case CharDancer:
		if healed := player.Heal(1); healed > 0 {
			s.publish(rules.NewEventWithAmount(rules.EventHealed, player.ID, player.ID, healed))
		}
	case CharNightfiend:
		// Lifesteal after dealing damage as the attacker.
		if ctx.Amount > 0 {
			if healed := player.Heal(2); healed > 0 {
				s.publish(rules.NewEventWithAmount(rules.EventHealed, player.ID, player.ID, healed))
			}
		} else {
			triggered = false
		}
	case CharMoonbeast:
		triggered = s.counterattack(player, ctx.ActorID)
	case CharZealot:
		triggered = s.zealotReveal(player, ctx.VictimID)
	case CharGravecaller:
		if player.Revealed {
			triggered = false
			break
		}
		s.RevealCharacter(player.ID, false)
	case CharDuskwight:
		if healed := player.Heal(2); healed > 0 {
			s.publish(rules.NewEventWithAmount(rules.EventHealed, player.ID, player.ID, healed))
		}
	case CharMartyr:
		triggered = s.martyrCurse(player, ctx.ActorID)
	default:
		s.logger.Warn("no passive effect for character",
			zap.String("character", string(player.Character)),
			zap.Int("player_id", player.ID),
		)
		return
	}
	if triggered {
		evt := rules.NewEvent(rules.EventAbilityTriggered, player.ID, player.ID)
		// The character id is secret until the player is revealed, and the
		// hub relays event data to spectators verbatim.
		if player.Revealed {
			evt.Data = string(player.Character)
		}
		s.publish(evt)
	}
}

// counterattack is the Moonbeast striking back at its attacker. It requires
// the Moonbeast to be revealed and both parties still standing.
func (s *Session) counterattack(beast *Player, attackerID int) bool {
	if !beast.Revealed || !beast.Alive {
		return false
	}
	attacker, ok := s.byID[attackerID]
	if !ok || !attacker.Alive {
		return false
	}
	outcome := s.rollAttack(beast, attacker)
	if !outcome.Miss && outcome.Damage > 0 {
		s.applyDamage(beast, attacker, outcome.Damage)
	}
	return true
}

// zealotReveal forces the Zealot into the open after a kill on a victim
// whose printed max HP is at or below the threshold.
func (s *Session) zealotReveal(zealot *Player, victimID int) bool {
	victim, ok := s.byID[victimID]
	if !ok || victim.MaxHP > zealotRevealThreshold {
		return false
	}
	if zealot.Revealed {
		return false
	}
	s.RevealCharacter(zealot.ID, false)
	return true
}

// martyrCurse strikes the Martyr's killer for 2 as she dies.
func (s *Session) martyrCurse(martyr *Player, killerID int) bool {
	killer, ok := s.byID[killerID]
	if !ok || killer.ID == martyr.ID || !killer.Alive {
		return false
	}
	s.applyDamage(martyr, killer, 2)
	return true
}
