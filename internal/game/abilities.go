package game

import (
	"fmt"

	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// menderTargetHP is the HP the Mender's ability sets the target to.
const menderTargetHP = 7

// RegisterPlayerAbility enters the player's declared ability into the
// registry. Static traits and ability-less characters are skipped; passives
// with an unknown trigger are rejected with an error.
func (s *Session) RegisterPlayerAbility(playerID int) error {
	player, ok := s.byID[playerID]
	if !ok {
		return fmt.Errorf("player %d: %w", playerID, ErrPlayerNotFound)
	}
	char, ok := LookupCharacter(player.Character)
	if !ok {
		return fmt.Errorf("unknown character %q", player.Character)
	}
	switch char.AbilityKind {
	case rules.AbilityTrait, rules.AbilityNone:
		return nil
	}
	return s.registry.Register(rules.Registration{
		PlayerID:       playerID,
		Kind:           char.AbilityKind,
		Trigger:        char.Trigger,
		Usage:          char.Usage,
		RequiresReveal: char.RequiresReveal,
	})
}

// UnregisterPlayerAbility removes the player's registry entry.
func (s *Session) UnregisterPlayerAbility(playerID int) {
	s.registry.Unregister(playerID)
}

// ActiveOutcome is the structured result of an ability activation.
type ActiveOutcome struct {
	Success     bool
	Description string
	Value       int
}

// CanActivateAbility checks, in order: the ability is active, not disabled,
// its once-per-game use is unspent, and any reveal requirement holds.
// Read-only; calling it twice yields identical results.
func (s *Session) CanActivateAbility(playerID int) Verdict {
	player, ok := s.byID[playerID]
	if !ok {
		return deny("player not found")
	}
	reg, ok := s.registry.Lookup(playerID)
	if !ok || reg.Kind != rules.AbilityActive {
		return deny("no active ability")
	}
	if player.AbilityDisabled {
		return deny("ability is disabled")
	}
	if reg.Usage == rules.UsageOnce && reg.Used {
		return deny("ability already used")
	}
	if reg.RequiresReveal && !player.Revealed {
		return deny("character must be revealed")
	}
	return allow()
}

// ActivateAbility re-validates and dispatches the player's active ability
// against the chosen targets. On success a once-per-game ability is
// permanently consumed.
func (s *Session) ActivateAbility(playerID int, targets []int) (ActiveOutcome, error) {
	if s.gameOver {
		return ActiveOutcome{}, ErrGameOver
	}
	if v := s.CanActivateAbility(playerID); !v.OK {
		s.publishAbilityFailed(playerID, v.Reason)
		return ActiveOutcome{Description: v.Reason}, nil
	}
	player := s.byID[playerID]

	outcome := s.dispatchActive(player, targets)
	if !outcome.Success {
		s.publishAbilityFailed(playerID, outcome.Description)
		return outcome, nil
	}

	if reg, ok := s.registry.Lookup(playerID); ok && reg.Usage == rules.UsageOnce {
		s.registry.MarkUsed(playerID)
	}

	evt := rules.NewEventWithAmount(rules.EventAbilityActivated, playerID, playerID, outcome.Value)
	evt.Data = outcome.Description
	s.publish(evt)
	return outcome, nil
}

func (s *Session) publishAbilityFailed(playerID int, reason string) {
	evt := rules.NewEvent(rules.EventAbilityFailed, playerID, playerID)
	evt.Data = reason
	s.publish(evt)
}

// dispatchActive runs the per-character active effect, enforcing each
// ability's target-count constraints.
func (s *Session) dispatchActive(player *Player, targets []int) ActiveOutcome {
	switch player.Character {
	case CharStormcaller:
		return s.activeDieDamage(player, targets, dieSixSides, "storm bolt")
	case CharGunslinger:
		return s.activeDieDamage(player, targets, dieFourSides, "aimed shot")
	case CharMender:
		return s.activeMend(player, targets)
	case CharSilencer:
		return s.activeSilence(player, targets)
	case CharWarden:
		if len(targets) != 0 {
			return ActiveOutcome{Description: "takes no targets"}
		}
		player.Status.DamageImmune = true
		return ActiveOutcome{Success: true, Description: "warded until next turn"}
	case CharWanderer:
		if len(targets) != 0 {
			return ActiveOutcome{Description: "takes no targets"}
		}
		healed := player.Heal(player.MaxHP)
		if healed > 0 {
			s.publish(rules.NewEventWithAmount(rules.EventHealed, player.ID, player.ID, healed))
		}
		return ActiveOutcome{Success: true, Description: "fully healed", Value: healed}
	case CharCollector:
		return s.activePilfer(player, targets)
	default:
		s.logger.Warn("no active effect for character",
			zap.String("character", string(player.Character)),
			zap.Int("player_id", player.ID),
		)
		return ActiveOutcome{Description: "no effect implemented"}
	}
}

func (s *Session) singleLivingTarget(actor *Player, targets []int) (*Player, string) {
	if len(targets) != 1 {
		return nil, "requires exactly one target"
	}
	target, ok := s.byID[targets[0]]
	if !ok {
		return nil, "target not found"
	}
	if target.ID == actor.ID {
		return nil, "cannot target self"
	}
	if !target.Alive {
		return nil, "target is dead"
	}
	return target, ""
}

func (s *Session) activeDieDamage(actor *Player, targets []int, sides int, desc string) ActiveOutcome {
	target, reason := s.singleLivingTarget(actor, targets)
	if target == nil {
		return ActiveOutcome{Description: reason}
	}
	amount := s.dice.Roll(sides)
	s.applyDamage(actor, target, amount)
	return ActiveOutcome{Success: true, Description: desc, Value: amount}
}

func (s *Session) activeMend(actor *Player, targets []int) ActiveOutcome {
	target, reason := s.singleLivingTarget(actor, targets)
	if target == nil {
		return ActiveOutcome{Description: reason}
	}
	hp := menderTargetHP
	if hp > target.MaxHP {
		hp = target.MaxHP
	}
	target.HP = hp
	return ActiveOutcome{Success: true, Description: "vitality rewritten", Value: hp}
}

func (s *Session) activeSilence(actor *Player, targets []int) ActiveOutcome {
	target, reason := s.singleLivingTarget(actor, targets)
	if target == nil {
		return ActiveOutcome{Description: reason}
	}
	if target.AbilityDisabled {
		return ActiveOutcome{Description: "ability already disabled"}
	}
	target.AbilityDisabled = true
	evt := rules.NewEvent(rules.EventAbilityDisabled, target.ID, actor.ID)
	s.publish(evt)
	return ActiveOutcome{Success: true, Description: "ability silenced"}
}

func (s *Session) activePilfer(actor *Player, targets []int) ActiveOutcome {
	target, reason := s.singleLivingTarget(actor, targets)
	if target == nil {
		return ActiveOutcome{Description: reason}
	}
	if len(target.Equipment) == 0 {
		return ActiveOutcome{Description: "target has no equipment"}
	}
	card := target.Equipment[0]
	target.Equipment = target.Equipment[1:]
	actor.Equipment = append(actor.Equipment, card)

	evt := rules.NewEventWithAmount(rules.EventEquipmentStolen, target.ID, actor.ID, 1)
	evt.Data = card.Name
	s.publish(evt)

	// Equipment changed hands; the Collector may have just hit the goal.
	s.CheckWinConditions(WinContext{Event: ContextNone})
	return ActiveOutcome{Success: true, Description: "equipment pilfered"}
}
