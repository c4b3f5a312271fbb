package game

import (
	"errors"
	"fmt"

	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// ErrActionDenied wraps a validator rejection returned from a mutator.
var ErrActionDenied = errors.New("action denied")

func denied(v Verdict) error {
	return fmt.Errorf("%w: %s", ErrActionDenied, v.Reason)
}

// RollMovement rolls the two movement dice for the active player and stores
// the total for the subsequent move.
func (s *Session) RollMovement(playerID int) (int, error) {
	if v := s.ValidateAction(playerID, ActionRollMovement); !v.OK {
		return 0, denied(v)
	}
	player := s.byID[playerID]
	total := s.dice.Roll(dieSixSides) + s.dice.Roll(dieFourSides)
	player.Rolled = true
	player.RollTotal = total

	s.publish(rules.NewEventWithAmount(rules.EventMovementRolled, playerID, -1, total))
	return total, nil
}

// Move relocates the player to the destination zone permitted by their roll.
func (s *Session) Move(playerID int, dest ZoneID) error {
	if v := s.ValidateMove(playerID, dest); !v.OK {
		return denied(v)
	}
	player := s.byID[playerID]
	player.Position = dest

	evt := rules.NewEvent(rules.EventPlayerMoved, playerID, -1)
	evt.Amount = int(dest)
	s.publish(evt)
	return nil
}

// Attack validates and resolves an attack against the chosen target.
func (s *Session) Attack(attackerID, targetID int) (RollOutcome, error) {
	if v := s.ValidateAttackTarget(attackerID, targetID); !v.OK {
		return RollOutcome{}, denied(v)
	}
	return s.ResolveAttack(attackerID, targetID)
}

// DrawCard draws from the deck in the player's zone and resolves the card.
// Instants apply immediately and are discarded; equipment attaches to the
// player; vision cards go to hand for a later PlayVision.
func (s *Session) DrawCard(playerID int) (Card, error) {
	if v := s.ValidateAction(playerID, ActionDrawCard); !v.OK {
		return Card{}, denied(v)
	}
	player := s.byID[playerID]
	kind, _ := s.board.DeckAt(player.Position)
	deck := s.decks[kind]

	before := len(deck.draw)
	card, ok := deck.Draw()
	if !ok {
		// Validator checked Remaining, so this is a configuration gap.
		s.logger.Warn("deck empty despite validation", zap.String("deck", string(kind)))
		s.publish(rules.NewEvent(rules.EventDeckExhausted, playerID, -1))
		return Card{}, nil
	}
	if before == 0 {
		evt := rules.NewEvent(rules.EventDeckReshuffled, playerID, -1)
		evt.Data = string(kind)
		s.publish(evt)
	}

	player.Drawn = true

	evt := rules.NewEvent(rules.EventCardDrawn, playerID, -1)
	evt.Data = card.Name
	s.publish(evt)

	s.resolveCard(player, card, deck)
	return card, nil
}

// resolveCard applies a drawn card's effect.
func (s *Session) resolveCard(player *Player, card Card, deck *Deck) {
	switch card.Type {
	case CardEquipment:
		player.Equipment = append(player.Equipment, card)
		evt := rules.NewEvent(rules.EventEquipmentGained, player.ID, -1)
		evt.Data = card.Name
		s.publish(evt)
		// Equipment changes can satisfy the Collector.
		s.CheckWinConditions(WinContext{Event: ContextNone})

	case CardInstant:
		s.resolveInstant(player, card)
		deck.Discard(card)

	case CardVision:
		player.Hand = append(player.Hand, card)

	default:
		s.logger.Warn("unknown card type",
			zap.String("card", card.Name),
			zap.String("type", string(card.Type)),
		)
		deck.Discard(card)
	}
}

func (s *Session) resolveInstant(player *Player, card Card) {
	switch card.Effect.Kind {
	case EffectHeal:
		if healed := player.Heal(card.Effect.Value); healed > 0 {
			s.publish(rules.NewEventWithAmount(rules.EventHealed, player.ID, -1, healed))
		}
	case EffectDamage:
		s.applyDamage(nil, player, card.Effect.Value)
	case EffectShield:
		player.Status.Shielded = true
	case EffectCapriccio:
		s.capriccio = !s.capriccio
	default:
		s.logger.Warn("unknown instant effect",
			zap.String("card", card.Name),
			zap.String("effect", string(card.Effect.Kind)),
		)
	}
}

// DiscardEquipment detaches an equipped card and returns it to its origin
// deck's discard pile.
func (s *Session) DiscardEquipment(playerID int, cardID string) error {
	player, ok := s.byID[playerID]
	if !ok {
		return fmt.Errorf("player %d: %w", playerID, ErrPlayerNotFound)
	}
	if s.gameOver {
		return ErrGameOver
	}
	if !player.Alive {
		return denied(deny("player is dead"))
	}
	card, ok := player.RemoveEquipment(cardID)
	if !ok {
		return denied(deny("equipment not held"))
	}
	if deck, ok := s.decks[card.Deck]; ok {
		deck.Discard(card)
	}

	evt := rules.NewEvent(rules.EventEquipmentRemoved, playerID, -1)
	evt.Data = card.Name
	s.publish(evt)
	return nil
}

// PlayVision hands a vision card from the holder to a target, who resolves
// it in secret: a faction match takes the printed damage, or the printed
// heal when the value is negative.
func (s *Session) PlayVision(holderID int, cardID string, targetID int) error {
	holder, ok := s.byID[holderID]
	if !ok {
		return fmt.Errorf("holder %d: %w", holderID, ErrPlayerNotFound)
	}
	target, ok := s.byID[targetID]
	if !ok {
		return fmt.Errorf("target %d: %w", targetID, ErrPlayerNotFound)
	}
	if s.gameOver {
		return ErrGameOver
	}
	if targetID == holderID {
		return denied(deny("vision cards go to another player"))
	}
	if !target.Alive {
		return denied(deny("target is dead"))
	}

	idx := -1
	for i, card := range holder.Hand {
		if card.ID == cardID && card.Type == CardVision {
			idx = i
			break
		}
	}
	if idx < 0 {
		return denied(deny("vision card not in hand"))
	}
	card := holder.Hand[idx]
	holder.Hand = append(holder.Hand[:idx], holder.Hand[idx+1:]...)

	if target.Faction == card.Effect.Faction {
		if card.Effect.Value > 0 {
			s.applyDamage(nil, target, card.Effect.Value)
		} else if healed := target.Heal(-card.Effect.Value); healed > 0 {
			s.publish(rules.NewEventWithAmount(rules.EventHealed, target.ID, -1, healed))
		}
	}

	if deck, ok := s.decks[card.Deck]; ok {
		deck.Discard(card)
	}
	return nil
}
