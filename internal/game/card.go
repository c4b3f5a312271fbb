package game

import (
	"math/rand"
)

// DeckKind identifies one of the three draw decks.
type DeckKind string

const (
	DeckLight  DeckKind = "LIGHT"
	DeckDark   DeckKind = "DARK"
	DeckVision DeckKind = "VISION"
)

// CardType classifies how a drawn card resolves.
type CardType string

const (
	CardInstant   CardType = "INSTANT"
	CardEquipment CardType = "EQUIPMENT"
	CardVision    CardType = "VISION"
)

// EffectKind is the closed set of card effect descriptors.
type EffectKind string

const (
	EffectAttackBonus  EffectKind = "ATTACK_BONUS"
	EffectDefenseBonus EffectKind = "DEFENSE_BONUS"
	EffectHeal         EffectKind = "HEAL"
	EffectDamage       EffectKind = "DAMAGE"
	// EffectSingleDie forces the holder's attacks onto the 4-die alone.
	EffectSingleDie EffectKind = "SINGLE_DIE"
	// EffectStealOnKill transfers the victim's equipment to the killer,
	// optionally restricted to killers of a matching faction.
	EffectStealOnKill EffectKind = "STEAL_ON_KILL"
	// EffectShield grants a one-shot shield consumed by the next damage.
	EffectShield EffectKind = "SHIELD"
	// EffectCapriccio toggles the session-wide neighbor direction swap.
	EffectCapriccio EffectKind = "CAPRICCIO"
	// EffectRelic marks a card as part of the Curator's relic set.
	EffectRelic EffectKind = "RELIC"
	// EffectVision heals or damages the recipient depending on their faction.
	EffectVision EffectKind = "VISION"
)

// Effect is the descriptor printed on a card.
type Effect struct {
	Kind  EffectKind
	Value int
	// Faction restricts the effect to holders or recipients of this faction;
	// empty means unrestricted.
	Faction Faction
}

// Card is a single playing card. Cards are value types; identity is the ID.
type Card struct {
	ID     string
	Name   string
	Deck   DeckKind
	Type   CardType
	Effect Effect
}

// Deck is an ordered draw pile with a discard pile and
// reshuffle-on-exhaustion semantics.
type Deck struct {
	Kind    DeckKind
	draw    []Card
	discard []Card
	rng     *rand.Rand
}

// NewDeck builds a deck from the given cards without shuffling; call
// Shuffle before first use.
func NewDeck(kind DeckKind, cards []Card, rng *rand.Rand) *Deck {
	draw := make([]Card, len(cards))
	copy(draw, cards)
	return &Deck{Kind: kind, draw: draw, rng: rng}
}

// Shuffle randomizes the draw pile in place.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw removes and returns the top card. An empty draw pile reshuffles the
// discard pile exactly once; if both piles are empty the deck is exhausted
// and Draw reports no card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.draw) == 0 {
		if len(d.discard) == 0 {
			return Card{}, false
		}
		d.draw = d.discard
		d.discard = nil
		d.Shuffle()
	}
	card := d.draw[0]
	d.draw = d.draw[1:]
	return card, true
}

// Discard places a card on the discard pile.
func (d *Deck) Discard(card Card) {
	d.discard = append(d.discard, card)
}

// Remaining returns the number of drawable cards, counting the discard pile
// that a reshuffle would recover.
func (d *Deck) Remaining() int {
	return len(d.draw) + len(d.discard)
}
