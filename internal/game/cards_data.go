package game

import "fmt"

// cardSpec is one card template plus its copy count in the default decks.
type cardSpec struct {
	name   string
	typ    CardType
	effect Effect
	count  int
}

var lightCards = []cardSpec{
	{name: "Blessed Water", typ: CardInstant, effect: Effect{Kind: EffectHeal, Value: 2}, count: 3},
	{name: "Herbal Draught", typ: CardInstant, effect: Effect{Kind: EffectHeal, Value: 1}, count: 3},
	{name: "Holy Robe", typ: CardEquipment, effect: Effect{Kind: EffectDefenseBonus, Value: 1}, count: 2},
	{name: "Spear of Dawn", typ: CardEquipment, effect: Effect{Kind: EffectAttackBonus, Value: 2, Faction: FactionHunter}, count: 1},
	{name: "Silver Chaplet", typ: CardEquipment, effect: Effect{Kind: EffectStealOnKill, Faction: FactionHunter}, count: 1},
	{name: "Ancient Icon", typ: CardEquipment, effect: Effect{Kind: EffectRelic}, count: 2},
	{name: "Ward Charm", typ: CardInstant, effect: Effect{Kind: EffectShield}, count: 2},
}

var darkCards = []cardSpec{
	{name: "Cursed Blade", typ: CardEquipment, effect: Effect{Kind: EffectSingleDie}, count: 1},
	{name: "Bone Saber", typ: CardEquipment, effect: Effect{Kind: EffectAttackBonus, Value: 1}, count: 2},
	{name: "Vile Needle", typ: CardInstant, effect: Effect{Kind: EffectDamage, Value: 1}, count: 3},
	{name: "Pit Trap", typ: CardInstant, effect: Effect{Kind: EffectDamage, Value: 2}, count: 2},
	{name: "Black Idol", typ: CardEquipment, effect: Effect{Kind: EffectRelic}, count: 2},
	{name: "Greedy Fetish", typ: CardEquipment, effect: Effect{Kind: EffectStealOnKill}, count: 1},
	{name: "Capriccio", typ: CardInstant, effect: Effect{Kind: EffectCapriccio}, count: 1},
}

var visionCards = []cardSpec{
	{name: "Glimpse of Dusk", typ: CardVision, effect: Effect{Kind: EffectVision, Value: 1, Faction: FactionShadow}, count: 3},
	{name: "Glimpse of Dawn", typ: CardVision, effect: Effect{Kind: EffectVision, Value: 1, Faction: FactionHunter}, count: 3},
	{name: "Kind Omen", typ: CardVision, effect: Effect{Kind: EffectVision, Value: -1, Faction: FactionNeutral}, count: 2},
}

// defaultDeckCards expands the card templates into the three deck lists.
// Card IDs are stable per session position, not globally.
func defaultDeckCards() map[DeckKind][]Card {
	decks := map[DeckKind][]cardSpec{
		DeckLight:  lightCards,
		DeckDark:   darkCards,
		DeckVision: visionCards,
	}
	out := make(map[DeckKind][]Card, len(decks))
	for kind, specs := range decks {
		var cards []Card
		for _, spec := range specs {
			for i := 0; i < spec.count; i++ {
				cards = append(cards, Card{
					ID:     fmt.Sprintf("%s-%s-%d", kind, spec.name, i),
					Name:   spec.name,
					Deck:   kind,
					Type:   spec.typ,
					Effect: spec.effect,
				})
			}
		}
		out[kind] = cards
	}
	return out
}
