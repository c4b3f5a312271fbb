package game

// StatusFlags is the fixed set of transient states a player can carry.
// Character and card effects toggle these; nothing else may attach ad-hoc
// state to a player.
type StatusFlags struct {
	// Shielded absorbs the next damage application and is consumed by it.
	Shielded bool
	// DamageImmune negates all damage until cleared at the player's next
	// turn start.
	DamageImmune bool
}

// Player is one seat in a game session.
type Player struct {
	ID   int
	Name string
	Bot  bool

	HP    int
	MaxHP int
	Alive bool

	Character CharacterID
	Faction   Faction
	Revealed  bool

	Hand      []Card
	Equipment []Card
	Position  ZoneID

	// Per-turn flags, cleared when the player's turn starts.
	Rolled    bool
	RollTotal int
	Drawn     bool

	// AbilityDisabled is permanent for the game once set.
	AbilityDisabled bool

	Status StatusFlags
}

// NewPlayer creates a seated player with no character assigned yet.
func NewPlayer(id int, name string, bot bool) *Player {
	return &Player{ID: id, Name: name, Bot: bot, Alive: true}
}

// AssignCharacter sets the player's secret identity and vital state.
// Character and faction are immutable afterward.
func (p *Player) AssignCharacter(c Character) {
	p.Character = c.ID
	p.Faction = c.Faction
	p.MaxHP = c.MaxHP
	p.HP = c.MaxHP
	p.Alive = true
	p.Revealed = false
}

// Heal raises HP by amount, capped at MaxHP. Dead players stay at zero.
func (p *Player) Heal(amount int) int {
	if !p.Alive || amount <= 0 {
		return 0
	}
	before := p.HP
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	return p.HP - before
}

// ResetTurnFlags clears the per-turn state at the start of the player's turn.
// Damage immunity granted "until next turn" expires here as well.
func (p *Player) ResetTurnFlags() {
	p.Rolled = false
	p.RollTotal = 0
	p.Drawn = false
	p.Status.DamageImmune = false
}

// effectApplies reports whether an equipped card's effect is live for this
// player, honoring the card's faction restriction.
func (p *Player) effectApplies(e Effect) bool {
	return e.Faction == "" || e.Faction == p.Faction
}

// AttackBonus sums the attack modifiers across equipped cards.
func (p *Player) AttackBonus() int {
	bonus := 0
	for _, card := range p.Equipment {
		if card.Effect.Kind == EffectAttackBonus && p.effectApplies(card.Effect) {
			bonus += card.Effect.Value
		}
	}
	return bonus
}

// DefenseBonus sums the defense modifiers across equipped cards.
func (p *Player) DefenseBonus() int {
	bonus := 0
	for _, card := range p.Equipment {
		if card.Effect.Kind == EffectDefenseBonus && p.effectApplies(card.Effect) {
			bonus += card.Effect.Value
		}
	}
	return bonus
}

// HasEquipment reports whether the player holds an equipped card with the
// given effect kind and returns the first match.
func (p *Player) HasEquipment(kind EffectKind) (Card, bool) {
	for _, card := range p.Equipment {
		if card.Effect.Kind == kind {
			return card, true
		}
	}
	return Card{}, false
}

// RelicCount counts equipped relic-set cards.
func (p *Player) RelicCount() int {
	count := 0
	for _, card := range p.Equipment {
		if card.Effect.Kind == EffectRelic {
			count++
		}
	}
	return count
}

// RemoveEquipment detaches the equipment card with the given ID and returns
// it. The second return is false when the card is not equipped.
func (p *Player) RemoveEquipment(cardID string) (Card, bool) {
	for i, card := range p.Equipment {
		if card.ID == cardID {
			p.Equipment = append(p.Equipment[:i], p.Equipment[i+1:]...)
			return card, true
		}
	}
	return Card{}, false
}
