package game

import (
	"testing"
)

// TestAttackBaseDamage verifies the two-die difference: (6,4) deals 2.
func TestAttackBaseDamage(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharNightfiend, CharDancer, CharMoonbeast}, 6, 4)

	target := s.Players()[1]
	target.HP = 10
	target.MaxHP = 10

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if outcome.Miss {
		t.Fatal("expected a hit")
	}
	if outcome.Damage != 2 {
		t.Errorf("expected damage 2, got %d", outcome.Damage)
	}
	if target.HP != 8 {
		t.Errorf("expected target HP 8, got %d", target.HP)
	}
}

// TestAttackEqualDiceMiss verifies (3,3) is a miss leaving HP untouched.
func TestAttackEqualDiceMiss(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden}, 3, 3)

	target := s.Players()[1]
	before := target.HP

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if !outcome.Miss {
		t.Fatal("expected a miss")
	}
	if outcome.Damage != 0 {
		t.Errorf("miss must deal 0 damage, got %d", outcome.Damage)
	}
	if target.HP != before {
		t.Errorf("expected target HP unchanged at %d, got %d", before, target.HP)
	}
}

// TestReaperNeverMisses: a revealed Reaper uses the 4-die alone even on
// equal dice.
func TestReaperNeverMisses(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharReaper, CharZealot, CharDancer, CharWarden}, 3, 3)

	reaper := s.Players()[0]
	reaper.Revealed = true
	target := s.Players()[1]
	before := target.HP

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if outcome.Miss {
		t.Fatal("revealed Reaper cannot miss")
	}
	if outcome.Damage != 3 {
		t.Errorf("expected 4-die damage 3, got %d", outcome.Damage)
	}
	if target.HP != before-3 {
		t.Errorf("expected target HP %d, got %d", before-3, target.HP)
	}
}

// TestReaperTraitGates: the trait is off while hidden or disabled.
func TestReaperTraitGates(t *testing.T) {
	s, roller := newTestSession(t, []CharacterID{CharReaper, CharZealot, CharDancer, CharWarden}, 2, 2)

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if !outcome.Miss {
		t.Fatal("hidden Reaper misses on equal dice like anyone else")
	}

	reaper := s.Players()[0]
	reaper.Revealed = true
	reaper.AbilityDisabled = true
	roller.push(2, 2)

	outcome, err = s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if !outcome.Miss {
		t.Fatal("disabled Reaper loses the no-miss trait")
	}
}

// TestSingleDieEquipment: the forced single-die item removes misses.
func TestSingleDieEquipment(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden}, 4, 4)

	attacker := s.Players()[0]
	attacker.Equipment = append(attacker.Equipment, Card{
		ID: "blade", Name: "Cursed Blade", Deck: DeckDark, Type: CardEquipment,
		Effect: Effect{Kind: EffectSingleDie},
	})

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if outcome.Miss {
		t.Fatal("single-die attacker cannot miss")
	}
	if outcome.Damage != 4 {
		t.Errorf("expected 4-die damage 4, got %d", outcome.Damage)
	}
}

// TestDamageFloor: modifiers can never push a hit below 1 damage.
func TestDamageFloor(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden}, 2, 1)

	target := s.Players()[1]
	target.Equipment = append(target.Equipment, Card{
		ID: "robe-1", Name: "Holy Robe", Type: CardEquipment,
		Effect: Effect{Kind: EffectDefenseBonus, Value: 3},
	})
	before := target.HP

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if outcome.Damage != 1 {
		t.Errorf("expected floored damage 1, got %d", outcome.Damage)
	}
	if target.HP != before-1 {
		t.Errorf("expected target HP %d, got %d", before-1, target.HP)
	}
}

// TestEquipmentBonuses: attack and defense bonuses shift the final damage.
func TestEquipmentBonuses(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden}, 6, 1)

	attacker := s.Players()[0]
	attacker.Equipment = append(attacker.Equipment, Card{
		ID: "saber-1", Name: "Bone Saber", Type: CardEquipment,
		Effect: Effect{Kind: EffectAttackBonus, Value: 1},
	})
	target := s.Players()[1]
	target.Equipment = append(target.Equipment, Card{
		ID: "robe-1", Name: "Holy Robe", Type: CardEquipment,
		Effect: Effect{Kind: EffectDefenseBonus, Value: 2},
	})

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	// |6-1| + 1 - 2 = 4
	if outcome.Damage != 4 {
		t.Errorf("expected damage 4, got %d", outcome.Damage)
	}
}

// TestFactionRestrictedEquipment: a hunter-only weapon is inert on a Shadow.
func TestFactionRestrictedEquipment(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharNightfiend, CharZealot, CharDancer, CharWarden}, 6, 1)

	attacker := s.Players()[0] // Shadow
	attacker.Equipment = append(attacker.Equipment, Card{
		ID: "spear-1", Name: "Spear of Dawn", Type: CardEquipment,
		Effect: Effect{Kind: EffectAttackBonus, Value: 2, Faction: FactionHunter},
	})

	outcome, err := s.ResolveAttack(0, 1)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if outcome.Damage != 5 {
		t.Errorf("expected unmodified damage 5, got %d", outcome.Damage)
	}
}

// TestShieldConsumedOnUse: a one-shot shield negates one damage application.
func TestShieldConsumedOnUse(t *testing.T) {
	s, roller := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden}, 6, 1)

	target := s.Players()[1]
	target.Status.Shielded = true
	before := target.HP

	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if target.HP != before {
		t.Errorf("shield must absorb the hit, HP went %d -> %d", before, target.HP)
	}
	if target.Status.Shielded {
		t.Fatal("shield must be consumed on use")
	}

	roller.push(6, 1)
	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if target.HP != before-5 {
		t.Errorf("second hit must land, expected HP %d, got %d", before-5, target.HP)
	}
}

// TestDamageImmunityPersists: immunity lasts until cleared at turn start.
func TestDamageImmunityPersists(t *testing.T) {
	s, roller := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden}, 6, 1)

	target := s.Players()[1]
	target.Status.DamageImmune = true
	before := target.HP

	for i := 0; i < 2; i++ {
		if i > 0 {
			roller.push(6, 1)
		}
		if _, err := s.ResolveAttack(0, 1); err != nil {
			t.Fatalf("attack failed: %v", err)
		}
	}
	if target.HP != before {
		t.Errorf("immune target must take no damage, HP went %d -> %d", before, target.HP)
	}

	target.ResetTurnFlags()
	if target.Status.DamageImmune {
		t.Fatal("immunity must expire at the player's next turn start")
	}
}

// TestAttackDeadTarget: attacking a corpse is a zero-damage miss.
func TestAttackDeadTarget(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden}, 6, 1)

	target := s.Players()[1]
	target.Alive = false
	target.HP = 0

	outcome, err := s.RollAttack(0, 1)
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if !outcome.Miss || outcome.Damage != 0 {
		t.Errorf("attack on dead target must be a zero-damage miss, got %+v", outcome)
	}
}

// TestApplyDamageMissingTarget: invalid references abort without mutation.
func TestApplyDamageMissingTarget(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharSilencer, CharWarden})

	if err := s.ApplyDamage(0, 99, 3); err == nil {
		t.Fatal("expected error for missing target")
	}
	for _, p := range s.Players() {
		if p.HP != p.MaxHP {
			t.Errorf("player %d HP mutated to %d", p.ID, p.HP)
		}
	}
}
