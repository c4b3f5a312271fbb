package game

import (
	"testing"

	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
)

// TestDancerHealsAtTurnStart: the on-turn-start passive restores 1 HP,
// capped at the printed maximum.
func TestDancerHealsAtTurnStart(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharDancer, CharZealot, CharNightfiend, CharMoonbeast})

	dancer := s.Players()[0]
	dancer.HP = 8

	s.BeginFirstTurn()
	if dancer.HP != 9 {
		t.Errorf("expected HP 9 after turn-start heal, got %d", dancer.HP)
	}

	dancer.HP = dancer.MaxHP
	if err := s.EndTurn(); err != nil {
		t.Fatalf("end turn failed: %v", err)
	}
	// Cycle back around to the Dancer's next turn.
	for s.CurrentPlayer().ID != dancer.ID {
		if err := s.EndTurn(); err != nil {
			t.Fatalf("end turn failed: %v", err)
		}
	}
	if dancer.HP != dancer.MaxHP {
		t.Errorf("heal must cap at max HP %d, got %d", dancer.MaxHP, dancer.HP)
	}
}

// TestNightfiendLifesteal: dealing attack damage heals the Nightfiend by 2.
func TestNightfiendLifesteal(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharNightfiend, CharZealot, CharDancer, CharMoonbeast}, 6, 1)

	fiend := s.Players()[0]
	fiend.HP = 10

	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if fiend.HP != 12 {
		t.Errorf("expected lifesteal to 12 HP, got %d", fiend.HP)
	}
}

// TestNightfiendNoLifestealOnMiss: a miss deals no damage and heals nothing.
func TestNightfiendNoLifestealOnMiss(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharNightfiend, CharZealot, CharDancer, CharMoonbeast}, 3, 3)

	fiend := s.Players()[0]
	fiend.HP = 10

	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if fiend.HP != 10 {
		t.Errorf("miss must not heal, got HP %d", fiend.HP)
	}
}

// TestMoonbeastCounterattack: a revealed Moonbeast strikes back at its
// attacker with a fresh roll.
func TestMoonbeastCounterattack(t *testing.T) {
	// First pair of rolls is the incoming attack, second pair the counter.
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharMoonbeast, CharDancer, CharNightfiend}, 6, 1, 5, 1)

	beast := s.Players()[1]
	beast.Revealed = true
	attacker := s.Players()[0]

	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if beast.HP != beast.MaxHP-5 {
		t.Errorf("expected Moonbeast HP %d, got %d", beast.MaxHP-5, beast.HP)
	}
	if attacker.HP != attacker.MaxHP-4 {
		t.Errorf("expected counterattack damage 4, attacker HP %d", attacker.HP)
	}
}

// TestMoonbeastHiddenNoCounter: the counter requires the identity to be open.
func TestMoonbeastHiddenNoCounter(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharMoonbeast, CharDancer, CharNightfiend}, 6, 1)

	attacker := s.Players()[0]

	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if attacker.HP != attacker.MaxHP {
		t.Errorf("hidden Moonbeast must not counter, attacker HP %d", attacker.HP)
	}
}

// TestDisabledPassiveDoesNotFire: a silenced ability stays silent even when
// its trigger fires.
func TestDisabledPassiveDoesNotFire(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharDancer, CharZealot, CharNightfiend, CharMoonbeast})

	dancer := s.Players()[0]
	dancer.HP = 5
	dancer.AbilityDisabled = true

	s.BeginFirstTurn()
	if dancer.HP != 5 {
		t.Errorf("disabled passive must not heal, got HP %d", dancer.HP)
	}
}

// TestDeathRevealsCharacter: dying always exposes the secret identity.
func TestDeathRevealsCharacter(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharNightfiend, CharMoonbeast})

	victim := s.Players()[1]
	if err := s.ApplyDamage(2, 1, 20); err != nil {
		t.Fatalf("damage failed: %v", err)
	}
	if victim.Alive {
		t.Fatal("victim should be dead")
	}
	if !victim.Revealed {
		t.Error("death must reveal the character")
	}
	if victim.HP != 0 {
		t.Errorf("dead player HP must be 0, got %d", victim.HP)
	}
}

// TestDeathIsIdempotent: a second death resolution on the same victim is a
// no-op and records no extra kill.
func TestDeathIsIdempotent(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharNightfiend, CharMoonbeast})

	if err := s.ApplyDamage(2, 1, 20); err != nil {
		t.Fatalf("damage failed: %v", err)
	}
	if err := s.ProcessDeath(1, 0); err != nil {
		t.Fatalf("second death call errored: %v", err)
	}
	if got := len(s.tracker.Deaths()); got != 1 {
		t.Errorf("expected 1 recorded death, got %d", got)
	}
}

// TestStealOnKill: the killer's steal item moves the victim's equipment
// before the death is broadcast.
func TestStealOnKill(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharNightfiend, CharMoonbeast})

	killer := s.Players()[0]
	killer.Equipment = append(killer.Equipment, Card{
		ID: "fetish", Name: "Greedy Fetish", Type: CardEquipment,
		Effect: Effect{Kind: EffectStealOnKill},
	})
	victim := s.Players()[1]
	victim.Equipment = append(victim.Equipment, Card{
		ID: "saber", Name: "Bone Saber", Type: CardEquipment,
		Effect: Effect{Kind: EffectAttackBonus, Value: 1},
	})

	if err := s.ApplyDamage(0, 1, 20); err != nil {
		t.Fatalf("damage failed: %v", err)
	}
	if len(victim.Equipment) != 0 {
		t.Errorf("victim must lose all equipment, still holds %d", len(victim.Equipment))
	}
	if len(killer.Equipment) != 2 {
		t.Errorf("killer must hold stolen card, has %d", len(killer.Equipment))
	}
}

// TestStealOnKillFactionRestricted: a faction-bound steal item is inert on
// the wrong wielder.
func TestStealOnKillFactionRestricted(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharNightfiend, CharDancer, CharZealot, CharMoonbeast})

	killer := s.Players()[0] // Shadow
	killer.Equipment = append(killer.Equipment, Card{
		ID: "chaplet", Name: "Silver Chaplet", Type: CardEquipment,
		Effect: Effect{Kind: EffectStealOnKill, Faction: FactionHunter},
	})
	victim := s.Players()[1]
	victim.Equipment = append(victim.Equipment, Card{
		ID: "saber", Name: "Bone Saber", Type: CardEquipment,
		Effect: Effect{Kind: EffectAttackBonus, Value: 1},
	})

	if err := s.ApplyDamage(0, 1, 20); err != nil {
		t.Fatalf("damage failed: %v", err)
	}
	if len(victim.Equipment) != 1 {
		t.Errorf("restricted steal must not fire, victim holds %d", len(victim.Equipment))
	}
}

// TestZealotRevealsOnLowHPKill: killing a fragile victim forces the Zealot
// into the open.
func TestZealotRevealsOnLowHPKill(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharNightfiend, CharMoonbeast})

	zealot := s.Players()[0]
	if err := s.ApplyDamage(0, 1, 20); err != nil { // Dancer, max HP 10
		t.Fatalf("damage failed: %v", err)
	}
	if !zealot.Revealed {
		t.Error("Zealot must reveal after a low-HP kill")
	}
}

// TestZealotStaysHiddenOnHeavyKill: a sturdy victim does not trip the reveal.
func TestZealotStaysHiddenOnHeavyKill(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharNightfiend, CharMoonbeast})

	zealot := s.Players()[0]
	if err := s.ApplyDamage(0, 3, 20); err != nil { // Moonbeast, max HP 14
		t.Fatalf("damage failed: %v", err)
	}
	if zealot.Revealed {
		t.Error("Zealot must stay hidden after a heavy kill")
	}
}

// TestGravecallerRevealsOnAnyDeath: the death broadcast forces the
// Gravecaller's self-reveal.
func TestGravecallerRevealsOnAnyDeath(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharGravecaller, CharNightfiend})

	caller := s.Players()[2]
	if err := s.ApplyDamage(3, 1, 20); err != nil {
		t.Fatalf("damage failed: %v", err)
	}
	if !caller.Revealed {
		t.Error("Gravecaller must reveal when any character dies")
	}
}

// TestMartyrCursesKiller: the Martyr's killer takes 2 damage during death
// resolution.
func TestMartyrCursesKiller(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharDancer, CharNightfiend, CharMoonbeast, CharMartyr})

	killer := s.Players()[0]
	if err := s.ApplyDamage(0, 4, 20); err != nil {
		t.Fatalf("damage failed: %v", err)
	}
	if killer.HP != killer.MaxHP-2 {
		t.Errorf("expected killer HP %d, got %d", killer.MaxHP-2, killer.HP)
	}
}

// TestDeathResolutionOrdering: within one death the victim's on-death effect
// fires first, then the victim is unregistered, then the killer's on-kill,
// then the broadcast to the remaining death watchers.
func TestDeathResolutionOrdering(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharZealot, CharMartyr, CharGravecaller, CharNightfiend})

	var fired []string
	s.bus.SubscribeTyped(rules.EventAbilityTriggered, func(evt rules.Event) {
		fired = append(fired, evt.Data)
		if evt.Data == string(CharZealot) && s.registry.Registered(1) {
			t.Error("victim must be unregistered before the killer's on-kill fires")
		}
	})

	if err := s.ApplyDamage(0, 1, 20); err != nil {
		t.Fatalf("damage failed: %v", err)
	}

	want := []string{string(CharMartyr), string(CharZealot), string(CharGravecaller)}
	if len(fired) != len(want) {
		t.Fatalf("expected %d ability events, got %v", len(want), fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], fired[i])
		}
	}
	if s.registry.Registered(1) {
		t.Error("dead player must stay unregistered")
	}
}

// TestHiddenAbilityEventOmitsCharacter: ability notifications for a hidden
// player must not carry the character id.
func TestHiddenAbilityEventOmitsCharacter(t *testing.T) {
	s, roller := newTestSession(t, []CharacterID{CharNightfiend, CharZealot, CharDancer, CharMoonbeast}, 6, 1)

	fiend := s.Players()[0]
	fiend.HP = 5

	var data []string
	s.bus.SubscribeTyped(rules.EventAbilityTriggered, func(evt rules.Event) {
		data = append(data, evt.Data)
	})

	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if len(data) != 1 || data[0] != "" {
		t.Fatalf("hidden player's ability event must carry no identity, got %v", data)
	}

	s.RevealCharacter(0, true)
	roller.push(6, 1)
	if _, err := s.ResolveAttack(0, 1); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if len(data) != 2 || data[1] != string(CharNightfiend) {
		t.Fatalf("revealed player's ability event must name the character, got %v", data)
	}
}

// TestDuskwightHealsOnReveal: revealing the Duskwight restores 2 HP.
func TestDuskwightHealsOnReveal(t *testing.T) {
	s, _ := newTestSession(t, []CharacterID{CharDuskwight, CharZealot, CharDancer, CharNightfiend})

	dusk := s.Players()[0]
	dusk.HP = 6

	s.RevealCharacter(dusk.ID, true)
	if dusk.HP != 8 {
		t.Errorf("expected HP 8 after reveal heal, got %d", dusk.HP)
	}
	if !dusk.Revealed {
		t.Fatal("reveal flag must stick")
	}
}
