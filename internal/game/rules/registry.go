package rules

import (
	"fmt"
	"sort"
	"sync"
)

// TriggerKey identifies the event a passive ability reacts to.
type TriggerKey string

const (
	TriggerOnAttacked       TriggerKey = "on_attacked"
	TriggerOnAttack         TriggerKey = "on_attack"
	TriggerOnTurnStart      TriggerKey = "on_turn_start"
	TriggerOnKill           TriggerKey = "on_kill"
	TriggerOnDeath          TriggerKey = "on_death"
	TriggerOnCharacterDeath TriggerKey = "on_character_death"
	TriggerOnReveal         TriggerKey = "on_reveal"
	// TriggerManual marks an active ability; it never fires from events.
	TriggerManual TriggerKey = "manual"
)

var validTriggers = map[TriggerKey]bool{
	TriggerOnAttacked:       true,
	TriggerOnAttack:         true,
	TriggerOnTurnStart:      true,
	TriggerOnKill:           true,
	TriggerOnDeath:          true,
	TriggerOnCharacterDeath: true,
	TriggerOnReveal:         true,
}

// Valid reports whether the key is a recognized passive trigger.
func (tk TriggerKey) Valid() bool {
	return validTriggers[tk]
}

// AbilityKind distinguishes passive (event-driven) from active (invoked)
// abilities.
type AbilityKind string

const (
	AbilityPassive AbilityKind = "passive"
	AbilityActive  AbilityKind = "active"
	// AbilityTrait marks a static combat trait applied at resolution time;
	// the trigger system ignores it.
	AbilityTrait AbilityKind = "trait"
	// AbilityNone marks a character with no printed ability.
	AbilityNone AbilityKind = "none"
)

// UsagePolicy constrains how often an ability may fire.
type UsagePolicy string

const (
	UsageUnlimited UsagePolicy = "unlimited"
	UsageOnce      UsagePolicy = "once"
)

// Registration is one player's declared ability as tracked by the registry.
type Registration struct {
	PlayerID int
	Kind     AbilityKind
	Trigger  TriggerKey
	Usage    UsagePolicy
	// Used is set permanently once a once-per-game ability has fired.
	Used bool
	// RequiresReveal gates active abilities behind the holder being revealed.
	RequiresReveal bool
}

// Registry stores ability registrations keyed by player ID. Dead players are
// unregistered so their passives stop firing; their registration record is
// retained nowhere else.
type Registry struct {
	mu      sync.Mutex
	entries map[int]*Registration
}

// NewRegistry creates an empty ability registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]*Registration)}
}

// Register adds a registration. Passive registrations with an unknown trigger
// key are rejected; active registrations carry TriggerManual.
func (r *Registry) Register(reg Registration) error {
	switch reg.Kind {
	case AbilityPassive:
		if !reg.Trigger.Valid() {
			return fmt.Errorf("unknown passive trigger %q for player %d", reg.Trigger, reg.PlayerID)
		}
	case AbilityActive:
		reg.Trigger = TriggerManual
	default:
		return fmt.Errorf("ability kind %q is not registrable", reg.Kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := reg
	r.entries[reg.PlayerID] = &stored
	return nil
}

// Unregister removes a player's entry. Removing an absent entry is a no-op.
func (r *Registry) Unregister(playerID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, playerID)
}

// Lookup returns the registration for a player, if present.
func (r *Registry) Lookup(playerID int) (Registration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[playerID]
	if !ok {
		return Registration{}, false
	}
	return *entry, true
}

// PassivesFor returns the player IDs registered for the given trigger, in
// ascending player order so broadcast triggers fire deterministically.
func (r *Registry) PassivesFor(trigger TriggerKey) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for id, entry := range r.entries {
		if entry.Kind == AbilityPassive && entry.Trigger == trigger {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// MarkUsed permanently consumes a once-per-game ability.
func (r *Registry) MarkUsed(playerID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[playerID]; ok {
		entry.Used = true
	}
}

// Registered reports whether a player currently has an entry.
func (r *Registry) Registered(playerID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[playerID]
	return ok
}
