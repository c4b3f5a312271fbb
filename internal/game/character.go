package game

import "github.com/midnighthunt/hunt-server-go/internal/game/rules"

// Faction is one of the three alignments dealt secretly at setup.
type Faction string

const (
	FactionHunter  Faction = "HUNTER"
	FactionShadow  Faction = "SHADOW"
	FactionNeutral Faction = "NEUTRAL"
)

// CharacterID identifies a character card. The set is closed; dispatch over
// it is an explicit switch with a logged-warning default.
type CharacterID string

const (
	// Hunters
	CharStormcaller CharacterID = "STORMCALLER" // active, once: 6-die damage to one target
	CharGunslinger  CharacterID = "GUNSLINGER"  // active, once: 4-die damage to one target
	CharMender      CharacterID = "MENDER"      // active, once: set a target's HP to 7
	CharSilencer    CharacterID = "SILENCER"    // active, once: permanently disable a target's ability
	CharWarden      CharacterID = "WARDEN"      // active, once: shield self until next turn
	CharZealot      CharacterID = "ZEALOT"      // passive on_kill: forced reveal on low-HP kills
	CharDancer      CharacterID = "DANCER"      // passive on_turn_start: heal 1

	// Shadows
	CharNightfiend  CharacterID = "NIGHTFIEND"  // passive on_attack: heal 2 after dealing damage
	CharMoonbeast   CharacterID = "MOONBEAST"   // passive on_attacked: counterattack while revealed
	CharReaper      CharacterID = "REAPER"      // trait: attacks use the 4-die alone, no miss
	CharGravecaller CharacterID = "GRAVECALLER" // passive on_character_death: forced self-reveal
	CharDuskwight   CharacterID = "DUSKWIGHT"   // passive on_reveal: heal 2 when revealed

	// Neutrals
	CharWanderer    CharacterID = "WANDERER"    // active, once: heal self to full
	CharCollector   CharacterID = "COLLECTOR"   // active, once: steal one equipment card
	CharOpportunist CharacterID = "OPPORTUNIST" // no ability; win by killing late
	CharFirstblood  CharacterID = "FIRSTBLOOD"  // no ability; win by first kill or first death
	CharTwinsoul    CharacterID = "TWINSOUL"    // no ability; win through a neighbor
	CharSlayer      CharacterID = "SLAYER"      // no ability; win by a heavy kill or the chapel
	CharMartyr      CharacterID = "MARTYR"      // passive on_death: the killer takes 2 damage
	CharCurator     CharacterID = "CURATOR"     // no ability; win by collecting relics
)

// Character is the static rule data printed on a character card.
type Character struct {
	ID             CharacterID
	Name           string
	Faction        Faction
	MaxHP          int
	AbilityKind    rules.AbilityKind
	Trigger        rules.TriggerKey
	Usage          rules.UsagePolicy
	RequiresReveal bool
}

// Victim max HP at or below which the Zealot is forced to reveal after a kill.
const zealotRevealThreshold = 12

// Victim max HP at or above which a kill satisfies the Slayer's condition.
const slayerHPThreshold = 13

// Equipment count that ends the game for a living Collector.
const collectorEquipmentGoal = 5

// Total body count required when the Opportunist lands a kill.
const opportunistDeathGoal = 3

// Number of relic cards the Curator must hold.
const curatorRelicGoal = 3

var characterTable = map[CharacterID]Character{
	CharStormcaller: {ID: CharStormcaller, Name: "Stormcaller", Faction: FactionHunter, MaxHP: 12,
		AbilityKind: rules.AbilityActive, Usage: rules.UsageOnce, RequiresReveal: true},
	CharGunslinger: {ID: CharGunslinger, Name: "Gunslinger", Faction: FactionHunter, MaxHP: 14,
		AbilityKind: rules.AbilityActive, Usage: rules.UsageOnce, RequiresReveal: true},
	CharMender: {ID: CharMender, Name: "Mender", Faction: FactionHunter, MaxHP: 12,
		AbilityKind: rules.AbilityActive, Usage: rules.UsageOnce, RequiresReveal: true},
	CharSilencer: {ID: CharSilencer, Name: "Silencer", Faction: FactionHunter, MaxHP: 10,
		AbilityKind: rules.AbilityActive, Usage: rules.UsageOnce},
	CharWarden: {ID: CharWarden, Name: "Warden", Faction: FactionHunter, MaxHP: 14,
		AbilityKind: rules.AbilityActive, Usage: rules.UsageOnce},
	CharZealot: {ID: CharZealot, Name: "Zealot", Faction: FactionHunter, MaxHP: 13,
		AbilityKind: rules.AbilityPassive, Trigger: rules.TriggerOnKill, Usage: rules.UsageUnlimited},
	CharDancer: {ID: CharDancer, Name: "Dancer", Faction: FactionHunter, MaxHP: 10,
		AbilityKind: rules.AbilityPassive, Trigger: rules.TriggerOnTurnStart, Usage: rules.UsageUnlimited},

	CharNightfiend: {ID: CharNightfiend, Name: "Nightfiend", Faction: FactionShadow, MaxHP: 13,
		AbilityKind: rules.AbilityPassive, Trigger: rules.TriggerOnAttack, Usage: rules.UsageUnlimited},
	CharMoonbeast: {ID: CharMoonbeast, Name: "Moonbeast", Faction: FactionShadow, MaxHP: 14,
		AbilityKind: rules.AbilityPassive, Trigger: rules.TriggerOnAttacked, Usage: rules.UsageUnlimited},
	CharReaper: {ID: CharReaper, Name: "Reaper", Faction: FactionShadow, MaxHP: 13,
		AbilityKind: rules.AbilityTrait},
	CharGravecaller: {ID: CharGravecaller, Name: "Gravecaller", Faction: FactionShadow, MaxHP: 11,
		AbilityKind: rules.AbilityPassive, Trigger: rules.TriggerOnCharacterDeath, Usage: rules.UsageUnlimited},
	CharDuskwight: {ID: CharDuskwight, Name: "Duskwight", Faction: FactionShadow, MaxHP: 12,
		AbilityKind: rules.AbilityPassive, Trigger: rules.TriggerOnReveal, Usage: rules.UsageUnlimited},

	CharWanderer: {ID: CharWanderer, Name: "Wanderer", Faction: FactionNeutral, MaxHP: 8,
		AbilityKind: rules.AbilityActive, Usage: rules.UsageOnce, RequiresReveal: true},
	CharCollector: {ID: CharCollector, Name: "Collector", Faction: FactionNeutral, MaxHP: 10,
		AbilityKind: rules.AbilityActive, Usage: rules.UsageOnce},
	CharOpportunist: {ID: CharOpportunist, Name: "Opportunist", Faction: FactionNeutral, MaxHP: 11,
		AbilityKind: rules.AbilityNone},
	CharFirstblood: {ID: CharFirstblood, Name: "Firstblood", Faction: FactionNeutral, MaxHP: 9,
		AbilityKind: rules.AbilityNone},
	CharTwinsoul: {ID: CharTwinsoul, Name: "Twinsoul", Faction: FactionNeutral, MaxHP: 10,
		AbilityKind: rules.AbilityNone},
	CharSlayer: {ID: CharSlayer, Name: "Slayer", Faction: FactionNeutral, MaxHP: 12,
		AbilityKind: rules.AbilityNone},
	CharMartyr: {ID: CharMartyr, Name: "Martyr", Faction: FactionNeutral, MaxHP: 8,
		AbilityKind: rules.AbilityPassive, Trigger: rules.TriggerOnDeath, Usage: rules.UsageUnlimited},
	CharCurator: {ID: CharCurator, Name: "Curator", Faction: FactionNeutral, MaxHP: 10,
		AbilityKind: rules.AbilityNone},
}

// LookupCharacter returns the static data for a character ID.
func LookupCharacter(id CharacterID) (Character, bool) {
	c, ok := characterTable[id]
	return c, ok
}

// CharacterIDs returns every known character ID in a stable order.
func CharacterIDs() []CharacterID {
	return []CharacterID{
		CharStormcaller, CharGunslinger, CharMender, CharSilencer, CharWarden,
		CharZealot, CharDancer,
		CharNightfiend, CharMoonbeast, CharReaper, CharGravecaller, CharDuskwight,
		CharWanderer, CharCollector, CharOpportunist, CharFirstblood,
		CharTwinsoul, CharSlayer, CharMartyr, CharCurator,
	}
}
