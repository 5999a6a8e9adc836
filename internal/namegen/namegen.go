// Package namegen mints display names for recruits and arena
// opponents. Names come from fixed tables driven by the injected RNG,
// so a seeded run always meets the same roster in the same order.
package namegen

import (
	"github.com/LachyC123/bloodline-arena-sub002/internal/game"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

var firstNames = []string{
	"Atrox", "Brakka", "Cassia", "Drax", "Ember", "Ferrus", "Gaia",
	"Hark", "Iria", "Jorun", "Kael", "Lucia", "Marn", "Nyra",
	"Ossian", "Petra", "Quint", "Rhea", "Sable", "Torvald",
	"Ursa", "Vex", "Wren", "Yorick",
}

var bloodlines = []string{
	"Ashfall", "Blackbriar", "Coldiron", "Dunmore", "Emberhart",
	"Foss", "Grimward", "Hollowell", "Karstag", "Larkspur",
	"Morrow", "Nightvale", "Oxblood", "Ravenna", "Stormwright",
	"Thornes",
}

// Epithets hang off how an archetype fights. Unknown archetypes fall
// back to the balanced list.
var epithets = map[game.AIType][]string{
	game.AIAggressive: {"Relentless", "Stormblade", "Ever-Forward"},
	game.AIDefensive:  {"Wall", "Unbroken", "Patient"},
	game.AITrickster:  {"Sly", "Shadowstep", "Laughing"},
	game.AIBrutal:     {"Butcher", "Skullsplitter", "Red-Handed"},
	game.AIBalanced:   {"Steady", "Veteran", "Measured"},
	game.AICautious:   {"Careful", "Long-Lived", "Watcher"},
	game.AIBerserker:  {"Frenzied", "Bloodmad", "Howling"},
	game.AITactical:   {"Cunning", "Chessmaster", "Cold-Eyed"},
}

// FighterName returns a recruit's full name, first name plus the
// bloodline they fight under.
func FighterName(r *rng.RNG) string {
	first := firstNames[r.PickIndex(len(firstNames))]
	line := bloodlines[r.PickIndex(len(bloodlines))]
	return first + " " + line
}

// Bloodline returns a family name for a fresh run.
func Bloodline(r *rng.RNG) string {
	return bloodlines[r.PickIndex(len(bloodlines))]
}

// EnemyName returns a display name for an arena opponent, flavored by
// the archetype it fights with: "Drax the Butcher".
func EnemyName(r *rng.RNG, archetype game.AIType) string {
	first := firstNames[r.PickIndex(len(firstNames))]
	return first + " the " + Epithet(r, archetype)
}

// Epithet returns the byname alone, for opponents whose proper name is
// fixed by configuration.
func Epithet(r *rng.RNG, archetype game.AIType) string {
	pool, ok := epithets[archetype]
	if !ok {
		pool = epithets[game.AIBalanced]
	}
	return pool[r.PickIndex(len(pool))]
}
